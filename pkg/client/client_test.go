package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/secrets-api/pkg/model"
)

func TestClient(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","version":"1.2.3","secrets":1,"projects":1}`))
	})
	mux.HandleFunc("/secrets", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"identifier":"s1","name":"db","value":"pw","source":"AWS_SAM"}]`))
	})
	mux.HandleFunc("/projects", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"identifier":"p1","name":"web","secrets":["s1"]}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL + "/")

	t.Run("status", func(t *testing.T) {
		status, err := c.Status(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "ok", status.Status)
		assert.Equal(t, "1.2.3", status.Version)
	})

	t.Run("export", func(t *testing.T) {
		export, err := c.Export(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "1.2.3", export.Version)
		assert.Equal(t, []model.Secret{{Identifier: "s1", Name: "db", Value: "pw", Source: model.SourceAwsSam}}, export.Secrets)
		assert.Equal(t, []model.Project{{Identifier: "p1", Name: "web", Secrets: []string{"s1"}}}, export.Projects)
	})
}

func TestClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"secret not found"}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListSecrets(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "secret not found", apiErr.Message)
}

func TestWait(t *testing.T) {
	t.Run("retries until ok", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		}))
		defer srv.Close()

		ticks := 0
		err := New(srv.URL).Wait(context.Background(), 5, time.Millisecond, func() { ticks++ })
		require.NoError(t, err)
		assert.Equal(t, 2, ticks)
	})

	t.Run("gives up after retries", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		err := New(srv.URL).Wait(context.Background(), 2, time.Millisecond, nil)
		assert.ErrorContains(t, err, "not ready after 2 attempts")
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := New("http://127.0.0.1:1").Wait(ctx, 10, time.Second, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
