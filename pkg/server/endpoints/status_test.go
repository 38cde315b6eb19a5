package endpoints

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doodlesbykumbi/secrets-api/pkg/config"
	"github.com/doodlesbykumbi/secrets-api/pkg/server"
	"github.com/doodlesbykumbi/secrets-api/pkg/server/store/memory"
)

func TestHandleIndex(t *testing.T) {
	t.Run("returns HTML index page", func(t *testing.T) {
		handler := handleIndex()

		req := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "<h1>Secrets API</h1>")
		assert.Contains(t, w.Body.String(), "<table>")
		assert.Contains(t, w.Body.String(), "Version "+server.Version)
	})

	t.Run("returns JSON when Accept header is application/json", func(t *testing.T) {
		handler := handleIndex()

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Accept", "application/json")
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		assert.JSONEq(t, `{"version":"`+server.Version+`"}`, w.Body.String())
	})

	t.Run("returns JSON for format query", func(t *testing.T) {
		handler := handleIndex()

		req := httptest.NewRequest("GET", "/?format=json", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	})
}

func TestHandleStatus(t *testing.T) {
	secrets := &MockSecretsStore{}
	projects := &MockProjectsStore{}
	secrets.On("Count").Return(3)
	projects.On("Count").Return(1)

	w := httptest.NewRecorder()
	handleStatus(secrets, projects)(w, httptest.NewRequest("GET", "/status", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","version":"`+server.Version+`","secrets":3,"projects":1}`, w.Body.String())
	secrets.AssertExpectations(t)
	projects.AssertExpectations(t)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Run("exposes collectors", func(t *testing.T) {
		s := newTestServer(t)
		s.do("POST", "/secrets", map[string]string{"name": "db", "source": "OTHER"})

		w := s.do("GET", "/metrics", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		body := w.Body.String()
		assert.Contains(t, body, "secrets_api_secrets 1")
		assert.Contains(t, body, `secrets_api_http_requests_total{code="200",method="POST",route="/secrets"} 1`)
		assert.Contains(t, body, `secrets_api_audit_events_total{msgid="secret",result="success"} 1`)
	})

	t.Run("absent when metrics are disabled", func(t *testing.T) {
		cfg := config.Default()
		cfg.MetricsEnabled = false
		secrets := memory.NewSecretsStore()
		srv := server.NewServer(cfg, secrets, memory.NewProjectsStore(secrets), nil)
		RegisterAll(srv)

		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, strings.Contains(w.Body.String(), "secrets_api"))
	})
}
