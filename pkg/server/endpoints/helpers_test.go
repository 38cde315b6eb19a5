package endpoints

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/secrets-api/pkg/audit"
	"github.com/doodlesbykumbi/secrets-api/pkg/config"
	"github.com/doodlesbykumbi/secrets-api/pkg/server"
	"github.com/doodlesbykumbi/secrets-api/pkg/server/store"
	"github.com/doodlesbykumbi/secrets-api/pkg/server/store/memory"
)

type testServer struct {
	*server.Server
	auditLog *bytes.Buffer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	secrets := memory.NewSecretsStore()
	return newTestServerWithStores(t, secrets, memory.NewProjectsStore(secrets))
}

func newTestServerWithStores(t *testing.T, secrets store.SecretsStore, projects store.ProjectsStore) *testServer {
	t.Helper()

	var buf bytes.Buffer
	logger := audit.NewLogger()
	logger.SetWriter(&buf)

	srv := server.NewServer(config.Default(), secrets, projects, audit.New(logger, nil))
	RegisterAll(srv)

	return &testServer{Server: srv, auditLog: &buf}
}

func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode[map[string]map[string]string](t, w)
	return body["error"]["message"]
}

func requireStatus(t *testing.T, want int, w *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, want, w.Code, w.Body.String())
}

