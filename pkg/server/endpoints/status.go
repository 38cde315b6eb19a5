package endpoints

import (
	"bytes"
	_ "embed"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/doodlesbykumbi/secrets-api/pkg/server"
	"github.com/doodlesbykumbi/secrets-api/pkg/server/store"
)

//go:embed static/index.md
var indexMarkdown []byte

// StatusResponse is the body of GET /status
type StatusResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Secrets  int    `json:"secrets"`
	Projects int    `json:"projects"`
}

// RegisterStatusEndpoints registers the index page and health endpoint
func RegisterStatusEndpoints(s *server.Server) {
	// GET / - Index page, JSON with Accept: application/json or ?format=json
	s.Router.HandleFunc("/", handleIndex()).Methods("GET")

	// GET /status - Health and record counts
	s.Router.HandleFunc("/status", handleStatus(s.SecretsStore, s.ProjectsStore)).Methods("GET")
}

// RegisterMetricsEndpoint exposes /metrics when the server collects metrics
func RegisterMetricsEndpoint(s *server.Server) {
	if s.Metrics == nil {
		return
	}
	s.Router.Handle("/metrics", s.Metrics.Handler()).Methods("GET")
}

var (
	indexOnce sync.Once
	indexHTML []byte
	indexErr  error
)

func renderIndex() ([]byte, error) {
	indexOnce.Do(func() {
		md := goldmark.New(goldmark.WithExtensions(extension.GFM))

		var body bytes.Buffer
		if indexErr = md.Convert(indexMarkdown, &body); indexErr != nil {
			return
		}

		indexHTML = []byte(fmt.Sprintf(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width">
    <title>Secrets API</title>
  </head>
  <body>
%s
    <footer><p>Version %s</p></footer>
  </body>
</html>
`, body.String(), server.Version))
	})
	return indexHTML, indexErr
}

func wantsJSON(r *http.Request) bool {
	return r.URL.Query().Get("format") == "json" ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

func handleIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if wantsJSON(r) {
			respondWithJSON(w, http.StatusOK, map[string]string{"version": server.Version})
			return
		}

		html, err := renderIndex()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(html)
	}
}

func handleStatus(secretsStore store.SecretsStore, projectsStore store.ProjectsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, StatusResponse{
			Status:   "ok",
			Version:  server.Version,
			Secrets:  secretsStore.Count(),
			Projects: projectsStore.Count(),
		})
	}
}
