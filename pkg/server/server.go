package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/secrets-api/pkg/audit"
	"github.com/doodlesbykumbi/secrets-api/pkg/config"
	"github.com/doodlesbykumbi/secrets-api/pkg/metrics"
	"github.com/doodlesbykumbi/secrets-api/pkg/server/middleware"
	"github.com/doodlesbykumbi/secrets-api/pkg/server/store"
)

// Version is reported by the status endpoints. Overridden at build time.
var Version = "0.1.0"

type Server struct {
	Router        *mux.Router
	SecretsStore  store.SecretsStore
	ProjectsStore store.ProjectsStore
	Config        *config.Config
	Audit         *audit.Auditor
	Metrics       *metrics.Metrics
	srv           *http.Server
}

// NewServer wires the stores into a router. auditor may be nil.
func NewServer(
	cfg *config.Config,
	secretsStore store.SecretsStore,
	projectsStore store.ProjectsStore,
	auditor *audit.Auditor,
) *Server {
	router := mux.NewRouter().UseEncodedPath()

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New(secretsStore, projectsStore)
		router.Use(middleware.Metrics(m))
		if auditor != nil {
			auditor.SetObserver(func(e audit.Event) {
				m.ObserveAuditEvent(e.MessageID(), e.Severity() == audit.SeverityInfo)
			})
		}
	}

	s := &Server{
		Router:        router,
		SecretsStore:  secretsStore,
		ProjectsStore: projectsStore,
		Config:        cfg,
		Audit:         auditor,
		Metrics:       m,
	}

	s.srv = &http.Server{
		Handler:      s.Handler(),
		Addr:         cfg.Address(),
		WriteTimeout: cfg.WriteTimeout(),
		ReadTimeout:  cfg.ReadTimeout(),
	}

	return s
}

// Handler returns the router wrapped with CORS and access logging
func (s *Server) Handler() http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins(s.Config.CORSAllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Accept", "Content-Type", "Authorization", "X-Requested-With"}),
	)
	return cors(handlers.LoggingHandler(os.Stdout, s.Router))
}

// Start listens until the server is shut down
func (s *Server) Start() error {
	slog.Info("starting server", "address", s.srv.Addr, "version", Version)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("shutting down server")
	return s.srv.Shutdown(ctx)
}
