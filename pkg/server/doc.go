// Package server provides the HTTP server for the secrets API.
//
// The Server struct holds the router together with the stores and
// supporting services that endpoint handlers need:
//
//   - SecretsStore: secret records
//   - ProjectsStore: projects and their secret references
//   - Config: resolved configuration
//   - Audit: audit event sink (may be nil)
//   - Metrics: Prometheus collectors (nil when metrics are disabled)
//
// # Server Setup
//
//	secrets := memory.NewSecretsStore()
//	srv := server.NewServer(cfg, secrets, memory.NewProjectsStore(secrets), auditor)
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//   - /secrets/ and /secrets/{id}
//   - /projects/ and /projects/{id}
//   - /projects/{id}/secrets and /projects/{id}/secrets/{sid}
//   - /, /status and /metrics
package server
