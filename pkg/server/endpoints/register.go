package endpoints

import (
	"github.com/doodlesbykumbi/secrets-api/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterSecretsEndpoints(srv)
	RegisterProjectsEndpoints(srv)
	RegisterProjectSecretsEndpoints(srv)
	RegisterStatusEndpoints(srv)
	RegisterMetricsEndpoint(srv)
}
