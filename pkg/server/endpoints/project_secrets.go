package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/secrets-api/pkg/audit"
	"github.com/doodlesbykumbi/secrets-api/pkg/model"
	"github.com/doodlesbykumbi/secrets-api/pkg/server"
	"github.com/doodlesbykumbi/secrets-api/pkg/server/store"
)

// RegisterProjectSecretsEndpoints registers the routes that manage the
// secrets a project references.
func RegisterProjectSecretsEndpoints(s *server.Server) {
	router := s.Router
	projectsStore := s.ProjectsStore
	auditor := s.Audit

	// GET /projects/{id}/secrets - Resolve referenced secrets
	handleCollection(router, "/projects/{id}/secrets", handleListProjectSecrets(projectsStore), "GET")

	// POST /projects/{id}/secrets - Create a secret inside the project
	handleCollection(router, "/projects/{id}/secrets", handleCreateProjectSecret(projectsStore, auditor), "POST")

	// POST /projects/{id}/secrets/{sid} - Attach an existing secret
	router.HandleFunc("/projects/{id}/secrets/{sid}", handleAttachSecret(projectsStore, auditor)).Methods("POST")

	// PUT /projects/{id}/secrets/{sid} - Update a referenced secret
	router.HandleFunc("/projects/{id}/secrets/{sid}", handleUpdateProjectSecret(projectsStore, auditor)).Methods("PUT")

	// DELETE /projects/{id}/secrets/{sid}[?purge=true] - Detach, optionally deleting the secret
	router.HandleFunc("/projects/{id}/secrets/{sid}", handleDetachSecret(projectsStore, auditor)).Methods("DELETE")
}

func logMembership(auditor *audit.Auditor, r *http.Request, operation, projectID, secretID string, err error) {
	auditor.Log(audit.MembershipEvent{
		ClientIP:     clientIP(r),
		Operation:    operation,
		ProjectID:    projectID,
		SecretID:     secretID,
		Success:      err == nil,
		ErrorMessage: errorMessage(err),
	})
}

func handleListProjectSecrets(projectsStore store.ProjectsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		secrets, err := projectsStore.ListEmbeddedSecrets(mux.Vars(r)["id"])
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, secrets)
	}
}

func handleCreateProjectSecret(projectsStore store.ProjectsStore, auditor *audit.Auditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := mux.Vars(r)["id"]

		secret, ok := decodeSecret(w, r)
		if !ok {
			return
		}

		if secret.Identifier == "" {
			secret.Identifier = model.NewIdentifier()
		}

		project, err := projectsStore.CreateEmbeddedSecret(projectID, secret)
		createdID := secret.Identifier
		if err != nil {
			createdID = ""
		}
		logMembership(auditor, r, audit.OperationCreate, projectID, createdID, err)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, project)
	}
}

func handleAttachSecret(projectsStore store.ProjectsStore, auditor *audit.Auditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		projectID, secretID := vars["id"], vars["sid"]

		project, err := projectsStore.AttachSecret(projectID, secretID)
		logMembership(auditor, r, audit.OperationAttach, projectID, secretID, err)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, project)
	}
}

func handleUpdateProjectSecret(projectsStore store.ProjectsStore, auditor *audit.Auditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		projectID, secretID := vars["id"], vars["sid"]

		secret, ok := decodeSecret(w, r)
		if !ok {
			return
		}

		project, err := projectsStore.UpdateEmbeddedSecret(projectID, secretID, secret)
		logMembership(auditor, r, audit.OperationUpdate, projectID, secretID, err)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, project)
	}
}

func handleDetachSecret(projectsStore store.ProjectsStore, auditor *audit.Auditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		projectID, secretID := vars["id"], vars["sid"]

		purge, _ := strconv.ParseBool(r.URL.Query().Get("purge"))

		var (
			project model.Project
			err     error
		)
		if purge {
			project, err = projectsStore.DeleteEmbeddedSecret(projectID, secretID)
			logMembership(auditor, r, audit.OperationPurge, projectID, secretID, err)
		} else {
			project, err = projectsStore.RemoveSecretReference(projectID, secretID)
			logMembership(auditor, r, audit.OperationDetach, projectID, secretID, err)
		}
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, project)
	}
}
