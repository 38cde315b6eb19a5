package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/secrets-api/pkg/audit"
	"github.com/doodlesbykumbi/secrets-api/pkg/server"
	"github.com/doodlesbykumbi/secrets-api/pkg/server/store"
)

func RegisterSecretsEndpoints(s *server.Server) {
	router := s.Router
	secretsStore := s.SecretsStore
	auditor := s.Audit

	// POST /secrets/ - Create a secret
	handleCollection(router, "/secrets", handleCreateSecret(secretsStore, auditor), "POST")

	// GET /secrets/ - List secrets
	handleCollection(router, "/secrets", handleListSecrets(secretsStore), "GET")

	// GET /secrets/{id} - Fetch a secret
	router.HandleFunc("/secrets/{id}", handleGetSecret(secretsStore)).Methods("GET")

	// PUT /secrets/{id} - Replace a secret
	router.HandleFunc("/secrets/{id}", handleUpdateSecret(secretsStore, auditor)).Methods("PUT")

	// DELETE /secrets/{id} - Delete a secret
	router.HandleFunc("/secrets/{id}", handleDeleteSecret(secretsStore, auditor)).Methods("DELETE")
}

func handleCreateSecret(secretsStore store.SecretsStore, auditor *audit.Auditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		secret, ok := decodeSecret(w, r)
		if !ok {
			return
		}

		created, err := secretsStore.Create(secret)
		auditor.Log(audit.SecretEvent{
			ClientIP:     clientIP(r),
			Operation:    audit.OperationCreate,
			SecretID:     created.Identifier,
			Name:         secret.Name,
			Success:      err == nil,
			ErrorMessage: errorMessage(err),
		})
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, created)
	}
}

func handleListSecrets(secretsStore store.SecretsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, secretsStore.List())
	}
}

func handleGetSecret(secretsStore store.SecretsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		secret, err := secretsStore.Get(mux.Vars(r)["id"])
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, secret)
	}
}

func handleUpdateSecret(secretsStore store.SecretsStore, auditor *audit.Auditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		secret, ok := decodeSecret(w, r)
		if !ok {
			return
		}

		updated, err := secretsStore.Update(id, secret)
		auditor.Log(audit.SecretEvent{
			ClientIP:     clientIP(r),
			Operation:    audit.OperationUpdate,
			SecretID:     id,
			Name:         secret.Name,
			Success:      err == nil,
			ErrorMessage: errorMessage(err),
		})
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, updated)
	}
}

func handleDeleteSecret(secretsStore store.SecretsStore, auditor *audit.Auditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		err := secretsStore.Delete(id)
		auditor.Log(audit.SecretEvent{
			ClientIP:     clientIP(r),
			Operation:    audit.OperationDelete,
			SecretID:     id,
			Success:      err == nil,
			ErrorMessage: errorMessage(err),
		})
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, true)
	}
}
