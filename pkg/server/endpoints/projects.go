package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/secrets-api/pkg/audit"
	"github.com/doodlesbykumbi/secrets-api/pkg/server"
	"github.com/doodlesbykumbi/secrets-api/pkg/server/store"
)

func RegisterProjectsEndpoints(s *server.Server) {
	router := s.Router
	projectsStore := s.ProjectsStore
	auditor := s.Audit

	handleCollection(router, "/projects", handleCreateProject(projectsStore, auditor), "POST")
	handleCollection(router, "/projects", handleListProjects(projectsStore), "GET")

	router.HandleFunc("/projects/{id}", handleGetProject(projectsStore)).Methods("GET")
	router.HandleFunc("/projects/{id}", handleUpdateProject(projectsStore, auditor)).Methods("PUT")
	router.HandleFunc("/projects/{id}", handleDeleteProject(projectsStore, auditor)).Methods("DELETE")
}

func handleCreateProject(projectsStore store.ProjectsStore, auditor *audit.Auditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := decodeProject(w, r)
		if !ok {
			return
		}

		created, err := projectsStore.Create(project)
		auditor.Log(audit.ProjectEvent{
			ClientIP:     clientIP(r),
			Operation:    audit.OperationCreate,
			ProjectID:    created.Identifier,
			Name:         project.Name,
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

func handleListProjects(projectsStore store.ProjectsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, projectsStore.List())
	}
}

func handleGetProject(projectsStore store.ProjectsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := projectsStore.Get(mux.Vars(r)["id"])
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, project)
	}
}

func handleUpdateProject(projectsStore store.ProjectsStore, auditor *audit.Auditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		project, ok := decodeProject(w, r)
		if !ok {
			return
		}

		updated, err := projectsStore.Update(id, project)
		auditor.Log(audit.ProjectEvent{
			ClientIP:     clientIP(r),
			Operation:    audit.OperationUpdate,
			ProjectID:    id,
			Name:         project.Name,
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

func handleDeleteProject(projectsStore store.ProjectsStore, auditor *audit.Auditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		err := projectsStore.Delete(id)
		auditor.Log(audit.ProjectEvent{
			ClientIP:     clientIP(r),
			Operation:    audit.OperationDelete,
			ProjectID:    id,
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
