// Package store provides storage abstractions for the secrets API server.
//
// The endpoints depend only on the interfaces declared here, so the HTTP
// layer can be tested against mocks and the in-memory implementation in
// the memory subpackage can be swapped for another backend.
//
// # Available Stores
//
//   - SecretsStore: secret records (create, list, get, update, delete)
//   - ProjectsStore: project records and the secret references they hold
//
// # Usage
//
//	secrets := memory.NewSecretsStore()
//	projects := memory.NewProjectsStore(secrets)
//	project, err := projects.Get(id)
//	if err != nil {
//	    if errors.Is(err, store.ErrNotFound) {
//	        // Handle not found
//	    }
//	}
package store
