package store

import "github.com/doodlesbykumbi/secrets-api/pkg/model"

// ProjectsStore abstracts project storage operations, including the
// references a project holds to secrets.
type ProjectsStore interface {
	// Create stores a project, assigning an identifier when none is set.
	Create(project model.Project) (model.Project, error)

	// List returns every project in insertion order.
	List() []model.Project

	// Get retrieves a project by identifier.
	// Returns ErrProjectNotFound if the project doesn't exist.
	Get(id string) (model.Project, error)

	// Update replaces every field of a project, keeping its identifier.
	Update(id string, project model.Project) (model.Project, error)

	// Delete removes a project. Referenced secrets are left untouched.
	Delete(id string) error

	// AddSecretReference appends a secret identifier to the project unless
	// it is already present. The secret itself is not checked.
	AddSecretReference(projectID, secretID string) (model.Project, error)

	// AttachSecret adds a reference after checking the secret exists.
	AttachSecret(projectID, secretID string) (model.Project, error)

	// RemoveSecretReference drops a secret identifier from the project.
	// Removing an absent reference is not an error.
	RemoveSecretReference(projectID, secretID string) (model.Project, error)

	// CreateEmbeddedSecret creates a secret and references it from the project.
	CreateEmbeddedSecret(projectID string, secret model.Secret) (model.Project, error)

	// UpdateEmbeddedSecret updates a secret the project references.
	UpdateEmbeddedSecret(projectID, secretID string, secret model.Secret) (model.Project, error)

	// DeleteEmbeddedSecret detaches a secret from the project and deletes it.
	DeleteEmbeddedSecret(projectID, secretID string) (model.Project, error)

	// ListEmbeddedSecrets resolves the project's references in order,
	// skipping references to secrets that no longer exist.
	ListEmbeddedSecrets(projectID string) ([]model.Secret, error)

	// Count returns the number of stored projects.
	Count() int
}
