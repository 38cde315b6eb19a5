package store

import "github.com/doodlesbykumbi/secrets-api/pkg/model"

// SecretsStore abstracts secret storage operations
type SecretsStore interface {
	// Create stores a secret, assigning an identifier when none is set.
	// Returns ErrAlreadyExists if the supplied identifier is taken.
	Create(secret model.Secret) (model.Secret, error)

	// List returns every secret in insertion order.
	List() []model.Secret

	// Get retrieves a secret by identifier.
	// Returns ErrSecretNotFound if the secret doesn't exist.
	Get(id string) (model.Secret, error)

	// Update replaces every field of a secret, keeping its identifier.
	Update(id string, secret model.Secret) (model.Secret, error)

	// Delete removes a secret.
	Delete(id string) error

	// Count returns the number of stored secrets.
	Count() int
}
