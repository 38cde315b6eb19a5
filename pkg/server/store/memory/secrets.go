package memory

import (
	"sync"

	"github.com/doodlesbykumbi/secrets-api/pkg/model"
	"github.com/doodlesbykumbi/secrets-api/pkg/server/store"
)

// Ensure SecretsStore implements store.SecretsStore
var _ store.SecretsStore = (*SecretsStore)(nil)

// SecretsStore implements store.SecretsStore in memory
type SecretsStore struct {
	mu      sync.RWMutex
	secrets index[model.Secret]
}

// NewSecretsStore creates an empty SecretsStore
func NewSecretsStore() *SecretsStore {
	return &SecretsStore{secrets: newIndex[model.Secret]()}
}

// Create stores a secret, assigning an identifier when none is set.
func (s *SecretsStore) Create(secret model.Secret) (model.Secret, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if secret.Identifier == "" {
		secret.Identifier = model.NewIdentifier()
	} else if s.secrets.has(secret.Identifier) {
		return model.Secret{}, store.ErrAlreadyExists
	}

	s.secrets.put(secret.Identifier, secret)
	return secret, nil
}

// List returns every secret in insertion order.
func (s *SecretsStore) List() []model.Secret {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.secrets.values()
}

// Get retrieves a secret by identifier.
func (s *SecretsStore) Get(id string) (model.Secret, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	secret, ok := s.secrets.get(id)
	if !ok {
		return model.Secret{}, store.ErrSecretNotFound
	}
	return secret, nil
}

// Update replaces every field of the secret except its identifier.
func (s *SecretsStore) Update(id string, secret model.Secret) (model.Secret, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.secrets.has(id) {
		return model.Secret{}, store.ErrSecretNotFound
	}

	secret = secret.WithIdentifier(id)
	s.secrets.put(id, secret)
	return secret, nil
}

// Delete removes a secret.
func (s *SecretsStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.secrets.remove(id) {
		return store.ErrSecretNotFound
	}
	return nil
}

// Count returns the number of stored secrets.
func (s *SecretsStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.secrets.len()
}
