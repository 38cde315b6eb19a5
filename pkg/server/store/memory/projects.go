package memory

import (
	"errors"
	"fmt"
	"sync"

	"github.com/doodlesbykumbi/secrets-api/pkg/model"
	"github.com/doodlesbykumbi/secrets-api/pkg/server/store"
)

// Ensure ProjectsStore implements store.ProjectsStore
var _ store.ProjectsStore = (*ProjectsStore)(nil)

// ProjectsStore implements store.ProjectsStore in memory. Operations that
// touch secrets go through the injected SecretsStore; they are not atomic
// across the two stores.
type ProjectsStore struct {
	mu       sync.RWMutex
	projects index[model.Project]
	secrets  store.SecretsStore
}

// NewProjectsStore creates an empty ProjectsStore resolving secrets through
// secrets.
func NewProjectsStore(secrets store.SecretsStore) *ProjectsStore {
	return &ProjectsStore{
		projects: newIndex[model.Project](),
		secrets:  secrets,
	}
}

// Create stores a project, assigning an identifier when none is set.
func (p *ProjectsStore) Create(project model.Project) (model.Project, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if project.Identifier == "" {
		project.Identifier = model.NewIdentifier()
	} else if p.projects.has(project.Identifier) {
		return model.Project{}, store.ErrAlreadyExists
	}

	project = project.Clone()
	p.projects.put(project.Identifier, project)
	return project.Clone(), nil
}

// List returns every project in insertion order.
func (p *ProjectsStore) List() []model.Project {
	p.mu.RLock()
	defer p.mu.RUnlock()

	projects := p.projects.values()
	for i := range projects {
		projects[i] = projects[i].Clone()
	}
	return projects
}

// Get retrieves a project by identifier.
func (p *ProjectsStore) Get(id string) (model.Project, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	project, ok := p.projects.get(id)
	if !ok {
		return model.Project{}, store.ErrProjectNotFound
	}
	return project.Clone(), nil
}

// Update replaces the project's name and secret references wholesale.
func (p *ProjectsStore) Update(id string, project model.Project) (model.Project, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.projects.has(id) {
		return model.Project{}, store.ErrProjectNotFound
	}

	project = project.Clone()
	project.Identifier = id
	p.projects.put(id, project)
	return project.Clone(), nil
}

// Delete removes a project.
func (p *ProjectsStore) Delete(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.projects.remove(id) {
		return store.ErrProjectNotFound
	}
	return nil
}

// Count returns the number of stored projects.
func (p *ProjectsStore) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.projects.len()
}

// modify runs fn against the stored project under the write lock and
// returns a copy of the result.
func (p *ProjectsStore) modify(id string, fn func(project *model.Project) error) (model.Project, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	project, ok := p.projects.get(id)
	if !ok {
		return model.Project{}, store.ErrProjectNotFound
	}

	if err := fn(&project); err != nil {
		return model.Project{}, err
	}

	p.projects.put(id, project)
	return project.Clone(), nil
}

// AddSecretReference appends secretID to the project unless it is already
// referenced.
func (p *ProjectsStore) AddSecretReference(projectID, secretID string) (model.Project, error) {
	return p.modify(projectID, func(project *model.Project) error {
		if !project.HasSecret(secretID) {
			project.Secrets = append(project.Secrets, secretID)
		}
		return nil
	})
}

// AttachSecret checks the secret exists before adding the reference.
func (p *ProjectsStore) AttachSecret(projectID, secretID string) (model.Project, error) {
	if _, err := p.Get(projectID); err != nil {
		return model.Project{}, err
	}
	if _, err := p.secrets.Get(secretID); err != nil {
		return model.Project{}, err
	}
	return p.AddSecretReference(projectID, secretID)
}

// RemoveSecretReference drops secretID from the project. An absent
// reference leaves the project unchanged.
func (p *ProjectsStore) RemoveSecretReference(projectID, secretID string) (model.Project, error) {
	return p.modify(projectID, func(project *model.Project) error {
		project.RemoveSecret(secretID)
		return nil
	})
}

// CreateEmbeddedSecret creates secret and appends its identifier to the
// project. The secret is left in place if the project disappears between
// the two steps.
func (p *ProjectsStore) CreateEmbeddedSecret(projectID string, secret model.Secret) (model.Project, error) {
	if _, err := p.Get(projectID); err != nil {
		return model.Project{}, err
	}

	created, err := p.secrets.Create(secret)
	if err != nil {
		return model.Project{}, fmt.Errorf("create embedded secret: %w", err)
	}

	return p.AddSecretReference(projectID, created.Identifier)
}

// UpdateEmbeddedSecret updates a secret the project references.
func (p *ProjectsStore) UpdateEmbeddedSecret(projectID, secretID string, secret model.Secret) (model.Project, error) {
	project, err := p.Get(projectID)
	if err != nil {
		return model.Project{}, err
	}
	if !project.HasSecret(secretID) {
		return model.Project{}, store.ErrSecretNotFound
	}

	if _, err := p.secrets.Update(secretID, secret); err != nil {
		return model.Project{}, err
	}
	return project, nil
}

// DeleteEmbeddedSecret detaches secretID from the project and deletes the
// secret. A secret already gone from the secrets store is tolerated.
func (p *ProjectsStore) DeleteEmbeddedSecret(projectID, secretID string) (model.Project, error) {
	project, err := p.modify(projectID, func(project *model.Project) error {
		if found := project.RemoveSecret(secretID); !found {
			return store.ErrSecretNotFound
		}
		return nil
	})
	if err != nil {
		return model.Project{}, err
	}

	if err := p.secrets.Delete(secretID); err != nil && !errors.Is(err, store.ErrSecretNotFound) {
		return model.Project{}, fmt.Errorf("delete embedded secret: %w", err)
	}
	return project, nil
}

// ListEmbeddedSecrets resolves the project's references in order. Dangling
// references are skipped.
func (p *ProjectsStore) ListEmbeddedSecrets(projectID string) ([]model.Secret, error) {
	project, err := p.Get(projectID)
	if err != nil {
		return nil, err
	}

	secrets := make([]model.Secret, 0, len(project.Secrets))
	for _, id := range project.Secrets {
		secret, err := p.secrets.Get(id)
		if errors.Is(err, store.ErrSecretNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		secrets = append(secrets, secret)
	}
	return secrets, nil
}
