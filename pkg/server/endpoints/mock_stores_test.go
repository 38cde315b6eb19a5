package endpoints

import (
	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/secrets-api/pkg/model"
	"github.com/doodlesbykumbi/secrets-api/pkg/server/store"
)

var (
	_ store.SecretsStore  = (*MockSecretsStore)(nil)
	_ store.ProjectsStore = (*MockProjectsStore)(nil)
)

// MockSecretsStore implements store.SecretsStore for testing using testify/mock
type MockSecretsStore struct {
	mock.Mock
}

func (m *MockSecretsStore) Create(secret model.Secret) (model.Secret, error) {
	args := m.Called(secret)
	return args.Get(0).(model.Secret), args.Error(1)
}

func (m *MockSecretsStore) List() []model.Secret {
	args := m.Called()
	return args.Get(0).([]model.Secret)
}

func (m *MockSecretsStore) Get(id string) (model.Secret, error) {
	args := m.Called(id)
	return args.Get(0).(model.Secret), args.Error(1)
}

func (m *MockSecretsStore) Update(id string, secret model.Secret) (model.Secret, error) {
	args := m.Called(id, secret)
	return args.Get(0).(model.Secret), args.Error(1)
}

func (m *MockSecretsStore) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockSecretsStore) Count() int {
	args := m.Called()
	return args.Int(0)
}

// MockProjectsStore implements store.ProjectsStore for testing using testify/mock
type MockProjectsStore struct {
	mock.Mock
}

func (m *MockProjectsStore) Create(project model.Project) (model.Project, error) {
	args := m.Called(project)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *MockProjectsStore) List() []model.Project {
	args := m.Called()
	return args.Get(0).([]model.Project)
}

func (m *MockProjectsStore) Get(id string) (model.Project, error) {
	args := m.Called(id)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *MockProjectsStore) Update(id string, project model.Project) (model.Project, error) {
	args := m.Called(id, project)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *MockProjectsStore) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProjectsStore) AddSecretReference(projectID, secretID string) (model.Project, error) {
	args := m.Called(projectID, secretID)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *MockProjectsStore) AttachSecret(projectID, secretID string) (model.Project, error) {
	args := m.Called(projectID, secretID)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *MockProjectsStore) RemoveSecretReference(projectID, secretID string) (model.Project, error) {
	args := m.Called(projectID, secretID)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *MockProjectsStore) CreateEmbeddedSecret(projectID string, secret model.Secret) (model.Project, error) {
	args := m.Called(projectID, secret)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *MockProjectsStore) UpdateEmbeddedSecret(projectID, secretID string, secret model.Secret) (model.Project, error) {
	args := m.Called(projectID, secretID, secret)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *MockProjectsStore) DeleteEmbeddedSecret(projectID, secretID string) (model.Project, error) {
	args := m.Called(projectID, secretID)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *MockProjectsStore) ListEmbeddedSecrets(projectID string) ([]model.Secret, error) {
	args := m.Called(projectID)
	secrets, _ := args.Get(0).([]model.Secret)
	return secrets, args.Error(1)
}

func (m *MockProjectsStore) Count() int {
	args := m.Called()
	return args.Int(0)
}
