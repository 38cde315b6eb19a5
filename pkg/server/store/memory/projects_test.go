package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/secrets-api/pkg/model"
	"github.com/doodlesbykumbi/secrets-api/pkg/server/store"
)

func newStores() (*SecretsStore, *ProjectsStore) {
	secrets := NewSecretsStore()
	return secrets, NewProjectsStore(secrets)
}

func TestProjectsStore(t *testing.T) {
	t.Run("create defaults secrets to empty", func(t *testing.T) {
		_, projects := newStores()

		created, err := projects.Create(model.Project{Name: "web"})
		require.NoError(t, err)
		assert.NotEmpty(t, created.Identifier)
		assert.NotNil(t, created.Secrets)
		assert.Empty(t, created.Secrets)
	})

	t.Run("create rejects duplicate supplied identifier", func(t *testing.T) {
		_, projects := newStores()

		_, err := projects.Create(model.Project{Identifier: "p1", Name: "web"})
		require.NoError(t, err)
		_, err = projects.Create(model.Project{Identifier: "p1", Name: "api"})
		assert.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("get returns a copy", func(t *testing.T) {
		_, projects := newStores()
		created, err := projects.Create(model.Project{Name: "web", Secrets: []string{"s1"}})
		require.NoError(t, err)

		got, err := projects.Get(created.Identifier)
		require.NoError(t, err)
		got.Secrets[0] = "changed"

		again, err := projects.Get(created.Identifier)
		require.NoError(t, err)
		assert.Equal(t, []string{"s1"}, again.Secrets)
	})

	t.Run("get of unknown id", func(t *testing.T) {
		_, projects := newStores()

		_, err := projects.Get("missing")
		assert.ErrorIs(t, err, store.ErrProjectNotFound)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("update replaces secrets wholesale and keeps id", func(t *testing.T) {
		_, projects := newStores()
		created, err := projects.Create(model.Project{Name: "web", Secrets: []string{"a", "b"}})
		require.NoError(t, err)

		updated, err := projects.Update(created.Identifier, model.Project{Identifier: "x", Name: "api"})
		require.NoError(t, err)
		assert.Equal(t, created.Identifier, updated.Identifier)
		assert.Equal(t, "api", updated.Name)
		assert.Equal(t, []string{}, updated.Secrets)
	})

	t.Run("update of missing id leaves store unchanged", func(t *testing.T) {
		_, projects := newStores()
		created, err := projects.Create(model.Project{Name: "web"})
		require.NoError(t, err)

		_, err = projects.Update("missing", model.Project{Name: "api"})
		assert.ErrorIs(t, err, store.ErrProjectNotFound)
		assert.Equal(t, []model.Project{created}, projects.List())
	})

	t.Run("delete twice", func(t *testing.T) {
		_, projects := newStores()
		created, err := projects.Create(model.Project{Name: "web"})
		require.NoError(t, err)

		require.NoError(t, projects.Delete(created.Identifier))
		assert.ErrorIs(t, projects.Delete(created.Identifier), store.ErrProjectNotFound)
	})

	t.Run("list preserves insertion order", func(t *testing.T) {
		_, projects := newStores()
		a, _ := projects.Create(model.Project{Name: "a"})
		b, _ := projects.Create(model.Project{Name: "b"})

		assert.Equal(t, []model.Project{a, b}, projects.List())
	})
}

func TestProjectsStoreReferences(t *testing.T) {
	t.Run("add reference is idempotent", func(t *testing.T) {
		_, projects := newStores()
		p, _ := projects.Create(model.Project{Name: "web"})

		_, err := projects.AddSecretReference(p.Identifier, "s1")
		require.NoError(t, err)
		got, err := projects.AddSecretReference(p.Identifier, "s1")
		require.NoError(t, err)

		assert.Equal(t, []string{"s1"}, got.Secrets)
	})

	t.Run("add reference does not check the secret", func(t *testing.T) {
		_, projects := newStores()
		p, _ := projects.Create(model.Project{Name: "web"})

		got, err := projects.AddSecretReference(p.Identifier, "never-created")
		require.NoError(t, err)
		assert.Equal(t, []string{"never-created"}, got.Secrets)
	})

	t.Run("add reference to missing project", func(t *testing.T) {
		_, projects := newStores()

		_, err := projects.AddSecretReference("missing", "s1")
		assert.ErrorIs(t, err, store.ErrProjectNotFound)
	})

	t.Run("attach requires an existing secret", func(t *testing.T) {
		secrets, projects := newStores()
		p, _ := projects.Create(model.Project{Name: "web"})

		_, err := projects.AttachSecret(p.Identifier, "missing")
		assert.ErrorIs(t, err, store.ErrSecretNotFound)

		s, _ := secrets.Create(model.Secret{Name: "db"})
		got, err := projects.AttachSecret(p.Identifier, s.Identifier)
		require.NoError(t, err)
		assert.Equal(t, []string{s.Identifier}, got.Secrets)

		_, err = projects.AttachSecret("missing", s.Identifier)
		assert.ErrorIs(t, err, store.ErrProjectNotFound)
	})

	t.Run("remove absent reference is a no-op", func(t *testing.T) {
		_, projects := newStores()
		p, _ := projects.Create(model.Project{Name: "web", Secrets: []string{"s1"}})

		got, err := projects.RemoveSecretReference(p.Identifier, "other")
		require.NoError(t, err)
		assert.Equal(t, []string{"s1"}, got.Secrets)

		got, err = projects.RemoveSecretReference(p.Identifier, "s1")
		require.NoError(t, err)
		assert.Empty(t, got.Secrets)
	})

	t.Run("remove reference from missing project", func(t *testing.T) {
		_, projects := newStores()

		_, err := projects.RemoveSecretReference("missing", "s1")
		assert.ErrorIs(t, err, store.ErrProjectNotFound)
	})
}

func TestProjectsStoreEmbeddedSecrets(t *testing.T) {
	t.Run("create embedded secret", func(t *testing.T) {
		secrets, projects := newStores()
		p, _ := projects.Create(model.Project{Name: "P"})

		got, err := projects.CreateEmbeddedSecret(p.Identifier, model.Secret{Name: "S", Source: model.SourceOther})
		require.NoError(t, err)
		require.Len(t, got.Secrets, 1)

		listed, err := projects.ListEmbeddedSecrets(p.Identifier)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, "S", listed[0].Name)
		assert.Equal(t, got.Secrets[0], listed[0].Identifier)
		assert.Equal(t, 1, secrets.Count())
	})

	t.Run("create embedded secret in missing project creates nothing", func(t *testing.T) {
		secrets, projects := newStores()

		_, err := projects.CreateEmbeddedSecret("missing", model.Secret{Name: "S"})
		assert.ErrorIs(t, err, store.ErrProjectNotFound)
		assert.Equal(t, 0, secrets.Count())
	})

	t.Run("update embedded secret", func(t *testing.T) {
		secrets, projects := newStores()
		p, _ := projects.Create(model.Project{Name: "P"})
		p, _ = projects.CreateEmbeddedSecret(p.Identifier, model.Secret{Name: "S", Source: model.SourceOther})
		sid := p.Secrets[0]

		_, err := projects.UpdateEmbeddedSecret(p.Identifier, sid, model.Secret{Name: "S2", Source: model.SourceAwsSam})
		require.NoError(t, err)

		s, err := secrets.Get(sid)
		require.NoError(t, err)
		assert.Equal(t, "S2", s.Name)
		assert.Equal(t, sid, s.Identifier)
		assert.Equal(t, model.SourceAwsSam, s.Source)
	})

	t.Run("update embedded secret not in project", func(t *testing.T) {
		secrets, projects := newStores()
		p, _ := projects.Create(model.Project{Name: "P"})
		s, _ := secrets.Create(model.Secret{Name: "loose"})

		_, err := projects.UpdateEmbeddedSecret(p.Identifier, s.Identifier, model.Secret{Name: "x"})
		assert.ErrorIs(t, err, store.ErrSecretNotFound)

		got, _ := secrets.Get(s.Identifier)
		assert.Equal(t, "loose", got.Name)

		_, err = projects.UpdateEmbeddedSecret("missing", s.Identifier, model.Secret{Name: "x"})
		assert.ErrorIs(t, err, store.ErrProjectNotFound)
	})

	t.Run("update embedded secret that was deleted", func(t *testing.T) {
		secrets, projects := newStores()
		p, _ := projects.Create(model.Project{Name: "P"})
		p, _ = projects.CreateEmbeddedSecret(p.Identifier, model.Secret{Name: "S"})
		require.NoError(t, secrets.Delete(p.Secrets[0]))

		_, err := projects.UpdateEmbeddedSecret(p.Identifier, p.Secrets[0], model.Secret{Name: "x"})
		assert.ErrorIs(t, err, store.ErrSecretNotFound)
	})

	t.Run("delete embedded secret", func(t *testing.T) {
		secrets, projects := newStores()
		p, _ := projects.Create(model.Project{Name: "P"})
		p, _ = projects.CreateEmbeddedSecret(p.Identifier, model.Secret{Name: "S"})
		sid := p.Secrets[0]

		got, err := projects.DeleteEmbeddedSecret(p.Identifier, sid)
		require.NoError(t, err)
		assert.Empty(t, got.Secrets)

		_, err = secrets.Get(sid)
		assert.ErrorIs(t, err, store.ErrSecretNotFound)

		_, err = projects.DeleteEmbeddedSecret(p.Identifier, sid)
		assert.ErrorIs(t, err, store.ErrSecretNotFound)
	})

	t.Run("delete embedded secret tolerates a dangling reference", func(t *testing.T) {
		_, projects := newStores()
		p, _ := projects.Create(model.Project{Name: "P", Secrets: []string{"gone"}})

		got, err := projects.DeleteEmbeddedSecret(p.Identifier, "gone")
		require.NoError(t, err)
		assert.Empty(t, got.Secrets)
	})

	t.Run("delete embedded secret from missing project", func(t *testing.T) {
		_, projects := newStores()

		_, err := projects.DeleteEmbeddedSecret("missing", "s1")
		assert.ErrorIs(t, err, store.ErrProjectNotFound)
	})

	t.Run("list embedded secrets skips dangling references", func(t *testing.T) {
		secrets, projects := newStores()
		a, _ := secrets.Create(model.Secret{Name: "a"})
		b, _ := secrets.Create(model.Secret{Name: "b"})
		p, _ := projects.Create(model.Project{Name: "P", Secrets: []string{b.Identifier, "gone", a.Identifier}})

		listed, err := projects.ListEmbeddedSecrets(p.Identifier)
		require.NoError(t, err)
		assert.Equal(t, []model.Secret{b, a}, listed)

		_, err = projects.ListEmbeddedSecrets("missing")
		assert.ErrorIs(t, err, store.ErrProjectNotFound)
	})

	t.Run("deleting a secret does not cascade", func(t *testing.T) {
		secrets, projects := newStores()
		s, _ := secrets.Create(model.Secret{Name: "a"})
		p, _ := projects.Create(model.Project{Name: "P"})
		_, _ = projects.AttachSecret(p.Identifier, s.Identifier)

		require.NoError(t, secrets.Delete(s.Identifier))

		got, err := projects.Get(p.Identifier)
		require.NoError(t, err)
		assert.Equal(t, []string{s.Identifier}, got.Secrets)
	})
}

func TestProjectsStoreConcurrentReferences(t *testing.T) {
	_, projects := newStores()
	p, err := projects.Create(model.Project{Name: "busy"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = projects.AddSecretReference(p.Identifier, fmt.Sprintf("s%d", i%10))
		}(i)
	}
	wg.Wait()

	got, err := projects.Get(p.Identifier)
	require.NoError(t, err)
	assert.Len(t, got.Secrets, 10)
}
