package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nchoi/atelier-backend/internal/app/model"
	"github.com/nchoi/atelier-backend/pkg/kv"
)

func setupUserRepo(t *testing.T) (UserRepository, kv.Store) {
	store, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})

	repo, err := NewUserRepository(store)
	require.NoError(t, err)
	return repo, store
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo, _ := setupUserRepo(t)

	user := &model.User{
		ID:           "u1",
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$hash",
		Name:         "Ada",
		Role:         model.RoleUser,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(user))

	found, err := repo.FindByEmail("ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", found.ID)

	found, err = repo.FindByID("u1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", found.Email)

	_, err = repo.FindByID("missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_PasswordHashSurvivesReload(t *testing.T) {
	repo, store := setupUserRepo(t)

	user := &model.User{
		ID:           "u1",
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$hash",
		Name:         "Ada",
		Role:         model.RoleUser,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(user))

	// Rebuild the repository over the same store, as a process restart does.
	reloaded, err := NewUserRepository(store)
	require.NoError(t, err)

	found, err := reloaded.FindByID("u1")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$hash", found.PasswordHash)
	assert.Equal(t, model.RoleUser, found.Role)
}

func TestUserRepository_UpdateMissingUser(t *testing.T) {
	repo, _ := setupUserRepo(t)

	err := repo.Update(&model.User{ID: "ghost"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
