package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nchoi/atelier-backend/internal/app/model"
	"github.com/nchoi/atelier-backend/internal/app/repository"
	"github.com/nchoi/atelier-backend/pkg/kv"
	"github.com/nchoi/atelier-backend/pkg/util"
)

type fakeProvider struct {
	email string
	name  string
	err   error
}

func (p fakeProvider) Name() string { return "fake" }

func (p fakeProvider) Exchange(string) (string, string, string, error) {
	if p.err != nil {
		return "", "", "", p.err
	}
	return p.email, p.name, "", nil
}

func setupAuthTest(t *testing.T, provider IdentityProvider) AuthService {
	store, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})

	userRepo, err := repository.NewUserRepository(store)
	require.NoError(t, err)

	return NewAuthService(userRepo, provider, "test-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestAuthService_Login_AfterRestart(t *testing.T) {
	store, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})

	userRepo, err := repository.NewUserRepository(store)
	require.NoError(t, err)
	svc := NewAuthService(userRepo, NewStubProvider(), "test-secret", 15*time.Minute, 7*24*time.Hour)

	_, _, err = svc.Register("ada@example.com", "secret1", "Ada")
	require.NoError(t, err)

	// Rebuild the repository and service over the same store, as a
	// process restart does. Credentials must still verify.
	userRepo, err = repository.NewUserRepository(store)
	require.NoError(t, err)
	restarted := NewAuthService(userRepo, NewStubProvider(), "test-secret", 15*time.Minute, 7*24*time.Hour)

	user, tokens, err := restarted.Login("ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestAuthService_Register_Success(t *testing.T) {
	svc := setupAuthTest(t, NewStubProvider())

	user, tokens, err := svc.Register("ada@example.com", "secret1", "Ada")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotNil(t, tokens)

	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := util.ValidateToken(tokens.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestAuthService_Register_AdminEmail(t *testing.T) {
	svc := setupAuthTest(t, NewStubProvider())

	user, _, err := svc.Register("admin@example.com", "secret1", "Admin")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
}

func TestAuthService_Register_PasswordTooShort(t *testing.T) {
	svc := setupAuthTest(t, NewStubProvider())

	_, _, err := svc.Register("ada@example.com", "short", "Ada")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := setupAuthTest(t, NewStubProvider())

	_, _, err := svc.Register("ada@example.com", "secret1", "Ada")
	require.NoError(t, err)

	_, _, err = svc.Register("ADA@example.com", "secret2", "Ada Again")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	svc := setupAuthTest(t, NewStubProvider())

	registered, _, err := svc.Register("ada@example.com", "secret1", "Ada")
	require.NoError(t, err)

	user, tokens, err := svc.Login("ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, tokens.AccessToken)

	_, _, err = svc.Login("ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Passwords under six characters never reach the registry.
	_, _, err = svc.Login("ada@example.com", "short")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginWithProvider(t *testing.T) {
	svc := setupAuthTest(t, fakeProvider{email: "ada@example.com", name: "Ada"})

	user, tokens, err := svc.LoginWithProvider("credential")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)

	// A second sign-in reuses the account.
	again, _, err := svc.LoginWithProvider("credential")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
}

func TestAuthService_LoginWithProvider_Failure(t *testing.T) {
	svc := setupAuthTest(t, fakeProvider{err: errors.New("token rejected")})

	_, _, err := svc.LoginWithProvider("credential")
	assert.ErrorIs(t, err, ErrProviderFailed)
}

func TestAuthService_LoginWithProvider_Unconfigured(t *testing.T) {
	svc := setupAuthTest(t, NewStubProvider())

	_, _, err := svc.LoginWithProvider("credential")
	assert.ErrorIs(t, err, ErrProviderFailed)
}
