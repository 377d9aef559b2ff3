package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
)

type fakeUserRepo struct {
	byUsername map[string]*identity.User
	saved      []*identity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byUsername: make(map[string]*identity.User)}
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	for _, u := range f.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*identity.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Save(_ context.Context, user *identity.User) error {
	f.byUsername[user.Username] = user
	f.saved = append(f.saved, user)
	return nil
}

func newTestAuthService() (*AuthService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-0123456789",
		Expiration: time.Hour,
		Issuer:     "storefront-test",
	})
	return NewAuthService(repo, jwtService), repo
}

func TestAuthServiceRegister(t *testing.T) {
	svc, repo := newTestAuthService()

	session, err := svc.Register(context.Background(), "wang_fang", "s3cret-pass", "Wang Fang")
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "wang_fang", session.Username)
	assert.Equal(t, "Wang Fang", session.Nickname)
	assert.True(t, session.ExpiresAt.After(time.Now()))
	require.Len(t, repo.saved, 1)
	assert.NotEqual(t, "s3cret-pass", repo.saved[0].PasswordHash)
}

func TestAuthServiceRegisterDuplicate(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), "wang_fang", "s3cret-pass", "")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "wang_fang", "other-pass99", "")
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestAuthServiceRegisterInvalidUsername(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), "No Spaces Allowed", "s3cret-pass", "")
	assert.Error(t, err)
}

func TestAuthServiceLogin(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), "wang_fang", "s3cret-pass", "")
	require.NoError(t, err)

	session, err := svc.Login(context.Background(), "wang_fang", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), "wang_fang", "s3cret-pass", "")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "wang_fang", "wrong-password")
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestAuthServiceLoginUnknownUser(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Login(context.Background(), "nobody", "whatever-pass")
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}
