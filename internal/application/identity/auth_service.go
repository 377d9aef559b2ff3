package identity

import (
	"context"
	"errors"
	"time"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
)

// AuthService registers users and issues session tokens
type AuthService struct {
	users identity.UserRepository
	jwt   *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(users identity.UserRepository, jwt *auth.JWTService) *AuthService {
	return &AuthService{users: users, jwt: jwt}
}

// Session is an issued authentication token
type Session struct {
	Token     string
	ExpiresAt time.Time
	UserID    string
	Username  string
	Nickname  string
}

// Register creates a new account. Username uniqueness is checked up
// front so the caller gets ALREADY_EXISTS instead of a bare constraint
// violation from the database.
func (s *AuthService) Register(ctx context.Context, username, password, nickname string) (*Session, error) {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user, err := identity.NewUser(username, password, nickname)
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	return s.issueSession(user)
}

// Login verifies credentials and issues a token. Unknown username and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")
		}
		return nil, err
	}

	if !user.VerifyPassword(password) {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")
	}

	return s.issueSession(user)
}

func (s *AuthService) issueSession(user *identity.User) (*Session, error) {
	token, expiresAt, err := s.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.ID.String(),
		Username:  user.Username,
		Nickname:  user.Nickname,
	}, nil
}
