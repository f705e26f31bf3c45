package ports

import (
	"context"
	"time"

	"github.com/inkwell/blog-system/internal/core/domain"
)

// CredentialVerifier resolves an email/password pair to a user. It returns
// domain.ErrInvalidCredentials when nothing matches.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*domain.User, error)
}

// TokenIssuer produces the opaque bearer token stored with a session.
type TokenIssuer interface {
	Issue(user domain.User, now time.Time) (string, error)
}

// TokenVerifier is optionally implemented by issuers whose tokens carry a
// verifiable signature.
type TokenVerifier interface {
	Verify(token string) error
}

// SessionService owns the current-user identity.
type SessionService interface {
	Hydrate(ctx context.Context) error
	Login(ctx context.Context, email, password string) (bool, error)
	Register(ctx context.Context, username, email, password string) (bool, error)
	Logout(ctx context.Context) error
	CurrentUser() *domain.User
	IsAuthenticated() bool
	Authenticate(token string) (*domain.User, error)
	Token() string
}
