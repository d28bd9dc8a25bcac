// Package auth holds the credential-verification capability used by the
// session service and the session tokens it persists.
//
// DemoProvider is a stand-in identity provider that accepts a single fixed
// credential pair; any type implementing Verifier and Registrar can replace it.
package auth

import (
	"context"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
)

// Verifier checks a credential pair and returns the matching user.
// It returns common.ErrInvalidCredentials when the pair is rejected.
type Verifier interface {
	Verify(ctx context.Context, email, password string) (*models.User, error)
}

// Registrar creates a new account.
type Registrar interface {
	Register(ctx context.Context, email, password, displayName string) (*models.User, error)
}

// TokenIssuer mints and validates the opaque session token.
type TokenIssuer interface {
	Issue(userID string) (string, error)
	Parse(token string) (string, error)
}
