package auth

import (
	"context"

	"github.com/mmynk/shoplist/internal/models"
)

// Authenticator turns login credentials into a shopper account.
// AuthService depends only on this, so sign-in methods can change without
// touching how sessions are issued.
type Authenticator interface {
	// Register stores a new account. It fails with ErrEmailExists when the
	// address is taken and with the ValidateCredential error for a bad
	// credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the account for email. A wrong credential and an
	// unknown email both give ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential reports whether credential may be registered.
	ValidateCredential(credential string) error
}

var _ Authenticator = (*PasswordAuthenticator)(nil)
