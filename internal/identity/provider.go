// Package identity manages the authentication accounts that admin profiles are paired with.
package identity

import (
	"context"
	"errors"

	"sdtech_backend/internal/database"
	"sdtech_backend/internal/models"
)

var (
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNoServiceRole means the provider cannot perform admin operations.
	ErrNoServiceRole = errors.New("identity provider has no service role")
)

// Provider names reported in health checks.
const (
	ProviderLocal    = "local"
	ProviderSupabase = "supabase"
)

// Provider creates, deletes and authenticates identities.
type Provider interface {
	Name() string
	// ServiceRole reports whether admin operations (create/delete) are available.
	ServiceRole() bool
	CreateIdentity(ctx context.Context, email, password string) (*models.Identity, error)
	DeleteIdentity(ctx context.Context, id string) error
	Authenticate(ctx context.Context, email, password string) (*models.Identity, error)
	Ping(ctx context.Context) error
}

// TxProvider is implemented by providers whose identities live in the application
// database, so they can be written in the same transaction as the profile.
type TxProvider interface {
	Provider
	CreateIdentityTx(ctx context.Context, tx database.Executor, email, password string) (*models.Identity, error)
	DeleteIdentityTx(ctx context.Context, tx database.Executor, id string) error
}
