package identity

import (
	"context"
	"errors"
	"fmt"

	"sdtech_backend/internal/database"
	"sdtech_backend/internal/models"
	"sdtech_backend/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// LocalProvider keeps bcrypt hashed identities in the auth_identities table.
type LocalProvider struct {
	db   database.DB
	repo repositories.IdentityRepository
	cost int
}

func NewLocalProvider(db database.DB, repo repositories.IdentityRepository) *LocalProvider {
	return &LocalProvider{db: db, repo: repo, cost: bcrypt.DefaultCost}
}

func (p *LocalProvider) Name() string      { return ProviderLocal }
func (p *LocalProvider) ServiceRole() bool { return true }

func (p *LocalProvider) CreateIdentity(ctx context.Context, email, password string) (*models.Identity, error) {
	return p.CreateIdentityTx(ctx, nil, email, password)
}

func (p *LocalProvider) CreateIdentityTx(ctx context.Context, tx database.Executor, email, password string) (*models.Identity, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	created, err := p.repo.Create(ctx, tx, &models.Identity{Email: email, PasswordHash: string(hashed)})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}
	return created, nil
}

func (p *LocalProvider) DeleteIdentity(ctx context.Context, id string) error {
	return p.DeleteIdentityTx(ctx, nil, id)
}

func (p *LocalProvider) DeleteIdentityTx(ctx context.Context, tx database.Executor, id string) error {
	if err := p.repo.Delete(ctx, tx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrIdentityNotFound
		}
		return fmt.Errorf("failed to delete identity: %w", err)
	}
	return nil
}

func (p *LocalProvider) Authenticate(ctx context.Context, email, password string) (*models.Identity, error) {
	ident, err := p.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(ident.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return ident, nil
}

func (p *LocalProvider) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}
