package repositories

import (
	"context"
	"strings"
	"time"

	"sdtech_backend/internal/database"
	"sdtech_backend/internal/models"

	"github.com/google/uuid"
)

// IdentityRepository stores locally managed login identities (direct Postgres mode).
type IdentityRepository interface {
	Create(ctx context.Context, executor database.Executor, identity *models.Identity) (*models.Identity, error)
	FindByEmail(ctx context.Context, email string) (*models.Identity, error)
	Delete(ctx context.Context, executor database.Executor, id string) error
}

type identityRepository struct {
	db database.Executor
}

func NewIdentityRepository(db database.Executor) IdentityRepository {
	return &identityRepository{db: db}
}

func (r *identityRepository) Create(ctx context.Context, executor database.Executor, identity *models.Identity) (*models.Identity, error) {
	if executor == nil {
		executor = r.db
	}
	if identity.ID == "" {
		identity.ID = uuid.NewString()
	}
	query := `INSERT INTO auth_identities (id, email, password_hash, created_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, email, password_hash, created_at`

	out := &models.Identity{}
	err := executor.QueryRow(ctx, query, identity.ID, strings.ToLower(identity.Email), identity.PasswordHash, time.Now()).
		Scan(&out.ID, &out.Email, &out.PasswordHash, &out.CreatedAt)
	if err != nil {
		return nil, wrapErr(err, "creating identity")
	}
	return out, nil
}

func (r *identityRepository) FindByEmail(ctx context.Context, email string) (*models.Identity, error) {
	out := &models.Identity{}
	err := r.db.QueryRow(ctx, `SELECT id, email, password_hash, created_at FROM auth_identities WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email))).
		Scan(&out.ID, &out.Email, &out.PasswordHash, &out.CreatedAt)
	if err != nil {
		return nil, wrapErr(err, "getting identity by email")
	}
	return out, nil
}

func (r *identityRepository) Delete(ctx context.Context, executor database.Executor, id string) error {
	if executor == nil {
		executor = r.db
	}
	affected, err := executor.Exec(ctx, `DELETE FROM auth_identities WHERE id = $1`, id)
	if err != nil {
		return wrapErr(err, "deleting identity "+id)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
