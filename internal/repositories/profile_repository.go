package repositories

import (
	"context"
	"time"

	"sdtech_backend/internal/database"
	"sdtech_backend/internal/models"
)

const profileColumns = `user_id, email, role, active, created_at`

// ProfileRepository manages the profiles table. Write methods take an executor so they
// can join a transaction opened by the caller.
type ProfileRepository interface {
	FindAll(ctx context.Context) ([]models.Profile, error)
	FindByUserID(ctx context.Context, userID string) (*models.Profile, error)
	Create(ctx context.Context, executor database.Executor, profile *models.Profile) (*models.Profile, error)
	// Update changes role and/or active; nil leaves the stored value.
	Update(ctx context.Context, executor database.Executor, userID string, role *string, active *bool) (*models.Profile, error)
	Delete(ctx context.Context, executor database.Executor, userID string) (*models.Profile, error)
}

type profileRepository struct {
	db database.Executor
}

func NewProfileRepository(db database.Executor) ProfileRepository {
	return &profileRepository{db: db}
}

func scanProfile(row scanner) (*models.Profile, error) {
	p := &models.Profile{}
	if err := row.Scan(&p.UserID, &p.Email, &p.Role, &p.Active, &p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) FindAll(ctx context.Context) ([]models.Profile, error) {
	rows, err := r.db.Query(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, wrapErr(err, "querying profiles")
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, wrapErr(err, "scanning profile")
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err, "iterating profile rows")
	}
	return profiles, nil
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID))
	if err != nil {
		return nil, wrapErr(err, "getting profile "+userID)
	}
	return p, nil
}

func (r *profileRepository) Create(ctx context.Context, executor database.Executor, profile *models.Profile) (*models.Profile, error) {
	if executor == nil {
		executor = r.db
	}
	query := `INSERT INTO profiles (user_id, email, role, active, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING ` + profileColumns

	p, err := scanProfile(executor.QueryRow(ctx, query, profile.UserID, profile.Email, profile.Role, profile.Active, time.Now()))
	if err != nil {
		return nil, wrapErr(err, "creating profile")
	}
	return p, nil
}

func (r *profileRepository) Update(ctx context.Context, executor database.Executor, userID string, role *string, active *bool) (*models.Profile, error) {
	if executor == nil {
		executor = r.db
	}
	query := `UPDATE profiles SET role = COALESCE($1, role), active = COALESCE($2, active)
	          WHERE user_id = $3
	          RETURNING ` + profileColumns

	p, err := scanProfile(executor.QueryRow(ctx, query, role, active, userID))
	if err != nil {
		return nil, wrapErr(err, "updating profile "+userID)
	}
	return p, nil
}

func (r *profileRepository) Delete(ctx context.Context, executor database.Executor, userID string) (*models.Profile, error) {
	if executor == nil {
		executor = r.db
	}
	p, err := scanProfile(executor.QueryRow(ctx, `DELETE FROM profiles WHERE user_id = $1 RETURNING `+profileColumns, userID))
	if err != nil {
		return nil, wrapErr(err, "deleting profile "+userID)
	}
	return p, nil
}
