package repositories

import (
	"context"
	"time"

	"sdtech_backend/internal/database"
	"sdtech_backend/internal/models"

	"github.com/google/uuid"
)

const promotionColumns = `id, name, discount, active, start_date, end_date, description, applicable_categories, created_at, updated_at`

// PromotionRepository defines the interface for promotion-related database operations.
type PromotionRepository interface {
	FindAll(ctx context.Context) ([]models.Promotion, error)
	FindByID(ctx context.Context, id string) (*models.Promotion, error)
	FindActive(ctx context.Context) ([]models.Promotion, error)
	Create(ctx context.Context, promo *models.Promotion) (*models.Promotion, error)
	// Update overwrites the editable fields. A nil active keeps the stored value.
	Update(ctx context.Context, promo *models.Promotion, active *bool) (*models.Promotion, error)
	ToggleActive(ctx context.Context, id string) (*models.Promotion, error)
	Delete(ctx context.Context, id string) (*models.Promotion, error)
}

type promotionRepository struct {
	db database.Executor
}

func NewPromotionRepository(db database.Executor) PromotionRepository {
	return &promotionRepository{db: db}
}

func scanPromotion(row scanner) (*models.Promotion, error) {
	p := &models.Promotion{}
	err := row.Scan(&p.ID, &p.Name, &p.Discount, &p.Active, &p.StartDate, &p.EndDate,
		&p.Description, &p.ApplicableCategories, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *promotionRepository) queryPromotions(ctx context.Context, action, query string, args ...interface{}) ([]models.Promotion, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(err, action)
	}
	defer rows.Close()

	promos := []models.Promotion{}
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, wrapErr(err, "scanning promotion")
		}
		promos = append(promos, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err, "iterating promotion rows")
	}
	return promos, nil
}

func (r *promotionRepository) FindAll(ctx context.Context) ([]models.Promotion, error) {
	return r.queryPromotions(ctx, "querying promotions",
		`SELECT `+promotionColumns+` FROM promotions ORDER BY created_at DESC`)
}

func (r *promotionRepository) FindByID(ctx context.Context, id string) (*models.Promotion, error) {
	p, err := scanPromotion(r.db.QueryRow(ctx, `SELECT `+promotionColumns+` FROM promotions WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr(err, "getting promotion by ID "+id)
	}
	return p, nil
}

func (r *promotionRepository) FindActive(ctx context.Context) ([]models.Promotion, error) {
	return r.queryPromotions(ctx, "querying active promotions",
		`SELECT `+promotionColumns+` FROM promotions WHERE active = TRUE ORDER BY created_at DESC`)
}

func (r *promotionRepository) Create(ctx context.Context, promo *models.Promotion) (*models.Promotion, error) {
	if promo.ID == "" {
		promo.ID = uuid.NewString()
	}
	now := time.Now()
	query := `INSERT INTO promotions (id, name, discount, active, start_date, end_date, description,
	                                  applicable_categories, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING ` + promotionColumns

	p, err := scanPromotion(r.db.QueryRow(ctx, query,
		promo.ID, promo.Name, promo.Discount, promo.Active, promo.StartDate, promo.EndDate,
		promo.Description, promo.ApplicableCategories, now, now,
	))
	if err != nil {
		return nil, wrapErr(err, "creating promotion")
	}
	return p, nil
}

func (r *promotionRepository) Update(ctx context.Context, promo *models.Promotion, active *bool) (*models.Promotion, error) {
	query := `UPDATE promotions SET
	            name = $1, discount = $2, active = COALESCE($3, active), start_date = $4, end_date = $5,
	            description = $6, applicable_categories = $7, updated_at = $8
	          WHERE id = $9
	          RETURNING ` + promotionColumns

	p, err := scanPromotion(r.db.QueryRow(ctx, query,
		promo.Name, promo.Discount, active, promo.StartDate, promo.EndDate,
		promo.Description, promo.ApplicableCategories, time.Now(), promo.ID,
	))
	if err != nil {
		return nil, wrapErr(err, "updating promotion "+promo.ID)
	}
	return p, nil
}

// ToggleActive negates active in a single statement, so concurrent toggles never lose an update.
func (r *promotionRepository) ToggleActive(ctx context.Context, id string) (*models.Promotion, error) {
	query := `UPDATE promotions SET active = NOT active, updated_at = $1
	          WHERE id = $2
	          RETURNING ` + promotionColumns

	p, err := scanPromotion(r.db.QueryRow(ctx, query, time.Now(), id))
	if err != nil {
		return nil, wrapErr(err, "toggling promotion "+id)
	}
	return p, nil
}

func (r *promotionRepository) Delete(ctx context.Context, id string) (*models.Promotion, error) {
	p, err := scanPromotion(r.db.QueryRow(ctx, `DELETE FROM promotions WHERE id = $1 RETURNING `+promotionColumns, id))
	if err != nil {
		return nil, wrapErr(err, "deleting promotion "+id)
	}
	return p, nil
}
