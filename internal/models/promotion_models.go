package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promotion is a percentage discount. EndDate is informational; nothing expires automatically.
type Promotion struct {
	ID                   string          `json:"id" db:"id"`
	Name                 string          `json:"name" db:"name"`
	Discount             decimal.Decimal `json:"discount" db:"discount"`
	Active               bool            `json:"active" db:"active"`
	StartDate            string          `json:"start_date" db:"start_date"`
	EndDate              string          `json:"end_date" db:"end_date"`
	Description          string          `json:"description" db:"description"`
	ApplicableCategories string          `json:"applicable_categories" db:"applicable_categories"`
	CreatedAt            time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at" db:"updated_at"`
}
