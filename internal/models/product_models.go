package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Money travels as plain JSON numbers, the way the UI submits it.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is an inventory item with its on-hand quantity and reorder threshold.
type Product struct {
	ID        string          `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Category  string          `json:"category" db:"category"`
	Amount    int             `json:"amount" db:"amount"`
	Price     decimal.Decimal `json:"price" db:"price"`
	MinStock  int             `json:"min_stock" db:"min_stock"`
	Supplier  string          `json:"supplier" db:"supplier"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// IsLowStock reports whether the quantity on hand fell under the reorder threshold.
func (p *Product) IsLowStock() bool {
	return p.Amount < p.MinStock
}
