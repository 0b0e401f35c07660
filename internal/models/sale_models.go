package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is an append-only ticket line. Product holds the product name at sale time, not a reference.
// Totals are computed by the client and stored as submitted.
type Sale struct {
	ID            string          `json:"id" db:"id"`
	Product       string          `json:"product" db:"product"`
	Quantity      int             `json:"quantity" db:"quantity"`
	Price         decimal.Decimal `json:"price" db:"price"`
	Total         decimal.Decimal `json:"total" db:"total"`
	TicketNumber  string          `json:"ticket_number" db:"ticket_number"`
	Client        string          `json:"client" db:"client"`
	PaymentMethod string          `json:"payment_method" db:"payment_method"`
	Subtotal      decimal.Decimal `json:"subtotal" db:"subtotal"`
	Tax           decimal.Decimal `json:"tax" db:"tax"`
	Warranty      string          `json:"warranty" db:"warranty"`
	SaleDate      string          `json:"sale_date" db:"sale_date"`
	SaleTime      string          `json:"sale_time" db:"sale_time"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}
