package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report types understood by the report factory.
const (
	ReportTypeSales   = "Sales"
	ReportTypeStock   = "Stock"
	ReportTypePromo   = "Promo"
	ReportTypeGeneral = "General"
)

// Report is a snapshot computed once at creation. Aggregates the type does not cover stay nil.
type Report struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Type        string    `json:"type" db:"type"`
	ReportDate  string    `json:"report_date" db:"report_date"`
	Status      string    `json:"status" db:"status"`
	Description string    `json:"description" db:"description"`
	Period      string    `json:"period" db:"period"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	TotalSales    *int                `json:"total_sales" db:"total_sales"`
	Revenue       decimal.NullDecimal `json:"revenue" db:"revenue"`
	TotalProducts *int                `json:"total_products" db:"total_products"`
	LowStockItems *int                `json:"low_stock_items" db:"low_stock_items"`
	ActivePromos  *int                `json:"active_promos" db:"active_promos"`
	TotalDiscount decimal.NullDecimal `json:"total_discount" db:"total_discount"`
}

// DashboardStats is recomputed on every request.
type DashboardStats struct {
	TotalProducts     int             `json:"totalProducts"`
	LowStockCount     int             `json:"lowStockCount"`
	TotalSalesCount   int             `json:"totalSalesCount"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	ActivePromosCount int             `json:"activePromosCount"`
}
