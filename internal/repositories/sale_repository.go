package repositories

import (
	"context"
	"time"

	"sdtech_backend/internal/database"
	"sdtech_backend/internal/models"

	"github.com/google/uuid"
)

const saleColumns = `id, product, quantity, price, total, ticket_number, client, payment_method,
	subtotal, tax, warranty, sale_date, sale_time, created_at`

// SaleRepository has no update: sales are append-only and deletable for correction.
type SaleRepository interface {
	FindAll(ctx context.Context) ([]models.Sale, error)
	FindByID(ctx context.Context, id string) (*models.Sale, error)
	Create(ctx context.Context, sale *models.Sale) (*models.Sale, error)
	Delete(ctx context.Context, id string) (*models.Sale, error)
}

type saleRepository struct {
	db database.Executor
}

func NewSaleRepository(db database.Executor) SaleRepository {
	return &saleRepository{db: db}
}

func scanSale(row scanner) (*models.Sale, error) {
	s := &models.Sale{}
	err := row.Scan(
		&s.ID, &s.Product, &s.Quantity, &s.Price, &s.Total, &s.TicketNumber, &s.Client, &s.PaymentMethod,
		&s.Subtotal, &s.Tax, &s.Warranty, &s.SaleDate, &s.SaleTime, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *saleRepository) FindAll(ctx context.Context) ([]models.Sale, error) {
	rows, err := r.db.Query(ctx, `SELECT `+saleColumns+` FROM sales ORDER BY created_at DESC`)
	if err != nil {
		return nil, wrapErr(err, "querying sales")
	}
	defer rows.Close()

	sales := []models.Sale{}
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, wrapErr(err, "scanning sale")
		}
		sales = append(sales, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err, "iterating sale rows")
	}
	return sales, nil
}

func (r *saleRepository) FindByID(ctx context.Context, id string) (*models.Sale, error) {
	s, err := scanSale(r.db.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr(err, "getting sale by ID "+id)
	}
	return s, nil
}

// Create stores the sale exactly as submitted; totals are not recomputed.
func (r *saleRepository) Create(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}
	query := `INSERT INTO sales (id, product, quantity, price, total, ticket_number, client, payment_method,
	                             subtotal, tax, warranty, sale_date, sale_time, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	          RETURNING ` + saleColumns

	s, err := scanSale(r.db.QueryRow(ctx, query,
		sale.ID, sale.Product, sale.Quantity, sale.Price, sale.Total, sale.TicketNumber, sale.Client,
		sale.PaymentMethod, sale.Subtotal, sale.Tax, sale.Warranty, sale.SaleDate, sale.SaleTime, time.Now(),
	))
	if err != nil {
		return nil, wrapErr(err, "creating sale")
	}
	return s, nil
}

func (r *saleRepository) Delete(ctx context.Context, id string) (*models.Sale, error) {
	s, err := scanSale(r.db.QueryRow(ctx, `DELETE FROM sales WHERE id = $1 RETURNING `+saleColumns, id))
	if err != nil {
		return nil, wrapErr(err, "deleting sale "+id)
	}
	return s, nil
}
