package repositories

import (
	"context"
	"time"

	"sdtech_backend/internal/database"
	"sdtech_backend/internal/models"

	"github.com/google/uuid"
)

const productColumns = `id, name, category, amount, price, min_stock, supplier, created_at, updated_at`

// ProductRepository defines the interface for product-related database operations.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	FindLowStock(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) (*models.Product, error)
}

type productRepository struct {
	db database.Executor
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db database.Executor) ProductRepository {
	return &productRepository{db: db}
}

func scanProduct(row scanner) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Amount, &p.Price, &p.MinStock, &p.Supplier, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) queryProducts(ctx context.Context, action, query string, args ...interface{}) ([]models.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(err, action)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrapErr(err, "scanning product")
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err, "iterating product rows")
	}
	return products, nil
}

// FindAll returns every product, newest first.
func (r *productRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	return r.queryProducts(ctx, "querying products",
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
}

// FindByID retrieves a product by its ID.
func (r *productRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr(err, "getting product by ID "+id)
	}
	return p, nil
}

// FindLowStock returns the products whose amount is under min_stock.
func (r *productRepository) FindLowStock(ctx context.Context) ([]models.Product, error) {
	return r.queryProducts(ctx, "querying low stock products",
		`SELECT `+productColumns+` FROM products WHERE amount < min_stock ORDER BY amount ASC`)
}

// Create inserts a product, generating its ID when absent, and returns the stored row.
func (r *productRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	now := time.Now()
	query := `INSERT INTO products (id, name, category, amount, price, min_stock, supplier, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING ` + productColumns

	p, err := scanProduct(r.db.QueryRow(ctx, query,
		product.ID, product.Name, product.Category, product.Amount, product.Price,
		product.MinStock, product.Supplier, now, now,
	))
	if err != nil {
		return nil, wrapErr(err, "creating product")
	}
	return p, nil
}

// Update overwrites every editable field and refreshes updated_at.
func (r *productRepository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	query := `UPDATE products SET
	            name = $1, category = $2, amount = $3, price = $4,
	            min_stock = $5, supplier = $6, updated_at = $7
	          WHERE id = $8
	          RETURNING ` + productColumns

	p, err := scanProduct(r.db.QueryRow(ctx, query,
		product.Name, product.Category, product.Amount, product.Price,
		product.MinStock, product.Supplier, time.Now(), product.ID,
	))
	if err != nil {
		return nil, wrapErr(err, "updating product "+product.ID)
	}
	return p, nil
}

// Delete removes a product and returns the deleted row.
func (r *productRepository) Delete(ctx context.Context, id string) (*models.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `DELETE FROM products WHERE id = $1 RETURNING `+productColumns, id))
	if err != nil {
		return nil, wrapErr(err, "deleting product "+id)
	}
	return p, nil
}
