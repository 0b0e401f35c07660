package repositories

import (
	"context"
	"testing"
	"time"

	"sdtech_backend/internal/database"
	"sdtech_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*database.SQLDB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return database.NewSQLDB(db), mock
}

var productCols = []string{"id", "name", "category", "amount", "price", "min_stock", "supplier", "created_at", "updated_at"}

func TestProductRepository_CreateGeneratesID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs(sqlmock.AnyArg(), "Mouse", "Peripherals", 2, sqlmock.AnyArg(), 5, "Acme", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow("generated", "Mouse", "Peripherals", 2, "15.00", 5, "Acme", now, now))

	p, err := repo.Create(context.Background(), &models.Product{
		Name: "Mouse", Category: "Peripherals", Amount: 2, Price: decimal.NewFromInt(15), MinStock: 5, Supplier: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "generated", p.ID)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(15)))
	assert.True(t, p.IsLowStock())
}

func TestProductRepository_FindLowStock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)
	now := time.Now()

	mock.ExpectQuery(`FROM products WHERE amount < min_stock`).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow("a", "Cable", "", 1, "3.50", 4, "", now, now).
			AddRow("b", "Mouse", "", 2, "15", 5, "", now, now))

	products, err := repo.FindLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.True(t, p.IsLowStock())
	}
}

func TestProductRepository_FindAllEmptyIsNotNil(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`ORDER BY created_at DESC`).WillReturnRows(sqlmock.NewRows(productCols))

	products, err := NewProductRepository(db).FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestProductRepository_DeleteMissingIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`DELETE FROM products`).WithArgs("missing").WillReturnRows(sqlmock.NewRows(productCols))

	_, err := NewProductRepository(db).Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductRepository_UpdateMissingIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`UPDATE products SET`).WillReturnRows(sqlmock.NewRows(productCols))

	_, err := NewProductRepository(db).Update(context.Background(), &models.Product{ID: "missing", Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductRepository_QueryFailureIsDatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`FROM products`).WillReturnError(assert.AnError)

	_, err := NewProductRepository(db).FindAll(context.Background())
	assert.ErrorIs(t, err, ErrDatabaseError)
}

var promotionCols = []string{"id", "name", "discount", "active", "start_date", "end_date", "description", "applicable_categories", "created_at", "updated_at"}

func TestPromotionRepository_ToggleIsSingleStatement(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	mock.ExpectQuery(`UPDATE promotions SET active = NOT active`).
		WithArgs(sqlmock.AnyArg(), "p1").
		WillReturnRows(sqlmock.NewRows(promotionCols).
			AddRow("p1", "Summer", "10", false, "", "", "", "", now, now))

	p, err := NewPromotionRepository(db).ToggleActive(context.Background(), "p1")
	require.NoError(t, err)
	assert.False(t, p.Active)
}

func TestPromotionRepository_UpdateKeepsActiveWhenNil(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	mock.ExpectQuery(`active = COALESCE\(\$3, active\)`).
		WithArgs("Summer", sqlmock.AnyArg(), nil, "", "", "", "", sqlmock.AnyArg(), "p1").
		WillReturnRows(sqlmock.NewRows(promotionCols).
			AddRow("p1", "Summer", "15", true, "", "", "", "", now, now))

	p, err := NewPromotionRepository(db).Update(context.Background(),
		&models.Promotion{ID: "p1", Name: "Summer", Discount: decimal.NewFromInt(15)}, nil)
	require.NoError(t, err)
	assert.True(t, p.Active)
}

var reportCols = []string{"id", "title", "type", "report_date", "status", "description", "period",
	"total_sales", "revenue", "total_products", "low_stock_items", "active_promos", "total_discount", "created_at"}

func TestReportRepository_FindByIDNullAggregates(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`FROM reports WHERE id = \$1`).WithArgs("r1").
		WillReturnRows(sqlmock.NewRows(reportCols).
			AddRow("r1", "Q1", "Stock", "1/2/2024", "Completado", "", "Actual", nil, nil, 7, 2, nil, nil, time.Now()))

	rp, err := NewReportRepository(db).FindByID(context.Background(), "r1")
	require.NoError(t, err)
	assert.Nil(t, rp.TotalSales)
	assert.False(t, rp.Revenue.Valid)
	require.NotNil(t, rp.TotalProducts)
	assert.Equal(t, 7, *rp.TotalProducts)
	require.NotNil(t, rp.LowStockItems)
	assert.Equal(t, 2, *rp.LowStockItems)
}

func TestStatisticsRepository_GetDashboardStats(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products`).
		WillReturnRows(sqlmock.NewRows([]string{"a", "b", "c", "d", "e"}).AddRow(10, 3, 4, "250.75", 2))

	stats, err := NewStatisticsRepository(db).GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, stats.TotalProducts)
	assert.Equal(t, 3, stats.LowStockCount)
	assert.Equal(t, 4, stats.TotalSalesCount)
	assert.Equal(t, "250.75", stats.TotalRevenue.String())
	assert.Equal(t, 2, stats.ActivePromosCount)
}

func TestProfileRepository_CreateDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`INSERT INTO profiles`).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key", Constraint: "profiles_email_key"})

	_, err := NewProfileRepository(db).Create(context.Background(), nil,
		&models.Profile{UserID: "u1", Email: "a@b.co", Role: models.RoleEditor, Active: true})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestProfileRepository_CreateInsideTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO profiles`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "email", "role", "active", "created_at"}).
			AddRow("u1", "a@b.co", "editor", true, time.Now()))
	mock.ExpectCommit()

	repo := NewProfileRepository(db)
	err := db.WithTx(context.Background(), func(tx database.Executor) error {
		_, err := repo.Create(context.Background(), tx, &models.Profile{UserID: "u1", Email: "a@b.co", Role: "editor", Active: true})
		return err
	})
	require.NoError(t, err)
}
