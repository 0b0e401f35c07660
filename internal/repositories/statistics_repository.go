package repositories

import (
	"context"

	"sdtech_backend/internal/database"
	"sdtech_backend/internal/models"
)

// StatisticsRepository computes the dashboard figures in SQL on every call.
type StatisticsRepository interface {
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

type statisticsRepository struct {
	db database.Executor
}

func NewStatisticsRepository(db database.Executor) StatisticsRepository {
	return &statisticsRepository{db: db}
}

func (r *statisticsRepository) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	query := `SELECT
	            (SELECT COUNT(*) FROM products),
	            (SELECT COUNT(*) FROM products WHERE amount < min_stock),
	            (SELECT COUNT(*) FROM sales),
	            (SELECT COALESCE(SUM(total), 0) FROM sales),
	            (SELECT COUNT(*) FROM promotions WHERE active = TRUE)`

	stats := &models.DashboardStats{}
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalProducts, &stats.LowStockCount, &stats.TotalSalesCount, &stats.TotalRevenue, &stats.ActivePromosCount,
	)
	if err != nil {
		return nil, wrapErr(err, "computing dashboard statistics")
	}
	return stats, nil
}
