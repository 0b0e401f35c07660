package repositories

import (
	"context"
	"time"

	"sdtech_backend/internal/database"
	"sdtech_backend/internal/models"

	"github.com/google/uuid"
)

const reportColumns = `id, title, type, report_date, status, description, period,
	total_sales, revenue, total_products, low_stock_items, active_promos, total_discount, created_at`

// ReportRepository stores report snapshots. Reports are never updated.
type ReportRepository interface {
	FindAll(ctx context.Context) ([]models.Report, error)
	FindByID(ctx context.Context, id string) (*models.Report, error)
	Create(ctx context.Context, report *models.Report) (*models.Report, error)
	Delete(ctx context.Context, id string) (*models.Report, error)
}

type reportRepository struct {
	db database.Executor
}

func NewReportRepository(db database.Executor) ReportRepository {
	return &reportRepository{db: db}
}

func scanReport(row scanner) (*models.Report, error) {
	rp := &models.Report{}
	err := row.Scan(
		&rp.ID, &rp.Title, &rp.Type, &rp.ReportDate, &rp.Status, &rp.Description, &rp.Period,
		&rp.TotalSales, &rp.Revenue, &rp.TotalProducts, &rp.LowStockItems, &rp.ActivePromos, &rp.TotalDiscount,
		&rp.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rp, nil
}

func (r *reportRepository) FindAll(ctx context.Context) ([]models.Report, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reportColumns+` FROM reports ORDER BY created_at DESC`)
	if err != nil {
		return nil, wrapErr(err, "querying reports")
	}
	defer rows.Close()

	reports := []models.Report{}
	for rows.Next() {
		rp, err := scanReport(rows)
		if err != nil {
			return nil, wrapErr(err, "scanning report")
		}
		reports = append(reports, *rp)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err, "iterating report rows")
	}
	return reports, nil
}

func (r *reportRepository) FindByID(ctx context.Context, id string) (*models.Report, error) {
	rp, err := scanReport(r.db.QueryRow(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr(err, "getting report by ID "+id)
	}
	return rp, nil
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) (*models.Report, error) {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	query := `INSERT INTO reports (id, title, type, report_date, status, description, period,
	                               total_sales, revenue, total_products, low_stock_items, active_promos, total_discount, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	          RETURNING ` + reportColumns

	rp, err := scanReport(r.db.QueryRow(ctx, query,
		report.ID, report.Title, report.Type, report.ReportDate, report.Status, report.Description, report.Period,
		report.TotalSales, report.Revenue, report.TotalProducts, report.LowStockItems, report.ActivePromos,
		report.TotalDiscount, time.Now(),
	))
	if err != nil {
		return nil, wrapErr(err, "creating report")
	}
	return rp, nil
}

func (r *reportRepository) Delete(ctx context.Context, id string) (*models.Report, error) {
	rp, err := scanReport(r.db.QueryRow(ctx, `DELETE FROM reports WHERE id = $1 RETURNING `+reportColumns, id))
	if err != nil {
		return nil, wrapErr(err, "deleting report "+id)
	}
	return rp, nil
}
