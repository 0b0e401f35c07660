package apiclient

import (
	"context"
	"net/http"

	"sdtech_backend/internal/models"
	"sdtech_backend/internal/services"
)

const (
	salesPath   = "/sales"
	reportsPath = "/reports"
)

func (c *Client) ListSales(ctx context.Context) ([]models.Sale, error) {
	var out []models.Sale
	err := c.do(ctx, http.MethodGet, salesPath, nil, &out)
	return out, err
}

func (c *Client) GetSale(ctx context.Context, id string) (*models.Sale, error) {
	var out models.Sale
	if err := c.do(ctx, http.MethodGet, idPath(salesPath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSale(ctx context.Context, req services.CreateSaleRequest) (*models.Sale, error) {
	var out models.Sale
	if err := c.do(ctx, http.MethodPost, salesPath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSale(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, idPath(salesPath, id), nil, nil)
}

func (c *Client) ListReports(ctx context.Context) ([]models.Report, error) {
	var out []models.Report
	err := c.do(ctx, http.MethodGet, reportsPath, nil, &out)
	return out, err
}

func (c *Client) GetReport(ctx context.Context, id string) (*models.Report, error) {
	var out models.Report
	if err := c.do(ctx, http.MethodGet, idPath(reportsPath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateReport asks the server to snapshot a new report of req.Type.
func (c *Client) CreateReport(ctx context.Context, req services.CreateReportRequest) (*models.Report, error) {
	var out models.Report
	if err := c.do(ctx, http.MethodPost, reportsPath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteReport(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, idPath(reportsPath, id), nil, nil)
}
