package apiclient

import (
	"context"
	"net/http"

	"sdtech_backend/internal/models"
	"sdtech_backend/internal/services"
)

const productsPath = "/products"

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := c.do(ctx, http.MethodGet, productsPath, nil, &out)
	return out, err
}

func (c *Client) LowStockProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := c.do(ctx, http.MethodGet, productsPath+"/low-stock/alert", nil, &out)
	return out, err
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodGet, idPath(productsPath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, req services.ProductRequest) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodPost, productsPath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, req services.ProductRequest) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodPut, idPath(productsPath, id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, idPath(productsPath, id), nil, nil)
}
