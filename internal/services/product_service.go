package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sdtech_backend/internal/models"
	"sdtech_backend/internal/notifications"
	"sdtech_backend/internal/repositories"
	"sdtech_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

// ProductRequest is used for both create and full-overwrite update.
type ProductRequest struct {
	Name     string          `json:"name" binding:"required"`
	Category string          `json:"category"`
	Amount   int             `json:"amount" binding:"min=0"`
	Price    decimal.Decimal `json:"price"`
	MinStock int             `json:"min_stock" binding:"min=0"`
	Supplier string          `json:"supplier"`
}

func (r ProductRequest) validate() error {
	if utils.IsEmpty(r.Name) {
		return fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}
	if r.Amount < 0 || r.MinStock < 0 {
		return fmt.Errorf("%w: amount and min_stock must be non-negative", ErrValidation)
	}
	if r.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	return nil
}

func (r ProductRequest) toModel(id string) *models.Product {
	return &models.Product{
		ID:       id,
		Name:     strings.TrimSpace(r.Name),
		Category: strings.TrimSpace(r.Category),
		Amount:   r.Amount,
		Price:    r.Price,
		MinStock: r.MinStock,
		Supplier: strings.TrimSpace(r.Supplier),
	}
}

type ProductService interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	GetLowStockProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, req ProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, req ProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) (*models.Product, error)
}

type productService struct {
	productRepo repositories.ProductRepository
	notifier    notifications.Notifier
}

func NewProductService(repo repositories.ProductRepository, notifier notifications.Notifier) ProductService {
	return &productService{productRepo: repo, notifier: notifier}
}

func (s *productService) GetProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}
	return product, nil
}

func (s *productService) GetLowStockProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.productRepo.FindLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get low stock products: %w", err)
	}
	return products, nil
}

func (s *productService) CreateProduct(ctx context.Context, req ProductRequest) (*models.Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	product, err := s.productRepo.Create(ctx, req.toModel(""))
	if err != nil {
		return nil, fmt.Errorf("failed to create product in repository: %w", err)
	}
	s.checkStock(ctx, product)
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*models.Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	product, err := s.productRepo.Update(ctx, req.toModel(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	s.checkStock(ctx, product)
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}
	return product, nil
}

func (s *productService) checkStock(ctx context.Context, product *models.Product) {
	if s.notifier != nil && product.IsLowStock() {
		s.notifier.Notify(ctx, notifications.EventLowStock, product)
	}
}
