package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sdtech_backend/internal/models"
	"sdtech_backend/internal/repositories"
	"sdtech_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

var ErrSaleNotFound = errors.New("sale not found")

// CreateSaleRequest carries totals computed by the client; they are stored as submitted.
type CreateSaleRequest struct {
	Product       string          `json:"product" binding:"required"`
	Quantity      int             `json:"quantity" binding:"min=0"`
	Price         decimal.Decimal `json:"price"`
	Total         decimal.Decimal `json:"total"`
	TicketNumber  string          `json:"ticket_number"`
	Client        string          `json:"client"`
	PaymentMethod string          `json:"payment_method"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Warranty      string          `json:"warranty"`
	SaleDate      string          `json:"sale_date"`
	SaleTime      string          `json:"sale_time"`
}

type SaleService interface {
	GetSales(ctx context.Context) ([]models.Sale, error)
	GetSaleByID(ctx context.Context, id string) (*models.Sale, error)
	CreateSale(ctx context.Context, req CreateSaleRequest) (*models.Sale, error)
	DeleteSale(ctx context.Context, id string) (*models.Sale, error)
}

type saleService struct {
	saleRepo repositories.SaleRepository
}

func NewSaleService(repo repositories.SaleRepository) SaleService {
	return &saleService{saleRepo: repo}
}

func (s *saleService) GetSales(ctx context.Context) ([]models.Sale, error) {
	sales, err := s.saleRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales: %w", err)
	}
	return sales, nil
}

func (s *saleService) GetSaleByID(ctx context.Context, id string) (*models.Sale, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to get sale by ID: %w", err)
	}
	return sale, nil
}

func (s *saleService) CreateSale(ctx context.Context, req CreateSaleRequest) (*models.Sale, error) {
	if utils.IsEmpty(req.Product) {
		return nil, fmt.Errorf("%w: product cannot be empty", ErrValidation)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}
	sale, err := s.saleRepo.Create(ctx, &models.Sale{
		Product:       strings.TrimSpace(req.Product),
		Quantity:      req.Quantity,
		Price:         req.Price,
		Total:         req.Total,
		TicketNumber:  req.TicketNumber,
		Client:        req.Client,
		PaymentMethod: req.PaymentMethod,
		Subtotal:      req.Subtotal,
		Tax:           req.Tax,
		Warranty:      req.Warranty,
		SaleDate:      req.SaleDate,
		SaleTime:      req.SaleTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sale in repository: %w", err)
	}
	return sale, nil
}

func (s *saleService) DeleteSale(ctx context.Context, id string) (*models.Sale, error) {
	sale, err := s.saleRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to delete sale: %w", err)
	}
	return sale, nil
}
