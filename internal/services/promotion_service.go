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

var ErrPromotionNotFound = errors.New("promotion not found")

var maxDiscount = decimal.NewFromInt(100)

// PromotionRequest is used for create and update. Active defaults to true on create
// and keeps the stored value on update when omitted.
type PromotionRequest struct {
	Name                 string          `json:"name" binding:"required"`
	Discount             decimal.Decimal `json:"discount"`
	Active               *bool           `json:"active"`
	StartDate            string          `json:"start_date"`
	EndDate              string          `json:"end_date"`
	Description          string          `json:"description"`
	ApplicableCategories string          `json:"applicable_categories"`
}

func (r PromotionRequest) validate() error {
	if utils.IsEmpty(r.Name) {
		return fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}
	if r.Discount.IsNegative() || r.Discount.GreaterThan(maxDiscount) {
		return fmt.Errorf("%w: discount must be a percentage between 0 and 100", ErrValidation)
	}
	return nil
}

func (r PromotionRequest) toModel(id string) *models.Promotion {
	return &models.Promotion{
		ID:                   id,
		Name:                 strings.TrimSpace(r.Name),
		Discount:             r.Discount,
		StartDate:            r.StartDate,
		EndDate:              r.EndDate,
		Description:          r.Description,
		ApplicableCategories: r.ApplicableCategories,
	}
}

type PromotionService interface {
	GetPromotions(ctx context.Context) ([]models.Promotion, error)
	GetActivePromotions(ctx context.Context) ([]models.Promotion, error)
	GetPromotionByID(ctx context.Context, id string) (*models.Promotion, error)
	CreatePromotion(ctx context.Context, req PromotionRequest) (*models.Promotion, error)
	UpdatePromotion(ctx context.Context, id string, req PromotionRequest) (*models.Promotion, error)
	TogglePromotion(ctx context.Context, id string) (*models.Promotion, error)
	DeletePromotion(ctx context.Context, id string) (*models.Promotion, error)
}

type promotionService struct {
	promotionRepo repositories.PromotionRepository
	notifier      notifications.Notifier
}

func NewPromotionService(repo repositories.PromotionRepository, notifier notifications.Notifier) PromotionService {
	return &promotionService{promotionRepo: repo, notifier: notifier}
}

func (s *promotionService) GetPromotions(ctx context.Context) ([]models.Promotion, error) {
	promos, err := s.promotionRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get promotions: %w", err)
	}
	return promos, nil
}

func (s *promotionService) GetActivePromotions(ctx context.Context) ([]models.Promotion, error) {
	promos, err := s.promotionRepo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active promotions: %w", err)
	}
	return promos, nil
}

func (s *promotionService) GetPromotionByID(ctx context.Context, id string) (*models.Promotion, error) {
	promo, err := s.promotionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapErr(err, "get")
	}
	return promo, nil
}

func (s *promotionService) CreatePromotion(ctx context.Context, req PromotionRequest) (*models.Promotion, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	promo := req.toModel("")
	promo.Active = true
	if req.Active != nil {
		promo.Active = *req.Active
	}
	created, err := s.promotionRepo.Create(ctx, promo)
	if err != nil {
		return nil, fmt.Errorf("failed to create promotion in repository: %w", err)
	}
	s.checkActive(ctx, created)
	return created, nil
}

func (s *promotionService) UpdatePromotion(ctx context.Context, id string, req PromotionRequest) (*models.Promotion, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	updated, err := s.promotionRepo.Update(ctx, req.toModel(id), req.Active)
	if err != nil {
		return nil, s.mapErr(err, "update")
	}
	s.checkActive(ctx, updated)
	return updated, nil
}

func (s *promotionService) TogglePromotion(ctx context.Context, id string) (*models.Promotion, error) {
	toggled, err := s.promotionRepo.ToggleActive(ctx, id)
	if err != nil {
		return nil, s.mapErr(err, "toggle")
	}
	s.checkActive(ctx, toggled)
	return toggled, nil
}

func (s *promotionService) DeletePromotion(ctx context.Context, id string) (*models.Promotion, error) {
	deleted, err := s.promotionRepo.Delete(ctx, id)
	if err != nil {
		return nil, s.mapErr(err, "delete")
	}
	return deleted, nil
}

func (s *promotionService) mapErr(err error, action string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrPromotionNotFound
	}
	return fmt.Errorf("failed to %s promotion: %w", action, err)
}

func (s *promotionService) checkActive(ctx context.Context, promo *models.Promotion) {
	if s.notifier != nil && promo.Active {
		s.notifier.Notify(ctx, notifications.EventPromotionActivated, promo)
	}
}
