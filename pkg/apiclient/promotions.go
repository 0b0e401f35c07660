package apiclient

import (
	"context"
	"net/http"

	"sdtech_backend/internal/models"
	"sdtech_backend/internal/services"
)

const promotionsPath = "/promotions"

func (c *Client) ListPromotions(ctx context.Context) ([]models.Promotion, error) {
	var out []models.Promotion
	err := c.do(ctx, http.MethodGet, promotionsPath, nil, &out)
	return out, err
}

func (c *Client) ActivePromotions(ctx context.Context) ([]models.Promotion, error) {
	var out []models.Promotion
	err := c.do(ctx, http.MethodGet, promotionsPath+"/active", nil, &out)
	return out, err
}

func (c *Client) GetPromotion(ctx context.Context, id string) (*models.Promotion, error) {
	var out models.Promotion
	if err := c.do(ctx, http.MethodGet, idPath(promotionsPath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePromotion(ctx context.Context, req services.PromotionRequest) (*models.Promotion, error) {
	var out models.Promotion
	if err := c.do(ctx, http.MethodPost, promotionsPath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePromotion(ctx context.Context, id string, req services.PromotionRequest) (*models.Promotion, error) {
	var out models.Promotion
	if err := c.do(ctx, http.MethodPut, idPath(promotionsPath, id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TogglePromotion flips the active flag and returns the updated promotion.
func (c *Client) TogglePromotion(ctx context.Context, id string) (*models.Promotion, error) {
	var out models.Promotion
	if err := c.do(ctx, http.MethodPatch, idPath(promotionsPath, id)+"/toggle", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePromotion(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, idPath(promotionsPath, id), nil, nil)
}
