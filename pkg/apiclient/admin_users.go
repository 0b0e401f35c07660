package apiclient

import (
	"context"
	"net/http"

	"sdtech_backend/internal/models"
	"sdtech_backend/internal/services"
)

const adminUsersPath = "/admin/users"

func (c *Client) AdminHealth(ctx context.Context) (*services.AdminHealth, error) {
	var out services.AdminHealth
	if err := c.do(ctx, http.MethodGet, adminUsersPath+"/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]models.Profile, error) {
	var out []models.Profile
	err := c.do(ctx, http.MethodGet, adminUsersPath, nil, &out)
	return out, err
}

func (c *Client) GetUser(ctx context.Context, userID string) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, http.MethodGet, idPath(adminUsersPath, userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateUser(ctx context.Context, req services.CreateAdminUserRequest) (*services.AdminUser, error) {
	var out services.AdminUser
	if err := c.do(ctx, http.MethodPost, adminUsersPath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, userID string, req services.UpdateAdminUserRequest) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, http.MethodPatch, idPath(adminUsersPath, userID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, idPath(adminUsersPath, userID), nil, nil)
}
