package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sdtech_backend/internal/database"
	"sdtech_backend/internal/identity"
	"sdtech_backend/internal/models"
	"sdtech_backend/internal/repositories"
	"sdtech_backend/pkg/utils"
)

var (
	// ErrAdminUnavailable means user management cannot run (no service role on the identity provider).
	ErrAdminUnavailable = errors.New("admin user management is not available")
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailExists      = errors.New("email already exists")
)

const minPasswordLength = 6

type CreateAdminUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Active   *bool  `json:"active"`
}

type UpdateAdminUserRequest struct {
	Role   *string `json:"role"`
	Active *bool   `json:"active"`
}

// AdminUser pairs the identity with its profile.
type AdminUser struct {
	User    *models.Identity `json:"user"`
	Profile *models.Profile  `json:"profile"`
}

// AdminHealth is the capability report of GET /admin/users/health.
type AdminHealth struct {
	OK          bool   `json:"ok"`
	ServiceRole bool   `json:"service_role"`
	Provider    string `json:"provider"`
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx database.Executor) error) error
	Ping(ctx context.Context) error
}

type AdminUserService interface {
	Health(ctx context.Context) (*AdminHealth, error)
	ListUsers(ctx context.Context) ([]models.Profile, error)
	GetUser(ctx context.Context, userID string) (*models.Profile, error)
	CreateUser(ctx context.Context, req CreateAdminUserRequest) (*AdminUser, error)
	UpdateUser(ctx context.Context, userID string, req UpdateAdminUserRequest) (*models.Profile, error)
	DeleteUser(ctx context.Context, userID string) error
}

type adminUserService struct {
	db          txRunner
	profileRepo repositories.ProfileRepository
	provider    identity.Provider
}

func NewAdminUserService(db txRunner, profileRepo repositories.ProfileRepository, provider identity.Provider) AdminUserService {
	return &adminUserService{db: db, profileRepo: profileRepo, provider: provider}
}

func (s *adminUserService) available() error {
	if s.provider == nil || !s.provider.ServiceRole() {
		return ErrAdminUnavailable
	}
	return nil
}

func (s *adminUserService) Health(ctx context.Context) (*AdminHealth, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	if err := s.db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: database: %v", ErrAdminUnavailable, err)
	}
	if err := s.provider.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: identity provider: %v", ErrAdminUnavailable, err)
	}
	return &AdminHealth{OK: true, ServiceRole: true, Provider: s.provider.Name()}, nil
}

func (s *adminUserService) ListUsers(ctx context.Context) ([]models.Profile, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	profiles, err := s.profileRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return profiles, nil
}

func (s *adminUserService) GetUser(ctx context.Context, userID string) (*models.Profile, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return profile, nil
}

func (r *CreateAdminUserRequest) normalize() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" || r.Password == "" {
		return fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	if !utils.IsValidEmail(r.Email) {
		return fmt.Errorf("%w: email format is invalid", ErrValidation)
	}
	if !utils.IsValidPasswordLength(r.Password, minPasswordLength) {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
	if r.Role == "" {
		r.Role = models.RoleEditor
	}
	if !models.IsValidRole(r.Role) {
		return fmt.Errorf("%w: role must be one of admin, editor, viewer", ErrValidation)
	}
	return nil
}

// CreateUser creates the identity and its profile. Providers backed by the application
// database do both in one transaction; the hosted provider deletes the identity again
// if the profile cannot be stored.
func (s *adminUserService) CreateUser(ctx context.Context, req CreateAdminUserRequest) (*AdminUser, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	if err := req.normalize(); err != nil {
		return nil, err
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	profile := &models.Profile{Email: req.Email, Role: req.Role, Active: active}

	if txp, ok := s.provider.(identity.TxProvider); ok {
		result := &AdminUser{}
		err := s.db.WithTx(ctx, func(tx database.Executor) error {
			ident, err := txp.CreateIdentityTx(ctx, tx, req.Email, req.Password)
			if err != nil {
				return err
			}
			profile.UserID = ident.ID
			created, err := s.profileRepo.Create(ctx, tx, profile)
			if err != nil {
				return err
			}
			result.User, result.Profile = ident, created
			return nil
		})
		if err != nil {
			return nil, s.mapCreateErr(err)
		}
		return result, nil
	}

	ident, err := s.provider.CreateIdentity(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.mapCreateErr(err)
	}
	profile.UserID = ident.ID
	created, err := s.profileRepo.Create(ctx, nil, profile)
	if err != nil {
		if delErr := s.provider.DeleteIdentity(ctx, ident.ID); delErr != nil {
			utils.LogError(delErr, fmt.Sprintf("CreateUser: compensation failed, identity %s has no profile", ident.ID))
		} else {
			utils.LogWarn("CreateUser: profile insert failed, identity removed", map[string]interface{}{"user_id": ident.ID})
		}
		return nil, s.mapCreateErr(err)
	}
	return &AdminUser{User: ident, Profile: created}, nil
}

func (s *adminUserService) mapCreateErr(err error) error {
	if errors.Is(err, identity.ErrEmailTaken) || errors.Is(err, repositories.ErrDuplicateKey) {
		return fmt.Errorf("%w: %v", ErrEmailExists, err)
	}
	if errors.Is(err, identity.ErrNoServiceRole) {
		return ErrAdminUnavailable
	}
	return fmt.Errorf("failed to create user: %w", err)
}

func (s *adminUserService) UpdateUser(ctx context.Context, userID string, req UpdateAdminUserRequest) (*models.Profile, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	req.Role = utils.TrimmedOrNil(req.Role)
	if req.Role == nil && req.Active == nil {
		return nil, fmt.Errorf("%w: nothing to update, send role and/or active", ErrValidation)
	}
	if req.Role != nil {
		role := strings.ToLower(*req.Role)
		if !models.IsValidRole(role) {
			return nil, fmt.Errorf("%w: role must be one of admin, editor, viewer", ErrValidation)
		}
		req.Role = &role
	}

	profile, err := s.profileRepo.Update(ctx, nil, userID, req.Role, req.Active)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	utils.LogInfo("Admin user updated", map[string]interface{}{
		"user_id": userID, "role": utils.StringValue(req.Role), "active": profile.Active,
	})
	return profile, nil
}

// DeleteUser removes the identity and the profile.
func (s *adminUserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.available(); err != nil {
		return err
	}

	if txp, ok := s.provider.(identity.TxProvider); ok {
		err := s.db.WithTx(ctx, func(tx database.Executor) error {
			if _, err := s.profileRepo.Delete(ctx, tx, userID); err != nil {
				return err
			}
			if err := txp.DeleteIdentityTx(ctx, tx, userID); err != nil && !errors.Is(err, identity.ErrIdentityNotFound) {
				return err
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	}

	identityGone := false
	if err := s.provider.DeleteIdentity(ctx, userID); err != nil {
		if !errors.Is(err, identity.ErrIdentityNotFound) {
			return fmt.Errorf("failed to delete identity: %w", err)
		}
	} else {
		identityGone = true
	}

	if _, err := s.profileRepo.Delete(ctx, nil, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			if identityGone {
				return nil
			}
			return ErrUserNotFound
		}
		utils.LogError(err, fmt.Sprintf("DeleteUser: identity %s deleted but profile remains", userID))
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
