package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sdtech_backend/internal/identity"
	"sdtech_backend/internal/models"
	"sdtech_backend/internal/repositories"
	"sdtech_backend/pkg/utils"
)

var (
	ErrAuthDisabled       = errors.New("authentication is not configured")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled or has no profile")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int64           `json:"expires_in"`
	Profile     *models.Profile `json:"profile"`
}

type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*LoginResponse, error)
}

type authService struct {
	provider    identity.Provider
	profileRepo repositories.ProfileRepository
	jwtSecret   []byte
	tokenTTL    time.Duration
}

// NewAuthService returns a service whose Login answers ErrAuthDisabled when jwtSecret is empty.
func NewAuthService(provider identity.Provider, profileRepo repositories.ProfileRepository, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		provider:    provider,
		profileRepo: profileRepo,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
	}
}

func (s *authService) Login(ctx context.Context, creds models.Credentials) (*LoginResponse, error) {
	if len(s.jwtSecret) == 0 || s.provider == nil {
		return nil, ErrAuthDisabled
	}
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || creds.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	ident, err := s.provider.Authenticate(ctx, email, creds.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	profile, err := s.profileRepo.FindByUserID(ctx, ident.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAccountDisabled
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}
	if !profile.Active {
		return nil, ErrAccountDisabled
	}

	token, expiresAt, err := utils.GenerateAccessToken(s.jwtSecret, profile.UserID, profile.Email, profile.Role, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(time.Until(expiresAt).Seconds()),
		Profile:     profile,
	}, nil
}
