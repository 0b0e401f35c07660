package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"sdtech_backend/internal/models"
	"sdtech_backend/internal/repositories"
	"sdtech_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the middlewares.
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextProfile   = "profile"
)

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authorization header required", ""))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid authorization header format. Use Bearer <token>", ""))
			return
		}

		claims, err := utils.ValidateToken(secret, parts[1])
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired token", err.Error()))
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextUserEmail, claims.Email)

		c.Next()
	}
}

// ProfileLookup finds the profile of an authenticated user.
type ProfileLookup interface {
	FindByUserID(ctx context.Context, userID string) (*models.Profile, error)
}

// ProfileRoleMiddleware loads the caller's profile and requires it to be active with one of allowedRoles.
// The role is read from the database, not the token, so demotions apply immediately.
func ProfileRoleMiddleware(profiles ProfileLookup, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(ContextUserID)
		if userID == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "User not found in context. Ensure AuthMiddleware runs first.", ""))
			return
		}

		profile, err := profiles.FindByUserID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "No profile for this user", ""))
				return
			}
			utils.LogError(err, "ProfileRoleMiddleware: profile lookup failed for "+userID)
			utils.RespondInternalError(c, "Failed to load user profile", err)
			return
		}

		if !profile.HasRole(allowedRoles...) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
				"You do not have permission to access this resource. Required roles: "+strings.Join(allowedRoles, ", "), ""))
			return
		}

		c.Set(ContextProfile, profile)
		c.Next()
	}
}
