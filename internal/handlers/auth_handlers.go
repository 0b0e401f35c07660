package handlers

import (
	"errors"
	"net/http"

	"sdtech_backend/internal/models"
	"sdtech_backend/internal/services"
	"sdtech_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication requests.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Login handles user login.
func (h *AuthHandler) Login(c *gin.Context) {
	var creds models.Credentials
	if !bindJSON(c, &creds, "Login") {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), creds)
	if err != nil {
		utils.LogError(err, "Login: Error from authService.Login for "+creds.Email)
		switch {
		case errors.Is(err, services.ErrAuthDisabled):
			utils.RespondServiceUnavailable(c, "Authentication is not configured.", err.Error())
		case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrAccountDisabled):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid credentials.", err.Error()))
		default:
			respondServiceError(c, err, nil, "", "Login failed.")
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}
