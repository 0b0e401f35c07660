package handlers

import (
	"errors"
	"net/http"

	"sdtech_backend/internal/services"
	"sdtech_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func bindJSON(c *gin.Context, dst interface{}, op string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.LogError(err, op+": Failed to bind JSON")
		utils.RespondValidationFailed(c, err.Error())
		return false
	}
	return true
}

// respondServiceError answers validation and not-found errors with 400/404 and everything else with 500.
func respondServiceError(c *gin.Context, err error, notFound error, notFoundMsg, failMsg string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	case notFound != nil && errors.Is(err, notFound):
		utils.RespondNotFound(c, notFoundMsg, err.Error())
	default:
		utils.RespondInternalError(c, failMsg, err)
	}
}
