package handlers

import (
	"context"
	"net/http"
	"time"

	"sdtech_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Pinger is the part of the database the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
	Backend() string
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health answers 200 while the database responds.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		utils.LogError(err, "Health: database ping failed")
		utils.RespondServiceUnavailable(c, "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"status":  "OK",
		"message": "SD Technology API is running",
		"backend": h.db.Backend(),
	})
}
