package handlers

import (
	"net/http"

	"sdtech_backend/internal/services"
	"sdtech_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PromotionHandler struct {
	promotionService services.PromotionService
}

func NewPromotionHandler(ps services.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotionService: ps}
}

func (h *PromotionHandler) GetPromotions(c *gin.Context) {
	promos, err := h.promotionService.GetPromotions(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetPromotions: Error from promotionService.GetPromotions")
		utils.RespondInternalError(c, "Failed to fetch promotions.", err)
		return
	}
	c.JSON(http.StatusOK, promos)
}

func (h *PromotionHandler) GetActivePromotions(c *gin.Context) {
	promos, err := h.promotionService.GetActivePromotions(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetActivePromotions: Error from promotionService.GetActivePromotions")
		utils.RespondInternalError(c, "Failed to fetch active promotions.", err)
		return
	}
	c.JSON(http.StatusOK, promos)
}

func (h *PromotionHandler) GetPromotionByID(c *gin.Context) {
	id := c.Param("id")
	promo, err := h.promotionService.GetPromotionByID(c.Request.Context(), id)
	if err != nil {
		utils.LogError(err, "GetPromotionByID: Error for ID "+id)
		respondServiceError(c, err, services.ErrPromotionNotFound, "Promotion not found.", "Failed to fetch promotion.")
		return
	}
	c.JSON(http.StatusOK, promo)
}

func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	var req services.PromotionRequest
	if !bindJSON(c, &req, "CreatePromotion") {
		return
	}
	promo, err := h.promotionService.CreatePromotion(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "CreatePromotion: Error from promotionService.CreatePromotion")
		respondServiceError(c, err, nil, "", "Failed to create promotion.")
		return
	}
	c.JSON(http.StatusCreated, promo)
}

func (h *PromotionHandler) UpdatePromotion(c *gin.Context) {
	id := c.Param("id")
	var req services.PromotionRequest
	if !bindJSON(c, &req, "UpdatePromotion") {
		return
	}
	promo, err := h.promotionService.UpdatePromotion(c.Request.Context(), id, req)
	if err != nil {
		utils.LogError(err, "UpdatePromotion: Error for ID "+id)
		respondServiceError(c, err, services.ErrPromotionNotFound, "Promotion not found to update.", "Failed to update promotion.")
		return
	}
	c.JSON(http.StatusOK, promo)
}

// TogglePromotion flips the active flag.
func (h *PromotionHandler) TogglePromotion(c *gin.Context) {
	id := c.Param("id")
	promo, err := h.promotionService.TogglePromotion(c.Request.Context(), id)
	if err != nil {
		utils.LogError(err, "TogglePromotion: Error for ID "+id)
		respondServiceError(c, err, services.ErrPromotionNotFound, "Promotion not found.", "Failed to toggle promotion.")
		return
	}
	c.JSON(http.StatusOK, promo)
}

func (h *PromotionHandler) DeletePromotion(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.promotionService.DeletePromotion(c.Request.Context(), id); err != nil {
		utils.LogError(err, "DeletePromotion: Error for ID "+id)
		respondServiceError(c, err, services.ErrPromotionNotFound, "Promotion not found to delete.", "Failed to delete promotion.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Promotion deleted successfully"})
}
