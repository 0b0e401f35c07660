package handlers

import (
	"net/http"

	"sdtech_backend/internal/services"
	"sdtech_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	saleService services.SaleService
}

func NewSaleHandler(ss services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: ss}
}

func (h *SaleHandler) GetSales(c *gin.Context) {
	sales, err := h.saleService.GetSales(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetSales: Error from saleService.GetSales")
		utils.RespondInternalError(c, "Failed to fetch sales.", err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *SaleHandler) GetSaleByID(c *gin.Context) {
	id := c.Param("id")
	sale, err := h.saleService.GetSaleByID(c.Request.Context(), id)
	if err != nil {
		utils.LogError(err, "GetSaleByID: Error for ID "+id)
		respondServiceError(c, err, services.ErrSaleNotFound, "Sale not found.", "Failed to fetch sale.")
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req services.CreateSaleRequest
	if !bindJSON(c, &req, "CreateSale") {
		return
	}
	sale, err := h.saleService.CreateSale(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "CreateSale: Error from saleService.CreateSale")
		respondServiceError(c, err, nil, "", "Failed to create sale.")
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandler) DeleteSale(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.saleService.DeleteSale(c.Request.Context(), id); err != nil {
		utils.LogError(err, "DeleteSale: Error for ID "+id)
		respondServiceError(c, err, services.ErrSaleNotFound, "Sale not found to delete.", "Failed to delete sale.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted successfully"})
}
