package handlers

import (
	"net/http"

	"sdtech_backend/internal/services"
	"sdtech_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ProductHandler holds the product service.
type ProductHandler struct {
	productService services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(ps services.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

// GetProducts handles fetching all products.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.GetProducts(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetProducts: Error from productService.GetProducts")
		utils.RespondInternalError(c, "Failed to fetch products.", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetLowStockProducts lists products under their reorder threshold.
func (h *ProductHandler) GetLowStockProducts(c *gin.Context) {
	products, err := h.productService.GetLowStockProducts(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetLowStockProducts: Error from productService.GetLowStockProducts")
		utils.RespondInternalError(c, "Failed to fetch low stock products.", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProductByID handles fetching a single product by ID.
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id := c.Param("id")
	product, err := h.productService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		utils.LogError(err, "GetProductByID: Error from productService.GetProductByID for ID "+id)
		respondServiceError(c, err, services.ErrProductNotFound, "Product not found.", "Failed to fetch product.")
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct handles the creation of a new product.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.ProductRequest
	if !bindJSON(c, &req, "CreateProduct") {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "CreateProduct: Error from productService.CreateProduct")
		respondServiceError(c, err, nil, "", "Failed to create product.")
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles a full overwrite of a product.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	var req services.ProductRequest
	if !bindJSON(c, &req, "UpdateProduct") {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		utils.LogError(err, "UpdateProduct: Error from productService.UpdateProduct for ID "+id)
		respondServiceError(c, err, services.ErrProductNotFound, "Product not found to update.", "Failed to update product.")
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles deleting a product.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		utils.LogError(err, "DeleteProduct: Error from productService.DeleteProduct for ID "+id)
		respondServiceError(c, err, services.ErrProductNotFound, "Product not found to delete.", "Failed to delete product.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
