package router

import (
	"sdtech_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupHealthRoutes sets up the public health route.
func SetupHealthRoutes(apiGroup *gin.RouterGroup, healthHandler *handlers.HealthHandler) {
	apiGroup.GET("/health", healthHandler.Health)
}

// SetupAuthRoutes sets up the login route.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler, limiter gin.HandlerFunc) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/login", limiter, authHandler.Login)
	}
}

// SetupProductRoutes sets up the product routes.
func SetupProductRoutes(group *gin.RouterGroup, productHandler *handlers.ProductHandler) {
	productRoutes := group.Group("/products")
	{
		productRoutes.GET("", productHandler.GetProducts)
		productRoutes.GET("/low-stock/alert", productHandler.GetLowStockProducts)
		productRoutes.GET("/:id", productHandler.GetProductByID)
		productRoutes.POST("", productHandler.CreateProduct)
		productRoutes.PUT("/:id", productHandler.UpdateProduct)
		productRoutes.DELETE("/:id", productHandler.DeleteProduct)
	}
}

// SetupPromotionRoutes sets up the promotion routes.
func SetupPromotionRoutes(group *gin.RouterGroup, promotionHandler *handlers.PromotionHandler) {
	promotionRoutes := group.Group("/promotions")
	{
		promotionRoutes.GET("", promotionHandler.GetPromotions)
		promotionRoutes.GET("/active", promotionHandler.GetActivePromotions)
		promotionRoutes.GET("/:id", promotionHandler.GetPromotionByID)
		promotionRoutes.POST("", promotionHandler.CreatePromotion)
		promotionRoutes.PUT("/:id", promotionHandler.UpdatePromotion)
		promotionRoutes.PATCH("/:id/toggle", promotionHandler.TogglePromotion)
		promotionRoutes.DELETE("/:id", promotionHandler.DeletePromotion)
	}
}

// SetupSaleRoutes sets up the sale routes. Sales have no update.
func SetupSaleRoutes(group *gin.RouterGroup, saleHandler *handlers.SaleHandler) {
	saleRoutes := group.Group("/sales")
	{
		saleRoutes.GET("", saleHandler.GetSales)
		saleRoutes.GET("/:id", saleHandler.GetSaleByID)
		saleRoutes.POST("", saleHandler.CreateSale)
		saleRoutes.DELETE("/:id", saleHandler.DeleteSale)
	}
}

// SetupReportRoutes sets up the report and dashboard routes.
func SetupReportRoutes(group *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := group.Group("/reports")
	{
		reportRoutes.GET("", reportHandler.GetReports)
		reportRoutes.GET("/:id", reportHandler.GetReportByID)
		reportRoutes.POST("", reportHandler.CreateReport)
		reportRoutes.DELETE("/:id", reportHandler.DeleteReport)
	}
	group.GET("/statistics/dashboard", reportHandler.GetDashboardStats)
}

// SetupAdminUserRoutes sets up the admin user management routes.
func SetupAdminUserRoutes(group *gin.RouterGroup, adminHandler *handlers.AdminUserHandler, limiter gin.HandlerFunc) {
	adminRoutes := group.Group("/admin/users")
	{
		adminRoutes.GET("/health", adminHandler.Health)
		adminRoutes.GET("", adminHandler.ListUsers)
		adminRoutes.GET("/:id", adminHandler.GetUser)
		adminRoutes.POST("", limiter, adminHandler.CreateUser)
		adminRoutes.PATCH("/:id", adminHandler.UpdateUser)
		adminRoutes.DELETE("/:id", adminHandler.DeleteUser)
	}
}
