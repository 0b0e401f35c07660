package router

import (
	"net/http"
	"time"

	"sdtech_backend/internal/database"
	"sdtech_backend/internal/handlers"
	"sdtech_backend/internal/identity"
	"sdtech_backend/internal/middleware"
	"sdtech_backend/internal/models"
	"sdtech_backend/internal/notifications"
	"sdtech_backend/internal/reporting"
	"sdtech_backend/internal/repositories"
	"sdtech_backend/internal/services"
	"sdtech_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Dependencies are the process-wide resources built in main.
type Dependencies struct {
	DB       database.DB
	Notifier notifications.Notifier
	Identity identity.Provider
}

// Options carries the HTTP-facing settings.
type Options struct {
	AllowedOrigins []string

	// An empty JWTSecret leaves the API open and disables login.
	JWTSecret string
	TokenTTL  time.Duration

	// Redis backs the rate limiter; nil disables it.
	Redis           redis.UniversalClient
	RateLimitCount  int
	RateLimitPeriod time.Duration
}

// NewEngine returns a gin engine with logging, recovery, CORS and JSON 404/405 answers.
func NewEngine(allowedOrigins []string) *gin.Engine {
	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	engine.Use(utils.GinLogger())
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		utils.LogWarn("Recovered from panic", map[string]interface{}{"panic": recovered, "path": c.Request.URL.Path})
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal server error", ""))
	}))

	config := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
		config.AllowCredentials = true
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(config))

	engine.NoRoute(notFoundHandler)
	engine.NoMethod(methodNotAllowedHandler(engine))
	return engine
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, deps Dependencies, opts Options) {
	// Initialize Repositories
	productRepo := repositories.NewProductRepository(deps.DB)
	saleRepo := repositories.NewSaleRepository(deps.DB)
	promotionRepo := repositories.NewPromotionRepository(deps.DB)
	reportRepo := repositories.NewReportRepository(deps.DB)
	statisticsRepo := repositories.NewStatisticsRepository(deps.DB)
	profileRepo := repositories.NewProfileRepository(deps.DB)

	// Initialize Services
	productService := services.NewProductService(productRepo, deps.Notifier)
	promotionService := services.NewPromotionService(promotionRepo, deps.Notifier)
	saleService := services.NewSaleService(saleRepo)
	reportService := services.NewReportService(reportRepo, reporting.NewFactory(saleRepo, productRepo, promotionRepo))
	statisticsService := services.NewStatisticsService(statisticsRepo)
	adminUserService := services.NewAdminUserService(deps.DB, profileRepo, deps.Identity)
	authService := services.NewAuthService(deps.Identity, profileRepo, opts.JWTSecret, opts.TokenTTL)

	// Initialize Handlers
	healthHandler := handlers.NewHealthHandler(deps.DB)
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	promotionHandler := handlers.NewPromotionHandler(promotionService)
	saleHandler := handlers.NewSaleHandler(saleService)
	reportHandler := handlers.NewReportHandler(reportService, statisticsService)
	adminUserHandler := handlers.NewAdminUserHandler(adminUserService)

	loginLimiter := middleware.RateLimiter(opts.Redis, "login", opts.RateLimitCount, opts.RateLimitPeriod)
	adminLimiter := middleware.RateLimiter(opts.Redis, "admin_users", opts.RateLimitCount, opts.RateLimitPeriod)

	api := engine.Group("/api")

	SetupHealthRoutes(api, healthHandler)
	SetupAuthRoutes(api, authHandler, loginLimiter)

	protected := api.Group("")
	admin := api.Group("")
	if opts.JWTSecret != "" {
		secret := []byte(opts.JWTSecret)
		protected.Use(middleware.AuthMiddleware(secret))
		admin.Use(middleware.AuthMiddleware(secret), middleware.ProfileRoleMiddleware(profileRepo, models.RoleAdmin))
	} else {
		utils.LogWarn("AUTH_JWT_SECRET is not set; API routes are served without authentication")
	}
	{
		SetupProductRoutes(protected, productHandler)
		SetupPromotionRoutes(protected, promotionHandler)
		SetupSaleRoutes(protected, saleHandler)
		SetupReportRoutes(protected, reportHandler)
	}
	SetupAdminUserRoutes(admin, adminUserHandler, adminLimiter)
}
