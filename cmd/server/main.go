package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sdtech_backend/internal/config"
	"sdtech_backend/internal/database"
	"sdtech_backend/internal/identity"
	"sdtech_backend/internal/notifications"
	"sdtech_backend/internal/repositories"
	"sdtech_backend/internal/router"
	"sdtech_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.InitLogger("info", false)
		utils.LogError(err, "Failed to load configuration")
		os.Exit(1)
	}

	// Initialize Logger
	utils.InitLogger(cfg.LogLevel, cfg.LogPretty)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	// Initialize Database
	db, err := database.Open(ctx, cfg.StorageBackend, cfg.DatabaseDSN(), database.PoolOptions{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		ConnLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		utils.LogError(err, "Failed to connect to the database")
		os.Exit(1)
	}
	defer db.Close()

	if cfg.DBApplySchema {
		if err := database.ApplySchema(ctx, db, cfg.DBSchemaPath); err != nil {
			utils.LogError(err, "Failed to apply database schema")
			os.Exit(1)
		}
	}

	var redisClient redis.UniversalClient
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			utils.LogError(err, "Invalid REDIS_URL")
			os.Exit(1)
		}
		if cfg.RedisPassword != "" {
			opts.Password = cfg.RedisPassword
		}
		if cfg.RedisDB != 0 {
			opts.DB = cfg.RedisDB
		}
		client := redis.NewClient(opts)
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			utils.LogWarn("Redis is not reachable; rate limiting and Redis notifications will fail open", map[string]interface{}{"error": err.Error()})
		}
		redisClient = client
	}

	bus := notifications.NewBus()
	for _, event := range []string{notifications.EventLowStock, notifications.EventPromotionActivated} {
		bus.Subscribe(event, "log", notifications.LogSubscriber)
		if redisClient != nil {
			bus.Subscribe(event, "redis", notifications.RedisSubscriber(redisClient, cfg.NotifyRedisChannel))
		}
	}
	if len(cfg.KafkaBrokers) > 0 {
		writer := notifications.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer writer.Close()
		sink := notifications.KafkaSubscriber(writer)
		bus.Subscribe(notifications.EventLowStock, "kafka", sink)
		bus.Subscribe(notifications.EventPromotionActivated, "kafka", sink)
	}

	var provider identity.Provider
	switch cfg.StorageBackend {
	case config.BackendHosted:
		if !cfg.HostedAuthConfigured() {
			utils.LogWarn("SUPABASE_URL or keys are missing; admin user management and login are unavailable")
		}
		provider = identity.NewSupabaseProvider(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, cfg.SupabaseAnonKey, nil)
	default:
		provider = identity.NewLocalProvider(db, repositories.NewIdentityRepository(db))
	}

	engine := router.NewEngine(cfg.CORSAllowedOrigins)
	router.Setup(engine, router.Dependencies{
		DB:       db,
		Notifier: bus,
		Identity: provider,
	}, router.Options{
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		JWTSecret:       cfg.AuthJWTSecret,
		TokenTTL:        cfg.AuthTokenTTL,
		Redis:           redisClient,
		RateLimitCount:  cfg.RateLimitCount,
		RateLimitPeriod: cfg.RateLimitPeriod,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{
			"port": cfg.Port, "backend": db.Backend(), "identity_provider": provider.Name(), "auth_enabled": cfg.AuthEnabled(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError(err, "Failed to start server")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.LogInfo("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Server forced to shutdown")
	}
	utils.LogInfo("Server exited")
}
