package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"sdtech_backend/pkg/utils"

	"github.com/joho/godotenv"
)

// Storage backends selectable at startup.
const (
	BackendPostgres = "postgres"
	BackendHosted   = "hosted"
)

// Config holds every environment-driven setting of the server.
type Config struct {
	Port      string
	GinMode   string
	LogLevel  string
	LogPretty bool

	StorageBackend string

	// Direct PostgreSQL connection.
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DatabaseURL string

	// Hosted (Supabase) backend.
	SupabaseDBURL          string
	SupabaseURL            string
	SupabaseServiceRoleKey string
	SupabaseAnonKey        string

	DBApplySchema  bool
	DBSchemaPath   string
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBConnLifetime time.Duration

	AuthJWTSecret string
	AuthTokenTTL  time.Duration

	CORSAllowedOrigins []string

	RedisURL           string
	RedisPassword      string
	RedisDB            int
	RateLimitCount     int
	RateLimitPeriod    time.Duration
	NotifyRedisChannel string

	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{
		Port:      utils.Getenv("PORT", "5000"),
		GinMode:   utils.Getenv("GIN_MODE", "release"),
		LogLevel:  utils.Getenv("LOG_LEVEL", "info"),
		LogPretty: utils.GetenvBool("LOG_PRETTY", false),

		DBHost:      utils.Getenv("DB_HOST", "localhost"),
		DBPort:      utils.Getenv("DB_PORT", "5432"),
		DBUser:      utils.Getenv("DB_USER", "sdtech_user"),
		DBPassword:  utils.Getenv("DB_PASSWORD", "sdtech_password"),
		DBName:      utils.Getenv("DB_NAME", "sdtech_db"),
		DBSSLMode:   utils.Getenv("DB_SSLMODE", "disable"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		SupabaseDBURL:          os.Getenv("SUPABASE_DB_URL"),
		SupabaseURL:            strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		SupabaseAnonKey:        os.Getenv("SUPABASE_ANON_KEY"),

		DBApplySchema:  utils.GetenvBool("DB_APPLY_SCHEMA", false),
		DBSchemaPath:   os.Getenv("DB_SCHEMA_PATH"),
		DBMaxOpenConns: utils.GetenvInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns: utils.GetenvInt("DB_MAX_IDLE_CONNS", 10),
		DBConnLifetime: utils.GetenvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),

		AuthJWTSecret: os.Getenv("AUTH_JWT_SECRET"),
		AuthTokenTTL:  utils.GetenvDuration("AUTH_TOKEN_TTL", 72*time.Hour),

		CORSAllowedOrigins: utils.GetenvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),

		RedisURL:           os.Getenv("REDIS_URL"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            utils.GetenvInt("REDIS_DB", 0),
		RateLimitCount:     utils.GetenvInt("RATE_LIMIT_COUNT", 10),
		RateLimitPeriod:    utils.GetenvDuration("RATE_LIMIT_PERIOD", time.Minute),
		NotifyRedisChannel: utils.Getenv("NOTIFY_REDIS_CHANNEL", "sdtech_notifications"),

		KafkaBrokers: utils.GetenvList("KAFKA_BROKERS", nil),
		KafkaTopic:   utils.Getenv("KAFKA_TOPIC", "sdtech_notifications"),
	}

	defaultBackend := BackendPostgres
	if cfg.SupabaseDBURL != "" {
		defaultBackend = BackendHosted
	}
	cfg.StorageBackend = strings.ToLower(utils.Getenv("STORAGE_BACKEND", defaultBackend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendPostgres:
	case BackendHosted:
		if c.SupabaseDBURL == "" {
			return errors.New("config: STORAGE_BACKEND=hosted requires SUPABASE_DB_URL")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.Port == "" {
		return errors.New("config: PORT must not be empty")
	}
	return nil
}

// PostgresDSN returns DATABASE_URL when set, otherwise a key/value DSN built from DB_* variables.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// AuthEnabled reports whether bearer authentication guards the API.
func (c *Config) AuthEnabled() bool {
	return c.AuthJWTSecret != ""
}

// HostedAuthConfigured reports whether the Supabase Auth admin API can be reached.
func (c *Config) HostedAuthConfigured() bool {
	return c.SupabaseURL != "" && (c.SupabaseServiceRoleKey != "" || c.SupabaseAnonKey != "")
}

// DatabaseDSN returns the connection string for the selected backend.
func (c *Config) DatabaseDSN() string {
	if c.StorageBackend == BackendHosted {
		return c.SupabaseDBURL
	}
	return c.PostgresDSN()
}
