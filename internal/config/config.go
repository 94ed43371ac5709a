package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Auth      AuthConfig
	Dashboard DashboardConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
	EnableSwagger  bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// RateLimitConfig holds IP rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
}

// AuthConfig holds token validation configuration
type AuthConfig struct {
	// JWTSecret signs and validates bearer tokens (HMAC)
	JWTSecret string
	// APIKey authorizes system-to-system calls via the x-api-key header
	APIKey string
}

// DashboardConfig holds the metrics engine configuration.
// WeeklyValueTarget is required: the assembler refuses to compute
// percentage-of-goal against a missing or non-positive target.
type DashboardConfig struct {
	// WeeklyValueTarget is the monetary production goal per business week
	WeeklyValueTarget string
	// FoldLabel is the synthetic category folded products merge into
	FoldLabel string
	// FoldProducts lists product names folded into FoldLabel
	FoldProducts []string
	// CacheTTL is how long a computed dashboard stays fresh (seconds)
	CacheTTL int
	// RefreshCron is the schedule for warming the per-site cache
	RefreshCron string
}

// ConnectionString builds the postgres DSN
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// ReadTimeoutDuration returns the server read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns the server write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// CacheTTLDuration returns the dashboard cache TTL as duration
func (d *DashboardConfig) CacheTTLDuration() time.Duration {
	return time.Duration(d.CacheTTL) * time.Second
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Secrets come from environment when not in the config file
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = v.GetString("JWT_SECRET")
	}
	if cfg.Auth.APIKey == "" {
		cfg.Auth.APIKey = v.GetString("ADMIN_API_KEY")
	}
	if cfg.Database.Password == "" {
		cfg.Database.Password = v.GetString("DATABASE_PASSWORD")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "santini-manager")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)

	// Database
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "santini")
	v.SetDefault("database.user", "santini_user")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxopenconns", 25)
	v.SetDefault("database.maxidleconns", 5)
	v.SetDefault("database.connmaxlifetime", 300)

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Server
	v.SetDefault("server.readtimeout", 15)
	v.SetDefault("server.writetimeout", 30)
	v.SetDefault("server.requesttimeout", 60)
	v.SetDefault("server.enableswagger", true)

	// CORS
	v.SetDefault("cors.allowedorigins", []string{"http://localhost:3000"})
	v.SetDefault("cors.allowedmethods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedheaders", []string{"Accept", "Authorization", "Content-Type", "x-api-key"})
	v.SetDefault("cors.exposedheaders", []string{"Link"})
	v.SetDefault("cors.allowcredentials", true)
	v.SetDefault("cors.maxage", 300)

	// Rate limiting
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requestsperminute", 120)

	// Dashboard metrics engine
	v.SetDefault("dashboard.weeklyvaluetarget", "50000")
	v.SetDefault("dashboard.foldlabel", "Altro")
	v.SetDefault("dashboard.foldproducts", []string{})
	v.SetDefault("dashboard.cachettl", 60)
	v.SetDefault("dashboard.refreshcron", "@every 5m")
}
