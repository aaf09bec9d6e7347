// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the wellness backend
type Config struct {
	App        AppConfig
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Security   SecurityConfig
	External   ExternalConfig
	Storefront StorefrontConfig
	Logging    LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// JWTConfig contains JWT token configuration
type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
	Issuer            string
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	BcryptCost         int
	MinPasswordLength  int
	RateLimitPerMinute int
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	TrustedProxies     []string
	SecureCookies      bool
}

// ExternalConfig contains external service configurations
type ExternalConfig struct {
	Auth  AuthProviderConfig
	Chat  ChatConfig
	Email EmailConfig
}

// AuthProviderConfig selects the identity provider. "local" keeps accounts in
// postgres, "gotrue" delegates to a hosted GoTrue instance.
type AuthProviderConfig struct {
	Provider string
	URL      string
	AnonKey  string
	Timeout  time.Duration
}

// ChatConfig points at the upstream chat service. An empty URL disables it.
type ChatConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// EmailConfig contains booking mail configuration. Provider is "smtp" or
// "resend"; a disabled mailer only logs.
type EmailConfig struct {
	Enabled    bool
	Provider   string
	FromEmail  string
	FromName   string
	ReplyTo    string
	SiteURL    string
	APIKey     string
	APIURL     string
	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	SMTPUseTLS bool
}

// StorefrontConfig holds the pricing and layout constants of the shop
type StorefrontConfig struct {
	MobileBreakpoint      int
	SessionTTL            time.Duration
	SubscriptionDiscount  float64
	FreeShippingThreshold float64
	FlatShipping          float64
	TaxRate               float64
	HealerCacheTTL        time.Duration
	WkhtmltopdfPath       string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Ayuraa Wellness Platform API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		Server: ServerConfig{
			Port:           getEnv("APP_PORT", "8080"),
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			RequestTimeout: getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			Name:         getEnv("DB_NAME", "ayuraa_db"),
			User:         getEnv("DB_USER", "ayuraa"),
			Password:     getEnv("DB_PASSWORD", "ayuraa_password"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 300*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-in-production"),
			AccessTokenExpiry: getEnvAsDuration("JWT_ACCESS_EXPIRE", 24*time.Hour),
			Issuer:            getEnv("JWT_ISSUER", "ayuraa"),
		},
		Security: SecurityConfig{
			BcryptCost:         getEnvAsInt("BCRYPT_COST", 12),
			MinPasswordLength:  getEnvAsInt("MIN_PASSWORD_LENGTH", 6),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Session-ID", "X-Viewport-Width"}),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
			SecureCookies:      getEnvAsBool("SECURE_COOKIES", false),
		},
		External: ExternalConfig{
			Auth: AuthProviderConfig{
				Provider: getEnv("AUTH_PROVIDER", "local"),
				URL:      getEnv("AUTH_URL", ""),
				AnonKey:  getEnv("AUTH_ANON_KEY", ""),
				Timeout:  getEnvAsDuration("AUTH_TIMEOUT", 10*time.Second),
			},
			Chat: ChatConfig{
				URL:     getEnv("CHAT_URL", ""),
				APIKey:  getEnv("CHAT_API_KEY", ""),
				Timeout: getEnvAsDuration("CHAT_TIMEOUT", 8*time.Second),
			},
			Email: EmailConfig{
				Enabled:    getEnvAsBool("EMAIL_ENABLED", false),
				Provider:   getEnv("EMAIL_PROVIDER", "smtp"),
				FromEmail:  getEnv("FROM_EMAIL", "care@ayuraa.example"),
				FromName:   getEnv("FROM_NAME", "Ayuraa"),
				ReplyTo:    getEnv("REPLY_TO_EMAIL", ""),
				SiteURL:    getEnv("SITE_URL", "http://localhost:5173"),
				APIKey:     getEnv("EMAIL_API_KEY", ""),
				APIURL:     getEnv("EMAIL_API_URL", "https://api.resend.com"),
				SMTPHost:   getEnv("SMTP_HOST", ""),
				SMTPPort:   getEnvAsInt("SMTP_PORT", 587),
				SMTPUser:   getEnv("SMTP_USER", ""),
				SMTPPass:   getEnv("SMTP_PASS", ""),
				SMTPUseTLS: getEnvAsBool("SMTP_USE_TLS", false),
			},
		},
		Storefront: StorefrontConfig{
			MobileBreakpoint:      getEnvAsInt("MOBILE_BREAKPOINT", 768),
			SessionTTL:            getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			SubscriptionDiscount:  getEnvAsFloat("SUBSCRIPTION_DISCOUNT", 0.15),
			FreeShippingThreshold: getEnvAsFloat("FREE_SHIPPING_THRESHOLD", 499),
			FlatShipping:          getEnvAsFloat("FLAT_SHIPPING", 49),
			TaxRate:               getEnvAsFloat("TAX_RATE", 0.08),
			HealerCacheTTL:        getEnvAsDuration("HEALER_CACHE_TTL", 5*time.Minute),
			WkhtmltopdfPath:       getEnv("WKHTMLTOPDF_PATH", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("DB_USER is required")
	}

	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	switch c.External.Auth.Provider {
	case "local":
	case "gotrue":
		if c.External.Auth.URL == "" {
			return fmt.Errorf("AUTH_URL is required when AUTH_PROVIDER=gotrue")
		}
	default:
		return fmt.Errorf("AUTH_PROVIDER must be local or gotrue, got %q", c.External.Auth.Provider)
	}

	if c.External.Email.Enabled {
		switch c.External.Email.Provider {
		case "smtp":
			if c.External.Email.SMTPHost == "" {
				return fmt.Errorf("SMTP_HOST is required when EMAIL_PROVIDER=smtp")
			}
		case "resend":
			if c.External.Email.APIKey == "" {
				return fmt.Errorf("EMAIL_API_KEY is required when EMAIL_PROVIDER=resend")
			}
		default:
			return fmt.Errorf("EMAIL_PROVIDER must be smtp or resend, got %q", c.External.Email.Provider)
		}
	}

	sf := c.Storefront
	if sf.SubscriptionDiscount < 0 || sf.SubscriptionDiscount >= 1 {
		return fmt.Errorf("SUBSCRIPTION_DISCOUNT must be in [0, 1)")
	}
	if sf.TaxRate < 0 || sf.TaxRate >= 1 {
		return fmt.Errorf("TAX_RATE must be in [0, 1)")
	}
	if sf.FreeShippingThreshold < 0 || sf.FlatShipping < 0 {
		return fmt.Errorf("shipping amounts must not be negative")
	}
	if sf.MobileBreakpoint <= 0 {
		return fmt.Errorf("MOBILE_BREAKPOINT must be positive")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
