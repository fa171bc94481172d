package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Feed     FeedConfig
	Shipping ShippingConfig
	Checkout CheckoutConfig
	Storage  StorageConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	JWTSecret string
}

// FeedConfig holds the spreadsheet-backed catalogue feed endpoints.
type FeedConfig struct {
	ProductsURL    string
	CombosURL      string
	TimeoutSeconds int
}

// ShippingConfig selects the shipping fee policy for this deployment.
type ShippingConfig struct {
	Policy  string // "flat" or "tiered"
	FlatFee float64
	Tiers   string // "maxKg:fee,..." ascending; used when Policy is "tiered"
}

// CheckoutConfig holds checkout and confirmation-handoff configuration.
type CheckoutConfig struct {
	Currency       string
	CurrencySymbol string
	WhatsAppNumber string
}

// StorageConfig holds the client-state snapshot store configuration.
// An empty Dir selects the in-memory store.
type StorageConfig struct {
	Dir string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "konaseema"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Feed: FeedConfig{
			ProductsURL:    getEnv("FEED_PRODUCTS_URL", ""),
			CombosURL:      getEnv("FEED_COMBOS_URL", ""),
			TimeoutSeconds: getEnvAsInt("FEED_TIMEOUT", 10),
		},
		Shipping: ShippingConfig{
			Policy:  getEnv("SHIPPING_POLICY", "flat"),
			FlatFee: getEnvAsFloat("SHIPPING_FLAT_FEE", 0),
			Tiers:   getEnv("SHIPPING_TIERS", "1:60,2:90,5:150,10:250"),
		},
		Checkout: CheckoutConfig{
			Currency:       getEnv("CURRENCY", "INR"),
			CurrencySymbol: getEnv("CURRENCY_SYMBOL", "₹"),
			WhatsAppNumber: getEnv("WHATSAPP_NUMBER", ""),
		},
		Storage: StorageConfig{
			Dir: getEnv("STORAGE_DIR", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if c.Feed.ProductsURL == "" {
		return fmt.Errorf("products feed URL is required")
	}

	if c.Feed.TimeoutSeconds < 1 {
		return fmt.Errorf("feed timeout must be at least 1 second")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Shipping.Policy != "flat" && c.Shipping.Policy != "tiered" {
		return fmt.Errorf("invalid shipping policy: %s (must be flat or tiered)", c.Shipping.Policy)
	}

	if c.Shipping.FlatFee < 0 {
		return fmt.Errorf("shipping flat fee cannot be negative")
	}

	if c.Shipping.Policy == "tiered" && c.Shipping.Tiers == "" {
		return fmt.Errorf("shipping tiers are required when policy is tiered")
	}

	if c.Checkout.Currency == "" {
		return fmt.Errorf("currency is required")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat retrieves an environment variable as a float or returns a default value.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
