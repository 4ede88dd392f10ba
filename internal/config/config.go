package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Stripe    StripeConfig    `yaml:"stripe"`
	Penalty   PenaltyConfig   `yaml:"penalty"`
	Pricing   PricingConfig   `yaml:"pricing"`
	Currency  CurrencyConfig  `yaml:"currency"`
	Jobs      JobsConfig      `yaml:"jobs"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// StripeConfig contains payment gateway settings
type StripeConfig struct {
	APIKey        string `yaml:"api_key"`
	WebhookSecret string `yaml:"webhook_secret"`
}

// PenaltyConfig contains late-return penalty settings
type PenaltyConfig struct {
	GracePeriodMinutes         int     `yaml:"grace_period_minutes"`
	SeverelyLateThresholdHours int     `yaml:"severely_late_threshold_hours"`
	HourlyRateFraction         float64 `yaml:"hourly_rate_fraction"`  // fraction of daily rate charged per late hour
	DailyRateMultiplier        float64 `yaml:"daily_rate_multiplier"` // multiple of daily rate charged per late day
	MaxPenaltyMultiple         float64 `yaml:"max_penalty_multiple"`  // penalty cap as multiple of daily rate
}

// PricingConfig contains dynamic pricing settings
type PricingConfig struct {
	MinDailyPrice float64                   `yaml:"min_daily_price"`
	MaxDailyPrice float64                   `yaml:"max_daily_price"`
	Strategies    map[string]StrategyConfig `yaml:"strategies"`
}

// StrategyConfig is the enabled flag and run order for one pricing strategy
type StrategyConfig struct {
	Enabled bool `yaml:"enabled"`
	Order   int  `yaml:"order"`
}

// CurrencyConfig contains exchange-rate settings
type CurrencyConfig struct {
	RateSourceURL    string             `yaml:"rate_source_url"`
	CacheTTLMinutes  int                `yaml:"cache_ttl_minutes"`
	CurrencyDecimals map[string]int     `yaml:"currency_decimals"`
	FallbackRates    map[string]float64 `yaml:"fallback_rates"` // USD-based fallback table
}

// JobsConfig contains batch job settings
type JobsConfig struct {
	PageSize int32 `yaml:"page_size"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	DetectLateReturns   string `yaml:"detect_late_returns"`
	DailyReconciliation string `yaml:"daily_reconciliation"`
	RefreshRates        string `yaml:"refresh_rates"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Stripe
	if val := os.Getenv("STRIPE_API_KEY"); val != "" {
		c.Stripe.APIKey = val
	}
	if val := os.Getenv("STRIPE_WEBHOOK_SECRET"); val != "" {
		c.Stripe.WebhookSecret = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

// Validate checks required settings and applies defaults
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Penalty.GracePeriodMinutes < 0 {
		return fmt.Errorf("penalty grace period must not be negative")
	}
	if c.Penalty.SeverelyLateThresholdHours == 0 {
		c.Penalty.SeverelyLateThresholdHours = 72
	}
	if c.Penalty.HourlyRateFraction == 0 {
		c.Penalty.HourlyRateFraction = 0.1
	}
	if c.Penalty.DailyRateMultiplier == 0 {
		c.Penalty.DailyRateMultiplier = 1.5
	}
	if c.Penalty.MaxPenaltyMultiple == 0 {
		c.Penalty.MaxPenaltyMultiple = 5.0
	}

	if c.Pricing.MinDailyPrice < 0 || c.Pricing.MaxDailyPrice < 0 {
		return fmt.Errorf("pricing caps must not be negative")
	}
	if c.Pricing.MaxDailyPrice > 0 && c.Pricing.MaxDailyPrice < c.Pricing.MinDailyPrice {
		return fmt.Errorf("max daily price must be >= min daily price")
	}

	if c.Currency.CacheTTLMinutes == 0 {
		c.Currency.CacheTTLMinutes = 60
	}

	if c.Jobs.PageSize == 0 {
		c.Jobs.PageSize = 100
	}

	return nil
}

// GetDatabaseConnectionString builds a lib/pq connection string
func (c *Config) GetDatabaseConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password, c.Database.Database, sslMode)
}

// GetServerAddress returns the host:port the HTTP server listens on
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
