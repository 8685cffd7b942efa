package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"

	"github.com/fwpboutique/crystalshop/internal/domain"
	"github.com/fwpboutique/crystalshop/internal/pricing"
)

type Config struct {
	Port        string
	Environment string
	StoreDriver string
	Database    DatabaseConfig
	Coupon      CouponConfig
	Standard    domain.PricingStrategy
	Custom      domain.PricingStrategy
	Sheets      SheetsConfig
	Analysis    AnalysisConfig
	Admin       AdminConfig
	SubmitPulse time.Duration
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CouponConfig struct {
	Code           string
	DiscountAmount int64
	Enabled        bool
}

// Policy returns the coupon as the pricing engine sees it
func (c CouponConfig) Policy() pricing.CouponPolicy {
	return pricing.CouponPolicy{
		Code:           c.Code,
		DiscountAmount: c.DiscountAmount,
		Enabled:        c.Enabled,
	}
}

type SheetsConfig struct {
	WebhookURL string
	Timeout    time.Duration
}

type AnalysisConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

type AdminConfig struct {
	// SecretHash is a bcrypt hash of the shared admin secret. Empty disables admin routes.
	SecretHash string
}

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("STORE_DRIVER", StoreDriverMemory)
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		StoreDriver: getEnvOrViper("STORE_DRIVER", StoreDriverMemory),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "crystalshop"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Coupon: CouponConfig{
			Code:           getEnvOrViper("COUPON_CODE", "FWP2025"),
			DiscountAmount: getInt64OrViper("COUPON_DISCOUNT", 100),
			Enabled:        getBoolOrViper("COUPON_ENABLED", true),
		},
		Standard: domain.PricingStrategy{
			Type:          domain.StrategyStandard,
			ShippingCost:  getInt64OrViper("STANDARD_SHIPPING_COST", 0),
			SizeThreshold: getFloatOrViper("STANDARD_SIZE_THRESHOLD", 14),
			Surcharge:     getInt64OrViper("STANDARD_SURCHARGE", 200),
		},
		Custom: domain.PricingStrategy{
			Type:          domain.StrategyCustom,
			BasePrice:     getInt64OrViper("CUSTOM_BASE_PRICE", 2400),
			ShippingCost:  getInt64OrViper("CUSTOM_SHIPPING_COST", 60),
			SizeThreshold: getFloatOrViper("CUSTOM_SIZE_THRESHOLD", 16),
			Surcharge:     getInt64OrViper("CUSTOM_SURCHARGE", 200),
		},
		Sheets: SheetsConfig{
			WebhookURL: getEnvOrViper("SHEETS_WEBHOOK_URL", ""),
			Timeout:    time.Duration(getInt64OrViper("SHEETS_TIMEOUT_MS", 10000)) * time.Millisecond,
		},
		Analysis: AnalysisConfig{
			Endpoint: getEnvOrViper("ANALYSIS_ENDPOINT", ""),
			APIKey:   getEnvOrViper("ANALYSIS_API_KEY", ""),
			Timeout:  time.Duration(getInt64OrViper("ANALYSIS_TIMEOUT_MS", 60000)) * time.Millisecond,
		},
		Admin: AdminConfig{
			SecretHash: getEnvOrViper("ADMIN_SECRET_HASH", ""),
		},
		SubmitPulse: time.Duration(getInt64OrViper("SUBMIT_PULSE_MS", 500)) * time.Millisecond,
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the loaded values are usable
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverMemory:
	case StoreDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	for _, s := range []domain.PricingStrategy{c.Standard, c.Custom} {
		if s.ShippingCost < 0 || s.Surcharge < 0 || s.BasePrice < 0 {
			return fmt.Errorf("%s pricing strategy has a negative amount", s.Type)
		}
	}
	if c.Coupon.DiscountAmount < 0 {
		return fmt.Errorf("COUPON_DISCOUNT must not be negative")
	}
	return nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func getInt64OrViper(key string, defaultValue int64) int64 {
	v, err := strconv.ParseInt(getEnvOrViper(key, ""), 10, 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getFloatOrViper(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnvOrViper(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getBoolOrViper(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnvOrViper(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}
