package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Billing   BillingConfig
	Dashboard DashboardConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// BillingConfig holds the invoicing defaults applied at creation time
type BillingConfig struct {
	TaxRate              float64
	DefaultPaymentMethod string
}

// DashboardConfig holds settings for the dashboard client side:
// where the API lives, how the customer search debounces, and where
// the session state is persisted.
type DashboardConfig struct {
	APIBaseURL          string
	SearchDebounce      time.Duration
	MinSearchLength     int
	StateDir            string
	PublicRoutePrefixes []string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "autofix-workshop")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "5000")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "autofix")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("BILLING_TAX_RATE", 0.075)
	viper.SetDefault("BILLING_DEFAULT_PAYMENT_METHOD", "credit")
	viper.SetDefault("DASHBOARD_API_BASE_URL", "http://localhost:5000/api")
	viper.SetDefault("DASHBOARD_SEARCH_DEBOUNCE_MS", 500)
	viper.SetDefault("DASHBOARD_MIN_SEARCH_LENGTH", 4)
	viper.SetDefault("DASHBOARD_STATE_DIR", "./.autofix")
	viper.SetDefault("DASHBOARD_PUBLIC_ROUTE_PREFIXES", []string{"/public"})

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Billing: BillingConfig{
			TaxRate:              viper.GetFloat64("BILLING_TAX_RATE"),
			DefaultPaymentMethod: viper.GetString("BILLING_DEFAULT_PAYMENT_METHOD"),
		},
		Dashboard: DashboardConfig{
			APIBaseURL:          viper.GetString("DASHBOARD_API_BASE_URL"),
			SearchDebounce:      time.Duration(viper.GetInt("DASHBOARD_SEARCH_DEBOUNCE_MS")) * time.Millisecond,
			MinSearchLength:     viper.GetInt("DASHBOARD_MIN_SEARCH_LENGTH"),
			StateDir:            viper.GetString("DASHBOARD_STATE_DIR"),
			PublicRoutePrefixes: viper.GetStringSlice("DASHBOARD_PUBLIC_ROUTE_PREFIXES"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
