package config

import (
	"fmt"
	"os"
	"strings"

	httpapi "github.com/jekabolt/grbpwr-analytics/internal/api/http"
	"github.com/jekabolt/grbpwr-analytics/internal/apisrv/admin"
	"github.com/jekabolt/grbpwr-analytics/internal/overview"
	"github.com/jekabolt/grbpwr-analytics/internal/ratelimit"
	"github.com/jekabolt/grbpwr-analytics/internal/store"
	"github.com/jekabolt/grbpwr-analytics/log"
	"github.com/spf13/viper"
)

// Config represents the global configuration for the service.
type Config struct {
	DB        store.Config     `mapstructure:"mysql"`
	Logger    log.Config       `mapstructure:"logger"`
	HTTP      httpapi.Config   `mapstructure:"http"`
	Analytics admin.Config     `mapstructure:"analytics"`
	RateLimit ratelimit.Config `mapstructure:"rate_limit"`
	Overview  overview.Config  `mapstructure:"overview"`
}

func setDefaults(v *viper.Viper) {
	a := admin.DefaultConfig()
	v.SetDefault("analytics.max_orders", a.MaxOrders)
	v.SetDefault("analytics.max_customers", a.MaxCustomers)
	v.SetDefault("analytics.top_products_limit", a.TopProductsLimit)
	v.SetDefault("analytics.timezone", a.Timezone)
	v.SetDefault("analytics.vip_min_spent", a.VIPMinSpent)
	v.SetDefault("analytics.vip_min_orders", a.VIPMinOrders)
	v.SetDefault("analytics.new_days_threshold", a.NewDaysThreshold)
	v.SetDefault("analytics.at_risk_days_threshold", a.AtRiskDaysThreshold)

	rl := ratelimit.DefaultConfig()
	v.SetDefault("rate_limit.queries_per_minute", rl.QueriesPerMinute)
	v.SetDefault("rate_limit.overviews_per_minute", rl.OverviewsPerMinute)

	o := overview.DefaultConfig()
	v.SetDefault("overview.worker_interval", o.WorkerInterval)
	v.SetDefault("overview.ttl", o.TTL)

	v.SetDefault("http.port", "8081")
	v.SetDefault("http.request_timeout", "30s")
	v.SetDefault("mysql.max_open_connections", 10)
	v.SetDefault("mysql.max_idle_connections", 5)
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
// Env vars use underscores and uppercase, e.g., MYSQL_DSN, ANALYTICS_TIMEZONE
// Nested config keys use double underscore, e.g., MYSQL__DSN for mysql.dsn
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	setDefaults(v)

	v.AutomaticEnv()
	// e.g., mysql.dsn -> MYSQL__DSN, analytics.vip_min_spent -> ANALYTICS__VIP_MIN_SPENT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))

	// Bind common environment variables to config keys
	bindEnvVars(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			// If config file doesn't exist, continue with env vars only
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/config/grbpwr-analytics")
		v.AddConfigPath("/etc/grbpwr-analytics")
		// Try to read config, but don't fail if it doesn't exist
		_ = v.ReadInConfig()
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	// Handle MySQL DSN construction from individual env vars if DSN is not set
	if config.DB.DSN == "" {
		config.DB.DSN = dsnFromEnv()
	}

	return &config, nil
}

// dsnFromEnv builds a DSN from DigitalOcean's db.* or MYSQL_* env vars.
func dsnFromEnv() string {
	var host, port, user, password, database string

	if dbHost := os.Getenv("db.HOSTNAME"); dbHost != "" {
		host = dbHost
		port = os.Getenv("db.PORT")
		user = os.Getenv("db.USERNAME")
		password = os.Getenv("db.PASSWORD")
		database = os.Getenv("db.DATABASE")
	} else {
		host = os.Getenv("MYSQL_HOST")
		port = os.Getenv("MYSQL_PORT")
		user = os.Getenv("MYSQL_USER")
		password = os.Getenv("MYSQL_PASSWORD")
		database = os.Getenv("MYSQL_DATABASE")
	}

	if host == "" || user == "" || password == "" || database == "" {
		return ""
	}
	if port == "" {
		port = "3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8&parseTime=true&tls=custom",
		user, password, host, port, database)
}

// bindEnvVars binds environment variables to config keys
// This allows using both nested keys (MYSQL__DSN) and flat keys (MYSQL_DSN)
func bindEnvVars(v *viper.Viper) {
	// MySQL
	v.BindEnv("mysql.dsn", "MYSQL_DSN")
	v.BindEnv("mysql.automigrate", "MYSQL_AUTOMIGRATE")
	v.BindEnv("mysql.max_open_connections", "MYSQL_MAX_OPEN_CONNECTIONS")
	v.BindEnv("mysql.max_idle_connections", "MYSQL_MAX_IDLE_CONNECTIONS")
	v.BindEnv("mysql.tls_ca_path", "MYSQL_TLS_CA_PATH")

	// Logger
	v.BindEnv("logger.level", "LOG_LEVEL")
	v.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	v.BindEnv("http.port", "HTTP_PORT")
	v.BindEnv("http.address", "HTTP_ADDRESS")
	v.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")
	v.BindEnv("http.request_timeout", "HTTP_REQUEST_TIMEOUT")

	// Analytics
	v.BindEnv("analytics.max_orders", "ANALYTICS_MAX_ORDERS")
	v.BindEnv("analytics.max_customers", "ANALYTICS_MAX_CUSTOMERS")
	v.BindEnv("analytics.top_products_limit", "ANALYTICS_TOP_PRODUCTS_LIMIT")
	v.BindEnv("analytics.timezone", "ANALYTICS_TIMEZONE")
	v.BindEnv("analytics.vip_min_spent", "ANALYTICS_VIP_MIN_SPENT")
	v.BindEnv("analytics.vip_min_orders", "ANALYTICS_VIP_MIN_ORDERS")
	v.BindEnv("analytics.new_days_threshold", "ANALYTICS_NEW_DAYS_THRESHOLD")
	v.BindEnv("analytics.at_risk_days_threshold", "ANALYTICS_AT_RISK_DAYS_THRESHOLD")

	// Rate limit
	v.BindEnv("rate_limit.queries_per_minute", "RATE_LIMIT_QUERIES_PER_MINUTE")
	v.BindEnv("rate_limit.overviews_per_minute", "RATE_LIMIT_OVERVIEWS_PER_MINUTE")

	// Overview refresh
	v.BindEnv("overview.worker_interval", "OVERVIEW_WORKER_INTERVAL")
	v.BindEnv("overview.ttl", "OVERVIEW_TTL")
}
