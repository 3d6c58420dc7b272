package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Trigger kinds accepted by TRIGGER_ON.
const (
	TriggerNewMarket        = "newMarket"
	TriggerPriceChange      = "priceChange"
	TriggerOrderFilled      = "orderFilled"
	TriggerMarketResolution = "marketResolution"
)

// Chain IDs the CLOB exchange contract is deployed on.
const (
	ChainPolygonMainnet = 137
	ChainAmoyTestnet    = 80002
	ChainMumbaiTestnet  = 80001
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string
	HTTPPort string

	// Polymarket API
	ClobURL  string
	GammaURL string
	WSURL    string

	// Credentials (L1 HMAC envelope + L2 order signing)
	APIKey        string
	Secret        string
	Passphrase    string
	PrivateKey    string
	Address       string
	ProxyAddress  string
	SignatureType int
	ChainID       int64

	// Trigger
	TriggerOn      string
	MarketID       string
	PriceThreshold float64
	PollInterval   time.Duration
	MinVolume      float64
	IncludeDetails bool
	MarketLimit    int

	// HTTP client
	RequestTimeout time.Duration

	// Event sink
	SinkMode     string // "console" or "postgres"
	PostgresHost string
	PostgresPort string
	PostgresUser string
	PostgresPass string
	PostgresDB   string
	PostgresSSL  string
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		// Polymarket API defaults
		ClobURL:  getEnvOrDefault("POLYMARKET_CLOB_URL", "https://clob.polymarket.com"),
		GammaURL: getEnvOrDefault("POLYMARKET_GAMMA_API_URL", "https://gamma-api.polymarket.com"),
		WSURL:    getEnvOrDefault("POLYMARKET_WS_URL", "wss://ws-subscriptions-clob.polymarket.com/ws/market"),

		// Credentials
		APIKey:        os.Getenv("POLYMARKET_API_KEY"),
		Secret:        os.Getenv("POLYMARKET_SECRET"),
		Passphrase:    os.Getenv("POLYMARKET_PASSPHRASE"),
		PrivateKey:    os.Getenv("POLYMARKET_PRIVATE_KEY"),
		Address:       os.Getenv("POLYMARKET_ADDRESS"),
		ProxyAddress:  os.Getenv("POLYMARKET_PROXY_ADDRESS"),
		SignatureType: getIntOrDefault("POLYMARKET_SIGNATURE_TYPE", 0),
		ChainID:       int64(getIntOrDefault("POLYMARKET_CHAIN_ID", ChainPolygonMainnet)),

		// Trigger defaults
		TriggerOn:      getEnvOrDefault("TRIGGER_ON", TriggerNewMarket),
		MarketID:       os.Getenv("TRIGGER_MARKET_ID"),
		PriceThreshold: getFloat64OrDefault("TRIGGER_PRICE_THRESHOLD", 5.0),
		PollInterval:   time.Duration(getIntOrDefault("TRIGGER_POLL_INTERVAL_MINUTES", 5)) * time.Minute,
		MinVolume:      getFloat64OrDefault("TRIGGER_MIN_VOLUME", 0),
		IncludeDetails: getBoolOrDefault("TRIGGER_INCLUDE_MARKET_DETAILS", true),
		MarketLimit:    getIntOrDefault("TRIGGER_MARKET_LIMIT", 100),

		// HTTP client defaults
		RequestTimeout: getDurationOrDefault("HTTP_REQUEST_TIMEOUT", 30*time.Second),

		// Sink defaults
		SinkMode:     getEnvOrDefault("SINK_MODE", "console"),
		PostgresHost: getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort: getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser: getEnvOrDefault("POSTGRES_USER", "polymarket"),
		PostgresPass: getEnvOrDefault("POSTGRES_PASSWORD", "polymarket123"),
		PostgresDB:   getEnvOrDefault("POSTGRES_DB", "polymarket_connector"),
		PostgresSSL:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}

	if c.ClobURL == "" {
		return fmt.Errorf("POLYMARKET_CLOB_URL cannot be empty")
	}

	if c.GammaURL == "" {
		return fmt.Errorf("POLYMARKET_GAMMA_API_URL cannot be empty")
	}

	switch c.ChainID {
	case ChainPolygonMainnet, ChainAmoyTestnet, ChainMumbaiTestnet:
	default:
		return fmt.Errorf("POLYMARKET_CHAIN_ID must be %d, %d or %d, got %d",
			ChainPolygonMainnet, ChainAmoyTestnet, ChainMumbaiTestnet, c.ChainID)
	}

	if c.SignatureType < 0 || c.SignatureType > 2 {
		return fmt.Errorf("POLYMARKET_SIGNATURE_TYPE must be 0 (EOA), 1 (proxy) or 2 (safe), got %d", c.SignatureType)
	}

	switch c.TriggerOn {
	case TriggerNewMarket, TriggerPriceChange, TriggerOrderFilled, TriggerMarketResolution:
	default:
		return fmt.Errorf("TRIGGER_ON must be one of newMarket, priceChange, orderFilled, marketResolution, got %q", c.TriggerOn)
	}

	if (c.TriggerOn == TriggerPriceChange || c.TriggerOn == TriggerMarketResolution) && c.MarketID == "" {
		return fmt.Errorf("TRIGGER_MARKET_ID is required for the %s trigger", c.TriggerOn)
	}

	if c.PriceThreshold <= 0 || c.PriceThreshold > 100 {
		return fmt.Errorf("TRIGGER_PRICE_THRESHOLD must be in (0, 100], got %f", c.PriceThreshold)
	}

	if c.PollInterval < time.Minute {
		return fmt.Errorf("TRIGGER_POLL_INTERVAL_MINUTES must be at least 1, got %s", c.PollInterval)
	}

	if c.MinVolume < 0 {
		return fmt.Errorf("TRIGGER_MIN_VOLUME cannot be negative, got %f", c.MinVolume)
	}

	if c.SinkMode != "console" && c.SinkMode != "postgres" {
		return fmt.Errorf("SINK_MODE must be 'console' or 'postgres', got %q", c.SinkMode)
	}

	return nil
}

// HasCredentials reports whether the full authenticated credential set is
// present. Read-only discovery works without it; trading and the
// order-filled trigger do not.
func (c *Config) HasCredentials() bool {
	return c.APIKey != "" && c.Secret != "" && c.Passphrase != "" && c.PrivateKey != ""
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getFloat64OrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}

	return floatVal
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}
