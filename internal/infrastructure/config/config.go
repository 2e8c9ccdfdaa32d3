package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        AppConfig
	Log        LogConfig
	HTTP       HTTPConfig
	BaseLinker BaseLinkerConfig
	Presta     PrestaConfig
	Pricing    PricingConfig
	Telemetry  TelemetryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// BaseLinkerConfig holds the order platform API settings
type BaseLinkerConfig struct {
	Token          string
	APIBaseURL     string
	TimeoutSeconds int
}

// PrestaConfig holds the PrestaShop webservice settings
type PrestaConfig struct {
	APIBaseURL     string
	WSKey          string
	TimeoutSeconds int
}

// PricingConfig holds the price calculation settings
type PricingConfig struct {
	// Multiplier is the markup applied to wholesale prices, kept as a
	// string so the exact decimal survives the config round trip
	Multiplier string
}

// MultiplierDecimal parses the configured multiplier
func (p *PricingConfig) MultiplierDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(p.Multiplier)
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool    // Whether to enable OpenTelemetry
	CollectorEndpoint string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 // Sampling ratio (0.0-1.0, 1.0 = 100%)
	ServiceName       string  // Service name for traces
	Insecure          bool    // Use insecure (non-TLS) connection (development only)
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with PRICESYNC_ prefix (e.g., PRICESYNC_BASELINKER_TOKEN)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set config file settings
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Enable environment variable override
	v.SetEnvPrefix("PRICESYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Build config struct
	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		BaseLinker: BaseLinkerConfig{
			Token:          v.GetString("baselinker.token"),
			APIBaseURL:     v.GetString("baselinker.api_base_url"),
			TimeoutSeconds: v.GetInt("baselinker.timeout_seconds"),
		},
		Presta: PrestaConfig{
			APIBaseURL:     v.GetString("presta.api_base_url"),
			WSKey:          v.GetString("presta.ws_key"),
			TimeoutSeconds: v.GetInt("presta.timeout_seconds"),
		},
		Pricing: PricingConfig{
			Multiplier: v.GetString("pricing.multiplier"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
		},
	}

	// Apply defaults for empty values
	applyDefaults(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "pricesync-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		// Sync runs make several upstream calls per request, so writes
		// need more headroom than a typical CRUD service.
		cfg.HTTP.WriteTimeout = 120 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1MB
	}
	// NOTE: CORS origins are intentionally not given a default fallback to "*".
	// An empty list means no cross-origin requests are allowed until explicitly configured.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "X-Request-ID"}
	}
	if cfg.BaseLinker.APIBaseURL == "" {
		cfg.BaseLinker.APIBaseURL = "https://api.baselinker.com/connector.php"
	}
	if cfg.BaseLinker.TimeoutSeconds == 0 {
		cfg.BaseLinker.TimeoutSeconds = 30
	}
	if cfg.Presta.TimeoutSeconds == 0 {
		cfg.Presta.TimeoutSeconds = 30
	}
	if cfg.Pricing.Multiplier == "" {
		cfg.Pricing.Multiplier = "1.0"
	}
	// Telemetry defaults
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317" // Default gRPC endpoint
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0 // 100% in development
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "pricesync-backend"
	}
	// Note: Insecure defaults to false for safety (TLS enabled by default)
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	multiplier, err := c.Pricing.MultiplierDecimal()
	if err != nil {
		return fmt.Errorf("pricing.multiplier is not a valid decimal: %w", err)
	}
	if !multiplier.IsPositive() {
		return fmt.Errorf("pricing.multiplier must be positive, got %s", multiplier)
	}

	// Production-specific validations
	if c.App.Env == "production" {
		if c.BaseLinker.Token == "" {
			return fmt.Errorf("baselinker.token is required in production")
		}
		if c.Presta.APIBaseURL == "" {
			return fmt.Errorf("presta.api_base_url is required in production")
		}
		if c.Presta.WSKey == "" {
			return fmt.Errorf("presta.ws_key is required in production")
		}
		// CORS must not use wildcard with credentials
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	// Validate telemetry configuration (all environments)
	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	return nil
}
