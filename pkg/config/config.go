package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "parceldesk"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	Carrier  CarrierConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Settings SettingsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Carrier.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PARCELDESK_APP_ENV" required:"true"`
	Port         string `envconfig:"PARCELDESK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PARCELDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PARCELDESK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CarrierConfig points at the remote delivery-options service. The base URL is
// required on purpose: serving a placeholder endpoint would silently return no
// options, so boot fails instead.
type CarrierConfig struct {
	LookupBaseURL string        `envconfig:"PARCELDESK_CARRIER_LOOKUP_BASE_URL" required:"true"`
	CountryCode   string        `envconfig:"PARCELDESK_CARRIER_COUNTRY_CODE" default:"BE"`
	CarrierID     int           `envconfig:"PARCELDESK_CARRIER_ID" default:"1"`
	HTTPTimeout   time.Duration `envconfig:"PARCELDESK_CARRIER_HTTP_TIMEOUT" default:"10s"`
	CacheTTL      time.Duration `envconfig:"PARCELDESK_CARRIER_CACHE_TTL" default:"2m"`
}

func (c CarrierConfig) validate() error {
	parsed, err := url.Parse(c.LookupBaseURL)
	if err != nil {
		return fmt.Errorf("parsing carrier lookup base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("carrier lookup base url must be absolute, got %q", c.LookupBaseURL)
	}
	return nil
}

// RedisConfig is optional: when no URL or address is set the lookup cache is
// simply skipped.
type RedisConfig struct {
	URL          string        `envconfig:"PARCELDESK_REDIS_URL"`
	Address      string        `envconfig:"PARCELDESK_REDIS_ADDR"`
	Password     string        `envconfig:"PARCELDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"PARCELDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PARCELDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PARCELDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PARCELDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PARCELDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PARCELDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"PARCELDESK_CORS_ALLOWED_ORIGINS" default:"*"`
}

// SettingsConfig points at the merchant configuration file the settings store
// loads at boot.
type SettingsConfig struct {
	File string `envconfig:"PARCELDESK_SETTINGS_FILE" required:"true"`
}
