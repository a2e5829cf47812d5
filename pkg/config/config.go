package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = "FEASTLINE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	Catalog  CatalogConfig
	Checkout CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Checkout.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FEASTLINE_APP_ENV" default:"dev"`
	Port         string `envconfig:"FEASTLINE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"FEASTLINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FEASTLINE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"FEASTLINE_REDIS_URL"`
	Address      string        `envconfig:"FEASTLINE_REDIS_ADDR"`
	Password     string        `envconfig:"FEASTLINE_REDIS_PASSWORD"`
	DB           int           `envconfig:"FEASTLINE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FEASTLINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FEASTLINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FEASTLINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FEASTLINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FEASTLINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"FEASTLINE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"FEASTLINE_JWT_ISSUER" default:"feastline"`
	ExpirationMinutes      int    `envconfig:"FEASTLINE_JWT_EXPIRATION_MINUTES" default:"30"`
	RefreshTokenTTLMinutes int    `envconfig:"FEASTLINE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FEASTLINE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FEASTLINE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FEASTLINE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FEASTLINE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FEASTLINE_ARGON_KEY_LEN" default:"32"`
}

type CatalogConfig struct {
	// Path to a JSON file with food items; the built-in seed is used when empty.
	Path string `envconfig:"FEASTLINE_CATALOG_PATH"`
}

type CheckoutConfig struct {
	TaxRate            string        `envconfig:"FEASTLINE_CHECKOUT_TAX_RATE" default:"0.05"`
	ServiceCharge      string        `envconfig:"FEASTLINE_CHECKOUT_SERVICE_CHARGE" default:"40"`
	UPIProcessingDelay time.Duration `envconfig:"FEASTLINE_CHECKOUT_UPI_PROCESSING_DELAY" default:"5s"`
	UPIPayeeHandle     string        `envconfig:"FEASTLINE_CHECKOUT_UPI_PAYEE_HANDLE" default:"feastline@okbank"`
	UPIPayeeName       string        `envconfig:"FEASTLINE_CHECKOUT_UPI_PAYEE_NAME" default:"Feastline"`
}

// TaxRateDecimal returns the configured tax rate as a decimal fraction.
func (c CheckoutConfig) TaxRateDecimal() decimal.Decimal {
	rate, err := decimal.NewFromString(c.TaxRate)
	if err != nil {
		return decimal.Zero
	}
	return rate
}

// ServiceChargeDecimal returns the flat per-order service charge.
func (c CheckoutConfig) ServiceChargeDecimal() decimal.Decimal {
	charge, err := decimal.NewFromString(c.ServiceCharge)
	if err != nil {
		return decimal.Zero
	}
	return charge
}

func (c CheckoutConfig) validate() error {
	rate, err := decimal.NewFromString(c.TaxRate)
	if err != nil {
		return fmt.Errorf("invalid tax rate %q: %w", c.TaxRate, err)
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("tax rate %q must be in [0, 1)", c.TaxRate)
	}
	charge, err := decimal.NewFromString(c.ServiceCharge)
	if err != nil {
		return fmt.Errorf("invalid service charge %q: %w", c.ServiceCharge, err)
	}
	if charge.IsNegative() {
		return fmt.Errorf("service charge %q must be non-negative", c.ServiceCharge)
	}
	if c.UPIProcessingDelay < 0 {
		return fmt.Errorf("upi processing delay must be non-negative")
	}
	return nil
}
