package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

var (
	ErrMissingDBURL      = errors.New("DB_URL is required for the postgres store")
	ErrMissingRedisURL   = errors.New("REDIS_URL is required for the redis store")
	ErrUnknownStore      = errors.New("unknown STORE_DRIVER")
	ErrMissingJWTSecret  = errors.New("JWT_SECRET is required")
	ErrInvalidShipping   = errors.New("SHIPPING_COST must be a non-negative number")
	ErrInvalidRefPricing = errors.New("PRICE_REFERENCE_SIZE must be a positive integer")
)

type Config struct {
	AppEnv  string
	AppPort string

	StoreDriver string
	DBURL       string
	RedisURL    string

	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string

	ShippingCost       float64
	PriceReferenceSize int
	PriceReferenceUnit string

	CORSOrigin        string
	InternalSecretKey string
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		AppPort:            getEnv("APP_PORT", "8080"),
		StoreDriver:        strings.ToLower(getEnv("STORE_DRIVER", StoreMemory)),
		DBURL:              os.Getenv("DB_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash:  os.Getenv("ADMIN_PASSWORD_HASH"),
		PriceReferenceUnit: getEnv("PRICE_REFERENCE_UNIT", "g"),
		CORSOrigin:         getEnv("CORS_ORIGIN", "http://localhost:3000"),
		InternalSecretKey:  os.Getenv("INTERNAL_SECRET_KEY"),
	}

	shipping, err := strconv.ParseFloat(getEnv("SHIPPING_COST", "0"), 64)
	if err != nil || shipping < 0 {
		return nil, ErrInvalidShipping
	}
	cfg.ShippingCost = shipping

	refSize, err := strconv.Atoi(getEnv("PRICE_REFERENCE_SIZE", "100"))
	if err != nil || refSize <= 0 {
		return nil, ErrInvalidRefPricing
	}
	cfg.PriceReferenceSize = refSize

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected store driver has what it needs.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	switch c.StoreDriver {
	case StoreMemory:
	case StorePostgres:
		if c.DBURL == "" {
			return ErrMissingDBURL
		}
	case StoreRedis:
		if c.RedisURL == "" {
			return ErrMissingRedisURL
		}
	default:
		return ErrUnknownStore
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
