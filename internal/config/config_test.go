package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("APP_ENV", "test")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("STORE_DRIVER", "Postgres")
		t.Setenv("DB_URL", "postgres://localhost/sutra")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("ADMIN_EMAIL", "admin@example.com")
		t.Setenv("SHIPPING_COST", "3.50")
		t.Setenv("PRICE_REFERENCE_SIZE", "50")
		t.Setenv("PRICE_REFERENCE_UNIT", "ml")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, StorePostgres, cfg.StoreDriver)
		assert.Equal(t, "postgres://localhost/sutra", cfg.DBURL)
		assert.Equal(t, "admin@example.com", cfg.AdminEmail)
		assert.Equal(t, 3.5, cfg.ShippingCost)
		assert.Equal(t, 50, cfg.PriceReferenceSize)
		assert.Equal(t, "ml", cfg.PriceReferenceUnit)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("APP_ENV", "")
		t.Setenv("APP_PORT", "")
		t.Setenv("STORE_DRIVER", "")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("SHIPPING_COST", "")
		t.Setenv("PRICE_REFERENCE_SIZE", "")
		t.Setenv("PRICE_REFERENCE_UNIT", "")
		t.Setenv("CORS_ORIGIN", "")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "development", cfg.AppEnv)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, StoreMemory, cfg.StoreDriver)
		assert.Equal(t, 0.0, cfg.ShippingCost)
		assert.Equal(t, 100, cfg.PriceReferenceSize)
		assert.Equal(t, "g", cfg.PriceReferenceUnit)
		assert.Equal(t, "http://localhost:3000", cfg.CORSOrigin)
	})

	t.Run("Invalid shipping cost", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("SHIPPING_COST", "-1")

		_, err := LoadConfig()
		assert.ErrorIs(t, err, ErrInvalidShipping)
	})

	t.Run("Invalid reference size", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("SHIPPING_COST", "")
		t.Setenv("PRICE_REFERENCE_SIZE", "zero")

		_, err := LoadConfig()
		assert.ErrorIs(t, err, ErrInvalidRefPricing)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"memory ok", Config{JWTSecret: "s", StoreDriver: StoreMemory}, nil},
		{"missing secret", Config{StoreDriver: StoreMemory}, ErrMissingJWTSecret},
		{"postgres without url", Config{JWTSecret: "s", StoreDriver: StorePostgres}, ErrMissingDBURL},
		{"redis without url", Config{JWTSecret: "s", StoreDriver: StoreRedis}, ErrMissingRedisURL},
		{"redis ok", Config{JWTSecret: "s", StoreDriver: StoreRedis, RedisURL: "redis://localhost:6379"}, nil},
		{"unknown driver", Config{JWTSecret: "s", StoreDriver: "mongo"}, ErrUnknownStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
