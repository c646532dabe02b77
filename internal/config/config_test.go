package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "  s3cret ")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL())
	assert.Equal(t, time.Hour, cfg.RevocationReapInterval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/social")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	t.Setenv("REFRESH_TOKEN_EXPIRE_DAYS", "1")
	t.Setenv("REQUEST_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL())
	assert.Equal(t, 24*time.Hour, cfg.RefreshTokenTTL())
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoadRejectsBadInput(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "fifteen")

	_, err := Load()
	require.ErrorContains(t, err, "parse env")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			ServerPort:               "8080",
			StoreDriver:              StoreDriverPostgres,
			DatabaseURL:              "postgres://localhost/social",
			DBMaxConns:               10,
			DBMinConns:               2,
			JWTSecret:                "s3cret",
			AccessTokenExpireMinutes: 15,
			RefreshTokenExpireDays:   7,
			RequestTimeout:           time.Second,
		}
	}

	cases := map[string]func(c *Config){
		"missing secret":       func(c *Config) { c.JWTSecret = "" },
		"zero access ttl":      func(c *Config) { c.AccessTokenExpireMinutes = 0 },
		"negative refresh ttl": func(c *Config) { c.RefreshTokenExpireDays = -1 },
		"missing database url": func(c *Config) { c.DatabaseURL = "" },
		"min above max":        func(c *Config) { c.DBMinConns = 20 },
		"unknown driver":       func(c *Config) { c.StoreDriver = "sqlite" },
		"zero request timeout": func(c *Config) { c.RequestTimeout = 0 },
	}

	base := valid()
	require.NoError(t, base.Validate())

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
