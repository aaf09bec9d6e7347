package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 768, cfg.Storefront.MobileBreakpoint)
	assert.Equal(t, 24*time.Hour, cfg.Storefront.SessionTTL)
	assert.InDelta(t, 0.15, cfg.Storefront.SubscriptionDiscount, 1e-9)
	assert.InDelta(t, 499.0, cfg.Storefront.FreeShippingThreshold, 1e-9)
	assert.InDelta(t, 49.0, cfg.Storefront.FlatShipping, 1e-9)
	assert.InDelta(t, 0.08, cfg.Storefront.TaxRate, 1e-9)
	assert.Equal(t, "local", cfg.External.Auth.Provider)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MOBILE_BREAKPOINT", "640")
	t.Setenv("TAX_RATE", "0.05")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Storefront.MobileBreakpoint)
	assert.InDelta(t, 0.05, cfg.Storefront.TaxRate, 1e-9)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.CORSAllowedOrigins)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"short secret", func(c *Config) { c.JWT.Secret = "short" }, "JWT_SECRET"},
		{"missing db host", func(c *Config) { c.Database.Host = "" }, "DB_HOST"},
		{"unknown provider", func(c *Config) { c.External.Auth.Provider = "ldap" }, "AUTH_PROVIDER"},
		{"gotrue without url", func(c *Config) {
			c.External.Auth.Provider = "gotrue"
			c.External.Auth.URL = ""
		}, "AUTH_URL"},
		{"discount out of range", func(c *Config) { c.Storefront.SubscriptionDiscount = 1.5 }, "SUBSCRIPTION_DISCOUNT"},
		{"zero breakpoint", func(c *Config) { c.Storefront.MobileBreakpoint = 0 }, "MOBILE_BREAKPOINT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable",
	}}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.GetDatabaseDSN())
}
