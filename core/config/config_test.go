package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	assert.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8001", cfg.Server.Port)
	assert.False(t, cfg.Server.Reload)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "terauja.db", cfg.Database.Name)

	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
	assert.NotEmpty(t, cfg.Auth.SecretKey)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 512, cfg.LLM.MaxTokens)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9001")
	t.Setenv("DATABASE_DRIVER", "mysql")
	t.Setenv("AUTH_SECRET_KEY", "unit-test-secret")

	cfg, err := LoadConfig(t.TempDir())
	assert.NoError(t, err)
	assert.Equal(t, "9001", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "unit-test-secret", cfg.Auth.SecretKey)
}
