package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsFlagInsecureSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PASSWORD_ROTATION_SECRET", "")
	t.Setenv("EDIT_PASSWORD_ON_DELETE", "")
	t.Setenv("BOOTSTRAP_ADMIN_PASSWORD", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultJWTSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, DefaultRotationSecret, cfg.Auth.RotationSecret)
	assert.ElementsMatch(t, []string{"JWT_SECRET", "PASSWORD_ROTATION_SECRET"}, cfg.InsecureDefaults())
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL())
	assert.True(t, cfg.EditPolicy.Delete)
	assert.Equal(t, "admin", cfg.Auth.BootstrapUsername)
	assert.Empty(t, cfg.Auth.BootstrapPassword)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "prod-signing-key")
	t.Setenv("PASSWORD_ROTATION_SECRET", "prod-seed")
	t.Setenv("AUTH_TOKEN_TTL_HOURS", "2")
	t.Setenv("EDIT_PASSWORD_ON_DELETE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.InsecureDefaults())
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL())
	assert.False(t, cfg.EditPolicy.Delete)
	assert.True(t, cfg.EditPolicy.Create)
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "zero")

	_, err := Load()
	assert.Error(t, err)
}
