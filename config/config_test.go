package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigPort(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	t.Setenv("APP_PORT", "")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.AppPort)

	t.Setenv("APP_PORT", "9090")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.AppPort)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SECRET_KEY")
}
