package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	cfg := map[string]string{"PORT": "9090", "EMPTY": ""}

	assert.Equal(t, "9090", GetString(cfg, "PORT", "8080"))
	assert.Equal(t, "", GetString(cfg, "EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetString(cfg, "MISSING", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))
}

func TestGetInt(t *testing.T) {
	cfg := map[string]string{"TIMEOUT": "30", "BAD": "not-a-number"}

	assert.Equal(t, 30, GetInt(cfg, "TIMEOUT", 180))
	assert.Equal(t, 180, GetInt(cfg, "BAD", 180))
	assert.Equal(t, 180, GetInt(cfg, "MISSING", 180))
	assert.Equal(t, 180, GetInt(nil, "TIMEOUT", 180))
}

func TestGetBool(t *testing.T) {
	cfg := map[string]string{"ON": "true", "OFF": "false", "BAD": "maybe"}

	assert.True(t, GetBool(cfg, "ON", false))
	assert.False(t, GetBool(cfg, "OFF", true))
	assert.True(t, GetBool(cfg, "BAD", true))
	assert.False(t, GetBool(cfg, "MISSING", false))
	assert.True(t, GetBool(nil, "ON", true))
}

func TestNewSnapshotsEnvironment(t *testing.T) {
	t.Setenv("SHOWCASE_TEST_KEY", "value")

	cfg := New()
	assert.Equal(t, "value", GetString(cfg, "SHOWCASE_TEST_KEY", ""))
}
