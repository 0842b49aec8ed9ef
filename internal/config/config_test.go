package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memberhub", cfg.MongoDB)
	assert.Equal(t, "mongo", cfg.UserStore)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("USER_STORE", "memory")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("SESSION_TTL", "30m")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "memory", cfg.UserStore)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("BCRYPT_COST", "not-a-number")
	t.Setenv("SESSION_TTL", "not-a-duration")

	cfg := Load()

	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
}
