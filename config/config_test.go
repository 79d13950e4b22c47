package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvRequiredVars(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MYSQL_DSN", "")

	_, err := LoadFromEnv()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "secret")
	_, err = LoadFromEnv()
	require.Error(t, err)

	t.Setenv("MYSQL_DSN", "user:pass@tcp(127.0.0.1:3306)/studytube?parseTime=true")
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.JWTSecret)
}

func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("MYSQL_DSN", "dsn")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:6379", cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 72, cfg.JWTTTLHours)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.YoutubeKeys)
}

func TestLoadFromEnvLists(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("MYSQL_DSN", "dsn")
	t.Setenv("YOUTUBE_API_KEY", "key-a, key-b ,key-c")
	t.Setenv("CORS_ORIGINS", "https://app.example.com,https://staging.example.com")
	t.Setenv("JWT_TTL_HOURS", "24")
	t.Setenv("PORT", "9000")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"key-a", "key-b", "key-c"}, cfg.YoutubeKeys)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 24, cfg.JWTTTLHours)
	assert.Equal(t, 9000, cfg.Port)
}
