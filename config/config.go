package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	MysqlDSN    string
	RedisAddr   string
	RedisPass   string
	RedisDB     int
	JWTSecret   string
	JWTTTLHours int
	YoutubeKeys []string
	CORSOrigins []string
	Port        int
}

// LoadFromEnv reads configuration from environment variables. JWT_SECRET and
// MYSQL_DSN have no usable defaults and are required.
func LoadFromEnv() (*Config, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET required in env")
	}
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		// example: user:pass@tcp(127.0.0.1:3306)/studytube?parseTime=true
		return nil, errors.New("MYSQL_DSN required in env")
	}
	return &Config{
		MysqlDSN:    dsn,
		RedisAddr:   envOr("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPass:   envOr("REDIS_PASS", ""),
		RedisDB:     envInt("REDIS_DB", 0),
		JWTSecret:   jwtSecret,
		JWTTTLHours: envInt("JWT_TTL_HOURS", 72),
		YoutubeKeys: splitList(os.Getenv("YOUTUBE_API_KEY")),
		CORSOrigins: splitList(envOr("CORS_ORIGINS", "*")),
		Port:        envInt("PORT", 8080),
	}, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if s := os.Getenv(k); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return def
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
