package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv    string
	DataDir   string
	HTTPAddr  string
	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration
	RateRPS   int
}

// Load reads configuration from the environment, after merging a .env file
// if one is present in the working directory.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env load failed")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	return Config{
		AppEnv:    env("APP_ENV", "prod"),
		DataDir:   env("DATA_DIR", "data"),
		HTTPAddr:  env("HTTP_ADDR", ":8080"),
		RedisAddr: env("REDIS_ADDR", ""), // empty disables the dashboard cache
		RedisDB:   atoi("REDIS_DB", 0),
		RedisPass: env("REDIS_PASSWORD", ""),
		CacheTTL:  time.Duration(atoi("CACHE_TTL_SECONDS", 30)) * time.Second,
		RateRPS:   atoi("RATE_RPS", 20),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
