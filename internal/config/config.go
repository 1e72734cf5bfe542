package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del cliente y de la API local.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	StashBaseURL        string `env:"STASH_BASE_URL" envDefault:"https://api.stashcat.com"`
	StashClientKey      string `env:"STASH_CLIENT_KEY,required,notEmpty"`
	StashDeviceID       string `env:"STASH_DEVICE_ID,required,notEmpty"`
	StashPrivateKeyFile string `env:"STASH_PRIVATE_KEY_FILE"`

	JWTSecret           string `env:"JWT_SECRET"`
	JWTAccessTTLMinutes int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"15"`

	DatabaseURL string `env:"DATABASE_URL"`

	ActionRateLimit  int           `env:"ACTION_RATE_LIMIT" envDefault:"30"`
	ActionRateWindow time.Duration `env:"ACTION_RATE_WINDOW" envDefault:"1m"`

	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`
	KeyCacheTTL    time.Duration `env:"KEY_CACHE_TTL" envDefault:"1h"`
	KeyCacheSecret string        `env:"KEY_CACHE_SECRET"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
