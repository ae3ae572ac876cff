// Package config carga la configuración del servicio desde el entorno.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env          string        `envconfig:"APP_ENV" default:"development"`
	Addr         string        `envconfig:"APP_ADDR" default:":8080"`
	ReadTimeout  time.Duration `envconfig:"APP_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"10s"`
	AppName      string        `envconfig:"APP_NAME" default:"vet-clinic-records"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	// Vacío => repos in-memory (modo dev).
	DBDSN string `envconfig:"DB_DSN"`

	// Vacío => sin observer de broadcast.
	RedisAddr    string `envconfig:"REDIS_ADDR"`
	RedisChannel string `envconfig:"REDIS_CHANNEL" default:"clinic.appointments"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	// Si ODIN_BASE_URL viene, los tokens se verifican contra Odin en vez de localmente.
	OdinBaseURL string `envconfig:"ODIN_BASE_URL"`
	OdinAPIKey  string `envconfig:"ODIN_API_KEY"`

	// Permite X-Debug-User-ID / X-Debug-User-Role. Nunca en producción.
	DebugAuth bool `envconfig:"DEBUG_AUTH" default:"false"`

	LoginRatePerMinute int `envconfig:"LOGIN_RATE_PER_MINUTE" default:"10"`
}

// Load lee .env (si existe) y luego el entorno.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET must be provided")
	}
	if cfg.IsProduction() && cfg.DebugAuth {
		return nil, errors.New("DEBUG_AUTH cannot be enabled in production")
	}
	if cfg.LoginRatePerMinute <= 0 {
		cfg.LoginRatePerMinute = 10
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c != nil && c.Env == "production"
}
