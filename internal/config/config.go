package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

const defaultSecret = "dev-secret-change-me"

type Config struct {
	Port            string `env:"APP_PORT" envDefault:"8080"`
	DatabaseDSN     string `env:"DATABASE_DSN" envDefault:"host=localhost user=postgres password=postgres dbname=webchat port=5432 sslmode=disable TimeZone=UTC"`
	SecretKey       string `env:"SECRET_KEY" envDefault:"dev-secret-change-me"`
	Env             string `env:"APP_ENV" envDefault:"dev"`
	RoomCode        string `env:"ROOM_CODE" envDefault:"myRoom"`
	SessionTTLHours int    `env:"SESSION_TTL_HOURS" envDefault:"24"`
}

// Load 从环境变量解析配置，非法的数值直接报错而不是静默吞掉。
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	if cfg.SessionTTLHours <= 0 {
		cfg.SessionTTLHours = 24
	}
	return cfg, nil
}

// Validate 在启动时拦截明显不可用的配置。
func Validate(cfg Config) error {
	if cfg.Port == "" {
		return errors.New("port must not be empty")
	}
	if cfg.DatabaseDSN == "" {
		return errors.New("database dsn must not be empty")
	}
	if cfg.RoomCode == "" {
		return errors.New("room code must not be empty")
	}
	if cfg.Env != "dev" && cfg.SecretKey == defaultSecret {
		return errors.New("default secret key is not allowed outside dev")
	}
	return nil
}
