package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string  `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
	Storage  Storage `yaml:"storage"`
	Redis    Redis   `yaml:"redis"`
}

type Storage struct {
	Backend        string `yaml:"backend" env:"STORE_BACKEND" env-default:"memory"`
	GameTTLMinutes int    `yaml:"game-ttl-minutes" env:"GAME_TTL_MINUTES" env-default:"0"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations from the config file, falling back to
// environment variables when the file is absent.
func MustLoad(path string) *Config {
	config := &Config{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = cleanenv.ReadEnv(config); err != nil {
			panic(fmt.Errorf("unable to read config from environment: %w", err))
		}
		return config
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// GameTTL returns the configured record lifetime; zero means games never
// expire.
func (that *Storage) GameTTL() time.Duration {
	if that.GameTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(that.GameTTLMinutes) * time.Minute
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
