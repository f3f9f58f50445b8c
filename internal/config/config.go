package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModeHTTP    = "http"
	ModeConsole = "console"

	DriverMemory = "memory"
	DriverRedis  = "redis"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Mode     string  `yaml:"mode" env:"MODE" env-default:"http"`
	HTTPPort string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Storage  Storage `yaml:"storage"`
	Game     Game    `yaml:"game"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
	Redis  Redis  `yaml:"redis"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Game struct {
	SaveKey         string        `yaml:"save-key" env:"GAME_SAVE_KEY" env-default:"tictactoe_save"`
	SaveDelay       time.Duration `yaml:"save-delay" env:"GAME_SAVE_DELAY" env-default:"800ms"`
	TimestampLayout string        `yaml:"timestamp-layout" env:"GAME_TIMESTAMP_LAYOUT" env-default:"2006/1/2 15:04:05"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
