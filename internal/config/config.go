package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	configFile    = "config.yml"
	xdgConfigFile = "morris/config.yml"
)

type Config struct {
	LogLevel  string `yaml:"log-level" env:"MORRIS_LOG_LEVEL" env-default:"info"`
	Matches   int    `yaml:"matches" env:"MORRIS_MATCHES" env-default:"1"`
	TurnLimit int    `yaml:"turn-limit" env:"MORRIS_TURN_LIMIT" env-default:"400"`
	Seed      int64  `yaml:"seed" env:"MORRIS_SEED" env-default:"0"`
	Bot       Bot    `yaml:"bot"`
	Redis     Redis  `yaml:"redis"`
}

type Bot struct {
	ThinkDelay time.Duration `yaml:"think-delay" env:"MORRIS_BOT_THINK_DELAY" env-default:"0s"`
}

type Redis struct {
	Enabled   bool          `yaml:"enabled" env:"MORRIS_REDIS_ENABLED" env-default:"false"`
	Host      string        `yaml:"host" env:"MORRIS_REDIS_HOST" env-default:"localhost"`
	Port      string        `yaml:"port" env:"MORRIS_REDIS_PORT" env-default:"6379"`
	DB        int           `yaml:"db" env:"MORRIS_REDIS_DB" env-default:"0"`
	ResultTTL time.Duration `yaml:"result-ttl" env:"MORRIS_REDIS_RESULT_TTL" env-default:"0s"`
}

// Locate returns the config file to load: config.yml in baseDir first, then the user's XDG config dir.
// An empty path means no file was found.
func Locate(baseDir string) string {
	local := filepath.Join(baseDir, configFile)
	if _, err := os.Stat(local); err == nil {
		return local
	}

	if path, err := xdg.SearchConfigFile(xdgConfigFile); err == nil {
		return path
	}

	return ""
}

// MustLoad - load configuration from path, or from the environment alone when path is empty.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read config from env: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if that.Matches < 0 {
		return errors.New("matches must not be negative")
	}

	if that.TurnLimit < 0 {
		return errors.New("turn-limit must not be negative")
	}

	if that.Bot.ThinkDelay < 0 {
		return errors.New("bot think-delay must not be negative")
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
