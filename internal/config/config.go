package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/torus-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/torus-tictactoe/internal/entity"
)

var (
	ErrUnknownLogLevel = errors.New("unknown log level")
	ErrUnknownView     = errors.New("unknown view")
)

const (
	ViewFlat  = "flat"
	ViewTiled = "tiled"
)

type Config struct {
	LogLevel string   `yaml:"log-level" env:"TORUS_LOG_LEVEL" env-default:"info"`
	Mode     string   `yaml:"mode" env:"TORUS_MODE" env-default:"computer"`
	View     string   `yaml:"view" env:"TORUS_VIEW" env-default:"flat"`
	Computer Computer `yaml:"computer"`
}

type Computer struct {
	Mark       string        `yaml:"mark" env:"TORUS_COMPUTER_MARK" env-default:"O"`
	ThinkDelay time.Duration `yaml:"think-delay" env:"TORUS_THINK_DELAY" env-default:"500ms"`
	// Seed drives the random fallback. Zero seeds from the clock.
	Seed int64 `yaml:"seed" env:"TORUS_SEED" env-default:"0"`
}

// Load reads the yaml file at path when it exists and applies environment
// overrides. Without the file only the environment and defaults are used.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	} else {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to load config from env: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Config) Validate() error {
	if _, err := that.SlogLevel(); err != nil {
		return err
	}

	if _, err := that.GameMode(); err != nil {
		return err
	}

	if that.View != ViewFlat && that.View != ViewTiled {
		return fmt.Errorf("%w: %q", ErrUnknownView, that.View)
	}

	if _, err := that.Computer.GetMark(); err != nil {
		return err
	}

	if that.Computer.ThinkDelay < 0 {
		return apperror.ErrNegativeDelay
	}

	return nil
}

func (that *Config) SlogLevel() (slog.Level, error) {
	switch that.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLogLevel, that.LogLevel)
	}
}

func (that *Config) GameMode() (entity.Mode, error) {
	mode, err := entity.ParseMode(that.Mode)
	if err != nil {
		return "", fmt.Errorf("mode: %w", err)
	}

	return mode, nil
}

func (that *Computer) GetMark() (entity.Mark, error) {
	mark, err := entity.ParseMark(that.Mark)
	if err != nil {
		return entity.Empty, fmt.Errorf("computer mark: %w", err)
	}

	return mark, nil
}

// GetSeed returns the configured seed, or the current time when unset.
func (that *Computer) GetSeed() int64 {
	if that.Seed == 0 {
		return time.Now().UnixNano()
	}

	return that.Seed
}
