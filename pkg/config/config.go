package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Log     LogConfig
	Export  ExportConfig
	Metrics MetricsConfig
	Menu    MenuConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// ExportConfig controls where roster and transcript exports are written.
type ExportConfig struct {
	Dir           string
	DefaultFormat string
	Retention     time.Duration
}

// MetricsConfig toggles registry instrumentation.
type MetricsConfig struct {
	Enabled bool
}

// MenuConfig tunes the interactive console.
type MenuConfig struct {
	Prompt string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Export = ExportConfig{
		Dir:           v.GetString("EXPORT_DIR"),
		DefaultFormat: strings.ToLower(strings.TrimSpace(v.GetString("EXPORT_DEFAULT_FORMAT"))),
		Retention:     parseDuration(v.GetString("EXPORT_RETENTION"), 0),
	}

	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("ENABLE_METRICS"),
	}

	cfg.Menu = MenuConfig{
		Prompt: v.GetString("MENU_PROMPT"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("EXPORT_DIR", "./exports")
	v.SetDefault("EXPORT_DEFAULT_FORMAT", "csv")
	v.SetDefault("EXPORT_RETENTION", "")

	v.SetDefault("ENABLE_METRICS", true)

	v.SetDefault("MENU_PROMPT", "> ")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
