package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "./exports", cfg.Export.Dir)
	assert.Equal(t, "csv", cfg.Export.DefaultFormat)
	assert.Zero(t, cfg.Export.Retention)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "> ", cfg.Menu.Prompt)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("ENV", EnvProduction)
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("EXPORT_DIR", "/tmp/reports")
	t.Setenv("EXPORT_DEFAULT_FORMAT", " PDF ")
	t.Setenv("EXPORT_RETENTION", "72h")
	t.Setenv("ENABLE_METRICS", "false")

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := fromViper(v)
	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/tmp/reports", cfg.Export.Dir)
	assert.Equal(t, "pdf", cfg.Export.DefaultFormat)
	assert.Equal(t, 72*time.Hour, cfg.Export.Retention)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, 90*time.Second, parseDuration("90s", time.Minute))
}
