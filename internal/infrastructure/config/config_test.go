package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gomart-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 5*time.Second, cfg.Operation.Timeout)
	assert.Equal(t, 3, cfg.Operation.RetryAttempts)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("GOMART_DATABASE_DRIVER", "sqlite")
	t.Setenv("GOMART_DATABASE_PATH", "/tmp/test.db")
	t.Setenv("GOMART_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("unknown driver fails", func(t *testing.T) {
		cfg := base()
		cfg.Database.Driver = "mysql"
		assert.Error(t, cfg.validate())
	})

	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = cfg.Database.MaxOpenConns + 1
		assert.Error(t, cfg.validate())
	})

	t.Run("production requires postgres password and ssl", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		assert.Error(t, cfg.validate(), "default sslmode=disable and empty password")

		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		assert.NoError(t, cfg.validate())
	})

	t.Run("retry attempts must be at least one", func(t *testing.T) {
		cfg := base()
		cfg.Operation.RetryAttempts = 0
		assert.Error(t, cfg.validate())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("postgres url with escaped credentials", func(t *testing.T) {
		d := &DatabaseConfig{
			Driver:   "postgres",
			Host:     "db.internal",
			Port:     5433,
			User:     "gomart",
			Password: "p@ss/word",
			DBName:   "gomart",
			SSLMode:  "require",
		}
		dsn := d.DSN()
		assert.Contains(t, dsn, "db.internal:5433")
		assert.Contains(t, dsn, "sslmode=require")
		assert.NotContains(t, dsn, "p@ss/word", "password must be escaped")
	})

	t.Run("sqlite returns the file path", func(t *testing.T) {
		d := &DatabaseConfig{Driver: "sqlite", Path: "gomart.db"}
		assert.Equal(t, "gomart.db", d.DSN())
	})
}
