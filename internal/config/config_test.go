package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("LOCK_DRIVER", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, LockLocal, cfg.Lock.Driver)
	assert.Equal(t, 10*time.Second, cfg.Lock.TTL)
	assert.True(t, cfg.Gateway.DeclineAbove.Equal(decimal.NewFromInt(1000)))
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("LOCK_DRIVER", "redis")
	t.Setenv("LOCK_TTL", "3s")
	t.Setenv("GATEWAY_DECLINE_ABOVE", "12.50")
	t.Setenv("GATEWAY_LATENCY", "50ms")
	t.Setenv("DB_PORT", "6543")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, LockRedis, cfg.Lock.Driver)
	assert.Equal(t, 3*time.Second, cfg.Lock.TTL)
	assert.Equal(t, "12.5", cfg.Gateway.DeclineAbove.String())
	assert.Equal(t, 50*time.Millisecond, cfg.Gateway.Latency)
	assert.Equal(t, 6543, cfg.Database.Port)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:     AppConfig{Environment: "development"},
			Storage: StorageConfig{Driver: StorageMemory},
			Lock:    LockConfig{Driver: LockLocal, TTL: time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"unknown storage", func(c *Config) { c.Storage.Driver = "sqlite" }, "STORAGE_DRIVER"},
		{"unknown lock", func(c *Config) { c.Lock.Driver = "etcd" }, "LOCK_DRIVER"},
		{"zero ttl", func(c *Config) { c.Lock.TTL = 0 }, "LOCK_TTL"},
		{"production postgres without password", func(c *Config) {
			c.App.Environment = "production"
			c.Storage.Driver = StoragePostgres
		}, "DB_PASSWORD"},
		{"production memory without password", func(c *Config) {
			c.App.Environment = "production"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)

			err := c.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_RETRY_DELAY", "2s")

	cfg, err := LoadDatabaseConfig(DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "lib", MaxConns: 10, MinConns: 1})

	require.NoError(t, err)
	assert.Equal(t, "db", cfg.Host)
	assert.Equal(t, int32(10), cfg.MaxConns)
	assert.Equal(t, 2*time.Second, cfg.RetryDelay)
	assert.Equal(t, 5*time.Minute, cfg.MaxConnLifetime)
	assert.Equal(t, 5, cfg.MaxRetries)
}

func TestLoadDatabaseConfig_InvalidDuration(t *testing.T) {
	t.Setenv("DB_CONNECT_TIMEOUT", "soon")

	_, err := LoadDatabaseConfig(DatabaseConfig{})

	assert.ErrorContains(t, err, "DB_CONNECT_TIMEOUT")
}
