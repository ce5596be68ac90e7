package config

import (
	"fmt"
	"strconv"
	"time"

	"library-backend/internal/infrastructure/database"
)

// LoadDatabaseConfig combines the connection settings with pool and retry
// tuning read from the environment.
func LoadDatabaseConfig(db DatabaseConfig) (*database.DBConfig, error) {
	maxRetries, err := strconv.Atoi(getEnv("DB_MAX_RETRIES", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_RETRIES: %w", err)
	}

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"DB_MAX_CONN_LIFETIME", "5m", new(time.Duration)},
		{"DB_MAX_CONN_IDLE_TIME", "1m", new(time.Duration)},
		{"DB_HEALTH_CHECK_PERIOD", "1m", new(time.Duration)},
		{"DB_RETRY_DELAY", "1s", new(time.Duration)},
		{"DB_CONNECT_TIMEOUT", "10s", new(time.Duration)},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getEnv(d.key, d.def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = v
	}

	return &database.DBConfig{
		Host:              db.Host,
		Port:              db.Port,
		Username:          db.User,
		Password:          db.Password,
		DBName:            db.Database,
		SSLMode:           db.SSLMode,
		MaxConns:          int32(db.MaxConns),
		MinConns:          int32(db.MinConns),
		MaxConnLifetime:   *durations[0].dst,
		MaxConnIdleTime:   *durations[1].dst,
		HealthCheckPeriod: *durations[2].dst,
		MaxRetries:        maxRetries,
		RetryDelay:        *durations[3].dst,
		ConnectTimeout:    *durations[4].dst,
	}, nil
}
