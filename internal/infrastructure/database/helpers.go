package database

import (
	"fmt"
	"time"
)

// PoolStats is a snapshot of pool usage for the health endpoint.
type PoolStats struct {
	TotalConns         int32         `json:"total_conns"`
	MaxConns           int32         `json:"max_conns"`
	AcquiredConns      int32         `json:"acquired_conns"`
	IdleConns          int32         `json:"idle_conns"`
	AcquireCount       int64         `json:"acquire_count"`
	EmptyAcquireCount  int64         `json:"empty_acquire_count"`
	AvgAcquireDuration time.Duration `json:"avg_acquire_duration"`
}

func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	raw := db.Pool.Stat()
	return &PoolStats{
		TotalConns:         raw.TotalConns(),
		MaxConns:           raw.MaxConns(),
		AcquiredConns:      raw.AcquiredConns(),
		IdleConns:          raw.IdleConns(),
		AcquireCount:       raw.AcquireCount(),
		EmptyAcquireCount:  raw.EmptyAcquireCount(),
		AvgAcquireDuration: averageDuration(raw.AcquireDuration(), raw.AcquireCount()),
	}, nil
}

func averageDuration(total time.Duration, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return total / time.Duration(count)
}
