package lock

import (
	"context"
	"errors"
	"sort"
)

var ErrLockTimeout = errors.New("timed out waiting for lock")

// Locker serializes check-then-act sequences on a named resource.
// Unlock must be called exactly once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
	HealthCheck(ctx context.Context) error
}

// LockAll acquires keys in sorted order and returns a func releasing them
// in reverse. Callers that always go through LockAll cannot deadlock.
func LockAll(ctx context.Context, l Locker, keys ...string) (func(), error) {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	unlocks := make([]func(), 0, len(sorted))
	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}

	for i, key := range sorted {
		if i > 0 && key == sorted[i-1] {
			continue
		}
		unlock, err := l.Lock(ctx, key)
		if err != nil {
			release()
			return nil, err
		}
		unlocks = append(unlocks, unlock)
	}
	return release, nil
}
