// Package lock provides the per-aggregate mutation locks command handlers
// hold while they load, change and save aggregates.
package lock

import (
	"errors"
	"time"
)

var (
	// ErrNotAcquired is returned when a lock stays held by someone else
	// for longer than the configured wait.
	ErrNotAcquired = errors.New("lock not acquired")

	// ErrLost is returned on release when the lock expired and was taken
	// over before the holder released it.
	ErrLost = errors.New("lock lost before release")
)

// Config tunes lock acquisition.
type Config struct {
	// TTL bounds how long a crashed holder can block others.
	TTL time.Duration
	// Wait is how long Acquire retries before giving up.
	Wait time.Duration
	// RetryInterval is the pause between attempts.
	RetryInterval time.Duration
	// Prefix namespaces the keys in a shared store.
	Prefix string
}

// DefaultConfig returns settings for short booking commands.
func DefaultConfig() Config {
	return Config{
		TTL:           10 * time.Second,
		Wait:          5 * time.Second,
		RetryInterval: 25 * time.Millisecond,
		Prefix:        "gym:lock:",
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TTL <= 0 {
		c.TTL = d.TTL
	}
	if c.Wait < 0 {
		c.Wait = 0
	}
	if c.RetryInterval <= 0 {
		c.RetryInterval = d.RetryInterval
	}
	return c
}
