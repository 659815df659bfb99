package lock

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryLocker is a Locker for a single process, used in local mode where
// the CLI is the only writer.
type MemoryLocker struct {
	config Config

	mu    sync.Mutex
	slots map[string]chan struct{}
}

// NewMemoryLocker creates an in-process locker. Only Wait is used from cfg.
func NewMemoryLocker(cfg Config) *MemoryLocker {
	return &MemoryLocker{
		config: cfg.withDefaults(),
		slots:  make(map[string]chan struct{}),
	}
}

func (l *MemoryLocker) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[key]
	if !ok {
		s = make(chan struct{}, 1)
		l.slots[key] = s
	}
	return s
}

// Acquire blocks until key is free, the wait elapses or ctx is done.
func (l *MemoryLocker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	slot := l.slot(key)

	select {
	case slot <- struct{}{}:
	default:
		timer := time.NewTimer(l.config.Wait)
		defer timer.Stop()

		select {
		case slot <- struct{}{}:
		case <-timer.C:
			return nil, fmt.Errorf("%w: %s", ErrNotAcquired, key)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	var once sync.Once
	return func(context.Context) error {
		err := ErrLost
		once.Do(func() {
			<-slot
			err = nil
		})
		return err
	}, nil
}
