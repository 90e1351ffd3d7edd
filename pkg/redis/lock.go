package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrLockNotHeld is returned when an unlock or refresh targets a lock owned by someone else
var ErrLockNotHeld = errors.New("lock was not held by this client")

const unlockScript = `
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`

const refreshScript = `
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("PEXPIRE", KEYS[1], ARGV[2])
	else
		return 0
	end
`

// LockOptions represents options for distributed locking
type LockOptions struct {
	TTL        time.Duration
	RetryDelay time.Duration
	// MaxRetries is the number of extra attempts; a negative value retries until the context is done
	MaxRetries      int
	RefreshInterval time.Duration
	LockNamespace   string
	// OnRetryError receives the errors swallowed while retrying until the context is done
	OnRetryError func(err error)
}

// NewLockOptions creates a new lock options with default values
func NewLockOptions() *LockOptions {
	return &LockOptions{
		TTL:             30 * time.Second,
		RetryDelay:      100 * time.Millisecond,
		MaxRetries:      10,
		RefreshInterval: 10 * time.Second,
	}
}

// Lock represents a distributed lock held with SET NX
type Lock struct {
	client *Client
	key    string
	value  string
	opts   *LockOptions
}

// NewLock creates a new distributed lock
func NewLock(client *Client, key string, opts *LockOptions) *Lock {
	if opts == nil {
		opts = NewLockOptions()
	}
	return &Lock{
		client: client,
		key:    key,
		value:  uuid.NewString(),
		opts:   opts,
	}
}

// NewScheduledTaskLock creates a lock meant to be held for the whole life of a scheduled task.
// Acquisition retries every refresh interval until the context is done, Redis errors included;
// onRetryError, when not nil, sees each of those errors.
func NewScheduledTaskLock(client *Client, name string, ttl, refreshInterval time.Duration, namespace string, onRetryError func(error)) *Lock {
	return NewLock(client, name, &LockOptions{
		TTL:             ttl,
		RetryDelay:      refreshInterval,
		MaxRetries:      -1,
		RefreshInterval: refreshInterval,
		LockNamespace:   namespace,
		OnRetryError:    onRetryError,
	})
}

// Key returns the namespaced lock key, NAMESPACE::key
func (l *Lock) Key() string {
	if l.opts.LockNamespace != "" {
		return l.opts.LockNamespace + "::" + l.key
	}
	return l.key
}

// TryLock makes a single acquisition attempt
func (l *Lock) TryLock(ctx context.Context) (bool, error) {
	acquired, err := l.client.GetClient().SetNX(ctx, l.Key(), l.value, l.opts.TTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	return acquired, nil
}

// Lock attempts to acquire the lock, retrying as configured.
// With a negative MaxRetries, Redis errors are retried like a held lock.
func (l *Lock) Lock(ctx context.Context) error {
	for attempt := 0; l.opts.MaxRetries < 0 || attempt <= l.opts.MaxRetries; attempt++ {
		acquired, err := l.TryLock(ctx)
		if err != nil {
			if l.opts.MaxRetries >= 0 || ctx.Err() != nil {
				return err
			}
			if l.opts.OnRetryError != nil {
				l.opts.OnRetryError(err)
			}
		} else if acquired {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.opts.RetryDelay):
		}
	}

	return fmt.Errorf("failed to acquire lock after %d attempts", l.opts.MaxRetries+1)
}

// Unlock releases the lock if it is still ours
func (l *Lock) Unlock(ctx context.Context) error {
	result, err := l.client.GetClient().Eval(ctx, unlockScript, []string{l.Key()}, l.value).Int64()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if result == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// Refresh extends the lock TTL if it is still ours
func (l *Lock) Refresh(ctx context.Context) error {
	result, err := l.client.GetClient().Eval(ctx, refreshScript, []string{l.Key()}, l.value, l.opts.TTL.Milliseconds()).Int64()
	if err != nil {
		return fmt.Errorf("failed to refresh lock: %w", err)
	}
	if result == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// AutoRefresh refreshes the lock every refresh interval. The returned channel receives
// nil when ctx is done or the refresh error that ended the loop.
func (l *Lock) AutoRefresh(ctx context.Context) <-chan error {
	errChan := make(chan error, 1)

	go func() {
		ticker := time.NewTicker(l.opts.RefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				errChan <- nil
				return
			case <-ticker.C:
				if err := l.Refresh(ctx); err != nil {
					if ctx.Err() != nil {
						errChan <- nil
					} else {
						errChan <- err
					}
					return
				}
			}
		}
	}()

	return errChan
}
