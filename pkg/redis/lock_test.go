package redis

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	port, err := strconv.Atoi(server.Port())
	require.NoError(t, err)

	client, err := NewClient(NewRedisConfig().WithHost(server.Host()).WithPort(port))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client, server
}

func TestLock_IsExclusive(t *testing.T) {
	client, server := newTestClient(t)
	ctx := context.Background()

	first := NewLock(client, "refresh", &LockOptions{TTL: time.Minute, LockNamespace: "jobs"})
	second := NewLock(client, "refresh", &LockOptions{TTL: time.Minute, LockNamespace: "jobs"})

	acquired, err := first.TryLock(ctx)
	require.NoError(t, err)
	assert.True(t, acquired)
	assert.True(t, server.Exists("jobs::refresh"))

	acquired, err = second.TryLock(ctx)
	require.NoError(t, err)
	assert.False(t, acquired)

	value, err := server.Get("jobs::refresh")
	require.NoError(t, err)
	assert.Equal(t, first.value, value)
	assert.NotEqual(t, second.value, value)
}

func TestLock_UnlockOnlyByOwner(t *testing.T) {
	client, server := newTestClient(t)
	ctx := context.Background()

	owner := NewLock(client, "refresh", nil)
	other := NewLock(client, "refresh", nil)

	require.NoError(t, owner.Lock(ctx))

	assert.ErrorIs(t, other.Unlock(ctx), ErrLockNotHeld)
	assert.True(t, server.Exists("refresh"))

	require.NoError(t, owner.Unlock(ctx))
	assert.False(t, server.Exists("refresh"))
	assert.ErrorIs(t, owner.Unlock(ctx), ErrLockNotHeld)
}

func TestLock_GivesUpAfterMaxRetries(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	holder := NewLock(client, "refresh", nil)
	require.NoError(t, holder.Lock(ctx))

	waiter := NewLock(client, "refresh", &LockOptions{TTL: time.Minute, RetryDelay: time.Millisecond, MaxRetries: 2})
	err := waiter.Lock(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestScheduledTaskLock_WaitsUntilReleased(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	holder := NewScheduledTaskLock(client, "refresh", time.Minute, 10*time.Millisecond, "jobs", nil)
	require.NoError(t, holder.Lock(ctx))

	waiter := NewScheduledTaskLock(client, "refresh", time.Minute, 10*time.Millisecond, "jobs", nil)
	acquired := make(chan error, 1)
	go func() { acquired <- waiter.Lock(ctx) }()

	select {
	case err := <-acquired:
		t.Fatalf("lock acquired while held: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, holder.Unlock(ctx))

	select {
	case err := <-acquired:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("lock was not acquired after release")
	}
}

func TestScheduledTaskLock_RetriesWhileRedisIsDown(t *testing.T) {
	client, server := newTestClient(t)
	server.Close()

	var retryErrors atomic.Int32
	lock := NewScheduledTaskLock(client, "refresh", time.Minute, 10*time.Millisecond, "jobs", func(error) {
		retryErrors.Add(1)
	})

	acquired := make(chan error, 1)
	go func() { acquired <- lock.Lock(context.Background()) }()

	require.Eventually(t, func() bool { return retryErrors.Load() > 0 }, 3*time.Second, 10*time.Millisecond)
	select {
	case err := <-acquired:
		t.Fatalf("lock returned while redis was down: %v", err)
	default:
	}

	require.NoError(t, server.Restart())

	select {
	case err := <-acquired:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("lock was not acquired after redis came back")
	}
	assert.True(t, server.Exists("jobs::refresh"))
}

func TestLock_BoundedRetriesFailOnRedisError(t *testing.T) {
	client, server := newTestClient(t)
	server.Close()

	err := NewLock(client, "refresh", &LockOptions{TTL: time.Minute, RetryDelay: time.Millisecond, MaxRetries: 5}).Lock(context.Background())
	assert.ErrorContains(t, err, "failed to acquire lock")
}

func TestScheduledTaskLock_StopsWaitingWithContext(t *testing.T) {
	client, _ := newTestClient(t)

	holder := NewScheduledTaskLock(client, "refresh", time.Minute, 10*time.Millisecond, "jobs", nil)
	require.NoError(t, holder.Lock(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	waiter := NewScheduledTaskLock(client, "refresh", time.Minute, 10*time.Millisecond, "jobs", nil)
	assert.ErrorIs(t, waiter.Lock(ctx), context.DeadlineExceeded)
}

func TestLock_RefreshExtendsTTL(t *testing.T) {
	client, server := newTestClient(t)
	ctx := context.Background()

	lock := NewLock(client, "refresh", &LockOptions{TTL: 10 * time.Second})
	require.NoError(t, lock.Lock(ctx))

	server.FastForward(8 * time.Second)
	require.NoError(t, lock.Refresh(ctx))
	assert.Equal(t, 10*time.Second, server.TTL("refresh"))

	server.FastForward(11 * time.Second)
	assert.ErrorIs(t, lock.Refresh(ctx), ErrLockNotHeld)
}

func TestLock_AutoRefreshReportsLostLock(t *testing.T) {
	client, server := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lock := NewScheduledTaskLock(client, "refresh", time.Minute, 10*time.Millisecond, "jobs", nil)
	require.NoError(t, lock.Lock(ctx))

	lost := lock.AutoRefresh(ctx)
	require.NoError(t, server.Set("jobs::refresh", "someone-else"))

	select {
	case err := <-lost:
		assert.True(t, errors.Is(err, ErrLockNotHeld))
	case <-time.After(time.Second):
		t.Fatal("lost lock was not reported")
	}
}

func TestLock_AutoRefreshEndsWithContext(t *testing.T) {
	client, _ := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())

	lock := NewScheduledTaskLock(client, "refresh", time.Minute, 10*time.Millisecond, "jobs", nil)
	require.NoError(t, lock.Lock(ctx))

	done := lock.AutoRefresh(ctx)
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("auto refresh did not stop")
	}
}

func TestHealthChecker(t *testing.T) {
	client, server := newTestClient(t)

	check := NewHealthChecker(client).Check(context.Background())
	assert.Equal(t, StatusUp, check.Status)
	assert.Equal(t, server.Port(), check.Details["port"])

	server.Close()
	check = NewHealthChecker(client).Check(context.Background())
	assert.Equal(t, StatusDown, check.Status)
	assert.NotEmpty(t, check.Details["error"])
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, NewRedisConfig().Validate())
	assert.Error(t, NewRedisConfig().WithHost("").Validate())
	assert.Error(t, NewRedisConfig().WithPort(70000).Validate())
	assert.Error(t, NewRedisConfig().WithDatabase(16).Validate())
}
