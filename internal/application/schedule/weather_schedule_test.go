package schedule

import (
	"context"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-api/internal/domain/model"
	"weather-api/pkg/redis"
)

// countingUseCase counts refresh cycles; when block is set each cycle waits for it or for ctx
type countingUseCase struct {
	runs    atomic.Int32
	running atomic.Int32
	block   chan struct{}
}

func (u *countingUseCase) RefreshDailySummaries(ctx context.Context, requestID string) (*model.RefreshResult, error) {
	u.runs.Add(1)
	u.running.Add(1)
	defer u.running.Add(-1)

	if u.block != nil {
		select {
		case <-u.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return &model.RefreshResult{RequestID: requestID}, nil
}

func (u *countingUseCase) GetCurrentWeather(context.Context) (map[string]model.CurrentWeatherDTO, error) {
	return nil, nil
}

func (u *countingUseCase) GetHistoricalWeather(context.Context) ([]model.DailySummaryDTO, error) {
	return nil, nil
}

func (u *countingUseCase) GetAlerts(context.Context) ([]model.AlertDTO, error) {
	return nil, nil
}

func (u *countingUseCase) GetForecast(context.Context, string) ([]model.ForecastDTO, error) {
	return nil, nil
}

func TestScheduler_RunsImmediatelyThenEveryInterval(t *testing.T) {
	useCase := &countingUseCase{}
	scheduler := NewWeatherScheduler(useCase, nil, 0, 0)
	scheduler.interval = time.Second

	scheduler.InitWeatherScheduleTasks(context.Background())
	defer scheduler.Stop()

	assert.Eventually(t, func() bool { return useCase.runs.Load() == 1 }, 500*time.Millisecond, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return useCase.runs.Load() >= 2 }, 2500*time.Millisecond, 50*time.Millisecond)
}

func TestScheduler_DefaultInterval(t *testing.T) {
	scheduler := NewWeatherScheduler(&countingUseCase{}, nil, 0, 0)

	assert.Equal(t, 300*time.Second, scheduler.interval)
	assert.Equal(t, 10*time.Minute, scheduler.getLockTTL())
	assert.Equal(t, time.Minute, scheduler.getRefreshInterval())
}

func TestScheduler_SkipsTickWhileCycleRuns(t *testing.T) {
	useCase := &countingUseCase{block: make(chan struct{})}
	scheduler := NewWeatherScheduler(useCase, nil, 0, 0)
	scheduler.interval = time.Second

	scheduler.InitWeatherScheduleTasks(context.Background())
	defer scheduler.Stop()

	time.Sleep(2200 * time.Millisecond)
	assert.Equal(t, int32(1), useCase.runs.Load())
	assert.Equal(t, int32(1), useCase.running.Load())

	close(useCase.block)
	assert.Eventually(t, func() bool { return useCase.runs.Load() >= 2 }, 2500*time.Millisecond, 50*time.Millisecond)
}

func TestScheduler_StopDoesNotWaitForRunningCycle(t *testing.T) {
	useCase := &countingUseCase{block: make(chan struct{})}
	scheduler := NewWeatherScheduler(useCase, nil, 0, 0)

	scheduler.InitWeatherScheduleTasks(context.Background())
	require.Eventually(t, func() bool { return useCase.running.Load() == 1 }, 500*time.Millisecond, 10*time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		scheduler.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Stop blocked on the running cycle")
	}

	assert.Eventually(t, func() bool { return useCase.running.Load() == 0 }, 500*time.Millisecond, 10*time.Millisecond)
}

func newRedisClientFactory(t *testing.T, server *miniredis.Miniredis) func() *redis.Client {
	t.Helper()

	port, err := strconv.Atoi(server.Port())
	require.NoError(t, err)

	return func() *redis.Client {
		client, err := redis.NewClient(redis.NewRedisConfig().WithHost(server.Host()).WithPort(port))
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })
		return client
	}
}

func TestScheduler_OnlyLockHolderRuns(t *testing.T) {
	server := miniredis.RunT(t)
	newClient := newRedisClientFactory(t, server)

	first := &countingUseCase{}
	second := &countingUseCase{}
	firstScheduler := NewWeatherScheduler(first, newClient(), time.Minute, 20*time.Millisecond)
	secondScheduler := NewWeatherScheduler(second, newClient(), time.Minute, 20*time.Millisecond)

	firstScheduler.InitWeatherScheduleTasks(context.Background())
	require.Eventually(t, func() bool { return first.runs.Load() == 1 }, time.Second, 10*time.Millisecond)
	assert.True(t, server.Exists(lockNamespace+"::"+lockName))

	secondScheduler.InitWeatherScheduleTasks(context.Background())
	defer secondScheduler.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), second.runs.Load())

	firstScheduler.Stop()
	assert.Eventually(t, func() bool { return second.runs.Load() == 1 }, time.Second, 10*time.Millisecond)
}

func TestScheduler_ReacquiresLostLock(t *testing.T) {
	server := miniredis.RunT(t)
	newClient := newRedisClientFactory(t, server)

	useCase := &countingUseCase{}
	scheduler := NewWeatherScheduler(useCase, newClient(), time.Minute, 20*time.Millisecond)
	scheduler.InitWeatherScheduleTasks(context.Background())
	defer scheduler.Stop()

	require.Eventually(t, func() bool { return useCase.runs.Load() == 1 }, time.Second, 10*time.Millisecond)

	server.Del(lockNamespace + "::" + lockName)

	assert.Eventually(t, func() bool { return useCase.runs.Load() >= 2 }, 3*time.Second, 20*time.Millisecond)
	assert.True(t, server.Exists(lockNamespace+"::"+lockName))
}

func TestScheduler_StartsOnceRedisComesBack(t *testing.T) {
	server := miniredis.RunT(t)
	newClient := newRedisClientFactory(t, server)
	client := newClient()
	server.Close()

	useCase := &countingUseCase{}
	scheduler := NewWeatherScheduler(useCase, client, time.Minute, 20*time.Millisecond)
	scheduler.InitWeatherScheduleTasks(context.Background())
	defer scheduler.Stop()

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(0), useCase.runs.Load())

	require.NoError(t, server.Restart())
	assert.Eventually(t, func() bool { return useCase.runs.Load() == 1 }, 5*time.Second, 20*time.Millisecond)
}

func TestScheduler_StopEndsLockLoop(t *testing.T) {
	server := miniredis.RunT(t)
	newClient := newRedisClientFactory(t, server)

	useCase := &countingUseCase{}
	scheduler := NewWeatherScheduler(useCase, newClient(), time.Minute, 20*time.Millisecond)
	scheduler.InitWeatherScheduleTasks(context.Background())
	require.Eventually(t, func() bool { return useCase.runs.Load() == 1 }, time.Second, 10*time.Millisecond)

	scheduler.Stop()

	assert.Eventually(t, func() bool { return !server.Exists(lockNamespace + "::" + lockName) }, time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), useCase.runs.Load())
}
