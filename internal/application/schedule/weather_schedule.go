package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"weather-api/internal/domain/usecase/weather"
	"weather-api/pkg/log"
	"weather-api/pkg/msg"
	"weather-api/pkg/redis"
)

// RefreshInterval is the delay between two refresh cycles
const RefreshInterval = 300 * time.Second

const (
	lockName      = "weather_refresh_scheduler"
	lockNamespace = "weather_schedules"
)

// WeatherSchedulerConfig holds the distributed lock settings of the weather scheduler
type WeatherSchedulerConfig struct {
	LockTTL         time.Duration
	RefreshInterval time.Duration
}

// WeatherScheduler runs the daily summary refresh right away and then every RefreshInterval.
// Cycles never overlap. With a Redis client only the instance holding the lock runs them.
type WeatherScheduler struct {
	cron        *cron.Cron
	useCase     weather.UseCase
	redisClient *redis.Client
	config      *WeatherSchedulerConfig
	interval    time.Duration

	mutex  sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	job    cron.Job
}

// NewWeatherScheduler creates a new weather scheduler. A nil redisClient disables the distributed lock.
func NewWeatherScheduler(useCase weather.UseCase, redisClient *redis.Client, lockTTL time.Duration, lockRefreshInterval time.Duration) *WeatherScheduler {
	logger := cronLogger{}
	scheduler := &WeatherScheduler{
		cron:        cron.New(cron.WithLogger(logger)),
		useCase:     useCase,
		redisClient: redisClient,
		config: &WeatherSchedulerConfig{
			LockTTL:         lockTTL,
			RefreshInterval: lockRefreshInterval,
		},
		interval: RefreshInterval,
	}
	scheduler.job = cron.NewChain(cron.SkipIfStillRunning(logger)).Then(cron.FuncJob(scheduler.ExecuteScheduledTask))
	return scheduler
}

// InitWeatherScheduleTasks starts the scheduler in the background. It returns immediately.
func (s *WeatherScheduler) InitWeatherScheduleTasks(ctx context.Context) {
	s.mutex.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	runCtx := s.ctx
	s.mutex.Unlock()

	if s.redisClient == nil {
		s.start()
		return
	}

	go s.runWithLock(runCtx)
}

// runWithLock keeps competing for the distributed lock until ctx is done. While the lock is held
// the cron entry runs; when the lock is lost the entry is removed and acquisition starts over.
func (s *WeatherScheduler) runWithLock(ctx context.Context) {
	lock := redis.NewScheduledTaskLock(s.redisClient, lockName, s.getLockTTL(), s.getRefreshInterval(), lockNamespace,
		func(err error) {
			log.Warn(msg.GetMessage("schedule.lock-retry", err))
		})

	for ctx.Err() == nil {
		if err := lock.Lock(ctx); err != nil {
			if ctx.Err() == nil {
				log.Error(msg.GetMessage("schedule.lock-fail", err))
			}
			continue
		}
		if ctx.Err() != nil {
			s.release(lock)
			return
		}

		refreshErrChan := lock.AutoRefresh(ctx)
		entryID := s.start()

		err := <-refreshErrChan
		s.cron.Remove(entryID)

		if err != nil {
			log.Error(msg.GetMessage("schedule.lock-lost", err))
			continue
		}

		s.release(lock)
	}
}

func (s *WeatherScheduler) release(lock *redis.Lock) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := lock.Unlock(ctx); err != nil {
		log.Warnf("Fail to release refresh lock: %v", err)
	}
}

// start schedules the refresh job, runs it once right away and returns the cron entry
func (s *WeatherScheduler) start() cron.EntryID {
	entryID := s.cron.Schedule(cron.Every(s.interval), s.job)
	s.cron.Start()
	go s.job.Run()

	log.Info(msg.GetMessage("schedule.started", s.interval))
	return entryID
}

// ExecuteScheduledTask runs one refresh cycle tagged with a new request id
func (s *WeatherScheduler) ExecuteScheduledTask() {
	s.mutex.Lock()
	ctx := s.ctx
	s.mutex.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	requestID := uuid.New().String()
	result, err := s.useCase.RefreshDailySummaries(ctx, requestID)
	if err != nil {
		log.Error("Scheduled weather refresh failed", zap.String("request_id", requestID), zap.Error(err))
		return
	}

	log.Debug("Scheduled weather refresh completed",
		zap.String("request_id", requestID),
		zap.Int("upserted", result.Upserted),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))
}

// Stop stops scheduling new cycles and cancels the running one without waiting for it
func (s *WeatherScheduler) Stop() {
	s.mutex.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mutex.Unlock()

	s.cron.Stop()
	log.Info(msg.GetMessage("schedule.stopped"))
}

func (s *WeatherScheduler) getLockTTL() time.Duration {
	if s.config.LockTTL > 0 {
		return s.config.LockTTL
	}
	return 10 * time.Minute
}

func (s *WeatherScheduler) getRefreshInterval() time.Duration {
	if s.config.RefreshInterval > 0 {
		return s.config.RefreshInterval
	}
	return 1 * time.Minute
}

// cronLogger routes robfig/cron logs to pkg/log
type cronLogger struct{}

func (cronLogger) Info(message string, keysAndValues ...interface{}) {
	log.Debugw("cron: "+message, keysAndValues...)
}

func (cronLogger) Error(err error, message string, keysAndValues ...interface{}) {
	log.Errorw("cron: "+message, append(keysAndValues, "error", err)...)
}
