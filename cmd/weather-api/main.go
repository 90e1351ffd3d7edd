package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"weather-api/configs"
	_ "weather-api/docs"
	"weather-api/internal/application/controller"
	"weather-api/internal/application/middleware"
	"weather-api/internal/application/schedule"
	"weather-api/internal/domain/gateway/api"
	"weather-api/internal/domain/usecase/health"
	"weather-api/internal/domain/usecase/weather"
	"weather-api/pkg/http"
	"weather-api/pkg/log"
	"weather-api/pkg/msg"
)

func main() {
	config, err := configs.Load()
	if err != nil {
		log.Fatal(msg.GetMessage("config.invalid", err))
	}
	log.SetApplicationName(config.ApplicationName)
	log.SetLevel(config.LogLevel)
	defer log.Sync()

	log.Info(msg.GetMessage("app.start"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init infra
	summaryGateway, dbHealthGateway, closeDB := initSummaryStore(ctx, config.Database)
	defer closeDB()

	redisClient, lockHealthGateway := initRedis(config.Redis)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	alertSender, queueHealthGateway := initAlertQueue(ctx, config)

	// Init Gateways
	weatherGateway := api.NewWeatherGateway(config.Weather, http.ClientOptions{
		Logger: http.NewZapLogger(),
	})

	// Init UseCase
	healthUseCase := health.NewHealthUseCase(dbHealthGateway, lockHealthGateway, queueHealthGateway)
	weatherUseCase := weather.NewWeatherUseCase(config.Weather.Cities, config.Alerts.QueueName, alertSender, weatherGateway, summaryGateway)

	// Init Controller
	e := echo.New()
	e.HideBanner = true
	middleware.Setup(e)
	apiGroup := e.Group(config.Server.ContextPath)

	healthController := controller.NewHealthController(apiGroup, healthUseCase)
	weatherController := controller.NewWeatherController(apiGroup, weatherUseCase)

	// Init Routes
	healthController.InitHealthRoutes()
	weatherController.InitWeatherRoutes()
	apiGroup.GET("/swagger/*", echoSwagger.WrapHandler)

	// Init Schedule
	weatherScheduler := schedule.NewWeatherScheduler(weatherUseCase, redisClient, config.Redis.LockTTL, config.Redis.RefreshInterval)
	weatherScheduler.InitWeatherScheduleTasks(ctx)

	// Start Routes
	go func() {
		log.Info(msg.GetMessage("app.started", config.Server.Port))
		if err := e.Start(":" + config.Server.Port); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatalf("Fail to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info(msg.GetMessage("app.stopping"))

	weatherScheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Fail to shutdown server: %v", err)
	}
}
