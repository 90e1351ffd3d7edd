package configs

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"weather-api/pkg/resource"
)

// DefaultCities is the tracked city list used when app.weather.cities is empty.
var DefaultCities = []string{"Delhi", "Mumbai", "Chennai", "Bangalore", "Kolkata", "Hyderabad"}

type Config struct {
	ApplicationName string `validate:"required"`
	LogLevel        string
	Server          ServerConfig
	Weather         WeatherConfig
	Database        DatabaseConfig
	Redis           RedisConfig
	Alerts          AlertsConfig
	Cloud           CloudConfig
}

type ServerConfig struct {
	Port        string `validate:"required,numeric"`
	ContextPath string `validate:"required,startswith=/"`
}

type WeatherConfig struct {
	APIKey  string        `validate:"required"`
	BaseURL string        `validate:"required,url"`
	Timeout time.Duration `validate:"gt=0"`
	Cities  []string      `validate:"min=1,dive,required"`
	Breaker BreakerConfig
}

// BreakerConfig tunes the circuit breaker placed in front of the weather provider.
type BreakerConfig struct {
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	ConsecutiveFailures uint32 `validate:"gt=0"`
}

type DatabaseConfig struct {
	Client   string `validate:"oneof=sqlc gorm"`
	Driver   string `validate:"oneof=sqlite postgres"`
	Path     string `validate:"required_if=Driver sqlite"`
	Host     string `validate:"required_if=Driver postgres"`
	Port     string
	Username string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Enabled         bool
	Host            string `validate:"required_if=Enabled true"`
	Port            int    `validate:"required_if=Enabled true,omitempty,min=1,max=65535"`
	Password        string
	Database        int `validate:"min=0,max=15"`
	LockTTL         time.Duration
	RefreshInterval time.Duration
}

type AlertsConfig struct {
	PublishEnabled bool
	QueueName      string `validate:"required_if=PublishEnabled true"`
}

type CloudConfig struct {
	AWSRegion          string
	AWSEndpoint        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// Load reads the properties file (PROPERTIES_FILE_PATH or the bundled application.yml),
// binds it into a Config and validates it.
func Load() (*Config, error) {
	var err error
	if path, ok := os.LookupEnv("PROPERTIES_FILE_PATH"); ok {
		err = resource.Init(path)
	} else {
		err = resource.Load(bytes.NewReader(ApplicationFile))
	}
	if err != nil {
		return nil, err
	}

	config := FromProperties()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// FromProperties binds the currently loaded properties into a Config without validating it.
func FromProperties() *Config {
	return &Config{
		ApplicationName: resource.GetString("app.name"),
		LogLevel:        resource.GetString("app.log.level"),
		Server: ServerConfig{
			Port:        resource.GetString("app.server.port"),
			ContextPath: resource.GetString("app.server.context-path"),
		},
		Weather: WeatherConfig{
			APIKey:  resource.GetString("app.weather.api-key"),
			BaseURL: resource.GetString("app.weather.base-url"),
			Timeout: resource.GetDuration("app.weather.timeout"),
			Cities:  ParseCities(resource.GetString("app.weather.cities")),
			Breaker: BreakerConfig{
				MaxRequests:         resource.GetUint32("app.weather.breaker.max-requests"),
				Interval:            resource.GetDuration("app.weather.breaker.interval"),
				Timeout:             resource.GetDuration("app.weather.breaker.timeout"),
				ConsecutiveFailures: resource.GetUint32("app.weather.breaker.consecutive-failures"),
			},
		},
		Database: DatabaseConfig{
			Client:   resource.GetString("app.db.client"),
			Driver:   resource.GetString("app.db.driver"),
			Path:     resource.GetString("app.db.path"),
			Host:     resource.GetString("app.db.host"),
			Port:     resource.GetString("app.db.port"),
			Username: resource.GetString("app.db.username"),
			Password: resource.GetString("app.db.password"),
			Database: resource.GetString("app.db.database"),
			Schema:   resource.GetString("app.db.schema"),
		},
		Redis: RedisConfig{
			Enabled:         resource.GetBool("app.redis.enabled"),
			Host:            resource.GetString("app.redis.host"),
			Port:            resource.GetInt("app.redis.port"),
			Password:        resource.GetString("app.redis.password"),
			Database:        resource.GetInt("app.redis.database"),
			LockTTL:         resource.GetDuration("app.redis.lock.ttl"),
			RefreshInterval: resource.GetDuration("app.redis.lock.refresh-interval"),
		},
		Alerts: AlertsConfig{
			PublishEnabled: resource.GetBool("app.alerts.publish.enabled"),
			QueueName:      resource.GetString("app.alerts.publish.queue-name"),
		},
		Cloud: CloudConfig{
			AWSRegion:          resource.GetString("app.cloud.aws-region"),
			AWSEndpoint:        resource.GetString("app.cloud.aws-endpoint"),
			AWSAccessKeyID:     resource.GetString("app.cloud.aws-access-key-id"),
			AWSSecretAccessKey: resource.GetString("app.cloud.aws-secret-access-key"),
		},
	}
}

// Validate checks the configuration, failing fast on a missing API key or an empty city list.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ParseCities splits a comma separated list, trimming blanks. An empty value yields DefaultCities.
func ParseCities(value string) []string {
	cities := make([]string, 0)
	for _, city := range strings.Split(value, ",") {
		if city = strings.TrimSpace(city); city != "" {
			cities = append(cities, city)
		}
	}

	if len(cities) == 0 {
		return append([]string(nil), DefaultCities...)
	}
	return cities
}
