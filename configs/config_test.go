package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCities(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{name: "comma separated", value: "Delhi,Mumbai", want: []string{"Delhi", "Mumbai"}},
		{name: "blanks trimmed", value: " Delhi , ,Pune ", want: []string{"Delhi", "Pune"}},
		{name: "empty falls back", value: "", want: DefaultCities},
		{name: "only separators falls back", value: " , ", want: DefaultCities},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCities(tt.value))
		})
	}
}

func TestParseCities_DefaultIsACopy(t *testing.T) {
	cities := ParseCities("")
	cities[0] = "Changed"
	assert.Equal(t, "Delhi", DefaultCities[0])
}

func TestLoad_BundledDefaults(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "secret")
	t.Setenv("WEATHER_CITIES", "TestCity")

	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", config.Server.Port)
	assert.Equal(t, "/api", config.Server.ContextPath)
	assert.Equal(t, "secret", config.Weather.APIKey)
	assert.Equal(t, []string{"TestCity"}, config.Weather.Cities)
	assert.Equal(t, 10*time.Second, config.Weather.Timeout)
	assert.Equal(t, uint32(5), config.Weather.Breaker.ConsecutiveFailures)
	assert.Equal(t, "sqlc", config.Database.Client)
	assert.Equal(t, "sqlite", config.Database.Driver)
	assert.False(t, config.Redis.Enabled)
	assert.False(t, config.Alerts.PublishEnabled)
}

func TestLoad_MissingAPIKeyFails(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APIKey")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ApplicationName: "weather-api",
			Server:          ServerConfig{Port: "5000", ContextPath: "/api"},
			Weather: WeatherConfig{
				APIKey:  "key",
				BaseURL: "https://api.openweathermap.org",
				Timeout: time.Second,
				Cities:  []string{"Delhi"},
				Breaker: BreakerConfig{ConsecutiveFailures: 5},
			},
			Database: DatabaseConfig{Client: "sqlc", Driver: "sqlite", Path: "weather.db"},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "no cities", mutate: func(c *Config) { c.Weather.Cities = nil }},
		{name: "bad base url", mutate: func(c *Config) { c.Weather.BaseURL = "not a url" }},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }},
		{name: "postgres without host", mutate: func(c *Config) { c.Database.Driver = "postgres" }},
		{name: "context path without slash", mutate: func(c *Config) { c.Server.ContextPath = "api" }},
		{name: "publish without queue", mutate: func(c *Config) { c.Alerts.PublishEnabled = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)
			assert.Error(t, config.Validate())
		})
	}
}
