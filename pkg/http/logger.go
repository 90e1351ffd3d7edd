package http

import (
	"time"

	"weather-api/pkg/log"
)

// HTTPLogger receives the lifecycle of every request sent by Client.
// target is the request URL with redacted query parameters already masked.
type HTTPLogger interface {
	// LogRequest is called right before the request is sent
	LogRequest(method, target string)

	// LogResponseSuccess is called after a 2xx response
	LogResponseSuccess(method, target string, httpStatus int, latency time.Duration)

	// LogResponseError is called after a transport failure or a non 2xx response
	LogResponseError(method, target string, httpStatus int, latency time.Duration, err error)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) LogRequest(string, string)                                  {}
func (NopLogger) LogResponseSuccess(string, string, int, time.Duration)      {}
func (NopLogger) LogResponseError(string, string, int, time.Duration, error) {}

// ZapLogger writes request logs through pkg/log
type ZapLogger struct{}

func NewZapLogger() *ZapLogger {
	return &ZapLogger{}
}

func (l *ZapLogger) LogRequest(method, target string) {
	log.Debugw("http request", "method", method, "url", target)
}

func (l *ZapLogger) LogResponseSuccess(method, target string, httpStatus int, latency time.Duration) {
	log.Debugw("http response", "method", method, "url", target, "status", httpStatus, "latency", latency.String())
}

func (l *ZapLogger) LogResponseError(method, target string, httpStatus int, latency time.Duration, err error) {
	log.Warnw("http response error", "method", method, "url", target, "status", httpStatus, "latency", latency.String(), "error", err)
}
