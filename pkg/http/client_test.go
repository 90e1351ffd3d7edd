package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mutex   sync.Mutex
	targets []string
	errors  []error
}

func (l *recordingLogger) LogRequest(_, target string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.targets = append(l.targets, target)
}

func (l *recordingLogger) LogResponseSuccess(_, target string, _ int, _ time.Duration) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.targets = append(l.targets, target)
}

func (l *recordingLogger) LogResponseError(_, target string, _ int, _ time.Duration, err error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.targets = append(l.targets, target)
	l.errors = append(l.errors, err)
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type failure struct {
	Message string `json:"message"`
}

func TestRequest_DecodesSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"delhi","count":2}`))
	}))
	defer server.Close()

	client := NewHttpClient(server.URL+"/", ClientOptions{})

	result := &payload{}
	success, errResp, status, err := client.Request().
		WithContext(context.Background()).
		WithMethod(GET).
		WithPath("items").
		WithQueryParam("page", "1").
		WithSuccessResp(result).
		WithErrorResp(&failure{}).
		Execute()
	require.NoError(t, err)
	assert.Nil(t, errResp)
	assert.Equal(t, http.StatusOK, status)
	assert.Same(t, result, success)
	assert.Equal(t, payload{Name: "delhi", Count: 2}, *result)
}

func TestRequest_ErrorStatusDecodesErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"city not found"}`))
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})

	success, errResp, status, err := client.Request().
		WithPath("/weather").
		WithSuccessResp(&payload{}).
		WithErrorResp(&failure{}).
		Execute()
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Nil(t, success)
	assert.Equal(t, &failure{Message: "city not found"}, errResp)
}

func TestRequest_UndecodableBodyFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})

	_, _, _, err := client.Request().WithSuccessResp(&payload{}).Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestRequest_LogsRedactedTarget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("appid"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	logger := &recordingLogger{}
	client := NewHttpClient(server.URL, ClientOptions{Logger: logger, RedactedQueryParams: []string{"appid"}})

	_, _, _, err := client.Request().
		WithPath("/weather").
		WithQueryParam("q", "Delhi").
		WithQueryParam("appid", "secret").
		Execute()
	require.NoError(t, err)

	require.Len(t, logger.targets, 2)
	for _, target := range logger.targets {
		assert.NotContains(t, target, "secret")
		assert.Contains(t, target, "q=Delhi")
	}
}

func TestRequest_TransportErrorIsRedacted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	logger := &recordingLogger{}
	client := NewHttpClient(baseURL, ClientOptions{Logger: logger, RedactedQueryParams: []string{"appid"}})

	_, _, status, err := client.Request().
		WithQueryParam("appid", "secret").
		Execute()
	require.Error(t, err)
	assert.Equal(t, 0, status)
	assert.NotContains(t, err.Error(), "secret")
	require.Len(t, logger.errors, 1)
}

func TestRedact(t *testing.T) {
	client := NewHttpClient("http://localhost", ClientOptions{RedactedQueryParams: []string{"appid", "token"}})

	target, err := url.Parse("http://localhost/data?appid=abc&q=Delhi&token=xyz")
	require.NoError(t, err)

	redacted := client.Redact(target)
	assert.NotContains(t, redacted, "abc")
	assert.NotContains(t, redacted, "xyz")
	assert.Contains(t, redacted, "q=Delhi")
	assert.Equal(t, "abc", target.Query().Get("appid"))

	assert.Equal(t, "", client.Redact(nil))
}

func TestExecute_RequiresClient(t *testing.T) {
	_, _, _, err := NewHttpClientRequest(nil).Execute()
	assert.Error(t, err)
}
