package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a small JSON HTTP client bound to a base URL.
type Client struct {
	baseURL  string
	client   *http.Client
	redacted map[string]struct{}
	logger   HTTPLogger
}

// ClientOptions represents the configuration options for the HTTP client.
type ClientOptions struct {
	FollowRedirect      bool
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	ConnectionTimeout   time.Duration
	ReadTimeout         time.Duration
	// RedactedQueryParams are masked in logs and transport errors
	RedactedQueryParams []string
	Logger              HTTPLogger
	Transport           http.RoundTripper
}

// StatusError is returned when the server answers with a non 2xx status.
// The decoded error body, if any, is returned alongside it.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http error: status %d", e.StatusCode)
}

// NewHttpClient creates a new HTTP client with the given base URL and configuration options.
func NewHttpClient(baseURL string, opts ClientOptions) *Client {
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 100
	}
	if opts.MaxIdleConnsPerHost == 0 {
		opts.MaxIdleConnsPerHost = 10
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	if opts.ConnectionTimeout == 0 {
		opts.ConnectionTimeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = NopLogger{}
	}

	transport := opts.Transport
	if transport == nil {
		transport = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        opts.MaxIdleConns,
			MaxIdleConnsPerHost: opts.MaxIdleConnsPerHost,
			IdleConnTimeout:     opts.IdleConnTimeout,
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		}
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   opts.ReadTimeout,
	}

	if !opts.FollowRedirect {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	redacted := make(map[string]struct{}, len(opts.RedactedQueryParams))
	for _, param := range opts.RedactedQueryParams {
		redacted[param] = struct{}{}
	}

	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   client,
		redacted: redacted,
		logger:   opts.Logger,
	}
}

// Request creates a new Request builder for the client.
func (hc *Client) Request() *Request {
	return NewHttpClientRequest(hc)
}

// doRequest sends the request and decodes the body into successResp on 2xx or into errorResp otherwise.
func (hc *Client) doRequest(ctx context.Context, method, path string, query url.Values, successResp any, errorResp any) (any, any, int, error) {
	target := hc.buildURL(path)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, nil, 0, err
	}
	req.Header.Set("Accept", "application/json")

	logURL := hc.Redact(req.URL)
	hc.logger.LogRequest(method, logURL)
	start := time.Now()

	resp, err := hc.client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = logURL
		}
		hc.logger.LogResponseError(method, logURL, 0, time.Since(start), err)
		return nil, nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		hc.logger.LogResponseError(method, logURL, resp.StatusCode, time.Since(start), err)
		return nil, nil, resp.StatusCode, err
	}
	latency := time.Since(start)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		hc.logger.LogResponseSuccess(method, logURL, resp.StatusCode, latency)
		if successResp != nil {
			if err := json.Unmarshal(bodyBytes, successResp); err != nil {
				return nil, nil, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
			}
		}
		return successResp, nil, resp.StatusCode, nil
	}

	statusErr := &StatusError{StatusCode: resp.StatusCode}
	hc.logger.LogResponseError(method, logURL, resp.StatusCode, latency, statusErr)

	if errorResp != nil {
		if err := json.Unmarshal(bodyBytes, errorResp); err != nil {
			return nil, nil, resp.StatusCode, fmt.Errorf("failed to decode error response: %w", err)
		}
	}

	return nil, errorResp, resp.StatusCode, statusErr
}

func (hc *Client) buildURL(path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return hc.baseURL + path
}

// Redact returns target as a string with the redacted query values replaced by "***"
func (hc *Client) Redact(target *url.URL) string {
	if target == nil {
		return ""
	}
	if len(hc.redacted) == 0 || target.RawQuery == "" {
		return target.String()
	}

	query := target.Query()
	for key := range query {
		if _, ok := hc.redacted[key]; ok {
			query.Set(key, "***")
		}
	}

	masked := *target
	masked.RawQuery = query.Encode()
	return masked.String()
}
