package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned while the breaker guarding a client rejects calls
var ErrCircuitOpen = errors.New("circuit breaker open")

// StatusError is returned when the API answers with anything but 200 OK
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch returned status %d: %s", e.StatusCode, e.Body)
}

// ClientOption configures a GeocodingClient or ForecastClient
type ClientOption func(*requester)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(r *requester) {
		r.httpClient = httpClient
	}
}

// WithBaseURL points the client at a different endpoint
func WithBaseURL(baseURL string) ClientOption {
	return func(r *requester) {
		r.baseURL = baseURL
	}
}

// WithCircuitBreaker guards every call with the given breaker
func WithCircuitBreaker(cb *gobreaker.CircuitBreaker) ClientOption {
	return func(r *requester) {
		r.breaker = cb
	}
}

// NewCircuitBreaker builds a breaker that opens on the sixth consecutive failure.
// Caller cancellations and 4xx responses other than 429 do not count against the provider.
func NewCircuitBreaker(name string, maxRequests uint32, interval, timeout time.Duration, logger *slog.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:         name,
		MaxRequests:  maxRequests,
		Interval:     interval,
		Timeout:      timeout,
		IsSuccessful: isProviderHealthy,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
}

// isProviderHealthy reports whether err says nothing bad about the upstream
func isProviderHealthy(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 400 && statusErr.StatusCode < 500 &&
			statusErr.StatusCode != http.StatusTooManyRequests
	}
	return false
}

// requester holds the HTTP plumbing shared by both clients
type requester struct {
	httpClient *http.Client
	baseURL    string
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

func newRequester(baseURL string, logger *slog.Logger, opts []ClientOption) requester {
	r := requester{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// buildURL returns the base URL with the given query parameters applied
func (r *requester) buildURL(params url.Values) (*url.URL, error) {
	u, err := url.Parse(r.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	for key, values := range params {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	u.RawQuery = q.Encode()

	return u, nil
}

// getJSON issues a GET for u and decodes a 200 response into out
func (r *requester) getJSON(ctx context.Context, u *url.URL, out any) error {
	if r.breaker == nil {
		return r.fetch(ctx, u, out)
	}

	_, err := r.breaker.Execute(func() (interface{}, error) {
		return nil, r.fetch(ctx, u, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	return err
}

func (r *requester) fetch(ctx context.Context, u *url.URL, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		r.logger.Error("Open-Meteo API returned error",
			"status_code", resp.StatusCode,
			"url", u.String(),
			"response_body", string(body),
		)
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
