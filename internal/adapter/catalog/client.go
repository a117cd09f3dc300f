package catalog

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

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/retry"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultBaseURL = "https://dummyjson.com"

	maxBodySize    = 8 << 20
	defaultTimeout = 10 * time.Second
)

var (
	ErrNotFound = fmt.Errorf("catalog: %w", domain.ErrProductNotFound)
	ErrBadURL   = errors.New("invalid catalog base url")
)

var _ port.ProductsFetcher = (*Client)(nil)

type statusError struct {
	code int
}

func (e statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

// Config configures [Client]. Zero values fall back to defaults.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
}

type ClientOpt func(*Client)

// HTTPClientOpt replaces the instrumented default http client.
func HTTPClientOpt(hc *http.Client) ClientOpt {
	return func(c *Client) {
		c.hc = hc
	}
}

// BackoffOpt replaces the delay between retried requests.
func BackoffOpt(b retry.Backoff) ClientOpt {
	return func(c *Client) {
		c.retryCfg.Backoff = b
	}
}

// A Client reads products from a dummyjson compatible catalog API.
//
// Transient failures are retried. Requests pass through a circuit breaker
// that opens after consecutive failures; not found answers do not count.
type Client struct {
	baseURL  string
	hc       *http.Client
	cb       *gobreaker.CircuitBreaker[[]byte]
	retryCfg retry.RetryConfig
}

func NewClient(c Config, opts ...ClientOpt) (Client, error) {
	const op = "catalog.NewClient"

	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Client{}, fmt.Errorf("%s: %w: %q", op, ErrBadURL, base)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	cl := Client{
		baseURL: u.String(),
		hc: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		retryCfg: retry.RetryConfig{
			MaxAttempts: c.MaxAttempts,
			Backoff:     retry.ExponentialBackoff(100 * time.Millisecond),
			ShouldRetry: transient,
		},
	}

	cl.cb = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "catalog",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn(
				"circuit breaker state changed",
				"name", name, "from", from.String(), "to", to.String(),
			)
		},
	})

	for _, opt := range opts {
		opt(&cl)
	}
	return cl, nil
}

func (c Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Client.FetchProducts"

	data, err := c.get(ctx, "products")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var res productsResponse
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps := make([]domain.Product, 0, len(res.Products))
	for _, p := range res.Products {
		ps = append(ps, p.toDomain())
	}
	return ps, nil
}

func (c Client) FetchProduct(
	ctx context.Context, id domain.ProductID,
) (domain.Product, error) {
	const op = "Client.FetchProduct"

	if id.IsZero() {
		return domain.Product{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	data, err := c.get(ctx, "products", id.String())
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	var p product
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	if p.ID.IsZero() {
		return domain.Product{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return p.toDomain(), nil
}

func (c Client) get(ctx context.Context, elem ...string) ([]byte, error) {
	endpoint, err := url.JoinPath(c.baseURL, elem...)
	if err != nil {
		return nil, err
	}

	return retry.DoWithResult(ctx, c.retryCfg, func() ([]byte, error) {
		return c.cb.Execute(func() ([]byte, error) {
			return c.do(ctx, endpoint)
		})
	})
}

func (c Client) do(ctx context.Context, endpoint string) ([]byte, error) {
	const op = "Client.do"
	log := slog.With("op", op, "url", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			log.Warn("failed to close response body", "err", err)
		}
	}()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case res.StatusCode < 200 || res.StatusCode > 299:
		return nil, statusError{res.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return nil, err
	}
	log.Debug("fetched", "bytes", len(data))
	return data, nil
}

// transient reports whether a failed request may succeed when repeated.
func transient(err error) bool {
	if errors.Is(err, ErrNotFound) ||
		errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var se statusError
	if errors.As(err, &se) {
		return se.code >= http.StatusInternalServerError ||
			se.code == http.StatusTooManyRequests
	}
	return true
}
