// Package pokeapi is a small client for the public PokeAPI v2 REST service.
// Every call goes through a RetryPolicy; a 404 is reported as "not found"
// (nil result, nil error) and never retried
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/meur/pokedex/internal/config"
	"github.com/meur/pokedex/internal/logging"
	"github.com/meur/pokedex/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// StatusError is returned for any non-2xx response other than 404
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error %d from %s", e.StatusCode, e.URL)
}

var errNotFound = errors.New("not found")

// Client fetches catalog resources
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	retry      RetryPolicy
	logger     *zap.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryPolicy replaces DefaultRetryPolicy
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

// WithLogger sets the logger used for per-attempt warnings
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = logging.OrNop(l) }
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a client rooted at baseURL, e.g. https://pokeapi.co/api/v2
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  "pokedex/1.0",
		retry:      DefaultRetryPolicy(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromConfig wires timeout, retry and optional otel instrumentation
func NewClientFromConfig(cfg config.APIConfig, telemetry bool, logger *zap.Logger) *Client {
	var transport http.RoundTripper = http.DefaultTransport
	if telemetry {
		transport = otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Host)
			}),
		)
	}

	policy := DefaultRetryPolicy()
	policy.MaxAttempts = cfg.RetryAttempts
	policy.InitialDelay = cfg.RetryDelay

	return NewClient(cfg.BaseURL,
		WithHTTPClient(&http.Client{Timeout: cfg.Timeout, Transport: transport}),
		WithRetryPolicy(policy),
		WithUserAgent(cfg.UserAgent),
		WithLogger(logger),
	)
}

// BaseURL returns the API root without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreatureURL builds the detail URL for an identifier
func (c *Client) CreatureURL(id int) string {
	return fmt.Sprintf("%s/pokemon/%d", c.baseURL, id)
}

// Fetch GETs url and decodes the JSON body into out. found is false, with a
// nil error, when the resource does not exist
func (c *Client) Fetch(ctx context.Context, url string, out any) (found bool, err error) {
	found = true
	err = c.retry.Do(ctx, func(ctx context.Context, attempt int) error {
		err := c.fetchOnce(ctx, url, out)
		if errors.Is(err, errNotFound) {
			found = false
			return nil
		}
		if err != nil {
			c.logger.Warn("Fetch failed",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", c.retry.MaxAttempts),
				zap.Error(err))
		}
		return err
	})
	if err != nil {
		return false, fmt.Errorf("fetch %s: %w", url, err)
	}
	return found, nil
}

func (c *Client) fetchOnce(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// ListCreatures fetches the first limit entries of the creature list
func (c *Client) ListCreatures(ctx context.Context, limit int) (*models.ResourceList, error) {
	var list models.ResourceList
	found, err := c.Fetch(ctx, fmt.Sprintf("%s/pokemon?limit=%d", c.baseURL, limit), &list)
	if err != nil || !found {
		return nil, err
	}
	return &list, nil
}

// Creature fetches a detail payload by URL
func (c *Client) Creature(ctx context.Context, url string) (*models.Creature, error) {
	var creature models.Creature
	found, err := c.Fetch(ctx, url, &creature)
	if err != nil || !found {
		return nil, err
	}
	return &creature, nil
}

// CreatureByID fetches a detail payload by identifier
func (c *Client) CreatureByID(ctx context.Context, id int) (*models.Creature, error) {
	return c.Creature(ctx, c.CreatureURL(id))
}

// Species fetches species metadata by URL
func (c *Client) Species(ctx context.Context, url string) (*models.Species, error) {
	var species models.Species
	found, err := c.Fetch(ctx, url, &species)
	if err != nil || !found {
		return nil, err
	}
	return &species, nil
}
