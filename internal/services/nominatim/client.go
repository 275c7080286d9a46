package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"undisorder/internal/services"
)

const (
	defaultBaseURL     = "https://nominatim.openstreetmap.org"
	defaultHTTPTimeout = 10 * time.Second
	defaultUserAgent   = "undisorder"
	defaultZoom        = 10
)

// Config captures the runtime settings required to talk to Nominatim.
type Config struct {
	BaseURL        string
	UserAgent      string
	Language       string
	TimeoutSeconds int
}

// Client performs reverse geocoding lookups against a Nominatim instance.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a Nominatim client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			BaseURL:   strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			UserAgent: strings.TrimSpace(cfg.UserAgent),
			Language:  strings.TrimSpace(cfg.Language),
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	if client.cfg.UserAgent == "" {
		client.cfg.UserAgent = defaultUserAgent
	}
	if client.cfg.Language == "" {
		client.cfg.Language = "en"
	}
	return client
}

type reverseResponse struct {
	Error   string            `json:"error"`
	Address map[string]string `json:"address"`
}

// placeKeys are consulted in order; country is the last resort.
var placeKeys = []string{"city", "town", "village", "municipality", "country"}

// Reverse resolves coordinates to a place name (city, town, village or
// municipality, falling back to the country). An empty string with a nil
// error means Nominatim knows no place at that location.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("zoom", strconv.Itoa(defaultZoom))
	params.Set("addressdetails", "1")
	params.Set("accept-language", c.cfg.Language)

	endpoint := c.cfg.BaseURL + "/reverse?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build nominatim request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", services.Wrap(services.ErrTimeout, "nominatim", "reverse", "request timed out", err)
		}
		return "", services.Wrap(services.ErrTransient, "nominatim", "reverse", "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return "", services.Wrap(services.ErrTransient, "nominatim", "reverse", fmt.Sprintf("http %d", resp.StatusCode), nil)
	case resp.StatusCode >= http.StatusMultipleChoices:
		return "", services.Wrap(services.ErrExternalTool, "nominatim", "reverse", fmt.Sprintf("http %d", resp.StatusCode), nil)
	}

	var payload reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "nominatim", "decode", "invalid response body", err)
	}
	if payload.Error != "" {
		return "", nil
	}
	for _, key := range placeKeys {
		if value := strings.TrimSpace(payload.Address[key]); value != "" {
			return value, nil
		}
	}
	return "", nil
}
