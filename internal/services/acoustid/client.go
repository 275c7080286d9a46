package acoustid

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"undisorder/internal/services"
)

const (
	defaultLookupURL   = "https://api.acoustid.org/v2/lookup"
	defaultFpcalc      = "fpcalc"
	defaultHTTPTimeout = 15 * time.Second
)

var commandContext = exec.CommandContext

// Config captures the runtime settings for fingerprinting and lookups.
type Config struct {
	APIKey         string
	LookupURL      string
	Fpcalc         string
	TimeoutSeconds int
}

// Fingerprint is the chromaprint output for one file.
type Fingerprint struct {
	Duration    float64 `json:"duration"`
	Fingerprint string  `json:"fingerprint"`
}

// Client computes fingerprints with fpcalc and resolves them through the
// AcoustID web service.
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

// NewClient constructs an AcoustID client.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:    strings.TrimSpace(cfg.APIKey),
			LookupURL: strings.TrimSpace(cfg.LookupURL),
			Fpcalc:    strings.TrimSpace(cfg.Fpcalc),
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.LookupURL == "" {
		client.cfg.LookupURL = defaultLookupURL
	}
	if client.cfg.Fpcalc == "" {
		client.cfg.Fpcalc = defaultFpcalc
	}
	return client
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.cfg.APIKey != ""
}

// Fingerprint runs fpcalc locally; no network access is involved.
func (c *Client) Fingerprint(ctx context.Context, path string) (Fingerprint, error) {
	var stdout, stderr bytes.Buffer
	cmd := commandContext(ctx, c.cfg.Fpcalc, "-json", path) //nolint:gosec
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		return Fingerprint{}, services.Wrap(services.ErrExternalTool, "acoustid", "fpcalc", detail, err)
	}
	var fp Fingerprint
	if err := json.Unmarshal(stdout.Bytes(), &fp); err != nil {
		return Fingerprint{}, services.Wrap(services.ErrExternalTool, "acoustid", "fpcalc", "invalid json output", err)
	}
	if fp.Fingerprint == "" {
		return Fingerprint{}, services.Wrap(services.ErrExternalTool, "acoustid", "fpcalc", "empty fingerprint", nil)
	}
	return fp, nil
}

type lookupResponse struct {
	Status  string `json:"status"`
	Results []struct {
		ID         string  `json:"id"`
		Score      float64 `json:"score"`
		Recordings []struct {
			ID string `json:"id"`
		} `json:"recordings"`
	} `json:"results"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Lookup returns the MusicBrainz recording ID of the best match, or an empty
// string when AcoustID knows no recording for the fingerprint.
func (c *Client) Lookup(ctx context.Context, fp Fingerprint) (string, error) {
	if !c.Enabled() {
		return "", services.Wrap(services.ErrConfiguration, "acoustid", "lookup", "api key missing", nil)
	}
	form := url.Values{}
	form.Set("client", c.cfg.APIKey)
	form.Set("format", "json")
	form.Set("meta", "recordings")
	form.Set("duration", strconv.Itoa(int(fp.Duration)))
	form.Set("fingerprint", fp.Fingerprint)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.LookupURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build acoustid request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", services.Wrap(services.ErrTimeout, "acoustid", "lookup", "request timed out", err)
		}
		return "", services.Wrap(services.ErrTransient, "acoustid", "lookup", "request failed", err)
	}
	defer resp.Body.Close()

	var payload lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "acoustid", "decode", fmt.Sprintf("http %d", resp.StatusCode), err)
	}
	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return "", services.Wrap(services.ErrTransient, "acoustid", "lookup", fmt.Sprintf("http %d", resp.StatusCode), nil)
	}
	if payload.Status != "ok" {
		message := "status " + payload.Status
		if payload.Error != nil {
			message = payload.Error.Message
		}
		return "", services.Wrap(services.ErrValidation, "acoustid", "lookup", message, nil)
	}
	for _, result := range payload.Results {
		for _, recording := range result.Recordings {
			if recording.ID != "" {
				return recording.ID, nil
			}
		}
	}
	return "", nil
}
