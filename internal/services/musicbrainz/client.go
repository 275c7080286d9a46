package musicbrainz

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
	defaultBaseURL     = "https://musicbrainz.org/ws/2"
	defaultHTTPTimeout = 15 * time.Second
	defaultUserAgent   = "undisorder/0.1.0"
)

// Config captures the runtime settings for the MusicBrainz web service.
type Config struct {
	BaseURL        string
	UserAgent      string
	TimeoutSeconds int
}

// Recording is the subset of a MusicBrainz recording used for naming.
type Recording struct {
	ID          string
	Title       string
	Artist      string
	Album       string
	Year        int
	TrackNumber int
	DiscNumber  int
}

// Client looks up recordings by MusicBrainz ID.
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

// NewClient constructs a MusicBrainz client.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			BaseURL:   strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			UserAgent: strings.TrimSpace(cfg.UserAgent),
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
	return client
}

type recordingResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ArtistCredit []struct {
		Name   string `json:"name"`
		Artist struct {
			Name string `json:"name"`
		} `json:"artist"`
	} `json:"artist-credit"`
	Releases []struct {
		Title string `json:"title"`
		Date  string `json:"date"`
		Media []struct {
			Position int `json:"position"`
			Tracks   []struct {
				Position int    `json:"position"`
				Number   string `json:"number"`
			} `json:"tracks"`
		} `json:"media"`
	} `json:"releases"`
}

// Recording fetches a recording with its artists and first release.
func (c *Client) Recording(ctx context.Context, id string) (*Recording, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, services.Wrap(services.ErrValidation, "musicbrainz", "recording", "empty recording id", nil)
	}
	params := url.Values{}
	params.Set("inc", "artists releases media")
	params.Set("fmt", "json")
	endpoint := fmt.Sprintf("%s/recording/%s?%s", c.cfg.BaseURL, url.PathEscape(id), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build musicbrainz request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, services.Wrap(services.ErrTimeout, "musicbrainz", "recording", "request timed out", err)
		}
		return nil, services.Wrap(services.ErrTransient, "musicbrainz", "recording", "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, services.Wrap(services.ErrNotFound, "musicbrainz", "recording", id, nil)
	case resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusTooManyRequests:
		return nil, services.Wrap(services.ErrTransient, "musicbrainz", "recording", "rate limited", nil)
	case resp.StatusCode >= http.StatusMultipleChoices:
		return nil, services.Wrap(services.ErrExternalTool, "musicbrainz", "recording", fmt.Sprintf("http %d", resp.StatusCode), nil)
	}

	var payload recordingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "musicbrainz", "decode", "invalid response body", err)
	}
	return payload.toRecording(), nil
}

func (r recordingResponse) toRecording() *Recording {
	rec := &Recording{ID: r.ID, Title: strings.TrimSpace(r.Title)}
	if len(r.ArtistCredit) > 0 {
		rec.Artist = strings.TrimSpace(r.ArtistCredit[0].Artist.Name)
		if rec.Artist == "" {
			rec.Artist = strings.TrimSpace(r.ArtistCredit[0].Name)
		}
	}
	if len(r.Releases) == 0 {
		return rec
	}
	release := r.Releases[0]
	rec.Album = strings.TrimSpace(release.Title)
	if len(release.Date) >= 4 {
		if year, err := strconv.Atoi(release.Date[:4]); err == nil {
			rec.Year = year
		}
	}
	if len(release.Media) > 0 {
		medium := release.Media[0]
		rec.DiscNumber = medium.Position
		if len(medium.Tracks) > 0 {
			track := medium.Tracks[0]
			rec.TrackNumber = track.Position
			if rec.TrackNumber == 0 {
				if n, err := strconv.Atoi(track.Number); err == nil {
					rec.TrackNumber = n
				}
			}
		}
	}
	return rec
}
