package geocoder

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"undisorder/internal/config"
	"undisorder/internal/logging"
	"undisorder/internal/services/nominatim"
)

// minRequestInterval honours the Nominatim usage policy of one request per second.
const minRequestInterval = time.Second

// ReverseLookup resolves coordinates to a place name.
type ReverseLookup interface {
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}

// Geocoder answers Reverse from its cache or the configured lookup. A nil
// lookup disables geocoding and every call returns "".
type Geocoder struct {
	lookup   ReverseLookup
	logger   *slog.Logger
	interval time.Duration

	mu          sync.Mutex
	cache       map[string]string
	lastRequest time.Time
}

// Option customizes the geocoder.
type Option func(*Geocoder)

// WithLookup replaces the Nominatim client.
func WithLookup(lookup ReverseLookup) Option {
	return func(g *Geocoder) {
		g.lookup = lookup
	}
}

// WithRequestInterval overrides the minimum delay between remote lookups.
func WithRequestInterval(interval time.Duration) Option {
	return func(g *Geocoder) {
		g.interval = interval
	}
}

// New builds a geocoder for the configured mode. "offline" has no bundled
// place database and behaves like "off".
func New(cfg config.Geocoding, logger *slog.Logger, opts ...Option) *Geocoder {
	g := &Geocoder{
		logger:   logging.NewComponentLogger(logger, "geocoder"),
		interval: minRequestInterval,
		cache:    make(map[string]string),
	}
	switch cfg.Mode {
	case config.GeocodingOnline:
		g.lookup = nominatim.NewClient(nominatim.Config{
			BaseURL:        cfg.BaseURL,
			UserAgent:      cfg.UserAgent,
			TimeoutSeconds: cfg.TimeoutSeconds,
		})
	case config.GeocodingOffline:
		logging.WarnWithContext(g.logger, "offline geocoding unavailable", "geocoding_offline_unsupported",
			logging.String(logging.FieldImpact, "photo directories are named without place names"),
			logging.String(logging.FieldErrorHint, "set geocoding.mode to online or off"),
		)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Enabled reports whether lookups are performed.
func (g *Geocoder) Enabled() bool {
	return g != nil && g.lookup != nil
}

// Reverse returns the place name for the coordinates, or "" when unknown or
// when the lookup fails. Failed lookups are not cached.
func (g *Geocoder) Reverse(ctx context.Context, lat, lon float64) string {
	if !g.Enabled() {
		return ""
	}
	key := cacheKey(lat, lon)

	g.mu.Lock()
	defer g.mu.Unlock()
	if place, ok := g.cache[key]; ok {
		return place
	}
	if err := g.waitTurn(ctx); err != nil {
		return ""
	}
	place, err := g.lookup.Reverse(ctx, lat, lon)
	g.lastRequest = time.Now()
	if err != nil {
		logging.WarnWithContext(g.logger, "reverse geocoding failed", "geocoding_failed",
			logging.Error(err),
			logging.String("coordinates", key),
			logging.String(logging.FieldImpact, "directory named without place"),
			logging.String(logging.FieldErrorHint, "check network access to the geocoding service"),
		)
		return ""
	}
	g.cache[key] = place
	g.logger.Debug("reverse geocoded", logging.String("coordinates", key), logging.String("place", place))
	return place
}

func (g *Geocoder) waitTurn(ctx context.Context) error {
	if g.lastRequest.IsZero() || g.interval <= 0 {
		return nil
	}
	wait := g.interval - time.Since(g.lastRequest)
	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cacheKey rounds to four decimals (about 11 m).
func cacheKey(lat, lon float64) string {
	round := func(v float64) float64 { return math.Round(v*1e4) / 1e4 }
	return fmt.Sprintf("%.4f,%.4f", round(lat), round(lon))
}
