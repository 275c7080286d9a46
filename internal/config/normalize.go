package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeImport()
	c.normalizeFilter()
	c.normalizeGeocoding()
	c.normalizeIdentify()
	c.normalizeNotifications()
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.ImagesTarget, err = expandPath(c.Paths.ImagesTarget); err != nil {
		return fmt.Errorf("paths.images_target: %w", err)
	}
	if c.Paths.VideoTarget, err = expandPath(c.Paths.VideoTarget); err != nil {
		return fmt.Errorf("paths.video_target: %w", err)
	}
	if c.Paths.AudioTarget, err = expandPath(c.Paths.AudioTarget); err != nil {
		return fmt.Errorf("paths.audio_target: %w", err)
	}

	configDir, err := Dir()
	if err != nil {
		return fmt.Errorf("config dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.IndexPath) == "" {
		c.Paths.IndexPath = filepath.Join(configDir, defaultIndexName)
	}
	if c.Paths.IndexPath, err = expandPath(c.Paths.IndexPath); err != nil {
		return fmt.Errorf("paths.index_path: %w", err)
	}
	if strings.TrimSpace(c.Paths.FailureLog) == "" {
		c.Paths.FailureLog = filepath.Join(configDir, defaultFailureLogName)
	}
	if c.Paths.FailureLog, err = expandPath(c.Paths.FailureLog); err != nil {
		return fmt.Errorf("paths.failure_log: %w", err)
	}
	return nil
}

func (c *Config) normalizeImport() {
	if c.Import.PhotoBatchSize == 0 {
		c.Import.PhotoBatchSize = DefaultPhotoBatchSize
	}
	if c.Import.AudioBatchSize == 0 {
		c.Import.AudioBatchSize = DefaultAudioBatchSize
	}
}

func (c *Config) normalizeFilter() {
	c.Filter.Exclude = trimPatterns(c.Filter.Exclude)
	c.Filter.ExcludeDir = trimPatterns(c.Filter.ExcludeDir)
}

func (c *Config) normalizeGeocoding() {
	c.Geocoding.Mode = strings.ToLower(strings.TrimSpace(c.Geocoding.Mode))
	if c.Geocoding.Mode == "" {
		c.Geocoding.Mode = defaultGeocodingMode
	}
	c.Geocoding.BaseURL = strings.TrimRight(strings.TrimSpace(c.Geocoding.BaseURL), "/")
	if c.Geocoding.BaseURL == "" {
		c.Geocoding.BaseURL = defaultNominatimURL
	}
	if strings.TrimSpace(c.Geocoding.UserAgent) == "" {
		c.Geocoding.UserAgent = defaultUserAgent
	}
	if c.Geocoding.TimeoutSeconds == 0 {
		c.Geocoding.TimeoutSeconds = defaultGeocodingTimeout
	}
}

func (c *Config) normalizeIdentify() {
	if c.Identify.AcoustIDAPIKey == "" {
		if value, ok := os.LookupEnv(acoustIDEnvKey); ok {
			c.Identify.AcoustIDAPIKey = strings.TrimSpace(value)
		}
	}
	c.Identify.AcoustIDURL = strings.TrimSpace(c.Identify.AcoustIDURL)
	if c.Identify.AcoustIDURL == "" {
		c.Identify.AcoustIDURL = defaultAcoustIDURL
	}
	c.Identify.MusicBrainzURL = strings.TrimRight(strings.TrimSpace(c.Identify.MusicBrainzURL), "/")
	if c.Identify.MusicBrainzURL == "" {
		c.Identify.MusicBrainzURL = defaultMusicBrainzURL
	}
	if strings.TrimSpace(c.Identify.UserAgent) == "" {
		c.Identify.UserAgent = defaultUserAgent
	}
	if strings.TrimSpace(c.Identify.Fpcalc) == "" {
		c.Identify.Fpcalc = defaultFpcalc
	}
	if c.Identify.TimeoutSeconds == 0 {
		c.Identify.TimeoutSeconds = defaultIdentifyTimeout
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeoutSeconds == 0 {
		c.Notifications.RequestTimeoutSeconds = defaultNotifyTimeout
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

func trimPatterns(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

// MergeFilters appends command-line patterns to the configured lists.
func (c *Config) MergeFilters(exclude, excludeDir []string) {
	c.Filter.Exclude = trimPatterns(append(append([]string{}, c.Filter.Exclude...), exclude...))
	c.Filter.ExcludeDir = trimPatterns(append(append([]string{}, c.Filter.ExcludeDir...), excludeDir...))
}
