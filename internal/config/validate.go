package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateImport(); err != nil {
		return err
	}
	if err := c.validateFilter(); err != nil {
		return err
	}
	if err := c.validateGeocoding(); err != nil {
		return err
	}
	if err := c.validateIdentify(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.ImagesTarget == "" {
		return errors.New("paths.images_target must be set")
	}
	if c.Paths.VideoTarget == "" {
		return errors.New("paths.video_target must be set")
	}
	if c.Paths.AudioTarget == "" {
		return errors.New("paths.audio_target must be set")
	}
	if c.Paths.IndexPath == "" {
		return errors.New("paths.index_path must be set")
	}
	return nil
}

func (c *Config) validateImport() error {
	if c.Import.PhotoBatchSize <= 0 || c.Import.PhotoBatchSize > maxBatchSize {
		return fmt.Errorf("import.photo_batch_size must be between 1 and %d", maxBatchSize)
	}
	if c.Import.AudioBatchSize <= 0 || c.Import.AudioBatchSize > maxBatchSize {
		return fmt.Errorf("import.audio_batch_size must be between 1 and %d", maxBatchSize)
	}
	return nil
}

func (c *Config) validateFilter() error {
	for _, pattern := range append(append([]string{}, c.Filter.Exclude...), c.Filter.ExcludeDir...) {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("filter pattern %q: %w", pattern, err)
		}
	}
	return nil
}

func (c *Config) validateGeocoding() error {
	switch c.Geocoding.Mode {
	case GeocodingOff, GeocodingOffline, GeocodingOnline:
	default:
		return fmt.Errorf("geocoding.mode must be one of off, offline, online (got %q)", c.Geocoding.Mode)
	}
	if c.Geocoding.TimeoutSeconds < 0 {
		return errors.New("geocoding.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateIdentify() error {
	if c.Identify.TimeoutSeconds < 0 {
		return errors.New("identify.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeoutSeconds < 0 {
		return errors.New("notifications.request_timeout_seconds must be positive")
	}
	topic := c.Notifications.NtfyTopic
	if topic != "" && !strings.HasPrefix(topic, "http://") && !strings.HasPrefix(topic, "https://") {
		return fmt.Errorf("notifications.ntfy_topic must be an http(s) URL (got %q)", topic)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}
