package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"undisorder/internal/config"
	"undisorder/internal/hashdb"
	"undisorder/internal/logging"
)

type commandContext struct {
	configFlag *string
	verbose    *bool
	quiet      *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag *string, verbose, quiet *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		verbose:    verbose,
		quiet:      quiet,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// levelOverride maps --verbose and --quiet onto a log level, "" for the
// configured one.
func (c *commandContext) levelOverride() string {
	switch {
	case c.verbose != nil && *c.verbose:
		return "debug"
	case c.quiet != nil && *c.quiet:
		return "warn"
	default:
		return ""
	}
}

func (c *commandContext) logger(cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.NewFromConfig(cfg, c.levelOverride())
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}
	return logger, nil
}

// lockIndex takes the advisory lock beside the index database. The returned
// function releases it.
func lockIndex(cfg *config.Config) (func(), error) {
	lockPath := cfg.Paths.IndexPath + ".lock"
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock index %s: %w", lockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("index is in use by another undisorder run (lock %s)", lockPath)
	}
	return func() { _ = lock.Unlock() }, nil
}

// indexSet holds one store per target collection, all in the same database.
type indexSet struct {
	images *hashdb.Store
	videos *hashdb.Store
	audio  *hashdb.Store
}

func openIndexes(ctx context.Context, cfg *config.Config) (*indexSet, error) {
	set := &indexSet{}
	var err error
	if set.images, err = hashdb.Open(ctx, cfg.Paths.IndexPath, cfg.Paths.ImagesTarget); err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	if set.videos, err = hashdb.Open(ctx, cfg.Paths.IndexPath, cfg.Paths.VideoTarget); err != nil {
		set.Close()
		return nil, fmt.Errorf("open index: %w", err)
	}
	if set.audio, err = hashdb.Open(ctx, cfg.Paths.IndexPath, cfg.Paths.AudioTarget); err != nil {
		set.Close()
		return nil, fmt.Errorf("open index: %w", err)
	}
	return set, nil
}

func (s *indexSet) Close() {
	for _, store := range []*hashdb.Store{s.images, s.videos, s.audio} {
		_ = store.Close()
	}
}

func openTargetIndex(ctx context.Context, cfg *config.Config, target string) (*hashdb.Store, string, error) {
	expanded, err := config.ExpandPath(strings.TrimSpace(target))
	if err != nil {
		return nil, "", fmt.Errorf("resolve target: %w", err)
	}
	if expanded == "" {
		return nil, "", errors.New("target directory is required")
	}
	store, err := hashdb.Open(ctx, cfg.Paths.IndexPath, expanded)
	if err != nil {
		return nil, "", fmt.Errorf("open index: %w", err)
	}
	return store, expanded, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
