package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains target collections and state file locations.
type Paths struct {
	ImagesTarget string `toml:"images_target"`
	VideoTarget  string `toml:"video_target"`
	AudioTarget  string `toml:"audio_target"`
	IndexPath    string `toml:"index_path"`
	FailureLog   string `toml:"failure_log"`
}

// Import contains defaults for the import command.
type Import struct {
	DryRun         bool `toml:"dry_run"`
	Move           bool `toml:"move"`
	Update         bool `toml:"update"`
	Interactive    bool `toml:"interactive"`
	Select         bool `toml:"select"`
	PhotoBatchSize int  `toml:"photo_batch_size"`
	AudioBatchSize int  `toml:"audio_batch_size"`
}

// Filter contains case-insensitive glob patterns applied while scanning.
type Filter struct {
	Exclude    []string `toml:"exclude"`
	ExcludeDir []string `toml:"exclude_dir"`
}

// Geocoding contains reverse geocoding settings for photo naming.
type Geocoding struct {
	Mode           string `toml:"mode"`
	BaseURL        string `toml:"base_url"`
	UserAgent      string `toml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Identify contains acoustic fingerprint identification settings.
type Identify struct {
	Enabled        bool   `toml:"enabled"`
	AcoustIDAPIKey string `toml:"acoustid_api_key"`
	AcoustIDURL    string `toml:"acoustid_url"`
	MusicBrainzURL string `toml:"musicbrainz_url"`
	UserAgent      string `toml:"user_agent"`
	Fpcalc         string `toml:"fpcalc"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Notifications contains ntfy settings for unattended runs.
type Notifications struct {
	// NtfyTopic is the full topic URL, e.g. https://ntfy.sh/my-imports.
	NtfyTopic             string `toml:"ntfy_topic"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File, when set, receives a JSON copy of every log record.
	File string `toml:"file"`
}

// Config encapsulates all configuration values for undisorder.
//
// Configuration sections by subsystem:
//   - Paths: target collections, index database, failure log
//   - Import: execution mode and batch sizes
//   - Filter: exclude patterns for files and directories
//   - Geocoding: place names for photo directories
//   - Identify: AcoustID/MusicBrainz lookups for untagged audio
//   - Notifications: ntfy messages when an import finishes
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Import        Import        `toml:"import"`
	Filter        Filter        `toml:"filter"`
	Geocoding     Geocoding     `toml:"geocoding"`
	Identify      Identify      `toml:"identify"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// Dir returns the configuration directory, honouring XDG_CONFIG_HOME.
func Dir() (string, error) {
	if base, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && strings.TrimSpace(base) != "" {
		return expandPath(filepath.Join(base, "undisorder"))
	}
	return expandPath("~/.config/undisorder")
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	loadDotEnv(filepath.Dir(resolvedPath))

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// loadDotEnv picks up API keys from a .env file beside the config or in the
// working directory. Existing environment variables win.
func loadDotEnv(configDir string) {
	candidates := []string{filepath.Join(configDir, ".env"), ".env"}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			_ = godotenv.Load(candidate)
		}
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("undisorder.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories holding the index and failure log.
// Target collections are created lazily by the importer so dry runs never
// touch them.
func (c *Config) EnsureDirectories() error {
	for _, file := range []string{c.Paths.IndexPath, c.Paths.FailureLog} {
		dir := filepath.Dir(file)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Targets returns the configured target collections keyed by media kind.
func (c *Config) Targets() map[string]string {
	return map[string]string{
		"photo": c.Paths.ImagesTarget,
		"video": c.Paths.VideoTarget,
		"audio": c.Paths.AudioTarget,
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
