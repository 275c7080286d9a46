package identification

import (
	"context"
	"log/slog"

	"undisorder/internal/config"
	"undisorder/internal/hashdb"
	"undisorder/internal/logging"
	"undisorder/internal/metadata"
	"undisorder/internal/services"
	"undisorder/internal/services/acoustid"
	"undisorder/internal/services/musicbrainz"
)

// Cache stores lookup results by content hash.
type Cache interface {
	GetIdentification(ctx context.Context, fileHash string) (*hashdb.IdentificationEntry, error)
	PutIdentification(ctx context.Context, entry hashdb.IdentificationEntry) error
}

// AcoustID defines the fingerprint and lookup operations used by the identifier.
type AcoustID interface {
	Fingerprint(ctx context.Context, path string) (acoustid.Fingerprint, error)
	Lookup(ctx context.Context, fp acoustid.Fingerprint) (string, error)
}

// MusicBrainz defines the recording lookup used by the identifier.
type MusicBrainz interface {
	Recording(ctx context.Context, id string) (*musicbrainz.Recording, error)
}

// Identifier merges looked-up tags into existing audio metadata.
type Identifier struct {
	acoustid    AcoustID
	musicbrainz MusicBrainz
	enabled     bool
	logger      *slog.Logger
}

// NewIdentifier builds an identifier from configuration. Identification is
// inactive unless enabled with an AcoustID API key.
func NewIdentifier(cfg config.Identify, logger *slog.Logger) *Identifier {
	acoustClient := acoustid.NewClient(acoustid.Config{
		APIKey:         cfg.AcoustIDAPIKey,
		LookupURL:      cfg.AcoustIDURL,
		Fpcalc:         cfg.Fpcalc,
		TimeoutSeconds: cfg.TimeoutSeconds,
	})
	mbClient := musicbrainz.NewClient(musicbrainz.Config{
		BaseURL:        cfg.MusicBrainzURL,
		UserAgent:      cfg.UserAgent,
		TimeoutSeconds: cfg.TimeoutSeconds,
	})
	return NewIdentifierWithDependencies(cfg.Enabled && acoustClient.Enabled(), acoustClient, mbClient, logger)
}

// NewIdentifierWithDependencies allows injecting custom clients (used in tests).
func NewIdentifierWithDependencies(enabled bool, acoustClient AcoustID, mbClient MusicBrainz, logger *slog.Logger) *Identifier {
	return &Identifier{
		acoustid:    acoustClient,
		musicbrainz: mbClient,
		enabled:     enabled,
		logger:      logging.NewComponentLogger(logger, "identification"),
	}
}

// Enabled reports whether lookups are performed.
func (i *Identifier) Enabled() bool {
	return i != nil && i.enabled
}

// Identify returns existing merged with the lookup result for the file.
// Existing fields always win. Failures are logged and yield existing
// unchanged. cache and hash are optional.
func (i *Identifier) Identify(ctx context.Context, path string, existing metadata.Audio, hash string, cache Cache) metadata.Audio {
	if !i.Enabled() {
		return existing
	}
	logger := i.logger.With(logging.String("source_path", path))
	useCache := cache != nil && hash != ""

	if useCache {
		entry, err := cache.GetIdentification(ctx, hash)
		if err != nil {
			logger.Debug("identification cache read failed", logging.Error(err))
		} else if entry != nil {
			logger.Debug("identification cache hit", logging.String("hash", hash))
			return existing.Merge(entryAudio(*entry))
		}
	}

	fp, err := i.acoustid.Fingerprint(ctx, path)
	if err != nil {
		logging.WarnWithContext(logger, "fingerprint failed", "fingerprint_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "file is named from its own tags"),
			logging.String(logging.FieldErrorHint, "install chromaprint (fpcalc) or check the file"),
		)
		return existing
	}

	entry := hashdb.IdentificationEntry{
		FileHash:    hash,
		Fingerprint: fp.Fingerprint,
		Duration:    fp.Duration,
	}
	var found *metadata.Audio
	recordingID, err := i.acoustid.Lookup(ctx, fp)
	if err != nil {
		i.logLookupFailure(logger, "acoustid", err)
		if services.Retryable(err) {
			return existing
		}
	}
	if recordingID != "" {
		entry.ExternalID = recordingID
		recording, err := i.musicbrainz.Recording(ctx, recordingID)
		if err != nil {
			i.logLookupFailure(logger, "musicbrainz", err)
			if services.Retryable(err) {
				return existing
			}
		} else if recording != nil {
			audio := recordingAudio(*recording)
			found = &audio
			entry.Artist = audio.Artist
			entry.Album = audio.Album
			entry.Title = audio.Title
			entry.TrackNumber = audio.TrackNumber
			entry.DiscNumber = audio.DiscNumber
			entry.Year = audio.Year
		}
	}

	if useCache {
		if err := cache.PutIdentification(ctx, entry); err != nil {
			logger.Debug("identification cache write failed", logging.Error(err))
		}
	}
	if found == nil {
		logger.Debug("no recording matched fingerprint")
		return existing
	}
	logger.Info("audio identified",
		logging.String("artist", found.Artist),
		logging.String("title", found.Title),
		logging.String("external_id", recordingID),
	)
	return existing.Merge(*found)
}

func (i *Identifier) logLookupFailure(logger *slog.Logger, service string, err error) {
	logging.WarnWithContext(logger, service+" lookup failed", "identification_lookup_failed",
		logging.Error(err),
		logging.String("service", service),
		logging.Bool("retryable", services.Retryable(err)),
		logging.String(logging.FieldImpact, "file is named from its own tags"),
		logging.String(logging.FieldErrorHint, "check the API key and network access"),
	)
}

func entryAudio(entry hashdb.IdentificationEntry) metadata.Audio {
	return metadata.Audio{
		Artist:      entry.Artist,
		Album:       entry.Album,
		Title:       entry.Title,
		TrackNumber: entry.TrackNumber,
		DiscNumber:  entry.DiscNumber,
		Year:        entry.Year,
	}
}

func recordingAudio(rec musicbrainz.Recording) metadata.Audio {
	return metadata.Audio{
		Artist:      rec.Artist,
		Album:       rec.Album,
		Title:       rec.Title,
		TrackNumber: rec.TrackNumber,
		DiscNumber:  rec.DiscNumber,
		Year:        rec.Year,
	}
}
