package hashdb

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// IdentificationEntry caches the result of an acoustic identification lookup.
// An entry with an empty ExternalID records that the lookup found nothing.
type IdentificationEntry struct {
	FileHash    string
	Fingerprint string
	Duration    float64
	ExternalID  string
	Artist      string
	Album       string
	Title       string
	TrackNumber int
	DiscNumber  int
	Year        int
	LookupDate  time.Time
}

// GetIdentification returns the cached lookup for a content hash, or nil.
func (s *Store) GetIdentification(ctx context.Context, fileHash string) (*IdentificationEntry, error) {
	var (
		entry       IdentificationEntry
		fingerprint sql.NullString
		duration    sql.NullFloat64
		externalID  sql.NullString
		artist      sql.NullString
		album       sql.NullString
		title       sql.NullString
		trackNumber sql.NullInt64
		discNumber  sql.NullInt64
		year        sql.NullInt64
		lookupDate  string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT file_hash, fingerprint, duration, external_id, artist, album, title,
                track_number, disc_number, year, lookup_date
         FROM identification_cache WHERE file_hash = ?`,
		fileHash,
	).Scan(
		&entry.FileHash,
		&fingerprint,
		&duration,
		&externalID,
		&artist,
		&album,
		&title,
		&trackNumber,
		&discNumber,
		&year,
		&lookupDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError("get identification", err)
	}
	entry.Fingerprint = fingerprint.String
	entry.Duration = duration.Float64
	entry.ExternalID = externalID.String
	entry.Artist = artist.String
	entry.Album = album.String
	entry.Title = title.String
	entry.TrackNumber = int(trackNumber.Int64)
	entry.DiscNumber = int(discNumber.Int64)
	entry.Year = int(year.Int64)
	if parsed, err := parseTimeString(lookupDate); err == nil {
		entry.LookupDate = parsed
	}
	return &entry, nil
}

// PutIdentification inserts or replaces the cached lookup for a hash.
func (s *Store) PutIdentification(ctx context.Context, entry IdentificationEntry) error {
	lookupDate := entry.LookupDate
	if lookupDate.IsZero() {
		lookupDate = time.Now()
	}
	_, err := s.exec(ctx,
		`INSERT OR REPLACE INTO identification_cache (
            file_hash, fingerprint, duration, external_id, artist, album, title,
            track_number, disc_number, year, lookup_date
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.FileHash,
		nullableString(entry.Fingerprint),
		entry.Duration,
		nullableString(entry.ExternalID),
		nullableString(entry.Artist),
		nullableString(entry.Album),
		nullableString(entry.Title),
		nullableInt(entry.TrackNumber),
		nullableInt(entry.DiscNumber),
		nullableInt(entry.Year),
		lookupDate.Format(time.RFC3339Nano),
	)
	if err != nil {
		return storageError("put identification", err)
	}
	return nil
}
