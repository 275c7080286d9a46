// Package services defines shared utilities consumed by the importer and the
// clients for external lookup services.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, media kinds, and source directories
//     for logging.
//   - Structured error markers plus the Wrap helper that let callers decide
//     whether a failed lookup is final or worth repeating on a later run.
//
// The nominatim, acoustid and musicbrainz subpackages hold the HTTP and
// subprocess clients.
package services
