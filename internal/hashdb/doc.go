// Package hashdb is the persisted deduplication index.
//
// One SQLite database holds three tables: files (content hash to relative
// path per target collection), imports (which source paths have been
// considered, first write wins) and identification_cache (acoustic lookup
// results keyed by content hash). A Store is scoped to one canonical target
// directory so several collections can share the database without seeing
// each other's rows.
//
// Every mutation commits immediately; there is no chunk-wide transaction.
// Duplicate primary keys surface as ErrIntegrityViolation, anything else as
// ErrStorage.
package hashdb
