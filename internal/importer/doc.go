// Package importer brings scanned media into the target collections exactly
// once.
//
// Candidates are grouped by source directory (deepest first) and cut into
// chunks. Within a chunk every file is hashed; files sharing content are
// reduced to one canonical copy, the oldest by modification time. Each
// canonical file then passes through decide, a pure function of what the
// index knows about its hash and source path, and the resulting
// Import-New, Import-Update or Skip is executed against the filesystem and
// the index.
//
// A chunk is the unit of failure: an error or panic abandons the rest of
// the chunk, appends one record to the failure log and the run continues.
// Index storage errors and cancellation end the run.
//
// Dry runs compute the same decisions without touching the targets or the
// index; a run-scoped overlay of planned hashes and paths keeps later
// chunks consistent with what a real run would have written.
package importer
