// Package hasher computes content digests and finds byte-identical files.
//
// Duplicate detection runs in two phases: files are bucketed by size with a
// cheap stat, and only buckets with more than one member are hashed. Digests
// depend on content alone, never on names, timestamps or locations.
package hasher
