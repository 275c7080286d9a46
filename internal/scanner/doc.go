// Package scanner discovers media files below a source directory, classifies
// them by extension, applies exclude patterns and lets the user pre-select
// which source directories take part in an import.
package scanner
