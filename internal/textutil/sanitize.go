package textutil

import (
	"strings"

	"golang.org/x/text/cases"
)

// pathComponentReplacer replaces characters that are unsafe in a single
// directory or file name.
var pathComponentReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// SanitizeFileName makes name usable as one path component. Every unsafe
// character becomes an underscore and surrounding whitespace is trimmed.
func SanitizeFileName(name string) string {
	return strings.TrimSpace(pathComponentReplacer.Replace(name))
}

var folder = cases.Fold()

// Fold returns the Unicode case-folded form of value for case-insensitive
// comparison of names and patterns.
func Fold(value string) string {
	return folder.String(value)
}
