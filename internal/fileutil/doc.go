// Package fileutil copies and moves media files into target collections.
// Copies keep permission bits and modification time and are checked against
// the source before they are trusted.
package fileutil
