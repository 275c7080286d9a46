// Package organizer decides where a file lands inside its target collection.
//
// Photos and videos are filed under a date prefix (YYYY/YYYY-MM) combined
// with the most meaningful topic available: the source directory name when
// it is not generic, an EXIF keyword or subject, the reverse-geocoded place,
// or the first words of the description or user comment. Audio is filed as
// Artist/Album/NN_Title.ext. Every function here is pure apart from
// ResolveCollision, which probes the filesystem.
package organizer
