// Package metadata extracts the descriptive data undisorder needs to name
// files: capture date, GPS position, keywords and descriptions for photos
// and videos, and tags for audio.
//
// Photos and videos are read with exiftool when it is installed, which also
// covers QuickTime containers and IPTC/XMP keywords. Without exiftool, EXIF
// is decoded in-process and XMP packets embedded in the file are scanned for
// keywords and descriptions. Audio tags are read in-process for ID3, MP4,
// FLAC and Ogg files. Extraction never fails a run: files that cannot be read
// simply yield zero values.
package metadata
