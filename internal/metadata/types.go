package metadata

import "time"

// DateLayout is the EXIF date layout, also used for the index date_taken column.
const DateLayout = "2006:01:02 15:04:05"

// Coordinates is a WGS84 position in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Photo holds the descriptive data found in a photo or video. Every field
// is optional; a zero value means nothing usable was found.
type Photo struct {
	DateTaken   *time.Time
	GPS         *Coordinates
	Keywords    []string
	Subject     []string
	Description string
	UserComment string
}

// HasGPS reports whether coordinates are available.
func (p Photo) HasGPS() bool {
	return p.GPS != nil
}

// Audio holds tag data for an audio file. Zero numbers mean unknown.
type Audio struct {
	Artist      string
	Album       string
	Title       string
	TrackNumber int
	DiscNumber  int
	Year        int
	Genre       string
}

// Complete reports whether the tags are sufficient for naming without an
// identification lookup.
func (a Audio) Complete() bool {
	return a.Artist != "" && a.Album != "" && a.Title != ""
}

// Merge fills the empty fields of a from fallback. Explicit values in a
// always win.
func (a Audio) Merge(fallback Audio) Audio {
	out := a
	if out.Artist == "" {
		out.Artist = fallback.Artist
	}
	if out.Album == "" {
		out.Album = fallback.Album
	}
	if out.Title == "" {
		out.Title = fallback.Title
	}
	if out.TrackNumber == 0 {
		out.TrackNumber = fallback.TrackNumber
	}
	if out.DiscNumber == 0 {
		out.DiscNumber = fallback.DiscNumber
	}
	if out.Year == 0 {
		out.Year = fallback.Year
	}
	return out
}
