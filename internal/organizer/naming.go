package organizer

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"undisorder/internal/metadata"
	"undisorder/internal/textutil"
)

const (
	unknownDate   = "unknown_date"
	unknownArtist = "Unknown Artist"
	unknownAlbum  = "Unknown Album"

	descriptionWords = 4
)

// genericNames are directory names that say nothing about their content.
var genericNames = map[string]struct{}{
	"dcim": {}, "camera": {}, "img": {}, "image": {}, "images": {},
	"download": {}, "downloads": {},
	"backup": {}, "backups": {},
	"temp": {}, "tmp": {},
	"pictures": {}, "photos": {}, "fotos": {}, "bilder": {},
	"videos": {}, "movies": {}, "clips": {},
	"desktop": {}, "documents": {},
	"misc": {}, "miscellaneous": {}, "various": {},
	"untitled": {}, "new folder": {}, "neuer ordner": {},
	"export": {}, "output": {}, "import": {},
	"sd card": {}, "sdcard": {}, "usb": {},
	"iphone": {}, "android": {}, "samsung": {},
	"whatsapp images": {}, "whatsapp video": {},
}

// cameraFolder matches camera subfolders such as 100APPLE, 101_PANA or 100CANON.
var cameraFolder = regexp.MustCompile(`(?i)^\d{3}[A-Z_]`)

var nonWordChars = regexp.MustCompile(`[^\p{L}\p{N}_\-]`)

// Namer implements the destination naming rules.
type Namer struct{}

// NewNamer returns the default Namer.
func NewNamer() Namer {
	return Namer{}
}

// IsMeaningfulDirName reports whether a directory name is worth keeping as a topic.
func IsMeaningfulDirName(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	if _, generic := genericNames[textutil.Fold(name)]; generic {
		return false
	}
	return !cameraFolder.MatchString(name)
}

// SuggestDir returns the slash-separated directory, relative to the photo or
// video target, for a file at sourcePath with the given metadata and
// optional place name.
func (Namer) SuggestDir(sourcePath string, meta metadata.Photo, place string) string {
	var datePrefix string
	if meta.DateTaken != nil {
		d := *meta.DateTaken
		datePrefix = fmt.Sprintf("%04d/%04d-%02d", d.Year(), d.Year(), int(d.Month()))
	}

	topic := suggestTopic(sourcePath, meta, place)

	switch {
	case datePrefix != "" && topic != "":
		return datePrefix + "_" + topic
	case datePrefix != "":
		return datePrefix
	case topic != "":
		return path.Join(unknownDate, topic)
	default:
		return unknownDate
	}
}

func suggestTopic(sourcePath string, meta metadata.Photo, place string) string {
	if parent := filepath.Base(filepath.Dir(sourcePath)); IsMeaningfulDirName(parent) && parent != "." && parent != string(filepath.Separator) {
		return textutil.SanitizeFileName(parent)
	}
	for _, list := range [][]string{meta.Keywords, meta.Subject} {
		if len(list) > 0 {
			if kw := textutil.SanitizeFileName(list[0]); kw != "" {
				return kw
			}
		}
	}
	if place = textutil.SanitizeFileName(place); place != "" {
		return place
	}
	if desc := truncateDescription(meta.Description); desc != "" {
		return desc
	}
	return truncateDescription(meta.UserComment)
}

func truncateDescription(desc string) string {
	words := strings.Fields(desc)
	if len(words) > descriptionWords {
		words = words[:descriptionWords]
	}
	return nonWordChars.ReplaceAllString(strings.Join(words, "-"), "")
}

// SuggestAudio returns the directory (Artist/Album) and file name for an
// audio file. Files without both track number and title keep their source
// name.
func (Namer) SuggestAudio(sourcePath string, meta metadata.Audio) (string, string) {
	artist := textutil.SanitizeFileName(meta.Artist)
	if artist == "" {
		artist = unknownArtist
	}
	album := textutil.SanitizeFileName(meta.Album)
	if album == "" {
		album = unknownAlbum
	}

	name := filepath.Base(sourcePath)
	if meta.TrackNumber > 0 && meta.Title != "" {
		name = fmt.Sprintf("%02d_%s%s", meta.TrackNumber, textutil.SanitizeFileName(meta.Title), filepath.Ext(sourcePath))
	}
	return path.Join(artist, album), name
}
