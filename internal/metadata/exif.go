package metadata

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"undisorder/internal/logging"
)

// xmpScanLimit bounds how much of a file is searched for an XMP packet.
const xmpScanLimit = 1 << 20

var (
	xmpPacket      = regexp.MustCompile(`(?s)<x:xmpmeta.*?</x:xmpmeta>`)
	xmpSubject     = regexp.MustCompile(`(?s)<dc:subject>(.*?)</dc:subject>`)
	xmpDescription = regexp.MustCompile(`(?s)<dc:description>(.*?)</dc:description>`)
	xmpListItem    = regexp.MustCompile(`(?s)<rdf:li[^>]*>(.*?)</rdf:li>`)
)

// ExifProvider decodes EXIF in-process. It covers JPEG and TIFF based
// formats; files without EXIF yield a zero Photo.
type ExifProvider struct {
	logger *slog.Logger
}

// NewExifProvider returns an in-process EXIF provider.
func NewExifProvider(logger *slog.Logger) *ExifProvider {
	return &ExifProvider{logger: logging.NewComponentLogger(logger, "exif")}
}

// Extract returns metadata for each path. Unreadable files are logged at
// debug level and map to whatever was recovered, possibly a zero Photo.
func (p *ExifProvider) Extract(ctx context.Context, paths []string) map[string]Photo {
	out := make(map[string]Photo, len(paths))
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		photo, err := p.extractOne(path)
		if err != nil {
			p.logger.Debug("exif unavailable", logging.String("source_path", path), logging.Error(err))
		}
		out[path] = photo
	}
	return out
}

func (p *ExifProvider) extractOne(path string) (Photo, error) {
	f, err := os.Open(path)
	if err != nil {
		return Photo{}, err
	}
	defer f.Close()

	head, err := io.ReadAll(io.LimitReader(f, xmpScanLimit))
	if err != nil {
		return Photo{}, err
	}
	var photo Photo
	applyXMP(&photo, head)

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return photo, err
	}
	x, err := exif.Decode(f)
	if err != nil {
		return photo, err
	}
	if dt, err := x.DateTime(); err == nil {
		if parsed, ok := parseDate(dt.Format(DateLayout)); ok {
			photo.DateTaken = &parsed
		}
	}
	if lat, lon, err := x.LatLong(); err == nil {
		photo.GPS = &Coordinates{Lat: lat, Lon: lon}
	}
	if desc := tagString(x, exif.ImageDescription); desc != "" {
		photo.Description = desc
	}
	if tag, err := x.Get(exif.UserComment); err == nil {
		photo.UserComment = decodeUserComment(tag)
	}
	return photo, nil
}

func tagString(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	value, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimRight(value, "\x00"))
}

// decodeUserComment strips the 8 byte character code prefix of UserComment.
func decodeUserComment(tag *tiff.Tag) string {
	raw := tag.Val
	if len(raw) >= 8 {
		raw = raw[8:]
	}
	return strings.TrimSpace(string(bytes.Trim(raw, "\x00 ")))
}

func applyXMP(photo *Photo, data []byte) {
	packet := xmpPacket.Find(data)
	if packet == nil {
		return
	}
	if m := xmpSubject.FindSubmatch(packet); m != nil {
		for _, item := range xmpListItem.FindAllSubmatch(m[1], -1) {
			if value := strings.TrimSpace(string(item[1])); value != "" {
				photo.Subject = append(photo.Subject, value)
			}
		}
		photo.Keywords = append([]string(nil), photo.Subject...)
	}
	if m := xmpDescription.FindSubmatch(packet); m != nil {
		if item := xmpListItem.FindSubmatch(m[1]); item != nil {
			photo.Description = strings.TrimSpace(string(item[1]))
		}
	}
}
