package metadata

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/dhowden/tag"

	"undisorder/internal/logging"
)

// TagProvider reads ID3, MP4, FLAC and Ogg tags.
type TagProvider struct {
	logger *slog.Logger
}

// NewTagProvider returns an audio tag provider.
func NewTagProvider(logger *slog.Logger) *TagProvider {
	return &TagProvider{logger: logging.NewComponentLogger(logger, "tags")}
}

// Extract returns the tags of each path; files without readable tags map to
// a zero Audio.
func (p *TagProvider) Extract(ctx context.Context, paths []string) map[string]Audio {
	out := make(map[string]Audio, len(paths))
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		audio, err := readTags(path)
		if err != nil {
			p.logger.Debug("audio tags unavailable", logging.String("source_path", path), logging.Error(err))
		}
		out[path] = audio
	}
	return out
}

func readTags(path string) (Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return Audio{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Audio{}, err
	}
	audio := Audio{
		Artist: strings.TrimSpace(m.Artist()),
		Album:  strings.TrimSpace(m.Album()),
		Title:  strings.TrimSpace(m.Title()),
		Genre:  strings.TrimSpace(m.Genre()),
		Year:   m.Year(),
	}
	audio.TrackNumber, _ = m.Track()
	audio.DiscNumber, _ = m.Disc()
	if audio.TrackNumber == 0 {
		audio.TrackNumber = numberFromRaw(m.Raw(), "tracknumber", "TRACKNUMBER", "TRCK")
	}
	if audio.DiscNumber == 0 {
		audio.DiscNumber = numberFromRaw(m.Raw(), "discnumber", "DISCNUMBER", "TPOS")
	}
	if audio.Year == 0 {
		audio.Year = yearFromRaw(m.Raw())
	}
	return audio, nil
}

// yearFromRaw looks for a date tag such as "2024-03-15" when the format
// specific year accessor found nothing.
func yearFromRaw(raw map[string]any) int {
	for _, key := range []string{"date", "DATE", "TDRC", "TYER", "year", "YEAR"} {
		if value, ok := raw[key]; ok {
			if year := ParseYear(strings.TrimSpace(toString(value))); year > 0 {
				return year
			}
		}
	}
	return 0
}

func numberFromRaw(raw map[string]any, keys ...string) int {
	for _, key := range keys {
		if value, ok := raw[key]; ok {
			if n := ParseNumber(toString(value)); n > 0 {
				return n
			}
		}
	}
	return 0
}

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

// ParseNumber parses "3" or "3/12" into 3; anything else yields 0.
func ParseNumber(value string) int {
	head, _, _ := strings.Cut(strings.TrimSpace(value), "/")
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParseYear returns the leading four digit year of a date string.
func ParseYear(value string) int {
	if len(value) < 4 {
		return 0
	}
	year, err := strconv.Atoi(value[:4])
	if err != nil {
		return 0
	}
	return year
}
