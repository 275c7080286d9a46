package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"undisorder/internal/logging"
)

// exiftoolBatch bounds the number of paths passed to one exiftool call.
const exiftoolBatch = 200

var commandContext = exec.CommandContext

// dateTags is the lookup order for capture dates; the first parseable wins.
var dateTags = []string{
	"EXIF:DateTimeOriginal",
	"EXIF:CreateDate",
	"QuickTime:CreateDate",
	"QuickTime:MediaCreateDate",
	"XMP:DateTimeOriginal",
	"XMP:CreateDate",
}

// ExiftoolProvider extracts photo and video metadata by running exiftool.
type ExiftoolProvider struct {
	binary string
	logger *slog.Logger
}

// NewExiftoolProvider returns a provider running binary ("exiftool" when empty).
func NewExiftoolProvider(binary string, logger *slog.Logger) *ExiftoolProvider {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "exiftool"
	}
	return &ExiftoolProvider{binary: binary, logger: logging.NewComponentLogger(logger, "exiftool")}
}

// Extract returns metadata for every path exiftool could read.
func (p *ExiftoolProvider) Extract(ctx context.Context, paths []string) map[string]Photo {
	out := make(map[string]Photo, len(paths))
	for start := 0; start < len(paths); start += exiftoolBatch {
		end := min(start+exiftoolBatch, len(paths))
		records, err := p.run(ctx, paths[start:end])
		if err != nil {
			logging.WarnWithContext(p.logger, "exiftool failed", "metadata_extract_failed",
				logging.Error(err),
				logging.Int("files", end-start),
				logging.String(logging.FieldImpact, "files are named without capture date or keywords"),
				logging.String(logging.FieldErrorHint, "check that exiftool can read the files"),
			)
			continue
		}
		for _, raw := range records {
			source, _ := raw["SourceFile"].(string)
			if source == "" {
				continue
			}
			out[source] = parseExiftoolRecord(raw)
		}
	}
	return out
}

func (p *ExiftoolProvider) run(ctx context.Context, paths []string) ([]map[string]any, error) {
	args := append([]string{"-json", "-n", "-G"}, paths...)
	cmd := commandContext(ctx, p.binary, args...) //nolint:gosec
	output, err := cmd.Output()
	// exiftool exits 1 when some files had no metadata but still prints JSON.
	if err != nil && len(output) == 0 {
		return nil, fmt.Errorf("exiftool: %w", err)
	}
	var records []map[string]any
	if err := json.Unmarshal(output, &records); err != nil {
		return nil, fmt.Errorf("exiftool parse: %w", err)
	}
	return records, nil
}

func parseExiftoolRecord(raw map[string]any) Photo {
	var photo Photo
	for _, tag := range dateTags {
		value, ok := raw[tag].(string)
		if !ok || value == "" {
			continue
		}
		if parsed, ok := parseDate(value); ok {
			photo.DateTaken = &parsed
			break
		}
	}
	photo.GPS = exiftoolGPS(raw)
	photo.Keywords = stringList(raw["IPTC:Keywords"])
	if len(photo.Keywords) == 0 {
		photo.Keywords = stringList(raw["XMP:Subject"])
	}
	photo.Subject = stringList(raw["XMP:Subject"])
	for _, tag := range []string{"EXIF:ImageDescription", "XMP:Description", "IPTC:Caption-Abstract"} {
		if value, ok := raw[tag].(string); ok && strings.TrimSpace(value) != "" {
			photo.Description = value
			break
		}
	}
	if value, ok := raw["EXIF:UserComment"].(string); ok {
		photo.UserComment = strings.TrimSpace(value)
	}
	return photo
}

func exiftoolGPS(raw map[string]any) *Coordinates {
	if lat, ok := raw["Composite:GPSLatitude"].(float64); ok {
		if lon, ok := raw["Composite:GPSLongitude"].(float64); ok {
			return &Coordinates{Lat: lat, Lon: lon}
		}
	}
	lat, okLat := raw["EXIF:GPSLatitude"].(float64)
	lon, okLon := raw["EXIF:GPSLongitude"].(float64)
	if !okLat || !okLon {
		return nil
	}
	if ref, _ := raw["EXIF:GPSLatitudeRef"].(string); ref == "S" {
		lat = -lat
	}
	if ref, _ := raw["EXIF:GPSLongitudeRef"].(string); ref == "W" {
		lon = -lon
	}
	return &Coordinates{Lat: lat, Lon: lon}
}

func stringList(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return []string{fmt.Sprint(v)}
	}
}

// parseDate parses an EXIF style date and rejects placeholders before 1900.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimRight(strings.TrimSpace(value), "\x00")
	if len(value) > len(DateLayout) {
		value = value[:len(DateLayout)]
	}
	parsed, err := time.ParseInLocation(DateLayout, value, time.Local)
	if err != nil || parsed.Year() < 1900 {
		return time.Time{}, false
	}
	return parsed, true
}
