package metadata

import (
	"context"
	"log/slog"
	"os/exec"
)

// PhotoProvider extracts photo and video metadata for a batch of paths.
type PhotoProvider interface {
	Extract(ctx context.Context, paths []string) map[string]Photo
}

// NewPhotoProvider returns an exiftool backed provider when the binary is
// on PATH, falling back to in-process EXIF decoding for files exiftool
// returns nothing for. Without exiftool only the in-process decoder is used.
func NewPhotoProvider(exiftoolBinary string, logger *slog.Logger) PhotoProvider {
	exifProvider := NewExifProvider(logger)
	tool := NewExiftoolProvider(exiftoolBinary, logger)
	if _, err := exec.LookPath(tool.binary); err != nil {
		logger.Debug("exiftool not found, using built-in exif decoder")
		return exifProvider
	}
	return chainProvider{primary: tool, fallback: exifProvider}
}

type chainProvider struct {
	primary  PhotoProvider
	fallback PhotoProvider
}

func (c chainProvider) Extract(ctx context.Context, paths []string) map[string]Photo {
	out := c.primary.Extract(ctx, paths)
	var missing []string
	for _, path := range paths {
		if _, ok := out[path]; !ok {
			missing = append(missing, path)
		}
	}
	if len(missing) == 0 {
		return out
	}
	for path, photo := range c.fallback.Extract(ctx, missing) {
		out[path] = photo
	}
	return out
}
