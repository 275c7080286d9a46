package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileType classifies a file by extension.
type FileType string

const (
	Photo   FileType = "photo"
	Video   FileType = "video"
	Audio   FileType = "audio"
	Unknown FileType = "unknown"
)

var photoExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".tiff": {}, ".tif": {},
	".heic": {}, ".heif": {}, ".webp": {}, ".bmp": {},
	// RAW
	".cr2": {}, ".cr3": {}, ".nef": {}, ".arw": {}, ".orf": {},
	".raf": {}, ".rw2": {}, ".dng": {}, ".pef": {}, ".srw": {},
}

var videoExtensions = map[string]struct{}{
	".mp4": {}, ".mov": {}, ".avi": {}, ".mkv": {}, ".mts": {},
	".m2ts": {}, ".wmv": {}, ".flv": {}, ".webm": {}, ".3gp": {},
	".m4v": {}, ".mpg": {}, ".mpeg": {}, ".vob": {},
}

var audioExtensions = map[string]struct{}{
	".mp3": {}, ".flac": {}, ".ogg": {}, ".opus": {}, ".m4a": {},
	".aac": {}, ".wma": {}, ".wav": {}, ".aiff": {}, ".ape": {},
	".mpc": {}, ".wv": {}, ".tta": {},
}

// Classify returns the FileType for path based on its lowercased extension.
func Classify(path string) FileType {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := photoExtensions[ext]; ok {
		return Photo
	}
	if _, ok := videoExtensions[ext]; ok {
		return Video
	}
	if _, ok := audioExtensions[ext]; ok {
		return Audio
	}
	return Unknown
}

// Result holds the classified files of one scan, each list in walk order.
type Result struct {
	Photos  []string
	Videos  []string
	Audios  []string
	Unknown []string
}

// Total returns the number of files in the result.
func (r Result) Total() int {
	return len(r.Photos) + len(r.Videos) + len(r.Audios) + len(r.Unknown)
}

// All returns every file: photos, videos, audio, then unknown.
func (r Result) All() []string {
	out := make([]string, 0, r.Total())
	out = append(out, r.Photos...)
	out = append(out, r.Videos...)
	out = append(out, r.Audios...)
	return append(out, r.Unknown...)
}

// PhotosAndVideos returns the photo and video files together.
func (r Result) PhotosAndVideos() []string {
	out := make([]string, 0, len(r.Photos)+len(r.Videos))
	out = append(out, r.Photos...)
	return append(out, r.Videos...)
}

func (r *Result) add(path string) {
	switch Classify(path) {
	case Photo:
		r.Photos = append(r.Photos, path)
	case Video:
		r.Videos = append(r.Videos, path)
	case Audio:
		r.Audios = append(r.Audios, path)
	default:
		r.Unknown = append(r.Unknown, path)
	}
}

// filter keeps the files for which keep returns true.
func (r Result) filter(keep func(string) bool) Result {
	pick := func(paths []string) []string {
		var out []string
		for _, p := range paths {
			if keep(p) {
				out = append(out, p)
			}
		}
		return out
	}
	return Result{
		Photos:  pick(r.Photos),
		Videos:  pick(r.Videos),
		Audios:  pick(r.Audios),
		Unknown: pick(r.Unknown),
	}
}

// Scan walks root in lexical order and classifies every regular file.
// Hidden files and anything below a hidden directory are skipped.
func Scan(ctx context.Context, root string) (Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return Result{}, fmt.Errorf("scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return Result{}, fmt.Errorf("scan %s: not a directory", root)
	}

	var result Result
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			result.add(path)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("scan %s: %w", root, err)
	}
	return result, nil
}

// RelDir returns the slash-separated directory of path relative to root,
// "." for files directly in root.
func RelDir(root, path string) string {
	rel, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil || rel == "" {
		return "."
	}
	return filepath.ToSlash(rel)
}
