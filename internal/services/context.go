package services

import "context"

type contextKey string

const (
	runIDKey     contextKey = "run_id"
	mediaTypeKey contextKey = "media_type"
	sourceDirKey contextKey = "source_dir"
)

// WithRunID annotates context with the import run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the import run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithMediaType annotates context with the media kind being imported
// (photo_video or audio).
func WithMediaType(ctx context.Context, mediaType string) context.Context {
	if mediaType == "" {
		return ctx
	}
	return context.WithValue(ctx, mediaTypeKey, mediaType)
}

// MediaTypeFromContext returns the media kind if present.
func MediaTypeFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(mediaTypeKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithSourceDir annotates context with the source directory of the current batch.
func WithSourceDir(ctx context.Context, dir string) context.Context {
	if dir == "" {
		return ctx
	}
	return context.WithValue(ctx, sourceDirKey, dir)
}

// SourceDirFromContext returns the batch source directory if present.
func SourceDirFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(sourceDirKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
