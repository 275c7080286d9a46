package importer

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -destination=mocks/mock_collaborators.go -package=mocks undisorder/internal/importer Index,PhotoMetadataProvider,AudioMetadataProvider,Geocoder,Identifier,DestinationNamer,Prompter

import (
	"context"
	"log/slog"

	"undisorder/internal/hashdb"
	"undisorder/internal/identification"
	"undisorder/internal/metadata"
)

// Index is the part of the deduplication index the importer uses. It is
// scoped to one target collection.
type Index interface {
	Target() string
	HashExists(ctx context.Context, hash string) (bool, error)
	GetByHash(ctx context.Context, hash string) ([]hashdb.FileRecord, error)
	Insert(ctx context.Context, rec hashdb.FileRecord) error
	DeleteByHashAndPath(ctx context.Context, hash, relPath string) error
	RecordImport(ctx context.Context, sourcePath, hash, relPath string) error
	GetImport(ctx context.Context, sourcePath string) (*hashdb.ImportRecord, error)
	UpdateImport(ctx context.Context, sourcePath, hash, relPath string) error
	identification.Cache
}

// PhotoMetadataProvider extracts photo and video metadata for a chunk.
type PhotoMetadataProvider interface {
	Extract(ctx context.Context, paths []string) map[string]metadata.Photo
}

// AudioMetadataProvider extracts audio tags for a chunk.
type AudioMetadataProvider interface {
	Extract(ctx context.Context, paths []string) map[string]metadata.Audio
}

// Geocoder resolves coordinates to a place name, "" when unknown.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64) string
}

// Identifier completes audio tags from an acoustic lookup.
type Identifier interface {
	Identify(ctx context.Context, path string, existing metadata.Audio, hash string, cache identification.Cache) metadata.Audio
}

// DestinationNamer proposes slash-separated destinations relative to a
// target. Implementations must be deterministic.
type DestinationNamer interface {
	SuggestDir(sourcePath string, meta metadata.Photo, place string) string
	SuggestAudio(sourcePath string, meta metadata.Audio) (dir, file string)
}

// Prompter asks the operator a question and returns the raw answer.
type Prompter interface {
	Ask(prompt string) (string, error)
}

// Dependencies wires the collaborators of an Importer. Geocoder,
// Identifier and Prompter may be nil; Prompter is required for interactive
// runs.
type Dependencies struct {
	Images Index
	Videos Index
	Audio  Index

	PhotoMetadata PhotoMetadataProvider
	AudioMetadata AudioMetadataProvider
	Geocoder      Geocoder
	Identifier    Identifier
	Namer         DestinationNamer
	Prompter      Prompter

	Logger *slog.Logger
}

// readOnlyCache serves stored identifications but drops new ones. Dry runs
// use it so lookups leave the index untouched.
type readOnlyCache struct {
	identification.Cache
}

func (readOnlyCache) PutIdentification(context.Context, hashdb.IdentificationEntry) error {
	return nil
}
