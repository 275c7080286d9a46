package hasher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"undisorder/internal/logging"
)

// ChunkSize is the read buffer used while hashing.
const ChunkSize = 8192

// DuplicateGroup lists paths whose contents are byte-identical.
type DuplicateGroup struct {
	Hash  string
	Size  int64
	Paths []string
}

// HashFile returns the lowercase hex SHA-256 digest of the file contents.
// A missing file yields an error matching fs.ErrNotExist.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, ChunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

type sizeKey struct {
	size int64
	hash string
}

// FindDuplicates clusters paths by content. Files with a unique size are
// never hashed. Groups are ordered by size (largest first) then hash; paths
// keep their input order.
func FindDuplicates(ctx context.Context, paths []string, logger *slog.Logger) ([]DuplicateGroup, error) {
	logger = logging.NewComponentLogger(logger, "hasher")
	if len(paths) == 0 {
		return nil, nil
	}

	bySize := make(map[int64][]string)
	var sizes []int64
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if _, ok := bySize[info.Size()]; !ok {
			sizes = append(sizes, info.Size())
		}
		bySize[info.Size()] = append(bySize[info.Size()], path)
	}

	candidates := 0
	for _, bucket := range bySize {
		if len(bucket) > 1 {
			candidates += len(bucket)
		}
	}
	logger.Debug("size bucketing complete",
		logging.Int("files", len(paths)),
		logging.Int("size_buckets", len(bySize)),
		logging.Int("hash_candidates", candidates),
	)

	byContent := make(map[sizeKey][]string)
	var keys []sizeKey
	for _, size := range sizes {
		bucket := bySize[size]
		if len(bucket) < 2 {
			continue
		}
		for _, path := range bucket {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			digest, err := HashFile(path)
			if err != nil {
				return nil, err
			}
			key := sizeKey{size: size, hash: digest}
			if _, ok := byContent[key]; !ok {
				keys = append(keys, key)
			}
			byContent[key] = append(byContent[key], path)
		}
	}

	groups := make([]DuplicateGroup, 0, len(keys))
	for _, key := range keys {
		members := byContent[key]
		if len(members) < 2 {
			continue
		}
		groups = append(groups, DuplicateGroup{Hash: key.hash, Size: key.size, Paths: members})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Size != groups[j].Size {
			return groups[i].Size > groups[j].Size
		}
		return groups[i].Hash < groups[j].Hash
	})

	logger.Debug("content hashing complete",
		logging.Int("hashed", candidates),
		logging.Int("duplicate_groups", len(groups)),
	)
	return groups, nil
}
