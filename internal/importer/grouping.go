package importer

import (
	"sort"
	"strings"

	"undisorder/internal/scanner"
)

// MediaType names the two import phases.
type MediaType string

const (
	MediaPhotoVideo MediaType = "photo_video"
	MediaAudio      MediaType = "audio"
)

// sourceGroup holds the files sharing one immediate source directory.
type sourceGroup struct {
	RelDir string
	Files  []string
}

// batch is one chunk of a sourceGroup and the unit of failure isolation.
type batch struct {
	RelDir string
	Files  []string
}

// groupBySourceDir partitions files by their directory relative to root
// and orders the groups with orderGroups. Files keep their input order.
func groupBySourceDir(root string, files []string) []sourceGroup {
	index := make(map[string]int)
	var groups []sourceGroup
	for _, file := range files {
		rel := scanner.RelDir(root, file)
		i, ok := index[rel]
		if !ok {
			i = len(groups)
			index[rel] = i
			groups = append(groups, sourceGroup{RelDir: rel})
		}
		groups[i].Files = append(groups[i].Files, file)
	}
	orderGroups(groups)
	return groups
}

// orderGroups sorts deepest directory first, then lexicographically, so
// nested collections finish before their parents.
func orderGroups(groups []sourceGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		di, dj := dirDepth(groups[i].RelDir), dirDepth(groups[j].RelDir)
		if di != dj {
			return di > dj
		}
		return groups[i].RelDir < groups[j].RelDir
	})
}

func dirDepth(rel string) int {
	if rel == "." || rel == "" {
		return 0
	}
	return strings.Count(rel, "/") + 1
}

// iterBatches cuts each group into chunks of at most size files.
func iterBatches(groups []sourceGroup, size int) []batch {
	if size <= 0 {
		size = 1
	}
	var out []batch
	for _, group := range groups {
		for start := 0; start < len(group.Files); start += size {
			end := min(start+size, len(group.Files))
			out = append(out, batch{RelDir: group.RelDir, Files: group.Files[start:end]})
		}
	}
	return out
}
