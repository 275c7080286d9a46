package scanner

import (
	"path/filepath"
	"strings"

	"undisorder/internal/textutil"
)

// ApplyExcludes drops files whose name matches an exclude pattern or that
// sit below a directory whose name matches an exclude_dir pattern. Matching
// is glob based and case-insensitive.
func ApplyExcludes(result Result, root string, exclude, excludeDir []string) Result {
	if len(exclude) == 0 && len(excludeDir) == 0 {
		return result
	}
	filePatterns := foldPatterns(exclude)
	dirPatterns := foldPatterns(excludeDir)
	return result.filter(func(path string) bool {
		return !isExcluded(path, root, filePatterns, dirPatterns)
	})
}

func isExcluded(path, root string, filePatterns, dirPatterns []string) bool {
	if matchesAny(filepath.Base(path), filePatterns) {
		return true
	}
	if len(dirPatterns) == 0 {
		return false
	}
	rel := RelDir(root, path)
	if rel == "." {
		return false
	}
	for _, part := range strings.Split(rel, "/") {
		if matchesAny(part, dirPatterns) {
			return true
		}
	}
	return false
}

func foldPatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, textutil.Fold(p))
		}
	}
	return out
}

func matchesAny(name string, patterns []string) bool {
	folded := textutil.Fold(name)
	for _, p := range patterns {
		if ok, err := filepath.Match(p, folded); err == nil && ok {
			return true
		}
	}
	return false
}
