package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveCollision returns target if nothing exists there and it is not
// reserved, otherwise the first free "<stem>_N<ext>" variant counting from 1.
// reserved may be nil.
func ResolveCollision(target string, reserved func(string) bool) string {
	taken := func(p string) bool {
		if reserved != nil && reserved(p) {
			return true
		}
		_, err := os.Lstat(p)
		return err == nil
	}
	if !taken(target) {
		return target
	}

	dir := filepath.Dir(target)
	ext := filepath.Ext(target)
	stem := strings.TrimSuffix(filepath.Base(target), ext)
	for n := 1; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
		if !taken(candidate) {
			return candidate
		}
	}
}
