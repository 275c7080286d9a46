package scanner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrQuit is returned by Select when the user chooses to quit.
var ErrQuit = errors.New("selection aborted by user")

// Prompter reads one line of user input after showing prompt.
type Prompter interface {
	Ask(prompt string) (string, error)
}

// DirectoryGroup is the set of scanned files sharing one parent directory.
type DirectoryGroup struct {
	RelPath      string
	Files        []string
	PhotoCount   int
	VideoCount   int
	AudioCount   int
	UnknownCount int
	TotalSize    int64
}

// GroupByDirectory groups every file of result by its directory relative to
// root. Groups are sorted by relative path.
func GroupByDirectory(result Result, root string) []DirectoryGroup {
	byDir := make(map[string]*DirectoryGroup)
	for _, path := range result.All() {
		rel := RelDir(root, path)
		group, ok := byDir[rel]
		if !ok {
			group = &DirectoryGroup{RelPath: rel}
			byDir[rel] = group
		}
		group.Files = append(group.Files, path)
		switch Classify(path) {
		case Photo:
			group.PhotoCount++
		case Video:
			group.VideoCount++
		case Audio:
			group.AudioCount++
		default:
			group.UnknownCount++
		}
		if info, err := os.Stat(path); err == nil {
			group.TotalSize += info.Size()
		}
	}

	out := make([]DirectoryGroup, 0, len(byDir))
	for _, group := range byDir {
		out = append(out, *group)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RelPath < out[j].RelPath })
	return out
}

// FormatSize renders a byte count as B, KB, MB or GB with one decimal.
func FormatSize(size int64) string {
	switch {
	case size < 1<<10:
		return fmt.Sprintf("%d B", size)
	case size < 1<<20:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	case size < 1<<30:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	default:
		return fmt.Sprintf("%.1f GB", float64(size)/(1<<30))
	}
}

// Summary renders a one-line description such as
// "2024/trip/  (3 photos, 1 video, 12.5 MB)".
func (g DirectoryGroup) Summary() string {
	var parts []string
	if g.PhotoCount > 0 {
		parts = append(parts, plural(g.PhotoCount, "photo"))
	}
	if g.VideoCount > 0 {
		parts = append(parts, plural(g.VideoCount, "video"))
	}
	if g.AudioCount > 0 {
		parts = append(parts, fmt.Sprintf("%d audio", g.AudioCount))
	}
	if g.UnknownCount > 0 {
		parts = append(parts, fmt.Sprintf("%d unknown", g.UnknownCount))
	}
	parts = append(parts, FormatSize(g.TotalSize))
	return fmt.Sprintf("%s/  (%s)", g.RelPath, strings.Join(parts, ", "))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

const selectPrompt = "  [y] accept  [n] skip  [l] list  [a] all  [q] quit: "

// Select walks the groups and asks whether each should be imported. It
// returns the accepted relative directories. "a" accepts the current and all
// remaining groups, "q" returns ErrQuit, anything unrecognized asks again.
func Select(groups []DirectoryGroup, prompter Prompter, out io.Writer) (map[string]bool, error) {
	accepted := make(map[string]bool)
	for i, group := range groups {
		fmt.Fprintf(out, "  %s\n", group.Summary())
	ask:
		for {
			answer, err := prompter.Ask(selectPrompt)
			if err != nil {
				return nil, err
			}
			switch strings.ToLower(strings.TrimSpace(answer)) {
			case "y":
				accepted[group.RelPath] = true
				break ask
			case "n":
				break ask
			case "a":
				for _, remaining := range groups[i:] {
					accepted[remaining.RelPath] = true
				}
				return accepted, nil
			case "q":
				return nil, ErrQuit
			case "l":
				for _, f := range group.Files {
					fmt.Fprintf(out, "    %s\n", filepath.Base(f))
				}
			}
		}
		fmt.Fprintln(out)
	}
	return accepted, nil
}

// KeepDirectories returns the files of result whose directory relative to
// root is in accepted.
func KeepDirectories(result Result, root string, accepted map[string]bool) Result {
	return result.filter(func(path string) bool {
		return accepted[RelDir(root, path)]
	})
}
