package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
)

// ActionKind is what happened, or in a dry run would happen, to one file.
type ActionKind string

const (
	ActionImport    ActionKind = "import"
	ActionUpdate    ActionKind = "update"
	ActionSkip      ActionKind = "skip"
	ActionDuplicate ActionKind = "duplicate"
)

// Action records the outcome for one source file. Target is absolute and
// empty for skips and duplicates.
type Action struct {
	Kind      ActionKind
	MediaType MediaType
	Source    string
	Target    string
	Hash      string
	Reason    Reason
}

// Summary totals a run.
type Summary struct {
	DryRun        bool
	Imported      int
	Updated       int
	Skipped       int
	Duplicates    int
	FailedBatches int
	FailureLog    string
	SkipReasons   map[Reason]int
	Actions       []Action
}

func (s *Summary) record(action Action) {
	switch action.Kind {
	case ActionImport:
		s.Imported++
	case ActionUpdate:
		s.Updated++
	case ActionDuplicate:
		s.Duplicates++
	case ActionSkip:
		s.Skipped++
		if s.SkipReasons == nil {
			s.SkipReasons = make(map[Reason]int)
		}
		s.SkipReasons[action.Reason]++
	}
	s.Actions = append(s.Actions, action)
}

// Processed is the number of files that reached a decision.
func (s Summary) Processed() int {
	return s.Imported + s.Updated + s.Skipped + s.Duplicates
}

// WritePlan prints imports grouped by destination directory followed by
// updates, the layout used for dry-run review.
func WritePlan(w io.Writer, actions []Action) error {
	grouped := make(map[string][]string)
	var dirs []string
	var updates []Action
	for _, action := range actions {
		switch action.Kind {
		case ActionImport:
			dir := filepath.Dir(action.Target)
			if _, ok := grouped[dir]; !ok {
				dirs = append(dirs, dir)
			}
			grouped[dir] = append(grouped[dir], filepath.Base(action.Target))
		case ActionUpdate:
			updates = append(updates, action)
		}
	}
	sort.Strings(dirs)
	for _, dir := range dirs {
		names := grouped[dir]
		if _, err := fmt.Fprintf(w, "  %s/ (%s)\n", dir, pluralFiles(len(names))); err != nil {
			return err
		}
		for _, name := range names {
			if _, err := fmt.Fprintf(w, "    %s\n", name); err != nil {
				return err
			}
		}
	}
	for _, action := range updates {
		if _, err := fmt.Fprintf(w, "  [UPDATE] %s -> %s\n", action.Source, action.Target); err != nil {
			return err
		}
	}
	return nil
}

func pluralFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}
