package importer

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"undisorder/internal/fileutil"
	"undisorder/internal/hashdb"
	"undisorder/internal/hasher"
	"undisorder/internal/identification"
	"undisorder/internal/logging"
	"undisorder/internal/metadata"
	"undisorder/internal/organizer"
	"undisorder/internal/scanner"
)

const previewNames = 5

// candidate is one canonical file of a chunk on its way through decide
// and execution.
type candidate struct {
	path  string
	hash  string
	info  os.FileInfo
	kind  scanner.FileType
	index Index
	root  string

	record *hashdb.ImportRecord

	dir       string
	name      string
	dateTaken *time.Time
}

// duplicate is a non-canonical file sharing content with a canonical one.
// index is the canonical's index, where the content is stored.
type duplicate struct {
	path  string
	hash  string
	index Index
}

func (imp *Importer) processBatch(ctx context.Context, state *runState, media MediaType, b batch, summary *Summary) error {
	logger := logging.WithContext(ctx, imp.logger)
	logger.Debug("batch started", logging.Int("files", len(b.Files)))
	before := *summary

	canonicals, dupes, err := imp.selectCanonical(ctx, b.Files)
	if err != nil {
		return err
	}

	var updates, fresh []*candidate
	for _, c := range canonicals {
		decision, err := imp.evaluate(ctx, state, c)
		if err != nil {
			return err
		}
		logger.Debug("import decision", logging.Args(append(
			logging.DecisionAttrs("import", decision.Kind.String(), string(decision.Reason)),
			logging.String("source_path", c.path),
		)...)...)
		switch decision.Kind {
		case DecisionImportNew:
			fresh = append(fresh, c)
		case DecisionImportUpdate:
			updates = append(updates, c)
		default:
			summary.record(Action{Kind: ActionSkip, MediaType: media, Source: c.path, Hash: c.hash, Reason: decision.Reason})
		}
	}

	photoMeta := imp.photoMetadata(ctx, media, append(append([]*candidate(nil), updates...), fresh...))

	for _, c := range updates {
		if meta, ok := photoMeta[c.path]; ok {
			c.dateTaken = meta.DateTaken
		}
		action, err := imp.executeUpdate(ctx, state, media, c)
		if err != nil {
			return err
		}
		summary.record(action)
	}

	imp.nameCandidates(ctx, media, fresh, photoMeta)
	if imp.opts.Interactive {
		var skipped []*candidate
		fresh, skipped, err = imp.confirmGroups(fresh)
		if err != nil {
			return err
		}
		for _, c := range skipped {
			summary.record(Action{Kind: ActionSkip, MediaType: media, Source: c.path, Hash: c.hash, Reason: ReasonSkippedGroup})
		}
	}
	for _, c := range fresh {
		action, err := imp.executeNew(ctx, state, media, c)
		if err != nil {
			return err
		}
		summary.record(action)
	}

	for _, d := range dupes {
		if !imp.opts.DryRun {
			if err := d.index.RecordImport(ctx, d.path, d.hash, ""); err != nil {
				return err
			}
		}
		summary.record(Action{Kind: ActionDuplicate, MediaType: media, Source: d.path, Hash: d.hash})
	}

	logger.Info("batch complete",
		logging.String(logging.FieldEventType, "batch_complete"),
		logging.Group("counts",
			logging.Int("imported", summary.Imported-before.Imported),
			logging.Int("updated", summary.Updated-before.Updated),
			logging.Int("skipped", summary.Skipped-before.Skipped),
			logging.Int("duplicates", summary.Duplicates-before.Duplicates),
		),
	)
	return nil
}

// selectCanonical hashes every file and keeps, per hash, the one with the
// earliest modification time; ties go to the first in chunk order.
// Canonicals are returned in order of first appearance of their hash.
func (imp *Importer) selectCanonical(ctx context.Context, files []string) ([]*candidate, []duplicate, error) {
	var order []string
	byHash := make(map[string][]*candidate)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		info, err := os.Stat(file)
		if err != nil {
			return nil, nil, fmt.Errorf("stat source: %w", err)
		}
		digest, err := hasher.HashFile(file)
		if err != nil {
			return nil, nil, err
		}
		kind := scanner.Classify(file)
		c := &candidate{
			path:  file,
			hash:  digest,
			info:  info,
			kind:  kind,
			index: imp.indexFor(kind),
			root:  imp.rootFor(kind),
		}
		if _, seen := byHash[digest]; !seen {
			order = append(order, digest)
		}
		byHash[digest] = append(byHash[digest], c)
	}

	canonicals := make([]*candidate, 0, len(order))
	var dupes []duplicate
	for _, digest := range order {
		members := byHash[digest]
		best := 0
		for i, member := range members {
			if member.info.ModTime().Before(members[best].info.ModTime()) {
				best = i
			}
		}
		canonicals = append(canonicals, members[best])
		for i, member := range members {
			if i != best {
				dupes = append(dupes, duplicate{path: member.path, hash: digest, index: members[best].index})
			}
		}
	}
	return canonicals, dupes, nil
}

func (imp *Importer) evaluate(ctx context.Context, state *runState, c *candidate) (Decision, error) {
	present, err := imp.hashPresent(ctx, state, c)
	if err != nil {
		return Decision{}, err
	}
	f := facts{
		HashPresent:   present,
		Interactive:   imp.opts.Interactive,
		UpdateEnabled: imp.opts.Update,
	}
	if !f.HashPresent {
		rec, err := c.index.GetImport(ctx, c.path)
		if err != nil {
			return Decision{}, err
		}
		if rec != nil {
			f.HasRecord = true
			c.record = rec
			if rec.FilePath != "" {
				if info, err := os.Stat(filepath.Join(c.root, filepath.FromSlash(rec.FilePath))); err == nil {
					f.TargetExists = true
					f.SourceNewer = c.info.ModTime().After(info.ModTime())
				}
			}
		}
	}

	decision := decide(f)
	if decision.Kind == DecisionConfirmUpdate {
		prompt := fmt.Sprintf("  %s has changed since last import. Update? [y/N]: ", filepath.Base(c.path))
		answer, err := imp.deps.Prompter.Ask(prompt)
		if err != nil {
			return Decision{}, fmt.Errorf("%w: %w", errPromptUnavailable, err)
		}
		decision = confirmUpdate(answer)
	}
	return decision, nil
}

// hashPresent reports whether the target holds the content of c once the
// imports and updates of this run so far are applied. Dry runs only record
// those in state, so rows an update replaced are discounted here.
func (imp *Importer) hashPresent(ctx context.Context, state *runState, c *candidate) (bool, error) {
	target := c.index.Target()
	if state.isPlanned(target, c.hash) {
		return true, nil
	}
	present, err := c.index.HashExists(ctx, c.hash)
	if err != nil || !present {
		return present, err
	}
	replaced := state.replacedPaths(target, c.hash)
	if len(replaced) == 0 {
		return true, nil
	}
	records, err := c.index.GetByHash(ctx, c.hash)
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if _, gone := replaced[rec.FilePath]; !gone {
			return true, nil
		}
	}
	return false, nil
}

func (imp *Importer) photoMetadata(ctx context.Context, media MediaType, cands []*candidate) map[string]metadata.Photo {
	if media != MediaPhotoVideo || len(cands) == 0 {
		return nil
	}
	paths := make([]string, len(cands))
	for i, c := range cands {
		paths[i] = c.path
	}
	return imp.deps.PhotoMetadata.Extract(ctx, paths)
}

// nameCandidates fills dir and name of every Import-New candidate.
func (imp *Importer) nameCandidates(ctx context.Context, media MediaType, cands []*candidate, photoMeta map[string]metadata.Photo) {
	if len(cands) == 0 {
		return
	}
	if media == MediaAudio {
		paths := make([]string, len(cands))
		for i, c := range cands {
			paths[i] = c.path
		}
		tags := imp.deps.AudioMetadata.Extract(ctx, paths)
		for _, c := range cands {
			audio := tags[c.path]
			if imp.deps.Identifier != nil {
				var cache identification.Cache = c.index
				if imp.opts.DryRun {
					cache = readOnlyCache{c.index}
				}
				audio = imp.deps.Identifier.Identify(ctx, c.path, audio, c.hash, cache)
			}
			c.dir, c.name = imp.deps.Namer.SuggestAudio(c.path, audio)
		}
		return
	}
	for _, c := range cands {
		meta := photoMeta[c.path]
		var place string
		if meta.HasGPS() && imp.deps.Geocoder != nil {
			place = imp.deps.Geocoder.Reverse(ctx, meta.GPS.Lat, meta.GPS.Lon)
		}
		c.dir = imp.deps.Namer.SuggestDir(c.path, meta, place)
		c.name = filepath.Base(c.path)
		c.dateTaken = meta.DateTaken
	}
}

type destinationGroup struct {
	root  string
	dir   string
	files []*candidate
}

// confirmGroups asks once per (target, directory) group. Enter accepts,
// "s" skips the group and any other answer becomes the directory of the
// whole group.
func (imp *Importer) confirmGroups(cands []*candidate) (accepted, skipped []*candidate, err error) {
	var groups []*destinationGroup
	index := make(map[[2]string]*destinationGroup)
	for _, c := range cands {
		key := [2]string{c.root, c.dir}
		group, ok := index[key]
		if !ok {
			group = &destinationGroup{root: c.root, dir: c.dir}
			index[key] = group
			groups = append(groups, group)
		}
		group.files = append(group.files, c)
	}

	for _, group := range groups {
		answer, err := imp.deps.Prompter.Ask(groupPrompt(group))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", errPromptUnavailable, err)
		}
		answer = strings.TrimSpace(answer)
		switch {
		case answer == "s":
			skipped = append(skipped, group.files...)
			continue
		case answer != "":
			if dir := cleanRelDir(answer); dir != "" {
				for _, c := range group.files {
					c.dir = dir
				}
			}
		}
		accepted = append(accepted, group.files...)
	}
	return accepted, skipped, nil
}

func groupPrompt(group *destinationGroup) string {
	n := len(group.files)
	names := make([]string, 0, min(n, previewNames))
	for _, c := range group.files[:min(n, previewNames)] {
		names = append(names, filepath.Base(c.path))
	}
	list := strings.Join(names, ", ")
	if n > previewNames {
		list += fmt.Sprintf(", ... +%d more", n-previewNames)
	}
	label := "files"
	if n == 1 {
		label = "file"
	}
	return fmt.Sprintf("  %s/ (%d %s: %s)\n  [Enter=accept, type new name, or 's' to skip]: ", group.dir, n, label, list)
}

// cleanRelDir confines an operator supplied directory to the target.
func cleanRelDir(input string) string {
	cleaned := path.Clean("/" + filepath.ToSlash(input))
	return strings.TrimPrefix(cleaned, "/")
}

func (imp *Importer) executeNew(ctx context.Context, state *runState, media MediaType, c *candidate) (Action, error) {
	dest := organizer.ResolveCollision(filepath.Join(c.root, filepath.FromSlash(c.dir), c.name), state.isReserved)
	state.reserve(dest)
	rel, err := relSlash(c.root, dest)
	if err != nil {
		return Action{}, err
	}

	if !imp.opts.DryRun {
		if err := imp.transfer(c.path, dest); err != nil {
			return Action{}, err
		}
		if err := c.index.Insert(ctx, hashdb.FileRecord{
			Hash:       c.hash,
			FileSize:   c.info.Size(),
			FilePath:   rel,
			DateTaken:  c.dateTaken,
			SourcePath: c.path,
		}); err != nil {
			return Action{}, err
		}
		if err := c.index.RecordImport(ctx, c.path, c.hash, rel); err != nil {
			return Action{}, err
		}
	}
	state.plan(c.index.Target(), c.hash)

	logging.WithContext(ctx, imp.logger).Debug("file imported",
		logging.String("source_path", c.path),
		logging.String("target_path", dest),
		logging.Bool("dry_run", imp.opts.DryRun),
	)
	return Action{Kind: ActionImport, MediaType: media, Source: c.path, Target: dest, Hash: c.hash}, nil
}

// executeUpdate overwrites the recorded target in place and moves the
// index records from the old hash to the new one.
func (imp *Importer) executeUpdate(ctx context.Context, state *runState, media MediaType, c *candidate) (Action, error) {
	rel := c.record.FilePath
	dest := filepath.Join(c.root, filepath.FromSlash(rel))

	if !imp.opts.DryRun {
		if err := imp.transfer(c.path, dest); err != nil {
			return Action{}, err
		}
		if err := c.index.DeleteByHashAndPath(ctx, c.record.Hash, rel); err != nil {
			return Action{}, err
		}
		if err := c.index.Insert(ctx, hashdb.FileRecord{
			Hash:       c.hash,
			FileSize:   c.info.Size(),
			FilePath:   rel,
			DateTaken:  c.dateTaken,
			SourcePath: c.path,
		}); err != nil {
			return Action{}, err
		}
		if err := c.index.UpdateImport(ctx, c.path, c.hash, rel); err != nil {
			return Action{}, err
		}
	}
	state.replace(c.index.Target(), c.record.Hash, rel)
	state.plan(c.index.Target(), c.hash)

	logging.WithContext(ctx, imp.logger).Info("file updated",
		logging.String("source_path", c.path),
		logging.String("target_path", dest),
		logging.Bool("dry_run", imp.opts.DryRun),
	)
	return Action{Kind: ActionUpdate, MediaType: media, Source: c.path, Target: dest, Hash: c.hash}, nil
}

func (imp *Importer) transfer(src, dst string) error {
	if imp.opts.Move {
		return fileutil.MoveFile(src, dst)
	}
	return fileutil.CopyFile(src, dst)
}

func (imp *Importer) indexFor(kind scanner.FileType) Index {
	switch kind {
	case scanner.Video:
		return imp.deps.Videos
	case scanner.Audio:
		return imp.deps.Audio
	default:
		return imp.deps.Images
	}
}

func (imp *Importer) rootFor(kind scanner.FileType) string {
	switch kind {
	case scanner.Video:
		return imp.opts.VideoTarget
	case scanner.Audio:
		return imp.opts.AudioTarget
	default:
		return imp.opts.ImagesTarget
	}
}

func relSlash(root, target string) (string, error) {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return "", fmt.Errorf("relative target path: %w", err)
	}
	return filepath.ToSlash(rel), nil
}
