package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"undisorder/internal/hashdb"
	"undisorder/internal/logging"
	"undisorder/internal/scanner"
	"undisorder/internal/services"
)

// errPromptUnavailable marks a failed operator prompt; it ends the run.
var errPromptUnavailable = errors.New("operator prompt unavailable")

// Importer runs import passes over scanned source trees.
type Importer struct {
	opts   Options
	deps   Dependencies
	logger *slog.Logger
	now    func() time.Time
}

// New validates the collaborators and returns an Importer.
func New(opts Options, deps Dependencies) (*Importer, error) {
	if opts.SourceRoot == "" {
		return nil, errors.New("importer: source root is required")
	}
	if deps.Images == nil || deps.Videos == nil || deps.Audio == nil {
		return nil, errors.New("importer: an index for every target is required")
	}
	if deps.PhotoMetadata == nil || deps.AudioMetadata == nil {
		return nil, errors.New("importer: metadata providers are required")
	}
	if deps.Namer == nil {
		return nil, errors.New("importer: destination namer is required")
	}
	if opts.Interactive && deps.Prompter == nil {
		return nil, errors.New("importer: interactive mode requires a prompter")
	}
	return &Importer{
		opts:   opts,
		deps:   deps,
		logger: logging.NewComponentLogger(deps.Logger, "importer"),
		now:    time.Now,
	}, nil
}

// Run imports the photos and videos of files, then the audio files. Chunk
// failures are logged and counted; the returned error is reserved for
// failures that end the run (index storage errors, cancellation, an
// unusable prompt). The summary is valid in both cases.
func (imp *Importer) Run(ctx context.Context, files scanner.Result) (Summary, error) {
	summary := Summary{DryRun: imp.opts.DryRun}
	state := newRunState()

	phases := []struct {
		media MediaType
		files []string
	}{
		{MediaPhotoVideo, files.PhotosAndVideos()},
		{MediaAudio, files.Audios},
	}
	for _, phase := range phases {
		if len(phase.files) == 0 {
			continue
		}
		if err := imp.runPhase(ctx, state, phase.media, phase.files, &summary); err != nil {
			return summary, err
		}
	}

	if summary.FailedBatches > 0 {
		location := summary.FailureLog
		if location == "" {
			location = "the log output above"
		}
		logging.WarnWithContext(imp.logger, fmt.Sprintf("%d batch(es) failed; see %s", summary.FailedBatches, location), "import_batches_failed",
			logging.Alert("batches_failed"),
			logging.Int("failed_batches", summary.FailedBatches),
			logging.String(logging.FieldImpact, "files in failed batches were not imported"),
			logging.String(logging.FieldErrorHint, "fix the cause and re-run the import"),
		)
	}
	return summary, nil
}

func (imp *Importer) runPhase(ctx context.Context, state *runState, media MediaType, files []string, summary *Summary) error {
	ctx = services.WithMediaType(ctx, string(media))
	groups := groupBySourceDir(imp.opts.SourceRoot, files)
	batches := iterBatches(groups, imp.opts.batchSize(media))

	logger := logging.WithContext(ctx, imp.logger)
	logger.Info("import phase started",
		logging.String(logging.FieldEventType, "phase_start"),
		logging.Int("files", len(files)),
		logging.Int("directories", len(groups)),
		logging.Int("batches", len(batches)),
		logging.Bool("dry_run", imp.opts.DryRun),
	)

	for i, b := range batches {
		if err := ctx.Err(); err != nil {
			return err
		}
		batchCtx := services.WithSourceDir(ctx, b.RelDir)
		err := imp.runBatch(batchCtx, state, media, b, summary)
		if err == nil {
			continue
		}
		if isFatal(err) {
			return fmt.Errorf("batch %d of %s: %w", i+1, b.RelDir, err)
		}
		imp.recordFailure(batchCtx, media, b, err, summary)
	}
	return nil
}

// runBatch is the fault boundary of one chunk.
func (imp *Importer) runBatch(ctx context.Context, state *runState, media MediaType, b batch, summary *Summary) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r, stack: debug.Stack()}
		}
	}()
	return imp.processBatch(ctx, state, media, b, summary)
}

func isFatal(err error) bool {
	return errors.Is(err, hashdb.ErrStorage) ||
		errors.Is(err, hashdb.ErrSchemaMismatch) ||
		errors.Is(err, errPromptUnavailable) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func (imp *Importer) recordFailure(ctx context.Context, media MediaType, b batch, err error, summary *Summary) {
	summary.FailedBatches++
	rec := newFailureRecord(imp.now(), b, media, err)

	logger := logging.WithContext(ctx, imp.logger)
	logging.ErrorWithContext(logger, "batch failed", "batch_failed",
		logging.Error(err),
		logging.String("error_type", rec.ErrorType),
		logging.Int("files", len(b.Files)),
		logging.String(logging.FieldImpact, "remaining files of this batch were not imported"),
		logging.String(logging.FieldErrorHint, "the next run re-evaluates these files"),
	)
	if imp.opts.DryRun || imp.opts.FailureLog == "" {
		return
	}
	if werr := appendFailure(imp.opts.FailureLog, rec); werr != nil {
		logger.Error("failed to write failure log", logging.Error(werr), logging.String("failure_log", imp.opts.FailureLog))
		return
	}
	summary.FailureLog = imp.opts.FailureLog
}

// runState is the cross-chunk memory of one run: hashes written (or, in a
// dry run, planned) per target, (hash, path) rows replaced by updates and
// destination paths claimed so far.
type runState struct {
	planned  map[string]map[string]struct{}
	replaced map[string]map[string]map[string]struct{}
	reserved map[string]struct{}
}

func newRunState() *runState {
	return &runState{
		planned:  make(map[string]map[string]struct{}),
		replaced: make(map[string]map[string]map[string]struct{}),
		reserved: make(map[string]struct{}),
	}
}

func (s *runState) plan(target, hash string) {
	hashes, ok := s.planned[target]
	if !ok {
		hashes = make(map[string]struct{})
		s.planned[target] = hashes
	}
	hashes[hash] = struct{}{}
}

func (s *runState) isPlanned(target, hash string) bool {
	_, ok := s.planned[target][hash]
	return ok
}

func (s *runState) replace(target, hash, relPath string) {
	hashes, ok := s.replaced[target]
	if !ok {
		hashes = make(map[string]map[string]struct{})
		s.replaced[target] = hashes
	}
	paths, ok := hashes[hash]
	if !ok {
		paths = make(map[string]struct{})
		hashes[hash] = paths
	}
	paths[relPath] = struct{}{}
}

func (s *runState) replacedPaths(target, hash string) map[string]struct{} {
	return s.replaced[target][hash]
}

func (s *runState) reserve(path string) {
	s.reserved[path] = struct{}{}
}

func (s *runState) isReserved(path string) bool {
	_, ok := s.reserved[path]
	return ok
}
