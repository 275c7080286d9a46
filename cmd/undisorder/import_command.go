package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"undisorder/internal/config"
	"undisorder/internal/geocoder"
	"undisorder/internal/identification"
	"undisorder/internal/importer"
	"undisorder/internal/logging"
	"undisorder/internal/metadata"
	"undisorder/internal/notifications"
	"undisorder/internal/organizer"
	"undisorder/internal/preflight"
	"undisorder/internal/scanner"
	"undisorder/internal/services"
)

type importFlags struct {
	imagesTarget string
	videoTarget  string
	audioTarget  string
	dryRun       bool
	move         bool
	update       bool
	interactive  bool
	selectDirs   bool
	geocoding    string
	identify     bool
	acoustIDKey  string
	exclude      []string
	excludeDir   []string
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import SOURCE",
		Short: "Import files from SOURCE into the organized collections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg, err := flags.apply(cmd, base)
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cfg)
			if err != nil {
				return err
			}
			return runImport(cmd, cfg, args[0], logger)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.imagesTarget, "images-target", "", "Target directory for photos")
	f.StringVar(&flags.videoTarget, "video-target", "", "Target directory for videos")
	f.StringVar(&flags.audioTarget, "audio-target", "", "Target directory for audio")
	f.BoolVar(&flags.dryRun, "dry-run", false, "Show the plan without copying or writing the index")
	f.BoolVar(&flags.move, "move", false, "Move instead of copy")
	f.BoolVar(&flags.update, "update", false, "Re-import files whose source is newer than the previous import")
	f.BoolVar(&flags.interactive, "interactive", false, "Confirm directory suggestions and updates")
	f.BoolVar(&flags.selectDirs, "select", false, "Choose source directories before importing")
	f.StringVar(&flags.geocoding, "geocoding", "", "GPS reverse geocoding mode (off, offline, online)")
	f.BoolVar(&flags.identify, "identify", false, "Look up incompletely tagged audio via AcoustID")
	f.StringVar(&flags.acoustIDKey, "acoustid-key", "", "AcoustID API key (or ACOUSTID_API_KEY)")
	f.StringArrayVar(&flags.exclude, "exclude", nil, "Glob pattern of files to skip (repeatable)")
	f.StringArrayVar(&flags.excludeDir, "exclude-dir", nil, "Glob pattern of directories to skip (repeatable)")
	return cmd
}

// apply layers the command line over the loaded configuration and returns a
// validated copy.
func (f importFlags) apply(cmd *cobra.Command, base *config.Config) (*config.Config, error) {
	cfg := *base
	cfg.Filter.Exclude = append([]string(nil), base.Filter.Exclude...)
	cfg.Filter.ExcludeDir = append([]string(nil), base.Filter.ExcludeDir...)

	changed := cmd.Flags().Changed
	for _, target := range []struct {
		flag  string
		value string
		dst   *string
	}{
		{"images-target", f.imagesTarget, &cfg.Paths.ImagesTarget},
		{"video-target", f.videoTarget, &cfg.Paths.VideoTarget},
		{"audio-target", f.audioTarget, &cfg.Paths.AudioTarget},
	} {
		if !changed(target.flag) {
			continue
		}
		expanded, err := config.ExpandPath(target.value)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", target.flag, err)
		}
		*target.dst = expanded
	}
	if changed("dry-run") {
		cfg.Import.DryRun = f.dryRun
	}
	if changed("move") {
		cfg.Import.Move = f.move
	}
	if changed("update") {
		cfg.Import.Update = f.update
	}
	if changed("interactive") {
		cfg.Import.Interactive = f.interactive
	}
	if changed("select") {
		cfg.Import.Select = f.selectDirs
	}
	if changed("geocoding") {
		cfg.Geocoding.Mode = strings.ToLower(strings.TrimSpace(f.geocoding))
	}
	if changed("identify") {
		cfg.Identify.Enabled = f.identify
	}
	if changed("acoustid-key") {
		cfg.Identify.AcoustIDAPIKey = strings.TrimSpace(f.acoustIDKey)
	}
	cfg.MergeFilters(f.exclude, f.excludeDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func runImport(cmd *cobra.Command, cfg *config.Config, sourceArg string, logger *slog.Logger) error {
	out := cmd.OutOrStdout()
	in := cmd.InOrStdin()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	source, err := config.ExpandPath(sourceArg)
	if err != nil {
		return fmt.Errorf("resolve source: %w", err)
	}
	if cfg.Import.Interactive {
		if err := requireTerminal(in, "--interactive"); err != nil {
			return err
		}
	}
	if cfg.Import.Select {
		if err := requireTerminal(in, "--select"); err != nil {
			return err
		}
	}

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "cli"))

	fmt.Fprintf(out, "Scanning %s ...\n", source)
	result, err := scanner.Scan(ctx, source)
	if err != nil {
		return err
	}
	if before := result.Total(); len(cfg.Filter.Exclude) > 0 || len(cfg.Filter.ExcludeDir) > 0 {
		result = scanner.ApplyExcludes(result, source, cfg.Filter.Exclude, cfg.Filter.ExcludeDir)
		if excluded := before - result.Total(); excluded > 0 {
			fmt.Fprintf(out, "Excluded %d file(s) by pattern.\n", excluded)
		}
	}

	prompter := newLinePrompter(in, out)
	if cfg.Import.Select {
		groups := scanner.GroupByDirectory(result, source)
		if len(groups) == 0 {
			fmt.Fprintln(out, "No files to select from.")
			return nil
		}
		fmt.Fprintf(out, "\nFound files in %s:\n\n", pluralize(len(groups), "directory", "directories"))
		accepted, err := scanner.Select(groups, prompter, out)
		if errors.Is(err, scanner.ErrQuit) {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
		if err != nil {
			return err
		}
		result = scanner.KeepDirectories(result, source, accepted)
		fmt.Fprintf(out, "Selected %d file(s) for import.\n\n", result.Total())
	}

	if len(result.Photos)+len(result.Videos)+len(result.Audios) == 0 {
		fmt.Fprintln(out, "No media files found.")
		return nil
	}
	fmt.Fprintf(out, "Found %d photos, %d videos, %d audio files.\n", len(result.Photos), len(result.Videos), len(result.Audios))

	if !cfg.Import.DryRun {
		results := append(preflight.RunAll(cfg), spaceChecks(cfg, result)...)
		if failed := preflight.Failed(results); len(failed) > 0 {
			fmt.Fprintln(out, renderPreflight(out, results))
			return fmt.Errorf("preflight failed: %d check(s) did not pass", len(failed))
		}
	}

	unlock, err := lockIndex(cfg)
	if err != nil {
		return err
	}
	defer unlock()

	indexes, err := openIndexes(ctx, cfg)
	if err != nil {
		return err
	}
	defer indexes.Close()

	deps := importer.Dependencies{
		Images:        indexes.images,
		Videos:        indexes.videos,
		Audio:         indexes.audio,
		PhotoMetadata: metadata.NewPhotoProvider("exiftool", logger),
		AudioMetadata: metadata.NewTagProvider(logger),
		Namer:         organizer.NewNamer(),
		Logger:        logger,
	}
	if cfg.Import.Interactive {
		deps.Prompter = prompter
	}
	if geo := geocoder.New(cfg.Geocoding, logger); geo.Enabled() {
		deps.Geocoder = geo
	}
	if ident := identification.NewIdentifier(cfg.Identify, logger); ident.Enabled() {
		deps.Identifier = ident
	} else if cfg.Identify.Enabled {
		logging.WarnWithContext(logger, "audio identification disabled", "identify_disabled",
			logging.String(logging.FieldImpact, "incompletely tagged audio is named from its tags only"),
			logging.String(logging.FieldErrorHint, "set identify.acoustid_api_key or ACOUSTID_API_KEY"),
		)
	}

	imp, err := importer.New(importer.OptionsFromConfig(cfg, source), deps)
	if err != nil {
		return err
	}
	logger.Info("import started",
		logging.String(logging.FieldEventType, "import_start"),
		logging.String("source", source),
		logging.Bool("dry_run", cfg.Import.DryRun),
		logging.Bool("move", cfg.Import.Move),
	)
	started := time.Now()
	summary, runErr := imp.Run(ctx, result)
	elapsed := time.Since(started)
	logger.Info("import finished",
		logging.String(logging.FieldEventType, "import_complete"),
		logging.Group("counts",
			logging.Int("imported", summary.Imported),
			logging.Int("updated", summary.Updated),
			logging.Int("skipped", summary.Skipped),
			logging.Int("duplicates", summary.Duplicates),
		),
		logging.Int("failed_batches", summary.FailedBatches),
		logging.Duration("elapsed", elapsed),
		logging.Bool("completed", runErr == nil),
	)
	printSummary(out, summary)
	notify(ctx, cfg, logger, source, summary, elapsed, runErr)
	return runErr
}

func notify(ctx context.Context, cfg *config.Config, logger *slog.Logger, source string, summary importer.Summary, elapsed time.Duration, runErr error) {
	svc := notifications.NewService(cfg.Notifications)
	var err error
	if runErr != nil {
		err = svc.NotifyError(ctx, runErr, "import of "+source)
	} else {
		err = svc.NotifyImportCompleted(ctx, notifications.ImportReport{
			Source:        source,
			DryRun:        summary.DryRun,
			Imported:      summary.Imported,
			Updated:       summary.Updated,
			Skipped:       summary.Skipped,
			Duplicates:    summary.Duplicates,
			FailedBatches: summary.FailedBatches,
			FailureLog:    summary.FailureLog,
			Duration:      elapsed,
		})
	}
	if err != nil {
		logging.WarnWithContext(logger, "import notification failed", "notification_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "no completion message was delivered"),
			logging.String(logging.FieldErrorHint, "check notifications.ntfy_topic"),
		)
	}
}

// spaceChecks requires enough free space in each target for the files
// headed there.
func spaceChecks(cfg *config.Config, result scanner.Result) []preflight.Result {
	if cfg.Import.Move {
		return nil
	}
	checks := []struct {
		name   string
		target string
		files  []string
	}{
		{"Images target space", cfg.Paths.ImagesTarget, result.Photos},
		{"Video target space", cfg.Paths.VideoTarget, result.Videos},
		{"Audio target space", cfg.Paths.AudioTarget, result.Audios},
	}
	var out []preflight.Result
	for _, check := range checks {
		if len(check.files) == 0 {
			continue
		}
		var total int64
		for _, file := range check.files {
			if info, err := os.Stat(file); err == nil {
				total += info.Size()
			}
		}
		out = append(out, preflight.CheckFreeSpace(check.name, check.target, total))
	}
	return out
}

func renderPreflight(out io.Writer, results []preflight.Result) string {
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		status := "ok"
		if !result.Passed {
			status = "FAILED"
		}
		rows = append(rows, []string{result.Name, status, result.Detail})
	}
	return renderTable(out, []string{"Check", "Status", "Detail"}, rows, nil)
}

func printSummary(out io.Writer, summary importer.Summary) {
	if summary.DryRun {
		fmt.Fprintln(out, "\nDry run, nothing was written. Planned changes:")
		_ = importer.WritePlan(out, summary.Actions)
	}

	rows := [][]string{
		{"Imported", strconv.Itoa(summary.Imported)},
		{"Updated", strconv.Itoa(summary.Updated)},
		{"Skipped", strconv.Itoa(summary.Skipped)},
		{"Duplicates", strconv.Itoa(summary.Duplicates)},
		{"Failed batches", strconv.Itoa(summary.FailedBatches)},
	}
	reasons := make([]string, 0, len(summary.SkipReasons))
	for reason := range summary.SkipReasons {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		rows = append(rows, []string{"  skipped: " + reason, strconv.Itoa(summary.SkipReasons[importer.Reason(reason)])})
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable(out, []string{"Result", "Files"}, rows, []columnAlignment{alignLeft, alignRight}))
	if summary.FailedBatches > 0 && summary.FailureLog != "" {
		fmt.Fprintf(out, "Failure details: %s\n", summary.FailureLog)
	}
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
