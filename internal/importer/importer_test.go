package importer_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"undisorder/internal/config"
	"undisorder/internal/hashdb"
	"undisorder/internal/hasher"
	"undisorder/internal/identification"
	"undisorder/internal/importer"
	"undisorder/internal/importer/mocks"
	"undisorder/internal/logging"
	"undisorder/internal/metadata"
	"undisorder/internal/organizer"
	"undisorder/internal/scanner"
	"undisorder/internal/services/acoustid"
	"undisorder/internal/services/musicbrainz"
	"undisorder/internal/testsupport"
)

var (
	taken = time.Date(2023, 7, 14, 10, 30, 0, 0, time.Local)
	older = time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local)
	newer = time.Date(2024, 1, 2, 8, 0, 0, 0, time.Local)
)

type harness struct {
	t      *testing.T
	cfg    *config.Config
	source string
	ctrl   *gomock.Controller

	images *hashdb.Store
	videos *hashdb.Store
	audio  *hashdb.Store
	photos *mocks.MockPhotoMetadataProvider
}

func newHarness(t *testing.T, opts ...testsupport.ConfigOption) *harness {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	ctrl := gomock.NewController(t)
	h := &harness{
		t:      t,
		cfg:    cfg,
		source: filepath.Join(testsupport.BaseDir(cfg), "source"),
		ctrl:   ctrl,
		images: testsupport.MustOpenIndex(t, cfg, cfg.Paths.ImagesTarget),
		videos: testsupport.MustOpenIndex(t, cfg, cfg.Paths.VideoTarget),
		audio:  testsupport.MustOpenIndex(t, cfg, cfg.Paths.AudioTarget),
		photos: mocks.NewMockPhotoMetadataProvider(ctrl),
	}
	return h
}

// dated makes every photo appear to have been taken at when.
func (h *harness) dated(when time.Time) {
	h.photos.EXPECT().Extract(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, paths []string) map[string]metadata.Photo {
			out := make(map[string]metadata.Photo, len(paths))
			for _, p := range paths {
				out[p] = metadata.Photo{DateTaken: &when}
			}
			return out
		}).AnyTimes()
}

func (h *harness) write(rel, content string, mtime time.Time) string {
	path := filepath.Join(h.source, filepath.FromSlash(rel))
	testsupport.WriteFileAt(h.t, path, content, mtime)
	return path
}

func (h *harness) options() importer.Options {
	return importer.OptionsFromConfig(h.cfg, h.source)
}

func (h *harness) deps() importer.Dependencies {
	return importer.Dependencies{
		Images:        h.images,
		Videos:        h.videos,
		Audio:         h.audio,
		PhotoMetadata: h.photos,
		AudioMetadata: metadata.NewTagProvider(logging.NewNop()),
		Namer:         organizer.NewNamer(),
		Logger:        logging.NewNop(),
	}
}

func (h *harness) run(opts importer.Options, deps importer.Dependencies) (importer.Summary, error) {
	h.t.Helper()
	imp, err := importer.New(opts, deps)
	if err != nil {
		h.t.Fatalf("importer.New: %v", err)
	}
	files, err := scanner.Scan(context.Background(), h.source)
	if err != nil {
		h.t.Fatalf("scan: %v", err)
	}
	return imp.Run(context.Background(), files)
}

func (h *harness) mustRun(opts importer.Options, deps importer.Dependencies) importer.Summary {
	h.t.Helper()
	summary, err := h.run(opts, deps)
	if err != nil {
		h.t.Fatalf("Run returned error: %v", err)
	}
	return summary
}

func mustHash(t *testing.T, path string) string {
	t.Helper()
	digest, err := hasher.HashFile(path)
	if err != nil {
		t.Fatalf("hash %s: %v", path, err)
	}
	return digest
}

func mustCount(t *testing.T, store *hashdb.Store) int {
	t.Helper()
	n, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestRunImportsEveryMediaKind(t *testing.T) {
	h := newHarness(t)
	h.dated(taken)
	h.write("vacation/beach.jpg", "beach", older)
	h.write("vacation/clip.mp4", "clip", older)
	h.write("vacation/song.mp3", "not really audio", older)

	summary := h.mustRun(h.options(), h.deps())

	if summary.Imported != 3 || summary.Skipped != 0 || summary.FailedBatches != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	photo := filepath.Join(h.cfg.Paths.ImagesTarget, "2023", "2023-07_vacation", "beach.jpg")
	if got := testsupport.ReadFile(t, photo); got != "beach" {
		t.Fatalf("unexpected photo content %q", got)
	}
	video := filepath.Join(h.cfg.Paths.VideoTarget, "2023", "2023-07_vacation", "clip.mp4")
	if _, err := os.Stat(video); err != nil {
		t.Fatalf("expected video at %s: %v", video, err)
	}
	song := filepath.Join(h.cfg.Paths.AudioTarget, "Unknown Artist", "Unknown Album", "song.mp3")
	if _, err := os.Stat(song); err != nil {
		t.Fatalf("expected audio at %s: %v", song, err)
	}
	for name, store := range map[string]*hashdb.Store{"images": h.images, "videos": h.videos, "audio": h.audio} {
		if n := mustCount(t, store); n != 1 {
			t.Fatalf("%s: expected 1 record, got %d", name, n)
		}
	}

	rec, err := h.images.GetImport(context.Background(), filepath.Join(h.source, "vacation", "beach.jpg"))
	if err != nil || rec == nil {
		t.Fatalf("expected import record, got %v %v", rec, err)
	}
	if rec.FilePath != "2023/2023-07_vacation/beach.jpg" {
		t.Fatalf("unexpected recorded path %q", rec.FilePath)
	}
	if _, err := os.Stat(filepath.Join(h.source, "vacation", "beach.jpg")); err != nil {
		t.Fatalf("copy mode must keep the source: %v", err)
	}
}

func TestRunKeepsOldestCopyAndRecordsDuplicates(t *testing.T) {
	h := newHarness(t)
	h.dated(taken)
	late := h.write("trip/a.jpg", "same bytes", newer)
	early := h.write("trip/a_copy.jpg", "same bytes", older)

	summary := h.mustRun(h.options(), h.deps())

	if summary.Imported != 1 || summary.Duplicates != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if _, err := os.Stat(filepath.Join(h.cfg.Paths.ImagesTarget, "2023", "2023-07_trip", "a_copy.jpg")); err != nil {
		t.Fatalf("expected oldest copy imported: %v", err)
	}
	rec, err := h.images.GetImport(context.Background(), late)
	if err != nil || rec == nil {
		t.Fatalf("expected duplicate import record, got %v %v", rec, err)
	}
	if rec.FilePath != "" || rec.Hash != mustHash(t, early) {
		t.Fatalf("unexpected duplicate record: %+v", rec)
	}
	if n := mustCount(t, h.images); n != 1 {
		t.Fatalf("expected 1 file record, got %d", n)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.dated(taken)
	h.write("trip/a.jpg", "one", older)
	h.write("trip/b.jpg", "two", older)

	h.mustRun(h.options(), h.deps())
	second := h.mustRun(h.options(), h.deps())

	if second.Imported != 0 || second.Updated != 0 {
		t.Fatalf("second run must not import: %+v", second)
	}
	if second.SkipReasons[importer.ReasonAlreadyPresent] != 2 {
		t.Fatalf("expected two already present skips, got %v", second.SkipReasons)
	}
	if n := mustCount(t, h.images); n != 2 {
		t.Fatalf("expected 2 file records, got %d", n)
	}
}

func TestRunUpdatesChangedSource(t *testing.T) {
	h := newHarness(t)
	h.dated(taken)
	src := h.write("trip/a.jpg", "first edit", older)
	h.mustRun(h.options(), h.deps())

	target := filepath.Join(h.cfg.Paths.ImagesTarget, "2023", "2023-07_trip", "a.jpg")
	testsupport.SetModTime(t, target, older)
	oldHash := mustHash(t, src)
	testsupport.WriteFileAt(t, src, "second edit", newer)
	newHash := mustHash(t, src)

	skipped := h.mustRun(h.options(), h.deps())
	if skipped.SkipReasons[importer.ReasonUpdateDisabled] != 1 {
		t.Fatalf("expected update to be refused without --update: %+v", skipped)
	}

	opts := h.options()
	opts.Update = true
	summary := h.mustRun(opts, h.deps())
	if summary.Updated != 1 || summary.Imported != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if got := testsupport.ReadFile(t, target); got != "second edit" {
		t.Fatalf("target not overwritten, got %q", got)
	}

	ctx := context.Background()
	if ok, _ := h.images.HashExists(ctx, oldHash); ok {
		t.Fatal("old hash must be removed from the index")
	}
	if ok, _ := h.images.HashExists(ctx, newHash); !ok {
		t.Fatal("new hash must be indexed")
	}
	rec, err := h.images.GetImport(ctx, src)
	if err != nil || rec == nil || rec.Hash != newHash || rec.FilePath != "2023/2023-07_trip/a.jpg" {
		t.Fatalf("unexpected import record after update: %+v %v", rec, err)
	}
	if n := mustCount(t, h.images); n != 1 {
		t.Fatalf("expected exactly one file record, got %d", n)
	}
}

func TestRunSkipsRecordWhoseTargetIsGone(t *testing.T) {
	h := newHarness(t)
	h.dated(taken)
	src := h.write("trip/a.jpg", "v1", older)
	h.mustRun(h.options(), h.deps())

	target := filepath.Join(h.cfg.Paths.ImagesTarget, "2023", "2023-07_trip", "a.jpg")
	if err := os.Remove(target); err != nil {
		t.Fatalf("remove target: %v", err)
	}
	testsupport.WriteFileAt(t, src, "v2", newer)

	opts := h.options()
	opts.Update = true
	summary := h.mustRun(opts, h.deps())
	if summary.SkipReasons[importer.ReasonNotNewer] != 1 || summary.Imported != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunDryRunWritesNothing(t *testing.T) {
	h := newHarness(t, testsupport.WithBatchSizes(1, 1))
	h.dated(taken)
	h.write("x/a.jpg", "shared", older)
	h.write("y/a.jpg", "shared", older)
	h.write("y/b.jpg", "other", older)

	opts := h.options()
	opts.DryRun = true
	summary := h.mustRun(opts, h.deps())

	if summary.Imported != 2 || summary.SkipReasons[importer.ReasonAlreadyPresent] != 1 {
		t.Fatalf("expected the second copy to be skipped within the run: %+v", summary)
	}
	if _, err := os.Stat(h.cfg.Paths.ImagesTarget); !os.IsNotExist(err) {
		t.Fatalf("dry run must not create the target, stat err=%v", err)
	}
	if n := mustCount(t, h.images); n != 0 {
		t.Fatalf("dry run must not write the index, got %d records", n)
	}

	var out bytes.Buffer
	if err := importer.WritePlan(&out, summary.Actions); err != nil {
		t.Fatalf("WritePlan: %v", err)
	}
	if !strings.Contains(out.String(), "2023-07_y/ (1 file)") || !strings.Contains(out.String(), "    b.jpg") {
		t.Fatalf("unexpected plan:\n%s", out.String())
	}
}

type plannedAction struct {
	kind   importer.ActionKind
	source string
	target string
	reason importer.Reason
}

func plannedActions(actions []importer.Action) []plannedAction {
	out := make([]plannedAction, len(actions))
	for i, a := range actions {
		out[i] = plannedAction{kind: a.Kind, source: a.Source, target: a.Target, reason: a.Reason}
	}
	return out
}

func TestRunDryRunMatchesRealRunAfterUpdate(t *testing.T) {
	h := newHarness(t)
	h.dated(taken)
	edited := h.write("a/b/x.jpg", "v1", older)
	h.mustRun(h.options(), h.deps())

	rec, err := h.images.GetImport(context.Background(), edited)
	if err != nil || rec == nil {
		t.Fatalf("expected import record, got %v %v", rec, err)
	}
	testsupport.SetModTime(t, filepath.Join(h.cfg.Paths.ImagesTarget, filepath.FromSlash(rec.FilePath)), older)
	testsupport.WriteFileAt(t, edited, "v2", newer)
	h.write("c/y.jpg", "v1", older)

	opts := h.options()
	opts.Update = true
	dry := opts
	dry.DryRun = true

	planned := h.mustRun(dry, h.deps())
	applied := h.mustRun(opts, h.deps())

	if planned.Updated != 1 || planned.Imported != 1 {
		t.Fatalf("dry run must import content an update replaced: %+v", planned)
	}
	got, want := plannedActions(planned.Actions), plannedActions(applied.Actions)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("dry run diverged from real run:\ndry:  %v\nreal: %v", got, want)
	}
}

type stubAcoustID struct{}

func (stubAcoustID) Fingerprint(context.Context, string) (acoustid.Fingerprint, error) {
	return acoustid.Fingerprint{Duration: 201, Fingerprint: "AQADfp"}, nil
}

func (stubAcoustID) Lookup(context.Context, acoustid.Fingerprint) (string, error) {
	return "rec-1", nil
}

type stubMusicBrainz struct{}

func (stubMusicBrainz) Recording(context.Context, string) (*musicbrainz.Recording, error) {
	return &musicbrainz.Recording{ID: "rec-1", Artist: "Found Artist", Album: "Found Album", Title: "Found Title", TrackNumber: 3}, nil
}

func TestRunDryRunDoesNotCacheIdentification(t *testing.T) {
	h := newHarness(t)
	song := h.write("music/song.mp3", "audio bytes", older)
	hash := mustHash(t, song)

	deps := h.deps()
	deps.Identifier = identification.NewIdentifierWithDependencies(true, stubAcoustID{}, stubMusicBrainz{}, logging.NewNop())

	opts := h.options()
	opts.DryRun = true
	summary := h.mustRun(opts, deps)

	want := filepath.Join(h.cfg.Paths.AudioTarget, "Found Artist", "Found Album", "03_Found Title.mp3")
	if summary.Imported != 1 || summary.Actions[0].Target != want {
		t.Fatalf("expected identified destination %q, got %+v", want, summary.Actions)
	}
	ctx := context.Background()
	if entry, err := h.audio.GetIdentification(ctx, hash); err != nil || entry != nil {
		t.Fatalf("dry run must not cache identifications, got %+v %v", entry, err)
	}

	h.mustRun(h.options(), deps)
	if entry, err := h.audio.GetIdentification(ctx, hash); err != nil || entry == nil || entry.ExternalID != "rec-1" {
		t.Fatalf("expected identification cached by a real run, got %+v %v", entry, err)
	}
}

func TestRunRecordsCrossKindDuplicateInCanonicalIndex(t *testing.T) {
	h := newHarness(t)
	h.dated(taken)
	photo := h.write("trip/clip.jpg", "same bytes", older)
	video := h.write("trip/clip.mov", "same bytes", newer)

	summary := h.mustRun(h.options(), h.deps())
	if summary.Imported != 1 || summary.Duplicates != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	ctx := context.Background()
	rec, err := h.images.GetImport(ctx, video)
	if err != nil || rec == nil || rec.Hash != mustHash(t, photo) {
		t.Fatalf("expected duplicate recorded in the images index, got %+v %v", rec, err)
	}
	if n, err := h.videos.ImportCount(ctx); err != nil || n != 0 {
		t.Fatalf("video index must stay empty, got %d %v", n, err)
	}
}

func TestRunResolvesNameCollisions(t *testing.T) {
	h := newHarness(t)
	h.dated(taken)
	h.write("trip/a/pic.jpg", "first", older)
	h.write("trip/b/pic.jpg", "second", older)

	deps := h.deps()
	namer := mocks.NewMockDestinationNamer(h.ctrl)
	namer.EXPECT().SuggestDir(gomock.Any(), gomock.Any(), gomock.Any()).Return("shared").Times(2)
	deps.Namer = namer

	summary := h.mustRun(h.options(), deps)
	if summary.Imported != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	for _, name := range []string{"pic.jpg", "pic_1.jpg"} {
		if _, err := os.Stat(filepath.Join(h.cfg.Paths.ImagesTarget, "shared", name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}

func TestRunMoveRemovesSources(t *testing.T) {
	h := newHarness(t)
	h.dated(taken)
	src := h.write("trip/a.jpg", "moved", older)

	opts := h.options()
	opts.Move = true
	h.mustRun(opts, h.deps())

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("expected source removed, stat err=%v", err)
	}
	if got := testsupport.ReadFile(t, filepath.Join(h.cfg.Paths.ImagesTarget, "2023", "2023-07_trip", "a.jpg")); got != "moved" {
		t.Fatalf("unexpected target content %q", got)
	}
}

func TestRunIsolatesFailingBatch(t *testing.T) {
	h := newHarness(t)
	h.write("broken/x.jpg", "x", older)
	h.write("good/y.jpg", "y", older)
	h.photos.EXPECT().Extract(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, paths []string) map[string]metadata.Photo {
			if strings.Contains(paths[0], "broken") {
				panic("corrupt metadata")
			}
			return map[string]metadata.Photo{paths[0]: {DateTaken: &taken}}
		}).Times(2)

	summary := h.mustRun(h.options(), h.deps())
	if summary.FailedBatches != 1 || summary.Imported != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.FailureLog != h.cfg.Paths.FailureLog {
		t.Fatalf("expected failure log location, got %q", summary.FailureLog)
	}

	records, err := importer.ReadFailures(h.cfg.Paths.FailureLog)
	if err != nil {
		t.Fatalf("ReadFailures: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one failure record, got %d", len(records))
	}
	rec := records[0]
	if rec.SourceDir != "broken" || rec.ErrorType != importer.ErrorTypePanic || rec.MediaType != "photo_video" {
		t.Fatalf("unexpected failure record: %+v", rec)
	}
	if len(rec.Files) != 1 || !strings.HasSuffix(rec.Files[0], "x.jpg") || rec.Traceback == "" {
		t.Fatalf("unexpected failure record files: %+v", rec)
	}
}

func TestRunStopsOnStorageError(t *testing.T) {
	h := newHarness(t)
	h.dated(taken)
	h.write("trip/a.jpg", "a", older)

	broken := mocks.NewMockIndex(h.ctrl)
	broken.EXPECT().Target().Return("/broken").AnyTimes()
	broken.EXPECT().HashExists(gomock.Any(), gomock.Any()).Return(false, fmt.Errorf("%w: disk I/O error", hashdb.ErrStorage))

	deps := h.deps()
	deps.Images = broken
	summary, err := h.run(h.options(), deps)
	if !errors.Is(err, hashdb.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if summary.FailedBatches != 0 {
		t.Fatalf("storage errors must not be logged as batch failures: %+v", summary)
	}
	if records, _ := importer.ReadFailures(h.cfg.Paths.FailureLog); len(records) != 0 {
		t.Fatalf("expected empty failure log, got %d records", len(records))
	}
}

func TestRunInteractiveGroupPrompt(t *testing.T) {
	h := newHarness(t)
	h.dated(taken)
	h.write("trip/a.jpg", "a", older)
	h.write("trip/b.jpg", "b", older)

	var prompts []string
	prompter := mocks.NewMockPrompter(h.ctrl)
	prompter.EXPECT().Ask(gomock.Any()).DoAndReturn(func(prompt string) (string, error) {
		prompts = append(prompts, prompt)
		return "../../Holiday 2023", nil
	})

	opts := h.options()
	opts.Interactive = true
	deps := h.deps()
	deps.Prompter = prompter
	summary := h.mustRun(opts, deps)

	if summary.Imported != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	want := "  2023/2023-07_trip/ (2 files: a.jpg, b.jpg)\n  [Enter=accept, type new name, or 's' to skip]: "
	if len(prompts) != 1 || prompts[0] != want {
		t.Fatalf("unexpected prompts: %q", prompts)
	}
	if _, err := os.Stat(filepath.Join(h.cfg.Paths.ImagesTarget, "Holiday 2023", "a.jpg")); err != nil {
		t.Fatalf("expected renamed group inside the target: %v", err)
	}
}

func TestRunInteractiveSkipGroup(t *testing.T) {
	h := newHarness(t)
	h.dated(taken)
	h.write("trip/a.jpg", "a", older)

	prompter := mocks.NewMockPrompter(h.ctrl)
	prompter.EXPECT().Ask(gomock.Any()).Return("s", nil)

	opts := h.options()
	opts.Interactive = true
	deps := h.deps()
	deps.Prompter = prompter
	summary := h.mustRun(opts, deps)

	if summary.Imported != 0 || summary.SkipReasons[importer.ReasonSkippedGroup] != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if n := mustCount(t, h.images); n != 0 {
		t.Fatalf("expected nothing indexed, got %d", n)
	}
}

func TestRunInteractiveConfirmsUpdate(t *testing.T) {
	h := newHarness(t)
	h.dated(taken)
	src := h.write("trip/a.jpg", "v1", older)
	h.mustRun(h.options(), h.deps())
	testsupport.SetModTime(t, filepath.Join(h.cfg.Paths.ImagesTarget, "2023", "2023-07_trip", "a.jpg"), older)
	testsupport.WriteFileAt(t, src, "v2", newer)

	prompter := mocks.NewMockPrompter(h.ctrl)
	prompter.EXPECT().Ask("  a.jpg has changed since last import. Update? [y/N]: ").Return("y", nil)

	opts := h.options()
	opts.Interactive = true
	deps := h.deps()
	deps.Prompter = prompter
	summary := h.mustRun(opts, deps)
	if summary.Updated != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunPromptFailureEndsRun(t *testing.T) {
	h := newHarness(t)
	h.dated(taken)
	h.write("trip/a.jpg", "a", older)

	prompter := mocks.NewMockPrompter(h.ctrl)
	prompter.EXPECT().Ask(gomock.Any()).Return("", errors.New("stdin closed"))

	opts := h.options()
	opts.Interactive = true
	deps := h.deps()
	deps.Prompter = prompter
	if _, err := h.run(opts, deps); err == nil {
		t.Fatal("expected prompt failure to end the run")
	}
}

func TestRunIdentifiesAudioAndGeocodesPhotos(t *testing.T) {
	h := newHarness(t)
	song := h.write("DCIM/track.mp3", "audio bytes", older)
	photo := h.write("DCIM/IMG_0001.jpg", "photo bytes", older)
	h.photos.EXPECT().Extract(gomock.Any(), []string{photo}).Return(map[string]metadata.Photo{
		photo: {DateTaken: &taken, GPS: &metadata.Coordinates{Lat: 52.52, Lon: 13.405}},
	})

	geocoder := mocks.NewMockGeocoder(h.ctrl)
	geocoder.EXPECT().Reverse(gomock.Any(), 52.52, 13.405).Return("Berlin")

	identifier := mocks.NewMockIdentifier(h.ctrl)
	identifier.EXPECT().Identify(gomock.Any(), song, metadata.Audio{}, mustHash(t, song), h.audio).
		Return(metadata.Audio{Artist: "Band", Album: "Record", Title: "Opener", TrackNumber: 3})

	deps := h.deps()
	deps.Geocoder = geocoder
	deps.Identifier = identifier
	summary := h.mustRun(h.options(), deps)
	if summary.Imported != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if _, err := os.Stat(filepath.Join(h.cfg.Paths.ImagesTarget, "2023", "2023-07_Berlin", "IMG_0001.jpg")); err != nil {
		t.Fatalf("expected geocoded directory: %v", err)
	}
	if _, err := os.Stat(filepath.Join(h.cfg.Paths.AudioTarget, "Band", "Record", "03_Opener.mp3")); err != nil {
		t.Fatalf("expected identified audio path: %v", err)
	}
}

func TestNewRejectsIncompleteDependencies(t *testing.T) {
	h := newHarness(t)
	deps := h.deps()
	deps.Audio = nil
	if _, err := importer.New(h.options(), deps); err == nil {
		t.Fatal("expected missing index to be rejected")
	}

	opts := h.options()
	opts.Interactive = true
	if _, err := importer.New(opts, h.deps()); err == nil {
		t.Fatal("expected interactive run without prompter to be rejected")
	}
}
