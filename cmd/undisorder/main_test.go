package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"undisorder/internal/config"
	"undisorder/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	source     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("ACOUSTID_API_KEY", "")
	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		source:     filepath.Join(base, "source"),
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nimages_target = %q\nvideo_target = %q\naudio_target = %q\nindex_path = %q\nfailure_log = %q\n\n[logging]\nlevel = \"error\"\n",
		cfg.Paths.ImagesTarget,
		cfg.Paths.VideoTarget,
		cfg.Paths.AudioTarget,
		cfg.Paths.IndexPath,
		cfg.Paths.FailureLog,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestImportCopiesIntoTargets(t *testing.T) {
	env := setupCLITestEnv(t)
	mtime := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	testsupport.WriteFileAt(t, filepath.Join(env.source, "trip", "a.jpg"), "photo", mtime)
	testsupport.WriteFileAt(t, filepath.Join(env.source, "trip", "b.jpg"), "photo", mtime.Add(time.Hour))
	testsupport.WriteFileAt(t, filepath.Join(env.source, "trip", "notes.txt"), "text", mtime)

	out, _, err := runCLI(t, "", "--config", env.configPath, "import", env.source)
	if err != nil {
		t.Fatalf("import failed: %v\n%s", err, out)
	}
	requireContains(t, out, "Found 2 photos, 0 videos, 0 audio files.")
	requireContains(t, out, "Imported")
	requireContains(t, out, "Duplicates")

	target := filepath.Join(env.cfg.Paths.ImagesTarget, "unknown_date", "trip", "a.jpg")
	if got := testsupport.ReadFile(t, target); got != "photo" {
		t.Fatalf("unexpected target content %q", got)
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.ImagesTarget, "unknown_date", "trip", "b.jpg")); !os.IsNotExist(err) {
		t.Fatalf("duplicate must not be copied, stat err=%v", err)
	}

	out, _, err = runCLI(t, "", "--config", env.configPath, "hashdb", "stats", env.cfg.Paths.ImagesTarget)
	if err != nil {
		t.Fatalf("hashdb stats failed: %v", err)
	}
	requireContains(t, out, "Import records")

	store := testsupport.MustOpenIndex(t, env.cfg, env.cfg.Paths.ImagesTarget)
	if n, err := store.Count(context.Background()); err != nil || n != 1 {
		t.Fatalf("expected one indexed file, got %d (%v)", n, err)
	}
	if n, err := store.ImportCount(context.Background()); err != nil || n != 2 {
		t.Fatalf("expected import records for the copy and its duplicate, got %d (%v)", n, err)
	}
}

func TestImportDryRunPrintsPlan(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.source, "trip", "a.jpg"), "one")
	testsupport.WriteFile(t, filepath.Join(env.source, "trip", "b.jpg"), "two")

	out, _, err := runCLI(t, "", "--config", env.configPath, "import", "--dry-run", env.source)
	if err != nil {
		t.Fatalf("dry run failed: %v\n%s", err, out)
	}
	requireContains(t, out, "Dry run, nothing was written.")
	requireContains(t, out, filepath.Join("unknown_date", "trip")+"/ (2 files)")
	if _, err := os.Stat(env.cfg.Paths.ImagesTarget); !os.IsNotExist(err) {
		t.Fatalf("dry run must not create the target, stat err=%v", err)
	}
}

func TestImportSelectQuitAborts(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.source, "trip", "a.jpg"), "one")

	out, _, err := runCLI(t, "q\n", "--config", env.configPath, "import", "--select", env.source)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	requireContains(t, out, "[y] accept")
	requireContains(t, out, "Aborted.")
	if _, err := os.Stat(env.cfg.Paths.ImagesTarget); !os.IsNotExist(err) {
		t.Fatalf("aborted selection must not import, stat err=%v", err)
	}
}

func TestImportExcludeFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.source, "trip", "a.jpg"), "one")
	testsupport.WriteFile(t, filepath.Join(env.source, "trip", "b.JPG"), "two")

	out, _, err := runCLI(t, "", "--config", env.configPath, "import", "--dry-run", "--exclude", "b.*", env.source)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	requireContains(t, out, "Excluded 1 file(s) by pattern.")
	requireContains(t, out, "(1 file)")
}

func TestImportRejectsUnknownGeocodingMode(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.source, "a.jpg"), "one")

	_, _, err := runCLI(t, "", "--config", env.configPath, "import", "--geocoding", "satellite", env.source)
	if err == nil || !strings.Contains(err.Error(), "geocoding.mode") {
		t.Fatalf("expected geocoding validation error, got %v", err)
	}
}

func TestDupesListsGroups(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.source, "a.jpg"), "same")
	testsupport.WriteFile(t, filepath.Join(env.source, "nested", "b.jpg"), "same")
	testsupport.WriteFile(t, filepath.Join(env.source, "c.jpg"), "diff")

	out, _, err := runCLI(t, "", "--config", env.configPath, "dupes", env.source)
	if err != nil {
		t.Fatalf("dupes failed: %v", err)
	}
	requireContains(t, out, "Found 1 duplicate group(s)")
	requireContains(t, out, "Group 1 (2 files, 4 B):")
	requireContains(t, out, filepath.Join(env.source, "nested", "b.jpg"))
}

func TestCheckAndRebuild(t *testing.T) {
	env := setupCLITestEnv(t)
	target := env.cfg.Paths.ImagesTarget
	testsupport.WriteFile(t, filepath.Join(target, "2023", "a.jpg"), "same")
	testsupport.WriteFile(t, filepath.Join(target, "2024", "a.jpg"), "same")

	out, _, err := runCLI(t, "", "--config", env.configPath, "check", target)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	requireContains(t, out, "No duplicates found")

	out, _, err = runCLI(t, "", "--config", env.configPath, "hashdb", "rebuild", target)
	if err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}
	requireContains(t, out, "Indexed 2 file(s).")

	out, _, err = runCLI(t, "", "--config", env.configPath, "check", target)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	requireContains(t, out, "Found 1 hash(es) with duplicate files")
	requireContains(t, out, "2023/a.jpg")
	requireContains(t, out, "2024/a.jpg")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(testsupport.BaseDir(env.cfg), "generated", "config.toml")

	out, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}

	out, _, err = runCLI(t, "", "--config", env.configPath, "config", "validate")
	if err != nil {
		t.Fatalf("config validate failed: %v\n%s", err, out)
	}
	requireContains(t, out, "Images target")
	requireContains(t, out, "Configuration valid")
}

func TestVerboseAndQuietAreExclusive(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, "", "--config", env.configPath, "-v", "-q", "check", env.cfg.Paths.ImagesTarget); err == nil {
		t.Fatal("expected --verbose and --quiet to be rejected together")
	}
}

func TestLinePrompterTrimsLineEndings(t *testing.T) {
	var out bytes.Buffer
	p := newLinePrompter(strings.NewReader("yes\r\nlast"), &out)

	first, err := p.Ask("? ")
	if err != nil || first != "yes" {
		t.Fatalf("unexpected first answer %q %v", first, err)
	}
	last, err := p.Ask("? ")
	if err != nil || last != "last" {
		t.Fatalf("unexpected last answer %q %v", last, err)
	}
	if _, err := p.Ask("? "); err == nil {
		t.Fatal("expected error at end of input")
	}
	if out.String() != "? ? ? " {
		t.Fatalf("unexpected prompt output %q", out.String())
	}
}

func TestFailuresCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, "", "--config", env.configPath, "failures")
	if err != nil {
		t.Fatalf("failures failed: %v", err)
	}
	requireContains(t, out, "No failed batches recorded.")

	line := `{"timestamp":"2024-05-01T12:00:00Z","source_dir":"broken","media_type":"photo_video","files":["/src/broken/x.jpg"],"error_type":"Panic","error_message":"panic: corrupt metadata","traceback":""}` + "\n"
	testsupport.WriteFile(t, env.cfg.Paths.FailureLog, line)

	out, _, err = runCLI(t, "", "--config", env.configPath, "failures")
	if err != nil {
		t.Fatalf("failures failed: %v", err)
	}
	requireContains(t, out, "broken")
	requireContains(t, out, "panic: corrupt metadata")
}
