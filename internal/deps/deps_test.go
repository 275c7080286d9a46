package deps

import (
	"os"
	"path/filepath"
	"testing"

	"undisorder/internal/config"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Detail != "" {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary to be unavailable with detail, got %#v", results[1])
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("expected blank command to be reported, got %#v", results[2])
	}
}

func TestRequirementsIncludeFpcalcOnlyWhenIdentifying(t *testing.T) {
	cfg := config.Default()
	reqs := Requirements(&cfg)
	if len(reqs) != 1 || reqs[0].Name != "exiftool" || !reqs[0].Optional {
		t.Fatalf("unexpected default requirements: %#v", reqs)
	}

	cfg.Identify.Enabled = true
	cfg.Identify.Fpcalc = "/opt/chromaprint/fpcalc"
	reqs = Requirements(&cfg)
	if len(reqs) != 2 || reqs[1].Command != "/opt/chromaprint/fpcalc" || reqs[1].Optional {
		t.Fatalf("expected required fpcalc, got %#v", reqs)
	}
}
