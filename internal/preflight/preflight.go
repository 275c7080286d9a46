package preflight

import (
	"path/filepath"

	"undisorder/internal/config"
	"undisorder/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the checks relevant to an import with the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckTargetAccess("Images target", cfg.Paths.ImagesTarget),
		CheckTargetAccess("Video target", cfg.Paths.VideoTarget),
		CheckTargetAccess("Audio target", cfg.Paths.AudioTarget),
		CheckTargetAccess("Index directory", filepath.Dir(cfg.Paths.IndexPath)),
	}
	for _, status := range deps.CheckBinaries(deps.Requirements(cfg)) {
		results = append(results, binaryResult(status))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}
	return failed
}

func binaryResult(status deps.Status) Result {
	switch {
	case status.Available:
		return Result{Name: status.Name, Passed: true, Detail: status.Command}
	case status.Optional:
		return Result{Name: status.Name, Passed: true, Detail: "optional, " + status.Detail}
	default:
		return Result{Name: status.Name, Detail: status.Detail}
	}
}
