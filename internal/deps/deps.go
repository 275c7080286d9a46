package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"undisorder/internal/config"
)

// Requirement defines an external program undisorder may run.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements lists the external programs used with the given config.
// exiftool is always optional; fpcalc is required once identification is on.
func Requirements(cfg *config.Config) []Requirement {
	reqs := []Requirement{
		{
			Name:        "exiftool",
			Command:     "exiftool",
			Description: "Reads photo and video metadata beyond embedded EXIF",
			Optional:    true,
		},
	}
	if cfg != nil && cfg.Identify.Enabled {
		reqs = append(reqs, Requirement{
			Name:        "fpcalc",
			Command:     cfg.Identify.Fpcalc,
			Description: "Required for acoustic fingerprinting",
		})
	}
	return reqs
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
