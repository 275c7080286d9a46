package importer

import "strings"

// DecisionKind is the outcome of evaluating one canonical candidate.
type DecisionKind int

const (
	DecisionSkip DecisionKind = iota
	DecisionImportNew
	DecisionImportUpdate
	// DecisionConfirmUpdate asks the operator before an update.
	DecisionConfirmUpdate
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionImportNew:
		return "import_new"
	case DecisionImportUpdate:
		return "import_update"
	case DecisionConfirmUpdate:
		return "confirm_update"
	default:
		return "skip"
	}
}

// Reason explains a skip.
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonAlreadyPresent Reason = "already_present"
	ReasonNotNewer       Reason = "not_newer"
	ReasonUpdateDisabled Reason = "update_disabled"
	ReasonDeclined       Reason = "declined"
	ReasonSkippedGroup   Reason = "skipped_group"
)

// Decision pairs a kind with the reason for skips.
type Decision struct {
	Kind   DecisionKind
	Reason Reason
}

// facts is everything decide needs to know about one candidate.
type facts struct {
	HashPresent   bool
	HasRecord     bool
	TargetExists  bool
	SourceNewer   bool
	Interactive   bool
	UpdateEnabled bool
}

func decide(f facts) Decision {
	switch {
	case f.HashPresent:
		return Decision{Kind: DecisionSkip, Reason: ReasonAlreadyPresent}
	case !f.HasRecord:
		return Decision{Kind: DecisionImportNew}
	case !f.TargetExists || !f.SourceNewer:
		return Decision{Kind: DecisionSkip, Reason: ReasonNotNewer}
	case f.Interactive:
		return Decision{Kind: DecisionConfirmUpdate}
	case f.UpdateEnabled:
		return Decision{Kind: DecisionImportUpdate}
	default:
		return Decision{Kind: DecisionSkip, Reason: ReasonUpdateDisabled}
	}
}

// confirmUpdate maps the operator's answer to a ConfirmUpdate prompt.
func confirmUpdate(answer string) Decision {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return Decision{Kind: DecisionImportUpdate}
	default:
		return Decision{Kind: DecisionSkip, Reason: ReasonDeclined}
	}
}
