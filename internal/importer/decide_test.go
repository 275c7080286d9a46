package importer

import "testing"

func TestDecide(t *testing.T) {
	cases := []struct {
		name  string
		facts facts
		want  Decision
	}{
		{"hash present wins", facts{HashPresent: true, HasRecord: true, TargetExists: true, SourceNewer: true, UpdateEnabled: true}, Decision{DecisionSkip, ReasonAlreadyPresent}},
		{"no record", facts{}, Decision{Kind: DecisionImportNew}},
		{"record without target", facts{HasRecord: true, SourceNewer: true, UpdateEnabled: true}, Decision{DecisionSkip, ReasonNotNewer}},
		{"source not newer", facts{HasRecord: true, TargetExists: true, UpdateEnabled: true}, Decision{DecisionSkip, ReasonNotNewer}},
		{"interactive asks", facts{HasRecord: true, TargetExists: true, SourceNewer: true, Interactive: true}, Decision{Kind: DecisionConfirmUpdate}},
		{"update enabled", facts{HasRecord: true, TargetExists: true, SourceNewer: true, UpdateEnabled: true}, Decision{Kind: DecisionImportUpdate}},
		{"update disabled", facts{HasRecord: true, TargetExists: true, SourceNewer: true}, Decision{DecisionSkip, ReasonUpdateDisabled}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := decide(tc.facts); got != tc.want {
				t.Fatalf("decide(%+v) = %+v, want %+v", tc.facts, got, tc.want)
			}
		})
	}
}

func TestConfirmUpdate(t *testing.T) {
	for answer, want := range map[string]DecisionKind{
		"y":     DecisionImportUpdate,
		" YES ": DecisionImportUpdate,
		"":      DecisionSkip,
		"n":     DecisionSkip,
		"maybe": DecisionSkip,
	} {
		got := confirmUpdate(answer)
		if got.Kind != want {
			t.Fatalf("confirmUpdate(%q) = %v, want %v", answer, got.Kind, want)
		}
		if want == DecisionSkip && got.Reason != ReasonDeclined {
			t.Fatalf("confirmUpdate(%q) reason = %q", answer, got.Reason)
		}
	}
}
