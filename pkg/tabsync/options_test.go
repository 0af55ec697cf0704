package tabsync

import (
	"errors"
	"strings"
	"testing"
)

func TestSyncOptions_Validate_Defaults(t *testing.T) {
	opts := SyncOptions{}
	if err := opts.Validate(); err != nil {
		t.Fatalf("zero-value options should be valid, got: %v", err)
	}
}

func TestSyncOptions_Validate_OutOfRange(t *testing.T) {
	opts := SyncOptions{
		PerspectiveMergePolicy: MergePolicy(42),
		CultureMergePolicy:     MergePolicy(-1),
		RoleMemberMatchPolicy:  RoleMemberMatchPolicy(7),
	}

	err := opts.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got: %v", err)
	}
	for _, want := range []string{"perspective merge policy", "culture merge policy", "role member match policy"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %q, got: %v", want, err)
		}
	}
}

func TestDeployOptions_Validate_Valid(t *testing.T) {
	opts := DeployOptions{
		ServerAddress: "tabular.example.com",
		DatabaseName:  "Sales",
		ProcessTables: []string{"Customer"},
	}
	if err := opts.Validate(); err != nil {
		t.Fatalf("expected valid options, got: %v", err)
	}
}

func TestDeployOptions_Validate_MissingFields(t *testing.T) {
	opts := DeployOptions{}

	err := opts.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got: %v", err)
	}
	if !strings.Contains(err.Error(), "ServerAddress") || !strings.Contains(err.Error(), "DatabaseName") {
		t.Errorf("error should mention both required fields, got: %v", err)
	}
}

func TestDeployOptions_Validate_TablesWithProcessNone(t *testing.T) {
	opts := DeployOptions{
		ServerAddress:  "host",
		DatabaseName:   "db",
		ProcessingMode: ProcessNone,
		ProcessTables:  []string{"Customer"},
	}

	err := opts.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got: %v", err)
	}
}

func TestProcessingMode_RefreshTypeFor(t *testing.T) {
	if got := ProcessDefault.RefreshTypeFor(); got != RefreshAutomatic {
		t.Errorf("default mode: got %v, want automatic", got)
	}
	if got := ProcessFull.RefreshTypeFor(); got != RefreshFull {
		t.Errorf("full mode: got %v, want full", got)
	}
}

func TestEnumStrings(t *testing.T) {
	cases := []struct {
		got  string
		want string
	}{
		{MergePolicyReplace.String(), "replace"},
		{MergePolicyMerge.String(), "merge"},
		{ProcessDefault.String(), "default"},
		{ProcessFull.String(), "full"},
		{ProcessNone.String(), "none"},
		{MessageKindGeneral.String(), "General"},
		{MessageKindRelationship.String(), "Relationship"},
		{MessageKindTable.String(), "Table"},
		{SeverityInformational.String(), "Informational"},
		{SeverityWarning.String(), "Warning"},
		{SeverityError.String(), "Error"},
		{PhaseIdle.String(), "Idle"},
		{PhaseProcessing.String(), "Processing"},
		{PhaseCancelled.String(), "Cancelled"},
		{TableStatePending.String(), "Pending"},
		{TableStateDone.String(), "Done"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("got %q, want %q", tc.got, tc.want)
		}
	}
}

func TestDeploymentPhase_Terminal(t *testing.T) {
	terminal := []DeploymentPhase{PhaseCompleted, PhaseFailed, PhaseCancelled}
	for _, p := range terminal {
		if !p.Terminal() {
			t.Errorf("%v should be terminal", p)
		}
	}
	running := []DeploymentPhase{PhaseIdle, PhaseValidating, PhaseScripting, PhaseApplying, PhaseCollectingCredentials, PhaseProcessing}
	for _, p := range running {
		if p.Terminal() {
			t.Errorf("%v should not be terminal", p)
		}
	}
}
