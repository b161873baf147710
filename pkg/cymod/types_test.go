package cymod

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestConfigValidate_Valid(t *testing.T) {
	cfg := Config{Host: "localhost", Username: "neo4j"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestConfigValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantMsg string
	}{
		{
			name:    "missing connection target",
			cfg:     Config{Username: "neo4j"},
			wantMsg: "URI or host",
		},
		{
			name:    "missing username",
			cfg:     Config{Host: "localhost"},
			wantMsg: "Username",
		},
		{
			name:    "port out of range",
			cfg:     Config{Host: "localhost", Username: "neo4j", Port: 70000},
			wantMsg: "out of range",
		},
		{
			name:    "both clear modes",
			cfg:     Config{Host: "localhost", Username: "neo4j", ClearExisting: true, ClearMatching: true},
			wantMsg: "mutually exclusive",
		},
		{
			name:    "force without clear mode",
			cfg:     Config{Host: "localhost", Username: "neo4j", Force: true},
			wantMsg: "force",
		},
		{
			name:    "negative timeout",
			cfg:     Config{Host: "localhost", Username: "neo4j", Timeout: -time.Second},
			wantMsg: "timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected message containing %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestConfigValidate_CollectsAllFailures(t *testing.T) {
	cfg := Config{Port: -1}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"URI or host", "Username", "out of range"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in joined error, got %q", want, msg)
		}
	}
}

func TestResolvedURI(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"explicit uri wins", Config{URI: "neo4j://cluster:7687", Host: "ignored"}, "neo4j://cluster:7687"},
		{"host and port", Config{Host: "db.internal", Port: 7688}, "bolt://db.internal:7688"},
		{"default port", Config{Host: "db.internal"}, "bolt://db.internal:7687"},
		{"all defaults", Config{}, "bolt://localhost:7687"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.ResolvedURI(); got != tt.want {
				t.Errorf("ResolvedURI() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTarget(t *testing.T) {
	cfg := Config{Host: "db", Database: "models"}
	if got := cfg.Target(); got != "bolt://db:7687/models" {
		t.Errorf("Target() = %q", got)
	}

	cfg.Database = ""
	if got := cfg.Target(); got != "bolt://db:7687" {
		t.Errorf("Target() = %q", got)
	}
}

func TestStatementUnitPreview_Truncates(t *testing.T) {
	long := strings.Repeat("a", MaxErrorPreviewLength+50)
	s := StatementUnit{Text: long}
	preview := s.Preview()
	if len([]rune(preview)) != MaxErrorPreviewLength+1 {
		t.Errorf("unexpected preview length %d", len([]rune(preview)))
	}

	short := StatementUnit{Text: "MATCH (n) RETURN n"}
	if short.Preview() != short.Text {
		t.Errorf("short text should be untouched")
	}
}

func TestLoadPlanCounts(t *testing.T) {
	plan := LoadPlan{Batches: []Batch{
		{Statements: make([]StatementUnit, 3)},
		{Statements: make([]StatementUnit, 2)},
	}}
	if plan.FragmentCount() != 2 {
		t.Errorf("FragmentCount() = %d", plan.FragmentCount())
	}
	if plan.StatementCount() != 5 {
		t.Errorf("StatementCount() = %d", plan.StatementCount())
	}
}

func TestLoadStateString(t *testing.T) {
	states := map[LoadState]string{
		StateIdle:       "Idle",
		StateLocating:   "Locating",
		StateParsing:    "Parsing",
		StateResolving:  "Resolving",
		StateBuilding:   "Building",
		StateCommitting: "Committing",
		StateDone:       "Done",
		StateFailed:     "Failed",
	}
	for state, want := range states {
		if state.String() != want {
			t.Errorf("String() = %q, want %q", state.String(), want)
		}
	}
	if !strings.Contains(LoadState(99).String(), "Unknown") {
		t.Error("unknown state should say so")
	}
}

func TestLoadStateTerminal(t *testing.T) {
	if StateCommitting.Terminal() {
		t.Error("Committing is not terminal")
	}
	if !StateDone.Terminal() || !StateFailed.Terminal() {
		t.Error("Done and Failed are terminal")
	}
}
