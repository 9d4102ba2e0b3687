package project

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoadAppState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	state := AppState{
		RecentPlans:   []string{"/tmp/a.sortroom", "/tmp/b.sortroom"},
		LastExportDir: "/tmp/exports",
	}
	if err := SaveAppState(path, state); err != nil {
		t.Fatalf("SaveAppState failed: %v", err)
	}

	loaded, err := LoadAppState(path)
	if err != nil {
		t.Fatalf("LoadAppState failed: %v", err)
	}
	if len(loaded.RecentPlans) != 2 || loaded.RecentPlans[0] != "/tmp/a.sortroom" {
		t.Errorf("unexpected recent plans: %v", loaded.RecentPlans)
	}
	if loaded.LastExportDir != "/tmp/exports" {
		t.Errorf("expected LastExportDir=/tmp/exports, got %s", loaded.LastExportDir)
	}
}

func TestLoadAppStateMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "state.json")

	state, err := LoadAppState(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if state.RecentPlans == nil || len(state.RecentPlans) != 0 {
		t.Errorf("expected empty non-nil recent plans, got %v", state.RecentPlans)
	}
}

func TestLoadAppStateInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{invalid json"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if _, err := LoadAppState(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadAppStateNullRecentPlans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte(`{"recent_plans": null}`), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	state, err := LoadAppState(path)
	if err != nil {
		t.Fatalf("LoadAppState failed: %v", err)
	}
	if state.RecentPlans == nil {
		t.Error("RecentPlans should never be nil")
	}
}

func TestAddRecentPlan(t *testing.T) {
	var s AppState
	s.AddRecentPlan("a")
	s.AddRecentPlan("b")
	s.AddRecentPlan("a")

	if len(s.RecentPlans) != 2 || s.RecentPlans[0] != "a" || s.RecentPlans[1] != "b" {
		t.Errorf("expected [a b], got %v", s.RecentPlans)
	}
}

func TestAddRecentPlanCapsLength(t *testing.T) {
	var s AppState
	for i := 0; i < MaxRecentPlans+5; i++ {
		s.AddRecentPlan(fmt.Sprintf("plan%d", i))
	}
	if len(s.RecentPlans) != MaxRecentPlans {
		t.Fatalf("expected %d recent plans, got %d", MaxRecentPlans, len(s.RecentPlans))
	}
	if s.RecentPlans[0] != fmt.Sprintf("plan%d", MaxRecentPlans+4) {
		t.Errorf("most recent plan should be first, got %s", s.RecentPlans[0])
	}
}

func TestRemoveRecentPlan(t *testing.T) {
	s := AppState{RecentPlans: []string{"a", "b", "c"}}
	s.RemoveRecentPlan("b")
	if len(s.RecentPlans) != 2 || s.RecentPlans[0] != "a" || s.RecentPlans[1] != "c" {
		t.Errorf("expected [a c], got %v", s.RecentPlans)
	}
	s.RemoveRecentPlan("missing")
	if len(s.RecentPlans) != 2 {
		t.Errorf("removing an unknown plan should be a no-op, got %v", s.RecentPlans)
	}
}
