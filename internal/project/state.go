package project

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// MaxRecentPlans caps the recent-plans list.
const MaxRecentPlans = 10

// AppState holds what the application remembers between runs.
type AppState struct {
	RecentPlans   []string `json:"recent_plans"`
	LastExportDir string   `json:"last_export_dir,omitempty"`
}

// DefaultStatePath returns the default path for the application state file.
func DefaultStatePath() string {
	return filepath.Join(DefaultStateDir(), "state.json")
}

// SaveAppState persists state to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppState(path string, state AppState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppState reads state from the given path.
// If the file does not exist, it returns an empty state with no error.
func LoadAppState(path string) (AppState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return AppState{RecentPlans: []string{}}, nil
		}
		return AppState{}, err
	}
	var state AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return AppState{}, err
	}
	// Ensure RecentPlans is never nil
	if state.RecentPlans == nil {
		state.RecentPlans = []string{}
	}
	return state, nil
}

// AddRecentPlan moves path to the front of the recent list, dropping any
// earlier entry for it and anything past MaxRecentPlans.
func (s *AppState) AddRecentPlan(path string) {
	recent := []string{path}
	for _, p := range s.RecentPlans {
		if p != path && len(recent) < MaxRecentPlans {
			recent = append(recent, p)
		}
	}
	s.RecentPlans = recent
}

// RemoveRecentPlan drops path from the recent list, e.g. after it failed to open.
func (s *AppState) RemoveRecentPlan(path string) {
	kept := s.RecentPlans[:0]
	for _, p := range s.RecentPlans {
		if p != path {
			kept = append(kept, p)
		}
	}
	s.RecentPlans = kept
}
