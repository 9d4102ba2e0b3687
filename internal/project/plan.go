// Package project persists room plans and the small amount of application
// state kept between runs.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/SortRoom/internal/model"
)

// PlanExtension is the file extension used for saved plans.
const PlanExtension = ".sortroom"

// planFileVersion is written into every saved plan.
const planFileVersion = "1.0.0"

// planFile is the on-disk envelope around a plan.
type planFile struct {
	Version string     `json:"version"`
	SavedAt string     `json:"saved_at"`
	Plan    model.Plan `json:"plan"`
}

// DefaultStateDir returns the directory for application state.
// On all platforms this is ~/.sortroom/
func DefaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".sortroom")
}

// DefaultPlanDir returns the directory plans are saved to by default.
func DefaultPlanDir() string {
	return filepath.Join(DefaultStateDir(), "plans")
}

// SavePlan writes plan to path as indented JSON, creating parent
// directories as needed. UpdatedAt is set to the current time.
func SavePlan(path string, plan model.Plan) error {
	plan.UpdatedAt = time.Now().UTC()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = plan.UpdatedAt
	}
	f := planFile{
		Version: planFileVersion,
		SavedAt: plan.UpdatedAt.Format(time.RFC3339),
		Plan:    plan,
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create plan directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write plan file: %w", err)
	}
	return nil
}

// LoadPlan reads a plan saved by SavePlan. Object collections are never
// nil in the result. The room is not validated against any stage; callers
// pass the plan to the planner, which does.
func LoadPlan(path string) (model.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Plan{}, fmt.Errorf("failed to read plan file: %w", err)
	}
	var f planFile
	if err := json.Unmarshal(data, &f); err != nil {
		return model.Plan{}, fmt.Errorf("failed to parse plan file: %w", err)
	}
	if f.Version == "" {
		return model.Plan{}, errors.New("invalid plan file: missing version field")
	}

	plan := f.Plan
	if plan.Bins == nil {
		plan.Bins = []model.PlacedObject{}
	}
	if plan.Doors == nil {
		plan.Doors = []model.PlacedObject{}
	}
	if plan.Others == nil {
		plan.Others = []model.PlacedObject{}
	}
	return plan, nil
}

// PlanPath returns the default file path for a plan with the given name.
func PlanPath(name string) string {
	if name == "" {
		name = "untitled"
	}
	return filepath.Join(DefaultPlanDir(), name+PlanExtension)
}
