// Package project handles persistence of cutting plans as JSON files.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/plycut/internal/model"
)

// PlanFileVersion is written into every saved plan file so future format
// changes can be detected on load.
const PlanFileVersion = "1.0.0"

// PlanFile is the top-level structure of a saved plan on disk.
type PlanFile struct {
	Version   string     `json:"version"`
	CreatedAt string     `json:"created_at"`
	Plan      model.Plan `json:"plan"`
}

// DefaultConfigDir returns the default directory for application data.
// On all platforms this is ~/.plycut/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".plycut")
}

// SavePlan persists a plan to the given path as indented JSON.
// It creates any missing parent directories automatically.
func SavePlan(path string, plan model.Plan) error {
	file := PlanFile{
		Version:   PlanFileVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Plan:      plan,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create plan directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write plan file: %w", err)
	}
	return nil
}

// LoadPlan reads a plan from the given path.
func LoadPlan(path string) (model.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Plan{}, fmt.Errorf("failed to read plan file: %w", err)
	}
	var file PlanFile
	if err := json.Unmarshal(data, &file); err != nil {
		return model.Plan{}, fmt.Errorf("failed to parse plan file: %w", err)
	}
	if file.Version == "" {
		return model.Plan{}, fmt.Errorf("invalid plan file: missing version field")
	}
	plan := file.Plan
	// Ensure Requests is never nil
	if plan.Requests == nil {
		plan.Requests = []model.PanelRequest{}
	}
	if plan.SheetWidth <= 0 {
		plan.SheetWidth = model.DefaultSheetWidth
	}
	if plan.SheetHeight <= 0 {
		plan.SheetHeight = model.DefaultSheetHeight
	}
	return plan, nil
}
