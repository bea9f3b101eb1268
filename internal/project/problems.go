package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/GridFit/internal/model"
)

// ProblemFile is the on-disk representation of a saved problem.
type ProblemFile struct {
	Version   string        `json:"version"`
	Name      string        `json:"name"`
	CreatedAt string        `json:"created_at"`
	Problem   model.Problem `json:"problem"`
}

// SaveProblem writes a problem to the given path as JSON. An existing file
// at the path is first copied to a timestamped backup next to it.
func SaveProblem(path, name string, p model.Problem) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if _, statErr := os.Stat(path); statErr == nil {
		if err := backupFile(path); err != nil {
			return fmt.Errorf("failed to back up existing problem: %w", err)
		}
	}

	file := ProblemFile{
		Version:   "1.0.0",
		Name:      name,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Problem:   p,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadProblem reads a saved problem from the given path.
func LoadProblem(path string) (ProblemFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProblemFile{}, fmt.Errorf("failed to read problem file: %w", err)
	}
	var file ProblemFile
	if err := json.Unmarshal(data, &file); err != nil {
		return ProblemFile{}, fmt.Errorf("failed to parse problem file: %w", err)
	}
	if file.Version == "" {
		return ProblemFile{}, fmt.Errorf("invalid problem file: missing version field")
	}
	return file, nil
}

// backupFile copies the file at path to path.YYYYmmdd-HHMMSS.bak.
func backupFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	backupPath := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102-150405"))
	return os.WriteFile(backupPath, data, 0644)
}
