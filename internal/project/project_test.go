package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/GridFit/internal/model"
)

func buildTestProblem() model.Problem {
	p := model.NewProblem()
	p.Parts = model.DefaultCatalog().Parts
	c := model.Unconstrained()
	c.OnCommandLine = model.TriYes
	p.Requirements = []model.Requirement{
		{PartIndex: 0, Constraint: c},
		{PartIndex: 2, Constraint: model.Unconstrained()},
	}
	p.SpinnableColors = []bool{true, false, true}
	return p
}

func TestSaveAndLoadProblem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.json")
	p := buildTestProblem()

	if err := SaveProblem(path, "Test Problem", p); err != nil {
		t.Fatalf("SaveProblem failed: %v", err)
	}

	file, err := LoadProblem(path)
	if err != nil {
		t.Fatalf("LoadProblem failed: %v", err)
	}
	if file.Name != "Test Problem" {
		t.Errorf("expected name 'Test Problem', got %q", file.Name)
	}
	if file.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %q", file.Version)
	}
	if file.CreatedAt == "" {
		t.Error("expected a creation timestamp")
	}

	loaded := file.Problem
	if len(loaded.Requirements) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(loaded.Requirements))
	}
	if loaded.Requirements[0].Constraint.OnCommandLine != model.TriYes {
		t.Errorf("constraint did not survive the round trip: %+v", loaded.Requirements[0].Constraint)
	}
	if loaded.GridSettings != p.GridSettings {
		t.Errorf("grid settings mismatch: %+v vs %+v", loaded.GridSettings, p.GridSettings)
	}
	if len(loaded.Parts) != len(p.Parts) {
		t.Errorf("expected %d parts, got %d", len(p.Parts), len(loaded.Parts))
	}
	if !loaded.Parts[0].CompressedMask.Equal(p.Parts[0].CompressedMask) {
		t.Error("part masks did not survive the round trip")
	}
}

func TestSaveProblem_BacksUpExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "problem.json")
	p := buildTestProblem()

	if err := SaveProblem(path, "First", p); err != nil {
		t.Fatal(err)
	}
	if err := SaveProblem(path, "Second", p); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	backups := 0
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".bak") {
			backups++
		}
	}
	if backups != 1 {
		t.Errorf("expected 1 backup file, got %d", backups)
	}

	file, err := LoadProblem(path)
	if err != nil {
		t.Fatal(err)
	}
	if file.Name != "Second" {
		t.Errorf("expected latest save to win, got %q", file.Name)
	}
}

func TestLoadProblem_MissingFile(t *testing.T) {
	if _, err := LoadProblem(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadProblem_MissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"name":"x"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProblem(path); err == nil {
		t.Error("expected an error for a file without a version")
	}
}

func TestLoadProblem_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProblem(path); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}

func TestSaveAndLoadAppConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := model.DefaultAppConfig()
	cfg.WindowWidth = 1600
	cfg.ShareBaseURL = "https://example.com/"
	cfg.AddRecentProblem("/tmp/p1.json")

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}
	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.WindowWidth != 1600 {
		t.Errorf("expected WindowWidth=1600, got %f", loaded.WindowWidth)
	}
	if loaded.ShareBaseURL != "https://example.com/" {
		t.Errorf("unexpected share base URL: %q", loaded.ShareBaseURL)
	}
	if len(loaded.RecentProblems) != 1 || loaded.RecentProblems[0] != "/tmp/p1.json" {
		t.Errorf("unexpected recent problems: %v", loaded.RecentProblems)
	}
}

func TestLoadAppConfig_MissingFileReturnsDefaults(t *testing.T) {
	loaded, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("missing config should not be an error: %v", err)
	}
	if loaded.ShareBaseURL != model.DefaultAppConfig().ShareBaseURL {
		t.Errorf("expected defaults, got %+v", loaded)
	}
	if loaded.RecentProblems == nil {
		t.Error("RecentProblems must not be nil")
	}
}

func TestSaveAndLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	catalog := model.DefaultCatalog()

	if err := SaveCatalog(path, catalog); err != nil {
		t.Fatalf("SaveCatalog failed: %v", err)
	}
	loaded, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if len(loaded.Parts) != len(catalog.Parts) {
		t.Fatalf("expected %d parts, got %d", len(catalog.Parts), len(loaded.Parts))
	}
	if loaded.Parts[0].Label != catalog.Parts[0].Label {
		t.Errorf("part labels mismatch: %q vs %q", loaded.Parts[0].Label, catalog.Parts[0].Label)
	}
}

func TestLoadCatalog_MissingFileCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")

	loaded, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if len(loaded.Parts) == 0 {
		t.Fatal("expected the default catalog")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("missing catalog should be created on disk: %v", err)
	}
}

func TestImportCatalog_MergesAndSkipsDuplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extra.json")

	existing := model.DefaultCatalog()

	extra := model.Catalog{Parts: []model.Part{existing.Parts[0]}}
	mask := model.MaskFromStrings([]string{"##"})
	extra.Parts = append(extra.Parts, model.NewPart("Domino", true, 6, mask, mask))
	if err := SaveCatalog(path, extra); err != nil {
		t.Fatal(err)
	}

	merged, err := ImportCatalog(path, existing)
	if err != nil {
		t.Fatalf("ImportCatalog failed: %v", err)
	}
	if len(merged.Parts) != len(existing.Parts)+1 {
		t.Errorf("expected one new part after merge, got %d (was %d)",
			len(merged.Parts), len(existing.Parts))
	}
	if merged.FindByLabel("Domino") == -1 {
		t.Error("imported part missing from merged catalog")
	}
}
