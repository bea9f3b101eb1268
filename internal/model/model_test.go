package model

import (
	"testing"
)

func TestTriString(t *testing.T) {
	if TriEither.String() != "Either" {
		t.Errorf("expected Either, got %s", TriEither)
	}
	if TriYes.String() != "Yes" {
		t.Errorf("expected Yes, got %s", TriYes)
	}
	if TriNo.String() != "No" {
		t.Errorf("expected No, got %s", TriNo)
	}
}

func TestUnconstrained(t *testing.T) {
	c := Unconstrained()
	if c.Compressed != TriEither || c.OnCommandLine != TriEither {
		t.Error("unconstrained should leave both tri-states open")
	}
	if c.MinBugLevel != 0 || c.MaxBugLevel != UnboundedBugLevel {
		t.Errorf("unconstrained bug bounds should be [0, unbounded], got [%d, %d]",
			c.MinBugLevel, c.MaxBugLevel)
	}
}

func TestNewPartAssignsID(t *testing.T) {
	mask := MaskFromStrings([]string{"#"})
	a := NewPart("A", true, 0, mask, mask)
	b := NewPart("B", true, 0, mask, mask)
	if a.ID == "" || len(a.ID) != 8 {
		t.Errorf("expected 8-char ID, got %q", a.ID)
	}
	if a.ID == b.ID {
		t.Error("two parts should not share an ID")
	}
}

func TestProblemSpinnable(t *testing.T) {
	p := Problem{SpinnableColors: []bool{true, false}}
	if !p.Spinnable(0) {
		t.Error("color 0 should be spinnable")
	}
	if p.Spinnable(1) {
		t.Error("color 1 should not be spinnable")
	}
	if p.Spinnable(2) {
		t.Error("color past the list should default to not spinnable")
	}
	if p.Spinnable(-1) {
		t.Error("negative color should default to not spinnable")
	}
}

func TestNewProblemDefaults(t *testing.T) {
	p := NewProblem()
	gs := p.GridSettings
	if gs.Height != 7 || gs.Width != 7 {
		t.Errorf("expected 7x7 board, got %dx%d", gs.Height, gs.Width)
	}
	if !gs.HasOob {
		t.Error("default board should have out-of-bounds corners")
	}
	if gs.CommandLineRow != 3 {
		t.Errorf("expected command line through row 3, got %d", gs.CommandLineRow)
	}
}

func TestCatalogFindByLabel(t *testing.T) {
	c := DefaultCatalog()
	if idx := c.FindByLabel("Dot"); idx != 0 {
		t.Errorf("expected Dot at index 0, got %d", idx)
	}
	if idx := c.FindByLabel("dot"); idx != 0 {
		t.Errorf("lookup should be case-insensitive, got %d", idx)
	}
	if idx := c.FindByLabel("NoSuchPart"); idx != -1 {
		t.Errorf("expected -1 for unknown label, got %d", idx)
	}
}

func TestCatalogAddReplacesByID(t *testing.T) {
	c := DefaultCatalog()
	n := len(c.Parts)

	updated := c.Parts[0]
	updated.Label = "Renamed"
	c.Add(updated)
	if len(c.Parts) != n {
		t.Errorf("adding an existing ID should replace, not grow: %d -> %d", n, len(c.Parts))
	}
	if c.Parts[0].Label != "Renamed" {
		t.Errorf("expected replacement, got label %q", c.Parts[0].Label)
	}

	mask := MaskFromStrings([]string{"#"})
	c.Add(NewPart("Fresh", true, 0, mask, mask))
	if len(c.Parts) != n+1 {
		t.Errorf("adding a new ID should grow the catalog: %d -> %d", n, len(c.Parts))
	}
}

func TestCatalogRemove(t *testing.T) {
	c := DefaultCatalog()
	n := len(c.Parts)
	id := c.Parts[1].ID

	c.Remove(id)
	if len(c.Parts) != n-1 {
		t.Errorf("expected %d parts after remove, got %d", n-1, len(c.Parts))
	}
	for _, p := range c.Parts {
		if p.ID == id {
			t.Error("removed part still present")
		}
	}

	c.Remove("nonexistent")
	if len(c.Parts) != n-1 {
		t.Error("removing an unknown ID should be a no-op")
	}
}

func TestDefaultCatalogMaskSanity(t *testing.T) {
	for _, p := range DefaultCatalog().Parts {
		if p.CompressedMask.CellCount() == 0 || p.UncompressedMask.CellCount() == 0 {
			t.Errorf("part %s has an empty mask", p.Label)
		}
		if p.CompressedMask.CellCount() > p.UncompressedMask.CellCount() {
			t.Errorf("part %s: compressed mask occupies more cells than uncompressed", p.Label)
		}
	}
}

func TestAppConfigAddRecentProblem(t *testing.T) {
	c := DefaultAppConfig()
	c.AddRecentProblem("/tmp/a.json")
	c.AddRecentProblem("/tmp/b.json")
	c.AddRecentProblem("/tmp/a.json")

	if len(c.RecentProblems) != 2 {
		t.Fatalf("expected 2 recent entries, got %d", len(c.RecentProblems))
	}
	if c.RecentProblems[0] != "/tmp/a.json" || c.RecentProblems[1] != "/tmp/b.json" {
		t.Errorf("unexpected recent order: %v", c.RecentProblems)
	}

	for i := 0; i < 20; i++ {
		c.AddRecentProblem("/tmp/" + string(rune('a'+i)) + "x.json")
	}
	if len(c.RecentProblems) != 10 {
		t.Errorf("recent list should cap at 10, got %d", len(c.RecentProblems))
	}
}
