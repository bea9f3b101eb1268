package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/GridFit/internal/model"
)

func testPart(label string, isSolid bool, color int, rows []string) model.Part {
	m := model.MaskFromStrings(rows)
	return model.NewPart(label, isSolid, color, m, m)
}

func TestPositionsForMask_CommandLineMust(t *testing.T) {
	dot := model.MaskFromStrings([]string{"#"})
	gs := testSettings(3, 3, false, 1)
	c := model.Unconstrained()
	c.OnCommandLine = model.TriYes

	got := positionsForMask(dot, true, gs, c)

	want := []model.Position{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}
	assert.Equal(t, want, got)
}

func TestPositionsForMask_OobInteriorRule(t *testing.T) {
	// On a 3x3 out-of-bounds board the only interior cell is the center.
	dot := model.MaskFromStrings([]string{"#"})
	gs := testSettings(3, 3, true, 1)

	got := positionsForMask(dot, true, gs, model.Unconstrained())

	assert.Equal(t, []model.Position{{X: 1, Y: 1}}, got)
}

func TestPositionsForMask_NegativeOffsets(t *testing.T) {
	// A mask whose occupied cell is not at its origin can sit at negative
	// offsets as long as the occupied cell lands on the board.
	offset := model.MaskFromStrings([]string{".#"})
	gs := testSettings(3, 3, false, 1)

	got := positionsForMask(offset, true, gs, model.Unconstrained())

	assert.Len(t, got, 9)
	assert.Contains(t, got, model.Position{X: -1, Y: 0})
	assert.Contains(t, got, model.Position{X: 1, Y: 2})
	assert.NotContains(t, got, model.Position{X: 2, Y: 0})
}

func TestPositionsForMask_MaxBugLevelZeroOffCommandLine(t *testing.T) {
	// A solid piece off the command line carries one bug point, so a zero
	// max bound restricts it to the command line row even without an
	// explicit on-command-line constraint.
	dot := model.MaskFromStrings([]string{"#"})
	gs := testSettings(3, 3, false, 1)
	c := model.Unconstrained()
	c.MaxBugLevel = 0

	got := positionsForMask(dot, true, gs, c)

	want := []model.Position{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}
	assert.Equal(t, want, got)
}

func TestLocationsForMask_SymmetricMaskSingleRotation(t *testing.T) {
	dot := model.MaskFromStrings([]string{"#"})
	gs := testSettings(3, 3, false, 1)

	got := locationsForMask(dot, true, gs, model.Unconstrained(), true)

	require.Len(t, got, 9)
	for _, cand := range got {
		assert.Equal(t, 0, cand.Placement.Loc.Rotation,
			"a rotation-symmetric mask should only be tried at rotation 0")
	}
}

func TestLocationsForMask_BarStopsAfterHalfTurn(t *testing.T) {
	// A straight bar repeats its shape after two quarter turns, so only
	// rotations 0 and 1 produce candidates.
	bar := model.MaskFromStrings([]string{"###"})
	gs := testSettings(3, 3, false, 1)

	got := locationsForMask(bar, true, gs, model.Unconstrained(), true)

	require.Len(t, got, 6)
	rotations := map[int]int{}
	for _, cand := range got {
		rotations[cand.Placement.Loc.Rotation]++
	}
	assert.Equal(t, map[int]int{0: 3, 1: 3}, rotations)
}

func TestLocationsForMask_NotSpinnable(t *testing.T) {
	bar := model.MaskFromStrings([]string{"###"})
	gs := testSettings(3, 3, false, 1)

	got := locationsForMask(bar, true, gs, model.Unconstrained(), false)

	require.Len(t, got, 3)
	for _, cand := range got {
		assert.Equal(t, 0, cand.Placement.Loc.Rotation)
	}
}

func TestCandidatesForPart_ForcedVariant(t *testing.T) {
	compressed := model.MaskFromStrings([]string{"#"})
	uncompressed := model.MaskFromStrings([]string{"##"})
	part := model.NewPart("P", true, 0, compressed, uncompressed)
	gs := testSettings(3, 3, false, 1)

	c := model.Unconstrained()
	c.Compressed = model.TriYes
	got := candidatesForPart(part, gs, c, false)
	require.Len(t, got, 9)
	for _, cand := range got {
		assert.True(t, cand.Placement.Compressed)
	}

	c.Compressed = model.TriNo
	got = candidatesForPart(part, gs, c, false)
	require.Len(t, got, 6)
	for _, cand := range got {
		assert.False(t, cand.Placement.Compressed)
	}
}

func TestCandidatesForPart_EitherTriesBothVariants(t *testing.T) {
	compressed := model.MaskFromStrings([]string{"#"})
	uncompressed := model.MaskFromStrings([]string{"##"})
	part := model.NewPart("P", true, 0, compressed, uncompressed)
	gs := testSettings(3, 3, false, 1)

	got := candidatesForPart(part, gs, model.Unconstrained(), false)

	assert.Len(t, got, 15)
}

func TestCandidatesForPart_IdenticalVariantsCollapse(t *testing.T) {
	part := testPart("P", true, 0, []string{"#"})
	gs := testSettings(3, 3, false, 1)

	got := candidatesForPart(part, gs, model.Unconstrained(), false)

	require.Len(t, got, 9, "identical variants must not double the candidate set")
	for _, cand := range got {
		assert.True(t, cand.Placement.Compressed)
	}
}
