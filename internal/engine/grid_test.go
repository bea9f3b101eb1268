package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/GridFit/internal/model"
)

func testSettings(h, w int, oob bool, commandLine int) model.GridSettings {
	return model.GridSettings{Height: h, Width: w, HasOob: oob, CommandLineRow: commandLine}
}

func TestNewGrid_OobCornersForbidden(t *testing.T) {
	g := NewGrid(testSettings(3, 4, true, 1))

	assert.Equal(t, CellForbidden, g.At(0, 0).Kind)
	assert.Equal(t, CellForbidden, g.At(0, 3).Kind)
	assert.Equal(t, CellForbidden, g.At(2, 0).Kind)
	assert.Equal(t, CellForbidden, g.At(2, 3).Kind)
	assert.Equal(t, CellEmpty, g.At(0, 1).Kind)
	assert.Equal(t, CellEmpty, g.At(1, 0).Kind)
}

func TestNewGrid_NoOobAllEmpty(t *testing.T) {
	g := NewGrid(testSettings(3, 3, false, 1))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, CellEmpty, g.At(y, x).Kind, "cell (%d,%d)", y, x)
		}
	}
}

func TestCanPlace_FitsEmptyBoard(t *testing.T) {
	g := NewGrid(testSettings(3, 3, false, 1))
	square := model.MaskFromStrings([]string{"##", "##"})

	assert.True(t, g.CanPlace(square, model.Position{X: 0, Y: 0}))
	assert.True(t, g.CanPlace(square, model.Position{X: 1, Y: 1}))
}

func TestCanPlace_RejectsClippedMask(t *testing.T) {
	g := NewGrid(testSettings(3, 3, false, 1))
	square := model.MaskFromStrings([]string{"##", "##"})

	assert.False(t, g.CanPlace(square, model.Position{X: -1, Y: 0}))
	assert.False(t, g.CanPlace(square, model.Position{X: 2, Y: 0}))
	assert.False(t, g.CanPlace(square, model.Position{X: 0, Y: 2}))
}

func TestCanPlace_EmptyMaskCellsMayHangOff(t *testing.T) {
	// Only occupied mask cells must land on the board.
	g := NewGrid(testSettings(3, 3, false, 1))
	offset := model.MaskFromStrings([]string{".#"})

	assert.True(t, g.CanPlace(offset, model.Position{X: -1, Y: 0}))
	assert.False(t, g.CanPlace(offset, model.Position{X: 2, Y: 0}))
}

func TestCanPlace_RejectsOverlap(t *testing.T) {
	g := NewGrid(testSettings(3, 3, false, 1))
	dot := model.MaskFromStrings([]string{"#"})
	g.PlaceNoCheck(dot, model.Position{X: 1, Y: 1}, 0)

	square := model.MaskFromStrings([]string{"##", "##"})
	assert.False(t, g.CanPlace(square, model.Position{X: 0, Y: 0}))
	assert.False(t, g.CanPlace(square, model.Position{X: 1, Y: 1}))

	// Empty mask cell over the occupied board cell is fine.
	hook := model.MaskFromStrings([]string{"#.", ".."})
	assert.True(t, g.CanPlace(hook, model.Position{X: 0, Y: 1}))
}

func TestCanPlace_RejectsForbiddenCorner(t *testing.T) {
	g := NewGrid(testSettings(3, 3, true, 1))
	dot := model.MaskFromStrings([]string{"#"})

	assert.False(t, g.CanPlace(dot, model.Position{X: 0, Y: 0}))
	assert.False(t, g.CanPlace(dot, model.Position{X: 2, Y: 2}))
	assert.True(t, g.CanPlace(dot, model.Position{X: 1, Y: 0}))
}

func TestPlaceNoCheck_WritesRequirementIndex(t *testing.T) {
	g := NewGrid(testSettings(3, 3, false, 1))
	bar := model.MaskFromStrings([]string{"##"})
	g.PlaceNoCheck(bar, model.Position{X: 0, Y: 2}, 7)

	require.Equal(t, CellOccupied, g.At(2, 0).Kind)
	assert.Equal(t, 7, g.At(2, 0).Requirement)
	assert.Equal(t, CellOccupied, g.At(2, 1).Kind)
	assert.Equal(t, CellEmpty, g.At(2, 2).Kind)
}

func TestClone_Independent(t *testing.T) {
	g := NewGrid(testSettings(3, 3, false, 1))
	dot := model.MaskFromStrings([]string{"#"})

	clone := g.Clone()
	clone.PlaceNoCheck(dot, model.Position{X: 0, Y: 0}, 0)

	assert.Equal(t, CellEmpty, g.At(0, 0).Kind, "original must not see clone writes")
	assert.Equal(t, CellOccupied, clone.At(0, 0).Kind)
}
