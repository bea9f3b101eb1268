// Package engine implements the placement board and the exhaustive
// constraint search that enumerates every distinct valid arrangement of a
// problem's requirements.
package engine

import "github.com/piwi3910/GridFit/internal/model"

// CellKind discriminates the states a board cell can be in.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellForbidden
	CellOccupied
)

// Cell is one board cell. Requirement is meaningful only when Kind is
// CellOccupied.
type Cell struct {
	Kind        CellKind
	Requirement int
}

// Grid is a bounded mutable board of cells. Each search branch works on its
// own clone, so sibling branches never observe each other's writes.
type Grid struct {
	Settings model.GridSettings
	cells    []Cell
}

// NewGrid returns an empty board. When the settings mark the board as
// having out-of-bounds corners, the four corner cells are forbidden.
func NewGrid(settings model.GridSettings) *Grid {
	g := &Grid{
		Settings: settings,
		cells:    make([]Cell, settings.Height*settings.Width),
	}
	if settings.HasOob {
		h, w := settings.Height, settings.Width
		g.cells[0] = Cell{Kind: CellForbidden}
		g.cells[w-1] = Cell{Kind: CellForbidden}
		g.cells[(h-1)*w] = Cell{Kind: CellForbidden}
		g.cells[h*w-1] = Cell{Kind: CellForbidden}
	}
	return g
}

// At returns the cell at row y, column x. Coordinates must be in bounds.
func (g *Grid) At(y, x int) Cell {
	return g.cells[y*g.Settings.Width+x]
}

// CanPlace reports whether the mask fits at pos. The position may hang off
// the board in any direction; the placement is rejected if any occupied mask
// cell would be clipped off the board, or if any visible occupied cell maps
// onto a non-empty board cell.
func (g *Grid) CanPlace(mask model.Mask, pos model.Position) bool {
	h, w := g.Settings.Height, g.Settings.Width
	for my := 0; my < mask.Height; my++ {
		for mx := 0; mx < mask.Width; mx++ {
			if !mask.At(my, mx) {
				continue
			}
			by := pos.Y + my
			bx := pos.X + mx
			if by < 0 || by >= h || bx < 0 || bx >= w {
				return false
			}
			if g.At(by, bx).Kind != CellEmpty {
				return false
			}
		}
	}
	return true
}

// PlaceNoCheck writes the requirement index into every visible occupied
// cell of the mask. The caller must have already confirmed CanPlace.
func (g *Grid) PlaceNoCheck(mask model.Mask, pos model.Position, reqIdx int) {
	h, w := g.Settings.Height, g.Settings.Width
	for my := 0; my < mask.Height; my++ {
		for mx := 0; mx < mask.Width; mx++ {
			if !mask.At(my, mx) {
				continue
			}
			by := pos.Y + my
			bx := pos.X + mx
			if by < 0 || by >= h || bx < 0 || bx >= w {
				continue
			}
			g.cells[by*w+bx] = Cell{Kind: CellOccupied, Requirement: reqIdx}
		}
	}
}

// Clone returns a fully independent copy of the board.
func (g *Grid) Clone() *Grid {
	out := &Grid{
		Settings: g.Settings,
		cells:    make([]Cell, len(g.cells)),
	}
	copy(out.cells, g.cells)
	return out
}

// onRing reports whether (y, x) lies on the board's outer ring.
func (g *Grid) onRing(y, x int) bool {
	return y == 0 || y == g.Settings.Height-1 || x == 0 || x == g.Settings.Width-1
}
