package engine

import "github.com/piwi3910/GridFit/internal/model"

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

// placementAdmissible checks a single requirement's placement against the
// board as it currently stands. It is used both during isolated candidate
// generation (single piece on an empty board) and during the search (piece
// on a partially filled board).
//
// Only the upper bug level bound is checked here: same-color adjacency can
// only raise the final level, so an early minimum check could reject
// placements that a fuller board would make admissible.
func placementAdmissible(g *Grid, isSolid bool, reqIdx int, c model.Constraint) bool {
	h, w := g.Settings.Height, g.Settings.Width

	// A piece may never sit entirely on the boundary ring of an
	// out-of-bounds board.
	if g.Settings.HasOob {
		interior := false
		for y := 1; y < h-1 && !interior; y++ {
			for x := 1; x < w-1; x++ {
				if cell := g.At(y, x); cell.Kind == CellOccupied && cell.Requirement == reqIdx {
					interior = true
					break
				}
			}
		}
		if !interior {
			return false
		}
	}

	outOfBounds := false
	if g.Settings.HasOob {
		for y := 0; y < h && !outOfBounds; y++ {
			for x := 0; x < w; x++ {
				if !g.onRing(y, x) {
					continue
				}
				if cell := g.At(y, x); cell.Kind == CellOccupied && cell.Requirement == reqIdx {
					outOfBounds = true
					break
				}
			}
		}
	}

	onCommandLine := false
	if row := g.Settings.CommandLineRow; row >= 0 && row < h {
		for x := 0; x < w; x++ {
			if cell := g.At(row, x); cell.Kind == CellOccupied && cell.Requirement == reqIdx {
				onCommandLine = true
				break
			}
		}
	}

	switch c.OnCommandLine {
	case model.TriYes:
		if !onCommandLine {
			return false
		}
	case model.TriNo:
		if onCommandLine {
			return false
		}
	}

	// Partial bug level: a solid piece is buggy off the command line, a
	// non-solid piece is buggy on it.
	partial := btoi(outOfBounds) + btoi(isSolid == !onCommandLine)
	if c.MaxBugLevel != model.UnboundedBugLevel && partial > c.MaxBugLevel {
		return false
	}

	return true
}

// solutionAdmissible validates a completed board: every requirement's final
// bug level, including same-color adjacency, must fall within its
// constraint's bounds.
func solutionAdmissible(parts []model.Part, reqs []model.Requirement, g *Grid) bool {
	type detail struct {
		outOfBounds   bool
		onCommandLine bool
		adjacent      map[int]struct{}
	}

	details := make([]detail, len(reqs))
	h, w := g.Settings.Height, g.Settings.Width
	neighbors := [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := g.At(y, x)
			if cell.Kind != CellOccupied {
				continue
			}
			reqIdx := cell.Requirement
			color := parts[reqs[reqIdx].PartIndex].Color
			d := &details[reqIdx]

			if g.Settings.HasOob && g.onRing(y, x) {
				d.outOfBounds = true
			}
			if y == g.Settings.CommandLineRow {
				d.onCommandLine = true
			}

			for _, n := range neighbors {
				ny, nx := y+n[0], x+n[1]
				if ny < 0 || ny >= h || nx < 0 || nx >= w {
					continue
				}
				// Boundary-to-boundary touching never counts on an
				// out-of-bounds board.
				if g.Settings.HasOob && g.onRing(y, x) && g.onRing(ny, nx) {
					continue
				}
				other := g.At(ny, nx)
				if other.Kind != CellOccupied || other.Requirement == reqIdx {
					continue
				}
				if parts[reqs[other.Requirement].PartIndex].Color != color {
					continue
				}
				if d.adjacent == nil {
					d.adjacent = make(map[int]struct{})
				}
				d.adjacent[other.Requirement] = struct{}{}
			}
		}
	}

	for i, req := range reqs {
		part := parts[req.PartIndex]
		d := details[i]
		level := btoi(d.outOfBounds) + btoi(part.IsSolid == !d.onCommandLine) + len(d.adjacent)

		if level < req.Constraint.MinBugLevel {
			return false
		}
		if req.Constraint.MaxBugLevel != model.UnboundedBugLevel && level > req.Constraint.MaxBugLevel {
			return false
		}
	}

	return true
}
