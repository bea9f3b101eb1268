package engine

import (
	"fmt"

	"github.com/piwi3910/GridFit/internal/model"
)

// EmptyCell marks an unoccupied cell in the flat array PlaceAll returns.
const EmptyCell = -1

// PlaceAll replays one concrete placement per requirement onto a fresh
// board and returns the flat row-major cell array of requirement indices,
// with EmptyCell for empty and forbidden cells. It performs no
// admissibility checking beyond geometric fit; it is intended as the
// rendering projection of an already valid solution.
func PlaceAll(parts []model.Part, reqs []model.Requirement, placements []model.Placement, gs model.GridSettings) ([]int, error) {
	if len(placements) != len(reqs) {
		return nil, fmt.Errorf("placements count %d does not match requirements count %d", len(placements), len(reqs))
	}

	grid := NewGrid(gs)
	for reqIdx, placement := range placements {
		part := parts[reqs[reqIdx].PartIndex]
		mask := part.UncompressedMask
		if placement.Compressed {
			mask = part.CompressedMask
		}
		mask = mask.Rotate(placement.Loc.Rotation)

		if !grid.CanPlace(mask, placement.Loc.Position) {
			return nil, fmt.Errorf("requirement %d does not fit at (%d, %d) rotation %d",
				reqIdx, placement.Loc.Position.X, placement.Loc.Position.Y, placement.Loc.Rotation)
		}
		grid.PlaceNoCheck(mask, placement.Loc.Position, reqIdx)
	}

	cells := make([]int, len(grid.cells))
	for i, cell := range grid.cells {
		if cell.Kind == CellOccupied {
			cells[i] = cell.Requirement
		} else {
			cells[i] = EmptyCell
		}
	}
	return cells, nil
}

// Verify re-runs the whole-solution predicate against a solution's replayed
// board. Emitted solutions always pass; the check exists for callers that
// persist or share solutions and want to validate them independently.
func Verify(p model.Problem, solution model.Solution) bool {
	grid := NewGrid(p.GridSettings)
	for reqIdx, placement := range solution {
		part := p.Parts[p.Requirements[reqIdx].PartIndex]
		mask := part.UncompressedMask
		if placement.Compressed {
			mask = part.CompressedMask
		}
		mask = mask.Rotate(placement.Loc.Rotation)
		if !grid.CanPlace(mask, placement.Loc.Position) {
			return false
		}
		grid.PlaceNoCheck(mask, placement.Loc.Position, reqIdx)
	}
	return solutionAdmissible(p.Parts, p.Requirements, grid)
}
