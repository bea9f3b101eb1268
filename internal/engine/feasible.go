package engine

import "github.com/piwi3910/GridFit/internal/model"

// requirementsFeasible evaluates two cheap necessary (not sufficient)
// conditions before any search work. A failing problem is trivially
// unsolvable and yields an empty enumeration.
func requirementsFeasible(parts []model.Part, reqs []model.Requirement, gs model.GridSettings) bool {
	// A row holds at most Width distinct columns, so at most Width
	// requirements can be forced onto the command line.
	onCommandLine := 0
	for _, req := range reqs {
		if req.Constraint.OnCommandLine == model.TriYes {
			onCommandLine++
		}
	}
	if onCommandLine > gs.Width {
		return false
	}

	// The occupied cells of the statically forced mask variants must fit the
	// board. An unconstrained variant is charged at the uncompressed count;
	// the search may still pick the smaller compressed mask, so this figure
	// is deliberately a static over-estimate.
	totalCells := 0
	for _, req := range reqs {
		part := parts[req.PartIndex]
		if req.Constraint.Compressed == model.TriYes {
			totalCells += part.CompressedMask.CellCount()
		} else {
			totalCells += part.UncompressedMask.CellCount()
		}
	}
	capacity := gs.Width * gs.Height
	if gs.HasOob {
		capacity -= 4
	}
	return totalCells <= capacity
}
