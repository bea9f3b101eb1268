package engine

import "github.com/piwi3910/GridFit/internal/model"

// Candidate is one locally admissible placement option for a requirement:
// a concrete mask (rotation already applied) plus the placement record
// that selecting it would produce.
type Candidate struct {
	Placement model.Placement
	Mask      model.Mask
}

// positionsForMask enumerates every position where the mask, in its current
// orientation, fits an otherwise empty board and passes the single-placement
// predicate in isolation.
func positionsForMask(mask model.Mask, isSolid bool, gs model.GridSettings, c model.Constraint) []model.Position {
	var positions []model.Position

	// Any offset where at least one mask cell could still land on the board.
	for y := -(gs.Height - 1); y < gs.Height; y++ {
		for x := -(gs.Width - 1); x < gs.Width; x++ {
			pos := model.Position{X: x, Y: y}
			grid := NewGrid(gs)
			if !grid.CanPlace(mask, pos) {
				continue
			}
			grid.PlaceNoCheck(mask, pos, 0)
			if !placementAdmissible(grid, isSolid, 0, c) {
				continue
			}
			positions = append(positions, pos)
		}
	}

	return positions
}

// locationsForMask expands positionsForMask across rotations. Rotation 0 is
// always considered; rotations 1-3 only when the color is spinnable, and
// rotation enumeration stops early once a rotated mask trims to a shape
// already seen (further rotations would only repeat it).
func locationsForMask(mask model.Mask, isSolid bool, gs model.GridSettings, c model.Constraint, spinnable bool) []Candidate {
	var out []Candidate
	for _, pos := range positionsForMask(mask, isSolid, gs, c) {
		out = append(out, Candidate{
			Placement: model.Placement{Loc: model.Location{Position: pos, Rotation: 0}},
			Mask:      mask,
		})
	}

	if !spinnable {
		return out
	}

	seen := map[string]struct{}{mask.Trimmed().Key(): {}}
	rotated := mask
	for rot := 1; rot < 4; rot++ {
		rotated = rotated.Rotate90()
		if _, ok := seen[rotated.Trimmed().Key()]; ok {
			break
		}
		for _, pos := range positionsForMask(rotated, isSolid, gs, c) {
			out = append(out, Candidate{
				Placement: model.Placement{Loc: model.Location{Position: pos, Rotation: rot}},
				Mask:      rotated,
			})
		}
	}

	return out
}

// candidatesForPart produces the full candidate set for one requirement:
// the union over the mask variants its constraint allows. A part whose two
// variants are bit-identical yields a single variant regardless of the
// constraint, since the placements would be indistinguishable.
func candidatesForPart(part model.Part, gs model.GridSettings, c model.Constraint, spinnable bool) []Candidate {
	withVariant := func(mask model.Mask, compressed bool) []Candidate {
		cands := locationsForMask(mask, part.IsSolid, gs, c, spinnable)
		for i := range cands {
			cands[i].Placement.Compressed = compressed
		}
		return cands
	}

	switch {
	case c.Compressed == model.TriYes:
		return withVariant(part.CompressedMask, true)
	case c.Compressed == model.TriNo:
		return withVariant(part.UncompressedMask, false)
	case part.CompressedMask.Equal(part.UncompressedMask):
		return withVariant(part.CompressedMask, true)
	default:
		return append(
			withVariant(part.CompressedMask, true),
			withVariant(part.UncompressedMask, false)...)
	}
}
