package engine

import (
	"sort"
	"strconv"
	"strings"

	"github.com/piwi3910/GridFit/internal/model"
)

// requirementCandidates pairs a requirement index with its candidate set,
// in the order the search will visit them.
type requirementCandidates struct {
	reqIdx int
	cands  []Candidate
}

// frame is one depth level of the search. grid is the board with all
// shallower levels committed; next is the cursor into this level's
// candidate set; chosen is the placement that produced the child frame.
type frame struct {
	grid   *Grid
	next   int
	chosen model.Placement
}

// Iterator is a lazy, pull-based enumeration of a problem's solutions.
// It is single-goroutine, deterministic, and restartable only by building a
// new one with Solve. The visited set is owned by the iterator, so two
// concurrent solves never interfere.
type Iterator struct {
	parts []model.Part
	reqs  []model.Requirement
	order []requirementCandidates

	visited map[string]struct{}
	stack   []frame

	// yieldEmpty handles the zero-requirement problem, which has exactly
	// one (empty) solution.
	yieldEmpty bool
	done       bool
}

// Solve prepares the enumeration for a problem. No search work happens
// beyond candidate generation until Next is called.
func Solve(p model.Problem) *Iterator {
	it := &Iterator{
		parts:   p.Parts,
		reqs:    p.Requirements,
		visited: make(map[string]struct{}),
	}

	gs := p.GridSettings
	if gs.Height <= 0 || gs.Width <= 0 || gs.CommandLineRow >= gs.Height {
		it.done = true
		return it
	}
	if !requirementsFeasible(p.Parts, p.Requirements, gs) {
		it.done = true
		return it
	}

	it.order = make([]requirementCandidates, 0, len(p.Requirements))
	for i, req := range p.Requirements {
		part := p.Parts[req.PartIndex]
		cands := candidatesForPart(part, gs, req.Constraint, p.Spinnable(part.Color))
		if len(cands) == 0 {
			// Some requirement can never be placed at all.
			it.done = true
			return it
		}
		it.order = append(it.order, requirementCandidates{reqIdx: i, cands: cands})
	}

	// Fit hard-to-fit requirements first. Ties keep original order, which
	// groups instances of the same part together and helps the duplicate
	// detection below.
	sort.SliceStable(it.order, func(i, j int) bool {
		a, b := it.order[i], it.order[j]
		if len(a.cands) != len(b.cands) {
			return len(a.cands) < len(b.cands)
		}
		return a.reqIdx < b.reqIdx
	})

	if len(it.order) == 0 {
		it.yieldEmpty = true
		return it
	}

	it.stack = []frame{{grid: NewGrid(gs)}}
	return it
}

// Next returns the next solution, or ok == false once the search space is
// exhausted. Placements within a returned solution are in original
// requirement order.
func (it *Iterator) Next() (model.Solution, bool) {
	if it.done {
		return nil, false
	}
	if it.yieldEmpty {
		it.yieldEmpty = false
		it.done = true
		return model.Solution{}, true
	}

	for len(it.stack) > 0 {
		level := len(it.stack) - 1
		f := &it.stack[level]
		rc := it.order[level]
		req := it.reqs[rc.reqIdx]
		part := it.parts[req.PartIndex]

		descended := false
		for f.next < len(rc.cands) {
			cand := rc.cands[f.next]
			f.next++

			if !f.grid.CanPlace(cand.Mask, cand.Placement.Loc.Position) {
				continue
			}
			next := f.grid.Clone()
			next.PlaceNoCheck(cand.Mask, cand.Placement.Loc.Position, rc.reqIdx)

			if !placementAdmissible(next, part.IsSolid, rc.reqIdx, req.Constraint) {
				continue
			}

			// Two assignments of interchangeable same-part requirements to
			// the same cells are the same arrangement; explore it once.
			key := it.partKey(next)
			if _, ok := it.visited[key]; ok {
				continue
			}
			it.visited[key] = struct{}{}

			f.chosen = cand.Placement

			if level == len(it.order)-1 {
				if !solutionAdmissible(it.parts, it.reqs, next) {
					continue
				}
				return it.solution(), true
			}

			it.stack = append(it.stack, frame{grid: next})
			descended = true
			break
		}

		if !descended {
			it.stack = it.stack[:len(it.stack)-1]
		}
	}

	it.done = true
	return nil, false
}

// solution assembles the current stack's placements back into original
// requirement order.
func (it *Iterator) solution() model.Solution {
	out := make(model.Solution, len(it.reqs))
	for level, f := range it.stack {
		out[it.order[level].reqIdx] = f.chosen
	}
	return out
}

// partKey encodes the board with each occupied cell mapped to its
// requirement's part index, so that arrangements differing only in which
// same-part requirement fills which slot collapse to the same key.
func (it *Iterator) partKey(g *Grid) string {
	var b strings.Builder
	b.Grow(len(g.cells) * 2)
	for _, cell := range g.cells {
		if cell.Kind == CellOccupied {
			b.WriteString(strconv.Itoa(it.reqs[cell.Requirement].PartIndex))
		} else {
			b.WriteByte('.')
		}
		b.WriteByte(',')
	}
	return b.String()
}
