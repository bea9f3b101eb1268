package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/GridFit/internal/model"
)

func TestPlaceAll_RendersSolution(t *testing.T) {
	dot := testPart("Dot", true, 0, []string{"#"})
	bar := testPart("Bar", true, 1, []string{"##"})
	reqs := []model.Requirement{
		{PartIndex: 0, Constraint: model.Unconstrained()},
		{PartIndex: 1, Constraint: model.Unconstrained()},
	}
	placements := []model.Placement{
		{Loc: model.Location{Position: model.Position{X: 0, Y: 0}}},
		{Loc: model.Location{Position: model.Position{X: 0, Y: 1}}},
	}

	cells, err := PlaceAll([]model.Part{dot, bar}, reqs, placements, testSettings(2, 2, false, 0))
	require.NoError(t, err)
	assert.Equal(t, []int{0, EmptyCell, 1, 1}, cells)
}

func TestPlaceAll_AppliesRotation(t *testing.T) {
	bar := testPart("Bar", true, 0, []string{"##"})
	reqs := []model.Requirement{{PartIndex: 0, Constraint: model.Unconstrained()}}
	placements := []model.Placement{
		{Loc: model.Location{Position: model.Position{X: 0, Y: 0}, Rotation: 1}},
	}

	cells, err := PlaceAll([]model.Part{bar}, reqs, placements, testSettings(2, 2, false, 0))
	require.NoError(t, err)
	// Rotated a quarter turn the bar runs vertically down column 0.
	assert.Equal(t, []int{0, EmptyCell, 0, EmptyCell}, cells)
}

func TestPlaceAll_LengthMismatch(t *testing.T) {
	dot := testPart("Dot", true, 0, []string{"#"})
	reqs := []model.Requirement{{PartIndex: 0, Constraint: model.Unconstrained()}}

	_, err := PlaceAll([]model.Part{dot}, reqs, nil, testSettings(2, 2, false, 0))
	assert.Error(t, err)
}

func TestPlaceAll_OverlapFails(t *testing.T) {
	dot := testPart("Dot", true, 0, []string{"#"})
	reqs := []model.Requirement{
		{PartIndex: 0, Constraint: model.Unconstrained()},
		{PartIndex: 0, Constraint: model.Unconstrained()},
	}
	same := model.Placement{Loc: model.Location{Position: model.Position{X: 1, Y: 1}}}

	_, err := PlaceAll([]model.Part{dot}, reqs, []model.Placement{same, same}, testSettings(3, 3, false, 1))
	assert.Error(t, err)
}

func TestVerify_RejectsTamperedSolution(t *testing.T) {
	dot := testPart("Dot", true, 0, []string{"#"})
	c := model.Unconstrained()
	c.OnCommandLine = model.TriYes
	p := model.Problem{
		Parts:        []model.Part{dot},
		Requirements: []model.Requirement{{PartIndex: 0, Constraint: c}},
		GridSettings: testSettings(3, 3, false, 1),
	}

	onLine := model.Solution{{Loc: model.Location{Position: model.Position{X: 0, Y: 1}}}}
	assert.True(t, Verify(p, onLine))

	offLine := model.Solution{{Loc: model.Location{Position: model.Position{X: 0, Y: 0}}}}
	assert.False(t, Verify(p, offLine))
}
