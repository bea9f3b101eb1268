package model

import "github.com/google/uuid"

// Tri represents a three-valued constraint flag: required, forbidden, or
// unconstrained.
type Tri int

const (
	TriEither Tri = iota // No constraint either way
	TriYes               // Must hold
	TriNo                // Must not hold
)

func (t Tri) String() string {
	switch t {
	case TriYes:
		return "Yes"
	case TriNo:
		return "No"
	default:
		return "Either"
	}
}

// UnboundedBugLevel marks a Constraint with no upper bug level bound.
const UnboundedBugLevel = -1

// Part is a placeable piece. Each part carries two alternative shapes for
// the same logical piece: the compressed mask never occupies more cells
// than the uncompressed one, and the two may be identical.
type Part struct {
	ID               string `json:"id"`
	Label            string `json:"label"`
	IsSolid          bool   `json:"is_solid"` // solid glyph piece vs grid ("plus") piece
	Color            int    `json:"color"`    // palette index, used only for adjacency
	CompressedMask   Mask   `json:"compressed_mask"`
	UncompressedMask Mask   `json:"uncompressed_mask"`
}

func NewPart(label string, isSolid bool, color int, compressed, uncompressed Mask) Part {
	return Part{
		ID:               uuid.New().String()[:8],
		Label:            label,
		IsSolid:          isSolid,
		Color:            color,
		CompressedMask:   compressed,
		UncompressedMask: uncompressed,
	}
}

// Constraint restricts how a single requirement may be placed.
//
// The bug level of a placed requirement is derived from the finished board:
// one point for touching the outer ring on an out-of-bounds board, one point
// for a solid part off the command line (or a non-solid part on it), and one
// point per distinct adjacent same-colored requirement.
type Constraint struct {
	Compressed    Tri `json:"compressed"`
	OnCommandLine Tri `json:"on_command_line"`
	MinBugLevel   int `json:"min_bug_level"`
	MaxBugLevel   int `json:"max_bug_level"` // UnboundedBugLevel for no upper bound
}

// Unconstrained returns the constraint that admits every placement.
func Unconstrained() Constraint {
	return Constraint{
		Compressed:    TriEither,
		OnCommandLine: TriEither,
		MinBugLevel:   0,
		MaxBugLevel:   UnboundedBugLevel,
	}
}

// Requirement asks for one placement of one part. Requirements are
// positional: two requirements naming the same part index are independent
// instances that must both be placed.
type Requirement struct {
	PartIndex  int        `json:"part_index"`
	Constraint Constraint `json:"constraint"`
}

// GridSettings describes the board.
type GridSettings struct {
	Height         int  `json:"height"`
	Width          int  `json:"width"`
	HasOob         bool `json:"has_oob"`          // four corner cells are permanently forbidden
	CommandLineRow int  `json:"command_line_row"` // distinguished row index
}

// Position is a board coordinate. A mask's origin may sit off the board
// (negative or past the edges) as long as no occupied mask cell is clipped.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Location is a position plus a rotation in quarter turns (0-3).
type Location struct {
	Position Position `json:"position"`
	Rotation int      `json:"rotation"`
}

// Placement records where one requirement ended up and which mask variant
// was used.
type Placement struct {
	Loc        Location `json:"loc"`
	Compressed bool     `json:"compressed"`
}

// Solution is one placement per requirement, in original requirement order.
type Solution []Placement

// Problem bundles everything the solver needs.
type Problem struct {
	Parts           []Part        `json:"parts"`
	Requirements    []Requirement `json:"requirements"`
	GridSettings    GridSettings  `json:"grid_settings"`
	SpinnableColors []bool        `json:"spinnable_colors"` // per color index; missing = not spinnable
}

// Spinnable reports whether parts of the given color may be rotated.
func (p Problem) Spinnable(color int) bool {
	return color >= 0 && color < len(p.SpinnableColors) && p.SpinnableColors[color]
}

// NewProblem returns an empty problem on a default 7x7 board with the
// command line through the middle row.
func NewProblem() Problem {
	return Problem{
		GridSettings: GridSettings{
			Height:         7,
			Width:          7,
			HasOob:         true,
			CommandLineRow: 3,
		},
	}
}
