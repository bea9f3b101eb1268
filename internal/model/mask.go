package model

import (
	"fmt"
	"strings"
)

// Mask is a 2D boolean occupancy grid describing a part shape relative to
// its own bounding box. Row-major, Height*Width cells. Masks are treated as
// values: rotation and trimming return new masks.
type Mask struct {
	Height int    `json:"height"`
	Width  int    `json:"width"`
	Cells  []bool `json:"cells"`
}

// NewMask builds a mask from row-major cells. len(cells) must be h*w.
func NewMask(h, w int, cells []bool) Mask {
	if len(cells) != h*w {
		panic(fmt.Sprintf("mask cells length %d does not match %dx%d", len(cells), h, w))
	}
	return Mask{Height: h, Width: w, Cells: cells}
}

// MaskFromStrings builds a mask from a row-per-string picture, where '#'
// marks an occupied cell and any other rune an empty one. Convenient for
// catalogs and tests.
func MaskFromStrings(rows []string) Mask {
	h := len(rows)
	w := 0
	for _, r := range rows {
		if len(r) > w {
			w = len(r)
		}
	}
	cells := make([]bool, h*w)
	for y, r := range rows {
		for x, c := range r {
			if c == '#' {
				cells[y*w+x] = true
			}
		}
	}
	return Mask{Height: h, Width: w, Cells: cells}
}

// At reports the cell at row y, column x.
func (m Mask) At(y, x int) bool {
	return m.Cells[y*m.Width+x]
}

// CellCount returns the number of occupied cells.
func (m Mask) CellCount() int {
	n := 0
	for _, c := range m.Cells {
		if c {
			n++
		}
	}
	return n
}

// Equal reports whether two masks have identical dimensions and cells.
func (m Mask) Equal(other Mask) bool {
	if m.Height != other.Height || m.Width != other.Width {
		return false
	}
	for i, c := range m.Cells {
		if c != other.Cells[i] {
			return false
		}
	}
	return true
}

// Rotate90 returns the mask rotated a quarter turn clockwise
// (transpose followed by row reversal).
func (m Mask) Rotate90() Mask {
	out := Mask{Height: m.Width, Width: m.Height, Cells: make([]bool, len(m.Cells))}
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			out.Cells[y*out.Width+x] = m.At(m.Height-1-x, y)
		}
	}
	return out
}

// Rotate returns the mask rotated n quarter turns clockwise.
func (m Mask) Rotate(n int) Mask {
	out := m
	for i := 0; i < n%4; i++ {
		out = out.Rotate90()
	}
	return out
}

// Trimmed returns the minimal bounding box of the occupied cells. An
// all-empty mask is returned unchanged. Trimming is only used to build
// canonical forms for rotation-duplicate detection, never for placement.
func (m Mask) Trimmed() Mask {
	top, bottom := 0, m.Height
	left, right := 0, m.Width

	rowOccupied := func(y int) bool {
		for x := 0; x < m.Width; x++ {
			if m.At(y, x) {
				return true
			}
		}
		return false
	}
	colOccupied := func(x int) bool {
		for y := 0; y < m.Height; y++ {
			if m.At(y, x) {
				return true
			}
		}
		return false
	}

	for top < m.Height-1 && !rowOccupied(top) {
		top++
	}
	for bottom > top+1 && !rowOccupied(bottom-1) {
		bottom--
	}
	for left < m.Width-1 && !colOccupied(left) {
		left++
	}
	for right > left+1 && !colOccupied(right-1) {
		right--
	}

	out := Mask{Height: bottom - top, Width: right - left}
	out.Cells = make([]bool, out.Height*out.Width)
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			out.Cells[y*out.Width+x] = m.At(top+y, left+x)
		}
	}
	return out
}

// Key returns a canonical string encoding of the mask: its dimensions
// followed by its cell bits. Two masks have the same key exactly when they
// are cell-for-cell identical.
func (m Mask) Key() string {
	var b strings.Builder
	b.Grow(len(m.Cells) + 8)
	fmt.Fprintf(&b, "%d;%d;", m.Height, m.Width)
	for _, c := range m.Cells {
		if c {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
