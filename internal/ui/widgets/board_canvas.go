package widgets

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/GridFit/internal/engine"
	"github.com/piwi3910/GridFit/internal/model"
)

// Requirement colors, cycled for visual distinction.
var partColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 200},  // green
	{R: 33, G: 150, B: 243, A: 200}, // blue
	{R: 255, G: 152, B: 0, A: 200},  // orange
	{R: 156, G: 39, B: 176, A: 200}, // purple
	{R: 0, G: 188, B: 212, A: 200},  // cyan
	{R: 244, G: 67, B: 54, A: 200},  // red
	{R: 255, G: 235, B: 59, A: 200}, // yellow
	{R: 121, G: 85, B: 72, A: 200},  // brown
}

// BoardCanvas renders one solution replayed onto the board: colored squares
// per requirement, the command line row highlighted, corner cells darkened
// on out-of-bounds boards.
type BoardCanvas struct {
	widget.BaseWidget
	problem   model.Problem
	cells     []int // requirement index per cell, engine.EmptyCell when free
	maxWidth  float32
	maxHeight float32
}

// NewBoardCanvas builds a canvas for a solved board. cells is the flat
// array produced by engine.PlaceAll; pass nil for an empty board preview.
func NewBoardCanvas(problem model.Problem, cells []int, maxW, maxH float32) *BoardCanvas {
	bc := &BoardCanvas{
		problem:   problem,
		cells:     cells,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	bc.ExtendBaseWidget(bc)
	return bc
}

// SetSolution swaps the displayed cells and refreshes the widget.
func (bc *BoardCanvas) SetSolution(cells []int) {
	bc.cells = cells
	bc.Refresh()
}

// SetProblem replaces the board definition, clearing any displayed solution.
func (bc *BoardCanvas) SetProblem(problem model.Problem) {
	bc.problem = problem
	bc.cells = nil
	bc.Refresh()
}

func (bc *BoardCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newBoardCanvasRenderer(bc)
}

type boardCanvasRenderer struct {
	bc      *BoardCanvas
	objects []fyne.CanvasObject
}

func newBoardCanvasRenderer(bc *BoardCanvas) *boardCanvasRenderer {
	r := &boardCanvasRenderer{bc: bc}
	r.rebuild()
	return r
}

func (r *boardCanvasRenderer) rebuild() {
	r.objects = nil

	gs := r.bc.problem.GridSettings
	if gs.Width <= 0 || gs.Height <= 0 {
		return
	}

	cellSize := r.bc.maxWidth / float32(gs.Width)
	if alt := r.bc.maxHeight / float32(gs.Height); alt < cellSize {
		cellSize = alt
	}
	canvasW := float32(gs.Width) * cellSize
	canvasH := float32(gs.Height) * cellSize

	// Board background
	bg := canvas.NewRectangle(color.NRGBA{R: 240, G: 240, B: 240, A: 255})
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	bg.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, bg)

	// Command line row highlight
	if gs.CommandLineRow >= 0 && gs.CommandLineRow < gs.Height {
		line := canvas.NewRectangle(color.NRGBA{R: 180, G: 205, B: 240, A: 255})
		line.Resize(fyne.NewSize(canvasW, cellSize))
		line.Move(fyne.NewPos(0, float32(gs.CommandLineRow)*cellSize))
		r.objects = append(r.objects, line)
	}

	for y := 0; y < gs.Height; y++ {
		for x := 0; x < gs.Width; x++ {
			px := float32(x) * cellSize
			py := float32(y) * cellSize

			reqIdx := engine.EmptyCell
			if r.bc.cells != nil {
				reqIdx = r.bc.cells[y*gs.Width+x]
			}

			corner := gs.HasOob &&
				(y == 0 || y == gs.Height-1) && (x == 0 || x == gs.Width-1)

			if corner && reqIdx == engine.EmptyCell {
				dark := canvas.NewRectangle(color.NRGBA{R: 50, G: 50, B: 50, A: 255})
				dark.Resize(fyne.NewSize(cellSize, cellSize))
				dark.Move(fyne.NewPos(px, py))
				r.objects = append(r.objects, dark)
			}

			if reqIdx != engine.EmptyCell {
				cell := canvas.NewRectangle(partColors[reqIdx%len(partColors)])
				cell.Resize(fyne.NewSize(cellSize, cellSize))
				cell.Move(fyne.NewPos(px, py))
				r.objects = append(r.objects, cell)
			}

			// Cell border
			border := canvas.NewRectangle(color.Transparent)
			border.StrokeColor = color.NRGBA{R: 140, G: 140, B: 140, A: 255}
			border.StrokeWidth = 1
			border.Resize(fyne.NewSize(cellSize, cellSize))
			border.Move(fyne.NewPos(px, py))
			r.objects = append(r.objects, border)
		}
	}

	// Board outline
	outline := canvas.NewRectangle(color.Transparent)
	outline.StrokeColor = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
	outline.StrokeWidth = 2
	outline.Resize(fyne.NewSize(canvasW, canvasH))
	outline.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, outline)
}

func (r *boardCanvasRenderer) Layout(_ fyne.Size) {}

func (r *boardCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.bc.maxWidth, r.bc.maxHeight)
}

func (r *boardCanvasRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.bc)
}

func (r *boardCanvasRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *boardCanvasRenderer) Destroy() {}
