// Package export provides functionality for exporting enumerated solutions
// to various file formats.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/GridFit/internal/engine"
	"github.com/piwi3910/GridFit/internal/model"
)

// partColor represents an RGB color for a placed requirement.
type partColor struct {
	R, G, B int
}

// partColors mirrors the color scheme used in the UI board canvas widget.
var partColors = []partColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document of enumerated solutions. Each solution
// is rendered on its own page as a board diagram, followed by a summary
// page.
func ExportPDF(path string, problem model.Problem, solutions []model.Solution) error {
	if len(solutions) == 0 {
		return fmt.Errorf("no solutions to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, solution := range solutions {
		cells, err := engine.PlaceAll(problem.Parts, problem.Requirements, solution, problem.GridSettings)
		if err != nil {
			return fmt.Errorf("solution %d: %w", i+1, err)
		}
		pdf.AddPage()
		renderSolutionPage(pdf, problem, solution, cells, i+1, len(solutions))
	}

	pdf.AddPage()
	renderSummaryPage(pdf, problem, len(solutions))

	return pdf.OutputFileAndClose(path)
}

// renderSolutionPage draws a single solution on the current PDF page.
func renderSolutionPage(pdf *fpdf.Fpdf, problem model.Problem, solution model.Solution, cells []int, solutionNum, total int) {
	gs := problem.GridSettings

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Solution %d of %d (%dx%d board)", solutionNum, total, gs.Width, gs.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Requirements: %d | Command line row: %d | Out-of-bounds corners: %v",
		len(problem.Requirements), gs.CommandLineRow, gs.HasOob)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Calculate drawing area
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	cellSize := math.Min(drawWidth/float64(gs.Width), drawHeight/float64(gs.Height))
	canvasW := float64(gs.Width) * cellSize
	canvasH := float64(gs.Height) * cellSize

	// Center the board horizontally
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Board background
	pdf.SetFillColor(245, 245, 245)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Command line row highlight
	if gs.CommandLineRow >= 0 && gs.CommandLineRow < gs.Height {
		pdf.SetFillColor(225, 235, 250)
		pdf.Rect(offsetX, offsetY+float64(gs.CommandLineRow)*cellSize, canvasW, cellSize, "F")
	}

	// Cells
	for y := 0; y < gs.Height; y++ {
		for x := 0; x < gs.Width; x++ {
			cx := offsetX + float64(x)*cellSize
			cy := offsetY + float64(y)*cellSize
			reqIdx := cells[y*gs.Width+x]

			corner := gs.HasOob &&
				(y == 0 || y == gs.Height-1) && (x == 0 || x == gs.Width-1)

			switch {
			case corner && reqIdx == engine.EmptyCell:
				pdf.SetFillColor(60, 60, 60)
				pdf.SetDrawColor(30, 30, 30)
				pdf.SetLineWidth(0.2)
				pdf.Rect(cx, cy, cellSize, cellSize, "FD")
			case reqIdx != engine.EmptyCell:
				col := partColors[reqIdx%len(partColors)]
				pdf.SetFillColor(col.R, col.G, col.B)
				pdf.SetDrawColor(30, 30, 30)
				pdf.SetLineWidth(0.3)
				pdf.Rect(cx, cy, cellSize, cellSize, "FD")
			default:
				pdf.SetDrawColor(200, 200, 200)
				pdf.SetLineWidth(0.1)
				pdf.Rect(cx, cy, cellSize, cellSize, "D")
			}
		}
	}

	drawLegend(pdf, problem, solution, offsetY+canvasH+5)
}

// drawLegend renders a compact legend of requirements at the bottom of a
// solution page.
func drawLegend(pdf *fpdf.Fpdf, problem model.Problem, solution model.Solution, startY float64) {
	pdf.SetFont("Helvetica", "", 8)
	x := marginLeft
	y := startY

	for i, req := range problem.Requirements {
		part := problem.Parts[req.PartIndex]
		col := partColors[i%len(partColors)]

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		pdf.Rect(x, y, 4, 4, "FD")

		placement := solution[i]
		entry := fmt.Sprintf("%s @ (%d,%d) r%d", part.Label,
			placement.Loc.Position.X, placement.Loc.Position.Y, placement.Loc.Rotation)
		if placement.Compressed {
			entry += " (compressed)"
		}
		entryW := pdf.GetStringWidth(entry) + 8

		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(x+5, y)
		pdf.CellFormat(entryW, 4, entry, "", 0, "L", false, 0, "")

		x += entryW + 10
		if x > pageWidth-marginRight-40 {
			x = marginLeft
			y += 6
		}
	}
}

// renderSummaryPage draws the final overview page.
func renderSummaryPage(pdf *fpdf.Fpdf, problem model.Problem, solutionCount int) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Enumeration Summary", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	y := marginTop + 15.0

	lines := []string{
		fmt.Sprintf("Solutions exported: %d", solutionCount),
		fmt.Sprintf("Board: %dx%d, command line row %d, out-of-bounds corners: %v",
			problem.GridSettings.Width, problem.GridSettings.Height,
			problem.GridSettings.CommandLineRow, problem.GridSettings.HasOob),
		fmt.Sprintf("Requirements: %d", len(problem.Requirements)),
	}
	for _, line := range lines {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 6, line, "", 0, "L", false, 0, "")
		y += 7
	}

	// Per-requirement constraint table
	y += 5
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(60, 6, "Part", "B", 0, "L", false, 0, "")
	pdf.CellFormat(30, 6, "Compressed", "B", 0, "L", false, 0, "")
	pdf.CellFormat(35, 6, "Command line", "B", 0, "L", false, 0, "")
	pdf.CellFormat(30, 6, "Bug level", "B", 0, "L", false, 0, "")
	y += 7

	pdf.SetFont("Helvetica", "", 10)
	for _, req := range problem.Requirements {
		part := problem.Parts[req.PartIndex]
		c := req.Constraint
		maxBugs := "any"
		if c.MaxBugLevel != model.UnboundedBugLevel {
			maxBugs = fmt.Sprintf("%d", c.MaxBugLevel)
		}
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(60, 6, part.Label, "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, c.Compressed.String(), "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, c.OnCommandLine.String(), "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d - %s", c.MinBugLevel, maxBugs), "", 0, "L", false, 0, "")
		y += 6
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
	}
}
