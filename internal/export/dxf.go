package export

import (
	"fmt"

	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"
	dxfdrawing "github.com/yofu/dxf/drawing"

	"github.com/piwi3910/GridFit/internal/engine"
	"github.com/piwi3910/GridFit/internal/model"
)

// Cell edge length in drawing units.
const dxfCellSize = 10.0

// layerColors cycles AutoCAD color numbers for per-requirement layers.
var layerColors = []dxfcolor.ColorNumber{
	dxfcolor.Red,
	dxfcolor.Yellow,
	dxfcolor.Green,
	dxfcolor.Cyan,
	dxfcolor.Blue,
	dxfcolor.Magenta,
}

// ExportDXF writes a single solution as a DXF drawing: the board outline on
// its own layer and each requirement's occupied cells as squares on a
// per-requirement layer. DXF Y grows upward, so board rows are flipped.
func ExportDXF(path string, problem model.Problem, solution model.Solution) error {
	gs := problem.GridSettings
	cells, err := engine.PlaceAll(problem.Parts, problem.Requirements, solution, gs)
	if err != nil {
		return fmt.Errorf("cannot replay solution: %w", err)
	}

	drawing := dxf.NewDrawing()

	// Board outline
	drawing.AddLayer("BOARD", dxfcolor.White, dxf.DefaultLineType, true)
	boardW := float64(gs.Width) * dxfCellSize
	boardH := float64(gs.Height) * dxfCellSize
	drawRect(drawing, 0, 0, boardW, boardH)

	// One layer per requirement, squares for its cells
	for reqIdx := range problem.Requirements {
		part := problem.Parts[problem.Requirements[reqIdx].PartIndex]
		layer := fmt.Sprintf("REQ%d_%s", reqIdx, sanitizeLayerName(part.Label))
		drawing.AddLayer(layer, layerColors[reqIdx%len(layerColors)], dxf.DefaultLineType, true)

		for y := 0; y < gs.Height; y++ {
			for x := 0; x < gs.Width; x++ {
				if cells[y*gs.Width+x] != reqIdx {
					continue
				}
				cx := float64(x) * dxfCellSize
				cy := float64(gs.Height-1-y) * dxfCellSize
				drawRect(drawing, cx, cy, dxfCellSize, dxfCellSize)
			}
		}
	}

	return drawing.SaveAs(path)
}

// drawRect draws an axis-aligned rectangle as four lines on the current
// layer.
func drawRect(drawing *dxfdrawing.Drawing, x, y, w, h float64) {
	drawing.Line(x, y, 0, x+w, y, 0)
	drawing.Line(x+w, y, 0, x+w, y+h, 0)
	drawing.Line(x+w, y+h, 0, x, y+h, 0)
	drawing.Line(x, y+h, 0, x, y, 0)
}

// sanitizeLayerName strips characters DXF layer names do not allow.
func sanitizeLayerName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			out = append(out, r-'a'+'A')
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
