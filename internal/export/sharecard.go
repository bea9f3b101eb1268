package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/GridFit/internal/model"
	"github.com/piwi3910/GridFit/internal/share"
)

// Share card layout constants (A4 portrait in mm).
const (
	cardPageWidth  = 210.0
	cardPageHeight = 297.0
	cardMargin     = 20.0
	cardQRSize     = 60.0 // QR code size in mm
)

// ExportShareCard generates a one-page PDF containing the problem's share
// link as a QR code plus a readable constraint summary, for handing a
// problem to someone else without a URL.
func ExportShareCard(path string, problem model.Problem, baseURL string) error {
	if len(problem.Requirements) == 0 {
		return fmt.Errorf("no requirements to share")
	}

	url := share.URL(baseURL, problem)
	png, err := share.QRPNG(url, 512)
	if err != nil {
		return fmt.Errorf("failed to render QR code: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, cardMargin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(cardMargin, cardMargin)
	pdf.CellFormat(cardPageWidth-2*cardMargin, 10, "GridFit Problem", "", 0, "L", false, 0, "")

	// QR code, centered
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("share-qr", opts, bytes.NewReader(png))
	qrX := (cardPageWidth - cardQRSize) / 2
	pdf.ImageOptions("share-qr", qrX, cardMargin+15, cardQRSize, cardQRSize, false, opts, 0, "")

	// Link text under the QR code
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(cardMargin, cardMargin+15+cardQRSize+5)
	pdf.MultiCell(cardPageWidth-2*cardMargin, 4, url, "", "C", false)
	pdf.SetTextColor(0, 0, 0)

	// Requirement summary
	y := cardMargin + 15 + cardQRSize + 25
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(cardMargin, y)
	pdf.CellFormat(cardPageWidth-2*cardMargin, 6, fmt.Sprintf("Requirements (%d)", len(problem.Requirements)), "", 0, "L", false, 0, "")
	y += 8

	pdf.SetFont("Helvetica", "", 10)
	for _, req := range problem.Requirements {
		part := problem.Parts[req.PartIndex]
		c := req.Constraint
		maxBugs := "any"
		if c.MaxBugLevel != model.UnboundedBugLevel {
			maxBugs = fmt.Sprintf("%d", c.MaxBugLevel)
		}
		line := fmt.Sprintf("%s: compressed %s, command line %s, bugs %d-%s",
			part.Label, c.Compressed, c.OnCommandLine, c.MinBugLevel, maxBugs)
		pdf.SetXY(cardMargin, y)
		pdf.CellFormat(cardPageWidth-2*cardMargin, 5, line, "", 0, "L", false, 0, "")
		y += 6
		if y > cardPageHeight-cardMargin {
			break
		}
	}

	return pdf.OutputFileAndClose(path)
}
