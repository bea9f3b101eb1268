// GridFit: Constraint Grid Placement Solver
//
// A cross-platform desktop application for enumerating every valid
// arrangement of shape-masked parts on a bounded grid under per-part
// placement constraints.
//
// Build:
//   go build -o gridfit ./cmd/gridfit
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o gridfit.exe ./cmd/gridfit
//   GOOS=darwin  GOARCH=amd64 go build -o gridfit-darwin ./cmd/gridfit
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/GridFit/internal/ui"
)

func main() {
	application := app.NewWithID("com.piwi3910.gridfit")

	window := application.NewWindow("GridFit - Constraint Grid Placement Solver")

	appUI := ui.NewApp(window)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1200, 800))
	window.CenterOnScreen()

	window.ShowAndRun()
}
