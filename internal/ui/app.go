// Package ui implements the desktop front end. It is a thin consumer of the
// solver: all search work runs in an internal/worker session so the event
// loop is never blocked.
package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/GridFit/internal/engine"
	"github.com/piwi3910/GridFit/internal/export"
	reqimporter "github.com/piwi3910/GridFit/internal/importer"
	"github.com/piwi3910/GridFit/internal/model"
	"github.com/piwi3910/GridFit/internal/project"
	"github.com/piwi3910/GridFit/internal/share"
	"github.com/piwi3910/GridFit/internal/ui/widgets"
	"github.com/piwi3910/GridFit/internal/worker"
)

// App holds all application state and UI references.
type App struct {
	window  fyne.Window
	config  model.AppConfig
	catalog model.Catalog
	problem model.Problem
	tabs    *container.AppTabs

	session   *worker.Session
	solutions []model.Solution
	current   int // index into solutions shown on the board
	exhausted bool

	// UI references for dynamic updates
	requirementsContainer *fyne.Container
	boardCanvas           *widgets.BoardCanvas
	statusLabel           *widget.Label
}

func NewApp(window fyne.Window) *App {
	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		config = model.DefaultAppConfig()
	}
	catalog, _, err := project.LoadOrCreateCatalog()
	if err != nil {
		catalog = model.DefaultCatalog()
	}

	problem := model.NewProblem()
	problem.Parts = catalog.Parts

	return &App{
		window:  window,
		config:  config,
		catalog: catalog,
		problem: problem,
		current: -1,
	}
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Problem", func() {
			a.resetSearch()
			a.problem = model.NewProblem()
			a.problem.Parts = a.catalog.Parts
			a.refreshRequirementsList()
			a.refreshBoard()
		}),
		fyne.NewMenuItem("Open Problem...", func() {
			a.loadProblem()
		}),
		fyne.NewMenuItem("Save Problem...", func() {
			a.saveProblem()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Requirements from CSV...", func() {
			a.importRequirements(false)
		}),
		fyne.NewMenuItem("Import Requirements from Excel...", func() {
			a.importRequirements(true)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Solutions to PDF...", func() {
			a.exportPDF()
		}),
		fyne.NewMenuItem("Export Current Solution to DXF...", func() {
			a.exportDXF()
		}),
		fyne.NewMenuItem("Export Share Card...", func() {
			a.exportShareCard()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Clear All Requirements", func() {
			a.resetSearch()
			a.problem.Requirements = nil
			a.refreshRequirementsList()
		}),
		fyne.NewMenuItem("Copy Share Link", func() {
			url := share.URL(a.config.ShareBaseURL, a.problem)
			a.window.Clipboard().SetContent(url)
			a.setStatus("Share link copied to clipboard")
		}),
	)

	solveMenu := fyne.NewMenu("Solve",
		fyne.NewMenuItem("Start Search", func() {
			a.startSearch()
			a.tabs.SelectIndex(2)
		}),
		fyne.NewMenuItem("Next Solution", func() {
			a.nextSolution()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, solveMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About GridFit",
		"GridFit: Constraint Grid Placement Solver\n\n"+
			"Enumerates every valid arrangement of shape-masked\n"+
			"parts on a bounded board under per-part constraints.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	requirementsTab := container.NewTabItem("Requirements", a.buildRequirementsPanel())
	boardTab := container.NewTabItem("Board", a.buildBoardPanel())
	solutionsTab := container.NewTabItem("Solutions", a.buildSolutionsPanel())

	a.tabs = container.NewAppTabs(requirementsTab, boardTab, solutionsTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	return a.tabs
}

// ─── Requirements panel ────────────────────────────────────

func (a *App) buildRequirementsPanel() fyne.CanvasObject {
	a.requirementsContainer = container.NewVBox()
	a.refreshRequirementsList()

	partSelect := widget.NewSelect(a.partLabels(), nil)
	compressedSelect := widget.NewSelect([]string{"Either", "Yes", "No"}, nil)
	compressedSelect.SetSelected("Either")
	commandLineSelect := widget.NewSelect([]string{"Either", "Yes", "No"}, nil)
	commandLineSelect.SetSelected("Either")
	minBugsEntry := widget.NewEntry()
	minBugsEntry.SetText("0")
	maxBugsEntry := widget.NewEntry()
	maxBugsEntry.SetText("-1")

	addButton := widget.NewButton("Add Requirement", func() {
		partIdx := a.catalog.FindByLabel(partSelect.Selected)
		if partIdx < 0 {
			dialog.ShowError(fmt.Errorf("select a part first"), a.window)
			return
		}
		minBugs, err := strconv.Atoi(minBugsEntry.Text)
		if err != nil || minBugs < 0 {
			dialog.ShowError(fmt.Errorf("invalid min bug level %q", minBugsEntry.Text), a.window)
			return
		}
		maxBugs, err := strconv.Atoi(maxBugsEntry.Text)
		if err != nil || maxBugs < model.UnboundedBugLevel {
			dialog.ShowError(fmt.Errorf("invalid max bug level %q", maxBugsEntry.Text), a.window)
			return
		}

		a.resetSearch()
		a.problem.Requirements = append(a.problem.Requirements, model.Requirement{
			PartIndex: partIdx,
			Constraint: model.Constraint{
				Compressed:    triFromLabel(compressedSelect.Selected),
				OnCommandLine: triFromLabel(commandLineSelect.Selected),
				MinBugLevel:   minBugs,
				MaxBugLevel:   maxBugs,
			},
		})
		a.refreshRequirementsList()
	})

	form := widget.NewForm(
		widget.NewFormItem("Part", partSelect),
		widget.NewFormItem("Compressed", compressedSelect),
		widget.NewFormItem("On command line", commandLineSelect),
		widget.NewFormItem("Min bugs", minBugsEntry),
		widget.NewFormItem("Max bugs (-1 = any)", maxBugsEntry),
	)

	return container.NewBorder(
		nil,
		container.NewVBox(form, addButton),
		nil, nil,
		container.NewVScroll(a.requirementsContainer),
	)
}

func triFromLabel(label string) model.Tri {
	switch label {
	case "Yes":
		return model.TriYes
	case "No":
		return model.TriNo
	default:
		return model.TriEither
	}
}

func (a *App) partLabels() []string {
	labels := make([]string, len(a.catalog.Parts))
	for i, p := range a.catalog.Parts {
		labels[i] = p.Label
	}
	return labels
}

func (a *App) refreshRequirementsList() {
	if a.requirementsContainer == nil {
		return
	}
	a.requirementsContainer.Objects = nil

	for i, req := range a.problem.Requirements {
		idx := i
		part := a.problem.Parts[req.PartIndex]
		c := req.Constraint
		maxBugs := "any"
		if c.MaxBugLevel != model.UnboundedBugLevel {
			maxBugs = strconv.Itoa(c.MaxBugLevel)
		}
		label := widget.NewLabel(fmt.Sprintf("%d. %s  compressed:%s  line:%s  bugs:%d-%s",
			i+1, part.Label, c.Compressed, c.OnCommandLine, c.MinBugLevel, maxBugs))
		remove := widget.NewButton("Remove", func() {
			a.resetSearch()
			a.problem.Requirements = append(
				a.problem.Requirements[:idx], a.problem.Requirements[idx+1:]...)
			a.refreshRequirementsList()
		})
		a.requirementsContainer.Add(container.NewBorder(nil, nil, nil, remove, label))
	}
	a.requirementsContainer.Refresh()
}

// ─── Board panel ───────────────────────────────────────────

func (a *App) buildBoardPanel() fyne.CanvasObject {
	heightEntry := widget.NewEntry()
	heightEntry.SetText(strconv.Itoa(a.problem.GridSettings.Height))
	widthEntry := widget.NewEntry()
	widthEntry.SetText(strconv.Itoa(a.problem.GridSettings.Width))
	commandLineEntry := widget.NewEntry()
	commandLineEntry.SetText(strconv.Itoa(a.problem.GridSettings.CommandLineRow))
	oobCheck := widget.NewCheck("Out-of-bounds corners", nil)
	oobCheck.SetChecked(a.problem.GridSettings.HasOob)

	apply := widget.NewButton("Apply", func() {
		height, err := strconv.Atoi(heightEntry.Text)
		if err != nil || height <= 0 {
			dialog.ShowError(fmt.Errorf("invalid height %q", heightEntry.Text), a.window)
			return
		}
		width, err := strconv.Atoi(widthEntry.Text)
		if err != nil || width <= 0 {
			dialog.ShowError(fmt.Errorf("invalid width %q", widthEntry.Text), a.window)
			return
		}
		commandLine, err := strconv.Atoi(commandLineEntry.Text)
		if err != nil || commandLine < 0 {
			dialog.ShowError(fmt.Errorf("invalid command line row %q", commandLineEntry.Text), a.window)
			return
		}

		a.resetSearch()
		a.problem.GridSettings = model.GridSettings{
			Height:         height,
			Width:          width,
			HasOob:         oobCheck.Checked,
			CommandLineRow: commandLine,
		}
		a.refreshBoard()
	})

	form := widget.NewForm(
		widget.NewFormItem("Height", heightEntry),
		widget.NewFormItem("Width", widthEntry),
		widget.NewFormItem("Command line row", commandLineEntry),
		widget.NewFormItem("", oobCheck),
	)

	a.boardCanvas = widgets.NewBoardCanvas(a.problem, nil, 420, 420)

	return container.NewBorder(nil, container.NewVBox(form, apply), nil, nil,
		container.NewCenter(a.boardCanvas))
}

func (a *App) refreshBoard() {
	if a.boardCanvas == nil {
		return
	}
	a.boardCanvas.SetProblem(a.problem)
	var cells []int
	if a.current >= 0 && a.current < len(a.solutions) {
		replayed, err := engine.PlaceAll(
			a.problem.Parts, a.problem.Requirements,
			a.solutions[a.current], a.problem.GridSettings)
		if err == nil {
			cells = replayed
		}
	}
	a.boardCanvas.SetSolution(cells)
}

// ─── Solutions panel ───────────────────────────────────────

func (a *App) buildSolutionsPanel() fyne.CanvasObject {
	a.statusLabel = widget.NewLabel("No search started")

	startButton := widget.NewButton("Start Search", func() {
		a.startSearch()
	})
	nextButton := widget.NewButton("Next Solution", func() {
		a.nextSolution()
	})
	prevButton := widget.NewButton("Previous", func() {
		if a.current > 0 {
			a.current--
			a.refreshBoard()
			a.setStatus(fmt.Sprintf("Showing solution %d of %d found", a.current+1, len(a.solutions)))
		}
	})

	buttons := container.NewHBox(startButton, prevButton, nextButton)
	return container.NewBorder(buttons, a.statusLabel, nil, nil, widget.NewLabel(
		"Start a search, then pull solutions one at a time.\n"+
			"The board tab shows the currently selected solution."))
}

func (a *App) setStatus(s string) {
	if a.statusLabel != nil {
		a.statusLabel.SetText(s)
	}
}

// ─── Search control ────────────────────────────────────────

func (a *App) resetSearch() {
	if a.session != nil {
		a.session.Close()
		a.session = nil
	}
	a.solutions = nil
	a.current = -1
	a.exhausted = false
}

func (a *App) startSearch() {
	a.resetSearch()
	if len(a.problem.Requirements) == 0 {
		dialog.ShowError(fmt.Errorf("add at least one requirement first"), a.window)
		return
	}
	a.session = worker.NewSession()
	if !a.session.Init(a.problem) {
		dialog.ShowError(fmt.Errorf("failed to start search session"), a.window)
		return
	}
	a.setStatus("Search started")
	a.nextSolution()
}

func (a *App) nextSolution() {
	// Browsing already fetched solutions first.
	if a.current >= 0 && a.current < len(a.solutions)-1 {
		a.current++
		a.refreshBoard()
		a.setStatus(fmt.Sprintf("Showing solution %d of %d found", a.current+1, len(a.solutions)))
		return
	}

	if a.session == nil {
		dialog.ShowError(fmt.Errorf("start a search first"), a.window)
		return
	}
	if a.exhausted {
		a.setStatus(fmt.Sprintf("Search exhausted: %d solutions total", len(a.solutions)))
		return
	}

	resp, ok := a.session.Next()
	if !ok {
		if resp.Reason != "" {
			dialog.ShowError(fmt.Errorf("search error: %s", resp.Reason), a.window)
			return
		}
		a.exhausted = true
		a.setStatus(fmt.Sprintf("Search exhausted: %d solutions total", len(a.solutions)))
		return
	}

	a.solutions = append(a.solutions, resp.Value)
	a.current = len(a.solutions) - 1
	a.refreshBoard()
	a.setStatus(fmt.Sprintf("Showing solution %d of %d found", a.current+1, len(a.solutions)))
}

// ─── File operations ───────────────────────────────────────

func (a *App) loadProblem() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		file, err := project.LoadProblem(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.resetSearch()
		a.problem = file.Problem
		a.config.AddRecentProblem(path)
		a.saveConfig()
		a.refreshRequirementsList()
		a.refreshBoard()
	}, a.window)
}

func (a *App) saveProblem() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := project.SaveProblem(path, "Problem", a.problem); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.config.AddRecentProblem(path)
		a.saveConfig()
		a.setStatus("Problem saved")
	}, a.window)
}

func (a *App) importRequirements(excel bool) {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		var result reqimporter.ImportResult
		if excel {
			result = reqimporter.ImportExcel(path, a.catalog)
		} else {
			result = reqimporter.ImportCSV(path, a.catalog)
		}

		if len(result.Errors) > 0 {
			dialog.ShowError(fmt.Errorf("import failed:\n%s", result.Errors[0]), a.window)
			return
		}
		a.resetSearch()
		a.problem.Requirements = append(a.problem.Requirements, result.Requirements...)
		a.refreshRequirementsList()
		a.setStatus(fmt.Sprintf("Imported %d requirements", len(result.Requirements)))
	}, a.window)

	if excel {
		fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".xlsx", ".xls"}))
	} else {
		fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".txt"}))
	}
	fileDialog.Show()
}

func (a *App) exportPDF() {
	if len(a.solutions) == 0 {
		dialog.ShowError(fmt.Errorf("no solutions to export; run a search first"), a.window)
		return
	}
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := export.ExportPDF(path, a.problem, a.solutions); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.setStatus(fmt.Sprintf("Exported %d solutions to PDF", len(a.solutions)))
	}, a.window)
}

func (a *App) exportDXF() {
	if a.current < 0 || a.current >= len(a.solutions) {
		dialog.ShowError(fmt.Errorf("no solution selected"), a.window)
		return
	}
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := export.ExportDXF(path, a.problem, a.solutions[a.current]); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.setStatus("Exported current solution to DXF")
	}, a.window)
}

func (a *App) exportShareCard() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := export.ExportShareCard(path, a.problem, a.config.ShareBaseURL); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.setStatus("Share card exported")
	}, a.window)
}

func (a *App) saveConfig() {
	if err := project.SaveAppConfig(project.DefaultConfigPath(), a.config); err != nil {
		a.setStatus(fmt.Sprintf("Could not save config: %v", err))
	}
}
