// Package ui provides the SortRoom desktop application.
package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/piwi3910/SortRoom/internal/config"
	"github.com/piwi3910/SortRoom/internal/export"
	"github.com/piwi3910/SortRoom/internal/importer"
	"github.com/piwi3910/SortRoom/internal/model"
	"github.com/piwi3910/SortRoom/internal/project"
	"github.com/piwi3910/SortRoom/internal/session"
	"github.com/piwi3910/SortRoom/internal/ui/widgets"
)

// Deps are the collaborators the application UI is built from.
type Deps struct {
	Config  config.Config
	Planner *session.Planner
	Catalog model.Catalog
	Logger  *zap.Logger
	// StatePath is where the recent-plans list is kept. Empty selects project.DefaultStatePath().
	StatePath string
}

// App holds all application state and UI references.
type App struct {
	app     fyne.App
	window  fyne.Window
	cfg     config.Config
	logger  *zap.Logger
	planner *session.Planner
	catalog model.Catalog

	state     project.AppState
	statePath string
	planPath  string // Empty until the plan has been saved or opened

	// UI references for dynamic updates
	roomCanvas       *widgets.RoomCanvas
	catalogContainer *fyne.Container
	sidesContainer   *fyne.Container
	objectsContainer *fyne.Container
	statusLabel      *widget.Label
	undoBtn          *ttwidget.Button
	redoBtn          *ttwidget.Button
}

func NewApp(application fyne.App, window fyne.Window, deps Deps) *App {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	statePath := deps.StatePath
	if statePath == "" {
		statePath = project.DefaultStatePath()
	}
	state, err := project.LoadAppState(statePath)
	if err != nil {
		logger.Warn("could not load application state", zap.String("path", statePath), zap.Error(err))
		state = project.AppState{RecentPlans: []string{}}
	}
	return &App{
		app:       application,
		window:    window,
		cfg:       deps.Config,
		logger:    logger,
		planner:   deps.Planner,
		catalog:   deps.Catalog,
		state:     state,
		statePath: statePath,
	}
}

var (
	shortcutUndo = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	shortcutRedo = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift}
	shortcutSave = &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}
	shortcutOpen = &desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault}
)

// SetupMenus creates the native menu bar and keyboard shortcuts.
func (a *App) SetupMenus() {
	undoItem := fyne.NewMenuItem("Undo", a.undo)
	undoItem.Shortcut = shortcutUndo
	redoItem := fyne.NewMenuItem("Redo", a.redo)
	redoItem.Shortcut = shortcutRedo
	saveItem := fyne.NewMenuItem("Save Plan", a.savePlan)
	saveItem.Shortcut = shortcutSave
	openItem := fyne.NewMenuItem("Open Plan...", a.openPlanDialog)
	openItem.Shortcut = shortcutOpen

	recentItem := fyne.NewMenuItem("Open Recent", nil)
	recentItem.ChildMenu = a.recentMenu()

	// File Menu
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Plan", a.newPlan),
		openItem,
		recentItem,
		saveItem,
		fyne.NewMenuItem("Save Plan As...", a.savePlanAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Catalog...", a.importCatalog),
		fyne.NewMenuItem("Import Room from DXF...", a.importRoomDXF),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Plan PDF...", func() {
			a.exportFile("plan.pdf", ".pdf", export.ExportPDF)
		}),
		fyne.NewMenuItem("Export Bin Labels...", func() {
			a.exportFile("labels.pdf", ".pdf", export.ExportLabels)
		}),
		fyne.NewMenuItem("Export DXF...", func() {
			a.exportFile("plan.dxf", ".dxf", export.ExportDXF)
		}),
		fyne.NewMenuItem("Export Object List...", func() {
			a.exportFile("objects.xlsx", ".xlsx", export.ExportObjectList)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.app.Quit()
		}),
	)

	// Edit Menu
	editMenu := fyne.NewMenu("Edit",
		undoItem,
		redoItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Rotate Selected", a.rotateSelected),
		fyne.NewMenuItem("Face Away From Nearest Wall", a.orientSelected),
		fyne.NewMenuItem("Delete Selected", a.deleteSelected),
	)

	// Help Menu
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, helpMenu))

	c := a.window.Canvas()
	c.AddShortcut(shortcutUndo, func(fyne.Shortcut) { a.undo() })
	c.AddShortcut(shortcutRedo, func(fyne.Shortcut) { a.redo() })
	c.AddShortcut(shortcutSave, func(fyne.Shortcut) { a.savePlan() })
	c.AddShortcut(shortcutOpen, func(fyne.Shortcut) { a.openPlanDialog() })
	c.SetOnTypedKey(a.typedKey)
}

func (a *App) recentMenu() *fyne.Menu {
	if len(a.state.RecentPlans) == 0 {
		empty := fyne.NewMenuItem("No recent plans", nil)
		empty.Disabled = true
		return fyne.NewMenu("", empty)
	}
	var items []*fyne.MenuItem
	for _, path := range a.state.RecentPlans {
		p := path
		items = append(items, fyne.NewMenuItem(filepath.Base(p), func() { a.OpenPlan(p) }))
	}
	return fyne.NewMenu("", items...)
}

func (a *App) typedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyDelete, fyne.KeyBackspace:
		a.deleteSelected()
	case fyne.KeyR:
		a.rotateSelected()
	case fyne.KeyW:
		a.orientSelected()
	case fyne.KeyEscape:
		a.planner.Deselect()
		a.refresh()
	}
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About SortRoom",
		"SortRoom - Waste Sorting Room Planner\n\n"+
			"Draw the room, place bins, doors and fixtures,\n"+
			"and export floor plans, bin signs and object lists.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.roomCanvas = widgets.NewRoomCanvas(a.planner)
	a.roomCanvas.OnChanged = a.refresh

	a.catalogContainer = container.NewVBox()
	a.sidesContainer = container.NewVBox()
	a.objectsContainer = container.NewVBox()
	a.statusLabel = widget.NewLabel("")

	a.undoBtn = toolButton("", theme.ContentUndoIcon(), "Undo", "Ctrl+Z", a.undo)
	a.redoBtn = toolButton("", theme.ContentRedoIcon(), "Redo", "Ctrl+Shift+Z", a.redo)
	toolbar := container.NewHBox(
		a.undoBtn,
		a.redoBtn,
		widget.NewSeparator(),
		toolButton("", theme.ViewRefreshIcon(), "Rotate selected object 90°", "R", a.rotateSelected),
		toolButton("", theme.MoveDownIcon(), "Face away from the nearest wall", "W", a.orientSelected),
		toolButton("", theme.DeleteIcon(), "Delete selected object", "Del", a.deleteSelected),
		layout.NewSpacer(),
		toolButton("Save", theme.DocumentSaveIcon(), "Save plan", "Ctrl+S", a.savePlan),
	)

	left := container.NewBorder(
		widget.NewLabelWithStyle("Catalog", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		container.NewVScroll(a.catalogContainer),
	)
	right := container.NewBorder(
		widget.NewLabelWithStyle("Room", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		container.NewVScroll(container.NewVBox(
			a.sidesContainer,
			widget.NewSeparator(),
			widget.NewLabelWithStyle("Objects", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			a.objectsContainer,
		)),
	)

	a.refreshCatalog()
	a.refresh()

	center := container.NewHSplit(container.NewScroll(a.roomCanvas), right)
	center.Offset = 0.75
	main := container.NewHSplit(left, center)
	main.Offset = 0.18

	return container.NewBorder(toolbar, a.statusLabel, nil, nil, main)
}

// ─── Panels ────────────────────────────────────────────────

func (a *App) refreshCatalog() {
	a.catalogContainer.RemoveAll()
	for _, kind := range model.Kinds {
		types := a.catalog.Types(kind)
		if len(types) == 0 {
			continue
		}
		var buttons []fyne.CanvasObject
		for _, desc := range types {
			buttons = append(buttons, catalogButton(desc, a.planner.Scale(), a.addObject))
		}
		a.catalogContainer.Add(widget.NewCard(kindTitle(kind), "", container.NewVBox(buttons...)))
	}
}

func kindTitle(k model.Kind) string {
	switch k {
	case model.KindBin:
		return "Bins"
	case model.KindDoor:
		return "Doors"
	default:
		return "Other"
	}
}

// refresh updates every view of the plan after a change.
func (a *App) refresh() {
	if a.roomCanvas == nil {
		return
	}
	a.roomCanvas.Refresh()
	a.refreshSides()
	a.refreshObjects()
	a.statusLabel.SetText(statusText(a.planner))

	if a.planner.CanUndo() {
		a.undoBtn.Enable()
	} else {
		a.undoBtn.Disable()
	}
	if a.planner.CanRedo() {
		a.redoBtn.Enable()
	} else {
		a.redoBtn.Disable()
	}
}

func (a *App) refreshSides() {
	a.sidesContainer.RemoveAll()
	for i, m := range a.planner.SideMetrics() {
		a.sidesContainer.Add(widget.NewLabel(fmt.Sprintf("Side %d: %.2f m", i+1, m.Length)))
	}
	a.sidesContainer.Add(widget.NewLabelWithStyle(
		fmt.Sprintf("Area: %.2f m²", a.planner.Area()),
		fyne.TextAlignLeading, fyne.TextStyle{Bold: true},
	))
}

func (a *App) refreshObjects() {
	a.objectsContainer.RemoveAll()

	selected, hasSelection := a.planner.Selected()
	empty := true
	for _, kind := range model.Kinds {
		for _, o := range a.planner.Objects(kind) {
			empty = false
			obj := o
			label := widget.NewLabel(fmt.Sprintf("%s %d: %s (%d°)", obj.Kind, obj.ID, obj.Name, obj.Rotation))
			if hasSelection && selected.Kind == obj.Kind && selected.ID == obj.ID {
				label.TextStyle = fyne.TextStyle{Bold: true}
			}
			if !a.planner.InPlace(obj) {
				label.Importance = widget.DangerImportance
			}
			row := container.NewBorder(nil, nil, nil,
				container.NewHBox(
					widget.NewButtonWithIcon("", theme.VisibilityIcon(), func() {
						a.planner.Select(obj.Kind, obj.ID)
						a.refresh()
					}),
					widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
						a.planner.RemoveObject(obj.Kind, obj.ID)
						a.refresh()
					}),
				),
				label,
			)
			a.objectsContainer.Add(row)
		}
	}
	if empty {
		a.objectsContainer.Add(widget.NewLabel("No objects placed yet. Pick one from the catalog."))
	}
}

// statusText summarizes the plan for the status bar.
func statusText(p *session.Planner) string {
	plan := p.Plan()
	name := plan.Name
	if name == "" {
		name = "Untitled"
	}
	text := fmt.Sprintf("%s | %.2f m² | %d bins, %d doors, %d other",
		name, p.Area(), len(plan.Bins), len(plan.Doors), len(plan.Others))
	if n := len(p.ObjectsOutside()); n > 0 {
		text += fmt.Sprintf(" | %d outside the room", n)
	}
	return text
}

// planNameFromPath derives a plan name from its file name.
func planNameFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) addObject(desc model.TypeDescriptor) {
	if _, ok := a.planner.AddObject(desc); !ok {
		dialog.ShowInformation("Cannot place object",
			fmt.Sprintf("%q does not fit in the room.", desc.Name), a.window)
		return
	}
	a.refresh()
}

func (a *App) withSelected(fn func(o model.PlacedObject)) {
	o, ok := a.planner.Selected()
	if !ok {
		return
	}
	fn(o)
	a.refresh()
}

func (a *App) rotateSelected() {
	a.withSelected(func(o model.PlacedObject) { a.planner.RotateObject(o.Kind, o.ID) })
}

func (a *App) orientSelected() {
	a.withSelected(func(o model.PlacedObject) { a.planner.OrientObject(o.Kind, o.ID) })
}

func (a *App) deleteSelected() {
	a.withSelected(func(o model.PlacedObject) { a.planner.RemoveObject(o.Kind, o.ID) })
}

func (a *App) undo() {
	if a.planner.Undo() {
		a.refresh()
	}
}

func (a *App) redo() {
	if a.planner.Redo() {
		a.refresh()
	}
}

// setPlan replaces the session contents and resets the window to it.
func (a *App) setPlan(plan model.Plan, path string) error {
	if err := a.planner.LoadPlan(plan); err != nil {
		return err
	}
	a.planPath = path
	a.updateTitle()
	a.refresh()
	return nil
}

func (a *App) updateTitle() {
	name := a.planner.Plan().Name
	if name == "" {
		name = "Untitled"
	}
	a.window.SetTitle("SortRoom - " + name)
}

func (a *App) newPlan() {
	if err := a.setPlan(model.NewPlan("", a.cfg.InitialRoom()), ""); err != nil {
		dialog.ShowError(err, a.window)
	}
}

func (a *App) openPlanDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.OpenPlan(path)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{project.PlanExtension}))
	d.Show()
}

// OpenPlan loads a saved plan into the session, reporting failures in a dialog.
func (a *App) OpenPlan(path string) {
	plan, err := project.LoadPlan(path)
	if err == nil {
		err = a.setPlan(plan, path)
	}
	if err != nil {
		a.logger.Warn("could not open plan", zap.String("path", path), zap.Error(err))
		a.state.RemoveRecentPlan(path)
		a.saveState()
		dialog.ShowError(err, a.window)
		return
	}
	a.logger.Info("plan opened", zap.String("path", path))
	a.rememberPlan(path)
}

func (a *App) savePlan() {
	if a.planPath == "" {
		a.savePlanAs()
		return
	}
	a.writePlan(a.planPath)
}

func (a *App) savePlanAs() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		a.writePlan(path)
	}, a.window)
	name := a.planner.Plan().Name
	if name == "" {
		name = "untitled"
	}
	d.SetFileName(name + project.PlanExtension)
	d.Show()
}

func (a *App) writePlan(path string) {
	if a.planner.Plan().Name == "" {
		a.planner.SetName(planNameFromPath(path))
	}
	if err := project.SavePlan(path, a.planner.Plan()); err != nil {
		a.logger.Error("could not save plan", zap.String("path", path), zap.Error(err))
		dialog.ShowError(err, a.window)
		return
	}
	a.logger.Info("plan saved", zap.String("path", path))
	a.planPath = path
	a.updateTitle()
	a.refresh()
	a.rememberPlan(path)
}

func (a *App) rememberPlan(path string) {
	a.state.AddRecentPlan(path)
	a.saveState()
	a.SetupMenus()
}

func (a *App) saveState() {
	if err := project.SaveAppState(a.statePath, a.state); err != nil {
		a.logger.Warn("could not save application state", zap.String("path", a.statePath), zap.Error(err))
	}
}

// exportFile asks for a target path and runs fn on the current plan.
func (a *App) exportFile(defaultName, ext string, fn func(path string, plan model.Plan, scale float64) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := fn(path, a.planner.Plan(), a.planner.Scale()); err != nil {
			a.logger.Error("export failed", zap.String("path", path), zap.Error(err))
			dialog.ShowError(err, a.window)
			return
		}
		a.logger.Info("plan exported", zap.String("path", path))
		a.state.LastExportDir = filepath.Dir(path)
		a.saveState()
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
	if a.state.LastExportDir != "" {
		if dir, err := storage.ListerForURI(storage.NewFileURI(a.state.LastExportDir)); err == nil {
			d.SetLocation(dir)
		}
	}
	d.Show()
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importCatalog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.handleCatalogResult(path, importer.ImportCatalog(path))
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".txt", ".xlsx", ".xlsm", ".yaml", ".yml"}))
	d.Show()
}

func (a *App) handleCatalogResult(path string, result importer.CatalogResult) {
	for _, w := range result.Warnings {
		a.logger.Warn("catalog import warning", zap.String("path", path), zap.String("warning", w))
	}
	if len(result.Errors) > 0 {
		a.logger.Warn("catalog import errors", zap.String("path", path), zap.Strings("errors", result.Errors))
		dialog.ShowError(errors.New("Errors encountered during import:\n\n"+strings.Join(result.Errors, "\n")), a.window)
	}

	n := result.Catalog.Len()
	if n == 0 {
		return
	}
	a.catalog = result.Catalog
	a.refreshCatalog()
	a.logger.Info("catalog imported", zap.String("path", path), zap.Int("types", n))

	msg := fmt.Sprintf("Imported %d object types.", n)
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}

func (a *App) importRoomDXF() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		res := importer.ImportRoomDXF(path, a.planner.Limits(), a.planner.Scale())
		for _, w := range res.Warnings {
			a.logger.Warn("room import warning", zap.String("path", path), zap.String("warning", w))
		}
		if !res.Found {
			dialog.ShowError(errors.New(strings.Join(res.Errors, "\n")), a.window)
			return
		}
		if err := a.planner.SetRoom(res.Room); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.logger.Info("room imported", zap.String("path", path))
		a.refresh()
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".dxf"}))
	d.Show()
}
