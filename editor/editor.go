package editor

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gioui.org/font/gofont"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/atotto/clipboard"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/bloodmagesoftware/gardenplan/canvas"
	"github.com/bloodmagesoftware/gardenplan/catalog"
	"github.com/bloodmagesoftware/gardenplan/garden"
	"github.com/bloodmagesoftware/gardenplan/geom"
	"github.com/bloodmagesoftware/gardenplan/interact"
)

// toastDuration is how long a notification stays in the bottom bar.
const toastDuration = 4 * time.Second

// Editor is the main garden plan editor component that manages the UI state and interactions
type Editor struct {
	theme    *material.Theme
	planPath string
	canvas   *canvas.Canvas
	catalog  *catalog.Catalog
	export   canvas.ExportOptions

	// UI state
	section       catalog.Section
	search        widget.Editor
	catalogList   widget.List
	catalogItems  []catalog.Item
	itemButtons   []widget.Clickable
	sectionButton [3]widget.Clickable
	toolList      widget.List
	toolButtons   []widget.Clickable

	saveButton   widget.Clickable
	undoButton   widget.Clickable
	redoButton   widget.Clickable
	gridButton   widget.Clickable
	fitButton    widget.Clickable
	zoomInButton widget.Clickable
	zoomOutBtn   widget.Clickable
	exportButton widget.Clickable
	saveIcon     *widget.Icon
	undoIcon     *widget.Icon
	redoIcon     *widget.Icon
	gridIcon     *widget.Icon
	fitIcon      *widget.Icon
	zoomInIcon   *widget.Icon
	zoomOutIcon  *widget.Icon
	exportIcon   *widget.Icon

	// Close confirmation dialog
	showCloseDialog    bool
	closeSaveButton    widget.Clickable
	closeDiscardButton widget.Clickable
	shouldClose        bool

	// Latest notification, shown until toastUntil
	toast      string
	toastLevel interact.Level
	toastUntil time.Time
	now        func() time.Time

	// Active touch points by pointer
	touches map[pointer.ID]geom.Vec2
}

// NewEditor creates a new editor for the canvas. planPath is where Save writes.
func NewEditor(theme *material.Theme, planPath string, c *canvas.Canvas, cat *catalog.Catalog, export canvas.ExportOptions) *Editor {
	if theme.Shaper == nil {
		theme.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	}

	e := &Editor{
		theme:       theme,
		planPath:    planPath,
		canvas:      c,
		catalog:     cat,
		export:      export,
		section:     catalog.SectionPlants,
		catalogList: widget.List{List: layout.List{Axis: layout.Horizontal}},
		toolList:    widget.List{List: layout.List{Axis: layout.Vertical}},
		toolButtons: make([]widget.Clickable, len(interact.Tools)),
		now:         time.Now,
	}
	e.search.SingleLine = true
	e.saveIcon = loadIcon(icons.ContentSave)
	e.undoIcon = loadIcon(icons.ContentUndo)
	e.redoIcon = loadIcon(icons.ContentRedo)
	e.gridIcon = loadIcon(icons.ImageGridOn)
	e.fitIcon = loadIcon(icons.NavigationFullscreen)
	e.zoomInIcon = loadIcon(icons.ActionZoomIn)
	e.zoomOutIcon = loadIcon(icons.ActionZoomOut)
	e.exportIcon = loadIcon(icons.ImagePhotoCamera)
	e.refreshCatalog()
	return e
}

func loadIcon(data []byte) *widget.Icon {
	icon, err := widget.NewIcon(data)
	if err != nil {
		log.Printf("Failed to load icon: %v", err)
		return nil
	}
	return icon
}

// Notify implements interact.Notifier by showing a toast.
func (e *Editor) Notify(level interact.Level, msg string) {
	log.Printf("%s: %s", level, msg)
	e.toast = msg
	e.toastLevel = level
	e.toastUntil = e.now().Add(toastDuration)
}

// Canvas returns the edited canvas.
func (e *Editor) Canvas() *canvas.Canvas {
	return e.canvas
}

// HasUnsavedChanges returns true if there are unsaved changes to the plan
func (e *Editor) HasUnsavedChanges() bool {
	return e.canvas.Dirty()
}

// Save saves the plan to disk and clears the dirty flag
func (e *Editor) Save() error {
	if err := e.canvas.Plan().Save(e.planPath); err != nil {
		return err
	}
	e.canvas.MarkSaved()
	return nil
}

func (e *Editor) save() {
	if err := e.Save(); err != nil {
		e.Notify(interact.LevelError, fmt.Sprintf("Failed to save plan: %v", err))
		return
	}
	e.Notify(interact.LevelInfo, "Plan saved to "+e.planPath)
}

// Export writes a high resolution image of the working area.
func (e *Editor) Export() {
	path, err := e.canvas.ExportHighResolution(e.export)
	if err != nil {
		e.Notify(interact.LevelError, fmt.Sprintf("Export failed: %v", err))
		return
	}
	e.Notify(interact.LevelInfo, "Exported "+path)
}

// RequestClose is called when the window close is requested
// Returns true if the window should close, false otherwise
func (e *Editor) RequestClose() bool {
	if !e.canvas.Dirty() {
		return true
	}
	if !e.showCloseDialog {
		e.showCloseDialog = true
		return false
	}
	return e.shouldClose
}

// ShouldClose returns true if the window should close
func (e *Editor) ShouldClose() bool {
	return e.shouldClose
}

// refreshCatalog rebuilds the visible catalog items from the section and the search field.
func (e *Editor) refreshCatalog() {
	query := strings.TrimSpace(e.search.Text())
	if query != "" {
		e.catalogItems = e.catalog.Search(query)
	} else {
		e.catalogItems = e.catalog.Section(e.section)
	}
	for len(e.itemButtons) < len(e.catalogItems) {
		e.itemButtons = append(e.itemButtons, widget.Clickable{})
	}
}

// CopySelection puts the catalog descriptor of the first selected element on
// the clipboard, in the format Paste and drops accept.
func (e *Editor) CopySelection() {
	selected := e.canvas.Store().Selected()
	if len(selected) == 0 {
		return
	}
	ref := selected[0].Ref()
	item, ok := e.catalog.Find(ref.ID)
	if !ok {
		e.Notify(interact.LevelWarning, "Only catalog items can be copied")
		return
	}
	data, err := catalog.Payload(item)
	if err != nil {
		e.Notify(interact.LevelError, fmt.Sprintf("Copy failed: %v", err))
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		e.Notify(interact.LevelError, fmt.Sprintf("Copy failed: %v", err))
		return
	}
	e.Notify(interact.LevelInfo, "Copied "+item.Ref.Name)
}

// Paste drops the clipboard payload at the pointer position.
func (e *Editor) Paste() {
	data, err := clipboard.ReadAll()
	if err != nil {
		e.Notify(interact.LevelError, fmt.Sprintf("Paste failed: %v", err))
		return
	}
	m := e.canvas.Machine()
	if _, ok := m.Drop([]byte(data), m.PointerPosition()); !ok {
		e.Notify(interact.LevelWarning, "Clipboard holds no catalog item")
	}
}

// status returns the text of the bottom status line.
func (e *Editor) status() string {
	m := e.canvas.Machine()
	parts := []string{
		fmt.Sprintf("Tool: %s", m.Tool()),
		fmt.Sprintf("Zoom: %s", e.canvas.Camera().Label()),
		fmt.Sprintf("Elements: %d", e.canvas.Store().Len()),
	}
	if item, ok := m.Armed(); ok {
		parts = append(parts, "Placing: "+item.Ref.Name)
	}
	if n := len(e.canvas.Store().SelectedIDs()); n > 0 {
		parts = append(parts, fmt.Sprintf("Selected: %d", n))
	}
	if m.Mode() != interact.ModeIdle {
		parts = append(parts, m.Mode().String())
	}
	return strings.Join(parts, "  ·  ")
}

// selectedName returns the name of the only selected element.
func selectedName(elements []garden.Element) string {
	if len(elements) != 1 {
		return ""
	}
	return elements[0].Name()
}
