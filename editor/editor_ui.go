package editor

import (
	"image"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	"gioui.org/io/event"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/bloodmagesoftware/gardenplan/catalog"
	"github.com/bloodmagesoftware/gardenplan/interact"
)

var (
	barText     = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	buttonIdle  = color.NRGBA{R: 70, G: 70, B: 70, A: 255}
	buttonOn    = color.NRGBA{R: 80, G: 140, B: 200, A: 255}
	dirtyOrange = color.NRGBA{R: 200, G: 120, B: 60, A: 255}
	cleanBlue   = color.NRGBA{R: 60, G: 120, B: 200, A: 255}
)

var toolLabels = map[interact.Tool]string{
	interact.ToolSelect:     "Select (S)",
	interact.ToolMove:       "Move (V)",
	interact.ToolRectangle:  "Rectangle (R)",
	interact.ToolCircle:     "Circle (C)",
	interact.ToolTerrain:    "Terrain (T)",
	interact.ToolSelectArea: "Select Area (A)",
	interact.ToolDelete:     "Delete (D)",
}

// Layout renders the entire editor UI
func (e *Editor) Layout(gtx layout.Context) layout.Dimensions {
	// Register for global keyboard events
	event.Op(gtx.Ops, e)
	e.handleKeys(gtx)

	// Handle close dialog buttons
	if e.closeSaveButton.Clicked(gtx) {
		e.save()
		e.showCloseDialog = false
		e.shouldClose = !e.canvas.Dirty()
	}
	if e.closeDiscardButton.Clicked(gtx) {
		e.showCloseDialog = false
		e.shouldClose = true
	}

	dims := layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		// Top bar
		layout.Rigid(e.layoutTopBar),
		// Middle section (left bar + canvas)
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{
				Axis: layout.Horizontal,
			}.Layout(gtx,
				layout.Rigid(e.layoutLeftBar),
				layout.Flexed(1, e.layoutCanvas),
			)
		}),
		// Catalog and status
		layout.Rigid(e.layoutBottomBar),
	)

	// Draw close confirmation dialog on top if needed
	if e.showCloseDialog {
		e.layoutCloseDialog(gtx)
	}

	return dims
}

func fillBackground(gtx layout.Context, c color.NRGBA) layout.Dimensions {
	defer clip.Rect{Max: gtx.Constraints.Min}.Push(gtx.Ops).Pop()
	paint.ColorOp{Color: c}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	return layout.Dimensions{Size: gtx.Constraints.Min}
}

func (e *Editor) title() string {
	name := e.canvas.Name()
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(e.planPath), filepath.Ext(e.planPath))
	}
	title := "Garden: " + name
	if e.canvas.Dirty() {
		title += " *"
	}
	if sel := selectedName(e.canvas.Store().Selected()); sel != "" {
		title += "  /  " + sel
	}
	return title
}

// layoutTopBar renders the top toolbar with the plan name and actions
func (e *Editor) layoutTopBar(gtx layout.Context) layout.Dimensions {
	gtx.Constraints.Min = gtx.Constraints.Max
	gtx.Constraints.Min.Y = gtx.Dp(unit.Dp(40))
	gtx.Constraints.Max.Y = gtx.Constraints.Min.Y

	if e.saveButton.Clicked(gtx) {
		e.save()
	}
	if e.undoButton.Clicked(gtx) {
		e.canvas.Undo()
	}
	if e.redoButton.Clicked(gtx) {
		e.canvas.Redo()
	}
	if e.gridButton.Clicked(gtx) {
		e.canvas.ToggleGrid()
	}
	if e.fitButton.Clicked(gtx) {
		e.canvas.Machine().ZoomToFit()
	}
	if e.zoomInButton.Clicked(gtx) {
		e.canvas.Machine().Key(interact.KeyEvent{Name: interact.KeyPlus})
	}
	if e.zoomOutBtn.Clicked(gtx) {
		e.canvas.Machine().Key(interact.KeyEvent{Name: interact.KeyMinus})
	}
	if e.exportButton.Clicked(gtx) {
		e.Export()
	}

	return layout.Background{}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return fillBackground(gtx, color.NRGBA{R: 40, G: 40, B: 40, A: 255})
		},
		func(gtx layout.Context) layout.Dimensions {
			saveColor := cleanBlue
			if e.canvas.Dirty() {
				saveColor = dirtyOrange
			}
			gridColor := buttonIdle
			if e.canvas.ShowGrid() {
				gridColor = buttonOn
			}
			return layout.Flex{
				Axis:      layout.Horizontal,
				Alignment: layout.Middle,
			}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						label := material.Body1(e.theme, e.title())
						label.Color = barText
						return label.Layout(gtx)
					})
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout),
				e.iconButton(&e.saveButton, e.saveIcon, "Save plan", saveColor, true),
				e.iconButton(&e.undoButton, e.undoIcon, "Undo", buttonIdle, e.canvas.CanUndo()),
				e.iconButton(&e.redoButton, e.redoIcon, "Redo", buttonIdle, e.canvas.CanRedo()),
				e.iconButton(&e.gridButton, e.gridIcon, "Toggle grid", gridColor, true),
				e.iconButton(&e.fitButton, e.fitIcon, "Zoom to fit", buttonIdle, true),
				e.iconButton(&e.zoomOutBtn, e.zoomOutIcon, "Zoom out", buttonIdle, true),
				e.iconButton(&e.zoomInButton, e.zoomInIcon, "Zoom in", buttonIdle, true),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						label := material.Body2(e.theme, e.canvas.Camera().Label())
						label.Color = barText
						return label.Layout(gtx)
					})
				}),
				e.iconButton(&e.exportButton, e.exportIcon, "Export image", buttonIdle, true),
			)
		},
	)
}

func (e *Editor) iconButton(click *widget.Clickable, icon *widget.Icon, desc string, bg color.NRGBA, enabled bool) layout.FlexChild {
	return layout.Rigid(func(gtx layout.Context) layout.Dimensions {
		// Only show button if icon loaded successfully
		if icon == nil {
			return layout.Dimensions{}
		}
		if !enabled {
			gtx = gtx.Disabled()
			bg.A = 120
		}
		btn := material.IconButton(e.theme, click, icon, desc)
		btn.Background = bg
		btn.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		btn.Size = unit.Dp(20)
		btn.Inset = layout.UniformInset(unit.Dp(6))
		return layout.Inset{Left: unit.Dp(2), Right: unit.Dp(2)}.Layout(gtx, btn.Layout)
	})
}

// layoutLeftBar renders the left sidebar with the tools list
func (e *Editor) layoutLeftBar(gtx layout.Context) layout.Dimensions {
	gtx.Constraints.Min.X = gtx.Dp(unit.Dp(180))
	gtx.Constraints.Max.X = gtx.Constraints.Min.X

	return layout.Background{}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return fillBackground(gtx, color.NRGBA{R: 50, G: 50, B: 50, A: 255})
		},
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{
				Axis: layout.Vertical,
			}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						label := material.H6(e.theme, "Tools")
						label.Color = barText
						return label.Layout(gtx)
					})
				}),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return material.List(e.theme, &e.toolList).Layout(gtx, len(interact.Tools), func(gtx layout.Context, index int) layout.Dimensions {
						tool := interact.Tools[index]
						clickable := &e.toolButtons[index]
						if clickable.Clicked(gtx) {
							e.canvas.Machine().SetTool(tool)
						}
						return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
							button := material.Button(e.theme, clickable, toolLabels[tool])
							if e.canvas.Machine().Tool() == tool {
								button.Background = buttonOn
							} else {
								button.Background = buttonIdle
							}
							button.Color = barText
							gtx.Constraints.Min.X = gtx.Constraints.Max.X
							return button.Layout(gtx)
						})
					})
				}),
			)
		},
	)
}

// layoutBottomBar renders the catalog browser and the status line
func (e *Editor) layoutBottomBar(gtx layout.Context) layout.Dimensions {
	gtx.Constraints.Min = gtx.Constraints.Max
	gtx.Constraints.Min.Y = gtx.Dp(unit.Dp(150))
	gtx.Constraints.Max.Y = gtx.Constraints.Min.Y

	for i := range e.sectionButton {
		if e.sectionButton[i].Clicked(gtx) {
			e.section = catalog.Sections[i]
			e.search.SetText("")
			e.refreshCatalog()
		}
	}
	for {
		ev, ok := e.search.Update(gtx)
		if !ok {
			break
		}
		if _, ok := ev.(widget.ChangeEvent); ok {
			e.refreshCatalog()
		}
	}

	return layout.Background{}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return fillBackground(gtx, color.NRGBA{R: 45, G: 45, B: 45, A: 255})
		},
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{
				Axis: layout.Vertical,
			}.Layout(gtx,
				layout.Rigid(e.layoutCatalogHeader),
				layout.Flexed(1, e.layoutCatalogItems),
				layout.Rigid(e.layoutStatus),
			)
		},
	)
}

func (e *Editor) layoutCatalogHeader(gtx layout.Context) layout.Dimensions {
	children := make([]layout.FlexChild, 0, len(catalog.Sections)+1)
	for i, section := range catalog.Sections {
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			name := string(section)
			btn := material.Button(e.theme, &e.sectionButton[i], strings.ToUpper(name[:1])+name[1:])
			if e.section == section && e.search.Len() == 0 {
				btn.Background = buttonOn
			} else {
				btn.Background = buttonIdle
			}
			btn.Color = barText
			return layout.Inset{Right: unit.Dp(6)}.Layout(gtx, btn.Layout)
		}))
	}
	children = append(children, layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Left: unit.Dp(12)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			ed := material.Editor(e.theme, &e.search, "Search catalog")
			ed.Color = barText
			ed.HintColor = color.NRGBA{R: 140, G: 140, B: 140, A: 255}
			return ed.Layout(gtx)
		})
	}))

	return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
	})
}

func (e *Editor) layoutCatalogItems(gtx layout.Context) layout.Dimensions {
	armed, isArmed := e.canvas.Machine().Armed()
	return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return material.List(e.theme, &e.catalogList).Layout(gtx, len(e.catalogItems), func(gtx layout.Context, index int) layout.Dimensions {
			item := e.catalogItems[index]
			clickable := &e.itemButtons[index]
			if clickable.Clicked(gtx) {
				if isArmed && armed.Ref.ID == item.Ref.ID {
					e.canvas.Machine().Disarm()
				} else {
					e.canvas.Machine().Arm(item)
				}
			}
			return layout.Inset{Right: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				btn := material.Button(e.theme, clickable, itemLabel(item))
				if isArmed && armed.Ref.ID == item.Ref.ID {
					btn.Background = buttonOn
				} else {
					btn.Background = buttonIdle
				}
				btn.Color = barText
				return btn.Layout(gtx)
			})
		})
	})
}

// itemLabel is the button text of a catalog entry.
func itemLabel(item catalog.Item) string {
	label := item.Ref.Name
	if item.Ref.Icon != "" {
		label = item.Ref.Icon + " " + label
	}
	if item.Footprint.W > 0 && item.Footprint.H > 0 {
		label += "\n" + formatMeters(item.Footprint.W) + " x " + formatMeters(item.Footprint.H)
	}
	return label
}

func formatMeters(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " m"
}

func (e *Editor) layoutStatus(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8), Bottom: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := material.Caption(e.theme, e.status())
				label.Color = color.NRGBA{R: 180, G: 180, B: 180, A: 255}
				return label.Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if e.toast == "" || !e.now().Before(e.toastUntil) {
					return layout.Dimensions{}
				}
				label := material.Caption(e.theme, e.toast)
				label.Color = toastColor(e.toastLevel)
				return label.Layout(gtx)
			}),
		)
	})
}

func toastColor(level interact.Level) color.NRGBA {
	switch level {
	case interact.LevelError:
		return color.NRGBA{R: 240, G: 100, B: 90, A: 255}
	case interact.LevelWarning:
		return color.NRGBA{R: 240, G: 190, B: 80, A: 255}
	default:
		return color.NRGBA{R: 140, G: 210, B: 140, A: 255}
	}
}

// layoutCloseDialog renders the close confirmation dialog
func (e *Editor) layoutCloseDialog(gtx layout.Context) layout.Dimensions {
	// Semi-transparent overlay
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	paint.ColorOp{Color: color.NRGBA{R: 0, G: 0, B: 0, A: 200}}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)

	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				defer clip.UniformRRect(image.Rectangle{Max: gtx.Constraints.Min}, 8).Push(gtx.Ops).Pop()
				paint.ColorOp{Color: color.NRGBA{R: 45, G: 45, B: 45, A: 255}}.Add(gtx.Ops)
				paint.PaintOp{}.Add(gtx.Ops)
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				return layout.UniformInset(unit.Dp(24)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{
						Axis: layout.Vertical,
					}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return layout.Inset{Bottom: unit.Dp(16)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
								label := material.H6(e.theme, "Unsaved Changes")
								label.Color = color.NRGBA{R: 240, G: 240, B: 240, A: 255}
								return label.Layout(gtx)
							})
						}),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return layout.Inset{Bottom: unit.Dp(24)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
								gtx.Constraints.Max.X = gtx.Dp(unit.Dp(400))
								label := material.Body1(e.theme, "Do you want to save the garden plan before closing?")
								label.Color = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
								return label.Layout(gtx)
							})
						}),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return layout.Flex{
								Axis:    layout.Horizontal,
								Spacing: layout.SpaceEnd,
							}.Layout(gtx,
								layout.Rigid(func(gtx layout.Context) layout.Dimensions {
									btn := material.Button(e.theme, &e.closeSaveButton, "Save")
									btn.Background = cleanBlue
									btn.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
									return layout.Inset{Right: unit.Dp(8)}.Layout(gtx, btn.Layout)
								}),
								layout.Rigid(func(gtx layout.Context) layout.Dimensions {
									btn := material.Button(e.theme, &e.closeDiscardButton, "Discard")
									btn.Background = color.NRGBA{R: 200, G: 80, B: 60, A: 255}
									btn.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
									return btn.Layout(gtx)
								}),
							)
						}),
					)
				})
			},
		)
	})
}
