package editor

import (
	"maps"
	"slices"
	"strings"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"

	"github.com/bloodmagesoftware/gardenplan/geom"
	"github.com/bloodmagesoftware/gardenplan/interact"
)

// canvasKeys are the keys forwarded to the interaction machine.
var canvasKeys = []key.Name{
	key.NameSpace, key.NameEscape, key.NameDeleteForward, key.NameDeleteBackward,
	key.NameLeftArrow, key.NameRightArrow, key.NameUpArrow, key.NameDownArrow,
	"+", "=", "-",
	"A", "C", "D", "G", "M", "P", "R", "S", "T", "V", "Y", "Z",
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
}

// editorKeys are shortcuts handled by the editor itself. They take precedence
// over the machine when the shortcut modifier is held.
var editorKeys = []key.Name{"S", "C", "V", "E", "Q"}

const anyModifier = key.ModCtrl | key.ModCommand | key.ModShift | key.ModAlt | key.ModSuper

// layoutCanvas renders the garden canvas and feeds it input
func (e *Editor) layoutCanvas(gtx layout.Context) layout.Dimensions {
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, e.canvas)

	e.handleCanvasInput(gtx)
	e.canvas.Frame(gtx.Now)

	paintScene(gtx, e.theme.Shaper, e.canvas.Scene())

	// Keep animating while a coalesced update is pending
	if e.canvas.Machine().Mode() != interact.ModeIdle {
		gtx.Execute(op.InvalidateCmd{})
	}
	return layout.Dimensions{Size: gtx.Constraints.Max}
}

// handleCanvasInput translates Gio pointer events into machine events
func (e *Editor) handleCanvasInput(gtx layout.Context) {
	m := e.canvas.Machine()
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  e.canvas,
			Kinds:   pointer.Press | pointer.Release | pointer.Drag | pointer.Move | pointer.Scroll | pointer.Cancel | pointer.Leave,
			ScrollX: pointer.ScrollRange{Min: -1000, Max: 1000},
			ScrollY: pointer.ScrollRange{Min: -1000, Max: 1000},
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}

		pos := vec(pe.Position)
		mods := modifiers(pe.Modifiers)
		if pe.Source == pointer.Touch {
			e.touch(pe)
			if len(e.touches) >= 2 {
				continue
			}
		}

		switch pe.Kind {
		case pointer.Press:
			// Clicking the canvas takes the focus away from the search field
			gtx.Execute(key.FocusCmd{Tag: e.canvas})
			m.Pointer(interact.PointerEvent{
				Kind:      interact.PointerDown,
				Position:  pos,
				Modifiers: mods,
				Secondary: pe.Buttons.Contain(pointer.ButtonSecondary) || pe.Buttons.Contain(pointer.ButtonTertiary),
			})
		case pointer.Drag, pointer.Move:
			m.Pointer(interact.PointerEvent{Kind: interact.PointerMove, Position: pos, Modifiers: mods})
		case pointer.Release:
			m.Pointer(interact.PointerEvent{Kind: interact.PointerUp, Position: pos, Modifiers: mods})
		case pointer.Cancel, pointer.Leave:
			if m.Mode() != interact.ModeIdle && pe.Kind == pointer.Cancel {
				m.Pointer(interact.PointerEvent{Kind: interact.PointerCancel, Position: pos})
			}
		case pointer.Scroll:
			m.Wheel(interact.WheelEvent{Position: pos, Delta: vec(pe.Scroll), Modifiers: mods})
		}
	}
}

// touch tracks the active fingers and forwards pinch gestures.
func (e *Editor) touch(pe pointer.Event) {
	if e.touches == nil {
		e.touches = make(map[pointer.ID]geom.Vec2)
	}
	switch pe.Kind {
	case pointer.Press, pointer.Drag:
		e.touches[pe.PointerID] = vec(pe.Position)
	case pointer.Release, pointer.Cancel:
		delete(e.touches, pe.PointerID)
	}

	// Pinch needs the fingers in a stable order
	points := make([]geom.Vec2, 0, len(e.touches))
	for _, id := range slices.Sorted(maps.Keys(e.touches)) {
		points = append(points, e.touches[id])
	}
	if len(points) >= 2 || pe.Kind == pointer.Release {
		e.canvas.Machine().Touch(interact.TouchEvent{Points: points})
	}
}

// handleKeys processes shortcuts; keys the editor does not claim go to the machine.
func (e *Editor) handleKeys(gtx layout.Context) {
	filters := make([]event.Filter, 0, len(canvasKeys)+len(editorKeys))
	for _, name := range editorKeys {
		filters = append(filters, key.Filter{Name: name, Required: key.ModShortcut, Optional: key.ModShift})
	}
	for _, name := range canvasKeys {
		filters = append(filters, key.Filter{Name: name, Optional: anyModifier})
	}

	for {
		ev, ok := gtx.Event(filters...)
		if !ok {
			break
		}
		ke, ok := ev.(key.Event)
		if !ok {
			continue
		}
		if ke.State == key.Press && ke.Modifiers.Contain(key.ModShortcut) && e.shortcut(ke) {
			continue
		}
		e.canvas.Machine().Key(interact.KeyEvent{
			Name:      keyName(ke.Name),
			Modifiers: modifiers(ke.Modifiers),
			Release:   ke.State == key.Release,
		})
	}
}

// shortcut runs editor level shortcuts and reports whether ke was one.
func (e *Editor) shortcut(ke key.Event) bool {
	switch ke.Name {
	case "S":
		e.save()
	case "E":
		e.Export()
	case "V":
		e.Paste()
	case "Q":
		if e.RequestClose() {
			e.shouldClose = true
		}
	case "C":
		// Plain shortcut+C duplicates; with Shift it copies to the clipboard
		if !ke.Modifiers.Contain(key.ModShift) {
			return false
		}
		e.CopySelection()
	default:
		return false
	}
	return true
}

func keyName(name key.Name) string {
	switch name {
	case key.NameSpace:
		return interact.KeySpace
	case key.NameEscape:
		return interact.KeyEscape
	case key.NameDeleteForward:
		return interact.KeyDelete
	case key.NameDeleteBackward:
		return interact.KeyBackspace
	case key.NameLeftArrow:
		return interact.KeyLeft
	case key.NameRightArrow:
		return interact.KeyRight
	case key.NameUpArrow:
		return interact.KeyUp
	case key.NameDownArrow:
		return interact.KeyDown
	}
	return strings.ToLower(string(name))
}

func modifiers(m key.Modifiers) interact.Modifiers {
	var out interact.Modifiers
	if m.Contain(key.ModShift) {
		out |= interact.ModShift
	}
	if m.Contain(key.ModCtrl) {
		out |= interact.ModCtrl
	}
	if m.Contain(key.ModAlt) {
		out |= interact.ModAlt
	}
	if m.Contain(key.ModCommand) || m.Contain(key.ModSuper) {
		out |= interact.ModMeta
	}
	return out
}

func vec(p f32.Point) geom.Vec2 {
	return geom.Pt(float64(p.X), float64(p.Y))
}
