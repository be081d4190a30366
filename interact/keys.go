package interact

import (
	"strconv"

	"github.com/bloodmagesoftware/gardenplan/geom"
)

// toolKeys maps single letter shortcuts to tools.
var toolKeys = map[string]Tool{
	"s": ToolSelect,
	"v": ToolMove,
	"m": ToolMove,
	"p": ToolMove,
	"a": ToolSelectArea,
	"r": ToolRectangle,
	"c": ToolCircle,
	"t": ToolTerrain,
	"d": ToolDelete,
}

// Key handles a key press or release. It reports whether the key was used.
func (m *Machine) Key(ev KeyEvent) bool {
	if ev.Name == KeySpace {
		m.spaceHeld = !ev.Release
		return true
	}
	if ev.Release {
		return false
	}

	if ev.Modifiers.Command() {
		return m.commandKey(ev)
	}

	switch ev.Name {
	case KeyEscape:
		m.Abort()
		m.store.DeselectAll()
		m.armed = nil
		m.tool = ToolSelect
		m.lastArea = geom.Rect{}
		return true
	case KeyDelete, KeyBackspace:
		if n := m.store.RemoveSelected(); n > 0 {
			m.notifyf(LevelInfo, "%d elements removed", n)
		}
		return true
	case KeyLeft, KeyRight, KeyUp, KeyDown:
		return m.nudge(ev)
	case KeyPlus, "=":
		m.camera.ZoomIn()
		return true
	case KeyMinus:
		m.camera.ZoomOut()
		return true
	case "g":
		m.ToggleGrid()
		return true
	case "0":
		m.camera.Reset()
		return true
	}

	if n, err := strconv.Atoi(ev.Name); err == nil && n >= 1 && n <= 9 {
		m.ZoomToFit()
		return true
	}
	if t, ok := toolKeys[ev.Name]; ok {
		if m.mode != ModeIdle {
			return false
		}
		m.SetTool(t)
		return true
	}
	return false
}

func (m *Machine) commandKey(ev KeyEvent) bool {
	switch ev.Name {
	case "a":
		m.store.SelectAll()
	case "z":
		if m.mode != ModeIdle {
			m.Abort()
		}
		if ev.Modifiers.Contain(ModShift) {
			m.store.Redo()
		} else {
			m.store.Undo()
		}
	case "y":
		if m.mode != ModeIdle {
			m.Abort()
		}
		m.store.Redo()
	case "c", "d":
		ids := m.store.SelectedIDs()
		if len(ids) == 0 {
			return false
		}
		off := m.cfg.DuplicateOffset
		if copies := m.store.Duplicate(ids, geom.Pt(off, off)); len(copies) > 0 {
			m.notifyf(LevelInfo, "%d elements duplicated", len(copies))
		}
	case "r":
		m.store.RotateSelected(90)
	case "0":
		m.camera.Reset()
	default:
		return false
	}
	return true
}

func (m *Machine) nudge(ev KeyEvent) bool {
	if m.mode != ModeIdle {
		return false
	}
	step := m.cfg.NudgeStep
	if ev.Modifiers.Contain(ModShift) {
		step = m.cfg.NudgeStepLarge
	}
	var d geom.Vec2
	switch ev.Name {
	case KeyLeft:
		d.X = -step
	case KeyRight:
		d.X = step
	case KeyUp:
		d.Y = -step
	case KeyDown:
		d.Y = step
	}
	return m.store.TranslateSelected(d)
}
