package interact

import (
	"github.com/bloodmagesoftware/gardenplan/geom"
)

// Modifiers is a set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Contain reports whether all modifiers in m2 are held.
func (m Modifiers) Contain(m2 Modifiers) bool {
	return m&m2 == m2
}

// Command reports whether the platform command modifier (Ctrl or Meta) is held.
func (m Modifiers) Command() bool {
	return m&(ModCtrl|ModMeta) != 0
}

// PointerKind is the phase of a pointer event.
type PointerKind uint8

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerCancel
)

// PointerEvent is a mouse, pen or single finger event in screen coordinates.
type PointerEvent struct {
	Kind      PointerKind
	Position  geom.Vec2
	Modifiers Modifiers
	// Secondary is set when the secondary (right) button is pressed.
	Secondary bool
}

// Key names understood by the machine. Letters and digits use their lower
// case character, for example "g" or "0".
const (
	KeySpace     = "Space"
	KeyEscape    = "Escape"
	KeyDelete    = "Delete"
	KeyBackspace = "Backspace"
	KeyLeft      = "Left"
	KeyRight     = "Right"
	KeyUp        = "Up"
	KeyDown      = "Down"
	KeyPlus      = "+"
	KeyMinus     = "-"
)

// KeyEvent is a key press or release.
type KeyEvent struct {
	Name      string
	Modifiers Modifiers
	Release   bool
}

// WheelEvent is a scroll wheel or trackpad scroll in screen coordinates.
type WheelEvent struct {
	Position  geom.Vec2
	Delta     geom.Vec2
	Modifiers Modifiers
}

// TouchEvent carries the current positions of all touching fingers.
// An empty list ends the gesture.
type TouchEvent struct {
	Points []geom.Vec2
}
