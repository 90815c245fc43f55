package editor

import (
	"fmt"

	"github.com/philipparndt/meshedit/pkg/geometry"
)

// EventKind identifies an input event forwarded by the viewer.
type EventKind int

const (
	EventPointerMoved EventKind = iota
	EventLeftClick
	EventRightClick
	EventKey
)

func (k EventKind) String() string {
	switch k {
	case EventPointerMoved:
		return "pointer-moved"
	case EventLeftClick:
		return "left-click"
	case EventRightClick:
		return "right-click"
	case EventKey:
		return "key"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Key is an editing action bound to a keyboard key by the viewer.
type Key int

const (
	KeyToggle        Key = iota // t
	KeyInvert                   // i
	KeyDelete                   // Delete
	KeyDeleteInverse            // f
	KeyIncrease                 // 2
	KeyDecrease                 // 1
	KeyUndo                     // z
	KeyGeodesic                 // g
	KeySave                     // a
)

func (k Key) String() string {
	switch k {
	case KeyToggle:
		return "toggle"
	case KeyInvert:
		return "invert"
	case KeyDelete:
		return "delete"
	case KeyDeleteInverse:
		return "delete-inverse"
	case KeyIncrease:
		return "increase"
	case KeyDecrease:
		return "decrease"
	case KeyUndo:
		return "undo"
	case KeyGeodesic:
		return "geodesic"
	case KeySave:
		return "save"
	default:
		return fmt.Sprintf("Key(%d)", int(k))
	}
}

// Event is one input notification. Pos is the world-space pick position
// under the pointer when the event happened. Handle is only used when a left
// click places a landmark.
type Event struct {
	Kind   EventKind
	Pos    geometry.Vector3
	Key    Key
	Handle any
}
