package flow

type Cursor int

const (
	CursorDefault Cursor = iota
	CursorGrab
	CursorGrabbing
	CursorPointer
	CursorResize
)

func (c Cursor) String() string {
	switch c {
	case CursorGrab:
		return "grab"
	case CursorGrabbing:
		return "grabbing"
	case CursorPointer:
		return "pointer"
	case CursorResize:
		return "ew-resize"
	default:
		return "default"
	}
}
