// Package input synthesizes pointer and mouse events from the virtual
// cursor and dispatches them to the overlay surface, so overlay code reacts
// to the tracked hand exactly as it would to a real pointing device.
package input

import "encoding/json"

// EventType identifies a synthetic pointer or mouse event.
type EventType int

const (
	PointerEnter EventType = iota
	PointerLeave
	PointerMove
	PointerDown
	PointerUp
	MouseOver
	MouseOut
	MouseDown
	MouseUp
	Click
)

var eventNames = map[EventType]string{
	PointerEnter: "pointerenter",
	PointerLeave: "pointerleave",
	PointerMove:  "pointermove",
	PointerDown:  "pointerdown",
	PointerUp:    "pointerup",
	MouseOver:    "mouseover",
	MouseOut:     "mouseout",
	MouseDown:    "mousedown",
	MouseUp:      "mouseup",
	Click:        "click",
}

// String returns the wire name of the event type.
func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON encodes the event type by its wire name so consumers see
// "pointermove" rather than an enum ordinal.
func (t EventType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// isPointer reports whether the event type belongs to the pointer family
// (which carries the primary-pointer flag).
func (t EventType) isPointer() bool {
	switch t {
	case PointerEnter, PointerLeave, PointerMove, PointerDown, PointerUp:
		return true
	}
	return false
}

// Event is one synthetic input event carrying client coordinates.
// Target is the region the event was fired on; events bubble from the
// target up through its ancestors.
type Event struct {
	Type    EventType `json:"type"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
	Primary bool      `json:"primary,omitempty"`
	Target  string    `json:"target"`
}
