package input

// Dispatcher maps per-frame cursor state onto synthetic input events with
// the same ordering and capture semantics as a real pointing device:
// hover enter/leave pairs, continuous moves, a press sequence on the pinch
// rising edge, captured moves to the drag target while held, and a
// release/click sequence on the falling edge.
//
// The only persistent state is the currently hovered region and the
// current drag target; both are cleared, never left stale, when their
// owning condition ends.
type Dispatcher struct {
	surface *Surface

	hovered    *Region
	dragTarget *Region
	pinching   bool
	lastX      float64
	lastY      float64

	// hook, when set, observes every fired event (the server uses it to
	// mirror events to the browser overlay).
	hook func(Event)
}

// NewDispatcher creates a dispatcher over the given surface.
func NewDispatcher(surface *Surface) *Dispatcher {
	return &Dispatcher{surface: surface}
}

// SetHook registers an observer for every dispatched event.
func (d *Dispatcher) SetHook(fn func(Event)) {
	d.hook = fn
}

// Update processes one frame of cursor state. Within the frame the order
// is fixed: hover resolution, move, then click edge handling, because the
// press edge targets the element resolved by this frame's hover pass.
func (d *Dispatcher) Update(x, y, verticalDelta float64, pinching bool) {
	el := d.surface.ElementAt(x, y)

	// Hover transfer. The hovered element is updated unconditionally,
	// including to nil when nothing sits under the cursor.
	if el != d.hovered {
		if d.hovered != nil {
			d.fire(d.hovered, PointerLeave, x, y)
			d.fire(d.hovered, MouseOut, x, y)
		}
		if el != nil {
			d.fire(el, PointerEnter, x, y)
			d.fire(el, MouseOver, x, y)
		}
		d.hovered = el
	}

	// Continuous move drives hover styling that listens for moves rather
	// than enter/leave.
	if el != nil {
		d.fire(el, PointerMove, x, y)
	}

	rising := pinching && !d.pinching
	falling := !pinching && d.pinching
	d.pinching = pinching

	switch {
	case rising:
		d.dragTarget = el
		if el != nil {
			d.fire(el, PointerDown, x, y)
			d.fire(el, MouseDown, x, y)
		}

	case pinching && d.dragTarget != nil:
		// Sustained press. Drag-scroll the nearest scrollable container:
		// the hand moving up (negative delta) scrolls content down.
		if sc := d.dragTarget.scrollContainer(); sc != nil {
			sc.ScrollBy(-verticalDelta)
		}
		// Pointer capture: the original target keeps receiving moves
		// even after the cursor leaves its bounds.
		d.fire(d.dragTarget, PointerMove, x, y)

	case falling:
		d.releaseAt(x, y)
	}

	d.lastX, d.lastY = x, y
}

// ReleaseAll force-closes any open drag session and clears the hover
// state. Called when the right hand disappears mid-drag and on teardown,
// so no overlay element is left stuck pressed or hovered.
func (d *Dispatcher) ReleaseAll() {
	d.releaseAt(d.lastX, d.lastY)
	d.pinching = false
	if d.hovered != nil {
		d.fire(d.hovered, PointerLeave, d.lastX, d.lastY)
		d.fire(d.hovered, MouseOut, d.lastX, d.lastY)
		d.hovered = nil
	}
}

// Hovered returns the currently hovered region, or nil.
func (d *Dispatcher) Hovered() *Region {
	return d.hovered
}

// DragTarget returns the element captured at pinch-down, or nil.
func (d *Dispatcher) DragTarget() *Region {
	return d.dragTarget
}

// releaseAt fires the release sequence on the original drag target at the
// last known position and closes the session.
func (d *Dispatcher) releaseAt(x, y float64) {
	if d.dragTarget == nil {
		return
	}
	d.fire(d.dragTarget, PointerUp, x, y)
	d.fire(d.dragTarget, MouseUp, x, y)
	d.fire(d.dragTarget, Click, x, y)
	d.dragTarget = nil
}

func (d *Dispatcher) fire(target *Region, t EventType, x, y float64) {
	ev := Event{
		Type:    t,
		X:       x,
		Y:       y,
		Primary: t.isPointer(),
		Target:  target.ID(),
	}
	target.dispatch(ev)
	if d.hook != nil {
		d.hook(ev)
	}
}
