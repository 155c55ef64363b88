package input

// Rect is an axis-aligned rectangle in cursor screen space.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is one rectangular element of the overlay surface. Regions form a
// tree; hit testing returns the topmost interactive region under a point,
// and dispatched events bubble from the target up to the root.
//
// The browser overlay mirrors this tree, so region IDs double as the wire
// names of the overlay widgets.
type Region struct {
	id          string
	bounds      Rect
	z           int
	interactive bool
	scrollable  bool
	scrollY     float64
	handler     func(Event)
	parent      *Region
	children    []*Region
	detached    bool
}

// NewRegion creates an interactive region with the given id and bounds.
func NewRegion(id string, bounds Rect) *Region {
	return &Region{id: id, bounds: bounds, interactive: true}
}

// ID returns the region identifier.
func (r *Region) ID() string {
	return r.id
}

// Bounds returns the region rectangle.
func (r *Region) Bounds() Rect {
	return r.bounds
}

// SetZ sets the stacking order; higher values sit on top.
func (r *Region) SetZ(z int) *Region {
	r.z = z
	return r
}

// SetInteractive controls whether hit testing can return this region.
// Non-interactive regions still group children and receive bubbled events.
func (r *Region) SetInteractive(interactive bool) *Region {
	r.interactive = interactive
	return r
}

// SetScrollable marks the region as a scroll container for drag-scrolling.
func (r *Region) SetScrollable(scrollable bool) *Region {
	r.scrollable = scrollable
	return r
}

// OnEvent registers the handler invoked for events targeted at or bubbling
// through this region.
func (r *Region) OnEvent(fn func(Event)) *Region {
	r.handler = fn
	return r
}

// AddChild attaches a child region and returns it.
func (r *Region) AddChild(c *Region) *Region {
	c.parent = r
	r.children = append(r.children, c)
	return c
}

// Detach removes the region from the surface. Hit testing no longer finds
// it and event dispatch against it becomes inert, mirroring an element
// removed from the document between frames.
func (r *Region) Detach() {
	r.detached = true
	if r.parent == nil {
		return
	}
	siblings := r.parent.children
	for i, c := range siblings {
		if c == r {
			r.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	r.parent = nil
}

// Detached reports whether the region has been removed from the surface.
func (r *Region) Detached() bool {
	return r.detached
}

// ScrollY returns the current scroll position of a scrollable region.
func (r *Region) ScrollY() float64 {
	return r.scrollY
}

// ScrollBy adjusts the scroll position, clamping at the top.
func (r *Region) ScrollBy(dy float64) {
	r.scrollY += dy
	if r.scrollY < 0 {
		r.scrollY = 0
	}
}

// scrollContainer returns the region itself or its nearest scrollable
// ancestor, or nil if none.
func (r *Region) scrollContainer() *Region {
	for cur := r; cur != nil; cur = cur.parent {
		if cur.scrollable {
			return cur
		}
	}
	return nil
}

// dispatch delivers an event to the region and bubbles it ancestor-ward.
// Dispatch against a detached region is a no-op.
func (r *Region) dispatch(ev Event) {
	if r.detached {
		return
	}
	for cur := r; cur != nil; cur = cur.parent {
		if cur.handler != nil {
			cur.handler(ev)
		}
	}
}

// Surface is the root of the overlay region tree.
type Surface struct {
	root *Region
}

// NewSurface creates a surface covering the given viewport. The root region
// is not interactive; hits outside every child resolve to no element.
func NewSurface(width, height float64) *Surface {
	root := NewRegion("root", Rect{W: width, H: height})
	root.interactive = false
	return &Surface{root: root}
}

// Root returns the root region for attaching overlay widgets.
func (s *Surface) Root() *Region {
	return s.root
}

// Find returns the region with the given id, or nil.
func (s *Surface) Find(id string) *Region {
	return find(s.root, id)
}

func find(r *Region, id string) *Region {
	if r.id == id {
		return r
	}
	for _, c := range r.children {
		if got := find(c, id); got != nil {
			return got
		}
	}
	return nil
}

// ElementAt returns the topmost interactive region under the point, or nil.
// Children win over parents; among overlapping siblings the higher z wins,
// with later insertion breaking ties.
func (s *Surface) ElementAt(x, y float64) *Region {
	return hitTest(s.root, x, y)
}

func hitTest(r *Region, x, y float64) *Region {
	if !r.bounds.Contains(x, y) {
		return nil
	}

	var best *Region
	bestZ := 0
	for _, c := range r.children {
		if got := hitTest(c, x, y); got != nil {
			if best == nil || c.z >= bestZ {
				best = got
				bestZ = c.z
			}
		}
	}
	if best != nil {
		return best
	}
	if r.interactive {
		return r
	}
	return nil
}
