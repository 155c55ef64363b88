// Package gallery holds the media library shown by the 3D front end and
// derives the focused item from the gesture scroll accumulator.
package gallery

import (
	"math"
	"sync"
	"time"

	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/gesture"
)

// Kind distinguishes photo and video items.
type Kind string

const (
	KindPhoto Kind = "photo"
	KindVideo Kind = "video"
)

// Item is one picture or clip in the gallery ring.
type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Path      string    `json:"path"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// Gallery is the ordered set of items the ring and sphere layouts show.
// Items are replaced wholesale when the library changes; reads come from
// the frame loop and the state broadcaster concurrently.
type Gallery struct {
	mu    sync.RWMutex
	items []Item
}

// New creates an empty gallery.
func New() *Gallery {
	return &Gallery{}
}

// SetItems replaces the gallery contents.
func (g *Gallery) SetItems(items []Item) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.items = make([]Item, len(items))
	copy(g.items, items)
}

// Items returns a copy of the gallery contents.
func (g *Gallery) Items() []Item {
	g.mu.RLock()
	defer g.mu.RUnlock()
	items := make([]Item, len(g.items))
	copy(items, g.items)
	return items
}

// Count returns the number of items.
func (g *Gallery) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.items)
}

// FocusedID maps the unbounded scroll accumulator onto an item. Items sit
// on a ring one angular step apart, so the offset wraps by modulo; negative
// offsets wrap backwards. Returns "" for an empty gallery.
func (g *Gallery) FocusedID(scrollOffset float64) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := len(g.items)
	if n == 0 {
		return ""
	}

	step := 2 * math.Pi / float64(n)
	idx := int(math.Round(scrollOffset/step)) % n
	if idx < 0 {
		idx += n
	}
	return g.items[idx].ID
}

// Snapshot is the per-frame state streamed to the front end.
type Snapshot struct {
	Mode         string         `json:"mode"`
	ScrollOffset float64        `json:"scrollOffset"`
	FocusedID    string         `json:"focusedId,omitempty"`
	Cursor       gesture.Cursor `json:"cursor"`
	TimestampMs  int64          `json:"timestamp"`
}
