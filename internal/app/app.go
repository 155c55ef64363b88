// Package app orchestrates the gallery daemon: camera capture, hand
// detection, gesture interpretation, and synthetic input dispatch.
package app

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/capture"
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/detector"
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/gallery"
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/gesture"
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/input"
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/store"
)

// Pipeline timing constants.
const (
	// IdleTimeout is how long the scene must stay still before the
	// pipeline drops back to the idle capture rate.
	IdleTimeout = 2 * time.Second
)

// Config holds the application wiring. Camera and Detector must be set;
// Store is optional (no persistence, empty gallery).
type Config struct {
	Store           *store.Store
	Camera          capture.Camera
	Detector        detector.Detector
	Gesture         gesture.Config
	MotionThreshold float64
}

// App owns the frame loop and the per-hand interpretation state.
type App struct {
	config  Config
	camera  capture.Camera
	diff    *capture.FrameDiff
	det     detector.Detector
	gallery *gallery.Gallery
	surface *input.Surface

	modes      *gesture.ModeClassifier
	pointer    *gesture.PointerTracker
	dispatcher *input.Dispatcher

	lastLeftSeen time.Time

	enabled bool
	stopCh  chan struct{}
	mu      sync.Mutex
}

// New creates an App with the given configuration.
func New(config Config) *App {
	if config.MotionThreshold <= 0 {
		config.MotionThreshold = 0.01
	}

	surface := input.NewSurface(config.Gesture.ViewportWidth, config.Gesture.ViewportHeight)

	return &App{
		config:     config,
		camera:     config.Camera,
		diff:       capture.NewFrameDiff(),
		det:        config.Detector,
		gallery:    gallery.New(),
		surface:    surface,
		modes:      gesture.NewModeClassifier(config.Gesture),
		pointer:    gesture.NewPointerTracker(config.Gesture),
		dispatcher: input.NewDispatcher(surface),
		enabled:    true,
	}
}

// SetEnabled pauses or resumes gesture interpretation. While paused the
// frame loop keeps running but hands are ignored and any held drag is
// released.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.enabled && !enabled {
		a.pointer.Deactivate()
		a.dispatcher.ReleaseAll()
		a.modes.Expire()
	}
	a.enabled = enabled
}

// IsEnabled returns whether gesture interpretation is active.
func (a *App) IsEnabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

// SetEventHook registers a callback observing every synthetic input
// event, after region dispatch. The server wires this to its WebSocket
// feed.
func (a *App) SetEventHook(fn func(input.Event)) {
	a.dispatcher.SetHook(fn)
}

// LoadLibrary loads media items from the store into the gallery and lays
// the overlay regions out for them.
func (a *App) LoadLibrary() error {
	if a.config.Store == nil {
		return nil
	}

	items, err := a.config.Store.Media().List()
	if err != nil {
		return err
	}

	galleryItems := make([]gallery.Item, 0, len(items))
	for _, m := range items {
		galleryItems = append(galleryItems, gallery.Item{
			ID:        m.ID,
			Title:     m.Title,
			Path:      m.Path,
			Kind:      gallery.Kind(m.Kind),
			CreatedAt: m.CreatedAt,
		})
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.gallery.SetItems(galleryItems)
	a.buildOverlay(galleryItems)

	log.Printf("Loaded %d media items", len(galleryItems))
	return nil
}

// buildOverlay rebuilds the interactive region tree mirroring the ring
// layout: a scrollable strip across the lower third with one tile per
// item. Caller holds the mutex.
func (a *App) buildOverlay(items []gallery.Item) {
	root := a.surface.Root()
	if old := a.surface.Find("ring"); old != nil {
		old.Detach()
	}

	w := a.config.Gesture.ViewportWidth
	h := a.config.Gesture.ViewportHeight

	strip := input.NewRegion("ring", input.Rect{X: 0, Y: h * 2 / 3, W: w, H: h / 3}).
		SetScrollable(true)
	root.AddChild(strip)

	const tileSize = 160
	for i, item := range items {
		tile := input.NewRegion(item.ID, input.Rect{
			X: float64(i) * (tileSize + 20),
			Y: h*2/3 + 20,
			W: tileSize,
			H: tileSize,
		})
		strip.AddChild(tile)
	}
}

// Start initializes the detector, opens the camera, and launches the
// frame loop. Calling Start on a running app is a no-op.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.det.Initialize(ctx); err != nil {
		return err
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(capture.IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Frame pipeline started")
	return nil
}

// Stop halts the frame loop, releases any held input, and closes the
// camera and detector.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	a.pointer.Deactivate()
	a.dispatcher.ReleaseAll()

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.diff.Close()

	if a.det != nil {
		if err := a.det.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Frame pipeline stopped")
}

// Step processes one frame's worth of detected hands. The left hand
// drives the mode machine and scroll, the right hand drives the pointer
// and the synthetic event dispatcher. A left hand missing for longer
// than the configured timeout drops the mode back to aggregate; a frame
// without a right hand deactivates the pointer and releases any held
// drag immediately.
//
// Exported so tests and replay tooling can drive the interpretation
// without a camera.
func (a *App) Step(hands []detector.Hand, now time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.enabled {
		return
	}

	var left, right *detector.Hand
	for i := range hands {
		switch hands[i].Handedness {
		case detector.HandednessLeft:
			left = &hands[i]
		case detector.HandednessRight:
			right = &hands[i]
		}
	}

	if left != nil {
		a.modes.Update(left)
		a.lastLeftSeen = now
	} else if !a.lastLeftSeen.IsZero() && now.Sub(a.lastLeftSeen) > a.config.Gesture.HandTimeout {
		a.modes.Expire()
	}

	if right != nil {
		cursor, verticalDelta := a.pointer.Update(right, now.UnixMilli())
		a.dispatcher.Update(cursor.X, cursor.Y, verticalDelta, a.pointer.Pinching())
	} else {
		// The cursor is active only while a right hand is in the frame.
		// Its absence takes effect the same frame: the cursor reports
		// inactive and any open drag session is force-released, never
		// left dangling. The position smoothers keep their history.
		a.pointer.Deactivate()
		a.dispatcher.ReleaseAll()
	}
}

// Snapshot returns the state the front end renders this frame.
func (a *App) Snapshot() gallery.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	offset := a.modes.ScrollOffset()
	return gallery.Snapshot{
		Mode:         a.modes.Mode().String(),
		ScrollOffset: offset,
		FocusedID:    a.gallery.FocusedID(offset),
		Cursor:       a.pointer.Cursor(),
		TimestampMs:  time.Now().UnixMilli(),
	}
}

// Mode returns the current gallery mode.
func (a *App) Mode() gesture.Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.modes.Mode()
}

// Surface returns the overlay region tree.
func (a *App) Surface() *input.Surface {
	return a.surface
}

// Gallery returns the media library.
func (a *App) Gallery() *gallery.Gallery {
	return a.gallery
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	return a.det
}
