package input

import "testing"

// fired is one observed event delivery for assertions.
type fired struct {
	target string
	typ    EventType
}

// testSurface builds a surface with two side-by-side buttons and a
// scrollable strip, recording every event the hook observes.
func testSurface() (*Surface, *[]fired) {
	s := NewSurface(1280, 720)
	s.Root().AddChild(NewRegion("left", Rect{X: 100, Y: 100, W: 200, H: 200}))
	s.Root().AddChild(NewRegion("right", Rect{X: 400, Y: 100, W: 200, H: 200}))
	strip := s.Root().AddChild(NewRegion("strip", Rect{X: 0, Y: 500, W: 1280, H: 200}).SetScrollable(true))
	strip.AddChild(NewRegion("thumb", Rect{X: 40, Y: 520, W: 120, H: 160}))

	log := &[]fired{}
	return s, log
}

func recordingDispatcher(s *Surface, log *[]fired) *Dispatcher {
	d := NewDispatcher(s)
	d.SetHook(func(ev Event) {
		*log = append(*log, fired{target: ev.Target, typ: ev.Type})
	})
	return d
}

func clear(log *[]fired) { *log = (*log)[:0] }

func TestDispatcher_HoverEnterLeavePairs(t *testing.T) {
	s, log := testSurface()
	d := recordingDispatcher(s, log)

	// Enter "left".
	d.Update(150, 150, 0, false)
	want := []fired{
		{"left", PointerEnter},
		{"left", MouseOver},
		{"left", PointerMove},
	}
	assertEvents(t, *log, want)

	// Move within "left": only the move repeats.
	clear(log)
	d.Update(160, 160, 0, false)
	assertEvents(t, *log, []fired{{"left", PointerMove}})

	// Cross to "right": leave pair on the old, enter pair on the new,
	// then the move.
	clear(log)
	d.Update(450, 150, 0, false)
	assertEvents(t, *log, []fired{
		{"left", PointerLeave},
		{"left", MouseOut},
		{"right", PointerEnter},
		{"right", MouseOver},
		{"right", PointerMove},
	})

	// Leave everything: hovered clears to nil.
	clear(log)
	d.Update(700, 400, 0, false)
	assertEvents(t, *log, []fired{
		{"right", PointerLeave},
		{"right", MouseOut},
	})
	if d.Hovered() != nil {
		t.Errorf("Hovered() = %v, want nil", d.Hovered())
	}
}

func TestDispatcher_PressSequenceOnRisingEdge(t *testing.T) {
	s, log := testSurface()
	d := recordingDispatcher(s, log)

	d.Update(150, 150, 0, false)
	clear(log)

	d.Update(150, 150, 0, true)
	assertEvents(t, *log, []fired{
		{"left", PointerMove},
		{"left", PointerDown},
		{"left", MouseDown},
	})
	if d.DragTarget() == nil || d.DragTarget().ID() != "left" {
		t.Errorf("DragTarget = %v, want left", d.DragTarget())
	}
}

func TestDispatcher_PointerCaptureDuringDrag(t *testing.T) {
	s, log := testSurface()
	d := recordingDispatcher(s, log)

	// Press on "left", then drag the cursor onto "right" while holding.
	d.Update(150, 150, 0, false)
	d.Update(150, 150, 0, true)
	clear(log)

	d.Update(450, 150, 0, true)

	// Hover follows the cursor, but the captured move goes to the
	// original target, not the element now under the cursor.
	assertEvents(t, *log, []fired{
		{"left", PointerLeave},
		{"left", MouseOut},
		{"right", PointerEnter},
		{"right", MouseOver},
		{"right", PointerMove}, // frame hover move
		{"left", PointerMove},  // captured move to the drag target
	})

	// Release over "right": the full release sequence targets "left".
	clear(log)
	d.Update(450, 150, 0, false)
	assertEvents(t, *log, []fired{
		{"right", PointerMove},
		{"left", PointerUp},
		{"left", MouseUp},
		{"left", Click},
	})
	if d.DragTarget() != nil {
		t.Errorf("DragTarget = %v after release, want nil", d.DragTarget())
	}
}

func TestDispatcher_ClickWithoutMovement(t *testing.T) {
	s, log := testSurface()
	d := recordingDispatcher(s, log)

	d.Update(150, 150, 0, false)
	d.Update(150, 150, 0, true)
	clear(log)
	d.Update(150, 150, 0, false)

	assertEvents(t, *log, []fired{
		{"left", PointerMove},
		{"left", PointerUp},
		{"left", MouseUp},
		{"left", Click},
	})
}

func TestDispatcher_DragScrollsContainer(t *testing.T) {
	s, log := testSurface()
	d := recordingDispatcher(s, log)
	strip := s.Find("strip")
	strip.ScrollBy(100)

	// Press on the thumb inside the scrollable strip, then move the
	// hand up (negative vertical delta): content scrolls down.
	d.Update(60, 540, 0, false)
	d.Update(60, 540, 0, true)

	d.Update(60, 520, -20, true)
	if strip.ScrollY() != 120 {
		t.Errorf("ScrollY = %f after upward drag, want 120", strip.ScrollY())
	}

	d.Update(60, 550, 30, true)
	if strip.ScrollY() != 90 {
		t.Errorf("ScrollY = %f after downward drag, want 90", strip.ScrollY())
	}
}

func TestDispatcher_PressOverNothingStillClicksNowhere(t *testing.T) {
	s, log := testSurface()
	d := recordingDispatcher(s, log)

	// Pinch over empty space: no press events, no drag target.
	d.Update(700, 400, 0, true)
	assertEvents(t, *log, nil)

	// Releasing fires nothing either.
	d.Update(700, 400, 0, false)
	assertEvents(t, *log, nil)
}

func TestDispatcher_ReleaseAllForcesReleaseSequence(t *testing.T) {
	s, log := testSurface()
	d := recordingDispatcher(s, log)

	d.Update(150, 150, 0, false)
	d.Update(150, 150, 0, true)
	clear(log)

	// Hand disappears mid-drag.
	d.ReleaseAll()
	assertEvents(t, *log, []fired{
		{"left", PointerUp},
		{"left", MouseUp},
		{"left", Click},
		{"left", PointerLeave},
		{"left", MouseOut},
	})
	if d.DragTarget() != nil {
		t.Errorf("DragTarget = %v, want nil", d.DragTarget())
	}
	if d.Hovered() != nil {
		t.Errorf("Hovered = %v, want nil", d.Hovered())
	}

	// Idempotent: nothing left to release.
	clear(log)
	d.ReleaseAll()
	assertEvents(t, *log, nil)
}

func TestDispatcher_DetachedDragTargetReleasesQuietly(t *testing.T) {
	s, log := testSurface()
	d := recordingDispatcher(s, log)

	d.Update(150, 150, 0, false)
	d.Update(150, 150, 0, true)

	// The pressed element is removed from the overlay between frames.
	s.Find("left").Detach()
	clear(log)

	// The release sequence still runs and closes the session; delivery
	// to the detached region is inert but must not panic.
	d.Update(150, 150, 0, false)
	if d.DragTarget() != nil {
		t.Errorf("DragTarget = %v after release on detached target, want nil", d.DragTarget())
	}
}

func assertEvents(t *testing.T, got []fired, want []fired) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d events %v, want %d events %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s on %q, want %s on %q",
				i, got[i].typ, got[i].target, want[i].typ, want[i].target)
		}
	}
}
