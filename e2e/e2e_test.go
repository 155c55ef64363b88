package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/app"
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/detector"
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/gesture"
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/input"
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/server"
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/store"
)

func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "gallery.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	application := app.New(app.Config{
		Store:    s,
		Detector: detector.NewMockDetector(),
		Gesture:  gesture.DefaultConfig(),
	})

	srv := server.New(server.Config{Store: s, State: application})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	var createdID string

	t.Run("CreateMedia", func(t *testing.T) {
		resp, err := client.Post(
			ts.URL+"/api/media",
			"application/json",
			strings.NewReader(`{"title": "Lantern Festival", "path": "media/lantern.jpg", "kind": "photo"}`),
		)
		if err != nil {
			t.Fatalf("create media error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}

		var created struct {
			ID string `json:"id"`
		}
		json.NewDecoder(resp.Body).Decode(&created)
		if created.ID == "" {
			t.Fatal("create did not return an ID")
		}
		createdID = created.ID
	})

	t.Run("LoadLibrary", func(t *testing.T) {
		if err := application.LoadLibrary(); err != nil {
			t.Fatalf("LoadLibrary() error = %v", err)
		}
		if got := application.Gallery().Count(); got != 1 {
			t.Fatalf("gallery count = %d, want 1", got)
		}
	})

	t.Run("GestureDrivesState", func(t *testing.T) {
		now := time.Now()

		// Sustained left pinch switches the gallery into focus mode.
		for i := 0; i < 10; i++ {
			hands := []detector.Hand{detector.PinchHand(detector.HandednessLeft, 0.5, 0.5, 0.03)}
			application.Step(hands, now.Add(time.Duration(i)*33*time.Millisecond))
		}

		snap := application.Snapshot()
		if snap.Mode != "focus" {
			t.Errorf("mode = %q, want focus", snap.Mode)
		}
		if snap.FocusedID != createdID {
			t.Errorf("focused item = %q, want %q", snap.FocusedID, createdID)
		}
	})

	t.Run("APIStillWorks", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/health")
		if err != nil {
			t.Fatalf("health check error = %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("health check failed after app operations")
		}
		resp.Body.Close()
	})
}

func TestE2E_PointerClicksGalleryTile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "gallery.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	item := &store.MediaItem{ID: "tile-1", Title: "First", Path: "1.jpg", Kind: store.MediaKindPhoto}
	if err := s.Media().Create(item); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	application := app.New(app.Config{
		Store:    s,
		Detector: detector.NewMockDetector(),
		Gesture:  gesture.DefaultConfig(),
	})
	if err := application.LoadLibrary(); err != nil {
		t.Fatalf("LoadLibrary() error = %v", err)
	}

	tile := application.Surface().Find("tile-1")
	if tile == nil {
		t.Fatal("overlay tile missing")
	}

	var clicked string
	tile.OnEvent(func(ev input.Event) {
		if ev.Type == input.Click {
			clicked = ev.Target
		}
	})

	// The first tile sits at (0, 500) with size 160; aim the cursor at its
	// center (80, 580). Cursor = ((1-x)*1280, y*720), so x = 1 - 80/1280,
	// y = 580/720.
	handX := 1 - 80.0/1280.0
	handY := 580.0 / 720.0

	now := time.Now()
	application.Step([]detector.Hand{detector.PointingHand(detector.HandednessRight, handX, handY)}, now)
	application.Step([]detector.Hand{detector.PinchHand(detector.HandednessRight, handX, handY, 0.03)}, now.Add(33*time.Millisecond))
	application.Step([]detector.Hand{detector.PointingHand(detector.HandednessRight, handX, handY)}, now.Add(66*time.Millisecond))

	if clicked != "tile-1" {
		t.Errorf("clicked tile = %q, want %q", clicked, "tile-1")
	}
}
