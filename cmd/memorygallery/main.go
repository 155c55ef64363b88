package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/app"
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/capture"
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/config"
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/detector"
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/server"
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/store"
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/tray"
)

func main() {
	fmt.Println("Memory Gallery - gesture-controlled photo gallery")

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	if err := os.MkdirAll(cfg.MediaDir, 0755); err != nil {
		log.Fatalf("Failed to create media directory: %v", err)
	}

	st, err := store.New(filepath.Join(cfg.DataDir, "gallery.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Calibration overrides saved from the UI win over the config file.
	if overrides, err := st.Settings().All(); err != nil {
		log.Printf("Failed to load calibration overrides: %v", err)
	} else if err := config.ApplyOverrides(&cfg.Gesture, overrides); err != nil {
		log.Printf("Ignoring calibration overrides: %v", err)
	}

	ctx := context.Background()

	// Try MediaPipe first, fall back to the mock detector so the gallery
	// still comes up (without tracking) on machines missing the sidecar.
	var det detector.Detector = detector.NewMediaPipeDetector(detector.DefaultConfig())
	if err := det.Initialize(ctx); err != nil {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		det = detector.NewMockDetector()
	} else {
		log.Println("Using MediaPipe hand detection")
	}

	camera := capture.NewCamera(cfg.CameraID)

	a := app.New(app.Config{
		Store:           st,
		Camera:          camera,
		Detector:        det,
		Gesture:         cfg.Gesture,
		MotionThreshold: cfg.MotionThreshold,
	})

	if err := a.LoadLibrary(); err != nil {
		log.Printf("Failed to load media library: %v", err)
	}

	if err := a.Start(ctx); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	defer a.Stop()

	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    camera,
		State:     a,
	})
	if state := srv.State(); state != nil {
		a.SetEventHook(state.PublishEvent)
	}

	go func() {
		fmt.Printf("Starting server on %s\n", cfg.ListenAddr)
		if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	tr := tray.New()
	tr.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	tr.OnGallery(func() {
		log.Printf("Gallery available at http://localhost%s/", cfg.ListenAddr)
	})
	tr.OnQuit(func() {
		a.Stop()
	})

	// Mirror the current mode into the tray menu.
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			tr.SetMode(a.Mode().String())
		}
	}()

	tr.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.memorygallery/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".memorygallery", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
