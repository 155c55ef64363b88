package app

import (
	"log"
	"time"

	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/capture"
)

// runPipeline is the frame loop. It captures at the idle rate until frame
// differencing sees the scene change, then ramps up to the active rate and
// runs hand detection each tick; after two seconds without movement it
// drops back to idle.
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(capture.IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			now := time.Now()

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			ratio := a.diff.Update(frame)

			if ratio > a.config.MotionThreshold {
				lastMotionTime = now

				if !activeMode {
					activeMode = true
					a.camera.SetFPS(capture.ActiveFPS)
					frameInterval = time.Second / time.Duration(capture.ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active capture")
				}
			} else if activeMode && now.Sub(lastMotionTime) > IdleTimeout {
				activeMode = false
				a.camera.SetFPS(capture.IdleFPS)
				frameInterval = time.Second / time.Duration(capture.IdleFPS)
				ticker.Reset(frameInterval)
				log.Println("Switched to idle capture")
			}

			if !activeMode || a.det == nil {
				frame.Close()
				// Hands cannot be present in a still scene; release
				// whatever is held.
				a.Step(nil, now)
				continue
			}

			hands, err := a.det.Detect(frame, now.UnixMilli())
			frame.Close()
			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				// A failed detection counts as a frame with no hands,
				// so held input still releases and the mode timeout
				// still advances.
				a.Step(nil, now)
				continue
			}

			a.Step(hands, now)
		}
	}
}
