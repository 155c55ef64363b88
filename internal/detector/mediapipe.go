package detector

import (
	"bufio"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"gocv.io/x/gocv"
)

// MediaPipeDetector implements Detector over a Python MediaPipe subprocess.
// Frames go out as length-prefixed JPEG; hands come back as one JSON line
// per frame.
type MediaPipeDetector struct {
	config Config

	mu       sync.Mutex
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	stdout   *bufio.Reader
	initDone bool
	initErr  error
	closed   bool
	lastTS   int64
}

// NewMediaPipeDetector creates a detector for the given configuration.
// The subprocess is not started until Initialize.
func NewMediaPipeDetector(config Config) *MediaPipeDetector {
	return &MediaPipeDetector{config: config, lastTS: -1}
}

// Initialize starts the tracking subprocess and waits for its ready
// handshake. The first call decides the outcome; later calls return the
// same result without starting anything.
func (d *MediaPipeDetector) Initialize(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.initDone {
		return d.initErr
	}
	d.initDone = true

	if err := d.startLocked(ctx); err != nil {
		d.initErr = fmt.Errorf("%w: %v", ErrInitFailed, err)
	}
	return d.initErr
}

func (d *MediaPipeDetector) startLocked(ctx context.Context) error {
	scriptPath := findTrackingScript()
	if scriptPath == "" {
		return fmt.Errorf("mediapipe_service.py not found")
	}

	pythonPath := findVenvPython()
	if pythonPath == "" {
		pythonPath = "python3"
	}

	cmd := exec.Command(pythonPath, scriptPath)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start tracking service: %w", err)
	}

	d.cmd = cmd
	d.stdin = stdin
	d.stdout = bufio.NewReader(stdout)

	// Send the backend configuration, then wait for the ready line so a
	// missing model or GPU delegate fails here rather than mid-loop.
	cfgMsg, _ := json.Marshal(map[string]any{
		"max_hands":                d.config.MaxHands,
		"min_detection_confidence": d.config.MinDetectionConf,
		"min_tracking_confidence":  d.config.MinTrackingConf,
		"delegate":                 delegateName(d.config.UseGPU),
	})
	if _, err := d.stdin.Write(append(cfgMsg, '\n')); err != nil {
		d.stopLocked()
		return fmt.Errorf("write config: %w", err)
	}

	readyCh := make(chan error, 1)
	go func() {
		line, err := d.stdout.ReadString('\n')
		if err != nil {
			readyCh <- fmt.Errorf("read ready handshake: %w", err)
			return
		}
		var ready struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		}
		if err := json.Unmarshal([]byte(line), &ready); err != nil {
			readyCh <- fmt.Errorf("parse ready handshake: %w", err)
			return
		}
		if ready.Status != "ready" {
			readyCh <- fmt.Errorf("backend not ready: %s", ready.Error)
			return
		}
		readyCh <- nil
	}()

	select {
	case err := <-readyCh:
		if err != nil {
			d.stopLocked()
			return err
		}
		return nil
	case <-ctx.Done():
		d.stopLocked()
		return ctx.Err()
	}
}

func delegateName(gpu bool) string {
	if gpu {
		return "gpu"
	}
	return "cpu"
}

// Detect sends one frame to the subprocess and parses the detected hands.
// Frames whose timestamp has not advanced are skipped, returning no hands.
func (d *MediaPipeDetector) Detect(frame *gocv.Mat, timestampMs int64) ([]Hand, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initDone || d.initErr != nil || d.closed {
		return nil, ErrNotInitialized
	}
	if timestampMs <= d.lastTS {
		return nil, nil
	}
	d.lastTS = timestampMs

	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()
	data := buf.GetBytes()

	header := make([]byte, 12)
	binary.BigEndian.PutUint64(header[:8], uint64(timestampMs))
	binary.BigEndian.PutUint32(header[8:], uint32(len(data)))

	if _, err := d.stdin.Write(header); err != nil {
		return nil, fmt.Errorf("write frame header: %w", err)
	}
	if _, err := d.stdin.Write(data); err != nil {
		return nil, fmt.Errorf("write frame data: %w", err)
	}

	line, err := d.stdout.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read detection response: %w", err)
	}

	return parseDetectResponse([]byte(line))
}

// Close shuts down the subprocess. Safe to call before Initialize and more
// than once.
func (d *MediaPipeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	return d.stopLocked()
}

func (d *MediaPipeDetector) stopLocked() error {
	if d.cmd == nil {
		return nil
	}
	if d.stdin != nil {
		d.stdin.Close()
	}
	err := d.cmd.Wait()
	d.cmd = nil
	d.stdin = nil
	d.stdout = nil
	return err
}

// parseDetectResponse decodes one JSON response line into hands, dropping
// malformed entries (wrong landmark count, unknown handedness) so a bad
// frame degrades to "fewer hands" instead of corrupting classifier state.
func parseDetectResponse(line []byte) ([]Hand, error) {
	var response struct {
		Hands []struct {
			Points     []Point3D `json:"points"`
			Handedness string    `json:"handedness"`
			Score      float64   `json:"score"`
		} `json:"hands"`
	}
	if err := json.Unmarshal(line, &response); err != nil {
		return nil, fmt.Errorf("parse detection response: %w", err)
	}

	hands := make([]Hand, 0, len(response.Hands))
	for _, raw := range response.Hands {
		if len(raw.Points) != NumLandmarks {
			continue
		}
		h := Hand{Handedness: raw.Handedness, Score: raw.Score}
		copy(h.Points[:], raw.Points)
		if !h.valid() {
			continue
		}
		hands = append(hands, h)
	}
	return hands, nil
}

// findTrackingScript locates the Python tracking service script.
func findTrackingScript() string {
	execPath, err := os.Executable()
	var execDir string
	if err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		"scripts/mediapipe_service.py",
		"../scripts/mediapipe_service.py",
		filepath.Join(execDir, "scripts/mediapipe_service.py"),
		filepath.Join(os.Getenv("HOME"), ".memorygallery/scripts/mediapipe_service.py"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}

// findVenvPython looks for a Python interpreter in a project virtualenv.
func findVenvPython() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execDir := filepath.Dir(execPath)

	candidates := []string{
		"venv/bin/python",
		"../venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".memorygallery/venv/bin/python"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}
