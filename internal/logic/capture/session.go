package capture

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cjeanneret/WebcamShot/internal/debug"
	"github.com/cjeanneret/WebcamShot/internal/hw/camera"
	"github.com/cjeanneret/WebcamShot/internal/hw/display"
	"github.com/cjeanneret/WebcamShot/internal/logic/fingerprint"
	"github.com/cjeanneret/WebcamShot/internal/trigger"
)

// ErrClosed is returned by Run once the session has been torn down.
var ErrClosed = errors.New("capture session closed")

// StopReason tells why the capture loop ended.
type StopReason int

const (
	StopEscape StopReason = iota
	StopFrameUnavailable
	StopBurstDone
	StopInterrupted
)

func (r StopReason) String() string {
	switch r {
	case StopEscape:
		return "escape"
	case StopFrameUnavailable:
		return "frame unavailable"
	case StopBurstDone:
		return "burst done"
	case StopInterrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("stop(%d)", int(r))
	}
}

// Result summarizes a finished loop.
type Result struct {
	Reason StopReason
	Saved  []string // files written by the burst, in index order
}

// Params defines the preview and burst behavior.
type Params struct {
	PollTimeout   time.Duration      // key poll timeout per preview frame
	BurstCount    int                // images per burst
	BurstInterval time.Duration      // blocking delay between two burst images
	FilePath      func(i int) string // output path for burst index i
}

// Session owns the camera and the display for the lifetime of the program.
// It runs the live preview and, on request, a single burst capture.
type Session struct {
	camera   camera.Camera
	display  display.Display
	writer   camera.FrameWriter
	triggers []trigger.Source
	params   Params

	sleep  func(time.Duration)
	closed bool
}

// NewSession takes ownership of cam and disp. Close releases both.
func NewSession(cam camera.Camera, disp display.Display, w camera.FrameWriter, p Params, triggers ...trigger.Source) *Session {
	return &Session{
		camera:   cam,
		display:  disp,
		writer:   w,
		triggers: triggers,
		params:   p,
		sleep:    time.Sleep,
	}
}

// Run drives the read -> display -> poll cycle until escape, a burst,
// a frame failure or ctx cancellation. Every ending is a normal stop;
// the error is reserved for misuse of a closed session.
func (s *Session) Run(ctx context.Context) (Result, error) {
	if s.closed {
		return Result{}, ErrClosed
	}

	debug.Section("Live Preview")
	for {
		select {
		case <-ctx.Done():
			debug.Status("Interrupted, closing the app")
			return Result{Reason: StopInterrupted}, nil
		default:
		}

		frame, err := s.camera.Read()
		if err != nil {
			debug.Status("Failed to grab frame")
			debug.Verbose("Preview read error: %v", err)
			return Result{Reason: StopFrameUnavailable}, nil
		}
		if err := s.display.Show(frame); err != nil {
			debug.Error(fmt.Errorf("render frame: %w", err))
		}
		_ = frame.Close()

		switch s.nextAction() {
		case trigger.Quit:
			debug.Status("Escape hit, closing the app")
			return Result{Reason: StopEscape}, nil
		case trigger.Burst:
			saved := s.burst()
			return Result{Reason: StopBurstDone, Saved: saved}, nil
		}
	}
}

// nextAction polls the keyboard first, then every trigger source in order.
func (s *Session) nextAction() trigger.Action {
	key := s.display.PollKey(s.params.PollTimeout)
	if key != display.KeyNone {
		debug.Key(int(key))
	}
	switch key {
	case display.KeyEscape:
		return trigger.Quit
	case display.KeySpace:
		return trigger.Burst
	}
	for _, t := range s.triggers {
		if a := t.Poll(); a != trigger.None {
			debug.Live("Trigger request: %s", a)
			return a
		}
	}
	return trigger.None
}

// burst captures BurstCount fresh frames spaced by BurstInterval.
// A read failure stops the remaining captures. A write failure skips
// that index only. The delay is not interruptible.
func (s *Session) burst() []string {
	debug.Section("Burst Capture")
	var saved []string
	for i := 0; i < s.params.BurstCount; i++ {
		debug.Shot(i, s.params.BurstCount)
		frame, err := s.camera.Read()
		if err != nil {
			debug.Status("Failed to grab frame")
			debug.Verbose("Burst read %d error: %v", i, err)
			break
		}

		path := s.params.FilePath(i)
		err = s.writer.WriteFrame(path, frame)
		_ = frame.Close()
		if err != nil {
			debug.Status("Failed to save %s: %v", path, err)
			debug.Verbose("Burst write %d error: %v", i, err)
		} else {
			saved = append(saved, path)
			debug.Status("Screenshot saved as %s", path)
			s.logFingerprint(path)
		}

		if i < s.params.BurstCount-1 {
			debug.Status("Waiting %s before the next picture...", formatDelay(s.params.BurstInterval))
			s.sleep(s.params.BurstInterval)
		}
	}
	debug.Status("Captured %d pictures.", s.params.BurstCount)
	return saved
}

func (s *Session) logFingerprint(path string) {
	if !debug.IsEnabled(debug.LevelInfo) {
		return
	}
	fp, err := fingerprint.File(path)
	if err != nil {
		debug.Error(err)
		return
	}
	debug.Info("Fingerprint %s = %s", path, fp)
}

// Close releases the camera, then destroys the display. Only the first
// call does anything.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	debug.Section("Teardown")
	var errs []error
	if err := s.camera.Close(); err != nil {
		errs = append(errs, fmt.Errorf("release camera: %w", err))
	}
	if err := s.display.Close(); err != nil {
		errs = append(errs, fmt.Errorf("destroy display: %w", err))
	}
	return errors.Join(errs...)
}

// formatDelay renders whole seconds as "5 seconds" and anything else as a
// duration.
func formatDelay(d time.Duration) string {
	if d == time.Second {
		return "1 second"
	}
	if d > 0 && d%time.Second == 0 {
		return fmt.Sprintf("%d seconds", int(d/time.Second))
	}
	return d.String()
}
