package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/cjeanneret/WebcamShot/internal/config"
	"github.com/cjeanneret/WebcamShot/internal/debug"
	"github.com/cjeanneret/WebcamShot/internal/hw/camera"
	"github.com/cjeanneret/WebcamShot/internal/hw/display"
	"github.com/cjeanneret/WebcamShot/internal/hw/gpio"
	"github.com/cjeanneret/WebcamShot/internal/logic/capture"
	"github.com/cjeanneret/WebcamShot/internal/trigger"
	"github.com/cjeanneret/WebcamShot/internal/web"
)

// cliOverrides holds flag values that take precedence over the config file.
// Negative numbers mean "use config".
type cliOverrides struct {
	DeviceID   int
	DebugLevel int
	Mock       bool
}

func main() {
	// CLI flags
	webPort := &webPortFlag{defaultPort: 8080}
	flag.Var(webPort, "web", "start web control page on port; -web= for default 8080, -web 8980 for custom port")
	cfgPath := flag.String("config", "", "path to config file (configs/*.yaml); empty uses built-in defaults")
	deviceID := flag.Int("device", -1, "override camera device index")
	debugLevel := flag.Int("debug", -1, "override debug level (0-4)")
	mock := flag.Bool("mock", false, "use the synthetic camera and the headless display")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load configuration
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	overrides := cliOverrides{DeviceID: *deviceID, DebugLevel: *debugLevel, Mock: *mock}
	if err := validateCLIOverrides(overrides); err != nil {
		log.Fatalf("invalid CLI override: %v", err)
	}
	applyOverrides(cfg, overrides)

	// Initialize debug system
	debug.Init(cfg.Defaults.DebugLevel)
	debug.Section("Initialization")
	debug.Value("Config path", *cfgPath)
	debug.Value("Debug level", cfg.Defaults.DebugLevel)
	debug.PrintStruct("Camera config", cfg.Camera)
	debug.PrintStruct("Display config", cfg.Display)
	debug.PrintStruct("Burst config", cfg.Burst)

	// Trigger sources come first so that a GPIO failure does not leave
	// the camera open.
	debug.Step(1, "Initializing trigger sources")
	requests := trigger.NewRequest()
	triggers, closeTriggers, err := newTriggersFromConfig(cfg, requests, webPort.port() > 0)
	if err != nil {
		log.Fatalf("init triggers failed: %v", err)
	}
	defer closeTriggers()

	// A camera that cannot be opened is a fatal startup condition.
	cam, disp, err := openDevices(cfg, os.Stdin, closeTriggers)
	if err != nil {
		log.Fatalf("%v", err)
	}

	session := capture.NewSession(cam, disp, newWriterFromConfig(cfg), capture.Params{
		PollTimeout:   cfg.PollTimeout(),
		BurstCount:    cfg.Burst.Count,
		BurstInterval: cfg.BurstInterval(),
		FilePath:      cfg.FilePath,
	}, triggers...)
	defer func() {
		if err := session.Close(); err != nil {
			log.Printf("teardown: %v", err)
		}
	}()

	webDone := make(chan struct{})
	webCtx, stopWeb := context.WithCancel(ctx)
	if port := webPort.port(); port > 0 {
		broadcaster := web.NewStatusBroadcaster()
		debug.SetOutput(io.MultiWriter(os.Stdout, web.BroadcastWriter(broadcaster)))

		srv, err := web.NewServer(fmt.Sprintf(":%d", port), broadcaster, requests, burstInfo(cfg), cfg.FilePath)
		if err != nil {
			log.Printf("web server disabled: %v", err)
			close(webDone)
		} else {
			go func() {
				defer close(webDone)
				if err := srv.Run(webCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
					log.Printf("web server: %v", err)
				}
			}()
		}
	} else {
		close(webDone)
	}

	res, err := session.Run(ctx)
	if err != nil {
		log.Printf("capture loop: %v", err)
	}
	debug.Info("Loop ended (%s), %d file(s) saved", res.Reason, len(res.Saved))

	stopWeb()
	<-webDone
}

// loadConfig validates and loads path, or returns the defaults when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	if err := config.ValidateConfigPath(path); err != nil {
		return nil, err
	}
	return config.Load(path)
}

// validateCLIOverrides checks flag values. Negative values are ignored
// (they mean "use config").
func validateCLIOverrides(o cliOverrides) error {
	if o.DebugLevel > 4 {
		return fmt.Errorf("debug must be between 0 and 4, got %d", o.DebugLevel)
	}
	if o.DeviceID > 63 {
		return fmt.Errorf("device must be between 0 and 63, got %d", o.DeviceID)
	}
	return nil
}

// applyOverrides mutates cfg with overrides. Only non-negative values are applied.
func applyOverrides(cfg *config.Config, o cliOverrides) {
	if o.DeviceID >= 0 {
		cfg.Camera.DeviceID = o.DeviceID
	}
	if o.DebugLevel >= 0 {
		cfg.Defaults.DebugLevel = o.DebugLevel
	}
	if o.Mock {
		cfg.Camera.Type = config.CameraMock
		cfg.Display.Type = config.DisplayHeadless
	}
}

// burstInfo describes the burst for the web control page.
func burstInfo(cfg *config.Config) web.BurstInfo {
	files := make([]string, cfg.Burst.Count)
	for i := range files {
		files[i] = cfg.FileName(i)
	}
	return web.BurstInfo{
		Count:      cfg.Burst.Count,
		IntervalMs: cfg.Burst.IntervalMs,
		Files:      files,
	}
}

// webPortFlag implements flag.Value for -web: 0 = disabled, -web= or -web 8080 → 8080, -web 8980 → 8980.
type webPortFlag struct {
	val         int
	defaultPort int
}

func (w *webPortFlag) String() string {
	if w.val == 0 {
		return "0"
	}
	return strconv.Itoa(w.val)
}

func (w *webPortFlag) Set(s string) error {
	if s == "" {
		w.val = w.defaultPort
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v <= 0 || v > 65535 {
		return fmt.Errorf("port must be 1-65535, got %d", v)
	}
	w.val = v
	return nil
}

func (w *webPortFlag) port() int { return w.val }

// newCameraFromConfig selects a camera implementation based on configuration.
func newCameraFromConfig(cfg *config.Config) (camera.Camera, error) {
	switch cfg.Camera.Type {
	case config.CameraMock:
		return camera.NewMockCamera(cfg.Camera.MockWidth, cfg.Camera.MockHeight, cfg.Camera.MockFailAfter), nil
	case config.CameraOpenCV:
		return openCVCamera(cfg.Camera.DeviceID)
	default:
		return nil, fmt.Errorf("unsupported camera type: %s", cfg.Camera.Type)
	}
}

// openDevices opens the camera, then the display. On failure everything
// already opened is closed and release is called, since log.Fatalf skips
// deferred calls.
func openDevices(cfg *config.Config, keys io.Reader, release func()) (camera.Camera, display.Display, error) {
	debug.Step(2, "Opening camera")
	cam, err := newCameraFromConfig(cfg)
	if err != nil {
		release()
		return nil, nil, fmt.Errorf("open camera failed: %w", err)
	}

	debug.Step(3, "Creating display")
	disp, err := newDisplayFromConfig(cfg, keys)
	if err != nil {
		_ = cam.Close()
		release()
		return nil, nil, fmt.Errorf("create display failed: %w", err)
	}
	return cam, disp, nil
}

// newDisplayFromConfig selects a display implementation based on configuration.
// keys feeds the headless display.
func newDisplayFromConfig(cfg *config.Config, keys io.Reader) (display.Display, error) {
	switch cfg.Display.Type {
	case config.DisplayHeadless:
		return display.NewHeadless(keys), nil
	case config.DisplayOpenCV:
		return openCVWindow(cfg.Display.WindowTitle)
	default:
		return nil, fmt.Errorf("unsupported display type: %s", cfg.Display.Type)
	}
}

// newWriterFromConfig encodes with OpenCV when it captures, and with the
// imaging package otherwise.
func newWriterFromConfig(cfg *config.Config) camera.FrameWriter {
	if cfg.Camera.Type == config.CameraOpenCV {
		if w := openCVWriter(); w != nil {
			return w
		}
	}
	return camera.ImageFileWriter{}
}

// newTriggersFromConfig builds the non-keyboard trigger sources. The
// returned cleanup releases GPIO when a button is configured.
func newTriggersFromConfig(cfg *config.Config, requests *trigger.Request, remote bool) ([]trigger.Source, func(), error) {
	var sources []trigger.Source
	cleanup := func() {}

	if cfg.ButtonEnabled() {
		debug.Value("Mock GPIO", cfg.Trigger.MockGPIO)
		drv, err := gpio.NewDriver(cfg.Trigger.MockGPIO)
		if err != nil {
			return nil, cleanup, err
		}
		button, err := trigger.NewButton(drv, cfg.Trigger.ButtonPin)
		if err != nil {
			_ = drv.Close()
			return nil, cleanup, err
		}
		sources = append(sources, button)
		cleanup = func() {
			if err := drv.Close(); err != nil {
				log.Printf("closing GPIO driver failed: %v", err)
			}
		}
	}
	if remote {
		sources = append(sources, requests)
	}
	return sources, cleanup, nil
}
