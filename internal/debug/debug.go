package debug

import (
	"io"
	"log"
	"os"
	"sync"
)

// Debug levels
const (
	LevelOff     = 0 // Only status lines
	LevelInfo    = 1 // Important info (config, saved files, fingerprints)
	LevelLive    = 2 // Live info (key presses, triggers, burst progress)
	LevelVerbose = 3 // Verbose (wiring details, teardown steps)
	LevelTrace   = 4 // Trace (every frame, GPIO reads)
)

const prefix = "[WebcamShot] "

var (
	mu     sync.Mutex
	level  int
	logger = log.New(os.Stdout, prefix, log.LstdFlags|log.Lmicroseconds)
)

// Init sets the debug level (0-4).
// 0 = status lines only
// 1 = important info (config, saved files)
// 2 = live info (keys, triggers, burst progress)
// 3 = verbose (wiring, teardown)
// 4 = trace (every frame, GPIO)
func Init(debugLevel int) {
	mu.Lock()
	defer mu.Unlock()
	level = debugLevel
}

// SetOutput redirects all debug output to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, prefix, log.LstdFlags|log.Lmicroseconds)
}

// Level returns the current debug level.
func Level() int {
	mu.Lock()
	defer mu.Unlock()
	return level
}

// IsEnabled returns true if debug level is >= the requested level.
func IsEnabled(minLevel int) bool {
	return Level() >= minLevel
}

func printf(minLevel int, format string, args ...interface{}) {
	mu.Lock()
	l, lg := level, logger
	mu.Unlock()
	if l >= minLevel {
		lg.Printf(format, args...)
	}
}

// --- Always printed ---

// Status prints a user-facing status line regardless of the debug level.
func Status(format string, args ...interface{}) {
	printf(LevelOff, format, args...)
}

// --- Level 1 functions (Info): important info ---

// Info prints a level 1 message (important info).
func Info(format string, args ...interface{}) {
	printf(LevelInfo, "[INFO] "+format, args...)
}

// Value prints a named value in formatted form (level 1).
func Value(name string, value interface{}) {
	printf(LevelInfo, "[INFO]   %s = %v", name, value)
}

// --- Level 2 functions (Live): real-time info ---

// Live prints a level 2 message (live info).
func Live(format string, args ...interface{}) {
	printf(LevelLive, "[LIVE] "+format, args...)
}

// Key prints a received key code (level 2).
func Key(code int) {
	printf(LevelLive, "[LIVE] Key pressed: code=%d", code)
}

// Shot prints a burst capture position (level 2).
func Shot(index, total int) {
	printf(LevelLive, "[LIVE] Burst capture %d/%d", index+1, total)
}

// --- Level 3 functions (Verbose): everything ---

// Verbose prints a level 3 message (verbose).
func Verbose(format string, args ...interface{}) {
	printf(LevelVerbose, "[VERBOSE] "+format, args...)
}

// PrintStruct prints a struct in formatted form (level 3).
func PrintStruct(name string, v interface{}) {
	printf(LevelVerbose, "[VERBOSE] %s: %+v", name, v)
}

// Section prints a section separator (level 3).
func Section(name string) {
	printf(LevelVerbose, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	printf(LevelVerbose, "  %s", name)
	printf(LevelVerbose, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
}

// Step prints a numbered step (level 3).
func Step(num int, description string) {
	printf(LevelVerbose, "[VERBOSE] Step %d: %s", num, description)
}

// --- Level 4 functions (Trace): very low level ---

// Trace prints a level 4 message (trace).
func Trace(format string, args ...interface{}) {
	printf(LevelTrace, "[TRACE] "+format, args...)
}

// GPIO prints a GPIO operation (level 4).
func GPIO(operation string, pin int, value interface{}) {
	printf(LevelTrace, "[GPIO] %s pin=%d value=%v", operation, pin, value)
}

// --- General functions ---

// Error prints an error at level 1+.
func Error(err error) {
	printf(LevelInfo, "[ERROR] %v", err)
}
