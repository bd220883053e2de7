package debug

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func capture(t *testing.T, lvl int) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Init(lvl)
	SetOutput(&buf)
	t.Cleanup(func() {
		Init(LevelOff)
		SetOutput(os.Stdout)
	})
	return &buf
}

func TestStatus_PrintedAtLevelOff(t *testing.T) {
	buf := capture(t, LevelOff)
	Status("Screenshot saved as %s", "opencv_frame_0.png")
	if !strings.Contains(buf.String(), "Screenshot saved as opencv_frame_0.png") {
		t.Errorf("status line missing, got %q", buf.String())
	}
}

func TestLevels_Filtering(t *testing.T) {
	cases := []struct {
		name  string
		level int
		emit  func()
		want  bool
	}{
		{"info_at_off", LevelOff, func() { Info("x") }, false},
		{"info_at_info", LevelInfo, func() { Info("x") }, true},
		{"live_at_info", LevelInfo, func() { Live("x") }, false},
		{"live_at_live", LevelLive, func() { Live("x") }, true},
		{"verbose_at_live", LevelLive, func() { Verbose("x") }, false},
		{"verbose_at_verbose", LevelVerbose, func() { Verbose("x") }, true},
		{"trace_at_verbose", LevelVerbose, func() { Trace("x") }, false},
		{"trace_at_trace", LevelTrace, func() { Trace("x") }, true},
		{"gpio_at_trace", LevelTrace, func() { GPIO("ReadPin", 17, true) }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := capture(t, tc.level)
			tc.emit()
			if got := buf.Len() > 0; got != tc.want {
				t.Errorf("output present = %v, want %v (%q)", got, tc.want, buf.String())
			}
		})
	}
}

func TestError_Tagged(t *testing.T) {
	buf := capture(t, LevelInfo)
	Error(os.ErrNotExist)
	if !strings.Contains(buf.String(), "[ERROR]") {
		t.Errorf("expected [ERROR] tag, got %q", buf.String())
	}
}
