package gpio

import "testing"

func TestNewDriver_Mock(t *testing.T) {
	drv, err := NewDriver(true)
	if err != nil {
		t.Fatalf("NewDriver(true): %v", err)
	}
	if _, ok := drv.(*MockDriver); !ok {
		t.Errorf("NewDriver(true) = %T, want *MockDriver", drv)
	}
	if err := drv.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestMockDriver_PullSetsIdleLevel(t *testing.T) {
	cases := []struct {
		name string
		pull Pull
		want Level
	}{
		{"pull_up_idles_high", PullUp, High},
		{"pull_down_idles_low", PullDown, Low},
		{"pull_off_idles_low", PullOff, Low},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			drv := NewMockDriver()
			if err := drv.SetupInput(17, tc.pull); err != nil {
				t.Fatalf("SetupInput: %v", err)
			}
			got, err := drv.ReadPin(17)
			if err != nil {
				t.Fatalf("ReadPin: %v", err)
			}
			if got != tc.want {
				t.Errorf("level = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMockDriver_SetLevel(t *testing.T) {
	drv := NewMockDriver()
	_ = drv.SetupInput(17, PullUp)
	drv.SetLevel(17, Low)
	if got, _ := drv.ReadPin(17); got != Low {
		t.Errorf("level after SetLevel(Low) = %v, want Low", got)
	}
}
