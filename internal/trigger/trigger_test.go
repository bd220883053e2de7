package trigger

import (
	"sync"
	"testing"

	"github.com/cjeanneret/WebcamShot/internal/hw/gpio"
)

func TestButton_FallingEdgeRequestsBurst(t *testing.T) {
	drv := gpio.NewMockDriver()
	b, err := NewButton(drv, 17)
	if err != nil {
		t.Fatalf("NewButton: %v", err)
	}

	if got := b.Poll(); got != None {
		t.Fatalf("idle poll = %v, want none", got)
	}

	drv.SetLevel(17, gpio.Low)
	if got := b.Poll(); got != Burst {
		t.Errorf("poll on press = %v, want burst", got)
	}
	// Held down: no repeat
	if got := b.Poll(); got != None {
		t.Errorf("poll while held = %v, want none", got)
	}

	drv.SetLevel(17, gpio.High)
	if got := b.Poll(); got != None {
		t.Errorf("poll on release = %v, want none", got)
	}
	drv.SetLevel(17, gpio.Low)
	if got := b.Poll(); got != Burst {
		t.Errorf("poll on second press = %v, want burst", got)
	}
}

func TestButton_ImplementsSource(t *testing.T) {
	b, _ := NewButton(gpio.NewMockDriver(), 4)
	var _ Source = b // compile-time check
	var _ Source = NewRequest()
}

func TestRequest_SubmitAndPoll(t *testing.T) {
	r := NewRequest()
	if got := r.Poll(); got != None {
		t.Fatalf("empty poll = %v, want none", got)
	}
	if !r.Submit(Quit) {
		t.Fatal("first Submit should succeed")
	}
	if r.Submit(Burst) {
		t.Error("Submit with a pending request should fail")
	}
	if got := r.Poll(); got != Quit {
		t.Errorf("poll = %v, want quit", got)
	}
	if got := r.Poll(); got != None {
		t.Errorf("poll after drain = %v, want none", got)
	}
}

func TestRequest_SubmitNoneRejected(t *testing.T) {
	r := NewRequest()
	if r.Submit(None) {
		t.Error("Submit(None) should be rejected")
	}
}

func TestRequest_ConcurrentSubmitSingleWinner(t *testing.T) {
	r := NewRequest()
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.Submit(Burst) {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if accepted != 1 {
		t.Errorf("accepted = %d, want 1", accepted)
	}
}

func TestAction_String(t *testing.T) {
	cases := map[Action]string{None: "none", Burst: "burst", Quit: "quit", Action(9): "action(9)"}
	for a, want := range cases {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, want %q", int(a), got, want)
		}
	}
}
