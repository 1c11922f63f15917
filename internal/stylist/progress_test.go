package stylist

import (
	"math"
	"testing"
)

func TestSimulator_ProgressAfterNTicks(t *testing.T) {
	t.Parallel()

	const step = 14.3
	for n := 0; n <= 10; n++ {
		sim := NewSimulator(step, nil)
		var p Progress
		if n == 0 {
			p = sim.Current()
		}
		for i := 0; i < n; i++ {
			p = sim.Step()
		}

		ticks := min(n, 7) // stepping stops once done
		want := math.Min(100, float64(ticks)*step)
		if math.Abs(p.Percent-want) > 1e-9 {
			t.Errorf("n=%d: percent = %v, want %v", n, p.Percent, want)
		}
		idx := min(int(math.Floor(float64(ticks)*step/step+1e-9)), len(Messages)-1)
		if p.Message != Messages[idx] {
			t.Errorf("n=%d: message = %q, want %q", n, p.Message, Messages[idx])
		}
		if p.Done != (n >= 7) {
			t.Errorf("n=%d: done = %v", n, p.Done)
		}
	}
}

func TestSimulator_CustomMessagesClamp(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(10, []string{"a", "b"})
	var p Progress
	for i := 0; i < 5; i++ {
		p = sim.Step()
	}
	if p.Message != "b" {
		t.Errorf("expected clamp to last message, got %q", p.Message)
	}
	if p.Percent != 50 {
		t.Errorf("expected 50%%, got %v", p.Percent)
	}

	sim.Reset()
	if got := sim.Current(); got.Tick != 0 || got.Message != "a" {
		t.Errorf("reset: got %+v", got)
	}
}

func TestPhaseString(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"home", "upload", "preferences", "analyzing", "results"} {
		p, ok := ParsePhase(name)
		if !ok || p.String() != name {
			t.Errorf("round trip failed for %q", name)
		}
	}
	if _, ok := ParsePhase("checkout"); ok {
		t.Error("unexpected phase parsed")
	}
	if Phase(42).String() != "unknown" {
		t.Error("out-of-range phase should be unknown")
	}
}
