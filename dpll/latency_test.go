package dpll

import (
	"strings"
	"testing"
	"time"
)

func TestLatencyStatsNoSamples(t *testing.T) {
	ls := &latencyStats{}
	s := ls.String()
	if !strings.Contains(s, "samples=0") {
		t.Fatalf("String() = %q, want it to report samples=0", s)
	}
}

func TestLatencyStatsSamples(t *testing.T) {
	ls := &latencyStats{}
	ls.sample(100 * time.Millisecond)
	ls.sample(300 * time.Millisecond)

	s := ls.String()
	for _, want := range []string{"samples=2", "min=100ms", "max=300ms", "mean=200ms"} {
		if !strings.Contains(s, want) {
			t.Fatalf("String() = %q, want it to contain %q", s, want)
		}
	}
}

func TestCommandStatsLazyPerCommand(t *testing.T) {
	cs := newCommandStats()
	if got := cs.stringFor(CmdDeviceGet); got != "no samples" {
		t.Fatalf("stringFor() on an unsampled command = %q, want \"no samples\"", got)
	}

	cs.sample(CmdDeviceGet, 50*time.Millisecond)
	cs.sample(CmdPinGet, 10*time.Millisecond)

	if got := cs.stringFor(CmdDeviceGet); !strings.Contains(got, "samples=1") {
		t.Fatalf("stringFor(CmdDeviceGet) = %q, want samples=1", got)
	}
	if got := cs.stringFor(CmdPinGet); !strings.Contains(got, "samples=1") {
		t.Fatalf("stringFor(CmdPinGet) = %q, want samples=1", got)
	}
}
