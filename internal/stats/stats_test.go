package stats

import (
	"math"
	"testing"

	"github.com/agbru/qsim/internal/qstate"
)

func TestWireProbabilitiesImpulse(t *testing.T) {
	probs := WireProbabilities(qstate.NewImpulse(2))
	for q, p := range probs {
		if p.Zero != 1 || p.One != 0 {
			t.Errorf("wire %d = %+v, want all probability on 0", q, p)
		}
	}
}

func TestWireProbabilitiesUniform(t *testing.T) {
	state := make(qstate.Buffer, 4)
	for i := range state {
		state[i] = complex(0.5, 0)
	}
	probs := WireProbabilities(state)
	for q, p := range probs {
		if math.Abs(p.Zero-0.5) > 1e-12 || math.Abs(p.One-0.5) > 1e-12 {
			t.Errorf("wire %d = %+v, want balanced", q, p)
		}
	}
}

func TestTotalProbability(t *testing.T) {
	state := qstate.Buffer{complex(0.6, 0), complex(0, 0.8)}
	if got := TotalProbability(state); math.Abs(got-1) > 1e-12 {
		t.Errorf("TotalProbability = %v, want 1", got)
	}
}

func TestAmplitudesFlagsNonFinite(t *testing.T) {
	state := qstate.Buffer{complex(math.NaN(), 0), complex(1, 0)}
	amps := Amplitudes(state)
	if amps[0].Finite {
		t.Error("NaN amplitude reported finite")
	}
	if !amps[1].Finite {
		t.Error("finite amplitude reported non-finite")
	}
}

func TestNonZeroKeepsNonFinite(t *testing.T) {
	state := qstate.Buffer{0, complex(math.Inf(1), 0), complex(0.001, 0), complex(1, 0)}
	kept := NonZero(Amplitudes(state), 0.01)
	if len(kept) != 2 {
		t.Fatalf("kept %d amplitudes, want 2", len(kept))
	}
	if kept[0].Index != 1 || kept[1].Index != 3 {
		t.Errorf("kept indices %d,%d, want 1,3", kept[0].Index, kept[1].Index)
	}
}
