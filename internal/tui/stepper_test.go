package tui

import (
	"context"
	"math"
	"math/cmplx"
	"testing"

	"github.com/agbru/qsim/internal/circuit"
	"github.com/agbru/qsim/internal/engine"
	"github.com/agbru/qsim/internal/qstate"
)

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return engine.New(engine.DefaultLimits())
}

func parseCircuit(t *testing.T, notation string, qubits int) *circuit.Circuit {
	t.Helper()
	circ, err := circuit.Parse(notation, qubits)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", notation, err)
	}
	return circ
}

func assertAmplitudes(t *testing.T, got qstate.Buffer, want []complex128) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d amplitudes, got %d", len(want), len(got))
	}
	for i := range want {
		if cmplx.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("amplitude %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestComputeStatesPerColumn(t *testing.T) {
	circ := parseCircuit(t, "h0 / cx0.1", 2)

	states, err := computeStates(context.Background(), testEngine(t), circ)
	if err != nil {
		t.Fatalf("computeStates returned error: %v", err)
	}
	if len(states) != 3 {
		t.Fatalf("expected 3 states for a 2-column circuit, got %d", len(states))
	}

	h := complex(1/math.Sqrt2, 0)
	assertAmplitudes(t, states[0], []complex128{1, 0, 0, 0})
	assertAmplitudes(t, states[1], []complex128{h, h, 0, 0})
	assertAmplitudes(t, states[2], []complex128{h, 0, 0, h})
}

func TestComputeStatesEmptyCircuit(t *testing.T) {
	circ := &circuit.Circuit{Qubits: 1}

	states, err := computeStates(context.Background(), testEngine(t), circ)
	if err != nil {
		t.Fatalf("computeStates returned error: %v", err)
	}
	if len(states) != 1 {
		t.Fatalf("expected only the initial state, got %d states", len(states))
	}
	assertAmplitudes(t, states[0], []complex128{1, 0})
}

func TestComputeStatesOversizedRegister(t *testing.T) {
	circ := parseCircuit(t, "h0", 4)
	eng := engine.New(engine.Limits{MaxQubits: 2, MaxAmplitudes: 1 << 2})

	if _, err := computeStates(context.Background(), eng, circ); err == nil {
		t.Fatal("expected an error for a register beyond the engine limits")
	}
}

func TestComputeStatesCanceledContext(t *testing.T) {
	circ := parseCircuit(t, "h0 / x0 / h0", 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := computeStates(ctx, testEngine(t), circ); err == nil {
		t.Fatal("expected an error from a canceled context")
	}
}
