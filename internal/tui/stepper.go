package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/qsim/internal/circuit"
	"github.com/agbru/qsim/internal/engine"
	"github.com/agbru/qsim/internal/qstate"
)

// statesReadyMsg carries the per-column register states, computed once
// when the inspector starts. states[0] is the initial |0...0> register,
// states[k] the register after column k.
type statesReadyMsg struct {
	states []qstate.Buffer
}

// stateErrorMsg reports a failed evaluation during precomputation.
type stateErrorMsg struct {
	err error
}

// contextDoneMsg signals that the outer context was canceled.
type contextDoneMsg struct{}

// computeStates evaluates the circuit one column at a time and returns
// the register state before and after every column.
func computeStates(ctx context.Context, eng *engine.Engine, circ *circuit.Circuit) ([]qstate.Buffer, error) {
	if err := eng.CheckLimits(circ.Qubits); err != nil {
		return nil, err
	}

	states := make([]qstate.Buffer, 0, circ.Depth()+1)
	current := qstate.NewImpulse(circ.Qubits)
	states = append(states, current)

	for _, col := range circ.Columns {
		step := &circuit.Circuit{
			Qubits:  circ.Qubits,
			Columns: []circuit.Column{col},
		}
		next, err := eng.Evaluate(ctx, step, current, nil)
		if err != nil {
			return nil, err
		}
		states = append(states, next)
		current = next
	}
	return states, nil
}

// computeStatesCmd runs computeStates off the update loop.
func computeStatesCmd(ctx context.Context, eng *engine.Engine, circ *circuit.Circuit) tea.Cmd {
	return func() tea.Msg {
		states, err := computeStates(ctx, eng, circ)
		if err != nil {
			return stateErrorMsg{err: err}
		}
		return statesReadyMsg{states: states}
	}
}

// watchContextCmd turns context cancellation into a message so the
// program can shut down cleanly on SIGINT.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return contextDoneMsg{}
	}
}
