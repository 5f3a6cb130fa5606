package circuit

import (
	"errors"
	"testing"

	apperrors "github.com/agbru/qsim/internal/errors"
	"github.com/agbru/qsim/internal/gate"
)

func TestValidateReportsColumnAndWire(t *testing.T) {
	c := &Circuit{
		Qubits: 2,
		Columns: []Column{
			{Placements: []Placement{{Kind: KindOperator, Name: "h", Operator: gate.Hadamard(), Target: 0, Span: 1, Controls: gate.None}}},
			{Placements: []Placement{{Kind: KindOperator, Name: "x", Operator: gate.X(), Target: 5, Span: 1, Controls: gate.None}}},
		},
	}
	err := c.Validate()
	var gateErr apperrors.GateError
	if !errors.As(err, &gateErr) {
		t.Fatalf("Validate() = %v, want GateError", err)
	}
	if gateErr.Column != 1 || gateErr.Wire != 5 {
		t.Errorf("GateError at column %d wire %d, want column 1 wire 5", gateErr.Column, gateErr.Wire)
	}
}

func TestValidateOperatorSpanMismatch(t *testing.T) {
	c := &Circuit{
		Qubits: 3,
		Columns: []Column{
			{Placements: []Placement{{Kind: KindOperator, Name: "swap", Operator: gate.Swap(), Target: 0, Span: 1, Controls: gate.None}}},
		},
	}
	if err := c.Validate(); err == nil {
		t.Error("expected error for operator wider than placement span")
	}
}

func TestValidateIncrementControlOverlap(t *testing.T) {
	c := &Circuit{
		Qubits: 4,
		Columns: []Column{
			{Placements: []Placement{{Kind: KindIncrement, Name: "inc", Target: 0, Span: 3, Amount: 1, Controls: gate.Bit(1, true)}}},
		},
	}
	if err := c.Validate(); err == nil {
		t.Error("expected error for control inside the incremented span")
	}

	c.Columns[0].Placements[0].Controls = gate.Bit(3, true)
	if err := c.Validate(); err != nil {
		t.Errorf("disjoint control rejected: %v", err)
	}
}

func TestValidateRejectsOverlap(t *testing.T) {
	c := &Circuit{
		Qubits: 3,
		Columns: []Column{
			{Placements: []Placement{
				{Kind: KindFourier, Name: "qft", Target: 0, Span: 2, Controls: gate.None},
				{Kind: KindOperator, Name: "h", Operator: gate.Hadamard(), Target: 1, Span: 1, Controls: gate.None},
			}},
		},
	}
	if err := c.Validate(); err == nil {
		t.Error("expected error for overlapping placements in one column")
	}
}

func TestValidateRejectsControlOnSiblingTarget(t *testing.T) {
	c := &Circuit{
		Qubits: 2,
		Columns: []Column{
			{Placements: []Placement{
				{Kind: KindOperator, Name: "h", Operator: gate.Hadamard(), Target: 0, Span: 1, Controls: gate.None},
				{Kind: KindOperator, Name: "cx", Operator: gate.X(), Target: 1, Span: 1, Controls: gate.Bit(0, true)},
			}},
		},
	}
	var gateErr apperrors.GateError
	if err := c.Validate(); !errors.As(err, &gateErr) {
		t.Fatalf("Validate() = %v, want GateError for a control on another gate's target", err)
	}
	if gateErr.Wire != 0 {
		t.Errorf("GateError at wire %d, want 0", gateErr.Wire)
	}

	// Two placements sharing a control wire only read it, so they may
	// coexist in one column.
	shared := &Circuit{
		Qubits: 3,
		Columns: []Column{
			{Placements: []Placement{
				{Kind: KindOperator, Name: "cx", Operator: gate.X(), Target: 1, Span: 1, Controls: gate.Bit(0, true)},
				{Kind: KindOperator, Name: "cz", Operator: gate.Z(), Target: 2, Span: 1, Controls: gate.Bit(0, true)},
			}},
		},
	}
	if err := shared.Validate(); err != nil {
		t.Errorf("shared control wire rejected: %v", err)
	}
}

func TestValidateEmptyRegister(t *testing.T) {
	c := &Circuit{Qubits: 0}
	var cfgErr apperrors.ConfigError
	if err := c.Validate(); !errors.As(err, &cfgErr) {
		t.Errorf("Validate() = %v, want ConfigError", err)
	}
}
