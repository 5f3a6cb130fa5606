// Package circuit defines the circuit description consumed by the
// evaluation engine: an ordered sequence of columns, each holding gate
// placements over the wires of an n-qubit register. Columns execute
// strictly in order; placements within a column act on disjoint wires.
package circuit

import (
	"fmt"

	apperrors "github.com/agbru/qsim/internal/errors"
	"github.com/agbru/qsim/internal/gate"
)

// Kind selects which kernel a placement drives.
type Kind int

const (
	// KindOperator applies a linear operator at the target bit-field.
	KindOperator Kind = iota
	// KindUniversalNot applies the anti-unitary flip-and-conjugate
	// transform on the target wire.
	KindUniversalNot
	// KindIncrement adds Amount to the register [Target, Target+Span).
	KindIncrement
	// KindFourier applies the full discrete Fourier transform to the
	// register [Target, Target+Span); Invert selects the inverse.
	KindFourier
)

// String returns the kind's mnemonic.
func (k Kind) String() string {
	switch k {
	case KindOperator:
		return "operator"
	case KindUniversalNot:
		return "unot"
	case KindIncrement:
		return "inc"
	case KindFourier:
		return "qft"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Placement is one gate on one column: a kernel selector, its wire
// addressing and its per-gate controls.
type Placement struct {
	Kind     Kind
	Name     string // display mnemonic, e.g. "h", "cx", "qft"
	Operator gate.Operator
	Target   int
	Span     int // bit-field width; 1 for single-wire placements
	Controls gate.Controls
	Amount   int64 // KindIncrement only
	Invert   bool  // KindFourier only
}

// Column is an unordered set of placements executed as one pipeline step.
type Column struct {
	Placements []Placement
}

// Circuit is the full description handed to the engine.
type Circuit struct {
	Qubits  int
	Columns []Column
}

// Depth returns the number of columns.
func (c *Circuit) Depth() int { return len(c.Columns) }

// Validate checks every placement against the register size: target
// fields inside [0, Qubits), operator dimensions matching the field
// width, controls disjoint from incremented spans, and no two placements
// in one column claiming the same wire. Errors carry the offending
// column and wire so a failed evaluation can be reported before any
// kernel pass runs.
func (c *Circuit) Validate() error {
	if c.Qubits < 1 {
		return apperrors.NewConfigError("circuit needs at least one qubit, got %d", c.Qubits)
	}
	for col := range c.Columns {
		var claimed uint64
		for _, p := range c.Columns[col].Placements {
			if err := c.validatePlacement(col, p); err != nil {
				return err
			}
			field := fieldBits(p.Target, p.Span)
			if claimed&field != 0 {
				return apperrors.NewGateError(col, p.Target, "gate %q overlaps another placement in the same column", p.Name)
			}
			claimed |= field
		}
		// Controls read their wire mid-column, so a control on a wire
		// another placement writes would make the column order-dependent.
		for _, p := range c.Columns[col].Placements {
			others := claimed &^ fieldBits(p.Target, p.Span)
			for _, q := range p.Controls.Qubits() {
				if others&(uint64(1)<<q) != 0 {
					return apperrors.NewGateError(col, q,
						"gate %q control on wire %d collides with a gate target in the same column", p.Name, q)
				}
			}
		}
	}
	return nil
}

func (c *Circuit) validatePlacement(col int, p Placement) error {
	if p.Span < 1 {
		return apperrors.NewGateError(col, p.Target, "gate %q has empty span", p.Name)
	}
	if p.Target < 0 || p.Target+p.Span > c.Qubits {
		return apperrors.NewGateError(col, p.Target,
			"gate %q targets bits [%d,%d) outside the %d-qubit register",
			p.Name, p.Target, p.Target+p.Span, c.Qubits)
	}
	switch p.Kind {
	case KindOperator:
		if p.Operator.Width() != p.Span {
			return apperrors.NewGateError(col, p.Target,
				"gate %q operator spans %d bits but the placement spans %d",
				p.Name, p.Operator.Width(), p.Span)
		}
	case KindUniversalNot:
		if p.Span != 1 {
			return apperrors.NewGateError(col, p.Target, "gate %q acts on exactly one wire", p.Name)
		}
	case KindIncrement, KindFourier:
		if !p.Controls.DisjointFrom(p.Target, p.Target+p.Span) {
			return apperrors.NewGateError(col, p.Target,
				"gate %q controls overlap its register span [%d,%d)",
				p.Name, p.Target, p.Target+p.Span)
		}
	default:
		return apperrors.NewGateError(col, p.Target, "unknown gate kind %d", int(p.Kind))
	}
	return nil
}

// fieldBits returns the wire-occupancy bitmask of a placement.
func fieldBits(target, span int) uint64 {
	return ((uint64(1) << span) - 1) << target
}
