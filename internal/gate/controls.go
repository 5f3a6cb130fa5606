package gate

import (
	"fmt"
	"sort"
	"strings"
)

// Controls is a set of per-qubit required classical values: at most one
// constraint per qubit. The zero value carries no constraints and accepts
// every index. Controls are immutable; With returns a derived set.
//
// A Controls value is constructed per gate placement, consumed read-only
// by exactly one control-mask pass, then discarded.
type Controls struct {
	// care has bit q set when qubit q is constrained.
	care uint64
	// want holds, for each constrained qubit, the required bit value.
	want uint64
}

// None is the empty control set. Its mask accepts every index.
var None = Controls{}

// Bit returns a control set with a single constraint: qubit q must have
// the classical value v.
func Bit(q int, v bool) Controls {
	return None.With(q, v)
}

// With returns a copy of c with an added (or replaced) constraint on
// qubit q.
func (c Controls) With(q int, v bool) Controls {
	c.care |= 1 << q
	if v {
		c.want |= 1 << q
	} else {
		c.want &^= 1 << q
	}
	return c
}

// IsUnconditional reports whether the set carries no constraints.
func (c Controls) IsUnconditional() bool { return c.care == 0 }

// Accepts reports whether index i satisfies every constraint.
func (c Controls) Accepts(i int) bool {
	return uint64(i)&c.care == c.want
}

// Qubits returns the constrained qubit positions in ascending order.
func (c Controls) Qubits() []int {
	var qs []int
	for q := 0; q < 64; q++ {
		if c.care&(1<<q) != 0 {
			qs = append(qs, q)
		}
	}
	return qs
}

// MaxQubit returns the highest constrained qubit position, or -1 when
// unconditional.
func (c Controls) MaxQubit() int {
	max := -1
	for _, q := range c.Qubits() {
		max = q
	}
	return max
}

// DisjointFrom reports whether no constrained qubit lies in the half-open
// bit range [lo, hi). This is the documented precondition of the register
// increment kernel.
func (c Controls) DisjointFrom(lo, hi int) bool {
	for _, q := range c.Qubits() {
		if q >= lo && q < hi {
			return false
		}
	}
	return true
}

// String renders the constraints as e.g. "c1=1,c3=0", or "none".
func (c Controls) String() string {
	qs := c.Qubits()
	if len(qs) == 0 {
		return "none"
	}
	sort.Ints(qs)
	parts := make([]string, 0, len(qs))
	for _, q := range qs {
		v := 0
		if c.want&(1<<q) != 0 {
			v = 1
		}
		parts = append(parts, fmt.Sprintf("c%d=%d", q, v))
	}
	return strings.Join(parts, ",")
}
