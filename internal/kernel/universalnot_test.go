package kernel

import (
	"context"
	"testing"

	"github.com/agbru/qsim/internal/gate"
	"github.com/agbru/qsim/internal/qstate"
)

func TestApplyUniversalNotSingleQubit(t *testing.T) {
	state := bufferFromComponents(1, 2, 3, 4)
	mask := mustMask(t, gate.None, len(state))

	dst := make(qstate.Buffer, len(state))
	if err := ApplyUniversalNot(context.Background(), dst, state, 0, mask, testOpts()); err != nil {
		t.Fatalf("ApplyUniversalNot: %v", err)
	}
	// out[0] = conj(state[1]), out[1] = -conj(state[0]), same per pair.
	want := bufferFromComponents(3, -4, -1, 2)
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestApplyUniversalNotTwiceNegatesControlledSubspace(t *testing.T) {
	state := bufferFromComponents(
		1, 2, 3, 4, 5, 6, 7, 8,
		9, 10, 11, 12, 13, 14, 15, 16,
	)
	mask := mustMask(t, gate.Bit(2, true), len(state))

	mid := make(qstate.Buffer, len(state))
	if err := ApplyUniversalNot(context.Background(), mid, state, 0, mask, testOpts()); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	dst := make(qstate.Buffer, len(state))
	if err := ApplyUniversalNot(context.Background(), dst, mid, 0, mask, testOpts()); err != nil {
		t.Fatalf("second pass: %v", err)
	}

	for i := range state {
		want := state[i]
		if mask.Test(i) {
			want = -want
		}
		if dst[i] != want {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want)
		}
	}
}

func TestApplyUniversalNotControlOnTargetBit(t *testing.T) {
	state := bufferFromComponents(1, 2, 3, 4, 5, 6, 7, 8)
	// Controlling the flipped bit breaks the pairing: every controlled
	// index reads an uncontrolled partner, so a second pass reproduces
	// the first instead of negating.
	mask := mustMask(t, gate.Bit(0, true), len(state))

	mid := make(qstate.Buffer, len(state))
	if err := ApplyUniversalNot(context.Background(), mid, state, 0, mask, testOpts()); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	dst := make(qstate.Buffer, len(state))
	if err := ApplyUniversalNot(context.Background(), dst, mid, 0, mask, testOpts()); err != nil {
		t.Fatalf("second pass: %v", err)
	}

	for i := range state {
		if dst[i] != mid[i] {
			t.Errorf("dst[%d] = %v, want the first-pass value %v", i, dst[i], mid[i])
		}
		if dst[i] == -state[i] && state[i] != 0 {
			t.Errorf("dst[%d] negated the input; the pairing should not survive a control on the target bit", i)
		}
	}
}

func TestApplyUniversalNotPassThrough(t *testing.T) {
	state := bufferFromComponents(1, 1, 2, 2, 3, 3, 4, 4)
	mask := mustMask(t, gate.Bit(1, true), len(state))

	dst := make(qstate.Buffer, len(state))
	if err := ApplyUniversalNot(context.Background(), dst, state, 0, mask, testOpts()); err != nil {
		t.Fatalf("ApplyUniversalNot: %v", err)
	}
	for i := range state {
		if !mask.Test(i) && dst[i] != state[i] {
			t.Errorf("uncontrolled dst[%d] = %v, want %v", i, dst[i], state[i])
		}
	}
}
