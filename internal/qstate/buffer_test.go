package qstate

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestNewImpulse(t *testing.T) {
	b := NewImpulse(3)
	if len(b) != 8 {
		t.Fatalf("expected 8 amplitudes, got %d", len(b))
	}
	if b[0] != 1 {
		t.Errorf("expected amplitude 1 at index 0, got %v", b[0])
	}
	for i := 1; i < len(b); i++ {
		if b[i] != 0 {
			t.Errorf("expected zero amplitude at index %d, got %v", i, b[i])
		}
	}
}

func TestQubits(t *testing.T) {
	tests := []struct {
		qubits int
	}{
		{0}, {1}, {2}, {5}, {10},
	}
	for _, tt := range tests {
		b := NewBuffer(tt.qubits)
		if got := b.Qubits(); got != tt.qubits {
			t.Errorf("NewBuffer(%d).Qubits() = %d", tt.qubits, got)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewImpulse(2)
	c := b.Clone()
	c[0] = 7
	if b[0] != 1 {
		t.Error("mutating the clone leaked into the original")
	}
}

func TestComponents(t *testing.T) {
	b := Buffer{2 + 3i, -1 - 4i}
	got := b.Components()
	want := []float64{2, 3, -1, -4}
	if len(got) != len(want) {
		t.Fatalf("expected %d components, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("component %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name   string
		b      Buffer
		finite bool
	}{
		{"empty", Buffer{}, true},
		{"normal", Buffer{1, 1i, -0.5 + 0.5i}, true},
		{"nan real", Buffer{complex(math.NaN(), 0)}, false},
		{"nan imag", Buffer{complex(0, math.NaN())}, false},
		{"inf", Buffer{cmplx.Inf()}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.IsFinite(); got != tt.finite {
				t.Errorf("IsFinite() = %v, want %v", got, tt.finite)
			}
		})
	}
}

func TestNorm(t *testing.T) {
	b := Buffer{complex(1/math.Sqrt2, 0), complex(0, 1/math.Sqrt2)}
	if norm := b.Norm(); math.Abs(norm-1) > 1e-12 {
		t.Errorf("expected norm 1, got %v", norm)
	}
}

func TestCheckSize(t *testing.T) {
	for _, n := range []int{1, 2, 4, 1024} {
		if err := CheckSize(n); err != nil {
			t.Errorf("CheckSize(%d) = %v, want nil", n, err)
		}
	}
	for _, n := range []int{0, -1, 3, 12, 1000} {
		if err := CheckSize(n); err == nil {
			t.Errorf("CheckSize(%d) = nil, want error", n)
		}
	}
}

func TestMask(t *testing.T) {
	t.Run("new mask is cleared", func(t *testing.T) {
		m := NewMask(8)
		if m.Count() != 0 {
			t.Errorf("expected 0 set cells, got %d", m.Count())
		}
	})

	t.Run("all-set mask accepts every index", func(t *testing.T) {
		m := AllSet(16)
		for i := 0; i < 16; i++ {
			if !m.Test(i) {
				t.Errorf("cell %d should be set", i)
			}
		}
		if m.Count() != 16 {
			t.Errorf("expected 16 set cells, got %d", m.Count())
		}
	})

	t.Run("set and test", func(t *testing.T) {
		m := NewMask(4)
		m.Set(2)
		if !m.Test(2) || m.Test(1) {
			t.Error("Set(2) should set exactly cell 2")
		}
	})
}

func TestBufferPoolRoundTrip(t *testing.T) {
	b := AcquireBuffer(64)
	if len(b) != 64 {
		t.Fatalf("expected 64 amplitudes, got %d", len(b))
	}
	b[3] = 42
	ReleaseBuffer(b)

	// A reacquired buffer of the same class must come back zeroed.
	c := AcquireBuffer(64)
	for i, a := range c {
		if a != 0 {
			t.Fatalf("reacquired buffer not cleared at index %d: %v", i, a)
		}
	}
	ReleaseBuffer(c)
}

func TestBufferPoolNonPowerOfTwo(t *testing.T) {
	// Non-power-of-two requests bypass the pools entirely.
	b := AcquireBuffer(3)
	if len(b) != 3 {
		t.Fatalf("unexpected length %d", len(b))
	}
	ReleaseBuffer(b)
	ReleaseBuffer(nil)
}
