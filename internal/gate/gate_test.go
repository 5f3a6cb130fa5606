package gate

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestNewOperatorValidation(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]complex128
		wantErr bool
	}{
		{"1x1", [][]complex128{{1}}, false},
		{"2x2", [][]complex128{{1, 0}, {0, 1}}, false},
		{"4x4", [][]complex128{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}, false},
		{"empty", nil, true},
		{"3x3", [][]complex128{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, true},
		{"ragged", [][]complex128{{1, 0}, {0}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOperator(tt.rows)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewOperator() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOperatorWidth(t *testing.T) {
	if w := Identity(1).Width(); w != 1 {
		t.Errorf("Identity(1).Width() = %d, want 1", w)
	}
	if w := Swap().Width(); w != 2 {
		t.Errorf("Swap().Width() = %d, want 2", w)
	}
	if d := Swap().Dim(); d != 4 {
		t.Errorf("Swap().Dim() = %d, want 4", d)
	}
}

func TestZeroOperator(t *testing.T) {
	if !Zero(1).IsZero() {
		t.Error("Zero(1) should report IsZero")
	}
	if Identity(1).IsZero() {
		t.Error("Identity(1) should not report IsZero")
	}
}

// isUnitary checks M * M^dagger == I within tolerance.
func isUnitary(t *testing.T, op Operator) bool {
	t.Helper()
	dim := op.Dim()
	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			var sum complex128
			for k := 0; k < dim; k++ {
				sum += op.At(r, k) * cmplx.Conj(op.At(c, k))
			}
			want := complex128(0)
			if r == c {
				want = 1
			}
			if cmplx.Abs(sum-want) > 1e-12 {
				return false
			}
		}
	}
	return true
}

func TestStandardGatesAreUnitary(t *testing.T) {
	gates := map[string]Operator{
		"H":      Hadamard(),
		"X":      X(),
		"Y":      Y(),
		"Z":      Z(),
		"S":      S(false),
		"Sdg":    S(true),
		"T":      T(false),
		"Tdg":    T(true),
		"RX":     RX(0.7),
		"RY":     RY(1.3),
		"RZ":     RZ(2.1),
		"Phase":  Phase(math.Pi / 3),
		"SWAP":   Swap(),
		"I":      Identity(1),
		"I2":     Identity(2),
	}
	for name, op := range gates {
		if !isUnitary(t, op) {
			t.Errorf("%s is not unitary", name)
		}
	}
}

func TestHadamardSelfInverse(t *testing.T) {
	h := Hadamard()
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			var sum complex128
			for k := 0; k < 2; k++ {
				sum += h.At(r, k) * h.At(k, c)
			}
			want := complex128(0)
			if r == c {
				want = 1
			}
			if cmplx.Abs(sum-want) > 1e-12 {
				t.Fatalf("H*H[%d][%d] = %v, want %v", r, c, sum, want)
			}
		}
	}
}

func TestControlsAccepts(t *testing.T) {
	tests := []struct {
		name  string
		c     Controls
		index int
		want  bool
	}{
		{"none accepts everything", None, 13, true},
		{"bit set required, present", Bit(1, true), 0b10, true},
		{"bit set required, absent", Bit(1, true), 0b01, false},
		{"bit clear required, absent", Bit(3, false), 0b0111, true},
		{"bit clear required, present", Bit(3, false), 0b1000, false},
		{"conjunction holds", Bit(0, true).With(2, false), 0b001, true},
		{"conjunction fails", Bit(0, true).With(2, false), 0b101, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Accepts(tt.index); got != tt.want {
				t.Errorf("Accepts(%b) = %v, want %v", tt.index, got, tt.want)
			}
		})
	}
}

func TestControlsWithReplaces(t *testing.T) {
	c := Bit(2, true).With(2, false)
	if c.Accepts(0b100) {
		t.Error("replaced constraint should require bit 2 clear")
	}
	if !c.Accepts(0) {
		t.Error("replaced constraint should accept index 0")
	}
	if len(c.Qubits()) != 1 {
		t.Errorf("expected a single constraint, got %v", c.Qubits())
	}
}

func TestControlsDisjointFrom(t *testing.T) {
	c := Bit(4, true)
	if !c.DisjointFrom(0, 4) {
		t.Error("qubit 4 lies outside [0,4)")
	}
	if c.DisjointFrom(2, 5) {
		t.Error("qubit 4 lies inside [2,5)")
	}
}

func TestControlsString(t *testing.T) {
	if s := None.String(); s != "none" {
		t.Errorf("None.String() = %q", s)
	}
	if s := Bit(3, false).With(1, true).String(); s != "c1=1,c3=0" {
		t.Errorf("String() = %q, want %q", s, "c1=1,c3=0")
	}
}
