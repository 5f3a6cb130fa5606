package format

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
)

// FormatAmplitude renders a complex amplitude with fixed width so table
// columns align: "+0.7071 -0.0000i". NaN and Inf components render
// through strconv so non-finite values stay visible.
func FormatAmplitude(amp complex128) string {
	return fmt.Sprintf("%s %si", signedFloat(real(amp)), signedFloat(imag(amp)))
}

func signedFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return fmt.Sprintf("%+.4f", v)
}

// FormatProbability renders a probability as a percentage. Non-finite
// values render as "n/a" so degenerate states stand out.
func FormatProbability(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%6.2f%%", p*100)
}

// FormatBasisState renders an index as a ket label over the given number
// of wires, highest wire first: index 5 over 3 wires is "|101>".
func FormatBasisState(index, wires int) string {
	buf := make([]byte, wires)
	for q := 0; q < wires; q++ {
		if index&(1<<q) != 0 {
			buf[wires-1-q] = '1'
		} else {
			buf[wires-1-q] = '0'
		}
	}
	return "|" + string(buf) + ">"
}

// IsFiniteAmplitude reports whether both components are finite.
func IsFiniteAmplitude(amp complex128) bool {
	return !cmplx.IsNaN(amp) && !cmplx.IsInf(amp)
}
