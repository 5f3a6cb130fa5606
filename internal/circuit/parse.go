package circuit

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/agbru/qsim/internal/errors"
	"github.com/agbru/qsim/internal/gate"
)

// The compact gate notation: columns separated by "/" (or newlines),
// whitespace-separated tokens inside a column.
//
//	h0 x1 / cx0.1 / qft0-2 / inc0-2:+3
//
// Single-wire tokens are a mnemonic followed by the target wire; rotation
// mnemonics take an angle in parentheses (plain float or a pi
// expression). A token with dotted wires is a controlled gate: every wire
// but the last is a control, "!" before a control requires the wire to be
// zero, and the leading "c"s of the mnemonic must match the control
// count. Register tokens (qft, iqft, inc, swap) address an inclusive wire
// range "lo-hi"; inc takes a ":+n"/":-n" amount suffix.
var (
	wiredTokenRegex    = regexp.MustCompile(`^([a-z]+)(?:\(([^)]+)\))?((?:!?\d+\.)*\d+)$`)
	registerTokenRegex = regexp.MustCompile(`^([a-z]+)(\d+)-(\d+)(?::([+-]\d+))?$`)
	piExprRegex        = regexp.MustCompile(`^(-)?(\d+(?:\.\d+)?\*)?pi(?:/(\d+(?:\.\d+)?))?$`)
)

// Parse builds a circuit over the given register size from its textual
// notation. Wire addressing is validated here so the caller gets a
// column/wire-scoped error before the engine sees the circuit.
func Parse(text string, qubits int) (*Circuit, error) {
	c := &Circuit{Qubits: qubits}
	text = strings.ReplaceAll(text, "\n", "/")
	for _, colText := range splitColumns(text) {
		fields := strings.Fields(colText)
		if len(fields) == 0 {
			continue
		}
		col := len(c.Columns)
		var column Column
		for _, token := range fields {
			p, err := parseToken(col, token)
			if err != nil {
				return nil, err
			}
			column.Placements = append(column.Placements, p)
		}
		c.Columns = append(c.Columns, column)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// splitColumns splits the notation into column chunks on "/" separators.
// A "/" inside parentheses is part of an angle expression ("rz(pi/2)0"),
// not a column break.
func splitColumns(text string) []string {
	var cols []string
	depth, start := 0, 0
	for i, r := range text {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case '/':
			if depth == 0 {
				cols = append(cols, text[start:i])
				start = i + 1
			}
		}
	}
	return append(cols, text[start:])
}

func parseToken(col int, token string) (Placement, error) {
	if m := registerTokenRegex.FindStringSubmatch(token); m != nil {
		return parseRegisterToken(col, token, m)
	}
	if m := wiredTokenRegex.FindStringSubmatch(token); m != nil {
		return parseWiredToken(col, token, m)
	}
	return Placement{}, apperrors.NewConfigError("column %d: cannot parse gate token %q", col, token)
}

func parseRegisterToken(col int, token string, m []string) (Placement, error) {
	name := m[1]
	lo, _ := strconv.Atoi(m[2])
	hi, _ := strconv.Atoi(m[3])
	if hi < lo {
		return Placement{}, apperrors.NewGateError(col, lo, "register %q runs backwards", token)
	}
	p := Placement{Name: name, Target: lo, Span: hi - lo + 1, Controls: gate.None}
	switch name {
	case "inc":
		if m[4] == "" {
			return Placement{}, apperrors.NewGateError(col, lo, "increment %q needs an amount suffix like :+1", token)
		}
		amount, err := strconv.ParseInt(m[4], 10, 64)
		if err != nil {
			return Placement{}, apperrors.NewGateError(col, lo, "increment amount %q: %v", m[4], err)
		}
		p.Kind = KindIncrement
		p.Amount = amount
	case "qft":
		p.Kind = KindFourier
	case "iqft":
		p.Kind = KindFourier
		p.Invert = true
	case "swap":
		if p.Span != 2 {
			return Placement{}, apperrors.NewGateError(col, lo, "swap exchanges exactly two adjacent wires")
		}
		p.Kind = KindOperator
		p.Operator = gate.Swap()
	default:
		return Placement{}, apperrors.NewGateError(col, lo, "unknown register gate %q", name)
	}
	if name != "inc" && m[4] != "" {
		return Placement{}, apperrors.NewGateError(col, lo, "gate %q takes no amount suffix", name)
	}
	return p, nil
}

func parseWiredToken(col int, token string, m []string) (Placement, error) {
	name, angleText, wireText := m[1], m[2], m[3]

	wires := strings.Split(wireText, ".")
	controls := gate.None
	for _, w := range wires[:len(wires)-1] {
		required := true
		if strings.HasPrefix(w, "!") {
			required = false
			w = w[1:]
		}
		q, _ := strconv.Atoi(w)
		controls = controls.With(q, required)
	}
	target, _ := strconv.Atoi(wires[len(wires)-1])

	base := name
	ctrlCount := 0
	for strings.HasPrefix(base, "c") && !isBaseGate(base) {
		base = base[1:]
		ctrlCount++
	}
	if !isBaseGate(base) {
		return Placement{}, apperrors.NewGateError(col, target, "unknown gate %q", name)
	}
	if ctrlCount != len(wires)-1 {
		return Placement{}, apperrors.NewGateError(col, target,
			"gate %q declares %d controls but token lists %d wires", name, ctrlCount, len(wires))
	}

	p := Placement{Name: name, Target: target, Span: 1, Controls: controls}
	if base == "unot" {
		p.Kind = KindUniversalNot
		return p, nil
	}

	op, err := baseOperator(base, angleText)
	if err != nil {
		return Placement{}, apperrors.NewGateError(col, target, "gate %q: %v", name, err)
	}
	p.Kind = KindOperator
	p.Operator = op
	return p, nil
}

// isBaseGate reports whether name is a gate mnemonic on its own; control
// prefixes are stripped one "c" at a time until a base mnemonic remains.
func isBaseGate(name string) bool {
	switch name {
	case "h", "x", "y", "z", "s", "sdg", "t", "tdg", "p", "rx", "ry", "rz", "unot":
		return true
	}
	return false
}

// baseOperator maps a mnemonic (plus optional angle text) to its matrix.
func baseOperator(base, angleText string) (gate.Operator, error) {
	needsAngle := base == "p" || base == "rx" || base == "ry" || base == "rz"
	if needsAngle && angleText == "" {
		return gate.Operator{}, fmt.Errorf("missing angle")
	}
	if !needsAngle && angleText != "" {
		return gate.Operator{}, fmt.Errorf("takes no angle")
	}
	switch base {
	case "h":
		return gate.Hadamard(), nil
	case "x":
		return gate.X(), nil
	case "y":
		return gate.Y(), nil
	case "z":
		return gate.Z(), nil
	case "s":
		return gate.S(false), nil
	case "sdg":
		return gate.S(true), nil
	case "t":
		return gate.T(false), nil
	case "tdg":
		return gate.T(true), nil
	}

	theta, err := parseAngle(angleText)
	if err != nil {
		return gate.Operator{}, err
	}
	switch base {
	case "p":
		return gate.Phase(theta), nil
	case "rx":
		return gate.RX(theta), nil
	case "ry":
		return gate.RY(theta), nil
	case "rz":
		return gate.RZ(theta), nil
	}
	return gate.Operator{}, fmt.Errorf("unknown mnemonic %q", base)
}

// parseAngle accepts a plain float or a pi expression: "pi", "-pi",
// "pi/2", "3*pi", "0.5*pi/3".
func parseAngle(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		return v, nil
	}
	m := piExprRegex.FindStringSubmatch(text)
	if m == nil {
		return 0, fmt.Errorf("cannot parse angle %q", text)
	}
	v := math.Pi
	if m[2] != "" {
		factor, err := strconv.ParseFloat(strings.TrimSuffix(m[2], "*"), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse angle %q", text)
		}
		v *= factor
	}
	if m[3] != "" {
		div, err := strconv.ParseFloat(m[3], 64)
		if err != nil || div == 0 {
			return 0, fmt.Errorf("cannot parse angle %q", text)
		}
		v /= div
	}
	if m[1] == "-" {
		v = -v
	}
	return v, nil
}
