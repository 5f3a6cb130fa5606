package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders an evaluation duration at a precision
// matched to its magnitude: sub-millisecond kernels report microseconds,
// sub-second runs report milliseconds, and anything longer falls back to
// the standard Duration string.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: The formatted duration.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.String()
	}
}
