package app

import (
	"fmt"
	"io"
	"runtime"
)

// HasVersionFlag reports whether the command line asks for the version,
// checked before flag parsing so -version works alone and in any
// combination.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-version" || arg == "--version" {
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "qsim %s (%s)\n", Version, runtime.Version())
}
