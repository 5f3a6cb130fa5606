// Package ui holds the terminal color themes shared by the amplitude
// tables, the REPL prompt and the progress output. InitTheme selects the
// palette once at startup, honoring the NO_COLOR convention, so the
// presentation layers never probe the terminal themselves.
package ui
