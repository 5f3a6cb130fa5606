package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMap_AllBindingsDefined(t *testing.T) {
	km := DefaultKeyMap()

	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"Next", km.Next},
		{"Prev", km.Prev},
		{"First", km.First},
		{"Last", km.Last},
		{"ToggleAmps", km.ToggleAmps},
	}

	for _, b := range bindings {
		t.Run(b.name, func(t *testing.T) {
			if !b.binding.Enabled() {
				t.Errorf("expected %s binding to be enabled", b.name)
			}
			keys := b.binding.Keys()
			if len(keys) == 0 {
				t.Errorf("expected %s binding to have at least one key", b.name)
			}
		})
	}
}

func TestDefaultKeyMap_QuitKeys(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	hasQ := false
	hasCtrlC := false
	for _, k := range keys {
		switch k {
		case "q":
			hasQ = true
		case "ctrl+c":
			hasCtrlC = true
		}
	}

	if !hasQ {
		t.Error("expected Quit binding to include 'q'")
	}
	if !hasCtrlC {
		t.Error("expected Quit binding to include 'ctrl+c'")
	}
}

func TestShortHelpIncludesNavigation(t *testing.T) {
	km := DefaultKeyMap()

	help := km.ShortHelp()
	if len(help) == 0 {
		t.Fatal("expected a non-empty short help")
	}

	hasNext := false
	for _, b := range help {
		if b.Help().Desc == km.Next.Help().Desc {
			hasNext = true
		}
	}
	if !hasNext {
		t.Error("expected short help to include the Next binding")
	}
}
