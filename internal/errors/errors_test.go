// Package apperrors provides tests for application error types.
package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "invalid flag value"},
			expected: "invalid flag value",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("invalid value %d for flag %s", 42, "--qubits"),
			expected: "invalid value 42 for flag --qubits",
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestGateError(t *testing.T) {
	t.Parallel()

	err := NewGateError(3, 1, "operator dimension %d does not match target width %d", 4, 1)
	expected := "column 3, wire 1: operator dimension 4 does not match target width 1"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}

	var gateErr GateError
	if !errors.As(err, &gateErr) {
		t.Fatal("expected error to be GateError type")
	}
	if gateErr.Column != 3 || gateErr.Wire != 1 {
		t.Errorf("expected column 3 wire 1, got column %d wire %d", gateErr.Column, gateErr.Wire)
	}
	if gateErr.Unwrap() == nil {
		t.Error("expected GateError to carry a cause")
	}
}

func TestEvaluationError(t *testing.T) {
	t.Parallel()

	cause := errors.New("target bit out of range")
	err := EvaluationError{Cause: cause}

	if err.Error() != cause.Error() {
		t.Errorf("expected %q, got %q", cause.Error(), err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if err.Unwrap() != cause {
		t.Error("expected Unwrap to return the cause")
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()

	err := TimeoutError{Operation: "evaluate", Limit: 5 * time.Minute}
	expected := `operation "evaluate" timed out after 5m0s`
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestResourceError(t *testing.T) {
	t.Parallel()

	err := ResourceError{Qubits: 30, Requested: 1 << 30, Limit: 1 << 26}
	expected := "resource error: 30 qubits require 1073741824 amplitudes, limit is 67108864"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	t.Run("wraps non-nil error", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("boom")
		err := WrapError(cause, "column %d", 2)
		if err == nil {
			t.Fatal("expected wrapped error, got nil")
		}
		if !errors.Is(err, cause) {
			t.Error("expected wrapped error to match cause")
		}
		if err.Error() != "column 2: boom" {
			t.Errorf("unexpected message: %q", err.Error())
		}
	})

	t.Run("returns nil for nil error", func(t *testing.T) {
		t.Parallel()
		if err := WrapError(nil, "context"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"canceled", context.Canceled, true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"wrapped canceled", fmt.Errorf("evaluate: %w", context.Canceled), true},
		{"other error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.expected {
				t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, ExitSuccess},
		{"deadline", context.DeadlineExceeded, ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"timeout type", TimeoutError{Operation: "evaluate", Limit: time.Second}, ExitErrorTimeout},
		{"resource", ResourceError{Qubits: 40, Requested: 1 << 40, Limit: 1 << 26}, ExitErrorResource},
		{"config", NewConfigError("bad flag"), ExitErrorConfig},
		{"gate", NewGateError(0, 2, "span exceeds register"), ExitErrorConfig},
		{"wrapped gate", WrapError(NewGateError(1, 0, "bad"), "validate"), ExitErrorConfig},
		{"generic", errors.New("boom"), ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.expected)
			}
		})
	}
}
