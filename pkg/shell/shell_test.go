package shell

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestExecRunner_Run(t *testing.T) {
	runner := NewRunner()

	out, err := runner.Run(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out != "hello" {
		t.Errorf("Run() output = %q, want %q", out, "hello")
	}
}

func TestExecRunner_TrimsOutput(t *testing.T) {
	runner := NewRunner()

	out, err := runner.Run(context.Background(), "sh", "-c", "printf '  spaced  \n\n'")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out != "spaced" {
		t.Errorf("Run() output = %q, want %q", out, "spaced")
	}
}

func TestExecRunner_FailureIncludesStderr(t *testing.T) {
	runner := NewRunner()

	_, err := runner.Run(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("Run() expected error for failing command")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("Run() error = %v, want captured stderr folded in", err)
	}
}

func TestExecRunner_MissingCommand(t *testing.T) {
	runner := NewRunner()

	if _, err := runner.Run(context.Background(), "n8nup-no-such-binary"); err == nil {
		t.Fatal("Run() expected error for missing binary")
	}
}

func TestExecRunner_NoCommand(t *testing.T) {
	runner := NewRunner()

	if _, err := runner.Run(context.Background()); err == nil {
		t.Fatal("Run() expected error for empty argv")
	}
}

func TestExecRunner_ContextCancellation(t *testing.T) {
	runner := NewRunner()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := runner.Run(ctx, "sleep", "5"); err == nil {
		t.Fatal("Run() expected error after context timeout")
	}
}
