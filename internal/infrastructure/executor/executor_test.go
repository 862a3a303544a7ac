package executor

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestRenderOutputTruncation(t *testing.T) {
	lines := make([]string, 24)
	for i := range lines {
		lines[i] = fmt.Sprintf("line-%02d", i)
	}

	rendered := RenderOutput(lines, 10)
	got := strings.Split(rendered, "\n")

	if len(got) != 11 {
		t.Fatalf("rendered %d lines, want 10 originals plus one marker", len(got))
	}
	for i := 0; i < 5; i++ {
		if got[i] != lines[i] {
			t.Fatalf("head line %d = %q, want %q", i, got[i], lines[i])
		}
	}
	if got[5] != "... 14 lines omitted ..." {
		t.Fatalf("marker = %q, want 14 lines omitted", got[5])
	}
	for i := 0; i < 5; i++ {
		if got[6+i] != lines[19+i] {
			t.Fatalf("tail line %d = %q, want %q", i, got[6+i], lines[19+i])
		}
	}
}

func TestRenderOutputUnderBudget(t *testing.T) {
	lines := []string{"a", "b", "c"}
	if got := RenderOutput(lines, 10); got != "a\nb\nc" {
		t.Fatalf("RenderOutput = %q", got)
	}
}

func TestRunCapturesStdoutThenStderrPerCommand(t *testing.T) {
	runner := NewShellRunner("")
	ok, out, err := runner.Run(context.Background(), []string{
		"echo out1; echo err1 >&2",
		"echo out2",
	}, 100)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !ok {
		t.Fatal("all commands succeeded, want ok = true")
	}
	want := "out1\nerr1\nout2"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestRunContinuesAfterFailure(t *testing.T) {
	runner := NewShellRunner("")
	ok, out, err := runner.Run(context.Background(), []string{
		"exit 3",
		"echo still-here",
	}, 100)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ok {
		t.Fatal("a non-zero exit must clear the aggregate success flag")
	}
	if !strings.Contains(out, "still-here") {
		t.Fatalf("later commands must still run, output = %q", out)
	}
}
