// Package executor runs plan commands through the shell, one subprocess per
// command line, and renders their combined output.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/doeshing/pls-go/internal/ports"
)

// ShellRunner implements the CommandRunner port via `sh -c`.
type ShellRunner struct {
	shell string
}

// NewShellRunner builds a runner; shell defaults to /bin/sh.
func NewShellRunner(shell string) *ShellRunner {
	if shell == "" {
		shell = "/bin/sh"
	}
	return &ShellRunner{shell: shell}
}

// Run implements ports.CommandRunner. Commands run sequentially; stdout
// lines come before stderr lines per command. A non-zero exit clears the
// aggregate success flag but later commands still run.
func (r *ShellRunner) Run(ctx context.Context, commands []string, maxOutputLines int) (bool, string, error) {
	var lines []string
	allSucceeded := true

	for _, command := range commands {
		cmd := exec.CommandContext(ctx, r.shell, "-c", command)
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		err := cmd.Run()
		lines = append(lines, splitLines(stdout.String())...)
		lines = append(lines, splitLines(stderr.String())...)
		if err != nil {
			if _, ok := err.(*exec.ExitError); !ok {
				return false, strings.Join(lines, "\n"), err
			}
			allSucceeded = false
		}
	}

	return allSucceeded, RenderOutput(lines, maxOutputLines), nil
}

// RenderOutput joins output lines, truncating over-budget output to the
// first and last halves of the budget around a single omission marker.
func RenderOutput(lines []string, maxOutputLines int) string {
	if maxOutputLines <= 0 || len(lines) <= maxOutputLines {
		return strings.Join(lines, "\n")
	}
	head := maxOutputLines / 2
	tail := maxOutputLines - head
	omitted := len(lines) - maxOutputLines

	out := make([]string, 0, maxOutputLines+1)
	out = append(out, lines[:head]...)
	out = append(out, fmt.Sprintf("... %d lines omitted ...", omitted))
	out = append(out, lines[len(lines)-tail:]...)
	return strings.Join(out, "\n")
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

var _ ports.CommandRunner = (*ShellRunner)(nil)
