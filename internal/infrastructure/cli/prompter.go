package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/doeshing/pls-go/internal/domain"
	"github.com/doeshing/pls-go/internal/ports"
)

// Prompter reads the confirm-loop choice from stdin. Empty input runs,
// anything unrecognized (or an unreadable stream) quits.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	tty bool
}

// NewPrompter constructs a prompter referencing stdio.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	tty := false
	if in == nil {
		in = os.Stdin
		tty = isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
		tty: tty,
	}
}

// Interactive reports whether stdin is a terminal.
func (p *Prompter) Interactive() bool {
	return p.tty
}

// NextAction implements ports.ActionPrompter.
func (p *Prompter) NextAction() domain.Action {
	fmt.Fprintln(p.out, "[enter] run  [e] edit  [?] explain  [q] quit")

	line, err := p.in.ReadString('\n')
	if err != nil {
		return domain.ActionQuit
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return domain.ActionRun
	case "e":
		return domain.ActionEdit
	case "?":
		return domain.ActionExplain
	default:
		return domain.ActionQuit
	}
}

var _ ports.ActionPrompter = (*Prompter)(nil)
