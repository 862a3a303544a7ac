package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/doeshing/pls-go/internal/domain"
	"github.com/doeshing/pls-go/internal/ports"
)

// Renderer implements the Presenter port in a minimal, ASCII-only style.
type Renderer struct {
	out io.Writer
}

// NewRenderer builds a renderer; out defaults to stdout.
func NewRenderer(out io.Writer) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	return &Renderer{out: out}
}

// ShowPlan prints the commands, numbered when there is more than one, plus
// any warnings.
func (r *Renderer) ShowPlan(plan domain.Plan, risk domain.RiskLevel) {
	fmt.Fprintln(r.out)
	for i, command := range plan.Commands {
		if len(plan.Commands) > 1 {
			fmt.Fprintf(r.out, "  %d. %s\n", i+1, command)
		} else {
			fmt.Fprintf(r.out, "  %s\n", command)
		}
	}
	if risk == domain.RiskDangerous {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, "  warning: this command may be destructive")
	}
	for _, warning := range plan.Warnings {
		fmt.Fprintf(r.out, "  warning: %s\n", warning)
	}
}

// ShowBlocked prints the refused commands and the refusal message.
func (r *Renderer) ShowBlocked(commands []string) {
	fmt.Fprintln(r.out)
	for _, command := range commands {
		fmt.Fprintf(r.out, "  %s\n", command)
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "  refused: command blocked for safety")
}

// ShowExplanation prints the explanation and each pipeline segment on its
// own line.
func (r *Renderer) ShowExplanation(plan domain.Plan) {
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "explanation: %s\n", plan.Explanation)
	fmt.Fprintln(r.out)
	for _, command := range plan.Commands {
		for _, part := range strings.Split(command, "|") {
			fmt.Fprintf(r.out, "  %s\n", strings.TrimSpace(part))
		}
	}
	fmt.Fprintln(r.out)
}

// ShowOutput prints the (already truncated) execution output.
func (r *Renderer) ShowOutput(output string) {
	if output == "" {
		return
	}
	fmt.Fprintln(r.out, output)
}

// ShowNoPlan reports that the model declined the task.
func (r *Renderer) ShowNoPlan(plan domain.Plan) {
	fmt.Fprintln(r.out, "could not generate a plan for this task.")
	if plan.Explanation != "" {
		fmt.Fprintf(r.out, "  %s\n", plan.Explanation)
	}
}

// ShowCancelled reports a cancelled query.
func (r *Renderer) ShowCancelled() {
	fmt.Fprintln(r.out, "cancelled.")
}

var _ ports.Presenter = (*Renderer)(nil)
