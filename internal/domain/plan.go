package domain

// Plan is the structured output of the plan generator: candidate shell
// commands plus explanatory metadata. A plan is immutable once parsed; an
// edit produces a derived single-command replacement via WithCommand.
type Plan struct {
	Commands          []string `json:"commands"`
	Explanation       string   `json:"explanation"`
	Warnings          []string `json:"warnings"`
	NeedsConfirmation bool     `json:"needs_confirmation"`
}

// Empty reports whether the model declined the task. An empty command list is
// a valid outcome ("no plan"), not an error.
func (p Plan) Empty() bool {
	return len(p.Commands) == 0
}

// WithCommand returns a copy of the plan whose commands are replaced by the
// single edited command line.
func (p Plan) WithCommand(command string) Plan {
	out := p
	out.Commands = []string{command}
	return out
}
