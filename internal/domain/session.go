package domain

// SessionState is one state of the per-query confirmation machine.
// Presenting is the only state that reads user input; Run and Cancel are
// terminal.
type SessionState string

const (
	StatePresenting SessionState = "presenting"
	StateRunning    SessionState = "running"
	StateEditing    SessionState = "editing"
	StateExplaining SessionState = "explaining"
	StateCancelled  SessionState = "cancelled"
	StateBlocked    SessionState = "blocked"
	StateDone       SessionState = "done"
)

// Action is one user choice at the presentation prompt. Anything the prompter
// cannot understand maps to ActionQuit.
type Action string

const (
	ActionRun     Action = "run"
	ActionEdit    Action = "edit"
	ActionExplain Action = "explain"
	ActionQuit    Action = "quit"
)

// NextState is the transition function of the confirmation machine. It is
// pure so the Presenting/Run/Edit/Explain/Cancel transitions can be tested
// without a terminal.
func NextState(state SessionState, action Action) SessionState {
	if state != StatePresenting {
		return state
	}
	switch action {
	case ActionRun:
		return StateRunning
	case ActionEdit:
		return StateEditing
	case ActionExplain:
		return StateExplaining
	default:
		return StateCancelled
	}
}
