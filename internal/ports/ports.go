// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and
// external adapters (infrastructure). The application depends on these
// abstractions, never on concrete databases, HTTP clients or terminals.
package ports

import (
	"context"

	"github.com/doeshing/pls-go/internal/domain"
)

// LLMClient is the language-model gateway: free-text completion plus text
// embedding. Embed must return a stable-length vector for a stable model
// configuration.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Embed(ctx context.Context, text string) ([]float32, error)
	IsAvailable(ctx context.Context) bool
}

// ToolStore is the persistent store: the tool catalog keyed by name and the
// append-only history log.
type ToolStore interface {
	UpsertTool(tool domain.Tool) error
	LoadAllTools() ([]domain.Tool, error)
	CountTools() (int, error)
	AppendHistory(entry domain.HistoryEntry) error
	RecentHistory(limit int) ([]domain.HistoryEntry, error)
	LastExecutedCommand() (string, bool, error)
}

// Retriever ranks stored tools against a query by embedding similarity.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]domain.Tool, error)
}

// Planner turns a query plus retrieved tools into a structured plan.
type Planner interface {
	GeneratePlan(ctx context.Context, query string, tools []domain.Tool, cwd string) (domain.Plan, error)
}

// RiskClassifier assigns a risk level to a command set. Implementations must
// be pure functions of their input.
type RiskClassifier interface {
	Assess(commands []string, cfg domain.SafetyConfig) domain.RiskLevel
}

// CommandRunner executes shell command lines sequentially and reports
// aggregate success plus rendered (possibly truncated) combined output.
type CommandRunner interface {
	Run(ctx context.Context, commands []string, maxOutputLines int) (bool, string, error)
}

// ActionPrompter reads one user choice at the presentation prompt.
// Implementations map unreadable or malformed input to domain.ActionQuit.
type ActionPrompter interface {
	NextAction() domain.Action
	Interactive() bool
}

// Presenter renders plans and outcomes to the user. Kept behind a port so
// the confirmation machine is testable without a terminal.
type Presenter interface {
	ShowPlan(plan domain.Plan, risk domain.RiskLevel)
	ShowBlocked(commands []string)
	ShowExplanation(plan domain.Plan)
	ShowOutput(output string)
	ShowNoPlan(plan domain.Plan)
	ShowCancelled()
}

// CommandEditor opens command text in the user's external editor and returns
// the edited replacement. An empty result means the edit was discarded.
type CommandEditor interface {
	Edit(command string) (string, error)
}

// Logger provides structured logging for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
