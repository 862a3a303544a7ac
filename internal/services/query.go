// Package services contains the use-case orchestration on top of the ports.
package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/pls-go/internal/domain"
	"github.com/doeshing/pls-go/internal/ports"
)

// QueryRequest captures one free-text query plus its execution mode flags.
type QueryRequest struct {
	Query       string
	Yolo        bool
	ExplainOnly bool
}

// QueryService drives a query end-to-end: retrieval, plan generation, risk
// classification and the interactive confirm/edit/explain/execute machine.
type QueryService struct {
	LLM        ports.LLMClient
	Retriever  ports.Retriever
	Planner    ports.Planner
	Classifier ports.RiskClassifier
	Runner     ports.CommandRunner
	Store      ports.ToolStore
	Prompter   ports.ActionPrompter
	Editor     ports.CommandEditor
	Presenter  ports.Presenter
	Logger     ports.Logger
	Config     domain.Config
}

// Run processes a single natural-language query. A blocked plan and an empty
// plan are designed refusal paths, not errors.
func (s *QueryService) Run(ctx context.Context, req QueryRequest) error {
	if err := s.checkDeps(); err != nil {
		return err
	}
	if !s.LLM.IsAvailable(ctx) {
		return domain.ErrCapabilityUnavailable
	}

	tools, err := s.Retriever.Retrieve(ctx, req.Query, s.Config.Behavior.TopK)
	if err != nil {
		return err
	}

	plan, err := s.Planner.GeneratePlan(ctx, req.Query, tools, workingDir())
	if err != nil {
		return err
	}
	if plan.Empty() {
		s.Presenter.ShowNoPlan(plan)
		return nil
	}

	risk := s.Classifier.Assess(plan.Commands, s.Config.Safety)
	if risk == domain.RiskBlocked {
		s.Presenter.ShowBlocked(plan.Commands)
		return nil
	}

	if req.ExplainOnly {
		s.Presenter.ShowPlan(plan, risk)
		s.Presenter.ShowExplanation(plan)
		return nil
	}

	if req.Yolo && risk == domain.RiskSafe {
		return s.execute(ctx, req.Query, plan.Commands)
	}

	if !s.Prompter.Interactive() {
		// Nothing to read confirmation from; cancel instead of hanging.
		s.Presenter.ShowPlan(plan, risk)
		s.Presenter.ShowCancelled()
		return s.record(req.Query, plan.Commands, false, false, "")
	}

	return s.confirmLoop(ctx, req.Query, plan, risk)
}

// confirmLoop is the per-query state machine. Presenting is the only state
// that reads input; Run and Cancel are terminal. An edit loops back to
// Presenting with a re-risk-assessed single-command replacement.
func (s *QueryService) confirmLoop(ctx context.Context, query string, plan domain.Plan, risk domain.RiskLevel) error {
	current := plan
	currentRisk := risk
	s.Presenter.ShowPlan(current, currentRisk)

	state := domain.StatePresenting
	for {
		state = domain.NextState(state, s.Prompter.NextAction())
		switch state {
		case domain.StateRunning:
			return s.execute(ctx, query, current.Commands)

		case domain.StateEditing:
			edited, changed := s.editCommands(current.Commands)
			if changed {
				current = current.WithCommand(edited)
				currentRisk = s.Classifier.Assess(current.Commands, s.Config.Safety)
				s.Presenter.ShowPlan(current, currentRisk)
			}
			state = domain.StatePresenting

		case domain.StateExplaining:
			s.Presenter.ShowExplanation(current)
			state = domain.StatePresenting

		default:
			s.Presenter.ShowCancelled()
			return s.record(query, current.Commands, false, false, "")
		}
	}
}

// editCommands runs the external editor over the joined command text. An
// empty result is discarded; an edit that turns Blocked is refused. Either
// way the loop continues with the previous commands.
func (s *QueryService) editCommands(commands []string) (string, bool) {
	edited, err := s.Editor.Edit(strings.Join(commands, " && "))
	if err != nil {
		s.Logger.Warn("edit failed", map[string]interface{}{"error": err.Error()})
		return "", false
	}
	edited = strings.TrimSpace(edited)
	if edited == "" {
		return "", false
	}
	if s.Classifier.Assess([]string{edited}, s.Config.Safety) == domain.RiskBlocked {
		s.Presenter.ShowBlocked([]string{edited})
		return "", false
	}
	return edited, true
}

func (s *QueryService) execute(ctx context.Context, query string, commands []string) error {
	succeeded, output, err := s.Runner.Run(ctx, commands, s.Config.Safety.MaxOutputLines)
	if err != nil {
		return fmt.Errorf("execute commands: %w", err)
	}
	s.Presenter.ShowOutput(output)
	return s.record(query, commands, true, succeeded, output)
}

func (s *QueryService) record(query string, commands []string, executed, succeeded bool, output string) error {
	err := s.Store.AppendHistory(domain.HistoryEntry{
		Query:        query,
		Commands:     commands,
		Executed:     executed,
		Succeeded:    succeeded,
		OutputSample: output,
	})
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

func (s *QueryService) checkDeps() error {
	if s.LLM == nil || s.Retriever == nil || s.Planner == nil || s.Classifier == nil ||
		s.Runner == nil || s.Store == nil || s.Prompter == nil || s.Editor == nil ||
		s.Presenter == nil || s.Logger == nil {
		return errors.New("services.QueryService dependencies not satisfied")
	}
	return nil
}

func workingDir() string {
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "."
}
