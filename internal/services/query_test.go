package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/pls-go/internal/domain"
	"github.com/doeshing/pls-go/internal/ports"
)

type stubLLM struct {
	available bool
}

func (s *stubLLM) Generate(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("unused")
}
func (s *stubLLM) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("unused")
}
func (s *stubLLM) IsAvailable(ctx context.Context) bool { return s.available }

type stubRetriever struct {
	tools []domain.Tool
	err   error
}

func (s *stubRetriever) Retrieve(ctx context.Context, query string, topK int) ([]domain.Tool, error) {
	return s.tools, s.err
}

type stubPlanner struct {
	plan domain.Plan
	err  error
}

func (s *stubPlanner) GeneratePlan(ctx context.Context, query string, tools []domain.Tool, cwd string) (domain.Plan, error) {
	return s.plan, s.err
}

type stubClassifier struct{}

func (stubClassifier) Assess(commands []string, cfg domain.SafetyConfig) domain.RiskLevel {
	joined := strings.Join(commands, " ")
	switch {
	case strings.Contains(joined, "rm -rf /"):
		return domain.RiskBlocked
	case strings.Contains(joined, "rm "):
		return domain.RiskDangerous
	case strings.Contains(joined, "ls"):
		return domain.RiskSafe
	default:
		return domain.RiskReview
	}
}

type stubRunner struct {
	succeeded bool
	output    string
	err       error
	ran       [][]string
}

func (s *stubRunner) Run(ctx context.Context, commands []string, maxOutputLines int) (bool, string, error) {
	s.ran = append(s.ran, commands)
	return s.succeeded, s.output, s.err
}

type stubStore struct {
	history []domain.HistoryEntry
}

func (s *stubStore) UpsertTool(domain.Tool) error         { return nil }
func (s *stubStore) LoadAllTools() ([]domain.Tool, error) { return nil, nil }
func (s *stubStore) CountTools() (int, error)             { return 0, nil }
func (s *stubStore) AppendHistory(entry domain.HistoryEntry) error {
	s.history = append(s.history, entry)
	return nil
}
func (s *stubStore) RecentHistory(int) ([]domain.HistoryEntry, error) { return s.history, nil }
func (s *stubStore) LastExecutedCommand() (string, bool, error)       { return "", false, nil }

type stubPrompter struct {
	actions []domain.Action
}

func (s *stubPrompter) Interactive() bool { return true }

func (s *stubPrompter) NextAction() domain.Action {
	if len(s.actions) == 0 {
		return domain.ActionQuit
	}
	next := s.actions[0]
	s.actions = s.actions[1:]
	return next
}

type stubEditor struct {
	result string
	err    error
}

func (s *stubEditor) Edit(command string) (string, error) { return s.result, s.err }

type recordingPresenter struct {
	calls []string
	plans []domain.Plan
	risks []domain.RiskLevel
}

func (p *recordingPresenter) ShowPlan(plan domain.Plan, risk domain.RiskLevel) {
	p.calls = append(p.calls, "plan")
	p.plans = append(p.plans, plan)
	p.risks = append(p.risks, risk)
}
func (p *recordingPresenter) ShowBlocked(commands []string)    { p.calls = append(p.calls, "blocked") }
func (p *recordingPresenter) ShowExplanation(plan domain.Plan) { p.calls = append(p.calls, "explain") }
func (p *recordingPresenter) ShowOutput(output string)         { p.calls = append(p.calls, "output") }
func (p *recordingPresenter) ShowNoPlan(plan domain.Plan)      { p.calls = append(p.calls, "noplan") }
func (p *recordingPresenter) ShowCancelled()                   { p.calls = append(p.calls, "cancelled") }

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

type fixture struct {
	service   *QueryService
	store     *stubStore
	runner    *stubRunner
	presenter *recordingPresenter
	prompter  *stubPrompter
	editor    *stubEditor
}

func newFixture(plan domain.Plan) *fixture {
	f := &fixture{
		store:     &stubStore{},
		runner:    &stubRunner{succeeded: true, output: "ok"},
		presenter: &recordingPresenter{},
		prompter:  &stubPrompter{},
		editor:    &stubEditor{},
	}
	f.service = &QueryService{
		LLM:        &stubLLM{available: true},
		Retriever:  &stubRetriever{tools: []domain.Tool{{Name: "ls"}}},
		Planner:    &stubPlanner{plan: plan},
		Classifier: stubClassifier{},
		Runner:     f.runner,
		Store:      f.store,
		Prompter:   f.prompter,
		Editor:     f.editor,
		Presenter:  f.presenter,
		Logger:     nopLogger{},
		Config:     domain.DefaultConfig(),
	}
	return f
}

var _ ports.Presenter = (*recordingPresenter)(nil)

func TestRunConfirmedExecutionRecordsHistory(t *testing.T) {
	f := newFixture(domain.Plan{Commands: []string{"ls -la"}, Explanation: "lists"})
	f.prompter.actions = []domain.Action{domain.ActionRun}

	if err := f.service.Run(context.Background(), QueryRequest{Query: "list files"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(f.runner.ran) != 1 {
		t.Fatalf("runner invoked %d times, want 1", len(f.runner.ran))
	}
	if len(f.store.history) != 1 {
		t.Fatalf("history entries = %d, want 1", len(f.store.history))
	}
	entry := f.store.history[0]
	if !entry.Executed || !entry.Succeeded || entry.Query != "list files" {
		t.Fatalf("history entry = %+v", entry)
	}
	if entry.OutputSample != "ok" {
		t.Fatalf("output sample = %q", entry.OutputSample)
	}
}

func TestRunQuitRecordsCancelledEntry(t *testing.T) {
	f := newFixture(domain.Plan{Commands: []string{"tar xf a.tar"}})
	f.prompter.actions = []domain.Action{domain.ActionQuit}

	if err := f.service.Run(context.Background(), QueryRequest{Query: "unpack"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(f.runner.ran) != 0 {
		t.Fatal("cancelled query must not execute")
	}
	if len(f.store.history) != 1 || f.store.history[0].Executed {
		t.Fatalf("history = %+v, want one non-executed entry", f.store.history)
	}
	if f.presenter.calls[len(f.presenter.calls)-1] != "cancelled" {
		t.Fatalf("presenter calls = %v", f.presenter.calls)
	}
}

func TestRunBlockedPlanLeavesNoHistory(t *testing.T) {
	f := newFixture(domain.Plan{Commands: []string{"rm -rf /"}})

	if err := f.service.Run(context.Background(), QueryRequest{Query: "wipe"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []string{"blocked"}
	if diff := cmp.Diff(want, f.presenter.calls); diff != "" {
		t.Fatalf("presenter calls (-want +got):\n%s", diff)
	}
	if len(f.runner.ran) != 0 || len(f.store.history) != 0 {
		t.Fatal("blocked plan must neither run nor be recorded")
	}
}

func TestRunEmptyPlanShowsNoPlan(t *testing.T) {
	f := newFixture(domain.Plan{Explanation: "cannot help"})

	if err := f.service.Run(context.Background(), QueryRequest{Query: "impossible"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []string{"noplan"}
	if diff := cmp.Diff(want, f.presenter.calls); diff != "" {
		t.Fatalf("presenter calls (-want +got):\n%s", diff)
	}
}

func TestRunYoloSkipsPromptForSafePlans(t *testing.T) {
	f := newFixture(domain.Plan{Commands: []string{"ls"}})

	if err := f.service.Run(context.Background(), QueryRequest{Query: "list", Yolo: true}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(f.runner.ran) != 1 {
		t.Fatal("safe plan under yolo must run without prompting")
	}
	for _, call := range f.presenter.calls {
		if call == "plan" {
			t.Fatal("yolo-safe path must not present the plan")
		}
	}
}

func TestRunYoloStillPromptsForRiskyPlans(t *testing.T) {
	f := newFixture(domain.Plan{Commands: []string{"rm old.log"}})
	f.prompter.actions = []domain.Action{domain.ActionQuit}

	if err := f.service.Run(context.Background(), QueryRequest{Query: "clean", Yolo: true}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(f.runner.ran) != 0 {
		t.Fatal("dangerous plan must not auto-run under yolo")
	}
	if f.presenter.calls[0] != "plan" {
		t.Fatalf("presenter calls = %v, want the plan shown first", f.presenter.calls)
	}
}

func TestRunExplainOnly(t *testing.T) {
	f := newFixture(domain.Plan{Commands: []string{"ls"}, Explanation: "lists"})

	if err := f.service.Run(context.Background(), QueryRequest{Query: "list", ExplainOnly: true}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []string{"plan", "explain"}
	if diff := cmp.Diff(want, f.presenter.calls); diff != "" {
		t.Fatalf("presenter calls (-want +got):\n%s", diff)
	}
	if len(f.runner.ran) != 0 || len(f.store.history) != 0 {
		t.Fatal("explain-only must neither run nor record")
	}
}

func TestRunEditReassessesThenExecutes(t *testing.T) {
	f := newFixture(domain.Plan{Commands: []string{"tar xf a.tar"}})
	f.editor.result = "ls -la"
	f.prompter.actions = []domain.Action{domain.ActionEdit, domain.ActionRun}

	if err := f.service.Run(context.Background(), QueryRequest{Query: "unpack"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(f.runner.ran) != 1 {
		t.Fatalf("runner invoked %d times, want 1", len(f.runner.ran))
	}
	if got := f.runner.ran[0]; len(got) != 1 || got[0] != "ls -la" {
		t.Fatalf("ran %v, want the edited command", got)
	}
	// Plan is re-presented after the edit, with the edit's risk level.
	if len(f.presenter.risks) != 2 || f.presenter.risks[1] != domain.RiskSafe {
		t.Fatalf("risks = %v, want re-assessment of the edited command", f.presenter.risks)
	}
}

func TestRunEditToBlockedIsRefused(t *testing.T) {
	f := newFixture(domain.Plan{Commands: []string{"tar xf a.tar"}})
	f.editor.result = "rm -rf /"
	f.prompter.actions = []domain.Action{domain.ActionEdit, domain.ActionQuit}

	if err := f.service.Run(context.Background(), QueryRequest{Query: "unpack"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(f.runner.ran) != 0 {
		t.Fatal("a blocked edit must never execute")
	}
	found := false
	for _, call := range f.presenter.calls {
		if call == "blocked" {
			found = true
		}
	}
	if !found {
		t.Fatalf("presenter calls = %v, want the blocked refusal shown", f.presenter.calls)
	}
	// The original commands survive the refused edit.
	if got := f.store.history[0].Commands; len(got) != 1 || got[0] != "tar xf a.tar" {
		t.Fatalf("recorded commands = %v, want the original plan", got)
	}
}

func TestRunEmptyEditIsDiscarded(t *testing.T) {
	f := newFixture(domain.Plan{Commands: []string{"tar xf a.tar"}})
	f.editor.result = "   \n"
	f.prompter.actions = []domain.Action{domain.ActionEdit, domain.ActionRun}

	if err := f.service.Run(context.Background(), QueryRequest{Query: "unpack"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := f.runner.ran[0]; got[0] != "tar xf a.tar" {
		t.Fatalf("ran %v, want the original command after a discarded edit", got)
	}
}

func TestRunExplainLoopsBackToPrompt(t *testing.T) {
	f := newFixture(domain.Plan{Commands: []string{"ls"}, Explanation: "lists"})
	f.prompter.actions = []domain.Action{domain.ActionExplain, domain.ActionRun}

	if err := f.service.Run(context.Background(), QueryRequest{Query: "list"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []string{"plan", "explain", "output"}
	if diff := cmp.Diff(want, f.presenter.calls); diff != "" {
		t.Fatalf("presenter calls (-want +got):\n%s", diff)
	}
}

func TestRunGatewayUnavailable(t *testing.T) {
	f := newFixture(domain.Plan{Commands: []string{"ls"}})
	f.service.LLM = &stubLLM{available: false}

	err := f.service.Run(context.Background(), QueryRequest{Query: "list"})
	if !errors.Is(err, domain.ErrCapabilityUnavailable) {
		t.Fatalf("Run() error = %v, want ErrCapabilityUnavailable", err)
	}
}

func TestRunFailedExecutionStillRecorded(t *testing.T) {
	f := newFixture(domain.Plan{Commands: []string{"ls missing-dir"}})
	f.runner.succeeded = false
	f.runner.output = "no such file"
	f.prompter.actions = []domain.Action{domain.ActionRun}

	if err := f.service.Run(context.Background(), QueryRequest{Query: "list"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	entry := f.store.history[0]
	if !entry.Executed || entry.Succeeded {
		t.Fatalf("entry = %+v, want executed but not succeeded", entry)
	}
}
