package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type doctorLLM struct {
	available   bool
	generateErr error
	embedErr    error
}

func (s *doctorLLM) Generate(ctx context.Context, prompt string) (string, error) {
	return "ok", s.generateErr
}

func (s *doctorLLM) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1}, s.embedErr
}

func (s *doctorLLM) IsAvailable(ctx context.Context) bool { return s.available }

type doctorStore struct {
	stubStore
	count int
}

func (s *doctorStore) CountTools() (int, error) { return s.count, nil }

func resultByName(t *testing.T, results []CheckResult, name string) CheckResult {
	t.Helper()
	for _, r := range results {
		if strings.HasPrefix(r.Name, name) {
			return r
		}
	}
	t.Fatalf("no %q check in %v", name, results)
	return CheckResult{}
}

func TestDoctorAllHealthy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("llm: {}\n"), 0o600); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}
	svc := &DoctorService{
		LLM:        &doctorLLM{available: true},
		Store:      &doctorStore{count: 12},
		ConfigPath: path,
		Model:      "llama3.1",
		EmbedModel: "nomic-embed-text",
	}

	results := svc.Run(context.Background())
	for _, r := range results {
		if !r.OK {
			t.Fatalf("check %q failed: %+v", r.Name, r)
		}
	}
	if got := resultByName(t, results, "index").Detail; got != "12 tools" {
		t.Fatalf("index detail = %q", got)
	}
}

func TestDoctorUnreachableGatewaySkipsModelProbes(t *testing.T) {
	svc := &DoctorService{
		LLM:        &doctorLLM{available: false},
		Store:      &doctorStore{},
		ConfigPath: "/nonexistent",
	}

	results := svc.Run(context.Background())
	if resultByName(t, results, "gateway").OK {
		t.Fatal("gateway check must fail when unreachable")
	}
	if resultByName(t, results, "model").OK || resultByName(t, results, "embeddings").OK {
		t.Fatal("model probes must not pass behind an unreachable gateway")
	}
}

func TestDoctorEmptyIndexSuggestsBuild(t *testing.T) {
	svc := &DoctorService{
		LLM:        &doctorLLM{available: true},
		Store:      &doctorStore{count: 0},
		ConfigPath: "/nonexistent",
	}

	results := svc.Run(context.Background())
	index := resultByName(t, results, "index")
	if index.OK {
		t.Fatal("empty index must not report healthy")
	}
	if !strings.Contains(index.Detail, "pls index") {
		t.Fatalf("index detail = %q, want the remediation hint", index.Detail)
	}
}
