package services

import (
	"context"
	"fmt"
	"os"

	"github.com/doeshing/pls-go/internal/ports"
)

// CheckResult is one diagnostics probe outcome.
type CheckResult struct {
	Name   string
	OK     bool
	Detail string
}

// DoctorService probes the external collaborators the pipeline depends on:
// the model gateway, both request kinds, the index and the config file.
type DoctorService struct {
	LLM        ports.LLMClient
	Store      ports.ToolStore
	ConfigPath string
	Model      string
	EmbedModel string
}

// Run executes all probes and returns their results in display order.
func (s *DoctorService) Run(ctx context.Context) []CheckResult {
	var results []CheckResult

	available := s.LLM.IsAvailable(ctx)
	results = append(results, CheckResult{Name: "gateway", OK: available})

	generate := CheckResult{Name: fmt.Sprintf("model (%s)", s.Model)}
	if available {
		_, err := s.LLM.Generate(ctx, "Say 'ok' and nothing else.")
		generate.OK = err == nil
		if err != nil {
			generate.Detail = err.Error()
		}
	}
	results = append(results, generate)

	embed := CheckResult{Name: fmt.Sprintf("embeddings (%s)", s.EmbedModel)}
	if available {
		_, err := s.LLM.Embed(ctx, "test")
		embed.OK = err == nil
		if err != nil {
			embed.Detail = err.Error()
		}
	}
	results = append(results, embed)

	index := CheckResult{Name: "index"}
	if count, err := s.Store.CountTools(); err == nil && count > 0 {
		index.OK = true
		index.Detail = fmt.Sprintf("%d tools", count)
	} else {
		index.Detail = "run: pls index"
	}
	results = append(results, index)

	config := CheckResult{Name: "config"}
	if _, err := os.Stat(s.ConfigPath); err == nil {
		config.OK = true
	} else {
		config.OK = true
		config.Detail = "using defaults"
	}
	results = append(results, config)

	return results
}
