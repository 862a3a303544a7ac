package catalog

import (
	"context"
	"os"

	"github.com/doeshing/pls-go/internal/domain"
	"github.com/doeshing/pls-go/internal/ports"
)

// Builder indexes discovered tools into the store, one tool at a time so
// partial progress survives a later failure.
type Builder struct {
	llm     ports.LLMClient
	store   ports.ToolStore
	logger  ports.Logger
	scraper scraper

	// Progress, when set, is invoked before each tool is processed.
	Progress func(current, total int, name string)
}

// NewBuilder wires a catalog builder.
func NewBuilder(llm ports.LLMClient, store ports.ToolStore, logger ports.Logger) *Builder {
	return &Builder{
		llm:     llm,
		store:   store,
		logger:  logger,
		scraper: execScraper{},
	}
}

// Build discovers, documents, embeds and persists tools. It returns the
// number of tools indexed. Per-tool scraping and embedding failures are
// skipped; the operation only fails outright when the gateway is unreachable
// at the start or a storage write fails.
func (b *Builder) Build(ctx context.Context, cfg domain.IndexConfig) (int, error) {
	if !b.llm.IsAvailable(ctx) {
		return 0, domain.ErrCapabilityUnavailable
	}

	candidates := DiscoverBinaries(os.Getenv("PATH"))
	SortByPriority(candidates)

	maxTools := cfg.MaxTools
	if maxTools <= 0 {
		maxTools = domain.DefaultConfig().Index.MaxTools
	}
	if len(candidates) > maxTools {
		candidates = candidates[:maxTools]
	}

	indexed := 0
	for i, candidate := range candidates {
		if b.Progress != nil {
			b.Progress(i+1, len(candidates), candidate.Name)
		}

		docs := b.gather(candidate.Name, cfg)
		embedding, err := b.llm.Embed(ctx, EmbedText(candidate.Name, docs))
		if err != nil || len(embedding) == 0 {
			// Do not index a half-formed record.
			b.logger.Debug("skipping tool, embedding failed", map[string]interface{}{
				"tool": candidate.Name,
			})
			continue
		}

		tool := domain.Tool{
			Name:        candidate.Name,
			Path:        candidate.Path,
			Description: DeriveDescription(docs),
			Synopsis:    DeriveSynopsis(docs),
			Flags:       DeriveFlags(docs),
			Examples:    DeriveExamples(docs),
			Source:      DeriveSource(docs),
			Embedding:   embedding,
		}
		if err := b.store.UpsertTool(tool); err != nil {
			return indexed, err
		}
		indexed++
	}
	return indexed, nil
}

func (b *Builder) gather(name string, cfg domain.IndexConfig) Docs {
	var docs Docs
	if cfg.ManPages {
		docs.ManSummary = b.scraper.ManSummary(name)
	}
	if cfg.Help {
		docs.Help = b.scraper.HelpTranscript(name)
	}
	if cfg.Tldr {
		docs.Tldr = b.scraper.TldrPage(name)
	}
	return docs
}
