// Package app wires application services with infrastructure adapters.
package app

import (
	"github.com/doeshing/pls-go/internal/domain"
	"github.com/doeshing/pls-go/internal/infrastructure/ai"
	"github.com/doeshing/pls-go/internal/infrastructure/catalog"
	"github.com/doeshing/pls-go/internal/infrastructure/config"
	"github.com/doeshing/pls-go/internal/infrastructure/executor"
	"github.com/doeshing/pls-go/internal/infrastructure/planner"
	"github.com/doeshing/pls-go/internal/infrastructure/retrieval"
	"github.com/doeshing/pls-go/internal/infrastructure/safety"
	"github.com/doeshing/pls-go/internal/infrastructure/store"
	"github.com/doeshing/pls-go/internal/pkg/filesystem"
	"github.com/doeshing/pls-go/internal/pkg/logger"
	"github.com/doeshing/pls-go/internal/services"
)

// Container holds the wired dependency graph for one process.
type Container struct {
	Config         domain.Config
	ConfigLoader   *config.FileLoader
	Store          *store.SQLiteStore
	LLM            *ai.OllamaClient
	Builder        *catalog.Builder
	QueryService   *services.QueryService
	CatalogService *services.CatalogService
	DoctorService  *services.DoctorService
}

// BuildContainer constructs the dependency graph. Configuration is loaded
// once here and passed down by value. The interactive adapters (prompter,
// editor, presenter) are attached by the CLI layer.
func BuildContainer(verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load()
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)

	toolStore, err := store.Open(filesystem.DBPath())
	if err != nil {
		return nil, err
	}

	llm := ai.NewOllamaClient(cfg.LLM)
	builder := catalog.NewBuilder(llm, toolStore, log)

	catalogService := &services.CatalogService{
		Builder: builder,
		Store:   toolStore,
		Logger:  log,
		Config:  cfg,
	}

	queryService := &services.QueryService{
		LLM:        llm,
		Retriever:  retrieval.New(llm, toolStore),
		Planner:    planner.New(llm),
		Classifier: safety.New(),
		Runner:     executor.NewShellRunner(""),
		Store:      toolStore,
		Logger:     log,
		Config:     cfg,
	}

	doctorService := &services.DoctorService{
		LLM:        llm,
		Store:      toolStore,
		ConfigPath: cfgLoader.Path(),
		Model:      cfg.LLM.Model,
		EmbedModel: cfg.LLM.EmbedModel,
	}

	return &Container{
		Config:         cfg,
		ConfigLoader:   cfgLoader,
		Store:          toolStore,
		LLM:            llm,
		Builder:        builder,
		QueryService:   queryService,
		CatalogService: catalogService,
		DoctorService:  doctorService,
	}, nil
}
