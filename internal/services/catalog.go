package services

import (
	"context"
	"errors"

	"github.com/doeshing/pls-go/internal/domain"
	"github.com/doeshing/pls-go/internal/ports"
)

// CatalogBuilder is the port into the catalog build pass. Implemented by the
// infrastructure catalog package.
type CatalogBuilder interface {
	Build(ctx context.Context, cfg domain.IndexConfig) (int, error)
}

// CatalogService owns tool-record creation and the catalog statistics view.
type CatalogService struct {
	Builder CatalogBuilder
	Store   ports.ToolStore
	Logger  ports.Logger
	Config  domain.Config
}

// BuildIndex runs a full catalog build pass and returns the number of tools
// indexed.
func (s *CatalogService) BuildIndex(ctx context.Context) (int, error) {
	if s.Builder == nil || s.Store == nil {
		return 0, errors.New("services.CatalogService dependencies not satisfied")
	}
	count, err := s.Builder.Build(ctx, s.Config.Index)
	if err != nil {
		return count, err
	}
	if s.Logger != nil {
		s.Logger.Info("catalog build finished", map[string]interface{}{"indexed": count})
	}
	return count, nil
}

// EnsureIndexed builds the catalog when it is empty, so a first query works
// without an explicit index run. Returns true when a build was triggered.
func (s *CatalogService) EnsureIndexed(ctx context.Context) (bool, error) {
	count, err := s.Store.CountTools()
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	_, err = s.BuildIndex(ctx)
	return true, err
}

// ToolCount reports how many tools the catalog holds.
func (s *CatalogService) ToolCount() (int, error) {
	return s.Store.CountTools()
}
