package menusvc

import (
	"context"

	"github.com/corray333/tutti-amici/internal/dal/interfaces/idocumentrepo"
	"github.com/corray333/tutti-amici/internal/service/models/collection"
	"github.com/corray333/tutti-amici/internal/service/models/document"
	"github.com/corray333/tutti-amici/internal/service/models/menuitem"
)

const categoryField = "category"

// MenuService is a service for managing menu items.
type MenuService struct {
	repo idocumentrepo.IDocumentRepository
}

// option is a function that configures the MenuService.
type option func(*MenuService)

// MustNewMenuService creates a new MenuService.
func MustNewMenuService(opts ...option) *MenuService {
	s := &MenuService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithDocumentRepository sets the document store for the MenuService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithDocumentRepository(repo idocumentrepo.IDocumentRepository) option {
	return func(s *MenuService) {
		s.repo = repo
	}
}

// CreateMenuItem stores item and returns its identifier.
func (s *MenuService) CreateMenuItem(ctx context.Context, item menuitem.MenuItem) (string, error) {
	if s.repo == nil {
		return "", idocumentrepo.ErrStorageUnavailable
	}

	return s.repo.Create(ctx, collection.MenuItem, item)
}

// ListMenuItems returns stored menu items, restricted to category when it is not empty.
func (s *MenuService) ListMenuItems(ctx context.Context, category string) ([]document.Document, error) {
	if s.repo == nil {
		return nil, idocumentrepo.ErrStorageUnavailable
	}

	return s.repo.Find(ctx, collection.MenuItem, document.NewFilter(categoryField, category))
}
