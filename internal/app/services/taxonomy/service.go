// Package taxonomy is the admin service for the catalog's auxiliary
// entities: categories, colors, sizes and collections. Each entity gets its
// own list state; mutations keep the matching list synchronized.
package taxonomy

import (
	"context"
	"strings"

	"github.com/noizee/storefront/internal/app/domain/catalog"
	"github.com/noizee/storefront/internal/app/storage"
	"github.com/noizee/storefront/internal/app/validation"
	"github.com/noizee/storefront/internal/listquery"
	"github.com/noizee/storefront/pkg/logger"
)

// Service wraps the taxonomy store behind four independent list states.
type Service struct {
	store storage.TaxonomyStore
	log   *logger.Logger

	categories  *listquery.Binding[catalog.Category]
	colors      *listquery.Binding[catalog.Color]
	sizes       *listquery.Binding[catalog.Size]
	collections *listquery.Binding[catalog.Collection]
}

// NewService creates the taxonomy service.
func NewService(store storage.TaxonomyStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("taxonomy")
	}
	s := &Service{store: store, log: log}
	s.categories = newBinding(log, func(ctx context.Context, p listquery.Params) ([]catalog.Category, int, error) {
		return store.ListCategories(ctx, p)
	})
	s.colors = newBinding(log, func(ctx context.Context, p listquery.Params) ([]catalog.Color, int, error) {
		return store.ListColors(ctx, p)
	})
	s.sizes = newBinding(log, func(ctx context.Context, p listquery.Params) ([]catalog.Size, int, error) {
		return store.ListSizes(ctx, p)
	})
	s.collections = newBinding(log, func(ctx context.Context, p listquery.Params) ([]catalog.Collection, int, error) {
		return store.ListCollections(ctx, p)
	})
	return s
}

func newBinding[T any](log *logger.Logger, list func(context.Context, listquery.Params) ([]T, int, error)) *listquery.Binding[T] {
	ctrl := listquery.NewController(listquery.DefaultPageSize)
	return listquery.NewBinding(ctrl, func(ctx context.Context, p listquery.Params) (listquery.Page[T], error) {
		items, count, err := list(ctx, p)
		if err != nil {
			return listquery.Page[T]{}, err
		}
		return listquery.Page[T]{Items: items, Count: count}, nil
	}, log)
}

// Categories returns the category list binding.
func (s *Service) Categories() *listquery.Binding[catalog.Category] { return s.categories }

// Colors returns the color list binding.
func (s *Service) Colors() *listquery.Binding[catalog.Color] { return s.colors }

// Sizes returns the size list binding.
func (s *Service) Sizes() *listquery.Binding[catalog.Size] { return s.sizes }

// Collections returns the collection list binding.
func (s *Service) Collections() *listquery.Binding[catalog.Collection] { return s.collections }

// --- categories -------------------------------------------------------------

func (s *Service) CreateCategory(ctx context.Context, c catalog.Category) (catalog.Category, error) {
	if c.Name == "" {
		return catalog.Category{}, validation.Errorf("category name is required")
	}
	created, err := s.store.CreateCategory(ctx, c)
	if err != nil {
		return catalog.Category{}, err
	}
	s.afterCreate(ctx, "category", created.ID, s.categories.ItemCreated)
	return created, nil
}

func (s *Service) UpdateCategory(ctx context.Context, c catalog.Category) (catalog.Category, error) {
	if c.ID == "" || c.Name == "" {
		return catalog.Category{}, validation.Errorf("category id and name are required")
	}
	updated, err := s.store.UpdateCategory(ctx, c)
	if err != nil {
		return catalog.Category{}, err
	}
	_ = s.categories.ItemUpdated(ctx, false, func(x catalog.Category) bool { return x.ID == updated.ID }, updated)
	return updated, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if id == "" {
		return validation.Errorf("category id is required")
	}
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.afterDelete(ctx, "category", id, s.categories.ItemDeleted)
	return nil
}

// --- colors -----------------------------------------------------------------

func (s *Service) CreateColor(ctx context.Context, c catalog.Color) (catalog.Color, error) {
	if err := validateColor(c); err != nil {
		return catalog.Color{}, err
	}
	created, err := s.store.CreateColor(ctx, c)
	if err != nil {
		return catalog.Color{}, err
	}
	s.afterCreate(ctx, "color", created.ID, s.colors.ItemCreated)
	return created, nil
}

func (s *Service) UpdateColor(ctx context.Context, c catalog.Color) (catalog.Color, error) {
	if c.ID == "" {
		return catalog.Color{}, validation.Errorf("color id is required")
	}
	if err := validateColor(c); err != nil {
		return catalog.Color{}, err
	}
	updated, err := s.store.UpdateColor(ctx, c)
	if err != nil {
		return catalog.Color{}, err
	}
	_ = s.colors.ItemUpdated(ctx, false, func(x catalog.Color) bool { return x.ID == updated.ID }, updated)
	return updated, nil
}

func (s *Service) DeleteColor(ctx context.Context, id string) error {
	if id == "" {
		return validation.Errorf("color id is required")
	}
	if err := s.store.DeleteColor(ctx, id); err != nil {
		return err
	}
	s.afterDelete(ctx, "color", id, s.colors.ItemDeleted)
	return nil
}

func validateColor(c catalog.Color) error {
	if c.Name == "" {
		return validation.Errorf("color name is required")
	}
	if c.Hex != "" {
		hex := strings.TrimPrefix(c.Hex, "#")
		if len(hex) != 6 && len(hex) != 3 {
			return validation.Errorf("color hex must be a 3 or 6 digit code")
		}
	}
	return nil
}

// --- sizes ------------------------------------------------------------------

func (s *Service) CreateSize(ctx context.Context, sz catalog.Size) (catalog.Size, error) {
	if sz.Name == "" {
		return catalog.Size{}, validation.Errorf("size name is required")
	}
	created, err := s.store.CreateSize(ctx, sz)
	if err != nil {
		return catalog.Size{}, err
	}
	s.afterCreate(ctx, "size", created.ID, s.sizes.ItemCreated)
	return created, nil
}

func (s *Service) UpdateSize(ctx context.Context, sz catalog.Size) (catalog.Size, error) {
	if sz.ID == "" || sz.Name == "" {
		return catalog.Size{}, validation.Errorf("size id and name are required")
	}
	updated, err := s.store.UpdateSize(ctx, sz)
	if err != nil {
		return catalog.Size{}, err
	}
	_ = s.sizes.ItemUpdated(ctx, false, func(x catalog.Size) bool { return x.ID == updated.ID }, updated)
	return updated, nil
}

func (s *Service) DeleteSize(ctx context.Context, id string) error {
	if id == "" {
		return validation.Errorf("size id is required")
	}
	if err := s.store.DeleteSize(ctx, id); err != nil {
		return err
	}
	s.afterDelete(ctx, "size", id, s.sizes.ItemDeleted)
	return nil
}

// --- collections ------------------------------------------------------------

func (s *Service) CreateCollection(ctx context.Context, c catalog.Collection) (catalog.Collection, error) {
	if c.Name == "" {
		return catalog.Collection{}, validation.Errorf("collection name is required")
	}
	created, err := s.store.CreateCollection(ctx, c)
	if err != nil {
		return catalog.Collection{}, err
	}
	s.afterCreate(ctx, "collection", created.ID, s.collections.ItemCreated)
	return created, nil
}

func (s *Service) UpdateCollection(ctx context.Context, c catalog.Collection) (catalog.Collection, error) {
	if c.ID == "" || c.Name == "" {
		return catalog.Collection{}, validation.Errorf("collection id and name are required")
	}
	updated, err := s.store.UpdateCollection(ctx, c)
	if err != nil {
		return catalog.Collection{}, err
	}
	_ = s.collections.ItemUpdated(ctx, false, func(x catalog.Collection) bool { return x.ID == updated.ID }, updated)
	return updated, nil
}

func (s *Service) DeleteCollection(ctx context.Context, id string) error {
	if id == "" {
		return validation.Errorf("collection id is required")
	}
	if err := s.store.DeleteCollection(ctx, id); err != nil {
		return err
	}
	s.afterDelete(ctx, "collection", id, s.collections.ItemDeleted)
	return nil
}

func (s *Service) afterCreate(ctx context.Context, kind, id string, resync func(context.Context) error) {
	s.log.WithField(kind+"_id", id).Infof("%s created", kind)
	if err := resync(ctx); err != nil {
		s.log.WithError(err).Warnf("%s list refresh after create failed", kind)
	}
}

func (s *Service) afterDelete(ctx context.Context, kind, id string, resync func(context.Context) error) {
	s.log.WithField(kind+"_id", id).Infof("%s deleted", kind)
	if err := resync(ctx); err != nil {
		s.log.WithError(err).Warnf("%s list refresh after delete failed", kind)
	}
}
