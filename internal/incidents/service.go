package incidents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/odyssey-erp/opsdesk/internal/categories"
	"github.com/odyssey-erp/opsdesk/internal/platform/memstore"
	"github.com/odyssey-erp/opsdesk/internal/seed"
	"github.com/odyssey-erp/opsdesk/internal/shared"
)

// DuplicateRecorder counts refused duplicates.
type DuplicateRecorder interface {
	DuplicateRejected(kind string)
}

// Service backs the incident setup screen. Categories live in the shared
// registry; everything else is held in memory.
type Service struct {
	registry      categories.Registry
	logger        *slog.Logger
	recorder      DuplicateRecorder
	subCategories *memstore.Store[SubCategory]
	statuses      *memstore.Store[Status]
	priorities    *memstore.Store[Priority]
	capa          *memstore.Store[CAPA]
}

// NewService seeds the stores from the embedded fixtures and adds the fixture
// categories that registry does not hold yet.
func NewService(ctx context.Context, registry categories.Registry, logger *slog.Logger, recorder DuplicateRecorder) (*Service, error) {
	if registry == nil {
		return nil, errors.New("incidents: category registry is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	var data fixture
	if err := seed.Load("incidents.yaml", &data); err != nil {
		return nil, fmt.Errorf("incidents: %w", err)
	}
	for _, name := range data.Categories {
		if _, err := registry.Add(ctx, name); err != nil {
			return nil, fmt.Errorf("incidents: seed category %q: %w", name, err)
		}
	}
	s := &Service{
		registry:      registry,
		logger:        logger,
		recorder:      recorder,
		subCategories: memstore.New(func(c SubCategory) int64 { return c.ID }, func(c *SubCategory, id int64) { c.ID = id }),
		statuses:      memstore.New(func(st Status) int64 { return st.ID }, func(st *Status, id int64) { st.ID = id }),
		priorities:    memstore.New(func(p Priority) int64 { return p.ID }, func(p *Priority, id int64) { p.ID = id }),
		capa:          memstore.New(func(c CAPA) int64 { return c.ID }, func(c *CAPA, id int64) { c.ID = id }),
	}
	s.subCategories.Seed(data.SubCategories...)
	s.statuses.Seed(data.Statuses...)
	s.priorities.Seed(data.Priorities...)
	s.capa.Seed(data.CAPA...)
	return s, nil
}

// Categories lists the registry in insertion order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.registry.List(ctx)
}

// AddCategory stores name in the registry. An existing name, compared
// without regard to case, yields an error wrapping shared.ErrDuplicate.
func (s *Service) AddCategory(ctx context.Context, name string) error {
	added, err := s.registry.Add(ctx, name)
	if err != nil {
		return err
	}
	if !added {
		if s.recorder != nil {
			s.recorder.DuplicateRejected("category")
		}
		s.logger.Info("duplicate category rejected", slog.String("name", name))
		return fmt.Errorf("category %q %w", name, shared.ErrDuplicate)
	}
	return nil
}

// checkParent reports whether a sub-category's parent is registered.
func (s *Service) checkParent(ctx context.Context, category string) (bool, error) {
	return s.registry.Contains(ctx, category)
}
