package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/craftline/pos-terminal/pkg/logger"
	"github.com/craftline/pos-terminal/pkg/rest"
)

var (
	errClientRequired = errors.New("catalog client is required")
	errLoggerRequired = errors.New("catalog logger is required")
)

// Service fetches and holds the warehouse reference data snapshot.
type Service struct {
	client  *rest.Client
	logger  *logger.Logger
	current atomic.Pointer[Snapshot]
}

func NewService(client *rest.Client, logg *logger.Logger) (*Service, error) {
	if client == nil {
		return nil, errClientRequired
	}
	if logg == nil {
		return nil, errLoggerRequired
	}
	s := &Service{client: client, logger: logg}
	s.current.Store(EmptySnapshot())
	return s, nil
}

// Snapshot returns the current reference data view. Never nil.
func (s *Service) Snapshot() *Snapshot {
	return s.current.Load()
}

// Refresh reloads every reference list in parallel. Each sub-fetch is
// independently best-effort: a failed list degrades to empty instead of
// aborting the whole refresh. The combined sub-fetch error is returned for
// the caller to log; the new snapshot is installed regardless.
func (s *Service) Refresh(ctx context.Context) error {
	var (
		categories    []Category
		units         []Unit
		ingredients   []Ingredient
		consumables   []Consumable
		processGroups []ProcessGroup
		recipes       []MasterRecipe
		products      []Product
	)

	var mu sync.Mutex
	var errs []error
	g, gctx := errgroup.WithContext(ctx)

	fetch := func(path string, out any) func() error {
		return func() error {
			if err := s.client.Get(gctx, path, out); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		}
	}

	g.Go(fetch("/categories/", &categories))
	g.Go(fetch("/units/", &units))
	g.Go(fetch("/ingredients/", &ingredients))
	g.Go(fetch("/consumables/", &consumables))
	g.Go(fetch("/processes/groups/", &processGroups))
	g.Go(fetch("/recipes/", &recipes))
	g.Go(fetch("/products/", &products))
	_ = g.Wait()

	combined := multierr.Combine(errs...)
	if combined != nil {
		lctx := s.logger.WithField(ctx, "failed_fetches", len(errs))
		s.logger.Warn(lctx, "catalog refresh degraded, some lists are empty")
	}

	s.current.Store(NewSnapshot(categories, units, ingredients, consumables, processGroups, recipes, products))

	lctx := s.logger.WithFields(ctx, map[string]any{
		"products":    len(products),
		"ingredients": len(ingredients),
		"consumables": len(consumables),
		"recipes":     len(recipes),
	})
	s.logger.Info(lctx, "catalog snapshot refreshed")
	return combined
}
