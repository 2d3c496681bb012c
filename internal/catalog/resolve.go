package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/meur/pokedex/internal/logging"
	"github.com/meur/pokedex/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoVariants means the creature is unknown or declares at most one form
	ErrNoVariants = errors.New("no alternate forms")
	// ErrCreatureNotFound is wrapped in a DetailError when upstream has no such creature
	ErrCreatureNotFound = errors.New("creature not found")
)

// DetailError is the scoped failure of an on-demand detail lookup
type DetailError struct {
	ID  int
	Err error
}

func (e *DetailError) Error() string {
	return fmt.Sprintf("could not load details for creature %d: %v", e.ID, e.Err)
}

func (e *DetailError) Unwrap() error { return e.Err }

// Resolver answers detail and form lookups, falling back to the upstream for
// creatures that are not in the catalog
type Resolver struct {
	catalog func() *Catalog
	source  Source
	logger  *zap.Logger
}

// NewResolver reads the current catalog through current on every call
func NewResolver(current func() *Catalog, source Source, logger *zap.Logger) *Resolver {
	return &Resolver{catalog: current, source: source, logger: logging.OrNop(logger)}
}

// Detail returns the creature with species data attached. Records fetched on
// demand are returned to the caller only and never added to the catalog
func (r *Resolver) Detail(ctx context.Context, id int) (*models.Creature, error) {
	if c, ok := r.catalog().Lookup(id); ok {
		return c, nil
	}

	r.logger.Info("Creature not in catalog, fetching directly", zap.Int("id", id))

	creature, err := r.source.CreatureByID(ctx, id)
	if err != nil {
		return nil, &DetailError{ID: id, Err: err}
	}
	if creature == nil {
		return nil, &DetailError{ID: id, Err: ErrCreatureNotFound}
	}
	if err := creature.Validate(); err != nil {
		return nil, &DetailError{ID: id, Err: err}
	}

	species, err := r.source.Species(ctx, creature.SpeciesRef.URL)
	if err != nil {
		return nil, &DetailError{ID: id, Err: err}
	}
	if species == nil {
		return nil, &DetailError{ID: id, Err: fmt.Errorf("species for creature %d: %w", id, ErrCreatureNotFound)}
	}

	return creature.WithSpecies(species), nil
}

// Variants fetches every declared form of the catalog creature id at once and
// returns those that resolved, in declared order
func (r *Resolver) Variants(ctx context.Context, id int) (base *models.Creature, forms []*models.Creature, err error) {
	base, ok := r.catalog().Lookup(id)
	if !ok || !base.HasVarieties() {
		r.logger.Warn("No alternate forms found or species data missing", zap.Int("id", id))
		return nil, nil, ErrNoVariants
	}

	varieties := base.Species.Varieties
	results := make([]*models.Creature, len(varieties))

	var g errgroup.Group
	for i, v := range varieties {
		g.Go(func() error {
			form, err := r.source.Creature(ctx, v.Pokemon.URL)
			if err != nil {
				r.logger.Warn("Failed to fetch form", zap.String("url", v.Pokemon.URL), zap.Error(err))
				return nil
			}
			if form == nil || form.ID <= 0 {
				return nil
			}
			results[i] = form
			return nil
		})
	}
	g.Wait() //nolint:errcheck // failed forms are logged and left nil; nothing returns an error

	forms = make([]*models.Creature, 0, len(results))
	for _, f := range results {
		if f != nil {
			forms = append(forms, f)
		}
	}
	return base, forms, nil
}
