package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meur/pokedex/internal/logging"
	"github.com/meur/pokedex/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrListUnavailable means the bulk load could not get the entity list
var ErrListUnavailable = errors.New("creature list unavailable")

// Aggregator performs the bulk load
type Aggregator struct {
	source Source
	logger *zap.Logger
}

// NewAggregator creates an aggregator over source
func NewAggregator(source Source, logger *zap.Logger) *Aggregator {
	return &Aggregator{source: source, logger: logging.OrNop(logger)}
}

// Load fetches the list, then detail and species for every entry with all
// requests in flight at once, and returns the catalog of the entries that
// resolved completely. Only a list failure is fatal
func (a *Aggregator) Load(ctx context.Context, limit int) (*Catalog, error) {
	start := time.Now()
	a.logger.Info("Fetching creature data", zap.Int("limit", limit))

	list, err := a.source.ListCreatures(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListUnavailable, err)
	}
	if list == nil {
		return nil, ErrListUnavailable
	}

	results := make([]*models.Creature, len(list.Results))
	var g errgroup.Group
	for i, ref := range list.Results {
		g.Go(func() error {
			results[i] = a.loadOne(ctx, ref)
			return nil
		})
	}
	g.Wait() //nolint:errcheck // failures are absorbed per entity by loadOne; nothing returns an error

	cat, dupes := New(results)
	for _, id := range dupes {
		a.logger.Warn("Skipping creature: duplicate identifier", zap.Int("id", id))
	}

	a.logger.Info("Fetched creatures with species data",
		zap.Int("listed", len(list.Results)),
		zap.Int("loaded", cat.Len()),
		zap.Duration("elapsed", time.Since(start)))
	return cat, nil
}

// loadOne returns nil when the entity must be left out
func (a *Aggregator) loadOne(ctx context.Context, ref models.NamedRef) *models.Creature {
	creature, err := a.source.Creature(ctx, ref.URL)
	if err != nil || creature == nil {
		a.logger.Warn("Skipping creature: failed to fetch details",
			zap.String("name", ref.Name), zap.Error(err))
		return nil
	}
	if err := creature.Validate(); err != nil {
		a.logger.Warn("Skipping creature: incomplete details",
			zap.String("name", ref.Name), zap.Error(err))
		return nil
	}

	species, err := a.source.Species(ctx, creature.SpeciesRef.URL)
	if err != nil || species == nil {
		a.logger.Warn("Skipping creature: failed to fetch species data",
			zap.String("name", creature.Name), zap.Error(err))
		return nil
	}

	return creature.WithSpecies(species)
}
