// Package catalog aggregates upstream creature data into an immutable
// in-memory collection and implements the browsing operations over it:
// filtering, random sampling, detail and variant resolution
package catalog

import (
	"context"

	"github.com/meur/pokedex/internal/models"
)

// Source is the upstream the catalog is built from. *pokeapi.Client implements it
type Source interface {
	ListCreatures(ctx context.Context, limit int) (*models.ResourceList, error)
	Creature(ctx context.Context, url string) (*models.Creature, error)
	CreatureByID(ctx context.Context, id int) (*models.Creature, error)
	Species(ctx context.Context, url string) (*models.Species, error)
}

// Catalog is a loaded collection. It is never mutated after construction
type Catalog struct {
	records []*models.Creature
	byID    map[int]*models.Creature
	facets  models.Facets
}

// New builds a catalog from records in the given order. Records sharing an
// identifier with an earlier record are dropped; the dropped IDs are returned
func New(records []*models.Creature) (*Catalog, []int) {
	c := &Catalog{
		records: make([]*models.Creature, 0, len(records)),
		byID:    make(map[int]*models.Creature, len(records)),
	}

	var dupes []int
	for _, r := range records {
		if r == nil {
			continue
		}
		if _, exists := c.byID[r.ID]; exists {
			dupes = append(dupes, r.ID)
			continue
		}
		c.byID[r.ID] = r
		c.records = append(c.records, r)
	}
	c.facets = models.DeriveFacets(c.records)
	return c, dupes
}

// Records returns the collection in load order. Callers must not modify the
// creatures; the slice itself is a copy
func (c *Catalog) Records() []*models.Creature {
	if c == nil {
		return nil
	}
	out := make([]*models.Creature, len(c.records))
	copy(out, c.records)
	return out
}

// Lookup finds a creature by identifier
func (c *Catalog) Lookup(id int) (*models.Creature, bool) {
	if c == nil {
		return nil, false
	}
	r, ok := c.byID[id]
	return r, ok
}

// Facets returns the type and generation facets of the collection
func (c *Catalog) Facets() models.Facets {
	if c == nil {
		return models.DeriveFacets(nil)
	}
	return c.facets
}

// Len is the number of creatures
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}
