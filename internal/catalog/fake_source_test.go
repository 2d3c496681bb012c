package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/meur/pokedex/internal/models"
)

var errUpstream = errors.New("upstream unavailable")

// fakeSource serves creatures and species from maps keyed by URL
type fakeSource struct {
	mu sync.Mutex

	list    *models.ResourceList
	listErr error

	creatures map[string]*models.Creature
	species   map[string]*models.Species
	failing   map[string]bool

	calls map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		list:      &models.ResourceList{},
		creatures: map[string]*models.Creature{},
		species:   map[string]*models.Species{},
		failing:   map[string]bool{},
		calls:     map[string]int{},
	}
}

func creatureURL(id int) string { return fmt.Sprintf("fake://pokemon/%d", id) }
func speciesURL(id int) string  { return fmt.Sprintf("fake://pokemon-species/%d", id) }

// add registers a listed creature with matching species data
func (f *fakeSource) add(id int, name string, types ...string) *models.Creature {
	c := &models.Creature{
		ID:         id,
		Name:       name,
		IsDefault:  true,
		SpeciesRef: models.NamedRef{Name: name, URL: speciesURL(id)},
	}
	for i, t := range types {
		c.Types = append(c.Types, models.TypeSlot{Slot: i + 1, Type: models.NamedRef{Name: t}})
	}
	f.creatures[creatureURL(id)] = c
	f.species[speciesURL(id)] = &models.Species{ID: id, Name: name}
	f.list.Results = append(f.list.Results, models.NamedRef{Name: name, URL: creatureURL(id)})
	f.list.Count = len(f.list.Results)
	return c
}

func (f *fakeSource) record(key string) {
	f.mu.Lock()
	f.calls[key]++
	f.mu.Unlock()
}

func (f *fakeSource) callCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeSource) ListCreatures(ctx context.Context, limit int) (*models.ResourceList, error) {
	f.record("list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

func (f *fakeSource) Creature(ctx context.Context, url string) (*models.Creature, error) {
	f.record(url)
	if f.failing[url] {
		return nil, errUpstream
	}
	c, ok := f.creatures[url]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeSource) CreatureByID(ctx context.Context, id int) (*models.Creature, error) {
	return f.Creature(ctx, creatureURL(id))
}

func (f *fakeSource) Species(ctx context.Context, url string) (*models.Species, error) {
	f.record(url)
	if f.failing[url] {
		return nil, errUpstream
	}
	s, ok := f.species[url]
	if !ok {
		return nil, nil
	}
	return s, nil
}
