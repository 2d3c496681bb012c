package catalog

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/meur/pokedex/internal/models"
)

// Sampler draws uniform random subsets. Safe for concurrent use
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler seeds from the clock
func NewSampler() *Sampler {
	now := uint64(time.Now().UnixNano())
	return NewSeededSampler(now, now>>32)
}

// NewSeededSampler gives a reproducible sequence
func NewSeededSampler(seed1, seed2 uint64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// Take returns min(n, len(records)) distinct records chosen uniformly at
// random. The input slice is not reordered
func (s *Sampler) Take(records []*models.Creature, n int) []*models.Creature {
	if n > len(records) {
		n = len(records)
	}
	if n <= 0 {
		return []*models.Creature{}
	}

	pool := make([]*models.Creature, len(records))
	copy(pool, records)

	s.mu.Lock()
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	s.mu.Unlock()

	return pool[:n]
}

// Initial picks the first-load display set: a random sample of the creatures
// with an animated sprite, or of the whole collection when none has one
func (s *Sampler) Initial(records []*models.Creature, n int) []*models.Creature {
	animated := make([]*models.Creature, 0, len(records))
	for _, r := range records {
		if r != nil && r.Sprites.HasAnimated() {
			animated = append(animated, r)
		}
	}
	if len(animated) > 0 {
		return s.Take(animated, n)
	}
	return s.Take(records, n)
}

// Recommend draws n distinct creatures from the whole collection
func (s *Sampler) Recommend(records []*models.Creature, n int) []*models.Creature {
	return s.Take(records, n)
}
