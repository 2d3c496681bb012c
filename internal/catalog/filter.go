package catalog

import (
	"strings"

	"github.com/meur/pokedex/internal/models"
)

// Query is the combined search and filter input. Zero values match everything
type Query struct {
	Text       string `json:"q"`
	Type       string `json:"type"`
	Generation int    `json:"gen"`
}

// Active reports whether any search or filter input is set
func (q Query) Active() bool {
	return q.Text != "" || q.Type != "" || q.Generation != 0
}

// Filter returns the records matching all of q's predicates, in input order.
// A generation number outside the static table matches nothing
func Filter(records []*models.Creature, q Query) []*models.Creature {
	text := strings.ToLower(q.Text)

	var gen models.Generation
	if q.Generation != 0 {
		var ok bool
		if gen, ok = models.GenerationByNumber(q.Generation); !ok {
			return []*models.Creature{}
		}
	}

	out := make([]*models.Creature, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		if q.Generation != 0 && !gen.Contains(r.ID) {
			continue
		}
		if text != "" && !strings.Contains(strings.ToLower(r.Name), text) {
			continue
		}
		if q.Type != "" && !r.HasType(q.Type) {
			continue
		}
		out = append(out, r)
	}
	return out
}
