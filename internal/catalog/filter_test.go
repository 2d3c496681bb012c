package catalog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/meur/pokedex/internal/models"
	"github.com/stretchr/testify/assert"
)

func creature(id int, name string, types ...string) *models.Creature {
	c := &models.Creature{ID: id, Name: name}
	for i, t := range types {
		c.Types = append(c.Types, models.TypeSlot{Slot: i + 1, Type: models.NamedRef{Name: t}})
	}
	return c
}

func sampleRecords() []*models.Creature {
	return []*models.Creature{
		creature(1, "bulbasaur", "grass", "poison"),
		creature(4, "charmander", "fire"),
		creature(25, "pikachu", "electric"),
		creature(151, "mew", "psychic"),
		creature(152, "chikorita", "grass"),
		creature(251, "celebi", "psychic", "grass"),
		creature(252, "treecko", "grass"),
		creature(906, "sprigatito", "grass"),
		creature(1025, "pecharunt", "poison", "ghost"),
	}
}

func ids(records []*models.Creature) []int {
	out := make([]int, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name  string
		query Query
		want  []int
	}{
		{name: "empty query matches all", query: Query{}, want: ids(records)},
		{name: "text is case-insensitive substring", query: Query{Text: "CHAR"}, want: []int{4}},
		{name: "text matches inside name", query: Query{Text: "ce"}, want: []int{251}},
		{name: "type is exact", query: Query{Type: "grass"}, want: []int{1, 152, 251, 252, 906}},
		{name: "type does not substring match", query: Query{Type: "gras"}, want: []int{}},
		{name: "generation one", query: Query{Generation: 1}, want: []int{1, 4, 25, 151}},
		{name: "generation two", query: Query{Generation: 2}, want: []int{152, 251}},
		{name: "generation nine upper bound", query: Query{Generation: 9}, want: []int{906, 1025}},
		{name: "all predicates", query: Query{Text: "i", Type: "grass", Generation: 2}, want: []int{152, 251}},
		{name: "unknown generation matches nothing", query: Query{Generation: 42}, want: []int{}},
		{name: "no match", query: Query{Text: "zz"}, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(records, tt.query))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterGenerationBoundaries(t *testing.T) {
	for _, g := range models.Generations() {
		records := []*models.Creature{
			creature(g.Min-1, "below", "normal"),
			creature(g.Min, "lower", "normal"),
			creature(g.Max, "upper", "normal"),
			creature(g.Max+1, "above", "normal"),
		}
		got := ids(Filter(records, Query{Generation: g.Number}))
		assert.Equal(t, []int{g.Min, g.Max}, got, "generation %d", g.Number)
	}
}

// Every result satisfies each predicate on its own, results keep input order,
// and repeated calls agree.
func TestFilterProperties(t *testing.T) {
	records := sampleRecords()
	texts := []string{"", "a", "CH", "mew", "x"}
	types := []string{"", "grass", "poison", "psychic", "dragon"}
	gens := []int{0, 1, 2, 3, 9}

	for _, text := range texts {
		for _, typ := range types {
			for _, gen := range gens {
				q := Query{Text: text, Type: typ, Generation: gen}
				t.Run(fmt.Sprintf("%q/%q/%d", text, typ, gen), func(t *testing.T) {
					got := Filter(records, q)

					last := -1
					for _, r := range got {
						pos := indexOf(records, r)
						assert.Greater(t, pos, last, "order preserved")
						last = pos

						assert.True(t, strings.Contains(strings.ToLower(r.Name), strings.ToLower(text)))
						if typ != "" {
							assert.True(t, r.HasType(typ))
						}
						if gen != 0 {
							g, _ := models.GenerationByNumber(gen)
							assert.True(t, g.Contains(r.ID))
						}
					}

					assert.Equal(t, ids(got), ids(Filter(records, q)), "idempotent")
				})
			}
		}
	}
}

func indexOf(records []*models.Creature, target *models.Creature) int {
	for i, r := range records {
		if r == target {
			return i
		}
	}
	return -1
}

func TestQueryActive(t *testing.T) {
	assert.False(t, Query{}.Active())
	assert.True(t, Query{Text: "a"}.Active())
	assert.True(t, Query{Type: "fire"}.Active())
	assert.True(t, Query{Generation: 3}.Active())
}
