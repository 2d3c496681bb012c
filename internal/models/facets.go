package models

import "sort"

// Generation is a static, inclusive identifier range grouping a release cohort
type Generation struct {
	Number int `json:"number"`
	Min    int `json:"min"`
	Max    int `json:"max"`
}

// Contains reports whether id falls inside the range, bounds included
func (g Generation) Contains(id int) bool {
	return id >= g.Min && id <= g.Max
}

var generations = []Generation{
	{Number: 1, Min: 1, Max: 151},
	{Number: 2, Min: 152, Max: 251},
	{Number: 3, Min: 252, Max: 386},
	{Number: 4, Min: 387, Max: 493},
	{Number: 5, Min: 494, Max: 649},
	{Number: 6, Min: 650, Max: 721},
	{Number: 7, Min: 722, Max: 809},
	{Number: 8, Min: 810, Max: 905},
	{Number: 9, Min: 906, Max: 1025},
}

// Generations returns the fixed generation table in order
func Generations() []Generation {
	out := make([]Generation, len(generations))
	copy(out, generations)
	return out
}

// GenerationByNumber looks up a generation by its number
func GenerationByNumber(n int) (Generation, bool) {
	for _, g := range generations {
		if g.Number == n {
			return g, true
		}
	}
	return Generation{}, false
}

// Facets are the filterable attributes derived from a loaded collection
type Facets struct {
	Types       []string     `json:"types"`
	Generations []Generation `json:"generations"`
}

// DeriveFacets collects the distinct type tags across creatures, sorted
func DeriveFacets(creatures []*Creature) Facets {
	seen := make(map[string]struct{})
	for _, c := range creatures {
		for _, t := range c.Types {
			seen[t.Type.Name] = struct{}{}
		}
	}

	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)

	return Facets{
		Types:       types,
		Generations: Generations(),
	}
}
