package models

import (
	"errors"
	"fmt"
)

// NamedRef is the upstream {name, url} pair used for every cross-resource link
type NamedRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ResourceList is a page of the upstream list endpoint
type ResourceList struct {
	Count    int        `json:"count"`
	Next     *string    `json:"next"`
	Previous *string    `json:"previous"`
	Results  []NamedRef `json:"results"`
}

// TypeSlot is one entry of a creature's ordered type list
type TypeSlot struct {
	Slot int      `json:"slot"`
	Type NamedRef `json:"type"`
}

// StatSlot is one named numeric attribute
type StatSlot struct {
	BaseStat int      `json:"base_stat"`
	Effort   int      `json:"effort"`
	Stat     NamedRef `json:"stat"`
}

// AbilitySlot is a named ability, flagged when it is a hidden ability
type AbilitySlot struct {
	Ability  NamedRef `json:"ability"`
	IsHidden bool     `json:"is_hidden"`
	Slot     int      `json:"slot"`
}

// Creature is a single catalog entry: the upstream detail payload with its
// species metadata attached once aggregation succeeds
type Creature struct {
	ID         int           `json:"id"`
	Name       string        `json:"name"`
	IsDefault  bool          `json:"is_default"`
	Types      []TypeSlot    `json:"types"`
	Stats      []StatSlot    `json:"stats"`
	Abilities  []AbilitySlot `json:"abilities"`
	Sprites    Sprites       `json:"sprites"`
	SpeciesRef NamedRef      `json:"species"`
	Species    *Species      `json:"species_data,omitempty"`
}

// Validation errors for creatures that must not enter the catalog
var (
	ErrMissingID      = errors.New("creature has no id")
	ErrMissingName    = errors.New("creature has no name")
	ErrMissingTypes   = errors.New("creature has no types")
	ErrMissingSpecies = errors.New("creature has no species reference")
)

// Validate checks the fields required before a creature can be merged.
// Species data itself is checked separately by the aggregator
func (c *Creature) Validate() error {
	switch {
	case c == nil || c.ID <= 0:
		return ErrMissingID
	case c.Name == "":
		return fmt.Errorf("creature %d: %w", c.ID, ErrMissingName)
	case len(c.Types) == 0:
		return fmt.Errorf("creature %d: %w", c.ID, ErrMissingTypes)
	case c.SpeciesRef.URL == "":
		return fmt.Errorf("creature %d: %w", c.ID, ErrMissingSpecies)
	}
	return nil
}

// TypeNames returns the category tags in slot order
func (c *Creature) TypeNames() []string {
	names := make([]string, 0, len(c.Types))
	for _, t := range c.Types {
		names = append(names, t.Type.Name)
	}
	return names
}

// HasType reports whether tag is one of the creature's types
func (c *Creature) HasType(tag string) bool {
	for _, t := range c.Types {
		if t.Type.Name == tag {
			return true
		}
	}
	return false
}

// PrimaryType returns the first type tag, or "" when there is none
func (c *Creature) PrimaryType() string {
	if len(c.Types) == 0 {
		return ""
	}
	return c.Types[0].Type.Name
}

// HasVarieties reports whether the species declares alternate forms
func (c *Creature) HasVarieties() bool {
	return c.Species != nil && len(c.Species.Varieties) > 1
}

// WithSpecies returns a copy of c with species metadata attached
func (c *Creature) WithSpecies(s *Species) *Creature {
	merged := *c
	merged.Species = s
	return &merged
}
