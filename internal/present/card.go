// Package present maps catalog records to the view-models shown by the HTTP
// and terminal surfaces: cards, the detail panel and form cards
package present

import (
	"fmt"

	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/models"
)

// User-visible messages shared by every surface
const (
	MsgLoading           = "Loading Pokémon data (this might take a minute)..."
	MsgNoResults         = "No Pokémon found matching your criteria."
	MsgNoRecommendations = "No recommendations available."
	MsgDetailFailed      = "Could not load details for this Pokémon."
	MsgFormsFailed       = "Could not load alternate forms."
	MsgFormsError        = "Error loading forms."
)

// Card is one tile of the grid
type Card struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Number      string   `json:"number"`
	ImageURL    string   `json:"image_url"`
	FallbackURL string   `json:"fallback_url"`
	PrimaryType string   `json:"primary_type"`
	Types       []string `json:"types"`
	HasForms    bool     `json:"has_forms"`
}

// Number formats an identifier the way cards show it, e.g. #007
func Number(id int) string {
	return fmt.Sprintf("#%03d", id)
}

// SpriteURL picks the image for style, walking its fallback chain
func SpriteURL(c *models.Creature, style catalog.SpriteStyle) string {
	return c.Sprites.First(style.Order()...)
}

// NewCard builds the card for c
func NewCard(c *models.Creature, style catalog.SpriteStyle) Card {
	fallback := c.Sprites.URL(models.SpriteDefault)
	image := SpriteURL(c, style)
	if image == "" {
		image = fallback
	}
	return Card{
		ID:          c.ID,
		Name:        c.Name,
		Number:      Number(c.ID),
		ImageURL:    image,
		FallbackURL: fallback,
		PrimaryType: c.PrimaryType(),
		Types:       c.TypeNames(),
		HasForms:    c.HasVarieties(),
	}
}

// Cards maps a list of creatures
func Cards(cs []*models.Creature, style catalog.SpriteStyle) []Card {
	out := make([]Card, 0, len(cs))
	for _, c := range cs {
		if c != nil {
			out = append(out, NewCard(c, style))
		}
	}
	return out
}
