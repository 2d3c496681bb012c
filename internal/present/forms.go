package present

import (
	"strconv"
	"strings"

	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormCard is one tile of the forms overlay
type FormCard struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	ImageURL    string `json:"image_url"`
	FallbackURL string `json:"fallback_url"`
}

// FormLabel derives the caption of a form relative to its base creature
func FormLabel(baseName string, form *models.Creature) string {
	if form.IsDefault {
		return "Default"
	}
	label := strings.Replace(form.Name, baseName+"-", "", 1)
	return strings.Replace(label, "-", " ", 1)
}

// FormCards maps the resolved forms of base
func FormCards(base *models.Creature, forms []*models.Creature, style catalog.SpriteStyle) []FormCard {
	out := make([]FormCard, 0, len(forms))
	for _, f := range forms {
		card := NewCard(f, style)
		out = append(out, FormCard{
			ID:          f.ID,
			Name:        f.Name,
			Label:       FormLabel(base.Name, f),
			ImageURL:    card.ImageURL,
			FallbackURL: card.FallbackURL,
		})
	}
	return out
}

// FormsTitle is the heading of the forms overlay
func FormsTitle(base *models.Creature) string {
	return "Forms of " + base.Name
}

// Option is one entry of a selection control
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// TypeOptions labels the type facet, e.g. "fire" -> "Fire"
func TypeOptions(types []string) []Option {
	// Casers keep state, so each call gets its own
	titleCaser := cases.Title(language.English)
	out := make([]Option, 0, len(types))
	for _, t := range types {
		out = append(out, Option{Value: t, Label: titleCaser.String(t)})
	}
	return out
}

// GenerationOptions labels the static generation table
func GenerationOptions(gens []models.Generation) []Option {
	out := make([]Option, 0, len(gens))
	for _, g := range gens {
		n := strconv.Itoa(g.Number)
		out = append(out, Option{Value: n, Label: "Gen " + n})
	}
	return out
}
