package present

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

const (
	entryLanguage   = "en"
	noEntry         = "No Pokédex entry available."
	noEnglishEntry  = "No English Pokédex entry found."
	maxStatForBar   = 255.0
	maxStatBarWidth = 100.0
)

var strictPolicy = bluemonday.StrictPolicy()

// Ability is one line of the abilities list
type Ability struct {
	Name   string `json:"name"`
	Hidden bool   `json:"hidden"`
}

// Stat is one base-stat bar
type Stat struct {
	Name  string  `json:"name"`
	Value int     `json:"value"`
	Width float64 `json:"width"`
	Color string  `json:"color"`
}

// Detail is the content of the detail overlay
type Detail struct {
	Card
	Abilities []Ability `json:"abilities"`
	Stats     []Stat    `json:"stats"`
	Entry     string    `json:"entry"`
}

// NewDetail builds the detail panel for c
func NewDetail(c *models.Creature, style catalog.SpriteStyle) Detail {
	d := Detail{
		Card:      NewCard(c, style),
		Abilities: make([]Ability, 0, len(c.Abilities)),
		Stats:     make([]Stat, 0, len(c.Stats)),
		Entry:     Entry(c.Species),
	}
	for _, a := range c.Abilities {
		d.Abilities = append(d.Abilities, Ability{Name: humanize(a.Ability.Name), Hidden: a.IsHidden})
	}
	for _, s := range c.Stats {
		d.Stats = append(d.Stats, Stat{
			Name:  humanize(s.Stat.Name),
			Value: s.BaseStat,
			Width: StatWidth(s.BaseStat),
			Color: StatColor(s.BaseStat),
		})
	}
	return d
}

// Entry returns the latest English flavor text as plain single-line text
func Entry(s *models.Species) string {
	if s == nil || len(s.FlavorTextEntries) == 0 {
		return noEntry
	}
	text, ok := s.LatestFlavorText(entryLanguage)
	if !ok {
		return noEnglishEntry
	}
	text = strings.NewReplacer("\f", " ", "\n", " ").Replace(text)
	return html.UnescapeString(strictPolicy.Sanitize(text))
}

// StatWidth is the bar fill percentage, capped at 100
func StatWidth(value int) float64 {
	return math.Min(maxStatBarWidth, float64(value)/maxStatForBar*maxStatBarWidth)
}

// StatColor buckets a base stat into the bar palette
func StatColor(value int) string {
	switch {
	case value < 60:
		return "#8bac0f"
	case value < 100:
		return "#9bbc0f"
	case value < 130:
		return "#cadc9f"
	}
	return "#c0c0c0"
}

// humanize replaces the first hyphen, e.g. "special-attack" -> "special attack"
func humanize(name string) string {
	return strings.Replace(name, "-", " ", 1)
}

// Markdown renders the detail panel for terminal display
func Markdown(d Detail) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s (%s)\n\n", d.Name, d.Number)
	fmt.Fprintf(&sb, "**Types:** %s\n\n", strings.Join(d.Types, " · "))

	sb.WriteString("## Abilities\n\n")
	for _, a := range d.Abilities {
		if a.Hidden {
			fmt.Fprintf(&sb, "- *%s (Hidden)*\n", a.Name)
			continue
		}
		fmt.Fprintf(&sb, "- %s\n", a.Name)
	}

	sb.WriteString("\n## Base Stats\n\n")
	sb.WriteString("| Stat | Value | |\n|---|---:|---|\n")
	for _, s := range d.Stats {
		fmt.Fprintf(&sb, "| %s | %d | %s |\n", s.Name, s.Value, bar(s.Width, 20))
	}

	sb.WriteString("\n## Pokédex Entry\n\n")
	sb.WriteString(d.Entry)
	sb.WriteString("\n")
	return sb.String()
}

func bar(width float64, cells int) string {
	filled := int(math.Round(width / maxStatBarWidth * float64(cells)))
	return strings.Repeat("█", filled) + strings.Repeat("░", cells-filled)
}
