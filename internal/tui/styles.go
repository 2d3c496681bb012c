// Package tui is the interactive terminal browser for the catalog
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Handheld palette, darkest to lightest
var (
	Darkest  = lipgloss.Color("#0f380f")
	Dark     = lipgloss.Color("#306230")
	Light    = lipgloss.Color("#8bac0f")
	Lightest = lipgloss.Color("#9bbc0f")
	Muted    = lipgloss.Color("#6b7b6b")
	Danger   = lipgloss.Color("#c0392b")
)

// typeColors follows the usual in-game type palette
var typeColors = map[string]lipgloss.Color{
	"normal":   "#a8a878",
	"fire":     "#f08030",
	"water":    "#6890f0",
	"electric": "#f8d030",
	"grass":    "#78c850",
	"ice":      "#98d8d8",
	"fighting": "#c03028",
	"poison":   "#a040a0",
	"ground":   "#e0c068",
	"flying":   "#a890f0",
	"psychic":  "#f85888",
	"bug":      "#a8b820",
	"rock":     "#b8a038",
	"ghost":    "#705898",
	"dragon":   "#7038f8",
	"dark":     "#705848",
	"steel":    "#b8b8d0",
	"fairy":    "#ee99ac",
}

// TypeColor returns the badge color of a type, or the muted color when unknown
func TypeColor(name string) lipgloss.Color {
	if c, ok := typeColors[name]; ok {
		return c
	}
	return Muted
}

// Styles holds all the styled components
type Styles struct {
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Card     lipgloss.Style
	Selected lipgloss.Style
	Overlay  lipgloss.Style
	Filter   lipgloss.Style
	Spinner  lipgloss.Style
	Badge    lipgloss.Style
}

// DefaultStyles returns the handheld look
func DefaultStyles() Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Dark).
		Padding(0, 1).
		Width(cardWidth)

	return Styles{
		Header: lipgloss.NewStyle().
			Background(Darkest).
			Foreground(Lightest).
			Padding(0, 2).
			Bold(true),
		Footer: lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(Dark).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(Muted),
		Error: lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true),
		Card:     card,
		Selected: card.BorderForeground(Light).BorderStyle(lipgloss.ThickBorder()),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Light).
			Padding(0, 1),
		Filter: lipgloss.NewStyle().
			Foreground(Darkest).
			Background(Lightest).
			Padding(0, 1),
		Spinner: lipgloss.NewStyle().
			Foreground(Light),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1),
	}
}

// TypeBadge renders a type name on its color
func (s Styles) TypeBadge(name string) string {
	return s.Badge.Background(TypeColor(name)).Render(name)
}
