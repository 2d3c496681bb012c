package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/meur/pokedex/internal/present"
)

const (
	cardWidth  = 20
	cardOuter  = cardWidth + 2
	cardHeight = 5
)

// Columns is how many cards fit on one row of a terminal width
func Columns(width int) int {
	if width <= 0 {
		return 1
	}
	return max(1, width/cardOuter)
}

// RenderCard draws one grid tile
func (s Styles) RenderCard(c present.Card, selected bool) string {
	var sb strings.Builder
	sb.WriteString(s.Muted.Render(c.Number))
	if c.HasForms {
		sb.WriteString(" " + s.Title.Render("◆"))
	}
	sb.WriteString("\n")
	sb.WriteString(s.Title.Render(truncate(c.Name, cardWidth-2)))
	sb.WriteString("\n")

	badges := make([]string, 0, len(c.Types))
	for _, t := range c.Types {
		badges = append(badges, s.TypeBadge(t))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, badges...))

	style := s.Card
	if selected {
		style = s.Selected
	}
	if c.PrimaryType != "" && !selected {
		style = style.BorderForeground(TypeColor(c.PrimaryType))
	}
	return style.Height(cardHeight - 2).Render(sb.String())
}

// RenderGrid lays cards out in rows; selected < 0 highlights nothing
func (s Styles) RenderGrid(cards []present.Card, width, selected int) string {
	cols := Columns(width)
	rows := make([]string, 0, len(cards)/cols+1)
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		tiles := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			tiles = append(tiles, s.RenderCard(cards[i], i == selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderForms draws the forms overlay content; selected < 0 highlights nothing
func (s Styles) RenderForms(title string, forms []present.FormCard, selected int) string {
	var sb strings.Builder
	sb.WriteString(s.Title.Render(title))
	sb.WriteString("\n\n")
	for i, f := range forms {
		marker := "  "
		label := f.Label
		if i == selected {
			marker = s.Title.Render("▸ ")
			label = s.Title.Render(label)
		}
		fmt.Fprintf(&sb, "%s%s  %s %s\n", marker, s.Muted.Render(present.Number(f.ID)), label, s.Muted.Render("("+f.Name+")"))
	}
	return sb.String()
}

// MarkdownRenderer turns the detail panel into terminal text
type MarkdownRenderer struct {
	term *glamour.TermRenderer
}

// NewMarkdownRenderer builds a glamour renderer with the given standard
// style ("dark", "light", "notty"...). A nil term means plain output
func NewMarkdownRenderer(style string, width int) *MarkdownRenderer {
	term, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return &MarkdownRenderer{}
	}
	return &MarkdownRenderer{term: term}
}

// Render formats d, falling back to the raw markdown
func (r *MarkdownRenderer) Render(d present.Detail) string {
	md := present.Markdown(d)
	if r == nil || r.term == nil {
		return md
	}
	out, err := r.term.Render(md)
	if err != nil {
		return md
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
