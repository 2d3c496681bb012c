package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/models"
)

// catalogLoadedMsg ends a bulk load
type catalogLoadedMsg struct {
	err error
}

// detailMsg answers the detail request numbered seq
type detailMsg struct {
	seq      int
	creature *models.Creature
	err      error
}

// formsMsg answers the forms request numbered seq
type formsMsg struct {
	seq   int
	base  *models.Creature
	forms []*models.Creature
	err   error
}

func loadCatalog(ctx context.Context, ctrl *catalog.Controller) tea.Cmd {
	return func() tea.Msg {
		return catalogLoadedMsg{err: ctrl.Reload(ctx)}
	}
}

func fetchDetail(ctx context.Context, r *catalog.Resolver, seq, id int) tea.Cmd {
	return func() tea.Msg {
		c, err := r.Detail(ctx, id)
		return detailMsg{seq: seq, creature: c, err: err}
	}
}

func fetchForms(ctx context.Context, r *catalog.Resolver, seq, id int) tea.Cmd {
	return func() tea.Msg {
		base, forms, err := r.Variants(ctx, id)
		return formsMsg{seq: seq, base: base, forms: forms, err: err}
	}
}
