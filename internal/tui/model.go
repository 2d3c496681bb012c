package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/models"
	"github.com/meur/pokedex/internal/present"
)

type mode int

const (
	modeGrid mode = iota
	modeSearch
	modeDetail
	modeForms
)

// Config wires the browser to the catalog
type Config struct {
	Controller    *catalog.Controller
	Resolver      *catalog.Resolver
	Sampler       *catalog.Sampler
	Session       catalog.SessionOptions
	MarkdownStyle string
}

// Model is the bubbletea model of the browser
type Model struct {
	ctx      context.Context
	ctrl     *catalog.Controller
	resolver *catalog.Resolver
	sampler  *catalog.Sampler
	opts     catalog.SessionOptions

	state   catalog.LoadState
	session *catalog.Session
	view    catalog.View
	facets  models.Facets
	typeIdx int
	genIdx  int

	mode   mode
	cursor int
	// seq numbers overlay requests; responses carrying an older number are dropped
	seq    int
	detail *models.Creature
	notice string

	formsTitle string
	forms      []present.FormCard
	formCursor int

	search   textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	styles   Styles
	markdown *MarkdownRenderer
	mdStyle  string

	width  int
	height int
}

// New creates the browser. ctx bounds every upstream request it makes
func New(ctx context.Context, cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Search by name..."
	ti.Prompt = "/ "
	ti.CharLimit = 40

	styles := DefaultStyles()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	if cfg.MarkdownStyle == "" {
		cfg.MarkdownStyle = "dark"
	}

	return Model{
		ctx:      ctx,
		ctrl:     cfg.Controller,
		resolver: cfg.Resolver,
		sampler:  cfg.Sampler,
		opts:     cfg.Session,
		state:    catalog.StateLoading,
		search:   ti,
		spinner:  sp,
		viewport: viewport.New(80, 20),
		help:     help.New(),
		keys:     defaultKeyMap(),
		styles:   styles,
		markdown: NewMarkdownRenderer(cfg.MarkdownStyle, 76),
		mdStyle:  cfg.MarkdownStyle,
		width:    80,
		height:   24,
	}
}

// Init starts the bulk load
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadCatalog(m.ctx, m.ctrl))
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = max(20, msg.Width-4)
		m.viewport.Height = max(5, msg.Height-6)
		m.search.Width = max(10, msg.Width/3)
		m.markdown = NewMarkdownRenderer(m.mdStyle, max(20, msg.Width-8))
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.state != catalog.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case catalogLoadedMsg:
		return m.handleLoaded(msg), nil

	case detailMsg:
		return m.handleDetail(msg)

	case formsMsg:
		return m.handleForms(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == modeDetail || m.mode == modeForms {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleLoaded(msg catalogLoadedMsg) Model {
	if msg.err != nil {
		m.state = catalog.StateFailed
		return m
	}

	cat := m.ctrl.Current()
	m.state = catalog.StateReady
	m.facets = cat.Facets()
	m.session = catalog.NewSession(cat, m.sampler, m.opts)
	m.typeIdx, m.genIdx = 0, 0
	m.search.SetValue("")
	m.refresh()
	return m
}

func (m Model) handleDetail(msg detailMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq || m.mode != modeDetail {
		return m, nil
	}
	if msg.err != nil {
		m.viewport.SetContent(m.styles.Error.Render(present.MsgDetailFailed))
		return m, nil
	}
	m.detail = msg.creature
	d := present.NewDetail(msg.creature, m.view.SpriteStyle)
	m.viewport.SetContent(m.markdown.Render(d))
	m.viewport.GotoTop()
	return m, nil
}

func (m Model) handleForms(msg formsMsg) Model {
	if msg.seq != m.seq || m.mode != modeForms {
		return m
	}
	switch {
	case errors.Is(msg.err, catalog.ErrNoVariants):
		m.mode = modeGrid
		m.notice = "No alternate forms found."
		return m
	case msg.err != nil:
		m.viewport.SetContent(m.styles.Error.Render(present.MsgFormsError))
		return m
	}

	cards := present.FormCards(msg.base, msg.forms, m.view.SpriteStyle)
	if len(cards) == 0 {
		m.viewport.SetContent(m.styles.Title.Render(present.FormsTitle(msg.base)) + "\n\n" + m.styles.Error.Render(present.MsgFormsFailed))
		return m
	}
	m.formsTitle = present.FormsTitle(msg.base)
	m.forms = cards
	m.formCursor = 0
	m.renderForms()
	m.viewport.GotoTop()
	return m
}

func (m *Model) renderForms() {
	m.viewport.SetContent(m.styles.RenderForms(m.formsTitle, m.forms, m.formCursor))
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeDetail, modeForms:
		return m.handleOverlayKey(msg)
	}

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.state == catalog.StateFailed && key.Matches(msg, m.keys.Retry) {
		m.state = catalog.StateLoading
		return m, tea.Batch(m.spinner.Tick, loadCatalog(m.ctx, m.ctrl))
	}
	if m.state != catalog.StateReady {
		return m, nil
	}

	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Type):
		m.typeIdx = (m.typeIdx + 1) % (len(m.facets.Types) + 1)
		m.applyQuery()
	case key.Matches(msg, m.keys.Gen):
		m.genIdx = (m.genIdx + 1) % (len(m.facets.Generations) + 1)
		m.applyQuery()
	case key.Matches(msg, m.keys.Sprites):
		m.toggleSprites()
	case key.Matches(msg, m.keys.Up):
		m.move(-Columns(m.width))
	case key.Matches(msg, m.keys.Down):
		m.move(Columns(m.width))
	case key.Matches(msg, m.keys.Left):
		m.move(-1)
	case key.Matches(msg, m.keys.Right):
		m.move(1)
	case key.Matches(msg, m.keys.Open):
		if c, ok := m.selected(); ok {
			return m.openDetail(c.ID)
		}
	case key.Matches(msg, m.keys.Forms):
		if c, ok := m.selected(); ok && c.HasForms {
			return m.openForms(c.ID)
		}
	case key.Matches(msg, m.keys.Back):
		if m.view.Query.Active() {
			m.search.SetValue("")
			m.typeIdx, m.genIdx = 0, 0
			m.applyQuery()
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.mode = modeGrid
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.applyQuery()
	}
	return m, cmd
}

func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.closeOverlay()
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case m.mode == modeDetail && key.Matches(msg, m.keys.Forms):
		if m.detail != nil && m.detail.HasVarieties() {
			return m.openForms(m.detail.ID)
		}
		return m, nil
	case m.mode == modeForms && len(m.forms) > 0:
		return m.handleFormsKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleFormsKey moves over the form cards; enter opens the selected form
func (m Model) handleFormsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up, m.keys.Left):
		m.formCursor = max(m.formCursor-1, 0)
	case key.Matches(msg, m.keys.Down, m.keys.Right):
		m.formCursor = min(m.formCursor+1, len(m.forms)-1)
	case key.Matches(msg, m.keys.Open):
		return m.openDetail(m.forms[m.formCursor].ID)
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	m.renderForms()
	return m, nil
}

func (m Model) openDetail(id int) (tea.Model, tea.Cmd) {
	m.seq++
	m.mode = modeDetail
	m.detail = nil
	m.forms, m.formCursor = nil, 0
	m.viewport.SetContent(m.spinner.View() + " Loading details...")
	return m, fetchDetail(m.ctx, m.resolver, m.seq, id)
}

func (m Model) openForms(id int) (tea.Model, tea.Cmd) {
	m.seq++
	m.mode = modeForms
	m.forms, m.formCursor = nil, 0
	m.viewport.SetContent(m.spinner.View() + " Loading forms...")
	return m, fetchForms(m.ctx, m.resolver, m.seq, id)
}

func (m *Model) closeOverlay() {
	m.seq++
	m.mode = modeGrid
	m.detail = nil
	m.forms, m.formCursor = nil, 0
	m.viewport.SetContent("")
}

func (m *Model) applyQuery() {
	m.session.SetQuery(m.query())
	m.refresh()
}

func (m *Model) toggleSprites() {
	style := catalog.SpriteStatic3D
	if m.session.SpriteStyle() == catalog.SpriteStatic3D {
		style = catalog.SpriteAnimated2D
	}
	m.session.SetSpriteStyle(style)
	m.view.SpriteStyle = style
}

// refresh recomputes the view; recommendations are drawn here and nowhere else
func (m *Model) refresh() {
	m.view = m.session.View()
	m.cursor = 0
}

func (m Model) query() catalog.Query {
	q := catalog.Query{Text: m.search.Value()}
	if m.typeIdx > 0 {
		q.Type = m.facets.Types[m.typeIdx-1]
	}
	if m.genIdx > 0 {
		q.Generation = m.facets.Generations[m.genIdx-1].Number
	}
	return q
}

// shown is the list the cursor moves over: the matches, or the recommendations
func (m Model) shown() []*models.Creature {
	if !m.view.Empty() {
		return m.view.Cards
	}
	return m.view.Recommendations
}

func (m Model) selected() (present.Card, bool) {
	shown := m.shown()
	if m.cursor < 0 || m.cursor >= len(shown) {
		return present.Card{}, false
	}
	return present.NewCard(shown[m.cursor], m.view.SpriteStyle), true
}

func (m *Model) move(delta int) {
	n := len(m.shown())
	if n == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
}

// View renders the browser
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.headerView())
	sb.WriteString("\n")

	switch m.state {
	case catalog.StateLoading:
		sb.WriteString("\n" + m.spinner.View() + " " + present.MsgLoading + "\n")
		return sb.String()
	case catalog.StateFailed:
		sb.WriteString("\n" + m.styles.Error.Render(catalog.LoadFailedMessage) + "\n")
		sb.WriteString(m.styles.Muted.Render("Press r to retry or q to quit.") + "\n")
		return sb.String()
	}

	sb.WriteString(m.filterView())
	sb.WriteString("\n\n")

	switch m.mode {
	case modeDetail, modeForms:
		sb.WriteString(m.styles.Overlay.Render(m.viewport.View()))
	default:
		sb.WriteString(m.gridView())
	}

	sb.WriteString("\n")
	if m.notice != "" {
		sb.WriteString(m.styles.Muted.Render(m.notice) + "\n")
	}
	sb.WriteString(m.styles.Footer.Render(m.help.View(m.keys)))
	return sb.String()
}

func (m Model) headerView() string {
	title := "Pokédex"
	if m.state == catalog.StateReady {
		title = fmt.Sprintf("Pokédex · %d Pokémon", m.ctrl.Current().Len())
	}
	return m.styles.Header.Render(title)
}

func (m Model) filterView() string {
	typeLabel := "All Types"
	if m.typeIdx > 0 {
		typeLabel = present.TypeOptions(m.facets.Types[m.typeIdx-1 : m.typeIdx])[0].Label
	}
	genLabel := "All Generations"
	if m.genIdx > 0 {
		genLabel = present.GenerationOptions(m.facets.Generations[m.genIdx-1 : m.genIdx])[0].Label
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.search.View(), "  ",
		m.styles.Filter.Render(typeLabel), " ",
		m.styles.Filter.Render(genLabel), " ",
		m.styles.Filter.Render(m.view.SpriteStyle.Label()),
	)
}

func (m Model) gridView() string {
	style := m.view.SpriteStyle
	if !m.view.Empty() {
		return m.window(present.Cards(m.view.Cards, style))
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Muted.Render(present.MsgNoResults))
	sb.WriteString("\n\n")
	if len(m.view.Recommendations) > 0 {
		sb.WriteString(m.styles.Title.Render("You might like:"))
		sb.WriteString("\n")
		sb.WriteString(m.window(present.Cards(m.view.Recommendations, style)))
	} else if m.view.Initial || !m.view.Query.Active() {
		sb.WriteString(m.styles.Muted.Render(present.MsgNoRecommendations))
	}
	return sb.String()
}

// window renders the page of rows containing the cursor
func (m Model) window(cards []present.Card) string {
	cols := Columns(m.width)
	rowsPerPage := max(1, (m.height-6)/(cardHeight+2))
	perPage := cols * rowsPerPage

	start := (m.cursor / perPage) * perPage
	end := min(start+perPage, len(cards))
	if start >= end {
		return ""
	}
	return m.styles.RenderGrid(cards[start:end], m.width, m.cursor-start)
}
