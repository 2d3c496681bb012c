package main

import (
	"errors"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/models"
	"github.com/meur/pokedex/internal/present"
	"github.com/meur/pokedex/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	sprites    string
	showForms  bool
	filterType string
	filterGen  int
	width      int
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Start the interactive browser",
	Args:  cobra.NoArgs,
	RunE:  runBrowse,
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print the details of one Pokémon",
	Long: `Fetches one Pokémon with its species data and prints the detail panel.
Does not load the whole catalog.

Example:
  pokedex show 6 --forms`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Load the catalog and print the matching cards",
	Long: `Runs the bulk load, then filters by name substring, type and generation.
With no input at all a few random recommendations are printed instead.

Example:
  pokedex search char --type fire --gen 1`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	showCmd.Flags().StringVar(&sprites, "sprites", "2d", "Sprite style (2d or 3d)")
	showCmd.Flags().BoolVar(&showForms, "forms", false, "Also list alternate forms")

	searchCmd.Flags().StringVar(&sprites, "sprites", "2d", "Sprite style (2d or 3d)")
	searchCmd.Flags().StringVarP(&filterType, "type", "t", "", "Only this type, e.g. fire")
	searchCmd.Flags().IntVarP(&filterGen, "gen", "g", 0, "Only this generation (1-9)")
	searchCmd.Flags().IntVar(&width, "width", 100, "Output width for the card grid")
}

func sessionOptions() catalog.SessionOptions {
	return catalog.SessionOptions{
		InitialCount:        cfg.Catalog.InitialDisplayCount,
		RecommendationCount: cfg.Catalog.RecommendationCount,
	}
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client := newClient()
	ctrl := catalog.NewController(catalog.NewAggregator(client, logger), cfg.Catalog.Limit, logger)

	model := tui.New(ctx, tui.Config{
		Controller:    ctrl,
		Resolver:      catalog.NewResolver(ctrl.Current, client, logger),
		Sampler:       catalog.NewSampler(),
		Session:       sessionOptions(),
		MarkdownStyle: markdownStyle,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid id %q", args[0])
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	client := newClient()
	style := catalog.ParseSpriteStyle(sprites)

	noCatalog := func() *catalog.Catalog { return nil }
	c, err := catalog.NewResolver(noCatalog, client, logger).Detail(ctx, id)
	if err != nil {
		logger.Error("Error fetching details", zap.Int("id", id), zap.Error(err))
		return errors.New(present.MsgDetailFailed)
	}

	renderer := tui.NewMarkdownRenderer(markdownStyle, min(width, 100))
	fmt.Fprint(out, renderer.Render(present.NewDetail(c, style)))

	if !showForms {
		return nil
	}
	if !c.HasVarieties() {
		fmt.Fprintln(out, "No alternate forms found.")
		return nil
	}

	// A one-entry catalog is enough to resolve the forms of c
	single, _ := catalog.New([]*models.Creature{c})
	base, forms, err := catalog.NewResolver(func() *catalog.Catalog { return single }, client, logger).Variants(ctx, c.ID)
	if err != nil {
		return errors.New(present.MsgFormsError)
	}
	cards := present.FormCards(base, forms, style)
	if len(cards) == 0 {
		fmt.Fprintln(out, present.MsgFormsFailed)
		return nil
	}
	fmt.Fprintln(out, tui.DefaultStyles().RenderForms(present.FormsTitle(base), cards, -1))
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	q := catalog.Query{Type: filterType, Generation: filterGen}
	if len(args) == 1 {
		q.Text = args[0]
	}

	fmt.Fprintln(cmd.ErrOrStderr(), present.MsgLoading)
	ctrl := catalog.NewController(catalog.NewAggregator(newClient(), logger), cfg.Catalog.Limit, logger)
	if err := ctrl.Reload(ctx); err != nil {
		return errors.New(catalog.LoadFailedMessage)
	}

	cat := ctrl.Current()
	style := catalog.ParseSpriteStyle(sprites)
	styles := tui.DefaultStyles()

	matches := catalog.Filter(cat.Records(), q)
	if len(matches) > 0 {
		fmt.Fprintln(out, styles.RenderGrid(present.Cards(matches, style), width, -1))
		fmt.Fprintf(out, "%d of %d Pokémon\n", len(matches), cat.Len())
		return nil
	}

	fmt.Fprintln(out, present.MsgNoResults)
	if q.Active() {
		return nil
	}
	recs := catalog.NewSampler().Recommend(cat.Records(), cfg.Catalog.RecommendationCount)
	if len(recs) == 0 {
		fmt.Fprintln(out, present.MsgNoRecommendations)
		return nil
	}
	fmt.Fprintln(out, styles.Title.Render("You might like:"))
	fmt.Fprintln(out, styles.RenderGrid(present.Cards(recs, style), width, -1))
	return nil
}
