package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/meur/pokedex/internal/config"
	"github.com/meur/pokedex/internal/logging"
	"github.com/meur/pokedex/internal/pokeapi"
	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath    string
	logFile       string
	verbose       bool
	markdownStyle string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd browses the catalog when run without a subcommand
var rootCmd = &cobra.Command{
	Use:   "pokedex",
	Short: "Browse the PokeAPI catalog from the terminal",
	Long: `pokedex loads the Pokémon catalog from PokeAPI and lets you search it,
filter it by type and generation, and open details and alternate forms.

Run without a subcommand to start the interactive browser.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runBrowse,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.GetEnv("POKEDEX_CONFIG", ""), "Optional YAML config file")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file (overrides LOG_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&markdownStyle, "style", "dark", "Detail rendering style (dark, light, notty)")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(searchCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and the logger. The terminal belongs to the
// UI, so logs go nowhere unless a file or verbose output is asked for
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if logFile != "" {
		cfg.Logging.File = logFile
	}
	if verbose {
		cfg.Logging.Level = "debug"
		cfg.Logging.Development = true
	}

	if cfg.Logging.File == "" && !verbose {
		logger = zap.NewNop()
		return nil
	}
	logger, err = logging.New(cfg.Logging)
	return err
}

func newClient() *pokeapi.Client {
	return pokeapi.NewClientFromConfig(cfg.API, cfg.Telemetry.Enabled, logger)
}
