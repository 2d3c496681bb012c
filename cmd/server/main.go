package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/meur/pokedex/internal/api"
	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/config"
	"github.com/meur/pokedex/internal/logging"
	"github.com/meur/pokedex/internal/pokeapi"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
)

func main() {
	// Parse flags
	configPath := flag.String("config", config.GetEnv("POKEDEX_CONFIG", ""), "Optional YAML config file")
	port := flag.String("port", "", "Server port (overrides PORT)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := pokeapi.NewClientFromConfig(cfg.API, cfg.Telemetry.Enabled, logger)
	controller := catalog.NewController(catalog.NewAggregator(client, logger), cfg.Catalog.Limit, logger)
	resolver := catalog.NewResolver(controller.Current, client, logger)

	// The bulk load runs in the background; catalog routes answer 503 until it lands
	go func() {
		if err := controller.Reload(ctx); err != nil {
			logger.Error("Initial catalog load failed", zap.Error(err))
			return
		}
		logger.Info("Catalog ready", zap.Int("count", controller.Current().Len()))
	}()

	srv := api.New(controller, resolver, catalog.NewSampler(), api.Options{
		AllowedOrigins:      cfg.Server.AllowedOrigins,
		InitialCount:        cfg.Catalog.InitialDisplayCount,
		RecommendationCount: cfg.Catalog.RecommendationCount,
	}, logger)

	// Serve frontend static files (for production deployment)
	if cfg.Server.StaticDir != "" {
		dir := cfg.Server.StaticDir
		if !filepath.IsAbs(dir) {
			workDir, _ := os.Getwd()
			dir = filepath.Join(workDir, dir)
		}
		FileServer(srv.Router(), "/", http.Dir(dir))
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Pokédex API starting",
		zap.String("addr", "http://localhost:"+cfg.Server.Port),
		zap.String("upstream", client.BaseURL()),
		zap.Int("limit", cfg.Catalog.Limit),
	)

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// FileServer conveniently sets up a http.FileServer handler to serve
// static files from a http.FileSystem
func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		rctx := chi.RouteContext(req.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, req)
	})
}
