package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/pokebattle/arena/internal/battle"
	"github.com/pokebattle/arena/internal/cache"
	"github.com/pokebattle/arena/internal/config"
	"github.com/pokebattle/arena/internal/db"
	"github.com/pokebattle/arena/internal/pokeapi"
	"github.com/pokebattle/arena/internal/server"
)

const ConfigPath = "config/arena.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Configure slog
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	slog.Info("arena server starting")

	// Load config
	cfgPath := ConfigPath
	if p := os.Getenv("ARENA_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	slog.Info("config loaded",
		"bind", cfg.BindAddress,
		"port", cfg.Port,
		"pokeapi", cfg.PokeAPI.BaseURL,
		"cache_ttl", cfg.PokeAPI.CacheTTL(),
	)

	// Connect to database
	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()
	slog.Info("database connected")

	// Run migrations
	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	// Wire the engine: one shared cache backs both the combatant and
	// the modifier lookups under separate key namespaces.
	store := cache.NewMemory()
	catalog := pokeapi.NewClient(cfg.PokeAPI.BaseURL, cfg.PokeAPI.Timeout(), cfg.PokeAPI.CacheTTL(), store)
	resolver := battle.NewResolver(catalog, store, cfg.PokeAPI.CacheTTL())
	engine := battle.NewOrchestrator(catalog, resolver)

	pokemonRepo := db.NewPokemonRepository(database.Pool())
	battleRepo := db.NewBattleRepository(database.Pool())

	addr := fmt.Sprintf("%s:%d", cfg.BindAddress, cfg.Port)
	srv := server.New(addr, engine, pokemonRepo, battleRepo, store, database, cfg.Admin.TokenHash)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Run(gctx); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
