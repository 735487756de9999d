// Package server is the HTTP surface over the battle engine and its
// persistence: battle simulation, paginated history, health and a
// token-guarded admin corner.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/pokebattle/arena/internal/cache"
	"github.com/pokebattle/arena/internal/db"
	"github.com/pokebattle/arena/internal/model"
)

// BattleRunner computes one battle between two normalized names.
type BattleRunner interface {
	Run(ctx context.Context, attackerName, defenderName string) (*model.BattleOutcome, error)
}

// PokemonStore persists combatant snapshots.
type PokemonStore interface {
	Upsert(ctx context.Context, c *model.Combatant) (int64, error)
}

// BattleStore persists battle outcomes and serves the history.
type BattleStore interface {
	Create(ctx context.Context, attackerID, defenderID int64, winnerID *int64, metrics model.BattleMetrics) (int64, time.Time, error)
	List(ctx context.Context, page, pageSize int) ([]model.BattleListItem, db.Pagination, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Pinger reports backend liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wires the handlers with their collaborators.
type Server struct {
	addr           string
	engine         BattleRunner
	pokemon        PokemonStore
	battles        BattleStore
	store          cache.Store
	pinger         Pinger
	adminTokenHash string
}

// New creates a server listening on addr.
func New(addr string, engine BattleRunner, pokemon PokemonStore, battles BattleStore, store cache.Store, pinger Pinger, adminTokenHash string) *Server {
	return &Server{
		addr:           addr,
		engine:         engine,
		pokemon:        pokemon,
		battles:        battles,
		store:          store,
		pinger:         pinger,
		adminTokenHash: adminTokenHash,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/battles/battle", s.handleBattle)
	mux.HandleFunc("GET /api/battles", s.handleList)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/admin/cache/purge", s.requireAdmin(s.handleCachePurge))
	mux.HandleFunc("DELETE /api/admin/battles/{id}", s.requireAdmin(s.handleBattleDelete))
	return withRequestLog(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	slog.Info("http server listening", "addr", s.addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	}
}
