package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/pokebattle/arena/internal/db"
	"github.com/pokebattle/arena/internal/model"
)

// Listing defaults, overridable per request via query params.
const (
	defaultPage     = 1
	defaultPageSize = 20
)

type battleRequest struct {
	Attacker string `json:"attacker"`
	Defender string `json:"defender"`
}

type battleResponse struct {
	ID       int64               `json:"id"`
	Attacker string              `json:"attacker"`
	Defender string              `json:"defender"`
	Winner   *string             `json:"winner"`
	Metrics  model.BattleMetrics `json:"metrics"`
}

type listResponse struct {
	Results []model.BattleListItem `json:"results"`
	db.Pagination
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleBattle(w http.ResponseWriter, r *http.Request) {
	var req battleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// The catalog matches lowercase canonical names case-sensitively.
	attacker := strings.ToLower(strings.TrimSpace(req.Attacker))
	defender := strings.ToLower(strings.TrimSpace(req.Defender))
	if attacker == "" || defender == "" {
		writeError(w, http.StatusBadRequest, "attacker and defender are required")
		return
	}

	ctx := r.Context()
	outcome, err := s.engine.Run(ctx, attacker, defender)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			slog.Warn("pokemon not found", "attacker", attacker, "defender", defender, "err", err)
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, model.ErrUpstreamUnavailable):
			slog.Error("catalog unavailable", "attacker", attacker, "defender", defender, "err", err)
			writeError(w, http.StatusBadGateway, "upstream catalog unavailable")
		default:
			slog.Error("battle failed", "attacker", attacker, "defender", defender, "err", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	attackerID, err := s.pokemon.Upsert(ctx, outcome.Attacker)
	if err != nil {
		slog.Error("storing attacker failed", "name", outcome.Attacker.Name, "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	defenderID, err := s.pokemon.Upsert(ctx, outcome.Defender)
	if err != nil {
		slog.Error("storing defender failed", "name", outcome.Defender.Name, "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	var winnerID *int64
	switch outcome.Winner {
	case model.WinnerAttacker:
		winnerID = &attackerID
	case model.WinnerDefender:
		winnerID = &defenderID
	}

	id, _, err := s.battles.Create(ctx, attackerID, defenderID, winnerID, outcome.Metrics())
	if err != nil {
		slog.Error("storing battle failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	var winnerName *string
	if name := outcome.WinnerName(); name != "" {
		winnerName = &name
	}
	slog.Info("battle created",
		"battle_id", id,
		"attacker", outcome.Attacker.Name,
		"defender", outcome.Defender.Name,
		"winner", outcome.WinnerName(),
	)

	writeJSON(w, http.StatusCreated, battleResponse{
		ID:       id,
		Attacker: outcome.Attacker.Name,
		Defender: outcome.Defender.Name,
		Winner:   winnerName,
		Metrics:  outcome.Metrics(),
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", defaultPage)
	pageSize := queryInt(r, "page_size", defaultPageSize)

	items, pagination, err := s.battles.List(r.Context(), page, pageSize)
	if err != nil {
		slog.Error("listing battles failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, listResponse{Results: items, Pagination: pagination})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encoding response failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
