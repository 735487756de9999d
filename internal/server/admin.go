package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// requireAdmin guards a handler with the configured bcrypt token hash.
// With no hash configured the admin surface does not exist.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.adminTokenHash == "" {
			http.NotFound(w, r)
			return
		}
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(s.adminTokenHash), []byte(token)); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next(w, r)
	}
}

// handleCachePurge drops every cached catalog entry, forcing re-fetch on
// the next battle. Useful when upstream data is known to have changed
// before the TTL expires.
func (s *Server) handleCachePurge(w http.ResponseWriter, r *http.Request) {
	s.store.Purge()
	slog.Info("catalog cache purged")
	writeJSON(w, http.StatusOK, map[string]string{"status": "purged"})
}

func (s *Server) handleBattleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid battle id")
		return
	}

	deleted, err := s.battles.Delete(r.Context(), id)
	if err != nil {
		slog.Error("deleting battle failed", "battle_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "battle not found")
		return
	}
	slog.Info("battle deleted", "battle_id", id)
	w.WriteHeader(http.StatusNoContent)
}
