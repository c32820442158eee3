package http

import (
	"errors"
	"log/slog"
	"net/http"

	"mindmoney/internal/core"
	"mindmoney/internal/ledger"
)

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	goals, err := s.store.ListGoals(r.Context(), claims.UserID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List goals error", "error", err, "user_id", claims.UserID)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	writeJSON(w, http.StatusOK, goals)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req struct {
		Title        string  `json:"title"`
		TargetAmount float64 `json:"target_amount"`
		Category     string  `json:"category"`
		Deadline     string  `json:"deadline"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	goal := core.Goal{
		UserID:       claims.UserID,
		Title:        req.Title,
		TargetAmount: req.TargetAmount,
		Category:     req.Category,
		Deadline:     req.Deadline,
	}
	if err := goal.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Título e valor são obrigatórios")
		return
	}

	created, err := s.store.CreateGoal(r.Context(), goal)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create goal error", "error", err, "user_id", claims.UserID)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateGoal sets the goal's saved amount. Progress is clamped to
// [0, target] so over-contributions read as a completed goal.
func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	id, ok := pathID(w, r, "id", "Meta não encontrada")
	if !ok {
		return
	}

	var req struct {
		CurrentAmount float64 `json:"current_amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := s.store.UpdateGoalProgress(r.Context(), claims.UserID, id, req.CurrentAmount)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Meta não encontrada")
			return
		}
		slog.ErrorContext(r.Context(), "Update goal error", "error", err, "user_id", claims.UserID, "id", id)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	id, ok := pathID(w, r, "id", "Meta não encontrada")
	if !ok {
		return
	}

	if err := s.store.DeleteGoal(r.Context(), claims.UserID, id); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Meta não encontrada")
			return
		}
		slog.ErrorContext(r.Context(), "Delete goal error", "error", err, "user_id", claims.UserID, "id", id)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	writeSuccess(w)
}
