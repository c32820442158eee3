package http

import (
	"errors"
	"log/slog"
	"net/http"

	"mindmoney/internal/core"
	"mindmoney/internal/ledger"
)

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	alerts, err := s.store.ListAlerts(r.Context(), claims.UserID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List alerts error", "error", err, "user_id", claims.UserID)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	writeJSON(w, http.StatusOK, alerts)
}

func (s *Server) handleCreateAlert(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req struct {
		Category    string  `json:"category"`
		LimitAmount float64 `json:"limit_amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	alert := core.Alert{
		UserID:      claims.UserID,
		Category:    req.Category,
		LimitAmount: req.LimitAmount,
	}
	if err := alert.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Categoria e limite são obrigatórios")
		return
	}

	created, err := s.store.CreateAlert(r.Context(), alert)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create alert error", "error", err, "user_id", claims.UserID)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteAlert(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	id, ok := pathID(w, r, "id", "Alerta não encontrado")
	if !ok {
		return
	}

	if err := s.store.DeleteAlert(r.Context(), claims.UserID, id); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Alerta não encontrado")
			return
		}
		slog.ErrorContext(r.Context(), "Delete alert error", "error", err, "user_id", claims.UserID, "id", id)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	writeSuccess(w)
}
