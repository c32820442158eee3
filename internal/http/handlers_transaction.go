package http

import (
	"errors"
	"log/slog"
	"net/http"

	"mindmoney/internal/core"
	"mindmoney/internal/ledger"
)

// transactionBody is the create/update payload. Type defaults to expense
// and description to empty, matching what clients actually send.
type transactionBody struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Kind        string  `json:"type"`
}

func (b transactionBody) toTransaction(userID int64) core.Transaction {
	kind := core.Kind(b.Kind)
	if b.Kind == "" {
		kind = core.Expense
	}
	return core.Transaction{
		UserID:      userID,
		Amount:      b.Amount,
		Category:    b.Category,
		Description: b.Description,
		Date:        b.Date,
		Kind:        kind,
	}
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	q := r.URL.Query()

	filter := ledger.TransactionFilter{
		Period: core.Period{
			Start: q.Get("startDate"),
			End:   q.Get("endDate"),
		},
		Kind:     core.Kind(q.Get("type")),
		Category: q.Get("category"),
	}

	txs, err := s.store.ListTransactions(r.Context(), claims.UserID, filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions error", "error", err, "user_id", claims.UserID)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var body transactionBody
	if !decodeBody(w, r, &body) {
		return
	}

	tx := body.toTransaction(claims.UserID)
	if err := tx.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Campos obrigatórios faltando")
		return
	}

	created, err := s.store.CreateTransaction(r.Context(), tx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create transaction error", "error", err, "user_id", claims.UserID)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateTransaction replaces every mutable field, like the clients'
// edit form does.
func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	id, ok := pathID(w, r, "id", "Transação não encontrada")
	if !ok {
		return
	}

	var body transactionBody
	if !decodeBody(w, r, &body) {
		return
	}

	tx := body.toTransaction(claims.UserID)
	tx.ID = id
	if err := tx.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Campos obrigatórios faltando")
		return
	}

	updated, err := s.store.UpdateTransaction(r.Context(), tx)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Transação não encontrada")
			return
		}
		slog.ErrorContext(r.Context(), "Update transaction error", "error", err, "user_id", claims.UserID, "id", id)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	id, ok := pathID(w, r, "id", "Não encontrada")
	if !ok {
		return
	}

	if err := s.store.DeleteTransaction(r.Context(), claims.UserID, id); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Não encontrada")
			return
		}
		slog.ErrorContext(r.Context(), "Delete transaction error", "error", err, "user_id", claims.UserID, "id", id)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	writeSuccess(w)
}
