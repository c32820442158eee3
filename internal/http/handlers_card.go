package http

import (
	"errors"
	"log/slog"
	"net/http"

	"mindmoney/internal/core"
	"mindmoney/internal/ledger"
)

const cardNotFound = "Cartão não encontrado"

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	cards, err := s.store.ListCards(r.Context(), claims.UserID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List cards error", "error", err, "user_id", claims.UserID)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req struct {
		Name        string  `json:"name"`
		LimitAmount float64 `json:"limit_amount"`
		ClosingDay  int     `json:"closing_day"`
		DueDay      int     `json:"due_day"`
		Color       string  `json:"color"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	card := core.Card{
		UserID:      claims.UserID,
		Name:        req.Name,
		LimitAmount: req.LimitAmount,
		ClosingDay:  req.ClosingDay,
		DueDay:      req.DueDay,
		Color:       req.Color,
	}
	if card.Color == "" {
		card.Color = core.DefaultCardColor
	}
	if err := card.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Campos obrigatórios faltando")
		return
	}

	created, err := s.store.CreateCard(r.Context(), card)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create card error", "error", err, "user_id", claims.UserID)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// handleDeleteCard removes the card and, through the store, every
// transaction on it.
func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	id, ok := pathID(w, r, "id", cardNotFound)
	if !ok {
		return
	}

	if err := s.store.DeleteCard(r.Context(), claims.UserID, id); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, cardNotFound)
			return
		}
		slog.ErrorContext(r.Context(), "Delete card error", "error", err, "user_id", claims.UserID, "id", id)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	writeSuccess(w)
}

// handleCardStatement returns the card, its transactions for the requested
// calendar month (all of them without ?month) and the statement totals.
// Available goes negative when the card is over its limit.
func (s *Server) handleCardStatement(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	id, ok := pathID(w, r, "id", cardNotFound)
	if !ok {
		return
	}

	card, err := s.store.CardByID(r.Context(), claims.UserID, id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, cardNotFound)
			return
		}
		slog.ErrorContext(r.Context(), "Card lookup error", "error", err, "user_id", claims.UserID, "id", id)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	month := r.URL.Query().Get("month")
	txs, err := s.store.ListCardTransactions(r.Context(), card.ID, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Card transactions error", "error", err, "card_id", card.ID, "month", month)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	statement := core.Statement(card, txs)
	writeJSON(w, http.StatusOK, struct {
		Card         core.Card              `json:"card"`
		Transactions []core.CardTransaction `json:"transactions"`
		Total        float64                `json:"total"`
		Available    float64                `json:"available"`
	}{Card: card, Transactions: txs, Total: statement.Total, Available: statement.Available})
}

func (s *Server) handleCreateCardTransaction(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	id, ok := pathID(w, r, "id", cardNotFound)
	if !ok {
		return
	}

	var req struct {
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		Description string  `json:"description"`
		Date        string  `json:"date"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	card, err := s.store.CardByID(r.Context(), claims.UserID, id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, cardNotFound)
			return
		}
		slog.ErrorContext(r.Context(), "Card lookup error", "error", err, "user_id", claims.UserID, "id", id)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	tx := core.CardTransaction{
		CardID:      card.ID,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
	}
	if err := tx.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Campos obrigatórios faltando")
		return
	}

	created, err := s.store.CreateCardTransaction(r.Context(), tx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create card transaction error", "error", err, "card_id", card.ID)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteCardTransaction(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	cardID, ok := pathID(w, r, "cardId", cardNotFound)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", cardNotFound)
	if !ok {
		return
	}

	card, err := s.store.CardByID(r.Context(), claims.UserID, cardID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, cardNotFound)
			return
		}
		slog.ErrorContext(r.Context(), "Card lookup error", "error", err, "user_id", claims.UserID, "id", cardID)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	if err := s.store.DeleteCardTransaction(r.Context(), card.ID, id); err != nil && !errors.Is(err, ledger.ErrNotFound) {
		slog.ErrorContext(r.Context(), "Delete card transaction error", "error", err, "card_id", card.ID, "id", id)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	writeSuccess(w)
}
