package http

import (
	"fmt"
	"net/http"
	"testing"

	"mindmoney/internal/core"
)

func createCard(t *testing.T, s *Server, token string) core.Card {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/cards", token, map[string]any{
		"name": "Nubank", "limit_amount": 1000.0, "closing_day": 5, "due_day": 12,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create card status = %d, body %s", rec.Code, rec.Body.String())
	}
	var card core.Card
	decodeInto(t, rec, &card)
	return card
}

func TestCardLifecycle(t *testing.T) {
	s, _ := newTestServer(t)
	token := register(t, s, "ana@example.com")

	card := createCard(t, s, token)
	if card.Color != core.DefaultCardColor {
		t.Errorf("color = %q, want default %q", card.Color, core.DefaultCardColor)
	}

	t.Run("missing fields", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/cards", token, map[string]any{"name": "Sem limite"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("list", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, "/api/cards", token, nil)
		var cards []core.Card
		decodeInto(t, rec, &cards)
		if len(cards) != 1 || cards[0].Name != "Nubank" {
			t.Errorf("cards = %+v", cards)
		}
	})

	t.Run("other user cannot see it", func(t *testing.T) {
		other := register(t, s, "outro@example.com")
		rec := doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/cards/%d/transactions", card.ID), other, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestCardStatement(t *testing.T) {
	s, _ := newTestServer(t)
	token := register(t, s, "ana@example.com")
	card := createCard(t, s, token)

	for _, body := range []map[string]any{
		{"amount": 250.0, "category": "Alimentação", "description": "Mercado", "date": "2024-01-08"},
		{"amount": 90.0, "category": "Lazer", "description": "Streaming", "date": "2024-01-15"},
		{"amount": 1200.0, "category": "Eletrônicos", "description": "Notebook", "date": "2024-02-03"},
	} {
		rec := doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/cards/%d/transactions", card.ID), token, body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create card tx status = %d, body %s", rec.Code, rec.Body.String())
		}
	}

	var statement struct {
		Card         core.Card              `json:"card"`
		Transactions []core.CardTransaction `json:"transactions"`
		Total        float64                `json:"total"`
		Available    float64                `json:"available"`
	}

	t.Run("one month", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/cards/%d/transactions?month=2024-01", card.ID), token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		decodeInto(t, rec, &statement)
		if len(statement.Transactions) != 2 || statement.Total != 340 || statement.Available != 660 {
			t.Errorf("statement = %+v", statement)
		}
	})

	t.Run("over limit goes negative", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/cards/%d/transactions?month=2024-02", card.ID), token, nil)
		decodeInto(t, rec, &statement)
		if statement.Total != 1200 || statement.Available != -200 {
			t.Errorf("statement = %+v", statement)
		}
	})

	t.Run("all months without filter", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/cards/%d/transactions", card.ID), token, nil)
		decodeInto(t, rec, &statement)
		if len(statement.Transactions) != 3 || statement.Total != 1540 {
			t.Errorf("statement = %+v", statement)
		}
	})

	t.Run("delete cascades", func(t *testing.T) {
		txID := statement.Transactions[0].ID
		rec := doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/cards/%d/transactions/%d", card.ID, txID), token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("delete tx status = %d", rec.Code)
		}

		rec = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/cards/%d", card.ID), token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("delete card status = %d", rec.Code)
		}
		rec = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/cards/%d/transactions", card.ID), token, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("statement after delete status = %d, want 404", rec.Code)
		}
	})
}
