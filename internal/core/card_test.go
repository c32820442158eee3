package core

import "testing"

func TestFilterCardMonth(t *testing.T) {
	txs := []CardTransaction{
		{Amount: 100, Category: "Mercado", Date: "2024-03-02"},
		{Amount: 50, Category: "Lazer", Date: "2024-03-28"},
		{Amount: 75, Category: "Mercado", Date: "2024-04-01"},
	}

	got := FilterCardMonth(txs, "2024-03")
	if len(got) != 2 {
		t.Fatalf("expected 2 transactions in 2024-03, got %d", len(got))
	}

	if all := FilterCardMonth(txs, ""); len(all) != 3 {
		t.Errorf("empty month should pass everything, got %d", len(all))
	}
}

func TestStatement(t *testing.T) {
	card := Card{Name: "Nubank", LimitAmount: 1000, ClosingDay: 5, DueDay: 15}

	t.Run("empty month", func(t *testing.T) {
		st := Statement(card, nil)
		if st.Total != 0 {
			t.Errorf("total = %v, want 0", st.Total)
		}
		if st.Available != card.LimitAmount {
			t.Errorf("available = %v, want full limit %v", st.Available, card.LimitAmount)
		}
	})

	t.Run("over limit goes negative", func(t *testing.T) {
		txs := []CardTransaction{
			{Amount: 700, Category: "Eletrônicos", Date: "2024-03-10"},
			{Amount: 500, Category: "Viagem", Date: "2024-03-20"},
		}
		st := Statement(card, txs)
		if st.Total != 1200 {
			t.Errorf("total = %v, want 1200", st.Total)
		}
		if st.Available != -200 {
			t.Errorf("available = %v, want -200 (no clamping)", st.Available)
		}
	})
}
