package core

import (
	"errors"
	"testing"
)

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{Amount: 42.5, Category: "Mercado", Date: "2024-03-01", Kind: Expense}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	cases := []struct {
		name string
		mod  func(*Transaction)
		want error
	}{
		{"zero amount", func(tr *Transaction) { tr.Amount = 0 }, ErrInvalidAmount},
		{"negative amount", func(tr *Transaction) { tr.Amount = -5 }, ErrInvalidAmount},
		{"blank category", func(tr *Transaction) { tr.Category = "  " }, ErrEmptyCategory},
		{"missing date", func(tr *Transaction) { tr.Date = "" }, ErrEmptyDate},
		{"bad kind", func(tr *Transaction) { tr.Kind = "transfer" }, ErrInvalidKind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := valid
			tc.mod(&tr)
			if err := tr.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestGoalClampProgress(t *testing.T) {
	g := Goal{Title: "Reserva", TargetAmount: 1000, CurrentAmount: 1500}
	g.ClampProgress()
	if g.CurrentAmount != 1000 {
		t.Errorf("progress above target should clamp to target, got %v", g.CurrentAmount)
	}

	g.CurrentAmount = -10
	g.ClampProgress()
	if g.CurrentAmount != 0 {
		t.Errorf("negative progress should clamp to 0, got %v", g.CurrentAmount)
	}
}

func TestCardValidate(t *testing.T) {
	valid := Card{Name: "Nubank", LimitAmount: 1000, ClosingDay: 5, DueDay: 15}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid card rejected: %v", err)
	}

	c := valid
	c.ClosingDay = 0
	if err := c.Validate(); !errors.Is(err, ErrInvalidDay) {
		t.Errorf("closing day 0 should be rejected, got %v", err)
	}
	c = valid
	c.DueDay = 32
	if err := c.Validate(); !errors.Is(err, ErrInvalidDay) {
		t.Errorf("due day 32 should be rejected, got %v", err)
	}
	c = valid
	c.LimitAmount = 0
	if err := c.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero limit should be rejected, got %v", err)
	}
}

func TestAlertValidate(t *testing.T) {
	if err := (Alert{Category: "Lazer", LimitAmount: 100}).Validate(); err != nil {
		t.Errorf("valid alert rejected: %v", err)
	}
	if err := (Alert{Category: "", LimitAmount: 100}).Validate(); !errors.Is(err, ErrEmptyCategory) {
		t.Errorf("empty category should be rejected, got %v", err)
	}
	if err := (Alert{Category: "Lazer"}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("missing limit should be rejected, got %v", err)
	}
}
