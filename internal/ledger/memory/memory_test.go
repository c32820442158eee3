package memory

import (
	"context"
	"errors"
	"testing"

	"mindmoney/internal/core"
	"mindmoney/internal/ledger"
)

func TestUserLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	u, err := s.CreateUser(ctx, core.User{Email: "ana@example.com", Password: "secret", Name: "Ana"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.ID == 0 {
		t.Error("created user should get an id")
	}

	if _, err := s.CreateUser(ctx, core.User{Email: "ANA@example.com", Password: "x", Name: "dup"}); !errors.Is(err, ledger.ErrDuplicateEmail) {
		t.Errorf("duplicate email should be rejected, got %v", err)
	}

	got, err := s.UserByEmail(ctx, "ana@example.com")
	if err != nil || got.Name != "Ana" {
		t.Errorf("UserByEmail = %+v, %v", got, err)
	}

	if _, err := s.UserByID(ctx, 999); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("missing user should be ErrNotFound, got %v", err)
	}
}

func TestTransactionFilters(t *testing.T) {
	s := New()
	ctx := context.Background()
	u, _ := s.CreateUser(ctx, core.User{Email: "a@b.c", Password: "p", Name: "A"})
	other, _ := s.CreateUser(ctx, core.User{Email: "x@y.z", Password: "p", Name: "X"})

	for _, tx := range []core.Transaction{
		{UserID: u.ID, Amount: 100, Category: "Mercado", Date: "2024-01-10", Kind: core.Expense},
		{UserID: u.ID, Amount: 3000, Category: "Salário", Date: "2024-01-05", Kind: core.Income},
		{UserID: u.ID, Amount: 50, Category: "Mercado", Date: "2024-02-01", Kind: core.Expense},
		{UserID: other.ID, Amount: 999, Category: "Mercado", Date: "2024-01-15", Kind: core.Expense},
	} {
		if _, err := s.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("create transaction: %v", err)
		}
	}

	t.Run("scoped to owner, newest first", func(t *testing.T) {
		got, err := s.ListTransactions(ctx, u.ID, ledger.TransactionFilter{})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(got))
		}
		if got[0].Date != "2024-02-01" {
			t.Errorf("expected newest first, got %s", got[0].Date)
		}
	})

	t.Run("period filter", func(t *testing.T) {
		got, _ := s.ListTransactions(ctx, u.ID, ledger.TransactionFilter{
			Period: core.Period{Start: "2024-01-01", End: "2024-01-31"},
		})
		if len(got) != 2 {
			t.Errorf("expected 2 january transactions, got %d", len(got))
		}
	})

	t.Run("kind and category filters", func(t *testing.T) {
		got, _ := s.ListTransactions(ctx, u.ID, ledger.TransactionFilter{Kind: core.Income})
		if len(got) != 1 || got[0].Category != "Salário" {
			t.Errorf("kind filter returned %v", got)
		}
		got, _ = s.ListTransactions(ctx, u.ID, ledger.TransactionFilter{Category: "Mercado"})
		if len(got) != 2 {
			t.Errorf("category filter returned %d, want 2", len(got))
		}
	})

	t.Run("ownership on mutation", func(t *testing.T) {
		txs, _ := s.ListTransactions(ctx, u.ID, ledger.TransactionFilter{})
		victim := txs[0]
		victim.UserID = other.ID
		if _, err := s.UpdateTransaction(ctx, victim); !errors.Is(err, ledger.ErrNotFound) {
			t.Errorf("cross-owner update must be ErrNotFound, got %v", err)
		}
		if err := s.DeleteTransaction(ctx, other.ID, txs[0].ID); !errors.Is(err, ledger.ErrNotFound) {
			t.Errorf("cross-owner delete must be ErrNotFound, got %v", err)
		}
	})
}

func TestGoalProgressClamped(t *testing.T) {
	s := New()
	ctx := context.Background()
	u, _ := s.CreateUser(ctx, core.User{Email: "a@b.c", Password: "p", Name: "A"})
	g, _ := s.CreateGoal(ctx, core.Goal{UserID: u.ID, Title: "Reserva", TargetAmount: 1000})

	got, err := s.UpdateGoalProgress(ctx, u.ID, g.ID, 1500)
	if err != nil {
		t.Fatal(err)
	}
	if got.CurrentAmount != 1000 {
		t.Errorf("deposit above target should clamp to target, got %v", got.CurrentAmount)
	}
}

func TestCardCascadeDelete(t *testing.T) {
	s := New()
	ctx := context.Background()
	u, _ := s.CreateUser(ctx, core.User{Email: "a@b.c", Password: "p", Name: "A"})
	c, _ := s.CreateCard(ctx, core.Card{UserID: u.ID, Name: "Nubank", LimitAmount: 1000, ClosingDay: 5, DueDay: 15})
	if c.Color != core.DefaultCardColor {
		t.Errorf("card without color should get default, got %q", c.Color)
	}
	_, _ = s.CreateCardTransaction(ctx, core.CardTransaction{CardID: c.ID, Amount: 100, Category: "Mercado", Date: "2024-03-02"})
	_, _ = s.CreateCardTransaction(ctx, core.CardTransaction{CardID: c.ID, Amount: 75, Category: "Mercado", Date: "2024-04-01"})

	byMonth, _ := s.ListCardTransactions(ctx, c.ID, "2024-03")
	if len(byMonth) != 1 {
		t.Errorf("month filter returned %d, want 1", len(byMonth))
	}

	if err := s.DeleteCard(ctx, u.ID, c.ID); err != nil {
		t.Fatalf("delete card: %v", err)
	}
	left, _ := s.ListCardTransactions(ctx, c.ID, "")
	if len(left) != 0 {
		t.Errorf("card delete should cascade to its transactions, %d left", len(left))
	}
}

func TestDemoSeed(t *testing.T) {
	s := NewWithDemoData()
	ctx := context.Background()

	u, err := s.UserByEmail(ctx, "demo@mindmoney.com")
	if err != nil {
		t.Fatalf("demo user missing: %v", err)
	}
	txs, _ := s.ListTransactions(ctx, u.ID, ledger.TransactionFilter{})
	if len(txs) != 16 {
		t.Errorf("demo ledger should hold 16 transactions, got %d", len(txs))
	}
}
