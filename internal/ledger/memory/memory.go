// Package memory is the default ledger backend: a mutex-guarded in-memory
// store. It backs local development and the handler tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"mindmoney/internal/core"
	"mindmoney/internal/ledger"
)

type Store struct {
	mu      sync.Mutex
	nextID  int64
	users   []core.User
	txs     []core.Transaction
	goals   []core.Goal
	alerts  []core.Alert
	cards   []core.Card
	cardTxs []core.CardTransaction
}

func New() *Store {
	return &Store{nextID: 1}
}

// NewWithDemoData seeds the store with the demo account and its sample
// ledger so a fresh instance has something to aggregate.
func NewWithDemoData() *Store {
	s := New()
	ctx := context.Background()
	u, _ := s.CreateUser(ctx, core.User{Email: "demo@mindmoney.com", Password: "demo123", Name: "Demo User"})
	seed := []core.Transaction{
		{Amount: 3500, Category: "Salário", Description: "Salário mensal", Date: "2024-01-05", Kind: core.Income},
		{Amount: 890, Category: "Moradia", Description: "Aluguel", Date: "2024-01-10", Kind: core.Expense},
		{Amount: 320, Category: "Alimentação", Description: "Supermercado", Date: "2024-01-12", Kind: core.Expense},
		{Amount: 150, Category: "Transporte", Description: "Combustível", Date: "2024-01-14", Kind: core.Expense},
		{Amount: 80, Category: "Lazer", Description: "Cinema e jantar", Date: "2024-01-18", Kind: core.Expense},
		{Amount: 200, Category: "Saúde", Description: "Plano de saúde", Date: "2024-01-20", Kind: core.Expense},
		{Amount: 500, Category: "Freelance", Description: "Projeto extra", Date: "2024-01-22", Kind: core.Income},
		{Amount: 60, Category: "Educação", Description: "Curso online", Date: "2024-01-25", Kind: core.Expense},
		{Amount: 3500, Category: "Salário", Description: "Salário mensal", Date: "2024-02-05", Kind: core.Income},
		{Amount: 890, Category: "Moradia", Description: "Aluguel", Date: "2024-02-10", Kind: core.Expense},
		{Amount: 450, Category: "Alimentação", Description: "Supermercado", Date: "2024-02-14", Kind: core.Expense},
		{Amount: 200, Category: "Lazer", Description: "Show", Date: "2024-02-20", Kind: core.Expense},
		{Amount: 3500, Category: "Salário", Description: "Salário mensal", Date: "2024-03-05", Kind: core.Income},
		{Amount: 890, Category: "Moradia", Description: "Aluguel", Date: "2024-03-10", Kind: core.Expense},
		{Amount: 280, Category: "Alimentação", Description: "Supermercado", Date: "2024-03-15", Kind: core.Expense},
		{Amount: 120, Category: "Transporte", Description: "Uber", Date: "2024-03-18", Kind: core.Expense},
	}
	for _, t := range seed {
		t.UserID = u.ID
		_, _ = s.CreateTransaction(ctx, t)
	}
	return s
}

func (s *Store) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) Close() error { return nil }

// ── Users ────────────────────────────────────────────────────────────────

func (s *Store) CreateUser(_ context.Context, u core.User) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return core.User{}, ledger.ErrDuplicateEmail
		}
	}
	u.ID = s.id()
	s.users = append(s.users, u)
	return u, nil
}

func (s *Store) UserByEmail(_ context.Context, email string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return core.User{}, ledger.ErrNotFound
}

func (s *Store) UserByID(_ context.Context, id int64) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return core.User{}, ledger.ErrNotFound
}

func (s *Store) UpdateUser(_ context.Context, u core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = u
			return nil
		}
	}
	return ledger.ErrNotFound
}

// ── Transactions ─────────────────────────────────────────────────────────

func (s *Store) CreateTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.id()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	s.txs = append(s.txs, t)
	return t, nil
}

func (s *Store) ListTransactions(_ context.Context, userID int64, f ledger.TransactionFilter) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []core.Transaction{}
	for _, t := range s.txs {
		if t.UserID != userID {
			continue
		}
		if !f.Period.Contains(t.Date) {
			continue
		}
		if f.Kind != "" && t.Kind != f.Kind {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *Store) UpdateTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.txs {
		if s.txs[i].ID == t.ID && s.txs[i].UserID == t.UserID {
			t.CreatedAt = s.txs[i].CreatedAt
			s.txs[i] = t
			return t, nil
		}
	}
	return core.Transaction{}, ledger.ErrNotFound
}

func (s *Store) DeleteTransaction(_ context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.txs {
		if s.txs[i].ID == id && s.txs[i].UserID == userID {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			return nil
		}
	}
	return ledger.ErrNotFound
}

// ── Goals ────────────────────────────────────────────────────────────────

func (s *Store) CreateGoal(_ context.Context, g core.Goal) (core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g.ID = s.id()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	s.goals = append(s.goals, g)
	return g, nil
}

func (s *Store) ListGoals(_ context.Context, userID int64) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []core.Goal{}
	// newest first, matching the SQL ORDER BY created_at DESC
	for i := len(s.goals) - 1; i >= 0; i-- {
		if s.goals[i].UserID == userID {
			out = append(out, s.goals[i])
		}
	}
	return out, nil
}

func (s *Store) UpdateGoalProgress(_ context.Context, userID, id int64, currentAmount float64) (core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].ID == id && s.goals[i].UserID == userID {
			s.goals[i].CurrentAmount = currentAmount
			s.goals[i].ClampProgress()
			return s.goals[i], nil
		}
	}
	return core.Goal{}, ledger.ErrNotFound
}

func (s *Store) DeleteGoal(_ context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].ID == id && s.goals[i].UserID == userID {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			return nil
		}
	}
	return ledger.ErrNotFound
}

// ── Alerts ───────────────────────────────────────────────────────────────

func (s *Store) CreateAlert(_ context.Context, a core.Alert) (core.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.id()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	s.alerts = append(s.alerts, a)
	return a, nil
}

func (s *Store) ListAlerts(_ context.Context, userID int64) ([]core.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []core.Alert{}
	for i := len(s.alerts) - 1; i >= 0; i-- {
		if s.alerts[i].UserID == userID {
			out = append(out, s.alerts[i])
		}
	}
	return out, nil
}

func (s *Store) DeleteAlert(_ context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.alerts {
		if s.alerts[i].ID == id && s.alerts[i].UserID == userID {
			s.alerts = append(s.alerts[:i], s.alerts[i+1:]...)
			return nil
		}
	}
	return ledger.ErrNotFound
}

// ── Cards ────────────────────────────────────────────────────────────────

func (s *Store) CreateCard(_ context.Context, c core.Card) (core.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.id()
	if c.Color == "" {
		c.Color = core.DefaultCardColor
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	s.cards = append(s.cards, c)
	return c, nil
}

func (s *Store) ListCards(_ context.Context, userID int64) ([]core.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []core.Card{}
	for i := len(s.cards) - 1; i >= 0; i-- {
		if s.cards[i].UserID == userID {
			out = append(out, s.cards[i])
		}
	}
	return out, nil
}

func (s *Store) CardByID(_ context.Context, userID, id int64) (core.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cards {
		if c.ID == id && c.UserID == userID {
			return c, nil
		}
	}
	return core.Card{}, ledger.ErrNotFound
}

func (s *Store) DeleteCard(_ context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID == id && s.cards[i].UserID == userID {
			s.cards = append(s.cards[:i], s.cards[i+1:]...)
			kept := s.cardTxs[:0]
			for _, t := range s.cardTxs {
				if t.CardID != id {
					kept = append(kept, t)
				}
			}
			s.cardTxs = kept
			return nil
		}
	}
	return ledger.ErrNotFound
}

func (s *Store) CreateCardTransaction(_ context.Context, t core.CardTransaction) (core.CardTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.id()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	s.cardTxs = append(s.cardTxs, t)
	return t, nil
}

func (s *Store) ListCardTransactions(_ context.Context, cardID int64, month string) ([]core.CardTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []core.CardTransaction{}
	for _, t := range s.cardTxs {
		if t.CardID == cardID {
			out = append(out, t)
		}
	}
	out = core.FilterCardMonth(out, month)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *Store) DeleteCardTransaction(_ context.Context, cardID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cardTxs {
		if s.cardTxs[i].ID == id && s.cardTxs[i].CardID == cardID {
			s.cardTxs = append(s.cardTxs[:i], s.cardTxs[i+1:]...)
			return nil
		}
	}
	return ledger.ErrNotFound
}
