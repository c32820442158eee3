package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

type (
	// Kind tells whether a transaction adds to or subtracts from the balance.
	Kind string

	// Transaction is a single dated money movement in a user's ledger.
	// Dates are zero-padded YYYY-MM-DD strings and compared lexicographically.
	Transaction struct {
		ID          int64     `json:"id"`
		UserID      int64     `json:"user_id"`
		Amount      float64   `json:"amount"`
		Category    string    `json:"category"`
		Description string    `json:"description"`
		Date        string    `json:"date"`
		Kind        Kind      `json:"type"`
		CreatedAt   time.Time `json:"created_at"`
	}

	// Goal is a savings target. CurrentAmount stays within [0, TargetAmount].
	Goal struct {
		ID            int64     `json:"id"`
		UserID        int64     `json:"user_id"`
		Title         string    `json:"title"`
		TargetAmount  float64   `json:"target_amount"`
		CurrentAmount float64   `json:"current_amount"`
		Category      string    `json:"category"`
		Deadline      string    `json:"deadline"`
		CreatedAt     time.Time `json:"created_at"`
	}

	// Alert is a stateless spending threshold for one category. It is
	// evaluated against live aggregation and never persisted as triggered.
	Alert struct {
		ID          int64     `json:"id"`
		UserID      int64     `json:"user_id"`
		Category    string    `json:"category"`
		LimitAmount float64   `json:"limit_amount"`
		CreatedAt   time.Time `json:"created_at"`
	}

	// Card is a credit card. ClosingDay and DueDay are informational display
	// fields; statement totals group by calendar month, not billing cycle.
	Card struct {
		ID          int64     `json:"id"`
		UserID      int64     `json:"user_id"`
		Name        string    `json:"name"`
		LimitAmount float64   `json:"limit_amount"`
		ClosingDay  int       `json:"closing_day"`
		DueDay      int       `json:"due_day"`
		Color       string    `json:"color"`
		CreatedAt   time.Time `json:"created_at"`
	}

	// CardTransaction is always an expense and belongs to exactly one card.
	CardTransaction struct {
		ID          int64     `json:"id"`
		CardID      int64     `json:"card_id"`
		Amount      float64   `json:"amount"`
		Category    string    `json:"category"`
		Description string    `json:"description"`
		Date        string    `json:"date"`
		CreatedAt   time.Time `json:"created_at"`
	}

	// User is the ledger owner. Password handling stays in the storage and
	// auth collaborators; the engines never see it.
	User struct {
		ID       int64  `json:"id"`
		Email    string `json:"email"`
		Password string `json:"-"`
		Name     string `json:"name"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
	ErrEmptyDate     = errors.New("empty date")
	ErrInvalidKind   = errors.New("invalid transaction type")
	ErrEmptyTitle    = errors.New("empty title")
	ErrEmptyName     = errors.New("empty name")
	ErrInvalidDay    = errors.New("invalid day")
)

// DefaultCardColor is applied when a card is created without a color.
const DefaultCardColor = "#818cf8"

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

func (t Transaction) Validate() error {
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(t.Date) == "" {
		return ErrEmptyDate
	}
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return ErrEmptyTitle
	}
	if g.TargetAmount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ClampProgress keeps CurrentAmount within [0, TargetAmount].
func (g *Goal) ClampProgress() {
	if g.CurrentAmount < 0 {
		g.CurrentAmount = 0
	}
	if g.CurrentAmount > g.TargetAmount {
		g.CurrentAmount = g.TargetAmount
	}
}

func (a Alert) Validate() error {
	if strings.TrimSpace(a.Category) == "" {
		return ErrEmptyCategory
	}
	if a.LimitAmount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (c Card) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if c.LimitAmount <= 0 {
		return ErrInvalidAmount
	}
	if c.ClosingDay < 1 || c.ClosingDay > 31 {
		return ErrInvalidDay
	}
	if c.DueDay < 1 || c.DueDay > 31 {
		return ErrInvalidDay
	}
	return nil
}

func (ct CardTransaction) Validate() error {
	if ct.Amount <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(ct.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(ct.Date) == "" {
		return ErrEmptyDate
	}
	return nil
}
