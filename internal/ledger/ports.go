package ledger

import (
	"context"
	"errors"

	"mindmoney/internal/core"
)

// ErrNotFound is returned when a record does not exist or does not belong
// to the caller. Ownership misses and true misses are indistinguishable on
// purpose.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when registering an email that already has
// an account.
var ErrDuplicateEmail = errors.New("email already registered")

// TransactionFilter narrows a transaction listing. Zero values mean "no
// constraint". Date bounds follow core.Period semantics (inclusive,
// lexicographic string comparison).
type TransactionFilter struct {
	Period   core.Period
	Kind     core.Kind
	Category string
}

// Ports for the persistence adapters.
type (
	UserStore interface {
		CreateUser(ctx context.Context, u core.User) (core.User, error)
		UserByEmail(ctx context.Context, email string) (core.User, error)
		UserByID(ctx context.Context, id int64) (core.User, error)
		UpdateUser(ctx context.Context, u core.User) error
	}

	TransactionStore interface {
		CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		// ListTransactions returns the owner's transactions matching the
		// filter, newest date first. No matches is an empty slice, not an
		// error.
		ListTransactions(ctx context.Context, userID int64, f TransactionFilter) ([]core.Transaction, error)
		UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		DeleteTransaction(ctx context.Context, userID, id int64) error
	}

	GoalStore interface {
		CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error)
		ListGoals(ctx context.Context, userID int64) ([]core.Goal, error)
		UpdateGoalProgress(ctx context.Context, userID, id int64, currentAmount float64) (core.Goal, error)
		DeleteGoal(ctx context.Context, userID, id int64) error
	}

	AlertStore interface {
		CreateAlert(ctx context.Context, a core.Alert) (core.Alert, error)
		ListAlerts(ctx context.Context, userID int64) ([]core.Alert, error)
		DeleteAlert(ctx context.Context, userID, id int64) error
	}

	CardStore interface {
		CreateCard(ctx context.Context, c core.Card) (core.Card, error)
		ListCards(ctx context.Context, userID int64) ([]core.Card, error)
		CardByID(ctx context.Context, userID, id int64) (core.Card, error)
		// DeleteCard removes the card and all of its transactions.
		DeleteCard(ctx context.Context, userID, id int64) error
		CreateCardTransaction(ctx context.Context, t core.CardTransaction) (core.CardTransaction, error)
		// ListCardTransactions returns the card's transactions, optionally
		// narrowed to one YYYY-MM calendar month, newest date first.
		ListCardTransactions(ctx context.Context, cardID int64, month string) ([]core.CardTransaction, error)
		DeleteCardTransaction(ctx context.Context, cardID, id int64) error
	}
)

// Store is the full persistence contract the API server needs.
type Store interface {
	UserStore
	TransactionStore
	GoalStore
	AlertStore
	CardStore
	Close() error
}
