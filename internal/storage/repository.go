// Package storage is the SQLite ledger backend.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"mindmoney/internal/core"
	"mindmoney/internal/ledger"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements ledger.Store on a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func parseCreatedAt(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ── Users ────────────────────────────────────────────────────────────────

func (r *SQLiteRepository) CreateUser(ctx context.Context, u core.User) (core.User, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, password, name) VALUES (?, ?, ?)`,
		u.Email, u.Password, u.Name)
	if err != nil {
		// the unique index on email is the only constraint on this table
		return core.User{}, ledger.ErrDuplicateEmail
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.User{}, fmt.Errorf("last insert id: %w", err)
	}
	u.ID = id

	slog.InfoContext(ctx, "User created", "id", id, "email", u.Email)
	return u, nil
}

func (r *SQLiteRepository) UserByEmail(ctx context.Context, email string) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password, name FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Email, &u.Password, &u.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) UserByID(ctx context.Context, id int64) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password, name FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Email, &u.Password, &u.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) UpdateUser(ctx context.Context, u core.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = ?, password = ? WHERE id = ?`,
		u.Name, u.Password, u.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

// ── Transactions ─────────────────────────────────────────────────────────

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	t.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (user_id, amount, category, description, date, type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, t.Amount, t.Category, t.Description, t.Date, string(t.Kind), t.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("last insert id: %w", err)
	}
	t.ID = id

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"user_id", t.UserID,
		"amount", t.Amount,
		"category", t.Category,
		"type", string(t.Kind))

	return t, nil
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context, userID int64, f ledger.TransactionFilter) ([]core.Transaction, error) {
	// Date bounds are plain string comparisons on YYYY-MM-DD, mirroring
	// core.Period semantics.
	query := `SELECT id, user_id, amount, category, description, date, type, created_at
	          FROM transactions WHERE user_id = ?`
	args := []any{userID}
	if f.Period.Start != "" {
		query += " AND date >= ?"
		args = append(args, f.Period.Start)
	}
	if f.Period.End != "" {
		query += " AND date <= ?"
		args = append(args, f.Period.End)
	}
	if f.Kind != "" {
		query += " AND type = ?"
		args = append(args, string(f.Kind))
	}
	if f.Category != "" {
		query += " AND category = ?"
		args = append(args, f.Category)
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	out := []core.Transaction{}
	for rows.Next() {
		var t core.Transaction
		var kind, createdAt string
		var desc sql.NullString
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Category, &desc, &t.Date, &kind, &createdAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Description = desc.String
		t.Kind = core.Kind(kind)
		t.CreatedAt = parseCreatedAt(createdAt)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET amount = ?, category = ?, description = ?, date = ?, type = ?
		 WHERE id = ? AND user_id = ?`,
		t.Amount, t.Category, t.Description, t.Date, string(t.Kind), t.ID, t.UserID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.Transaction{}, ledger.ErrNotFound
	}
	return t, nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

// ── Goals ────────────────────────────────────────────────────────────────

func (r *SQLiteRepository) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	g.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (user_id, title, target_amount, current_amount, category, deadline, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.UserID, g.Title, g.TargetAmount, g.CurrentAmount, g.Category, g.Deadline, g.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Goal{}, fmt.Errorf("last insert id: %w", err)
	}
	g.ID = id
	return g, nil
}

func (r *SQLiteRepository) ListGoals(ctx context.Context, userID int64) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, target_amount, current_amount, category, deadline, created_at
		 FROM goals WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	out := []core.Goal{}
	for rows.Next() {
		var g core.Goal
		var category, deadline sql.NullString
		var createdAt string
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.TargetAmount, &g.CurrentAmount, &category, &deadline, &createdAt); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.Category = category.String
		g.Deadline = deadline.String
		g.CreatedAt = parseCreatedAt(createdAt)
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) UpdateGoalProgress(ctx context.Context, userID, id int64, currentAmount float64) (core.Goal, error) {
	var g core.Goal
	var category, deadline sql.NullString
	var createdAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, target_amount, current_amount, category, deadline, created_at
		 FROM goals WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&g.ID, &g.UserID, &g.Title, &g.TargetAmount, &g.CurrentAmount, &category, &deadline, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Goal{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Goal{}, fmt.Errorf("get goal: %w", err)
	}
	g.Category = category.String
	g.Deadline = deadline.String
	g.CreatedAt = parseCreatedAt(createdAt)

	g.CurrentAmount = currentAmount
	g.ClampProgress()

	if _, err := r.db.ExecContext(ctx,
		`UPDATE goals SET current_amount = ? WHERE id = ?`, g.CurrentAmount, id); err != nil {
		return core.Goal{}, fmt.Errorf("update goal progress: %w", err)
	}
	return g, nil
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

// ── Alerts ───────────────────────────────────────────────────────────────

func (r *SQLiteRepository) CreateAlert(ctx context.Context, a core.Alert) (core.Alert, error) {
	a.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO alerts (user_id, category, limit_amount, created_at) VALUES (?, ?, ?, ?)`,
		a.UserID, a.Category, a.LimitAmount, a.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return core.Alert{}, fmt.Errorf("create alert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Alert{}, fmt.Errorf("last insert id: %w", err)
	}
	a.ID = id
	return a, nil
}

func (r *SQLiteRepository) ListAlerts(ctx context.Context, userID int64) ([]core.Alert, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, category, limit_amount, created_at
		 FROM alerts WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	out := []core.Alert{}
	for rows.Next() {
		var a core.Alert
		var createdAt string
		if err := rows.Scan(&a.ID, &a.UserID, &a.Category, &a.LimitAmount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		a.CreatedAt = parseCreatedAt(createdAt)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alerts: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) DeleteAlert(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM alerts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete alert: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

// ── Cards ────────────────────────────────────────────────────────────────

func (r *SQLiteRepository) CreateCard(ctx context.Context, c core.Card) (core.Card, error) {
	if c.Color == "" {
		c.Color = core.DefaultCardColor
	}
	c.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cards (user_id, name, limit_amount, closing_day, due_day, color, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.UserID, c.Name, c.LimitAmount, c.ClosingDay, c.DueDay, c.Color, c.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return core.Card{}, fmt.Errorf("create card: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Card{}, fmt.Errorf("last insert id: %w", err)
	}
	c.ID = id
	return c, nil
}

func (r *SQLiteRepository) ListCards(ctx context.Context, userID int64) ([]core.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, limit_amount, closing_day, due_day, color, created_at
		 FROM cards WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	out := []core.Card{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) CardByID(ctx context.Context, userID, id int64) (core.Card, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, limit_amount, closing_day, due_day, color, created_at
		 FROM cards WHERE id = ? AND user_id = ?`, id, userID)
	c, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Card{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Card{}, err
	}
	return c, nil
}

func (r *SQLiteRepository) DeleteCard(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cards WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ledger.ErrNotFound
	}
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM card_transactions WHERE card_id = ?`, id); err != nil {
		return fmt.Errorf("delete card transactions: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) CreateCardTransaction(ctx context.Context, t core.CardTransaction) (core.CardTransaction, error) {
	t.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO card_transactions (card_id, amount, category, description, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.CardID, t.Amount, t.Category, t.Description, t.Date, t.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return core.CardTransaction{}, fmt.Errorf("create card transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.CardTransaction{}, fmt.Errorf("last insert id: %w", err)
	}
	t.ID = id
	return t, nil
}

func (r *SQLiteRepository) ListCardTransactions(ctx context.Context, cardID int64, month string) ([]core.CardTransaction, error) {
	query := `SELECT id, card_id, amount, category, description, date, created_at
	          FROM card_transactions WHERE card_id = ?`
	args := []any{cardID}
	if month != "" {
		// calendar-month grouping: prefix match on YYYY-MM
		query += " AND substr(date, 1, 7) = ?"
		args = append(args, month)
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list card transactions: %w", err)
	}
	defer rows.Close()

	out := []core.CardTransaction{}
	for rows.Next() {
		var t core.CardTransaction
		var desc sql.NullString
		var createdAt string
		if err := rows.Scan(&t.ID, &t.CardID, &t.Amount, &t.Category, &desc, &t.Date, &createdAt); err != nil {
			return nil, fmt.Errorf("scan card transaction: %w", err)
		}
		t.Description = desc.String
		t.CreatedAt = parseCreatedAt(createdAt)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate card transactions: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) DeleteCardTransaction(ctx context.Context, cardID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM card_transactions WHERE id = ? AND card_id = ?`, id, cardID)
	if err != nil {
		return fmt.Errorf("delete card transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (core.Card, error) {
	var c core.Card
	var createdAt string
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.LimitAmount, &c.ClosingDay, &c.DueDay, &c.Color, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Card{}, err
		}
		return core.Card{}, fmt.Errorf("scan card: %w", err)
	}
	c.CreatedAt = parseCreatedAt(createdAt)
	return c, nil
}

var _ ledger.Store = (*SQLiteRepository)(nil)
