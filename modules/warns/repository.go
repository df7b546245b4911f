package warns

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// Warning statuses. Removal is a status transition, the row stays.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

var (
	// ErrNotFound reports an unknown warning id within the chat.
	ErrNotFound = errors.New("warns: warning not found")
	// ErrAlreadyDeleted reports a repeated soft delete.
	ErrAlreadyDeleted = errors.New("warns: warning already deleted")
)

// Warning is one disciplinary record scoped to a chat.
type Warning struct {
	ID       int64     `db:"id"`
	ChatID   int64     `db:"chat_id"`
	UserID   int64     `db:"user_id"`
	WarnedBy int64     `db:"warned_by"`
	Reason   string    `db:"reason"`
	WarnedAt time.Time `db:"warned_at"`
	Status   string    `db:"status"`
}

// Repository is the storage boundary for warning records. All queries
// are chat-partitioned: a warning id is only meaningful together with
// its chat id.
type Repository interface {
	Create(ctx context.Context, w Warning) (int64, error)
	CountActive(ctx context.Context, chatID, userID int64) (int, error)
	// ListUser returns the user's active warnings, newest first.
	ListUser(ctx context.Context, chatID, userID int64) ([]Warning, error)
	// ListChat returns all active warnings in the chat, newest first.
	ListChat(ctx context.Context, chatID int64) ([]Warning, error)
	// SoftDelete marks a warning deleted and returns the record as it
	// was before the transition. Returns ErrNotFound for an unknown id
	// and ErrAlreadyDeleted for a repeated delete.
	SoftDelete(ctx context.Context, chatID, id int64) (Warning, error)
}

// PostgresRepository implements Repository on the shared warnings table.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository wires a repository to the given database handle.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, w Warning) (int64, error) {
	const q = `
		INSERT INTO warnings (chat_id, user_id, warned_by, reason, warned_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var id int64
	err := r.db.QueryRowxContext(ctx, q,
		w.ChatID, w.UserID, w.WarnedBy, w.Reason, w.WarnedAt, StatusActive,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PostgresRepository) CountActive(ctx context.Context, chatID, userID int64) (int, error) {
	const q = `
		SELECT COUNT(*) FROM warnings
		WHERE chat_id = $1 AND user_id = $2 AND status = $3`
	var n int
	if err := r.db.GetContext(ctx, &n, q, chatID, userID, StatusActive); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresRepository) ListUser(ctx context.Context, chatID, userID int64) ([]Warning, error) {
	const q = `
		SELECT id, chat_id, user_id, warned_by, reason, warned_at, status
		FROM warnings
		WHERE chat_id = $1 AND user_id = $2 AND status = $3
		ORDER BY warned_at DESC, id DESC`
	var rows []Warning
	if err := r.db.SelectContext(ctx, &rows, q, chatID, userID, StatusActive); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) ListChat(ctx context.Context, chatID int64) ([]Warning, error) {
	const q = `
		SELECT id, chat_id, user_id, warned_by, reason, warned_at, status
		FROM warnings
		WHERE chat_id = $1 AND status = $2
		ORDER BY warned_at DESC, id DESC`
	var rows []Warning
	if err := r.db.SelectContext(ctx, &rows, q, chatID, StatusActive); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, chatID, id int64) (Warning, error) {
	const get = `
		SELECT id, chat_id, user_id, warned_by, reason, warned_at, status
		FROM warnings
		WHERE chat_id = $1 AND id = $2`

	var w Warning
	if err := r.db.GetContext(ctx, &w, get, chatID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Warning{}, ErrNotFound
		}
		return Warning{}, err
	}
	if w.Status == StatusDeleted {
		return Warning{}, ErrAlreadyDeleted
	}

	const upd = `
		UPDATE warnings SET status = $1
		WHERE chat_id = $2 AND id = $3 AND status = $4`
	res, err := r.db.ExecContext(ctx, upd, StatusDeleted, chatID, id, StatusActive)
	if err != nil {
		return Warning{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Raced with a concurrent delete of the same id.
		return Warning{}, ErrAlreadyDeleted
	}
	return w, nil
}
