package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/liliang-cn/jogjachat/internal/domain"
)

// SessionRepository handles conversation history persistence
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Ensure creates the session if it does not exist yet and bumps its
// updated_at timestamp otherwise
func (r *SessionRepository) Ensure(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, created_at, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at
	`, id, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID
func (r *SessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	session := &domain.Session{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, created_at, updated_at
		FROM sessions WHERE id = ?
	`, id).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return session, nil
}

// AppendMessage stores a history line at the end of its session
func (r *SessionRepository) AppendMessage(ctx context.Context, entry *domain.HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (id, session_id, seq, role, content, created_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE session_id = ?), ?, ?, ?)
	`, entry.ID, entry.SessionID, entry.SessionID, string(entry.Role), entry.Content, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// GetMessages retrieves a session's history in insertion order
func (r *SessionRepository) GetMessages(ctx context.Context, sessionID string) ([]*domain.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_id, role, content, created_at
		FROM messages WHERE session_id = ?
		ORDER BY seq ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.HistoryEntry
	for rows.Next() {
		entry := &domain.HistoryEntry{}
		var role string
		if err := rows.Scan(&entry.ID, &entry.SessionID, &role, &entry.Content, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entry.Role = domain.Sender(role)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Delete removes a session and its history. It returns the number of
// history lines removed.
func (r *SessionRepository) Delete(ctx context.Context, id string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete messages: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return 0, fmt.Errorf("failed to delete session: %w", err)
	}

	return removed, tx.Commit()
}

// CountMessages returns the number of stored user lines across sessions
func (r *SessionRepository) CountMessages(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages WHERE role = ?`, string(domain.SenderUser)).Scan(&count)
	return count, err
}

// CountSessions returns the number of stored sessions
func (r *SessionRepository) CountSessions(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&count)
	return count, err
}
