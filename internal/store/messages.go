package store

import (
	"context"
	"fmt"
	"time"
)

// Message is a contact form submission.
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Sent      bool      `json:"sent"`
}

// SaveMessage stores m unsent and returns its ID.
func (s *Store) SaveMessage(ctx context.Context, m Message) (int64, error) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (name, email, body, created_at, sent) VALUES (?, ?, ?, ?, 0)`,
		m.Name, m.Email, m.Body, m.CreatedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("save message: %w", err)
	}
	return res.LastInsertId()
}

// MarkMessageSent flags message id as delivered by email.
func (s *Store) MarkMessageSent(ctx context.Context, id int64) error {
	return s.execOne(ctx, `UPDATE messages SET sent = 1 WHERE id = ?`, id)
}

func (s *Store) DeleteMessage(ctx context.Context, id int64) error {
	return s.execOne(ctx, `DELETE FROM messages WHERE id = ?`, id)
}

// Messages returns the newest messages first.
func (s *Store) Messages(ctx context.Context, limit int) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, body, created_at, sent
		FROM messages
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.CreatedAt, &m.Sent); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) execOne(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
