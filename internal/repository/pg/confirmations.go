package pg

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ibeloyar/oilcheckout/internal/model"
)

// SaveConfirmation - сохраняет JSON подтверждения для сессии, перезаписывая предыдущее.
func (r *Repository) SaveConfirmation(ctx context.Context, sessionID string, blob []byte) error {
	return r.executeWithRetryConnection(ctx, func(db *sql.DB) error {
		_, err := db.ExecContext(ctx, `INSERT INTO order_confirmations (session_id, payload) VALUES ($1, $2)
		ON CONFLICT (session_id) DO UPDATE SET payload = EXCLUDED.payload, created_at = now()`,
			sessionID,
			string(blob),
		)
		return err
	})
}

// GetConfirmation - JSON подтверждения как есть, без разбора.
func (r *Repository) GetConfirmation(ctx context.Context, sessionID string) ([]byte, error) {
	var payload string

	err := r.executeWithRetryConnection(ctx, func(db *sql.DB) error {
		return db.QueryRowContext(ctx, `SELECT payload FROM order_confirmations WHERE session_id = $1`, sessionID).
			Scan(&payload)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrConfirmationNotFound
		}
		return nil, err
	}

	return []byte(payload), nil
}

func (r *Repository) DeleteConfirmation(ctx context.Context, sessionID string) error {
	return r.executeWithRetryConnection(ctx, func(db *sql.DB) error {
		_, err := db.ExecContext(ctx, `DELETE FROM order_confirmations WHERE session_id = $1`, sessionID)
		return err
	})
}
