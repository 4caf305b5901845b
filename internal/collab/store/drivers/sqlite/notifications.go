package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/greyfield/scholarly/internal/collab/domain"
)

type notificationsRepo struct {
	q querier
}

func (r *notificationsRepo) CreateNotification(ctx context.Context, n domain.Notification) error {
	var readAt sql.NullTime
	if n.ReadAt != nil {
		readAt = sql.NullTime{Time: *n.ReadAt, Valid: true}
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO notifications (id, account_id, kind, title, message, payload, read_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.AccountID, n.Kind, n.Title, n.Message, n.Payload, readAt, n.CreatedAt)
	return mapConstraint(err)
}

func (r *notificationsRepo) ListNotificationsByAccount(ctx context.Context, accountID string) ([]domain.Notification, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, account_id, kind, title, message, payload, read_at, created_at
		 FROM notifications WHERE account_id = ? ORDER BY created_at DESC, id DESC`,
		accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var (
			n      domain.Notification
			readAt sql.NullTime
		)
		if err := rows.Scan(&n.ID, &n.AccountID, &n.Kind, &n.Title, &n.Message,
			&n.Payload, &readAt, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.ReadAt = mapNullTimePtr(readAt)
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notificationsRepo) DeleteReadNotificationsBefore(ctx context.Context, cutoff time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM notifications WHERE read_at IS NOT NULL AND created_at < ?`,
		cutoff)
	return err
}
