package sqlite

import (
	"context"
	"time"

	"github.com/greyfield/scholarly/internal/collab/domain"
	"github.com/greyfield/scholarly/internal/collab/store"
)

type documentsRepo struct {
	q querier
}

func (r *documentsRepo) GetDocumentByID(ctx context.Context, id string) (domain.Document, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, kind, creator_account_id, title, content, created_at, updated_at
		 FROM documents WHERE id = ?`, id)

	var d domain.Document
	err := row.Scan(&d.ID, &d.Kind, &d.CreatorAccountID, &d.Title, &d.Content,
		&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.Document{}, mapNotFound(err)
	}
	return d, nil
}

func (r *documentsRepo) CreateDocument(ctx context.Context, d domain.Document) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO documents (id, kind, creator_account_id, title, content, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Kind, d.CreatorAccountID, d.Title, d.Content, d.CreatedAt, d.UpdatedAt)
	return mapConstraint(err)
}

func (r *documentsRepo) UpdateDocumentContent(ctx context.Context, id, title, content string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE documents SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
		title, content, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
