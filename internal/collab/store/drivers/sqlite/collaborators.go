package sqlite

import (
	"context"

	"github.com/greyfield/scholarly/internal/collab/domain"
)

type collaboratorsRepo struct {
	q querier
}

func (r *collaboratorsRepo) GetCollaborator(ctx context.Context, documentID, accountID string) (domain.Collaborator, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT document_id, account_id, role, can_invite, created_at
		 FROM collaborators WHERE document_id = ? AND account_id = ?`,
		documentID, accountID)

	var c domain.Collaborator
	err := row.Scan(&c.DocumentID, &c.AccountID, &c.Role, &c.CanInvite, &c.CreatedAt)
	if err != nil {
		return domain.Collaborator{}, mapNotFound(err)
	}
	return c, nil
}

func (r *collaboratorsRepo) ListCollaborators(ctx context.Context, documentID string) ([]domain.Collaborator, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT document_id, account_id, role, can_invite, created_at
		 FROM collaborators WHERE document_id = ? ORDER BY created_at`,
		documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Collaborator
	for rows.Next() {
		var c domain.Collaborator
		if err := rows.Scan(&c.DocumentID, &c.AccountID, &c.Role, &c.CanInvite, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *collaboratorsRepo) AddCollaborator(ctx context.Context, c domain.Collaborator) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO collaborators (document_id, account_id, role, can_invite, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		c.DocumentID, c.AccountID, c.Role, c.CanInvite, c.CreatedAt)
	return mapConstraint(err)
}
