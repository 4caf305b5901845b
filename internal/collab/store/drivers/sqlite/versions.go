package sqlite

import (
	"context"

	"github.com/greyfield/scholarly/internal/collab/domain"
)

type versionsRepo struct {
	q querier
}

const versionColumns = `id, document_id, version_number, title, content,
	description, version_type, creator_account_id, word_count, created_at`

func (r *versionsRepo) CreateVersion(ctx context.Context, v domain.DocumentVersion) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO document_versions (`+versionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.DocumentID, v.VersionNumber, v.Title, v.Content,
		v.Description, v.VersionType, v.CreatorAccountID, v.WordCount,
		v.CreatedAt)
	return mapConstraint(err)
}

func (r *versionsRepo) GetVersionByID(ctx context.Context, id string) (domain.DocumentVersion, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+versionColumns+` FROM document_versions WHERE id = ?`, id)

	var v domain.DocumentVersion
	err := row.Scan(&v.ID, &v.DocumentID, &v.VersionNumber, &v.Title,
		&v.Content, &v.Description, &v.VersionType, &v.CreatorAccountID,
		&v.WordCount, &v.CreatedAt)
	if err != nil {
		return domain.DocumentVersion{}, mapNotFound(err)
	}
	return v, nil
}

func (r *versionsRepo) ListVersionsByDocument(ctx context.Context, documentID string) ([]domain.DocumentVersion, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+versionColumns+` FROM document_versions
		 WHERE document_id = ? ORDER BY version_number DESC`,
		documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DocumentVersion
	for rows.Next() {
		var v domain.DocumentVersion
		if err := rows.Scan(&v.ID, &v.DocumentID, &v.VersionNumber, &v.Title,
			&v.Content, &v.Description, &v.VersionType, &v.CreatorAccountID,
			&v.WordCount, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *versionsRepo) GetLatestVersion(ctx context.Context, documentID string) (domain.DocumentVersion, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+versionColumns+` FROM document_versions
		 WHERE document_id = ? ORDER BY version_number DESC LIMIT 1`,
		documentID)

	var v domain.DocumentVersion
	err := row.Scan(&v.ID, &v.DocumentID, &v.VersionNumber, &v.Title,
		&v.Content, &v.Description, &v.VersionType, &v.CreatorAccountID,
		&v.WordCount, &v.CreatedAt)
	if err != nil {
		return domain.DocumentVersion{}, mapNotFound(err)
	}
	return v, nil
}

func (r *versionsRepo) MaxVersionNumber(ctx context.Context, documentID string) (int64, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version_number), 0) FROM document_versions WHERE document_id = ?`,
		documentID)

	var n int64
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
