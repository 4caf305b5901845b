package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/greyfield/scholarly/internal/collab/domain"
)

type invitationsRepo struct {
	q querier
}

const invitationColumns = `id, document_id, inviter_account_id, invited_account_id,
	orcid_id, email, given_name, family_name, affiliation, role, status,
	message, token_hash, expires_at, created_at, updated_at`

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO invitations (`+invitationColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.DocumentID, inv.InviterAccountID,
		mapStringNull(inv.InvitedAccountID), mapStringNull(inv.ORCIDID),
		mapStringNull(inv.Email), inv.GivenName, inv.FamilyName,
		inv.Affiliation, inv.Role, inv.Status, inv.Message, inv.TokenHash,
		inv.ExpiresAt, inv.CreatedAt, inv.UpdatedAt)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE id = ?`, id)
	return scanInvitation(row)
}

// FindPendingInvitation matches a live PENDING invitation on any of the
// identity keys that are non-empty. Expiry is checked here rather than via
// a sweep, so a stale row never blocks the read path.
func (r *invitationsRepo) FindPendingInvitation(ctx context.Context, documentID, accountID, orcidID, email string, now time.Time) (domain.Invitation, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations
		 WHERE document_id = ?
		   AND status = 'PENDING'
		   AND expires_at > ?
		   AND (
			(invited_account_id IS NOT NULL AND invited_account_id = ?)
			OR (orcid_id IS NOT NULL AND orcid_id = ?)
			OR (email IS NOT NULL AND email = ?)
		   )
		 LIMIT 1`,
		documentID, now,
		mapStringNull(accountID), mapStringNull(orcidID), mapStringNull(email))
	return scanInvitation(row)
}

func (r *invitationsRepo) ListInvitationsByDocument(ctx context.Context, documentID string) ([]domain.Invitation, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations
		 WHERE document_id = ? ORDER BY created_at DESC, id DESC`,
		documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitationRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invitationsRepo) MarkDocumentInvitationsExpired(ctx context.Context, documentID string, now time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE invitations SET status = 'EXPIRED', updated_at = ?
		 WHERE document_id = ? AND status = 'PENDING' AND expires_at <= ?`,
		now, documentID, now)
	return err
}

func (r *invitationsRepo) MarkExpiredInvitations(ctx context.Context, now time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE invitations SET status = 'EXPIRED', updated_at = ?
		 WHERE status = 'PENDING' AND expires_at <= ?`,
		now, now)
	return err
}

type invitationScanner interface {
	Scan(dest ...any) error
}

func scanInvitationFrom(s invitationScanner) (domain.Invitation, error) {
	var (
		inv     domain.Invitation
		account sql.NullString
		orcid   sql.NullString
		email   sql.NullString
	)

	err := s.Scan(&inv.ID, &inv.DocumentID, &inv.InviterAccountID, &account,
		&orcid, &email, &inv.GivenName, &inv.FamilyName, &inv.Affiliation,
		&inv.Role, &inv.Status, &inv.Message, &inv.TokenHash, &inv.ExpiresAt,
		&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return domain.Invitation{}, err
	}

	inv.InvitedAccountID = mapNullString(account)
	inv.ORCIDID = mapNullString(orcid)
	inv.Email = mapNullString(email)
	return inv, nil
}

func scanInvitation(row *sql.Row) (domain.Invitation, error) {
	inv, err := scanInvitationFrom(row)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

func scanInvitationRows(rows *sql.Rows) (domain.Invitation, error) {
	return scanInvitationFrom(rows)
}
