package sqlite

import (
	"context"
	"database/sql"

	"github.com/greyfield/scholarly/internal/collab/domain"
)

type accountsRepo struct {
	q querier
}

const accountColumns = `id, orcid_id, email, given_name, family_name, affiliation, created_at, updated_at`

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *accountsRepo) GetAccountByORCID(ctx context.Context, orcidID string) (domain.Account, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE orcid_id = ?`, orcidID)
	return scanAccount(row)
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
	return scanAccount(row)
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO accounts (id, orcid_id, email, given_name, family_name, affiliation, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, mapStringNull(a.ORCIDID), mapStringNull(a.Email),
		a.GivenName, a.FamilyName, a.Affiliation, a.CreatedAt, a.UpdatedAt)
	return mapConstraint(err)
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var (
		a      domain.Account
		orcid  sql.NullString
		email  sql.NullString
	)

	err := row.Scan(&a.ID, &orcid, &email, &a.GivenName, &a.FamilyName,
		&a.Affiliation, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}

	a.ORCIDID = mapNullString(orcid)
	a.Email = mapNullString(email)
	return a, nil
}
