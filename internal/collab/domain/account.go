package domain

import "time"

// Account is a portal account. ORCIDID and Email are lookup keys for
// invitee matching, not identity; the account id is.
type Account struct {
	ID          string
	ORCIDID     string // Can be empty if the researcher never linked ORCID
	Email       string
	GivenName   string
	FamilyName  string
	Affiliation string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DisplayName renders the account's human-readable name.
func (a Account) DisplayName() string {
	switch {
	case a.GivenName != "" && a.FamilyName != "":
		return a.GivenName + " " + a.FamilyName
	case a.FamilyName != "":
		return a.FamilyName
	case a.GivenName != "":
		return a.GivenName
	default:
		return a.Email
	}
}
