package domain

import "time"

// CollabRole is the role an invitation offers or a collaborator holds.
type CollabRole string

const (
	RoleOwner       CollabRole = "OWNER"
	RoleAdmin       CollabRole = "ADMIN"
	RoleEditor      CollabRole = "EDITOR"
	RoleContributor CollabRole = "CONTRIBUTOR"
	RoleReviewer    CollabRole = "REVIEWER"
)

// Valid reports whether r is a known role.
func (r CollabRole) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleEditor, RoleContributor, RoleReviewer:
		return true
	}
	return false
}

// InvitationStatus is the lifecycle state of an invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationDeclined InvitationStatus = "DECLINED"
	InvitationExpired  InvitationStatus = "EXPIRED"
)

// Invitation is an offer of a collaboration role on a document. At most one
// PENDING invitation may exist per (document, identity), where identity is
// the invited account id when resolved, else the ORCID id, else the email.
type Invitation struct {
	ID               string
	DocumentID       string
	InviterAccountID string
	InvitedAccountID string // Empty unless the invitee resolved to an account
	ORCIDID          string
	Email            string
	GivenName        string
	FamilyName       string
	Affiliation      string
	Role             CollabRole
	Status           InvitationStatus
	Message          string
	TokenHash        string // SHA-256 fingerprint; the raw token is never stored
	ExpiresAt        time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Expired reports whether the invitation's expiry has passed at now.
// Expiry is a read-time check; rows are not required to be swept.
func (i Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// InviteeName renders the invitee's name for mail and notifications.
func (i Invitation) InviteeName() string {
	switch {
	case i.GivenName != "" && i.FamilyName != "":
		return i.GivenName + " " + i.FamilyName
	case i.FamilyName != "":
		return i.FamilyName
	case i.GivenName != "":
		return i.GivenName
	default:
		return i.Email
	}
}
