package domain

import "time"

// Collaborator is an active membership of an account on a document.
type Collaborator struct {
	DocumentID string
	AccountID  string
	Role       CollabRole
	CanInvite  bool
	CreatedAt  time.Time
}
