// Package collabsdk holds the wire types for the collaboration service
// API. Handlers and Go clients share these so the two cannot drift.
package collabsdk

import "time"

// CreateInvitationRequest invites a researcher onto a document. At least
// one of orcid_id and email is required.
type CreateInvitationRequest struct {
	ORCIDID     string `json:"orcid_id,omitempty"`
	Email       string `json:"email,omitempty"`
	GivenName   string `json:"given_name,omitempty"`
	FamilyName  string `json:"family_name,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
	Role        string `json:"role"`
	Message     string `json:"message,omitempty"`
}

// InvitationResponse is the public view of an invitation. The raw token
// never appears here; it is surfaced once in CreateInvitationResponse.
type InvitationResponse struct {
	ID               string    `json:"id"`
	DocumentID       string    `json:"document_id"`
	InviterAccountID string    `json:"inviter_account_id"`
	InvitedAccountID string    `json:"invited_account_id,omitempty"`
	ORCIDID          string    `json:"orcid_id,omitempty"`
	Email            string    `json:"email,omitempty"`
	GivenName        string    `json:"given_name,omitempty"`
	FamilyName       string    `json:"family_name,omitempty"`
	Affiliation      string    `json:"affiliation,omitempty"`
	Role             string    `json:"role"`
	Status           string    `json:"status"`
	Message          string    `json:"message,omitempty"`
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
}

// CreateInvitationResponse is returned from invitation creation. Outcome is
// one of resolved-existing-user, unresolved-with-email and
// unresolved-without-email.
type CreateInvitationResponse struct {
	Invitation      InvitationResponse `json:"invitation"`
	InvitationToken string             `json:"invitation_token"`
	Outcome         string             `json:"outcome"`
	MailDelivered   bool               `json:"mail_delivered"`
}

// ListInvitationsResponse wraps a document's invitations, newest first.
type ListInvitationsResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
}

// CreateVersionRequest snapshots the supplied document state. Type
// defaults to MANUAL; MILESTONE marks significant saves.
type CreateVersionRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Description string `json:"description,omitempty"`
	VersionType string `json:"version_type,omitempty"`
}

// VersionResponse is the public view of a document version. Content is
// included only when a single version is fetched.
type VersionResponse struct {
	ID               string    `json:"id"`
	DocumentID       string    `json:"document_id"`
	VersionNumber    int64     `json:"version_number"`
	Title            string    `json:"title"`
	Content          string    `json:"content,omitempty"`
	Description      string    `json:"description,omitempty"`
	VersionType      string    `json:"version_type"`
	CreatorAccountID string    `json:"creator_account_id"`
	WordCount        int64     `json:"word_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// ListVersionsResponse wraps a document's history, newest first.
type ListVersionsResponse struct {
	Versions []VersionResponse `json:"versions"`
}

// HealthChecks reports per-dependency health for readiness probes.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is shared by the liveness and readiness endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
