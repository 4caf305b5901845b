package store

import (
	"context"
	"errors"
	"time"

	"github.com/greyfield/scholarly/internal/collab/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. It exposes sub-repositories to keep concerns tidy
// and testable.
type Store interface {
	Accounts() Accounts
	Documents() Documents
	Collaborators() Collaborators
	Invitations() Invitations
	Versions() Versions
	Notifications() Notifications

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to run the multi-step operations that must be atomic
	// (duplicate-check-then-insert, version numbering).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// GetAccountByID returns an account by id.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByORCID looks an account up by its linked ORCID id.
	GetAccountByORCID(ctx context.Context, orcidID string) (domain.Account, error)

	// GetAccountByEmail looks an account up by email.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// CreateAccount inserts a new account (id is provided by app via ULID).
	CreateAccount(ctx context.Context, a domain.Account) error
}

type Documents interface {
	// GetDocumentByID returns a document by id.
	GetDocumentByID(ctx context.Context, id string) (domain.Document, error)

	// CreateDocument inserts a new document.
	CreateDocument(ctx context.Context, d domain.Document) error

	// UpdateDocumentContent replaces the live title/content and bumps
	// updated_at. Used when a restore applies an older snapshot.
	UpdateDocumentContent(ctx context.Context, id, title, content string) error
}

type Collaborators interface {
	// GetCollaborator returns the membership row for (document, account).
	GetCollaborator(ctx context.Context, documentID, accountID string) (domain.Collaborator, error)

	// ListCollaborators returns all memberships on a document.
	ListCollaborators(ctx context.Context, documentID string) ([]domain.Collaborator, error)

	// AddCollaborator inserts a membership row.
	AddCollaborator(ctx context.Context, c domain.Collaborator) error
}

type Invitations interface {
	// CreateInvitation writes a new invitation. Partial unique indexes on
	// the PENDING identity columns surface races as ErrAlreadyExists.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetInvitationByID returns an invitation by id.
	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)

	// FindPendingInvitation returns a PENDING, unexpired invitation on the
	// document matching any of the non-empty identity keys (account id,
	// ORCID id, email).
	FindPendingInvitation(ctx context.Context, documentID, accountID, orcidID, email string, now time.Time) (domain.Invitation, error)

	// ListInvitationsByDocument returns all invitations for a document,
	// newest first.
	ListInvitationsByDocument(ctx context.Context, documentID string) ([]domain.Invitation, error)

	// MarkDocumentInvitationsExpired flips the document's expired PENDING
	// rows to EXPIRED so the pending-uniqueness indexes cannot block a
	// legitimate re-invite. Run inside the create transaction.
	MarkDocumentInvitationsExpired(ctx context.Context, documentID string, now time.Time) error

	// MarkExpiredInvitations is the global housekeeping variant.
	MarkExpiredInvitations(ctx context.Context, now time.Time) error
}

type Versions interface {
	// CreateVersion inserts a version row. UNIQUE(document_id,
	// version_number) surfaces concurrent numbering races as
	// ErrAlreadyExists.
	CreateVersion(ctx context.Context, v domain.DocumentVersion) error

	// GetVersionByID returns a version by id.
	GetVersionByID(ctx context.Context, id string) (domain.DocumentVersion, error)

	// ListVersionsByDocument returns a document's versions, highest
	// version number first.
	ListVersionsByDocument(ctx context.Context, documentID string) ([]domain.DocumentVersion, error)

	// GetLatestVersion returns the version with the highest number.
	GetLatestVersion(ctx context.Context, documentID string) (domain.DocumentVersion, error)

	// MaxVersionNumber returns the highest assigned version number, or 0
	// when the document has no versions.
	MaxVersionNumber(ctx context.Context, documentID string) (int64, error)
}

type Notifications interface {
	// CreateNotification persists an in-app notification record.
	CreateNotification(ctx context.Context, n domain.Notification) error

	// ListNotificationsByAccount returns an account's notifications,
	// newest first.
	ListNotificationsByAccount(ctx context.Context, accountID string) ([]domain.Notification, error)

	// DeleteReadNotificationsBefore prunes read notifications older than
	// cutoff (housekeeping).
	DeleteReadNotificationsBefore(ctx context.Context, cutoff time.Time) error
}
