package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/greyfield/scholarly/internal/collab/domain"
	"github.com/greyfield/scholarly/internal/collab/store"
	"github.com/greyfield/scholarly/internal/collab/store/drivers/sqlite"
	"github.com/greyfield/scholarly/pkg/idx"
)

func newStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore("file::memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func seedDoc(t *testing.T, st store.Store) domain.Document {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	acct := domain.Account{ID: idx.New().String(), Email: "creator@example.edu", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, st.Accounts().CreateAccount(ctx, acct))

	doc := domain.Document{
		ID:               idx.New().String(),
		Kind:             domain.KindManuscript,
		CreatorAccountID: acct.ID,
		Title:            "t",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	require.NoError(t, st.Documents().CreateDocument(ctx, doc))
	return doc
}

func pendingInvitation(doc domain.Document, email string) domain.Invitation {
	now := time.Now().UTC()
	return domain.Invitation{
		ID:               idx.New().String(),
		DocumentID:       doc.ID,
		InviterAccountID: doc.CreatorAccountID,
		Email:            email,
		Role:             domain.RoleContributor,
		Status:           domain.InvitationPending,
		TokenHash:        idx.New().String(),
		ExpiresAt:        now.Add(time.Hour),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestNotFoundSentinel(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	_, err := st.Accounts().GetAccountByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Invitations().GetInvitationByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Versions().GetLatestVersion(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

// The partial unique index permits only one PENDING invitation per invitee
// identity per document, while allowing any number of settled rows.
func TestPendingInvitationUniqueness(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	doc := seedDoc(t, st)

	first := pendingInvitation(doc, "dup@example.org")
	require.NoError(t, st.Invitations().CreateInvitation(ctx, first))

	second := pendingInvitation(doc, "dup@example.org")
	err := st.Invitations().CreateInvitation(ctx, second)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	// Once the first is no longer PENDING a new one is allowed.
	require.NoError(t, st.Invitations().MarkDocumentInvitationsExpired(ctx, doc.ID, time.Now().UTC().Add(2*time.Hour)))
	require.NoError(t, st.Invitations().CreateInvitation(ctx, second))
}

func TestFindPendingInvitationIgnoresExpired(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	doc := seedDoc(t, st)

	inv := pendingInvitation(doc, "soon@example.org")
	inv.ExpiresAt = time.Now().UTC().Add(time.Minute)
	require.NoError(t, st.Invitations().CreateInvitation(ctx, inv))

	now := time.Now().UTC()
	found, err := st.Invitations().FindPendingInvitation(ctx, doc.ID, "", "", inv.Email, now)
	require.NoError(t, err)
	require.Equal(t, inv.ID, found.ID)

	// Past the expiry the row is invisible even though status is still
	// PENDING on disk.
	_, err = st.Invitations().FindPendingInvitation(ctx, doc.ID, "", "", inv.Email, now.Add(2*time.Minute))
	require.ErrorIs(t, err, store.ErrNotFound)
}

// Only uniqueness violations become ErrAlreadyExists; FK and CHECK
// violations must not masquerade as duplicates.
func TestConstraintMappingIsUniqueOnly(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	doc := seedDoc(t, st)
	now := time.Now().UTC()

	// FK violation: inviter account does not exist.
	orphan := pendingInvitation(doc, "fk@example.org")
	orphan.InviterAccountID = "01XXNOSUCHACCOUNT00000000X"
	err := st.Invitations().CreateInvitation(ctx, orphan)
	require.Error(t, err)
	require.NotErrorIs(t, err, store.ErrAlreadyExists)

	// CHECK violation: unknown document kind.
	bad := domain.Document{
		ID:               idx.New().String(),
		Kind:             "memo",
		CreatorAccountID: doc.CreatorAccountID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err = st.Documents().CreateDocument(ctx, bad)
	require.Error(t, err)
	require.NotErrorIs(t, err, store.ErrAlreadyExists)
}

func TestVersionNumberUniqueness(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	doc := seedDoc(t, st)

	v := domain.DocumentVersion{
		ID:               idx.New().String(),
		DocumentID:       doc.ID,
		VersionNumber:    1,
		VersionType:      domain.VersionManual,
		CreatorAccountID: doc.CreatorAccountID,
		CreatedAt:        time.Now().UTC(),
	}
	require.NoError(t, st.Versions().CreateVersion(ctx, v))

	dup := v
	dup.ID = idx.New().String()
	require.ErrorIs(t, st.Versions().CreateVersion(ctx, dup), store.ErrAlreadyExists)

	n, err := st.Versions().MaxVersionNumber(ctx, doc.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	// An empty history reports zero, not an error.
	n, err = st.Versions().MaxVersionNumber(ctx, "missing")
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestWithTxRollback(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	doc := seedDoc(t, st)

	boom := func(tx store.Tx) error {
		if err := tx.Invitations().CreateInvitation(ctx, pendingInvitation(doc, "roll@example.org")); err != nil {
			return err
		}
		return context.Canceled
	}
	require.Error(t, st.WithTx(ctx, boom))

	invs, err := st.Invitations().ListInvitationsByDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Empty(t, invs, "failed transaction leaves no rows behind")
}

func TestNotificationLifecycle(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	doc := seedDoc(t, st)
	now := time.Now().UTC()

	read := now.Add(-time.Hour)
	old := domain.Notification{
		ID:        idx.New().String(),
		AccountID: doc.CreatorAccountID,
		Kind:      domain.NotificationCollabInvite,
		Title:     "old",
		Payload:   "{}",
		ReadAt:    &read,
		CreatedAt: now.Add(-48 * time.Hour),
	}
	fresh := domain.Notification{
		ID:        idx.New().String(),
		AccountID: doc.CreatorAccountID,
		Kind:      domain.NotificationCollabInvite,
		Title:     "fresh",
		Payload:   "{}",
		CreatedAt: now,
	}
	require.NoError(t, st.Notifications().CreateNotification(ctx, old))
	require.NoError(t, st.Notifications().CreateNotification(ctx, fresh))

	// Pruning removes only read notifications older than the cutoff.
	require.NoError(t, st.Notifications().DeleteReadNotificationsBefore(ctx, now.Add(-24*time.Hour)))

	left, err := st.Notifications().ListNotificationsByAccount(ctx, doc.CreatorAccountID)
	require.NoError(t, err)
	require.Len(t, left, 1)
	require.Equal(t, "fresh", left[0].Title)
}
