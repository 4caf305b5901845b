package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/greyfield/scholarly/internal/collab/domain"
	"github.com/greyfield/scholarly/internal/collab/mail"
	"github.com/greyfield/scholarly/internal/collab/service"
)

type failingMailer struct{}

func (failingMailer) SendInvitation(ctx context.Context, m mail.InvitationMail) error {
	return errors.New("relay unreachable")
}

func TestCreateInvitationResolvedExistingUser(t *testing.T) {
	st := newTestStore(t)
	svc := newInvitationService(st)

	owner := seedAccount(t, st, domain.Account{GivenName: "Ada", FamilyName: "Lovelace", Email: "ada@example.edu"})
	invitee := seedAccount(t, st, domain.Account{
		ORCIDID:    "0000-0002-1825-0097",
		Email:      "grace@example.edu",
		GivenName:  "Grace",
		FamilyName: "Hopper",
	})
	doc := seedDocument(t, st, domain.Document{CreatorAccountID: owner.ID, Title: "Compiler Design"})

	result, err := svc.CreateInvitation(context.Background(), doc.ID, owner.ID,
		service.CreateInvitationInput{
			ORCIDID: invitee.ORCIDID,
			Role:    domain.RoleEditor,
		})
	require.NoError(t, err)

	require.Equal(t, service.OutcomeResolvedExistingUser, result.Outcome)
	require.Equal(t, invitee.ID, result.Invitation.InvitedAccountID)
	require.Equal(t, domain.InvitationPending, result.Invitation.Status)
	require.NotEmpty(t, result.Token)
	require.NotEqual(t, result.Token, result.Invitation.TokenHash, "raw token must not be stored")

	// The profile should have been filled from the matched account.
	require.Equal(t, "grace@example.edu", result.Invitation.Email)
	require.Equal(t, "Grace", result.Invitation.GivenName)

	// A resolved invitee gets an in-app notification.
	notifications, err := st.Notifications().ListNotificationsByAccount(context.Background(), invitee.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, domain.NotificationCollabInvite, notifications[0].Kind)
	require.Contains(t, notifications[0].Message, "Compiler Design")
}

func TestCreateInvitationUnresolvedOutcomes(t *testing.T) {
	st := newTestStore(t)
	svc := newInvitationService(st)

	owner := seedAccount(t, st, domain.Account{Email: "owner@example.edu"})
	doc := seedDocument(t, st, domain.Document{CreatorAccountID: owner.ID, Title: "Draft"})

	withEmail, err := svc.CreateInvitation(context.Background(), doc.ID, owner.ID,
		service.CreateInvitationInput{
			Email: "stranger@example.org",
			Role:  domain.RoleReviewer,
		})
	require.NoError(t, err)
	require.Equal(t, service.OutcomeUnresolvedWithEmail, withEmail.Outcome)
	require.Empty(t, withEmail.Invitation.InvitedAccountID)

	withoutEmail, err := svc.CreateInvitation(context.Background(), doc.ID, owner.ID,
		service.CreateInvitationInput{
			ORCIDID: "0000-0001-5000-0007",
			Role:    domain.RoleReviewer,
		})
	require.NoError(t, err)
	require.Equal(t, service.OutcomeUnresolvedWithoutEmail, withoutEmail.Outcome)
	require.False(t, withoutEmail.MailDelivered, "nothing to mail without an address")
}

func TestCreateInvitationValidation(t *testing.T) {
	st := newTestStore(t)
	svc := newInvitationService(st)

	owner := seedAccount(t, st, domain.Account{Email: "owner@example.edu"})
	doc := seedDocument(t, st, domain.Document{CreatorAccountID: owner.ID})

	// Neither ORCID id nor email.
	_, err := svc.CreateInvitation(context.Background(), doc.ID, owner.ID,
		service.CreateInvitationInput{Role: domain.RoleEditor})
	require.ErrorIs(t, err, service.ErrInvalidRequest)

	// Unknown role.
	_, err = svc.CreateInvitation(context.Background(), doc.ID, owner.ID,
		service.CreateInvitationInput{Email: "a@b.c", Role: "SUPERUSER"})
	require.ErrorIs(t, err, service.ErrInvalidRequest)
}

func TestCreateInvitationPermission(t *testing.T) {
	st := newTestStore(t)
	svc := newInvitationService(st)

	owner := seedAccount(t, st, domain.Account{Email: "owner@example.edu"})
	member := seedAccount(t, st, domain.Account{Email: "member@example.edu"})
	outsider := seedAccount(t, st, domain.Account{Email: "outsider@example.edu"})
	doc := seedDocument(t, st, domain.Document{CreatorAccountID: owner.ID})

	in := service.CreateInvitationInput{Email: "new@example.org", Role: domain.RoleContributor}

	// Unknown document.
	_, err := svc.CreateInvitation(context.Background(), "01XXNOSUCHDOCUMENT0000000X", owner.ID, in)
	require.ErrorIs(t, err, service.ErrNoInvitePermission)

	// Outsider cannot invite.
	_, err = svc.CreateInvitation(context.Background(), doc.ID, outsider.ID, in)
	require.ErrorIs(t, err, service.ErrNoInvitePermission)

	// Collaborator without can_invite cannot invite.
	seedCollaborator(t, st, domain.Collaborator{DocumentID: doc.ID, AccountID: member.ID, CanInvite: false})
	_, err = svc.CreateInvitation(context.Background(), doc.ID, member.ID, in)
	require.ErrorIs(t, err, service.ErrNoInvitePermission)

	// The creator always can.
	_, err = svc.CreateInvitation(context.Background(), doc.ID, owner.ID, in)
	require.NoError(t, err)
}

func TestCreateInvitationDuplicatePending(t *testing.T) {
	st := newTestStore(t)
	svc := newInvitationService(st)

	owner := seedAccount(t, st, domain.Account{Email: "owner@example.edu"})
	doc := seedDocument(t, st, domain.Document{CreatorAccountID: owner.ID})

	in := service.CreateInvitationInput{Email: "dup@example.org", Role: domain.RoleContributor}

	_, err := svc.CreateInvitation(context.Background(), doc.ID, owner.ID, in)
	require.NoError(t, err)

	_, err = svc.CreateInvitation(context.Background(), doc.ID, owner.ID, in)
	require.ErrorIs(t, err, service.ErrDuplicateInvitation)
}

func TestCreateInvitationReinviteAfterExpiry(t *testing.T) {
	st := newTestStore(t)
	svc := newInvitationService(st)
	svc.InviteTTL = time.Millisecond

	owner := seedAccount(t, st, domain.Account{Email: "owner@example.edu"})
	doc := seedDocument(t, st, domain.Document{CreatorAccountID: owner.ID})

	in := service.CreateInvitationInput{Email: "slow@example.org", Role: domain.RoleContributor}

	first, err := svc.CreateInvitation(context.Background(), doc.ID, owner.ID, in)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	// The stale pending row must not block a fresh invitation.
	svc.InviteTTL = time.Hour
	second, err := svc.CreateInvitation(context.Background(), doc.ID, owner.ID, in)
	require.NoError(t, err)
	require.NotEqual(t, first.Invitation.ID, second.Invitation.ID)

	// The old one was flipped to EXPIRED inside the create transaction.
	old, err := st.Invitations().GetInvitationByID(context.Background(), first.Invitation.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationExpired, old.Status)
}

func TestCreateInvitationAlreadyCollaborator(t *testing.T) {
	st := newTestStore(t)
	svc := newInvitationService(st)

	owner := seedAccount(t, st, domain.Account{Email: "owner@example.edu"})
	member := seedAccount(t, st, domain.Account{Email: "member@example.edu"})
	doc := seedDocument(t, st, domain.Document{CreatorAccountID: owner.ID})
	seedCollaborator(t, st, domain.Collaborator{DocumentID: doc.ID, AccountID: member.ID})

	_, err := svc.CreateInvitation(context.Background(), doc.ID, owner.ID,
		service.CreateInvitationInput{Email: member.Email, Role: domain.RoleEditor})
	require.ErrorIs(t, err, service.ErrAlreadyCollaborator)
}

func TestCreateInvitationMailFailureIsNotFatal(t *testing.T) {
	st := newTestStore(t)
	svc := newInvitationService(st)
	svc.Mailer = failingMailer{}

	owner := seedAccount(t, st, domain.Account{Email: "owner@example.edu"})
	doc := seedDocument(t, st, domain.Document{CreatorAccountID: owner.ID})

	result, err := svc.CreateInvitation(context.Background(), doc.ID, owner.ID,
		service.CreateInvitationInput{Email: "unlucky@example.org", Role: domain.RoleContributor})
	require.NoError(t, err)
	require.False(t, result.MailDelivered)

	// The ledger write stands.
	_, err = st.Invitations().GetInvitationByID(context.Background(), result.Invitation.ID)
	require.NoError(t, err)
}

// Concurrent invites for the same invitee must yield exactly one PENDING
// invitation no matter how the goroutines interleave.
func TestCreateInvitationConcurrentDedup(t *testing.T) {
	st := newTestStore(t)
	svc := newInvitationService(st)

	owner := seedAccount(t, st, domain.Account{Email: "owner@example.edu"})
	doc := seedDocument(t, st, domain.Document{CreatorAccountID: owner.ID})

	const workers = 8
	in := service.CreateInvitationInput{Email: "contested@example.org", Role: domain.RoleContributor}

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateInvitation(context.Background(), doc.ID, owner.ID, in)
		}(i)
	}
	wg.Wait()

	var created, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, service.ErrDuplicateInvitation):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, created)
	require.Equal(t, workers-1, duplicates)

	invs, err := st.Invitations().ListInvitationsByDocument(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Len(t, invs, 1)
}

func TestListInvitationsVisibility(t *testing.T) {
	st := newTestStore(t)
	svc := newInvitationService(st)

	owner := seedAccount(t, st, domain.Account{Email: "owner@example.edu"})
	member := seedAccount(t, st, domain.Account{Email: "member@example.edu"})
	outsider := seedAccount(t, st, domain.Account{Email: "outsider@example.edu"})
	doc := seedDocument(t, st, domain.Document{CreatorAccountID: owner.ID})
	seedCollaborator(t, st, domain.Collaborator{DocumentID: doc.ID, AccountID: member.ID})

	_, err := svc.CreateInvitation(context.Background(), doc.ID, owner.ID,
		service.CreateInvitationInput{Email: "one@example.org", Role: domain.RoleContributor})
	require.NoError(t, err)

	// Creator and collaborator can list, even without invite permission.
	for _, requester := range []string{owner.ID, member.ID} {
		invs, err := svc.ListInvitations(context.Background(), doc.ID, requester)
		require.NoError(t, err)
		require.Len(t, invs, 1)
	}

	_, err = svc.ListInvitations(context.Background(), doc.ID, outsider.ID)
	require.ErrorIs(t, err, service.ErrNoReadPermission)
}
