package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/greyfield/scholarly/internal/collab/domain"
	"github.com/greyfield/scholarly/internal/collab/mail"
	"github.com/greyfield/scholarly/internal/collab/store"
	"github.com/greyfield/scholarly/pkg/cryptox"
	"github.com/greyfield/scholarly/pkg/idx"
	"github.com/greyfield/scholarly/pkg/slogx"
)

var (
	ErrInvalidRequest      = errors.New("invalid invitation request")
	ErrNoInvitePermission  = errors.New("document not found or insufficient permission")
	ErrNoReadPermission    = errors.New("document not found or insufficient permission to list")
	ErrDuplicateInvitation = errors.New("a pending invitation already exists for this invitee")
	ErrAlreadyCollaborator = errors.New("invitee is already a collaborator on this document")
)

// DefaultInviteTTL is how long an invitation stays redeemable.
const DefaultInviteTTL = 30 * 24 * time.Hour

// InviteOutcome tells the caller which message to render. It never affects
// ledger state.
type InviteOutcome string

const (
	// OutcomeResolvedExistingUser: invitee matched an account; they get an
	// in-app notification as well as the invite mail.
	OutcomeResolvedExistingUser InviteOutcome = "resolved-existing-user"
	// OutcomeUnresolvedWithEmail: no account matched but an email is known.
	OutcomeUnresolvedWithEmail InviteOutcome = "unresolved-with-email"
	// OutcomeUnresolvedWithoutEmail: nothing to mail; the invite is only
	// redeemable via its token.
	OutcomeUnresolvedWithoutEmail InviteOutcome = "unresolved-without-email"
)

// CreateInvitationInput is the explicit payload for CreateInvitation.
// At least one of ORCIDID and Email is required.
type CreateInvitationInput struct {
	ORCIDID     string
	Email       string
	GivenName   string
	FamilyName  string
	Affiliation string
	Role        domain.CollabRole
	Message     string
}

// CreateInvitationResult is the summary returned to the caller. Token is
// the raw invitation token, surfaced exactly once. MailDelivered reports
// the best-effort mail handoff; false is a warning, not a failure.
type CreateInvitationResult struct {
	Invitation    domain.Invitation
	Token         string
	Outcome       InviteOutcome
	MailDelivered bool
}

// InvitationService is the collaboration invitation ledger.
type InvitationService struct {
	Store    store.Store
	Resolver *ResolverService
	Notifier *NotificationService
	Mailer   mail.Mailer

	// InviteTTL defaults to DefaultInviteTTL when zero.
	InviteTTL time.Duration
}

func (s *InvitationService) inviteTTL() time.Duration {
	if s.InviteTTL > 0 {
		return s.InviteTTL
	}
	return DefaultInviteTTL
}

// CreateInvitation creates a PENDING invitation for a document. It performs
// the following steps:
// 1. Validates the payload
// 2. Re-checks that the document exists and the inviter may invite
// 3. Resolves the invitee to an existing account (ORCID before email)
// 4. Atomically checks for a duplicate pending invitation and an existing
//    collaborator membership, then inserts the invitation
// 5. Post-commit, emits an in-app notification for resolved invitees and
//    hands the invite mail to the mail relay; neither can fail the create
func (s *InvitationService) CreateInvitation(
	ctx context.Context,
	documentID string,
	inviterID string,
	in CreateInvitationInput,
) (CreateInvitationResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	if documentID == "" || inviterID == "" {
		return CreateInvitationResult{}, ErrInvalidRequest
	}
	if in.ORCIDID == "" && in.Email == "" {
		log.Warn("invitation rejected: neither orcid id nor email supplied")
		return CreateInvitationResult{}, ErrInvalidRequest
	}
	if !in.Role.Valid() {
		log.Warn("invitation rejected: unknown role", slog.String("role", string(in.Role)))
		return CreateInvitationResult{}, ErrInvalidRequest
	}

	// 2. Defensive permission re-check. The gateway enforces authorization
	// before we are called, but a dangling document id or a revoked
	// membership must still fail here.
	doc, err := s.authorizeInvite(ctx, documentID, inviterID)
	if err != nil {
		return CreateInvitationResult{}, err
	}

	// 3. Resolve the invitee identity.
	resolved, err := s.Resolver.ResolveInvitee(ctx, ResolveInput{
		ORCIDID:     in.ORCIDID,
		Email:       in.Email,
		GivenName:   in.GivenName,
		FamilyName:  in.FamilyName,
		Affiliation: in.Affiliation,
	})
	if err != nil {
		log.Error("invitee resolution failed", slog.Any("error", err))
		return CreateInvitationResult{}, err
	}

	// 4. Generate the opaque token; only its fingerprint is stored.
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invitation token", slog.Any("error", err))
		return CreateInvitationResult{}, err
	}

	now := time.Now().UTC()
	inv := domain.Invitation{
		ID:               idx.New().String(),
		DocumentID:       documentID,
		InviterAccountID: inviterID,
		InvitedAccountID: resolved.AccountID,
		ORCIDID:          in.ORCIDID,
		Email:            resolved.Email,
		GivenName:        resolved.GivenName,
		FamilyName:       resolved.FamilyName,
		Affiliation:      resolved.Affiliation,
		Role:             in.Role,
		Status:           domain.InvitationPending,
		Message:          in.Message,
		TokenHash:        cryptox.FingerprintToken(token),
		ExpiresAt:        now.Add(s.inviteTTL()),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// 5. Duplicate and collaborator checks plus the insert run in one
	// transaction; the partial unique indexes catch whatever races past
	// the read.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Expired PENDING rows are ineffective already (read-time check)
		// but would trip the pending-uniqueness index, so retire them for
		// this document first.
		if err := tx.Invitations().MarkDocumentInvitationsExpired(ctx, documentID, now); err != nil {
			return err
		}

		_, err := tx.Invitations().FindPendingInvitation(ctx,
			documentID, resolved.AccountID, in.ORCIDID, resolved.Email, now)
		if err == nil {
			return ErrDuplicateInvitation
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if resolved.AccountID != "" {
			_, err := tx.Collaborators().GetCollaborator(ctx, documentID, resolved.AccountID)
			if err == nil {
				return ErrAlreadyCollaborator
			}
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}
		}

		if err := tx.Invitations().CreateInvitation(ctx, inv); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrDuplicateInvitation
			}
			return err
		}
		return nil
	})
	if err != nil {
		return CreateInvitationResult{}, err
	}

	log.Info("invitation created",
		slog.String("invitation_id", inv.ID),
		slog.String("document_id", documentID),
		slog.String("inviter_id", inviterID),
		slog.String("role", string(inv.Role)),
		slog.Bool("resolved", resolved.Matched),
	)

	inviter, err := s.Store.Accounts().GetAccountByID(ctx, inviterID)
	if err != nil {
		// The inviter row vanished between the permission check and now;
		// proceed with an anonymous inviter name rather than failing the
		// already-committed invitation.
		log.Warn("failed to load inviter profile", slog.Any("error", err))
	}

	// 6. Post-commit side effects. Each one is independently failable and
	// never rolls back the invitation.
	if resolved.Matched {
		err := s.Notifier.EmitCollaborationInvite(ctx, EmitCollaborationInviteInput{
			AccountID:     resolved.AccountID,
			InvitationID:  inv.ID,
			InviterName:   inviter.DisplayName(),
			DocumentTitle: doc.Title,
			Role:          inv.Role,
			DocumentKind:  doc.Kind,
		})
		if err != nil {
			log.Error("failed to emit invite notification",
				slog.String("invitation_id", inv.ID),
				slog.Any("error", err),
			)
		}
	}

	delivered := s.sendInviteMail(ctx, inv, inviter, doc, token)

	return CreateInvitationResult{
		Invitation:    inv,
		Token:         token,
		Outcome:       outcomeFor(resolved),
		MailDelivered: delivered,
	}, nil
}

// ListInvitations returns a document's invitations, newest first. Reads are
// open to the creator and any collaborator, a broader set than invite
// permission.
func (s *InvitationService) ListInvitations(ctx context.Context, documentID, requesterID string) ([]domain.Invitation, error) {
	if documentID == "" || requesterID == "" {
		return nil, ErrInvalidRequest
	}

	doc, err := s.Store.Documents().GetDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoReadPermission
		}
		return nil, err
	}

	if doc.CreatorAccountID != requesterID {
		_, err := s.Store.Collaborators().GetCollaborator(ctx, documentID, requesterID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoReadPermission
		}
		if err != nil {
			return nil, err
		}
	}

	return s.Store.Invitations().ListInvitationsByDocument(ctx, documentID)
}

// authorizeInvite loads the document and verifies the inviter is its
// creator or a collaborator flagged can_invite.
func (s *InvitationService) authorizeInvite(ctx context.Context, documentID, inviterID string) (domain.Document, error) {
	log := slogx.FromContext(ctx)

	doc, err := s.Store.Documents().GetDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("invite attempted on unknown document",
				slog.String("document_id", documentID),
			)
			return domain.Document{}, ErrNoInvitePermission
		}
		return domain.Document{}, err
	}

	if doc.CreatorAccountID == inviterID {
		return doc, nil
	}

	collab, err := s.Store.Collaborators().GetCollaborator(ctx, documentID, inviterID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Document{}, ErrNoInvitePermission
		}
		return domain.Document{}, err
	}
	if !collab.CanInvite {
		log.Warn("invite attempted without can_invite",
			slog.String("document_id", documentID),
			slog.String("inviter_id", inviterID),
		)
		return domain.Document{}, ErrNoInvitePermission
	}

	return doc, nil
}

// sendInviteMail hands the invite to the mail relay. Failures are logged
// and reported through the MailDelivered flag only; the invitation stands.
func (s *InvitationService) sendInviteMail(
	ctx context.Context,
	inv domain.Invitation,
	inviter domain.Account,
	doc domain.Document,
	token string,
) bool {
	log := slogx.FromContext(ctx)

	if s.Mailer == nil || inv.Email == "" {
		return false
	}

	err := s.Mailer.SendInvitation(ctx, mail.InvitationMail{
		InviteeEmail:    inv.Email,
		InviteeName:     inv.InviteeName(),
		InviterName:     inviter.DisplayName(),
		DocumentTitle:   doc.Title,
		Role:            string(inv.Role),
		Message:         inv.Message,
		InvitationToken: token,
		Kind:            string(doc.Kind),
	})
	if err != nil {
		log.Warn("invite mail handoff failed",
			slog.String("invitation_id", inv.ID),
			slog.Any("error", err),
		)
		return false
	}
	return true
}

func outcomeFor(r ResolvedInvitee) InviteOutcome {
	switch {
	case r.Matched:
		return OutcomeResolvedExistingUser
	case r.Email != "":
		return OutcomeUnresolvedWithEmail
	default:
		return OutcomeUnresolvedWithoutEmail
	}
}
