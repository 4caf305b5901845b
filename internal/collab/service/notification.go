package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/greyfield/scholarly/internal/collab/domain"
	"github.com/greyfield/scholarly/internal/collab/store"
	"github.com/greyfield/scholarly/pkg/idx"
	"github.com/greyfield/scholarly/pkg/slogx"
)

// NotificationService writes in-app notification records. It is strictly a
// post-commit emitter: it never participates in the ledger transaction and
// its errors never undo ledger writes.
type NotificationService struct {
	Store store.Store
}

// EmitCollaborationInviteInput carries everything the notification needs;
// the emitter does no lookups of its own.
type EmitCollaborationInviteInput struct {
	AccountID     string
	InvitationID  string
	InviterName   string
	DocumentTitle string
	Role          domain.CollabRole
	DocumentKind  domain.DocumentKind
}

// invitePayload is the machine-readable half of the notification. The
// frontend uses it to render accept/decline actions.
type invitePayload struct {
	InvitationID  string `json:"invitationId"`
	InviterName   string `json:"inviterName"`
	DocumentTitle string `json:"documentTitle"`
	Role          string `json:"role"`
	Action        string `json:"action"`
	DocumentKind  string `json:"documentKind"`
}

// EmitCollaborationInvite writes the in-app notification for a resolved
// invitee.
func (s *NotificationService) EmitCollaborationInvite(ctx context.Context, in EmitCollaborationInviteInput) error {
	payload, err := json.Marshal(invitePayload{
		InvitationID:  in.InvitationID,
		InviterName:   in.InviterName,
		DocumentTitle: in.DocumentTitle,
		Role:          string(in.Role),
		Action:        "pending",
		DocumentKind:  string(in.DocumentKind),
	})
	if err != nil {
		return fmt.Errorf("encode invite payload: %w", err)
	}

	n := domain.Notification{
		ID:        idx.New().String(),
		AccountID: in.AccountID,
		Kind:      domain.NotificationCollabInvite,
		Title:     "Collaboration invitation",
		Message:   inviteMessage(in),
		Payload:   string(payload),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.Store.Notifications().CreateNotification(ctx, n); err != nil {
		return fmt.Errorf("persist notification: %w", err)
	}

	slogx.FromContext(ctx).Info("notification emitted",
		slog.String("notification_id", n.ID),
		slog.String("account_id", in.AccountID),
		slog.String("kind", string(n.Kind)),
	)
	return nil
}

// ListNotifications returns an account's notifications, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, accountID string) ([]domain.Notification, error) {
	return s.Store.Notifications().ListNotificationsByAccount(ctx, accountID)
}

// inviteMessage renders the human-readable notification line. Proposals
// and manuscripts are phrased differently so the reader knows which
// workspace the invite concerns.
func inviteMessage(in EmitCollaborationInviteInput) string {
	role := roleLabel(in.Role)
	if in.DocumentKind == domain.KindProposal {
		return fmt.Sprintf("%s invited you to join the grant proposal %q as %s.",
			in.InviterName, in.DocumentTitle, role)
	}
	return fmt.Sprintf("%s invited you to collaborate on the manuscript %q as %s.",
		in.InviterName, in.DocumentTitle, role)
}

func roleLabel(r domain.CollabRole) string {
	switch r {
	case domain.RoleOwner:
		return "an owner"
	case domain.RoleAdmin:
		return "an administrator"
	case domain.RoleEditor:
		return "an editor"
	case domain.RoleContributor:
		return "a contributor"
	case domain.RoleReviewer:
		return "a reviewer"
	default:
		return string(r)
	}
}
