package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/greyfield/scholarly/internal/collab/domain"
	"github.com/greyfield/scholarly/internal/collab/service"
	"github.com/greyfield/scholarly/pkg/collabsdk"
	"github.com/greyfield/scholarly/pkg/httpx"
	"github.com/greyfield/scholarly/pkg/slogx"
)

type InvitationsHandler struct {
	InvitationService *service.InvitationService
}

// HandleCreate godoc
//
//	@Summary		Invite a collaborator
//	@Description	Creates a PENDING invitation for a document. The invitee is matched against existing accounts by ORCID iD first, then by email; at most one pending invitation may exist per invitee and document.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Document ID"
//	@Param			request	body		collabsdk.CreateInvitationRequest	true	"Invitation details"
//	@Success		201		{object}	collabsdk.CreateInvitationResponse	"invitation, invitation_token, outcome"
//	@Failure		400		{object}	httpx.ErrorResponse					"error, error_description"
//	@Failure		401		{object}	httpx.ErrorResponse					"error, error_description"
//	@Failure		404		{object}	httpx.ErrorResponse					"error, error_description"
//	@Failure		409		{object}	httpx.ErrorResponse					"error, error_description"
//	@Failure		500		{object}	httpx.ErrorResponse					"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/documents/{id}/invitations [post].
func (h *InvitationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req collabsdk.CreateInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	inviterID := httpx.AccountID(ctx)
	if inviterID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	role := domain.CollabRole(req.Role)
	if req.Role == "" {
		role = domain.RoleContributor
	}

	result, err := h.InvitationService.CreateInvitation(ctx, r.PathValue("id"), inviterID,
		service.CreateInvitationInput{
			ORCIDID:     req.ORCIDID,
			Email:       req.Email,
			GivenName:   req.GivenName,
			FamilyName:  req.FamilyName,
			Affiliation: req.Affiliation,
			Role:        role,
			Message:     req.Message,
		})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
				"An ORCID iD or email and a valid role are required")
		case errors.Is(err, service.ErrNoInvitePermission):
			httpx.WriteError(w, http.StatusNotFound, "not_found",
				"Document not found or you may not invite to it")
		case errors.Is(err, service.ErrDuplicateInvitation):
			httpx.WriteError(w, http.StatusConflict, "duplicate_invitation",
				"A pending invitation already exists for this person")
		case errors.Is(err, service.ErrAlreadyCollaborator):
			httpx.WriteError(w, http.StatusConflict, "already_collaborator",
				"This person already collaborates on the document")
		case errors.Is(err, service.ErrLookupFailed):
			httpx.WriteError(w, http.StatusBadGateway, "lookup_failed",
				"Identity lookup is temporarily unavailable")
		default:
			log.Error("failed to create invitation", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error",
				"Failed to create invitation")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, collabsdk.CreateInvitationResponse{
		Invitation:      toInvitationResponse(result.Invitation),
		InvitationToken: result.Token,
		Outcome:         string(result.Outcome),
		MailDelivered:   result.MailDelivered,
	})
}

// HandleList godoc
//
//	@Summary		List a document's invitations
//	@Description	Returns all invitations for a document, newest first. Available to the document creator and any collaborator.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path		string								true	"Document ID"
//	@Success		200	{object}	collabsdk.ListInvitationsResponse	"invitations"
//	@Failure		401	{object}	httpx.ErrorResponse					"error, error_description"
//	@Failure		404	{object}	httpx.ErrorResponse					"error, error_description"
//	@Failure		500	{object}	httpx.ErrorResponse					"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/documents/{id}/invitations [get].
func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	requesterID := httpx.AccountID(ctx)
	if requesterID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	invs, err := h.InvitationService.ListInvitations(ctx, r.PathValue("id"), requesterID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid document id")
		case errors.Is(err, service.ErrNoReadPermission):
			httpx.WriteError(w, http.StatusNotFound, "not_found",
				"Document not found or you may not view its invitations")
		default:
			log.Error("failed to list invitations", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error",
				"Failed to list invitations")
		}
		return
	}

	out := collabsdk.ListInvitationsResponse{
		Invitations: make([]collabsdk.InvitationResponse, 0, len(invs)),
	}
	for _, inv := range invs {
		out.Invitations = append(out.Invitations, toInvitationResponse(inv))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func toInvitationResponse(inv domain.Invitation) collabsdk.InvitationResponse {
	return collabsdk.InvitationResponse{
		ID:               inv.ID,
		DocumentID:       inv.DocumentID,
		InviterAccountID: inv.InviterAccountID,
		InvitedAccountID: inv.InvitedAccountID,
		ORCIDID:          inv.ORCIDID,
		Email:            inv.Email,
		GivenName:        inv.GivenName,
		FamilyName:       inv.FamilyName,
		Affiliation:      inv.Affiliation,
		Role:             string(inv.Role),
		Status:           string(inv.Status),
		Message:          inv.Message,
		ExpiresAt:        inv.ExpiresAt,
		CreatedAt:        inv.CreatedAt,
	}
}
