package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/greyfield/scholarly/internal/collab/domain"
	"github.com/greyfield/scholarly/internal/collab/service"
	"github.com/greyfield/scholarly/pkg/collabsdk"
	"github.com/greyfield/scholarly/pkg/httpx"
	"github.com/greyfield/scholarly/pkg/slogx"
)

type VersionsHandler struct {
	VersionService *service.VersionService
}

// HandleCreate godoc
//
//	@Summary		Snapshot a document
//	@Description	Appends an immutable version of the supplied document state. Version numbers are gapless and strictly increasing per document.
//	@Tags			Versions
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Document ID"
//	@Param			request	body		collabsdk.CreateVersionRequest	true	"Snapshot contents"
//	@Success		201		{object}	collabsdk.VersionResponse		"version"
//	@Failure		400		{object}	httpx.ErrorResponse				"error, error_description"
//	@Failure		401		{object}	httpx.ErrorResponse				"error, error_description"
//	@Failure		404		{object}	httpx.ErrorResponse				"error, error_description"
//	@Failure		500		{object}	httpx.ErrorResponse				"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/documents/{id}/versions [post].
func (h *VersionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req collabsdk.CreateVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	creatorID := httpx.AccountID(ctx)
	if creatorID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	vtype := domain.VersionType(req.VersionType)
	if req.VersionType == "" {
		vtype = domain.VersionManual
	}

	v, err := h.VersionService.CreateVersion(ctx, r.PathValue("id"), creatorID,
		service.CreateVersionInput{
			Title:       req.Title,
			Content:     req.Content,
			Description: req.Description,
			VersionType: vtype,
		})
	if err != nil {
		h.writeVersionError(w, log, err, "Failed to create version")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toVersionResponse(v, true))
}

// HandleList godoc
//
//	@Summary		List a document's versions
//	@Description	Returns the version history, newest first. Content bodies are omitted; fetch a single version for the full snapshot.
//	@Tags			Versions
//	@Produce		json
//	@Param			id	path		string							true	"Document ID"
//	@Success		200	{object}	collabsdk.ListVersionsResponse	"versions"
//	@Failure		401	{object}	httpx.ErrorResponse				"error, error_description"
//	@Failure		404	{object}	httpx.ErrorResponse				"error, error_description"
//	@Failure		500	{object}	httpx.ErrorResponse				"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/documents/{id}/versions [get].
func (h *VersionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	versions, err := h.VersionService.ListVersions(ctx, r.PathValue("id"))
	if err != nil {
		h.writeVersionError(w, log, err, "Failed to list versions")
		return
	}

	out := collabsdk.ListVersionsResponse{
		Versions: make([]collabsdk.VersionResponse, 0, len(versions)),
	}
	for _, v := range versions {
		out.Versions = append(out.Versions, toVersionResponse(v, false))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary		Fetch a single version
//	@Description	Returns one version including its full content snapshot.
//	@Tags			Versions
//	@Produce		json
//	@Param			id			path		string						true	"Document ID"
//	@Param			versionID	path		string						true	"Version ID"
//	@Success		200			{object}	collabsdk.VersionResponse	"version"
//	@Failure		401			{object}	httpx.ErrorResponse			"error, error_description"
//	@Failure		404			{object}	httpx.ErrorResponse			"error, error_description"
//	@Failure		500			{object}	httpx.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/documents/{id}/versions/{versionID} [get].
func (h *VersionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	v, err := h.VersionService.GetVersion(ctx, r.PathValue("id"), r.PathValue("versionID"))
	if err != nil {
		h.writeVersionError(w, log, err, "Failed to fetch version")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toVersionResponse(v, true))
}

// HandleRestore godoc
//
//	@Summary		Restore an older version
//	@Description	Applies an older snapshot to the live document. History stays append-only: unsaved live changes are backed up as an AUTO version, then a RESTORE copy of the target is appended and becomes current.
//	@Tags			Versions
//	@Produce		json
//	@Param			id			path		string						true	"Document ID"
//	@Param			versionID	path		string						true	"Version ID to restore"
//	@Success		201			{object}	collabsdk.VersionResponse	"the new RESTORE version"
//	@Failure		401			{object}	httpx.ErrorResponse			"error, error_description"
//	@Failure		404			{object}	httpx.ErrorResponse			"error, error_description"
//	@Failure		500			{object}	httpx.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/documents/{id}/versions/{versionID}/restore [post].
func (h *VersionsHandler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	restorerID := httpx.AccountID(ctx)
	if restorerID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	v, err := h.VersionService.RestoreVersion(ctx, r.PathValue("id"), r.PathValue("versionID"), restorerID)
	if err != nil {
		h.writeVersionError(w, log, err, "Failed to restore version")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toVersionResponse(v, true))
}

func (h *VersionsHandler) writeVersionError(w http.ResponseWriter, log *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
			"A valid version type is required")
	case errors.Is(err, service.ErrDocumentNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Document not found")
	case errors.Is(err, service.ErrVersionNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Version not found")
	default:
		log.Error(fallback, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", fallback)
	}
}

func toVersionResponse(v domain.DocumentVersion, includeContent bool) collabsdk.VersionResponse {
	out := collabsdk.VersionResponse{
		ID:               v.ID,
		DocumentID:       v.DocumentID,
		VersionNumber:    v.VersionNumber,
		Title:            v.Title,
		Description:      v.Description,
		VersionType:      string(v.VersionType),
		CreatorAccountID: v.CreatorAccountID,
		WordCount:        v.WordCount,
		CreatedAt:        v.CreatedAt,
	}
	if includeContent {
		out.Content = v.Content
	}
	return out
}
