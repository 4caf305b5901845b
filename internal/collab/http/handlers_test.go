package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/greyfield/scholarly/internal/collab/domain"
	httpapi "github.com/greyfield/scholarly/internal/collab/http"
	"github.com/greyfield/scholarly/internal/collab/mail"
	"github.com/greyfield/scholarly/internal/collab/service"
	"github.com/greyfield/scholarly/internal/collab/store"
	"github.com/greyfield/scholarly/internal/collab/store/drivers/sqlite"
	"github.com/greyfield/scholarly/pkg/collabsdk"
	"github.com/greyfield/scholarly/pkg/httpx"
	"github.com/greyfield/scholarly/pkg/idx"
)

type fixture struct {
	store       store.Store
	invitations *httpapi.InvitationsHandler
	versions    *httpapi.VersionsHandler
	owner       domain.Account
	doc         domain.Document
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	st, err := sqlite.NewStore("file::memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	now := time.Now().UTC()
	owner := domain.Account{
		ID: idx.New().String(), Email: "owner@example.edu",
		GivenName: "Ada", FamilyName: "Lovelace",
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, st.Accounts().CreateAccount(ctx, owner))

	doc := domain.Document{
		ID: idx.New().String(), Kind: domain.KindManuscript,
		CreatorAccountID: owner.ID, Title: "Notes", Content: "draft",
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, st.Documents().CreateDocument(ctx, doc))

	invSvc := &service.InvitationService{
		Store:    st,
		Resolver: &service.ResolverService{Store: st},
		Notifier: &service.NotificationService{Store: st},
		Mailer:   mail.LogMailer{},
	}

	return &fixture{
		store:       st,
		invitations: &httpapi.InvitationsHandler{InvitationService: invSvc},
		versions:    &httpapi.VersionsHandler{VersionService: &service.VersionService{Store: st}},
		owner:       owner,
		doc:         doc,
	}
}

// do dispatches through a mux so {id} path values resolve, with the account
// id injected the way AuthnMiddleware would.
func (f *fixture) do(method, pattern, target string, h http.HandlerFunc, accountID, body string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(method+" "+pattern, h)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if accountID != "" {
		req = req.WithContext(context.WithValue(req.Context(), httpx.CtxKeyAccountID, accountID))
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestInvitationCreateEndpoint(t *testing.T) {
	f := newFixture(t)
	pattern := "/v1/documents/{id}/invitations"
	target := "/v1/documents/" + f.doc.ID + "/invitations"

	rec := f.do(http.MethodPost, pattern, target, f.invitations.HandleCreate, f.owner.ID,
		`{"email":"grace@example.org","role":"EDITOR","message":"join us"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp collabsdk.CreateInvitationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "unresolved-with-email", resp.Outcome)
	require.NotEmpty(t, resp.InvitationToken)
	require.Equal(t, "PENDING", resp.Invitation.Status)

	// Re-invite while pending: 409.
	rec = f.do(http.MethodPost, pattern, target, f.invitations.HandleCreate, f.owner.ID,
		`{"email":"grace@example.org","role":"EDITOR"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	// No identity at all: 400.
	rec = f.do(http.MethodPost, pattern, target, f.invitations.HandleCreate, f.owner.ID,
		`{"role":"EDITOR"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// No authenticated account: 401.
	rec = f.do(http.MethodPost, pattern, target, f.invitations.HandleCreate, "",
		`{"email":"grace@example.org","role":"EDITOR"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unknown document reads as 404 rather than leaking existence.
	rec = f.do(http.MethodPost, pattern, "/v1/documents/nope/invitations", f.invitations.HandleCreate, f.owner.ID,
		`{"email":"grace@example.org","role":"EDITOR"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVersionEndpoints(t *testing.T) {
	f := newFixture(t)

	createTarget := "/v1/documents/" + f.doc.ID + "/versions"
	rec := f.do(http.MethodPost, "/v1/documents/{id}/versions", createTarget, f.versions.HandleCreate, f.owner.ID,
		`{"title":"Notes","content":"draft","description":"first save"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created collabsdk.VersionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, int64(1), created.VersionNumber)
	require.Equal(t, "MANUAL", created.VersionType, "type defaults to MANUAL")

	// List omits content.
	rec = f.do(http.MethodGet, "/v1/documents/{id}/versions", createTarget, f.versions.HandleList, f.owner.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list collabsdk.ListVersionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Versions, 1)
	require.Empty(t, list.Versions[0].Content)

	// Restore appends a RESTORE version.
	restoreTarget := createTarget + "/" + created.ID + "/restore"
	rec = f.do(http.MethodPost, "/v1/documents/{id}/versions/{versionID}/restore", restoreTarget,
		f.versions.HandleRestore, f.owner.ID, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var restored collabsdk.VersionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &restored))
	require.Equal(t, "RESTORE", restored.VersionType)
	require.Equal(t, "draft", restored.Content)

	// Unknown version: 404.
	rec = f.do(http.MethodPost, "/v1/documents/{id}/versions/{versionID}/restore",
		createTarget+"/nope/restore", f.versions.HandleRestore, f.owner.ID, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
