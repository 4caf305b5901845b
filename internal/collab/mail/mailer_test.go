package mail_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greyfield/scholarly/internal/collab/mail"
)

func TestRelayMailerSendInvitation(t *testing.T) {
	var got mail.InvitationMail
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/mail/invitations", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := mail.NewRelayMailer(srv.URL, "secret")
	err := m.SendInvitation(context.Background(), mail.InvitationMail{
		InviteeEmail:    "grace@example.edu",
		InviteeName:     "Grace Hopper",
		InviterName:     "Ada Lovelace",
		DocumentTitle:   "Compilers",
		Role:            "EDITOR",
		InvitationToken: "tok",
		Kind:            "manuscript",
	})
	require.NoError(t, err)
	require.Equal(t, "grace@example.edu", got.InviteeEmail)
	require.Equal(t, "tok", got.InvitationToken)
}

func TestRelayMailerRejectedByRelay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	m := mail.NewRelayMailer(srv.URL, "")
	err := m.SendInvitation(context.Background(), mail.InvitationMail{InviteeEmail: "x@y.z"})
	require.Error(t, err)
}
