package orcid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greyfield/scholarly/internal/collab/orcid"
)

func TestGetResearcherEmailsPrimaryFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/0000-0002-1825-0097/email", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"email":[
			{"email":"secondary@example.org","primary":false},
			{"email":"primary@example.org","primary":true}
		]}`))
	}))
	defer srv.Close()

	c := orcid.NewClient(srv.URL)
	emails, err := c.GetResearcherEmails(context.Background(), "0000-0002-1825-0097")
	require.NoError(t, err)
	require.Equal(t, []string{"primary@example.org", "secondary@example.org"}, emails)
}

func TestGetResearcherEmailsUnknownID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := orcid.NewClient(srv.URL)
	emails, err := c.GetResearcherEmails(context.Background(), "0000-0000-0000-0000")
	require.NoError(t, err)
	require.Empty(t, emails)
}

func TestGetResearcherEmailsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := orcid.NewClient(srv.URL)
	_, err := c.GetResearcherEmails(context.Background(), "0000-0000-0000-0001")
	require.Error(t, err)
}
