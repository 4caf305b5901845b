package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/greyfield/scholarly/internal/collab/domain"
	"github.com/greyfield/scholarly/internal/collab/mail"
	"github.com/greyfield/scholarly/internal/collab/service"
	"github.com/greyfield/scholarly/internal/collab/store"
	"github.com/greyfield/scholarly/internal/collab/store/drivers/sqlite"
	"github.com/greyfield/scholarly/pkg/idx"
)

// newTestStore returns a migrated in-memory store.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore("file::memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	return st
}

func seedAccount(t *testing.T, st store.Store, a domain.Account) domain.Account {
	t.Helper()

	if a.ID == "" {
		a.ID = idx.New().String()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	require.NoError(t, st.Accounts().CreateAccount(context.Background(), a))
	return a
}

func seedDocument(t *testing.T, st store.Store, d domain.Document) domain.Document {
	t.Helper()

	if d.ID == "" {
		d.ID = idx.New().String()
	}
	if d.Kind == "" {
		d.Kind = domain.KindManuscript
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	require.NoError(t, st.Documents().CreateDocument(context.Background(), d))
	return d
}

func seedCollaborator(t *testing.T, st store.Store, c domain.Collaborator) domain.Collaborator {
	t.Helper()

	if c.Role == "" {
		c.Role = domain.RoleEditor
	}
	c.CreatedAt = time.Now().UTC()
	require.NoError(t, st.Collaborators().AddCollaborator(context.Background(), c))
	return c
}

// newInvitationService wires an InvitationService over st with a log-only
// mailer and no ORCID client.
func newInvitationService(st store.Store) *service.InvitationService {
	return &service.InvitationService{
		Store:    st,
		Resolver: &service.ResolverService{Store: st},
		Notifier: &service.NotificationService{Store: st},
		Mailer:   mail.LogMailer{},
	}
}
