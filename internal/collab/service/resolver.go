package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/greyfield/scholarly/internal/collab/domain"
	"github.com/greyfield/scholarly/internal/collab/store"
	"github.com/greyfield/scholarly/pkg/slogx"
)

// ErrLookupFailed reports that the account directory or the ORCID service
// was unavailable. A missing account is never an error, only a non-match.
var ErrLookupFailed = errors.New("identity lookup failed")

// ORCIDEmails fetches the public email addresses a researcher attached to
// their ORCID record. Used only when the caller supplied no email.
type ORCIDEmails interface {
	GetResearcherEmails(ctx context.Context, orcidID string) ([]string, error)
}

// ResolveInput carries the invitee details as supplied by the inviter.
// Profile fields act as overrides over whatever the directory holds.
type ResolveInput struct {
	ORCIDID     string
	Email       string
	GivenName   string
	FamilyName  string
	Affiliation string
}

// ResolvedInvitee is the outcome of invitee resolution. When Matched is
// false the profile fields are the caller-supplied values verbatim (plus a
// possibly ORCID-sourced email).
type ResolvedInvitee struct {
	AccountID   string
	Email       string
	GivenName   string
	FamilyName  string
	Affiliation string
	Matched     bool
}

// ResolverService matches invite input against existing accounts,
// preferring an ORCID match over an email match.
type ResolverService struct {
	Store store.Store
	ORCID ORCIDEmails
}

// ResolveInvitee resolves an invitee to an existing account by ORCID id
// first, then by email. It performs the following steps:
// 1. Look the ORCID id up in the directory
// 2. If that found nothing and no email was supplied, adopt the first
//    public email from the ORCID record
// 3. Look the email up in the directory
// 4. Otherwise report an unmatched invitee with the input verbatim
func (s *ResolverService) ResolveInvitee(ctx context.Context, in ResolveInput) (ResolvedInvitee, error) {
	log := slogx.FromContext(ctx)

	out := ResolvedInvitee{
		Email:       in.Email,
		GivenName:   in.GivenName,
		FamilyName:  in.FamilyName,
		Affiliation: in.Affiliation,
	}

	if in.ORCIDID != "" {
		acct, err := s.Store.Accounts().GetAccountByORCID(ctx, in.ORCIDID)
		switch {
		case err == nil:
			return s.matched(in, acct), nil
		case !errors.Is(err, store.ErrNotFound):
			return ResolvedInvitee{}, fmt.Errorf("%w: orcid directory: %v", ErrLookupFailed, err)
		}

		// No account for the ORCID id. Without an email we cannot match or
		// mail anything, so ask ORCID for the researcher's public emails.
		if in.Email == "" && s.ORCID != nil {
			emails, err := s.ORCID.GetResearcherEmails(ctx, in.ORCIDID)
			if err != nil {
				return ResolvedInvitee{}, fmt.Errorf("%w: orcid emails: %v", ErrLookupFailed, err)
			}
			if len(emails) > 0 {
				out.Email = emails[0]
				log.Debug("adopted email from orcid record",
					slog.String("orcid_id", in.ORCIDID),
				)
			}
		}
	}

	if out.Email != "" {
		acct, err := s.Store.Accounts().GetAccountByEmail(ctx, out.Email)
		switch {
		case err == nil:
			return s.matched(in, acct), nil
		case !errors.Is(err, store.ErrNotFound):
			return ResolvedInvitee{}, fmt.Errorf("%w: account directory: %v", ErrLookupFailed, err)
		}
	}

	return out, nil
}

// matched builds the resolved result for an existing account. Each profile
// field falls back in a fixed order: the caller's explicit override, then
// the stored profile value.
func (s *ResolverService) matched(in ResolveInput, acct domain.Account) ResolvedInvitee {
	return ResolvedInvitee{
		AccountID:   acct.ID,
		Email:       firstNonEmpty(acct.Email, in.Email),
		GivenName:   firstNonEmpty(in.GivenName, acct.GivenName),
		FamilyName:  firstNonEmpty(in.FamilyName, acct.FamilyName),
		Affiliation: firstNonEmpty(in.Affiliation, acct.Affiliation),
		Matched:     true,
	}
}

// firstNonEmpty returns the first non-empty value, formalizing the ordered
// profile-field fallback so every call site behaves identically.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
