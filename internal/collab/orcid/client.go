// Package orcid is a minimal client for the ORCID public API, covering
// only the email endpoint invitee resolution needs.
package orcid

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL is the production ORCID public API.
const DefaultBaseURL = "https://pub.orcid.org/v3.0"

// Client fetches public ORCID records.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// emailRecord mirrors the /email response shape. Only visible (public)
// addresses appear in it.
type emailRecord struct {
	Email []struct {
		Email   string `json:"email"`
		Primary bool   `json:"primary"`
	} `json:"email"`
}

// GetResearcherEmails returns the public email addresses on an ORCID
// record, primary address first. An ORCID id with no public emails yields
// an empty slice, not an error.
func (c *Client) GetResearcherEmails(ctx context.Context, orcidID string) ([]string, error) {
	url := fmt.Sprintf("%s/%s/email", c.BaseURL, orcidID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build orcid request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("orcid request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("orcid returned %s", resp.Status)
	}

	var rec emailRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode orcid response: %w", err)
	}

	out := make([]string, 0, len(rec.Email))
	for _, e := range rec.Email {
		if e.Primary {
			out = append([]string{e.Email}, out...)
			continue
		}
		out = append(out, e.Email)
	}
	return out, nil
}
