package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/greyfield/scholarly/pkg/slogx"
)

// InvitationMail is the payload handed to the institutional mail relay. The
// relay owns templating; we only supply the facts.
type InvitationMail struct {
	InviteeEmail    string `json:"inviteeEmail"`
	InviteeName     string `json:"inviteeName"`
	InviterName     string `json:"inviterName"`
	DocumentTitle   string `json:"documentTitle"`
	Role            string `json:"role"`
	Message         string `json:"message,omitempty"`
	InvitationToken string `json:"invitationToken"`
	Kind            string `json:"kind"`
}

// Mailer hands invitation mail to a delivery backend. Delivery is always
// best-effort; callers treat errors as warnings.
type Mailer interface {
	SendInvitation(ctx context.Context, m InvitationMail) error
}

// RelayMailer posts invitation mail to the institutional mail relay as
// JSON. It does not retry; the relay queues internally.
type RelayMailer struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewRelayMailer(baseURL, apiKey string) *RelayMailer {
	return &RelayMailer{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (m *RelayMailer) SendInvitation(ctx context.Context, mail InvitationMail) error {
	body, err := json.Marshal(mail)
	if err != nil {
		return fmt.Errorf("encode invitation mail: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		m.BaseURL+"/v1/mail/invitations", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build mail relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if m.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.APIKey)
	}

	resp, err := m.Client.Do(req)
	if err != nil {
		return fmt.Errorf("mail relay request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mail relay returned %s", resp.Status)
	}
	return nil
}

// LogMailer logs instead of delivering. Used in development and tests when
// no relay is configured.
type LogMailer struct{}

func (LogMailer) SendInvitation(ctx context.Context, m InvitationMail) error {
	slogx.FromContext(ctx).Info("invitation mail (log only)",
		slog.String("to", m.InviteeEmail),
		slog.String("document", m.DocumentTitle),
		slog.String("role", m.Role),
	)
	return nil
}
