// internal/pkg/email/resend.go
package email

import (
	"context"
	"fmt"
	"time"

	"github.com/ayuraa/wellness-backend/internal/config"
	"github.com/go-resty/resty/v2"
)

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

type resendResponse struct {
	ID string `json:"id"`
}

// resendSender posts mail to the Resend HTTP API
type resendSender struct {
	cfg    config.EmailConfig
	client *resty.Client
}

func newResendSender(cfg config.EmailConfig) *resendSender {
	return &resendSender{
		cfg: cfg,
		client: resty.New().
			SetBaseURL(cfg.APIURL).
			SetTimeout(30*time.Second).
			SetAuthToken(cfg.APIKey).
			SetHeader("Content-Type", "application/json"),
	}
}

func (s *resendSender) Send(ctx context.Context, email *Email) error {
	if s.cfg.APIKey == "" {
		return fmt.Errorf("resend API key not configured")
	}

	var out resendResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(resendRequest{
			From:    fromAddress(s.cfg),
			To:      email.To,
			Subject: email.Subject,
			HTML:    email.HTMLContent,
			ReplyTo: s.cfg.ReplyTo,
		}).
		SetResult(&out).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("failed to send email request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("resend API error: status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
