// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/ayuraa/wellness-backend/internal/config"
	"github.com/sirupsen/logrus"
)

// Sender delivers one rendered email
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// SenderFunc adapts a function to Sender
type SenderFunc func(ctx context.Context, email *Email) error

// Send calls f
func (f SenderFunc) Send(ctx context.Context, email *Email) error { return f(ctx, email) }

// Service renders and sends transactional mail
type Service struct {
	cfg       config.EmailConfig
	sender    Sender
	templates map[EmailType]*template.Template
	logger    *logrus.Logger
}

// NewService creates an email service for the configured provider. When
// email is disabled messages are logged and dropped.
func NewService(cfg *config.Config, logger *logrus.Logger) *Service {
	ec := cfg.External.Email
	var sender Sender
	switch {
	case !ec.Enabled:
		sender = SenderFunc(func(_ context.Context, email *Email) error {
			logger.WithFields(logrus.Fields{
				"to":      email.To,
				"subject": email.Subject,
				"type":    email.Type,
			}).Debug("Email disabled, not sending")
			return nil
		})
	case ec.Provider == "resend":
		sender = newResendSender(ec)
	default:
		sender = &smtpSender{cfg: ec}
	}
	return NewServiceWithSender(ec, sender, logger)
}

// NewServiceWithSender creates an email service that delivers through sender
func NewServiceWithSender(cfg config.EmailConfig, sender Sender, logger *logrus.Logger) *Service {
	return &Service{
		cfg:    cfg,
		sender: sender,
		templates: map[EmailType]*template.Template{
			EmailTypeBookingConfirmation: template.Must(template.New("booking").Parse(bookingConfirmationTemplate)),
			EmailTypeWelcome:             template.Must(template.New("welcome").Parse(welcomeTemplate)),
		},
		logger: logger,
	}
}

// SendBookingConfirmation mails the client a summary of a new booking
func (s *Service) SendBookingConfirmation(ctx context.Context, data BookingConfirmationData) error {
	data.TemplateData = baseData(s.cfg.FromName, s.cfg.SiteURL, data.UserName)
	html, err := s.render(EmailTypeBookingConfirmation, data)
	if err != nil {
		return err
	}
	return s.send(ctx, &Email{
		To:          []string{data.To},
		Subject:     fmt.Sprintf("Your %s session is booked", data.ServiceType),
		HTMLContent: html,
		Type:        EmailTypeBookingConfirmation,
	})
}

// SendWelcome greets a newly registered user
func (s *Service) SendWelcome(ctx context.Context, data WelcomeData) error {
	data.TemplateData = baseData(s.cfg.FromName, s.cfg.SiteURL, data.UserName)
	html, err := s.render(EmailTypeWelcome, data)
	if err != nil {
		return err
	}
	return s.send(ctx, &Email{
		To:          []string{data.To},
		Subject:     fmt.Sprintf("Welcome to %s!", s.cfg.FromName),
		HTMLContent: html,
		Type:        EmailTypeWelcome,
	})
}

func (s *Service) send(ctx context.Context, email *Email) error {
	if err := s.sender.Send(ctx, email); err != nil {
		return fmt.Errorf("failed to send %s email: %w", email.Type, err)
	}
	s.logger.WithFields(logrus.Fields{
		"to":   email.To,
		"type": email.Type,
	}).Info("Email sent")
	return nil
}

func (s *Service) render(t EmailType, data any) (string, error) {
	var buf bytes.Buffer
	if err := s.templates[t].Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", t, err)
	}
	return buf.String(), nil
}

func fromAddress(cfg config.EmailConfig) string {
	if cfg.FromName != "" {
		return fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail)
	}
	return cfg.FromEmail
}
