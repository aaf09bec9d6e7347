package booking

import (
	"context"
	"fmt"

	"github.com/ayuraa/wellness-backend/internal/domain/profile"
	"github.com/ayuraa/wellness-backend/internal/pkg/email"
	"github.com/ayuraa/wellness-backend/internal/pkg/pdf"
)

// Mailer sends booking confirmations
type Mailer interface {
	SendBookingConfirmation(ctx context.Context, data email.BookingConfirmationData) error
}

// Profiles looks up the people on a booking
type Profiles interface {
	Get(ctx context.Context, id string) (*profile.Profile, error)
}

// MailNotifier emails the client when a booking is created
type MailNotifier struct {
	mailer   Mailer
	profiles Profiles
}

// NewMailNotifier creates a notifier that mails through mailer
func NewMailNotifier(mailer Mailer, profiles Profiles) *MailNotifier {
	return &MailNotifier{mailer: mailer, profiles: profiles}
}

// BookingCreated sends the confirmation. A missing healer profile falls back
// to the healer id.
func (n *MailNotifier) BookingCreated(ctx context.Context, b Booking) error {
	client, err := n.profiles.Get(ctx, b.UserID)
	if err != nil {
		return fmt.Errorf("failed to load client profile: %w", err)
	}

	healerName := b.HealerID
	if h, err := n.profiles.Get(ctx, b.HealerID); err == nil {
		healerName = h.Name
	}

	data := email.BookingConfirmationData{
		To:          client.Email,
		BookingID:   b.ID,
		HealerName:  healerName,
		ServiceType: b.ServiceType,
		Date:        b.Date,
		Time:        b.Time,
		Price:       b.Price,
		Status:      b.Status,
		Notes:       b.Notes,
	}
	data.UserName = client.Name
	return n.mailer.SendBookingConfirmation(ctx, data)
}

// Receipt collects what a printed receipt shows. Either profile may be nil.
func Receipt(b *Booking, client, healer *profile.Profile) pdf.ReceiptData {
	data := pdf.ReceiptData{
		BookingID:   b.ID,
		ClientName:  b.UserID,
		HealerName:  b.HealerID,
		ServiceType: b.ServiceType,
		Date:        b.Date,
		Time:        b.Time,
		Price:       b.Price,
		Status:      b.Status,
		Notes:       b.Notes,
		BookedAt:    b.CreatedAt,
	}
	if client != nil {
		data.ClientName = client.Name
		data.ClientEmail = client.Email
	}
	if healer != nil {
		data.HealerName = healer.Name
	}
	return data
}
