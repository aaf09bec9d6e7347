// internal/domain/booking/service.go
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ayuraa/wellness-backend/internal/pkg/apperr"
	"github.com/ayuraa/wellness-backend/internal/pkg/validation"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const notifyTimeout = 30 * time.Second

// Notifier is told about new bookings. It runs after the booking is stored
// and its errors never reach the caller.
type Notifier interface {
	BookingCreated(ctx context.Context, b Booking) error
}

// Service handles booking business logic
type Service struct {
	db       *gorm.DB
	logger   *logrus.Logger
	notifier Notifier
	now      func() time.Time
}

// NewService creates a new booking service. notifier may be nil.
func NewService(db *gorm.DB, notifier Notifier, logger *logrus.Logger) *Service {
	return &Service{
		db:       db,
		logger:   logger,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateRequest represents a booking request
type CreateRequest struct {
	HealerID    string `json:"healer_id" validate:"required"`
	ServiceType string `json:"service_type" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Price       string `json:"price"`
	Notes       string `json:"notes"`
}

var errNotFound = apperr.NotFoundErr("Booking not found")

// Create books a session for userID. The booking starts pending.
func (s *Service) Create(ctx context.Context, userID string, req *CreateRequest) (*Booking, error) {
	if userID == "" {
		return nil, apperr.UnauthorizedErr("Unauthorized")
	}

	req.HealerID = strings.TrimSpace(req.HealerID)
	req.ServiceType = strings.TrimSpace(req.ServiceType)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	if err := validation.Struct(req, "Missing required booking information"); err != nil {
		return nil, err
	}

	price := strings.TrimSpace(req.Price)
	if price == "" {
		price = DefaultPrice
	}

	now := s.now()
	b := &Booking{
		ID:          uuid.NewString(),
		UserID:      userID,
		HealerID:    req.HealerID,
		ServiceType: req.ServiceType,
		Date:        req.Date,
		Time:        req.Time,
		Price:       price,
		Status:      StatusPending,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.db.WithContext(ctx).Create(b).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"user_id":    b.UserID,
		"healer_id":  b.HealerID,
	}).Info("Booking created")

	s.notify(ctx, *b)
	return b, nil
}

// notify runs the notifier in the background, detached from the request
func (s *Service) notify(ctx context.Context, b Booking) {
	if s.notifier == nil {
		return
	}
	go func() {
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := s.notifier.BookingCreated(nctx, b); err != nil {
			s.logger.WithError(err).WithField("booking_id", b.ID).Warn("Failed to send booking confirmation")
		}
	}()
}

// Get returns one booking
func (s *Service) Get(ctx context.Context, id string) (*Booking, error) {
	var b Booking
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return &b, nil
}

// GetFor returns the booking if userID booked or hosts it
func (s *Service) GetFor(ctx context.Context, id, userID string) (*Booking, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsParticipant(userID) {
		return nil, errNotFound
	}
	return b, nil
}

// ListByUser returns the bookings made by userID in booking order
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Booking, error) {
	return s.list(ctx, "user_id = ?", userID)
}

// ListByHealer returns the bookings hosted by healerID in booking order
func (s *Service) ListByHealer(ctx context.Context, healerID string) ([]Booking, error) {
	return s.list(ctx, "healer_id = ?", healerID)
}

func (s *Service) list(ctx context.Context, where string, id string) ([]Booking, error) {
	bookings := []Booking{}
	err := s.db.WithContext(ctx).Where(where, id).Order("created_at ASC").Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// StatusRequest changes the status of a booking
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

// UpdateStatus lets the hosting healer move a booking along. The client who
// booked may only cancel.
func (s *Service) UpdateStatus(ctx context.Context, id, userID string, req *StatusRequest) (*Booking, error) {
	if err := validation.Struct(req, "Invalid booking status"); err != nil {
		return nil, err
	}

	var out *Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b Booking
		if err := tx.Where("id = ?", id).First(&b).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return fmt.Errorf("failed to load booking: %w", err)
		}

		switch {
		case b.HealerID == userID:
		case b.UserID == userID:
			if req.Status != StatusCancelled {
				return apperr.ForbiddenErr("Only the healer can change this booking")
			}
		default:
			return errNotFound
		}

		b.Status = req.Status
		b.UpdatedAt = s.now()
		if err := tx.Save(&b).Error; err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}
		out = &b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
