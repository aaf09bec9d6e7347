// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ayuraa/wellness-backend/internal/domain/cart"
	"github.com/ayuraa/wellness-backend/internal/pkg/apperr"
	"github.com/ayuraa/wellness-backend/internal/pkg/validation"
	"github.com/sirupsen/logrus"
)

// Payment method ids
const (
	PaymentCard = "card"
	PaymentCOD  = "cod"
)

// Service prices carts and places simulated orders
type Service struct {
	pricing cart.Pricing
	logger  *logrus.Logger
	now     func() time.Time
}

// NewService creates a new checkout service
func NewService(pricing cart.Pricing, logger *logrus.Logger) *Service {
	return &Service{
		pricing: pricing,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// PaymentMethod represents a payment option
type PaymentMethod struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

// ShippingInfo is the delivery part of the checkout form
type ShippingInfo struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	ZipCode   string `json:"zip_code" validate:"required"`
}

// PaymentInfo is the payment part of the checkout form. Card details are
// only needed for card payments.
type PaymentInfo struct {
	Method     string `json:"method" validate:"required,oneof=card cod"`
	CardNumber string `json:"card_number" validate:"required_if=Method card"`
	NameOnCard string `json:"name_on_card" validate:"required_if=Method card"`
	ExpiryDate string `json:"expiry_date" validate:"required_if=Method card"`
	CVV        string `json:"cvv" validate:"required_if=Method card"`
}

// Request is a submitted checkout form
type Request struct {
	Shipping ShippingInfo `json:"shipping"`
	Payment  PaymentInfo  `json:"payment"`
}

// Confirmation is returned for a placed order
type Confirmation struct {
	OrderNumber   string          `json:"order_number"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	Email         string          `json:"email"`
	Items         []cart.LineItem `json:"items"`
	Summary       cart.Totals     `json:"summary"`
	PlacedAt      time.Time       `json:"placed_at"`
}

// PaymentMethods lists the payment options offered at checkout
func (s *Service) PaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{
			ID:          PaymentCard,
			Name:        "Credit / Debit Card",
			Description: "Pay securely with your card",
			Available:   true,
		},
		{
			ID:          PaymentCOD,
			Name:        "Cash on Delivery",
			Description: "Pay cash when your order is delivered",
			Available:   true,
		},
	}
}

// Summary prices c with the storefront rates
func (s *Service) Summary(c cart.Cart) cart.Totals {
	return c.Summary(s.pricing)
}

// PlaceOrder validates the form and confirms the order. Payment is not
// charged and c is not modified.
func (s *Service) PlaceOrder(ctx context.Context, c cart.Cart, req *Request) (*Confirmation, error) {
	if len(c.Items) == 0 {
		return nil, apperr.InvalidErr("Your cart is empty", nil)
	}

	req.Shipping.Email = strings.ToLower(strings.TrimSpace(req.Shipping.Email))
	req.Payment.Method = strings.ToLower(strings.TrimSpace(req.Payment.Method))
	if req.Payment.Method == "" {
		req.Payment.Method = PaymentCard
	}
	if err := validation.Struct(req, "Please complete all required fields"); err != nil {
		return nil, err
	}

	now := s.now()
	conf := &Confirmation{
		OrderNumber:   orderNumber(now),
		Status:        "confirmed",
		PaymentMethod: req.Payment.Method,
		Email:         req.Shipping.Email,
		Items:         append([]cart.LineItem(nil), c.Items...),
		Summary:       s.Summary(c),
		PlacedAt:      now,
	}

	s.logger.WithFields(logrus.Fields{
		"order_number": conf.OrderNumber,
		"payment":      conf.PaymentMethod,
		"total":        conf.Summary.Total,
	}).Info("Order placed")

	return conf, ctx.Err()
}

// orderNumber is "WO" followed by the last six digits of the millisecond clock
func orderNumber(t time.Time) string {
	ms := fmt.Sprintf("%d", t.UnixMilli())
	return "WO" + ms[len(ms)-6:]
}
