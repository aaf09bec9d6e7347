// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/ayuraa/wellness-backend/internal/domain/checkout"
	"github.com/ayuraa/wellness-backend/internal/domain/session"
	"github.com/ayuraa/wellness-backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkout *checkout.Service
	sessions *session.Manager
	logger   *logrus.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service, sessions *session.Manager, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkoutService,
		sessions: sessions,
		logger:   logger,
	}
}

// GetPaymentMethods handles GET /checkout/payment-methods
func (h *CheckoutHandler) GetPaymentMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Payment methods retrieved successfully",
		"data":    h.checkout.PaymentMethods(),
	})
}

// PlaceOrder handles POST /checkout
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req checkout.Request
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	st, err := h.sessions.Get(ctx, middleware.GetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	conf, err := h.checkout.PlaceOrder(ctx, st.Cart, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    conf,
	})
}
