package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ayuraa/wellness-backend/internal/domain/booking"
	"github.com/ayuraa/wellness-backend/internal/domain/profile"
	"github.com/ayuraa/wellness-backend/internal/pkg/apperr"
	"github.com/ayuraa/wellness-backend/internal/pkg/pdf"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// BookingHandler handles booking endpoints
type BookingHandler struct {
	bookings *booking.Service
	profiles *profile.Service
	receipts *pdf.Service
	logger   *logrus.Logger
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookings *booking.Service, profiles *profile.Service, receipts *pdf.Service, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{
		bookings: bookings,
		profiles: profiles,
		receipts: receipts,
		logger:   logger,
	}
}

// CreateBooking handles POST /bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req booking.CreateRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.bookings.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if !apperr.Is(err, apperr.Invalid) && !apperr.Is(err, apperr.Unauthorized) {
			h.logger.WithError(err).WithField("user_id", userID).Error("Failed to create booking")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create booking",
			})
			return
		}
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created successfully",
		"data":    b,
	})
}

// ListUserBookings handles GET /bookings/user/:userId
func (h *BookingHandler) ListUserBookings(c *gin.Context) {
	userID := c.Param("userId")
	if !requireSelf(c, userID) {
		return
	}

	list, err := h.bookings.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Bookings retrieved successfully",
		"data":    list,
	})
}

// ListHealerBookings handles GET /bookings/healer/:healerId
func (h *BookingHandler) ListHealerBookings(c *gin.Context) {
	healerID := c.Param("healerId")
	if !requireSelf(c, healerID) {
		return
	}

	list, err := h.bookings.ListByHealer(c.Request.Context(), healerID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Bookings retrieved successfully",
		"data":    list,
	})
}

// GetBooking handles GET /bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	b, err := h.bookings.GetFor(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking retrieved successfully",
		"data":    b,
	})
}

// UpdateBookingStatus handles PATCH /bookings/:id/status
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req booking.StatusRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.bookings.UpdateStatus(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking status updated successfully",
		"data":    b,
	})
}

// DownloadReceipt handles GET /bookings/:id/receipt. ?format=html returns the
// receipt page instead of the PDF.
func (h *BookingHandler) DownloadReceipt(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	b, err := h.bookings.GetFor(ctx, c.Param("id"), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	data := booking.Receipt(b, h.lookup(c, b.UserID), h.lookup(c, b.HealerID))

	if c.Query("format") == "html" {
		page, err := h.receipts.ReceiptHTML(data)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
		return
	}

	buf, err := h.receipts.GenerateReceipt(data)
	if err != nil {
		h.logger.WithError(err).WithField("booking_id", b.ID).Error("Failed to generate receipt")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", pdf.ReceiptNumber(b.ID)))
	c.Header("Content-Length", strconv.Itoa(buf.Len()))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *BookingHandler) lookup(c *gin.Context, id string) *profile.Profile {
	p, err := h.profiles.Get(c.Request.Context(), id)
	if err != nil {
		if !apperr.Is(err, apperr.NotFound) {
			h.logger.WithError(err).WithField("profile_id", id).Warn("Failed to load profile for receipt")
		}
		return nil
	}
	return p
}
