package handlers

import (
	"net/http"
	"strconv"

	"github.com/ayuraa/wellness-backend/internal/domain/healer"
	"github.com/ayuraa/wellness-backend/internal/domain/navigation"
	"github.com/ayuraa/wellness-backend/internal/domain/profile"
	"github.com/ayuraa/wellness-backend/internal/domain/session"
	"github.com/ayuraa/wellness-backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StorefrontHandler drives the per-session storefront: navigation, overlays,
// the booking modal and the healer registration wizard.
type StorefrontHandler struct {
	sessions *session.Manager
	profiles *profile.Service
	healers  *healer.Service
	logger   *logrus.Logger
}

// NewStorefrontHandler creates a new storefront handler
func NewStorefrontHandler(sessions *session.Manager, profiles *profile.Service, healers *healer.Service, logger *logrus.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		sessions: sessions,
		profiles: profiles,
		healers:  healers,
		logger:   logger,
	}
}

// NavigateRequest moves the session to a route
type NavigateRequest struct {
	Route  string            `json:"route"`
	Params map[string]string `json:"params"`
}

// ToggleRequest opens or closes an overlay
type ToggleRequest struct {
	Open bool `json:"open"`
}

// BookHealerRequest selects a healer for booking
type BookHealerRequest struct {
	HealerID string `json:"healer_id"`
}

// pageResponse is the session together with its resolved page
type pageResponse struct {
	State *session.State            `json:"state"`
	Page  navigation.PageDescriptor `json:"page"`
}

// GetState handles GET /storefront/state
func (h *StorefrontHandler) GetState(c *gin.Context) {
	st, err := h.sessions.Get(c.Request.Context(), middleware.GetSessionID(c))
	h.respond(c, st, err)
}

// GetPage handles GET /storefront/page
func (h *StorefrontHandler) GetPage(c *gin.Context) {
	st, page, err := h.sessions.Page(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Page resolved successfully",
		"data":    pageResponse{State: st, Page: page},
	})
}

// Navigate handles POST /storefront/navigate and answers with the new page
func (h *StorefrontHandler) Navigate(c *gin.Context) {
	var req NavigateRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	id := middleware.GetSessionID(c)
	if _, err := h.sessions.Navigate(ctx, id, req.Route, req.Params, middleware.ViewportWidth(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}

	st, page, err := h.sessions.Page(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Navigated successfully",
		"data":    pageResponse{State: st, Page: page},
	})
}

// SetCartDrawer handles POST /storefront/cart-drawer
func (h *StorefrontHandler) SetCartDrawer(c *gin.Context) {
	var req ToggleRequest
	if !bindJSON(c, &req) {
		return
	}
	st, err := h.sessions.SetCartDrawer(c.Request.Context(), middleware.GetSessionID(c), req.Open)
	h.respond(c, st, err)
}

// SetAuthModal handles POST /storefront/auth-modal
func (h *StorefrontHandler) SetAuthModal(c *gin.Context) {
	var req ToggleRequest
	if !bindJSON(c, &req) {
		return
	}
	st, err := h.sessions.SetAuthModal(c.Request.Context(), middleware.GetSessionID(c), req.Open)
	h.respond(c, st, err)
}

// BookHealer handles POST /storefront/book-healer. Anonymous sessions get the
// sign-in modal instead of the booking modal.
func (h *StorefrontHandler) BookHealer(c *gin.Context) {
	var req BookHealerRequest
	if !bindJSON(c, &req) {
		return
	}
	st, err := h.sessions.OpenBooking(c.Request.Context(), middleware.GetSessionID(c), req.HealerID)
	h.respond(c, st, err)
}

// CloseBooking handles DELETE /storefront/book-healer
func (h *StorefrontHandler) CloseBooking(c *gin.Context) {
	st, err := h.sessions.CloseBooking(c.Request.Context(), middleware.GetSessionID(c))
	h.respond(c, st, err)
}

// BecomeHealer handles POST /storefront/become-healer
func (h *StorefrontHandler) BecomeHealer(c *gin.Context) {
	st, err := h.sessions.RequestHealerRegistration(c.Request.Context(), middleware.GetSessionID(c))
	h.respond(c, st, err)
}

// ValidateRegistrationStep handles POST /storefront/healer-registration/steps/:step
func (h *StorefrontHandler) ValidateRegistrationStep(c *gin.Context) {
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid step",
		})
		return
	}

	var form profile.RegistrationForm
	if !bindJSON(c, &form) {
		return
	}
	if err := form.ValidateStep(step); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Step is complete",
		"data":    gin.H{"step": step, "valid": true},
	})
}

// CompleteRegistration handles POST /storefront/healer-registration. The
// session moves to the healer dashboard even when the profile could not be
// saved; that failure is only logged.
func (h *StorefrontHandler) CompleteRegistration(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var form profile.RegistrationForm
	if !bindJSON(c, &form) {
		return
	}
	if err := form.Validate(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	ctx := c.Request.Context()
	p, err := h.profiles.CompleteRegistration(ctx, userID, &form)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to save healer registration")
	} else {
		h.healers.Invalidate(ctx)
	}

	st, err := h.sessions.CompleteHealerRegistration(ctx, middleware.GetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Healer registration completed",
		"data":    gin.H{"state": st, "profile": p},
	})
}

func (h *StorefrontHandler) respond(c *gin.Context, st *session.State, err error) {
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Session updated",
		"data":    st,
	})
}
