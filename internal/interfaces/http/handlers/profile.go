package handlers

import (
	"net/http"

	"github.com/ayuraa/wellness-backend/internal/domain/healer"
	"github.com/ayuraa/wellness-backend/internal/domain/profile"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ProfileHandler handles profile endpoints
type ProfileHandler struct {
	profiles *profile.Service
	healers  *healer.Service
	logger   *logrus.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles *profile.Service, healers *healer.Service, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		healers:  healers,
		logger:   logger,
	}
}

// GetProfile handles GET /profile/:userId
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	p, err := h.profiles.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile retrieved successfully",
		"data":    p,
	})
}

// CreateProfile handles POST /profile. The id defaults to the caller's.
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req profile.CreateRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ID == "" {
		req.ID = userID
	}
	if !requireSelf(c, req.ID) {
		return
	}

	p, err := h.profiles.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if p.IsHealer() {
		h.healers.Invalidate(c.Request.Context())
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Profile created successfully",
		"data":    p,
	})
}

// UpdateProfile handles PUT /profile/:userId
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	id := c.Param("userId")
	if !requireSelf(c, id) {
		return
	}

	var req profile.UpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.profiles.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if p.IsHealer() || req.Role != nil {
		h.healers.Invalidate(c.Request.Context())
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"data":    p,
	})
}
