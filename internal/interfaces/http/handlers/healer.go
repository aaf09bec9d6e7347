package handlers

import (
	"net/http"

	"github.com/ayuraa/wellness-backend/internal/domain/healer"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HealerHandler handles the healer directory
type HealerHandler struct {
	healers *healer.Service
	logger  *logrus.Logger
}

// NewHealerHandler creates a new healer handler
func NewHealerHandler(healers *healer.Service, logger *logrus.Logger) *HealerHandler {
	return &HealerHandler{healers: healers, logger: logger}
}

// ListHealers handles GET /healers?category=
func (h *HealerHandler) ListHealers(c *gin.Context) {
	result, err := h.healers.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Healers retrieved successfully",
		"data":     result.Healers,
		"category": result.Category,
		"fallback": result.Fallback,
	})
}

// GetHealer handles GET /healers/:id
func (h *HealerHandler) GetHealer(c *gin.Context) {
	hl, ok := h.healers.Get(c.Request.Context(), c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Healer not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Healer retrieved successfully",
		"data":    hl,
	})
}

// ListCategories handles GET /healers/categories
func (h *HealerHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    healer.Categories,
	})
}
