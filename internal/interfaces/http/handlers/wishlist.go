// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"net/http"

	"github.com/ayuraa/wellness-backend/internal/domain/wishlist"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	wishlistService *wishlist.Service
	logger          *logrus.Logger
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlistService *wishlist.Service, logger *logrus.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		logger:          logger,
	}
}

// GetWishlist handles GET /wishlist/:userId
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID := c.Param("userId")
	if !requireSelf(c, userID) {
		return
	}

	ids, err := h.wishlistService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Wishlist retrieved successfully",
		"wishlist": ids,
	})
}

// AddToWishlist handles POST /wishlist
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req wishlist.AddToWishlistRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.wishlistService.Add(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// RemoveFromWishlist handles DELETE /wishlist/:productId
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	ids, err := h.wishlistService.Remove(c.Request.Context(), userID, c.Param("productId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, wishlist.AddResult{Success: true, Wishlist: ids})
}

// ClearWishlist handles DELETE /wishlist
func (h *WishlistHandler) ClearWishlist(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.wishlistService.Clear(c.Request.Context(), userID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, wishlist.AddResult{Success: true, Wishlist: []string{}})
}
