// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/ayuraa/wellness-backend/internal/domain/cart"
	"github.com/ayuraa/wellness-backend/internal/domain/session"
	"github.com/ayuraa/wellness-backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CartRecorder counts cart changes
type CartRecorder interface {
	CartMutation(op string)
}

// CartHandler handles the session cart
type CartHandler struct {
	sessions *session.Manager
	recorder CartRecorder
	logger   *logrus.Logger
}

// NewCartHandler creates a new cart handler. recorder may be nil.
func NewCartHandler(sessions *session.Manager, recorder CartRecorder, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		recorder: recorder,
		logger:   logger,
	}
}

// AddToCartRequest adds a product with its options
type AddToCartRequest struct {
	Product cart.Product `json:"product"`
	cart.AddOptions
}

// cartResponse is the cart with its checkout summary
type cartResponse struct {
	Items      []cart.LineItem `json:"items"`
	ItemCount  int             `json:"item_count"`
	Summary    cart.Totals     `json:"summary"`
	DrawerOpen bool            `json:"drawer_open"`
}

func (h *CartHandler) view(st *session.State) cartResponse {
	items := st.Cart.Items
	if items == nil {
		items = []cart.LineItem{}
	}
	return cartResponse{
		Items:      items,
		ItemCount:  st.Cart.TotalItemCount(),
		Summary:    st.Cart.Summary(h.sessions.Pricing()),
		DrawerOpen: st.UI.CartDrawerOpen,
	}
}

func (h *CartHandler) record(op string) {
	if h.recorder != nil {
		h.recorder.CartMutation(op)
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	st, err := h.sessions.Get(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    h.view(st),
	})
}

// GetSummary handles GET /cart/summary
func (h *CartHandler) GetSummary(c *gin.Context) {
	st, err := h.sessions.Get(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart summary retrieved successfully",
		"data":    st.Cart.Summary(h.sessions.Pricing()),
	})
}

// AddToCart handles POST /cart/items. A product without an id leaves the
// cart unchanged.
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}

	st, added, err := h.sessions.AddToCart(c.Request.Context(), middleware.GetSessionID(c), req.Product, req.AddOptions)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !added {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Product ID required",
			"details": map[string]string{"product.id": "This field is required"},
		})
		return
	}
	h.record("add")

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    h.view(st),
	})
}

// UpdateCartItem handles PATCH /cart/items/:cartId
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req cart.Update
	if !bindJSON(c, &req) {
		return
	}

	st, err := h.sessions.UpdateCartItem(c.Request.Context(), middleware.GetSessionID(c), c.Param("cartId"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.record("update")

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    h.view(st),
	})
}

// RemoveFromCart handles DELETE /cart/items/:cartId
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	st, err := h.sessions.RemoveFromCart(c.Request.Context(), middleware.GetSessionID(c), c.Param("cartId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.record("remove")

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    h.view(st),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	st, err := h.sessions.ClearCart(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.record("clear")

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    h.view(st),
	})
}
