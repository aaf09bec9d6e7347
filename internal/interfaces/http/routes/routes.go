// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/ayuraa/wellness-backend/internal/interfaces/http/handlers"
	"github.com/ayuraa/wellness-backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups the handlers mounted under /api/v1
type Handlers struct {
	Auth       *handlers.AuthHandler
	Profile    *handlers.ProfileHandler
	Booking    *handlers.BookingHandler
	Healer     *handlers.HealerHandler
	Goal       *handlers.GoalHandler
	Wishlist   *handlers.WishlistHandler
	Chat       *handlers.ChatHandler
	Storefront *handlers.StorefrontHandler
	Cart       *handlers.CartHandler
	Checkout   *handlers.CheckoutHandler
	Health     *handlers.HealthHandler
}

// Guards are the per-group middlewares
type Guards struct {
	Auth         gin.HandlerFunc
	OptionalAuth gin.HandlerFunc
	Session      gin.HandlerFunc
}

// NewGuards builds the guards from an authenticator and the session middleware
func NewGuards(authn middleware.Authenticator, session gin.HandlerFunc) Guards {
	return Guards{
		Auth:         middleware.AuthMiddleware(authn),
		OptionalAuth: middleware.OptionalAuthMiddleware(authn),
		Session:      session,
	}
}

// SetupRoutes mounts every API route on rg
func SetupRoutes(rg *gin.RouterGroup, h *Handlers, g Guards) {
	rg.GET("/health", h.Health.APIHealth)

	SetupAuthRoutes(rg, h, g)
	SetupProfileRoutes(rg, h, g)
	SetupBookingRoutes(rg, h, g)
	SetupHealerRoutes(rg, h)
	SetupGoalRoutes(rg, h, g)
	SetupWishlistRoutes(rg, h, g)
	SetupChatRoutes(rg, h, g)
	SetupStorefrontRoutes(rg, h, g)
	SetupCartRoutes(rg, h, g)
}

// SetupAuthRoutes sets up authentication related routes. They all touch the
// storefront session.
func SetupAuthRoutes(rg *gin.RouterGroup, h *Handlers, g Guards) {
	auth := rg.Group("/auth")
	auth.Use(g.Session)
	{
		auth.POST("/signup", h.Auth.SignUp)
		auth.POST("/signin", h.Auth.SignIn)
		auth.POST("/signout", g.OptionalAuth, h.Auth.SignOut)
		auth.GET("/me", g.Auth, h.Auth.Me)
	}
}

// SetupProfileRoutes sets up profile routes
func SetupProfileRoutes(rg *gin.RouterGroup, h *Handlers, g Guards) {
	profile := rg.Group("/profile")
	{
		profile.GET("/:userId", h.Profile.GetProfile)
		profile.POST("", g.Auth, h.Profile.CreateProfile)
		profile.PUT("/:userId", g.Auth, h.Profile.UpdateProfile)
	}
}

// SetupBookingRoutes sets up booking routes; all require authentication
func SetupBookingRoutes(rg *gin.RouterGroup, h *Handlers, g Guards) {
	bookings := rg.Group("/bookings")
	bookings.Use(g.Auth)
	{
		bookings.POST("", h.Booking.CreateBooking)
		bookings.GET("/user/:userId", h.Booking.ListUserBookings)
		bookings.GET("/healer/:healerId", h.Booking.ListHealerBookings)
		bookings.GET("/:id", h.Booking.GetBooking)
		bookings.GET("/:id/receipt", h.Booking.DownloadReceipt)
		bookings.PATCH("/:id/status", h.Booking.UpdateBookingStatus)
	}
}

// SetupHealerRoutes sets up the public healer directory
func SetupHealerRoutes(rg *gin.RouterGroup, h *Handlers) {
	healers := rg.Group("/healers")
	{
		healers.GET("", h.Healer.ListHealers)
		healers.GET("/categories", h.Healer.ListCategories)
		healers.GET("/:id", h.Healer.GetHealer)
	}
}

// SetupGoalRoutes sets up wellness goal routes
func SetupGoalRoutes(rg *gin.RouterGroup, h *Handlers, g Guards) {
	goals := rg.Group("/goals")
	goals.Use(g.Auth)
	{
		goals.POST("", h.Goal.CreateGoal)
		goals.GET("/user/:userId", h.Goal.ListUserGoals)
		goals.PUT("/:goalId", h.Goal.UpdateGoal)
		goals.DELETE("/:goalId", h.Goal.DeleteGoal)
	}
}

// SetupWishlistRoutes sets up wishlist routes
func SetupWishlistRoutes(rg *gin.RouterGroup, h *Handlers, g Guards) {
	wishlist := rg.Group("/wishlist")
	wishlist.Use(g.Auth)
	{
		wishlist.POST("", h.Wishlist.AddToWishlist)
		wishlist.GET("/:userId", h.Wishlist.GetWishlist)
		wishlist.DELETE("", h.Wishlist.ClearWishlist)
		wishlist.DELETE("/:productId", h.Wishlist.RemoveFromWishlist)
	}
}

// SetupChatRoutes sets up the wellness assistant
func SetupChatRoutes(rg *gin.RouterGroup, h *Handlers, g Guards) {
	chat := rg.Group("/chat")
	chat.Use(g.OptionalAuth)
	{
		chat.POST("", h.Chat.SendMessage)
		chat.GET("/greeting", h.Chat.Greeting)
	}
}

// SetupStorefrontRoutes sets up session navigation and overlays
func SetupStorefrontRoutes(rg *gin.RouterGroup, h *Handlers, g Guards) {
	storefront := rg.Group("/storefront")
	storefront.Use(g.Session, g.OptionalAuth)
	{
		storefront.GET("/state", h.Storefront.GetState)
		storefront.GET("/page", h.Storefront.GetPage)
		storefront.POST("/navigate", h.Storefront.Navigate)
		storefront.POST("/cart-drawer", h.Storefront.SetCartDrawer)
		storefront.POST("/auth-modal", h.Storefront.SetAuthModal)
		storefront.POST("/book-healer", h.Storefront.BookHealer)
		storefront.DELETE("/book-healer", h.Storefront.CloseBooking)
		storefront.POST("/become-healer", h.Storefront.BecomeHealer)
		storefront.POST("/healer-registration/steps/:step", h.Storefront.ValidateRegistrationStep)
		storefront.POST("/healer-registration", g.Auth, h.Storefront.CompleteRegistration)
	}
}

// SetupCartRoutes sets up the session cart and checkout
func SetupCartRoutes(rg *gin.RouterGroup, h *Handlers, g Guards) {
	cart := rg.Group("/cart")
	cart.Use(g.Session)
	{
		cart.GET("", h.Cart.GetCart)
		cart.GET("/summary", h.Cart.GetSummary)
		cart.POST("/items", h.Cart.AddToCart)
		cart.PATCH("/items/:cartId", h.Cart.UpdateCartItem)
		cart.DELETE("/items/:cartId", h.Cart.RemoveFromCart)
		cart.DELETE("", h.Cart.ClearCart)
	}

	checkout := rg.Group("/checkout")
	checkout.Use(g.Session, g.OptionalAuth)
	{
		checkout.GET("/payment-methods", h.Checkout.GetPaymentMethods)
		checkout.POST("", h.Checkout.PlaceOrder)
	}
}
