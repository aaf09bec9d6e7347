package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ayuraa/wellness-backend/internal/config"
	"github.com/ayuraa/wellness-backend/internal/infrastructure/database/postgres"
	redisinfra "github.com/ayuraa/wellness-backend/internal/infrastructure/database/redis"
	"github.com/ayuraa/wellness-backend/internal/pkg/logger"
	"github.com/ayuraa/wellness-backend/internal/pkg/testdb"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Ayuraa Wellness Platform API", Version: "test", Environment: "test"},
		Server: config.ServerConfig{
			Port:           "0",
			RequestTimeout: 5 * time.Second,
		},
		JWT: config.JWTConfig{
			Secret:            "0123456789abcdef0123456789abcdef",
			AccessTokenExpiry: time.Hour,
			Issuer:            "ayuraa-test",
		},
		Security: config.SecurityConfig{
			BcryptCost:         4,
			MinPasswordLength:  6,
			CORSAllowedOrigins: []string{"*"},
			CORSAllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			CORSAllowedHeaders: []string{"Content-Type", "Authorization"},
		},
		External: config.ExternalConfig{
			Auth: config.AuthProviderConfig{Provider: "local"},
		},
		Storefront: config.StorefrontConfig{
			MobileBreakpoint:      768,
			SessionTTL:            time.Hour,
			SubscriptionDiscount:  0.15,
			FreeShippingThreshold: 499,
			FlatShipping:          49,
			TaxRate:               0.08,
			HealerCacheTTL:        time.Minute,
		},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db := testdb.New(t, postgres.Models()...)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	s, err := NewServer(testConfig(), logger.Discard(), &postgres.DB{DB: db}, redisinfra.Wrap(rdb))
	require.NoError(t, err)
	return s
}

type envelope struct {
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

type client struct {
	t         *testing.T
	handler   http.Handler
	sessionID string
	token     string
	viewport  string
}

func newClient(t *testing.T, s *Server, sessionID string) *client {
	return &client{t: t, handler: s.Handler(), sessionID: sessionID}
}

func (c *client) do(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.sessionID != "" {
		req.Header.Set("X-Session-ID", c.sessionID)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.viewport != "" {
		req.Header.Set("X-Viewport-Width", c.viewport)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type authData struct {
	Session struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	} `json:"session"`
	State struct {
		View struct {
			CurrentView string `json:"current_view"`
		} `json:"view"`
	} `json:"state"`
}

func signUp(t *testing.T, c *client, email, name, role string) authData {
	t.Helper()
	w, env := c.do(http.MethodPost, "/api/v1/auth/signup", map[string]any{
		"email":           email,
		"password":        "namaste123",
		"name":            name,
		"role":            role,
		"agreed_to_terms": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decode[authData](t, env.Data)
	c.token = data.Session.AccessToken
	return data
}

func TestHealthAndNotFound(t *testing.T) {
	s := newTestServer(t)
	c := newClient(t, s, "")

	w, _ := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)

	w, _ = c.do(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"service":"Ayuraa Wellness Platform API"`)

	w, env := c.do(http.MethodGet, "/api/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Endpoint not found", env.Error)

	w, _ = c.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ayuraa_http_requests_total")
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	c := newClient(t, s, "sess-auth")

	w, env := c.do(http.MethodPost, "/api/v1/auth/signup", map[string]any{
		"email": "asha@example.com", "password": "namaste123", "name": "Asha",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You must agree to the privacy terms & conditions", env.Error)

	data := signUp(t, c, "asha@example.com", "Asha", "user")
	assert.Equal(t, "user-dashboard", data.State.View.CurrentView)
	require.NotEmpty(t, c.token)

	w, env = c.do(http.MethodGet, "/api/v1/profile/"+data.Session.User.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"name":"Asha"`)

	w, _ = c.do(http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = c.do(http.MethodPost, "/api/v1/auth/signout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"current_view":"home"`)

	// the revoked token no longer works
	w, _ = c.do(http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c.token = ""
	w, env = c.do(http.MethodPost, "/api/v1/auth/signin", map[string]any{
		"email": "ASHA@example.com", "password": "namaste123", "agreed_to_terms": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	signedIn := decode[authData](t, env.Data)
	assert.Equal(t, "user-dashboard", signedIn.State.View.CurrentView)
	assert.Equal(t, "user", signedIn.Session.User.Role)

	w, env = c.do(http.MethodPost, "/api/v1/auth/signin", map[string]any{
		"email": "asha@example.com", "password": "wrong-pass", "agreed_to_terms": true,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid login credentials", env.Error)
}

func TestHealerSignUpGoesToRegistration(t *testing.T) {
	s := newTestServer(t)
	c := newClient(t, s, "sess-healer")

	data := signUp(t, c, "maya@example.com", "Maya", "healer")
	assert.Equal(t, "healer-registration", data.State.View.CurrentView)

	form := map[string]any{
		"name": "Maya", "phone": "+91 90000 00000", "location": "Pune", "bio": "Crystal healer",
		"categories":    []string{"Crystal Healing Experts"},
		"session_types": []string{"individual"},
		"pricing":       map[string]string{"individual": "1800"},
		"availability":  []string{"Mon"},
	}

	w, env := c.do(http.MethodPost, "/api/v1/storefront/healer-registration/steps/1", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Details, "categories")

	w, _ = c.do(http.MethodPost, "/api/v1/storefront/healer-registration/steps/1", form)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = c.do(http.MethodPost, "/api/v1/storefront/healer-registration", form)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), `"current_view":"healer-dashboard"`)
	assert.Contains(t, string(env.Data), `"pricing":"₹1800/session"`)

	w, env = c.do(http.MethodGet, "/api/v1/healers?category=crystal", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"name":"Maya"`)
}

func TestStorefrontNavigation(t *testing.T) {
	s := newTestServer(t)
	c := newClient(t, s, "sess-nav")

	w, env := c.do(http.MethodPost, "/api/v1/storefront/navigate", map[string]any{"route": "services#ayurveda"})
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[struct {
		State struct {
			View struct {
				CurrentView string `json:"current_view"`
			} `json:"view"`
			UI struct {
				HealerCategory string `json:"healer_category"`
				ScrollTarget   string `json:"scroll_target"`
			} `json:"ui"`
		} `json:"state"`
		Page struct {
			Page string `json:"page"`
		} `json:"page"`
	}](t, env.Data)
	assert.Equal(t, "services", page.State.View.CurrentView)
	assert.Equal(t, "Ayurvedic Healers", page.State.UI.HealerCategory)
	assert.Equal(t, "healers", page.State.UI.ScrollTarget)
	assert.Equal(t, "services", page.Page.Page)

	w, env = c.do(http.MethodPost, "/api/v1/storefront/navigate", map[string]any{"route": "shop/product/ashwagandha"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"page":"product-detail"`)
	assert.Contains(t, string(env.Data), `"handle":"ashwagandha"`)

	// anonymous booking opens the sign-in modal
	w, env = c.do(http.MethodPost, "/api/v1/storefront/book-healer", map[string]any{"healer_id": "healer-1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"auth_modal_open":true`)
	assert.Contains(t, string(env.Data), `"booking_modal_open":false`)

	// a narrow viewport closes the drawer on navigation
	_, _ = c.do(http.MethodPost, "/api/v1/storefront/cart-drawer", map[string]any{"open": true})
	c.viewport = "375"
	w, env = c.do(http.MethodPost, "/api/v1/storefront/navigate", map[string]any{"route": "shop/cart"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"cart_drawer_open":false`)
}

func TestCartAndCheckout(t *testing.T) {
	s := newTestServer(t)
	c := newClient(t, s, "sess-cart")

	w, env := c.do(http.MethodPost, "/api/v1/cart/items", map[string]any{"product": map[string]any{"name": "nameless"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Product ID required", env.Error)

	product := map[string]any{"id": "p1", "name": "Ashwagandha", "price": 300}
	_, _ = c.do(http.MethodPost, "/api/v1/cart/items", map[string]any{"product": product, "size": "L", "quantity": 1})
	w, env = c.do(http.MethodPost, "/api/v1/cart/items", map[string]any{"product": product, "size": "L", "quantity": "2"})
	require.Equal(t, http.StatusOK, w.Code)

	view := decode[struct {
		Items []struct {
			CartID   string `json:"cart_id"`
			Quantity int    `json:"quantity"`
		} `json:"items"`
		ItemCount int `json:"item_count"`
	}](t, env.Data)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.Equal(t, 3, view.ItemCount)

	w, env = c.do(http.MethodGet, "/api/v1/cart/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode[struct {
		Subtotal float64 `json:"subtotal"`
		Shipping float64 `json:"shipping"`
	}](t, env.Data)
	assert.Equal(t, 900.0, summary.Subtotal)
	assert.Equal(t, 0.0, summary.Shipping)

	w, env = c.do(http.MethodPost, "/api/v1/checkout", map[string]any{
		"shipping": map[string]string{"email": "asha@example.com"},
		"payment":  map[string]string{"method": "card"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Details, "city")
	assert.Contains(t, env.Details, "cvv")

	w, env = c.do(http.MethodPost, "/api/v1/checkout", map[string]any{
		"shipping": map[string]string{
			"email": "asha@example.com", "first_name": "Asha", "last_name": "Rao", "phone": "98765",
			"address": "12 MG Road", "city": "Mumbai", "state": "MH", "zip_code": "400001",
		},
		"payment": map[string]string{"method": "cod"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), `"order_number":"WO`)

	w, env = c.do(http.MethodPatch, "/api/v1/cart/items/"+view.Items[0].CartID, map[string]any{"quantity": 0})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"items":[]`)
}

func TestBookingsGoalsWishlist(t *testing.T) {
	s := newTestServer(t)
	seeker := newClient(t, s, "sess-client")
	healer := newClient(t, s, "sess-hosting")

	seekerID := signUp(t, seeker, "asha@example.com", "Asha", "user").Session.User.ID
	healerID := signUp(t, healer, "ravi@example.com", "Ravi", "healer").Session.User.ID

	w, env := seeker.do(http.MethodPost, "/api/v1/bookings", map[string]any{"healer_id": healerID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required booking information", env.Error)

	w, env = seeker.do(http.MethodPost, "/api/v1/bookings", map[string]any{
		"healer_id": healerID, "service_type": "Sound Healing", "date": "2026-11-02", "time": "10:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	b := decode[struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Price  string `json:"price"`
	}](t, env.Data)
	assert.Equal(t, "pending", b.Status)
	assert.Equal(t, "2500", b.Price)

	w, _ = seeker.do(http.MethodGet, "/api/v1/bookings/user/"+seekerID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = seeker.do(http.MethodGet, "/api/v1/bookings/user/"+healerID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = healer.do(http.MethodGet, "/api/v1/bookings/healer/"+healerID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), b.ID)

	w, _ = seeker.do(http.MethodPatch, "/api/v1/bookings/"+b.ID+"/status", map[string]any{"status": "confirmed"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = healer.do(http.MethodPatch, "/api/v1/bookings/"+b.ID+"/status", map[string]any{"status": "confirmed"})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = seeker.do(http.MethodGet, "/api/v1/bookings/"+b.ID+"/receipt?format=html", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ravi")

	w, env = seeker.do(http.MethodPost, "/api/v1/goals", map[string]any{"goal": "Meditate daily", "total": "30"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	g := decode[struct {
		ID string `json:"id"`
	}](t, env.Data)

	w, env = seeker.do(http.MethodPut, "/api/v1/goals/"+g.ID, map[string]any{"progress": 45})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"progress":30`)

	w, _ = healer.do(http.MethodDelete, "/api/v1/goals/"+g.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = seeker.do(http.MethodDelete, "/api/v1/goals/"+g.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = seeker.do(http.MethodPost, "/api/v1/wishlist", map[string]any{"product_id": "p1"})
	assert.Equal(t, http.StatusOK, w.Code)
	_, _ = seeker.do(http.MethodPost, "/api/v1/wishlist", map[string]any{"product_id": "p1"})
	w, _ = seeker.do(http.MethodGet, "/api/v1/wishlist/"+seekerID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"wishlist":["p1"]`)

	w, _ = seeker.do(http.MethodDelete, "/api/v1/wishlist/p2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	seeker.token = ""
	w, _ = seeker.do(http.MethodPost, "/api/v1/bookings", map[string]any{"healer_id": healerID})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChat(t *testing.T) {
	s := newTestServer(t)
	c := newClient(t, s, "")

	w, _ := c.do(http.MethodPost, "/api/v1/chat", map[string]any{"message": "I have so much anxiety before work"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Response struct {
			Message string `json:"message"`
		} `json:"response"`
		Suggestions []string `json:"suggestions"`
		Topic       string   `json:"topic"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Response.Message)
	assert.Len(t, resp.Suggestions, 4)
	assert.Equal(t, "anxiety", resp.Topic)

	w, env := c.do(http.MethodPost, "/api/v1/chat", map[string]any{"message": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Message is required", env.Error)

	w, _ = c.do(http.MethodGet, "/api/v1/chat/greeting", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
