package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ayuraa/wellness-backend/internal/config"
	"github.com/ayuraa/wellness-backend/internal/domain/identity"
	"github.com/ayuraa/wellness-backend/internal/domain/navigation"
	"github.com/ayuraa/wellness-backend/internal/pkg/apperr"
	"github.com/ayuraa/wellness-backend/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authFunc func(ctx context.Context, token string) (*identity.User, error)

func (f authFunc) Authenticate(ctx context.Context, token string) (*identity.User, error) {
	return f(ctx, token)
}

var tokenAuth = authFunc(func(_ context.Context, token string) (*identity.User, error) {
	switch token {
	case "good":
		return &identity.User{ID: "u-1", Email: "asha@example.com", Role: "user"}, nil
	case "down":
		return nil, apperr.UnavailableErr("Authentication service unavailable", errors.New("dial"))
	default:
		return nil, apperr.UnauthorizedErr("Unauthorized")
	}
})

func do(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/me", AuthMiddleware(tokenAuth), func(c *gin.Context) {
		id, _ := GetUserIDFromContext(c)
		token, _ := GetTokenFromContext(c)
		c.String(http.StatusOK, id+":"+token)
	})

	w := do(r, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header required")

	w = do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Token good"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid authorization header format")

	w = do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer bad"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer down"})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer good"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-1:good", w.Body.String())
}

func TestOptionalAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/", OptionalAuthMiddleware(tokenAuth), func(c *gin.Context) {
		id, ok := GetUserIDFromContext(c)
		if !ok {
			id = "anonymous"
		}
		c.String(http.StatusOK, id)
	})

	assert.Equal(t, "anonymous", do(r, http.MethodGet, "/", nil).Body.String())
	assert.Equal(t, "anonymous", do(r, http.MethodGet, "/", map[string]string{"Authorization": "Bearer bad"}).Body.String())
	assert.Equal(t, "u-1", do(r, http.MethodGet, "/", map[string]string{"Authorization": "Bearer good"}).Body.String())
}

func TestSession_IssuesAndReusesID(t *testing.T) {
	cfg := &config.Config{Storefront: config.StorefrontConfig{SessionTTL: time.Hour}}
	r := gin.New()
	r.GET("/", Session(cfg), func(c *gin.Context) {
		c.String(http.StatusOK, GetSessionID(c))
	})

	w := do(r, http.MethodGet, "/", nil)
	issued := w.Body.String()
	require.NotEmpty(t, issued)
	assert.Equal(t, issued, w.Header().Get(SessionHeader))
	assert.Contains(t, w.Header().Get("Set-Cookie"), SessionCookie+"="+issued)

	w = do(r, http.MethodGet, "/", map[string]string{SessionHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Body.String())

	w = do(r, http.MethodGet, "/", map[string]string{"Cookie": SessionCookie + "=from-cookie"})
	assert.Equal(t, "from-cookie", w.Body.String())

	w = do(r, http.MethodGet, "/", map[string]string{SessionHeader: "bad id;"})
	assert.NotEqual(t, "bad id;", w.Body.String())
}

func TestViewportWidth(t *testing.T) {
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, ViewportWidth(c))
	})
	assert.Equal(t, "0", do(r, http.MethodGet, "/", nil).Body.String())
	assert.Equal(t, "375", do(r, http.MethodGet, "/", map[string]string{ViewportWidthHeader: "375"}).Body.String())
	assert.Equal(t, "0", do(r, http.MethodGet, "/", map[string]string{ViewportWidthHeader: "wide"}).Body.String())
}

func TestCORS(t *testing.T) {
	cfg := &config.Config{Security: config.SecurityConfig{
		CORSAllowedOrigins: []string{"https://ayuraa.com", "*.ayuraa.dev"},
		CORSAllowedMethods: []string{"GET", "POST"},
		CORSAllowedHeaders: []string{"Content-Type"},
	}}
	r := gin.New()
	r.Use(CORS(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, http.MethodGet, "/", map[string]string{"Origin": "https://ayuraa.com"})
	assert.Equal(t, "https://ayuraa.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, http.MethodGet, "/", map[string]string{"Origin": "https://app.ayuraa.dev"})
	assert.Equal(t, "https://app.ayuraa.dev", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, http.MethodGet, "/", map[string]string{"Origin": "https://evilayuraa.dev"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, http.MethodOptions, "/", map[string]string{"Origin": "https://ayuraa.com"})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	r := gin.New()
	r.Use(RateLimit(2, rdb, logger.Discard()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", nil).Code)
	w := do(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodGet, "/", nil).Code)

	mr.FastForward(time.Minute)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", nil).Code)

	// an unreachable redis lets traffic through
	mr.Close()
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", nil).Code)
}

func TestTimeout_SetsDeadline(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(time.Second))
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		c.JSON(http.StatusOK, ok)
	})
	assert.Equal(t, "true", do(r, http.MethodGet, "/", nil).Body.String())
}

func TestRequestSizeLimit(t *testing.T) {
	r := gin.New()
	r.Use(RequestSizeLimit(8))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := do(r, http.MethodGet, "/", map[string]string{RequestIDHeader: "req-1"})
	assert.Equal(t, "req-1", w.Body.String())
	assert.Equal(t, "req-1", w.Header().Get(RequestIDHeader))

	w = do(r, http.MethodGet, "/", nil)
	assert.NotEmpty(t, w.Body.String())
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	do(r, http.MethodGet, "/ping", nil)
	do(r, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/ping", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))

	l := m.NavigationListener()
	l.OnNavigate(navigation.ParseRoute("services#ayurveda"), nil)
	l.OnNavigate(navigation.ParseRoute("shop/product/ashwagandha"), nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.navigations.WithLabelValues("services")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.navigations.WithLabelValues("shop/product")))

	m.CartMutation("add")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cartMutations.WithLabelValues("add")))

	w := do(r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ayuraa_http_requests_total")
}
