package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ayuraa/wellness-backend/internal/config"
	"github.com/ayuraa/wellness-backend/internal/pkg/apperr"
	"github.com/ayuraa/wellness-backend/internal/pkg/auth"
	"github.com/ayuraa/wellness-backend/internal/pkg/logger"
	"github.com/ayuraa/wellness-backend/internal/pkg/testdb"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:            "0123456789abcdef0123456789abcdef",
			AccessTokenExpiry: time.Hour,
			Issuer:            "ayuraa-test",
		},
		Security: config.SecurityConfig{BcryptCost: 4, MinPasswordLength: 6},
	}
}

func newLocal(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()
	cfg := testConfig()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	provider := NewLocalProvider(
		testdb.New(t, &Account{}),
		auth.NewPasswordManager(cfg),
		auth.NewJWTManager(cfg),
		NewRedisRevoker(rdb),
	)
	return NewService(provider, cfg.Security.MinPasswordLength, logger.Discard()), mr
}

func signUpForm() *SignUpRequest {
	return &SignUpRequest{Email: " Asha@Example.com ", Password: "secret1", Name: " Asha ", AgreedToTerms: true}
}

func TestSignUp_Validation(t *testing.T) {
	svc, _ := newLocal(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*SignUpRequest)
		msg    string
	}{
		{"terms", func(r *SignUpRequest) { r.AgreedToTerms = false }, "You must agree to the privacy terms & conditions"},
		{"missing name", func(r *SignUpRequest) { r.Name = "  " }, "All fields are required"},
		{"missing password", func(r *SignUpRequest) { r.Password = "" }, "All fields are required"},
		{"bad email", func(r *SignUpRequest) { r.Email = "asha.example.com" }, "Please enter a valid email address"},
		{"short password", func(r *SignUpRequest) { r.Password = "12345" }, "Password must be at least 6 characters long"},
		{"bad role", func(r *SignUpRequest) { r.Role = "admin" }, "Role must be user or healer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := signUpForm()
			tt.mutate(req)
			_, err := svc.SignUp(ctx, req)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.Invalid))
			assert.Equal(t, tt.msg, apperr.PublicMessage(err))
		})
	}
}

func TestLocal_SignUpSignInAuthenticate(t *testing.T) {
	svc, _ := newLocal(t)
	ctx := context.Background()

	sess, err := svc.SignUp(ctx, signUpForm())
	require.NoError(t, err)
	assert.NotEmpty(t, sess.AccessToken)
	assert.Equal(t, "asha@example.com", sess.User.Email)
	assert.Equal(t, "Asha", sess.User.Name)
	assert.Equal(t, RoleUser, sess.User.Role)

	_, err = svc.SignUp(ctx, signUpForm())
	assert.True(t, apperr.Is(err, apperr.Conflict))

	in, err := svc.SignIn(ctx, &SignInRequest{Email: "ASHA@example.com", Password: "secret1", AgreedToTerms: true})
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, in.User.ID)

	u, err := svc.Authenticate(ctx, in.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, u.ID)

	_, err = svc.SignIn(ctx, &SignInRequest{Email: "asha@example.com", Password: "wrong!!", AgreedToTerms: true})
	assert.True(t, apperr.Is(err, apperr.Unauthorized))
	_, err = svc.SignIn(ctx, &SignInRequest{Email: "nobody@example.com", Password: "secret1", AgreedToTerms: true})
	assert.True(t, apperr.Is(err, apperr.Unauthorized))
}

func TestSignIn_Validation(t *testing.T) {
	svc, _ := newLocal(t)
	ctx := context.Background()

	_, err := svc.SignIn(ctx, &SignInRequest{Email: "", Password: "x", AgreedToTerms: true})
	assert.Equal(t, "Email and password are required", apperr.PublicMessage(err))
	_, err = svc.SignIn(ctx, &SignInRequest{Email: "nope", Password: "x", AgreedToTerms: true})
	assert.Equal(t, "Please enter a valid email address", apperr.PublicMessage(err))
	_, err = svc.SignIn(ctx, &SignInRequest{Email: "a@b.co", Password: "x"})
	assert.True(t, apperr.Is(err, apperr.Invalid))
}

func TestLocal_SignOutRevokesToken(t *testing.T) {
	svc, mr := newLocal(t)
	ctx := context.Background()

	sess, err := svc.SignUp(ctx, signUpForm())
	require.NoError(t, err)
	require.NoError(t, svc.SignOut(ctx, sess.AccessToken))

	_, err = svc.Authenticate(ctx, sess.AccessToken)
	assert.True(t, apperr.Is(err, apperr.Unauthorized))
	assert.Len(t, mr.Keys(), 1)

	assert.NoError(t, svc.SignOut(ctx, "garbage"))
	assert.NoError(t, svc.SignOut(ctx, ""))
}

func TestAuthenticate_NoToken(t *testing.T) {
	svc, _ := newLocal(t)
	_, err := svc.Authenticate(context.Background(), "")
	assert.True(t, apperr.Is(err, apperr.Unauthorized))
}

func newGoTrue(t *testing.T, h http.HandlerFunc) *GoTrueProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewGoTrueProvider(config.AuthProviderConfig{URL: srv.URL + "/", AnonKey: "anon", Timeout: time.Second})
}

func TestGoTrue_SignInAndGetUser(t *testing.T) {
	p := newGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/v1/token":
			assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			if body["password"] != "secret1" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
				return
			}
			_, _ = w.Write([]byte(`{"access_token":"tok","expires_in":3600,"user":{"id":"g1","email":"a@b.co","user_metadata":{"name":"Asha","role":"healer"}}}`))
		case "/auth/v1/user":
			if r.Header.Get("Authorization") != "Bearer tok" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"id":"g1","email":"a@b.co","user_metadata":{"name":"Asha"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	sess, err := p.SignInWithPassword(ctx, "a@b.co", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "tok", sess.AccessToken)
	assert.Equal(t, RoleHealer, sess.User.Role)
	assert.False(t, sess.ExpiresAt.IsZero())

	_, err = p.SignInWithPassword(ctx, "a@b.co", "nope")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Unauthorized))
	assert.Equal(t, "Invalid login credentials", apperr.PublicMessage(err))

	u, err := p.GetUser(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "g1", u.ID)
	assert.Equal(t, RoleUser, u.Role)

	_, err = p.GetUser(ctx, "other")
	assert.True(t, apperr.Is(err, apperr.Unauthorized))
}

func TestGoTrue_SignUpWithoutSession(t *testing.T) {
	p := newGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		var body struct {
			Data map[string]string `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "healer", body.Data["role"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"g2","email":"m@b.co","user_metadata":{"name":"Maya","role":"healer"}}`))
	})

	sess, err := p.SignUp(context.Background(), SignUpRequest{Email: "m@b.co", Password: "secret1", Name: "Maya", Role: RoleHealer})
	require.NoError(t, err)
	assert.Empty(t, sess.AccessToken)
	assert.Equal(t, "g2", sess.User.ID)
	assert.Equal(t, RoleHealer, sess.User.Role)
}

func TestGoTrue_Unavailable(t *testing.T) {
	p := newGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := p.GetUser(context.Background(), "tok")
	assert.True(t, apperr.Is(err, apperr.Unavailable))
}
