// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/ayuraa/wellness-backend/internal/domain/identity"
	"github.com/ayuraa/wellness-backend/internal/domain/profile"
	"github.com/ayuraa/wellness-backend/internal/domain/session"
	"github.com/ayuraa/wellness-backend/internal/interfaces/http/middleware"
	"github.com/ayuraa/wellness-backend/internal/pkg/apperr"
	"github.com/ayuraa/wellness-backend/internal/pkg/email"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Welcomer sends the welcome mail after sign up
type Welcomer interface {
	SendWelcome(ctx context.Context, data email.WelcomeData) error
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	identity *identity.Service
	profiles *profile.Service
	sessions *session.Manager
	welcomer Welcomer
	logger   *logrus.Logger
}

// NewAuthHandler creates a new auth handler. welcomer may be nil.
func NewAuthHandler(identityService *identity.Service, profiles *profile.Service, sessions *session.Manager, welcomer Welcomer, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		identity: identityService,
		profiles: profiles,
		sessions: sessions,
		welcomer: welcomer,
		logger:   logger,
	}
}

// authResponse is returned by sign in and sign up
type authResponse struct {
	Session *identity.Session `json:"session"`
	State   *session.State    `json:"state"`
}

// SignUp handles POST /auth/signup. The profile is created with the chosen
// role; healers are sent on to the registration wizard.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req identity.SignUpRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	sess, err := h.identity.SignUp(ctx, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	u := sess.User

	_, err = h.profiles.Create(ctx, &profile.CreateRequest{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	})
	if err != nil && !apperr.Is(err, apperr.Conflict) {
		h.logger.WithError(err).WithField("user_id", u.ID).Error("Failed to create profile after sign up")
	}

	h.sendWelcome(ctx, u)

	state, err := h.sessions.SignedUp(ctx, middleware.GetSessionID(c), sessionUser(u))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"data":    authResponse{Session: sess, State: state},
	})
}

func (h *AuthHandler) sendWelcome(ctx context.Context, u identity.User) {
	if h.welcomer == nil {
		return
	}
	data := email.WelcomeData{To: u.Email, Role: u.Role}
	data.UserName = u.Name

	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		if err := h.welcomer.SendWelcome(ctx, data); err != nil {
			h.logger.WithError(err).WithField("user_id", u.ID).Warn("Failed to send welcome email")
		}
	}()
}

// SignIn handles POST /auth/signin. Once the profile is loaded the session is
// sent to the dashboard matching the role.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req identity.SignInRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	sess, err := h.identity.SignIn(ctx, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	state, err := h.sessions.SignedIn(ctx, middleware.GetSessionID(c), sessionUser(sess.User), h.profiles.Role)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if state.User != nil {
		sess.User.Role = state.User.Role
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed in successfully",
		"data":    authResponse{Session: sess, State: state},
	})
}

// SignOut handles POST /auth/signout. The storefront session returns home
// with an empty cart even if the provider call fails.
func (h *AuthHandler) SignOut(c *gin.Context) {
	ctx := c.Request.Context()
	if token, ok := middleware.GetTokenFromContext(c); ok {
		if err := h.identity.SignOut(ctx, token); err != nil {
			h.logger.WithError(err).Warn("Provider sign out failed")
		}
	}

	state, err := h.sessions.SignedOut(ctx, middleware.GetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed out successfully",
		"data":    state,
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	resp := gin.H{"user": user}
	if p, err := h.profiles.Get(c.Request.Context(), user.ID); err == nil {
		resp["profile"] = p
	} else if !apperr.Is(err, apperr.NotFound) {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User retrieved successfully",
		"data":    resp,
	})
}

func sessionUser(u identity.User) session.User {
	return session.User{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}
