// internal/domain/identity/gotrue.go
package identity

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ayuraa/wellness-backend/internal/config"
	"github.com/ayuraa/wellness-backend/internal/pkg/apperr"
	"github.com/go-resty/resty/v2"
)

// GoTrueProvider delegates to a hosted GoTrue auth server
type GoTrueProvider struct {
	client *resty.Client
	now    func() time.Time
}

// NewGoTrueProvider creates a provider for the GoTrue server at cfg.URL
func NewGoTrueProvider(cfg config.AuthProviderConfig) *GoTrueProvider {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")+"/auth/v1").
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")
	if cfg.AnonKey != "" {
		client.SetHeader("apikey", cfg.AnonKey)
	}
	return &GoTrueProvider{client: client, now: func() time.Time { return time.Now().UTC() }}
}

type gotrueUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		Name string `json:"name"`
		Role string `json:"role"`
	} `json:"user_metadata"`
}

type gotrueSession struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   int64       `json:"expires_in"`
	User        *gotrueUser `json:"user"`
}

type gotrueError struct {
	Message          string `json:"msg"`
	ErrorDescription string `json:"error_description"`
	Error            string `json:"error"`
}

func (e *gotrueError) text() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.Error != "":
		return e.Error
	}
	return "Authentication failed"
}

func (u *gotrueUser) user() *User {
	role := u.UserMetadata.Role
	if role == "" {
		role = RoleUser
	}
	return &User{ID: u.ID, Email: u.Email, Name: u.UserMetadata.Name, Role: role}
}

// GetUser implements Provider
func (p *GoTrueProvider) GetUser(ctx context.Context, token string) (*User, error) {
	var out gotrueUser
	var fail gotrueError
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&out).
		SetError(&fail).
		Get("/user")
	if err != nil {
		return nil, apperr.UnavailableErr("Authentication service unavailable", err)
	}
	if resp.IsError() {
		if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
			return nil, apperr.UnauthorizedErr("Invalid or expired token")
		}
		return nil, upstreamError(resp, &fail)
	}
	if out.ID == "" {
		return nil, apperr.UnauthorizedErr("Invalid or expired token")
	}
	return out.user(), nil
}

// SignInWithPassword implements Provider
func (p *GoTrueProvider) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var out gotrueSession
	var fail gotrueError
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "password").
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out).
		SetError(&fail).
		Post("/token")
	if err != nil {
		return nil, apperr.UnavailableErr("Authentication service unavailable", err)
	}
	if resp.IsError() {
		if resp.StatusCode() == http.StatusBadRequest || resp.StatusCode() == http.StatusUnauthorized {
			return nil, apperr.UnauthorizedErr(fail.text())
		}
		return nil, upstreamError(resp, &fail)
	}
	return p.session(&out)
}

// SignUp implements Provider
func (p *GoTrueProvider) SignUp(ctx context.Context, req SignUpRequest) (*Session, error) {
	body := map[string]any{
		"email":    req.Email,
		"password": req.Password,
		"data":     map[string]string{"name": req.Name, "role": req.Role},
	}

	// the response is a session, or a bare user when email confirmation is on
	var raw struct {
		gotrueSession
		gotrueUser
	}
	var fail gotrueError
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&raw).
		SetError(&fail).
		Post("/signup")
	if err != nil {
		return nil, apperr.UnavailableErr("Authentication service unavailable", err)
	}
	if resp.IsError() {
		if resp.StatusCode() == http.StatusBadRequest || resp.StatusCode() == http.StatusUnprocessableEntity {
			return nil, apperr.InvalidErr(fail.text(), nil)
		}
		return nil, upstreamError(resp, &fail)
	}

	if raw.gotrueSession.User != nil {
		return p.session(&raw.gotrueSession)
	}
	if raw.gotrueUser.ID == "" {
		return nil, fmt.Errorf("gotrue signup returned no user")
	}
	return &Session{User: *raw.gotrueUser.user()}, nil
}

// SignOut implements Provider
func (p *GoTrueProvider) SignOut(ctx context.Context, token string) error {
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		Post("/logout")
	if err != nil {
		return apperr.UnavailableErr("Authentication service unavailable", err)
	}
	if resp.IsError() && resp.StatusCode() != http.StatusUnauthorized {
		return fmt.Errorf("gotrue logout returned status %d", resp.StatusCode())
	}
	return nil
}

func (p *GoTrueProvider) session(s *gotrueSession) (*Session, error) {
	if s.User == nil || s.User.ID == "" {
		return nil, fmt.Errorf("gotrue returned a session without user")
	}
	out := &Session{AccessToken: s.AccessToken, User: *s.User.user()}
	if s.ExpiresIn > 0 {
		out.ExpiresAt = p.now().Add(time.Duration(s.ExpiresIn) * time.Second)
	}
	return out, nil
}

func upstreamError(resp *resty.Response, fail *gotrueError) error {
	return apperr.UnavailableErr("Authentication service unavailable",
		fmt.Errorf("gotrue status %d: %s", resp.StatusCode(), fail.text()))
}
