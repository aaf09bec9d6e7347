// internal/domain/identity/service.go
package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/ayuraa/wellness-backend/internal/pkg/apperr"
	"github.com/sirupsen/logrus"
)

// Provider authenticates users
type Provider interface {
	GetUser(ctx context.Context, token string) (*User, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, req SignUpRequest) (*Session, error)
	SignOut(ctx context.Context, token string) error
}

// Roles a new account may ask for
const (
	RoleUser   = "user"
	RoleHealer = "healer"
)

var errNoToken = apperr.UnauthorizedErr("Unauthorized")

// Service checks auth forms and delegates to the provider
type Service struct {
	provider    Provider
	minPassword int
	logger      *logrus.Logger
}

// NewService creates an identity service on top of provider
func NewService(provider Provider, minPassword int, logger *logrus.Logger) *Service {
	return &Service{provider: provider, minPassword: minPassword, logger: logger}
}

// Authenticate resolves a bearer token to a user
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, errNoToken
	}
	return s.provider.GetUser(ctx, token)
}

// SignIn validates the form and signs the user in. The email is matched
// lower-cased.
func (s *Service) SignIn(ctx context.Context, req *SignInRequest) (*Session, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := termsAgreed(req.AgreedToTerms); err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if req.Email == "" {
		fields["email"] = "This field is required"
	}
	if req.Password == "" {
		fields["password"] = "This field is required"
	}
	if len(fields) > 0 {
		return nil, apperr.InvalidErr("Email and password are required", fields)
	}
	if !strings.Contains(req.Email, "@") {
		return nil, apperr.InvalidErr("Please enter a valid email address", map[string]string{"email": "Must be a valid email address"})
	}

	sess, err := s.provider.SignInWithPassword(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("user_id", sess.User.ID).Info("User signed in")
	return sess, nil
}

// SignUp validates the form and registers a new account. Role defaults to
// user.
func (s *Service) SignUp(ctx context.Context, req *SignUpRequest) (*Session, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Role == "" {
		req.Role = RoleUser
	}
	if err := termsAgreed(req.AgreedToTerms); err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if req.Email == "" {
		fields["email"] = "This field is required"
	}
	if req.Password == "" {
		fields["password"] = "This field is required"
	}
	if req.Name == "" {
		fields["name"] = "This field is required"
	}
	if len(fields) > 0 {
		return nil, apperr.InvalidErr("All fields are required", fields)
	}
	if !strings.Contains(req.Email, "@") {
		return nil, apperr.InvalidErr("Please enter a valid email address", map[string]string{"email": "Must be a valid email address"})
	}
	if len(req.Password) < s.minPassword {
		return nil, apperr.InvalidErr(
			fmt.Sprintf("Password must be at least %d characters long", s.minPassword),
			map[string]string{"password": fmt.Sprintf("Must be at least %d characters", s.minPassword)},
		)
	}
	if req.Role != RoleUser && req.Role != RoleHealer {
		return nil, apperr.InvalidErr("Role must be user or healer", map[string]string{"role": "Must be one of: user healer"})
	}

	sess, err := s.provider.SignUp(ctx, *req)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"user_id": sess.User.ID,
		"role":    sess.User.Role,
	}).Info("User signed up")
	return sess, nil
}

// SignOut ends the provider session of token
func (s *Service) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.provider.SignOut(ctx, token)
}

func termsAgreed(agreed bool) error {
	if agreed {
		return nil
	}
	return apperr.InvalidErr("You must agree to the privacy terms & conditions",
		map[string]string{"agreed_to_terms": "This field is required"})
}
