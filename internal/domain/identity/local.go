// internal/domain/identity/local.go
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ayuraa/wellness-backend/internal/pkg/apperr"
	"github.com/ayuraa/wellness-backend/internal/pkg/auth"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errInvalidCredentials = apperr.UnauthorizedErr("Invalid login credentials")

// Revoker remembers signed-out tokens until they expire
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// LocalProvider keeps accounts in the database and issues its own JWTs
type LocalProvider struct {
	db        *gorm.DB
	passwords *auth.PasswordManager
	tokens    *auth.JWTManager
	revoker   Revoker
	now       func() time.Time
}

// NewLocalProvider creates a database-backed provider. revoker may be nil, in
// which case sign out only forgets the session client side.
func NewLocalProvider(db *gorm.DB, passwords *auth.PasswordManager, tokens *auth.JWTManager, revoker Revoker) *LocalProvider {
	return &LocalProvider{
		db:        db,
		passwords: passwords,
		tokens:    tokens,
		revoker:   revoker,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// GetUser implements Provider
func (p *LocalProvider) GetUser(ctx context.Context, token string) (*User, error) {
	claims, err := p.tokens.ValidateToken(token)
	if err != nil {
		return nil, apperr.UnauthorizedErr("Invalid or expired token").WithCause(err)
	}
	if p.revoker != nil && claims.ID != "" {
		revoked, err := p.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check token: %w", err)
		}
		if revoked {
			return nil, apperr.UnauthorizedErr("Invalid or expired token")
		}
	}

	var acc Account
	if err := p.db.WithContext(ctx).Where("id = ?", claims.UserID).First(&acc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.UnauthorizedErr("Invalid or expired token")
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return acc.user(), nil
}

// SignInWithPassword implements Provider
func (p *LocalProvider) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var acc Account
	if err := p.db.WithContext(ctx).Where("email = ?", email).First(&acc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if err := p.passwords.VerifyPassword(password, acc.PasswordHash); err != nil {
		return nil, errInvalidCredentials
	}

	now := p.now()
	acc.LastLoginAt = &now
	if err := p.db.WithContext(ctx).Model(&acc).Update("last_login_at", now).Error; err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	return p.issue(&acc)
}

// SignUp implements Provider
func (p *LocalProvider) SignUp(ctx context.Context, req SignUpRequest) (*Session, error) {
	if err := p.passwords.ValidatePassword(req.Password); err != nil {
		return nil, apperr.InvalidErr("Invalid password", map[string]string{"password": err.Error()})
	}
	hash, err := p.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var existing int64
	if err := p.db.WithContext(ctx).Model(&Account{}).Where("email = ?", req.Email).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check account: %w", err)
	}
	if existing > 0 {
		return nil, apperr.ConflictErr("User already registered")
	}

	now := p.now()
	acc := &Account{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         req.Role,
		LastLoginAt:  &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := p.db.WithContext(ctx).Create(acc).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return p.issue(acc)
}

// SignOut implements Provider
func (p *LocalProvider) SignOut(ctx context.Context, token string) error {
	if p.revoker == nil {
		return nil
	}
	claims, err := p.tokens.ValidateToken(token)
	if err != nil {
		// already unusable
		return nil
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	if err := p.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (p *LocalProvider) issue(acc *Account) (*Session, error) {
	token, expiresAt, err := p.tokens.GenerateAccessToken(acc.ID, acc.Email, acc.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &Session{AccessToken: token, ExpiresAt: expiresAt, User: *acc.user()}, nil
}

func (a *Account) user() *User {
	return &User{ID: a.ID, Email: a.Email, Name: a.Name, Role: a.Role}
}
