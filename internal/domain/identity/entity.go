// internal/domain/identity/entity.go
package identity

import (
	"time"
)

// Account is a locally managed login
type Account struct {
	ID           string     `gorm:"primaryKey;size:64" json:"id"`
	Email        string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Name         string     `gorm:"size:255;not null" json:"name"`
	Role         string     `gorm:"size:16;not null;default:user" json:"role"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName overrides the table name
func (Account) TableName() string {
	return "accounts"
}

// User is an authenticated identity as reported by a provider
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Session is the result of a successful sign in. AccessToken is empty when
// the provider requires the email to be confirmed first.
type Session struct {
	AccessToken string    `json:"access_token,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
	User        User      `json:"user"`
}

// SignInRequest represents sign in form data
type SignInRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	AgreedToTerms bool   `json:"agreed_to_terms"`
}

// SignUpRequest represents sign up form data
type SignUpRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	AgreedToTerms bool   `json:"agreed_to_terms"`
}
