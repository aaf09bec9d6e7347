// internal/domain/profile/service.go
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ayuraa/wellness-backend/internal/pkg/apperr"
	"github.com/ayuraa/wellness-backend/internal/pkg/validation"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service handles profile business logic
type Service struct {
	db     *gorm.DB
	logger *logrus.Logger
	now    func() time.Time
}

// NewService creates a new profile service
func NewService(db *gorm.DB, logger *logrus.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateRequest represents a create profile request
type CreateRequest struct {
	ID    string `json:"id" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
	Role  string `json:"role" validate:"omitempty,oneof=user healer"`
}

// UpdateRequest is a partial profile update. Nil fields are left alone.
type UpdateRequest struct {
	Name        *string        `json:"name,omitempty" validate:"omitempty,min=1"`
	Role        *string        `json:"role,omitempty" validate:"omitempty,oneof=user healer"`
	AvatarURL   *string        `json:"avatar_url,omitempty" validate:"omitempty,max=500"`
	Bio         *string        `json:"bio,omitempty" validate:"omitempty,max=500"`
	Specialties *[]string      `json:"specialties,omitempty"`
	Experience  *string        `json:"experience,omitempty"`
	Pricing     *string        `json:"pricing,omitempty"`
	Healer      *HealerDetails `json:"healer_details,omitempty"`
}

var errNotFound = apperr.NotFoundErr("Profile not found")

// Get returns the profile with id
func (s *Service) Get(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &p, nil
}

// Role returns the role of the profile with id
func (s *Service) Role(ctx context.Context, id string) (string, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return p.Role, nil
}

// Create stores a new profile. The role defaults to user and every optional
// field starts empty.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Profile, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req, "Missing required fields: id, email, name"); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = RoleUser
	}

	now := s.now()
	p := &Profile{
		ID:          req.ID,
		Email:       req.Email,
		Name:        req.Name,
		Role:        role,
		Specialties: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&Profile{}).Where("id = ?", req.ID).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check profile: %w", err)
	}
	if existing > 0 {
		return nil, apperr.ConflictErr("Profile already exists")
	}

	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"profile_id": p.ID,
		"role":       p.Role,
	}).Info("Profile created")

	return p, nil
}

// Update merges req into the stored profile
func (s *Service) Update(ctx context.Context, id string, req *UpdateRequest) (*Profile, error) {
	if err := validation.Struct(req, "Invalid profile update"); err != nil {
		return nil, err
	}

	var out *Profile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p Profile
		if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return fmt.Errorf("failed to load profile: %w", err)
		}

		req.apply(&p)
		p.UpdatedAt = s.now()

		if err := tx.Save(&p).Error; err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		out = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (req *UpdateRequest) apply(p *Profile) {
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		p.Role = *req.Role
	}
	if req.AvatarURL != nil {
		p.AvatarURL = req.AvatarURL
	}
	if req.Bio != nil {
		p.Bio = req.Bio
	}
	if req.Specialties != nil {
		p.Specialties = *req.Specialties
	}
	if req.Experience != nil {
		p.Experience = req.Experience
	}
	if req.Pricing != nil {
		p.Pricing = req.Pricing
	}
	if req.Healer != nil {
		p.Healer = req.Healer
	}
}

// ListHealers returns every healer profile, best rated first
func (s *Service) ListHealers(ctx context.Context) ([]Profile, error) {
	var healers []Profile
	err := s.db.WithContext(ctx).
		Where("role = ?", RoleHealer).
		Order("rating DESC").Order("created_at ASC").
		Find(&healers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list healers: %w", err)
	}
	return healers, nil
}
