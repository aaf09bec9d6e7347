// internal/domain/goal/service.go
package goal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ayuraa/wellness-backend/internal/pkg/apperr"
	"github.com/ayuraa/wellness-backend/internal/pkg/validation"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service handles wellness goal business logic
type Service struct {
	db     *gorm.DB
	logger *logrus.Logger
	now    func() time.Time
}

// NewService creates a new goal service
func NewService(db *gorm.DB, logger *logrus.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateRequest represents a create goal request
type CreateRequest struct {
	Goal     string  `json:"goal" validate:"required,max=255"`
	Total    Count   `json:"total" validate:"gt=0"`
	Category string  `json:"category" validate:"max=64"`
	Deadline *string `json:"deadline"`
	Color    string  `json:"color" validate:"max=32"`
}

// UpdateRequest is a partial goal update. Nil fields are left alone.
type UpdateRequest struct {
	Goal     *string `json:"goal,omitempty" validate:"omitempty,min=1,max=255"`
	Progress *Count  `json:"progress,omitempty"`
	Total    *Count  `json:"total,omitempty" validate:"omitempty,gt=0"`
	Category *string `json:"category,omitempty" validate:"omitempty,max=64"`
	Deadline *string `json:"deadline,omitempty"`
	Color    *string `json:"color,omitempty" validate:"omitempty,max=32"`
}

var errNotFound = apperr.NotFoundErr("Goal not found or unauthorized")

// Create adds a goal for userID with no progress
func (s *Service) Create(ctx context.Context, userID string, req *CreateRequest) (*Goal, error) {
	if userID == "" {
		return nil, apperr.UnauthorizedErr("Unauthorized")
	}

	req.Goal = strings.TrimSpace(req.Goal)
	if err := validation.Struct(req, "Missing required goal information"); err != nil {
		return nil, err
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = DefaultCategory
	}
	color := strings.TrimSpace(req.Color)
	if color == "" {
		color = DefaultColor
	}
	var deadline *string
	if req.Deadline != nil && strings.TrimSpace(*req.Deadline) != "" {
		d := strings.TrimSpace(*req.Deadline)
		deadline = &d
	}

	now := s.now()
	g := &Goal{
		ID:        uuid.NewString(),
		UserID:    userID,
		Goal:      req.Goal,
		Progress:  0,
		Total:     int(req.Total),
		Category:  category,
		Deadline:  deadline,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(g).Error; err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"goal_id": g.ID,
		"user_id": userID,
	}).Info("Goal created")
	return g, nil
}

// ListByUser returns the goals of userID, oldest first
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Goal, error) {
	goals := []Goal{}
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&goals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

// Update merges req into a goal owned by userID. Progress is kept within
// [0, total].
func (s *Service) Update(ctx context.Context, userID, goalID string, req *UpdateRequest) (*Goal, error) {
	if userID == "" {
		return nil, apperr.UnauthorizedErr("Unauthorized")
	}
	if err := validation.Struct(req, "Invalid goal update"); err != nil {
		return nil, err
	}

	var out *Goal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g, err := loadOwned(tx, userID, goalID)
		if err != nil {
			return err
		}

		req.apply(g)
		g.UpdatedAt = s.now()
		if err := tx.Save(g).Error; err != nil {
			return fmt.Errorf("failed to update goal: %w", err)
		}
		out = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a goal owned by userID
func (s *Service) Delete(ctx context.Context, userID, goalID string) error {
	if userID == "" {
		return apperr.UnauthorizedErr("Unauthorized")
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g, err := loadOwned(tx, userID, goalID)
		if err != nil {
			return err
		}
		if err := tx.Delete(g).Error; err != nil {
			return fmt.Errorf("failed to delete goal: %w", err)
		}
		return nil
	})
}

// loadOwned hides goals of other users behind the same not found error
func loadOwned(tx *gorm.DB, userID, goalID string) (*Goal, error) {
	var g Goal
	if err := tx.Where("id = ?", goalID).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}
	if g.UserID != userID {
		return nil, errNotFound
	}
	return &g, nil
}

func (req *UpdateRequest) apply(g *Goal) {
	if req.Goal != nil {
		g.Goal = strings.TrimSpace(*req.Goal)
	}
	if req.Total != nil {
		g.Total = int(*req.Total)
	}
	if req.Progress != nil {
		g.Progress = int(*req.Progress)
	}
	if req.Category != nil {
		g.Category = *req.Category
	}
	if req.Deadline != nil {
		g.Deadline = req.Deadline
	}
	if req.Color != nil {
		g.Color = *req.Color
	}
	g.Progress = min(max(g.Progress, 0), g.Total)
}
