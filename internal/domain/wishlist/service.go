package wishlist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ayuraa/wellness-backend/internal/pkg/apperr"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles wishlist business logic
type Service struct {
	db     *gorm.DB
	logger *logrus.Logger
	now    func() time.Time
}

// NewService creates a new wishlist service
func NewService(db *gorm.DB, logger *logrus.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// AddToWishlistRequest represents add to wishlist request
type AddToWishlistRequest struct {
	ProductID string `json:"product_id"`
}

// Add saves a product for userID. Adding a product twice keeps one entry.
func (s *Service) Add(ctx context.Context, userID string, req *AddToWishlistRequest) (*AddResult, error) {
	if userID == "" {
		return nil, apperr.UnauthorizedErr("Unauthorized")
	}
	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		return nil, apperr.InvalidErr("Product ID required", map[string]string{"product_id": "This field is required"})
	}

	item := &WishlistItem{UserID: userID, ProductID: productID, AddedAt: s.now()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(item).Error
	if err != nil {
		return nil, fmt.Errorf("failed to add to wishlist: %w", err)
	}

	ids, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &AddResult{Success: true, Wishlist: ids}, nil
}

// List returns the product ids saved by userID in the order they were added
func (s *Service) List(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	err := s.db.WithContext(ctx).
		Model(&WishlistItem{}).
		Where("user_id = ?", userID).
		Order("added_at ASC").Order("id ASC").
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve wishlist items: %w", err)
	}
	return ids, nil
}

// Remove drops a product from the wishlist of userID
func (s *Service) Remove(ctx context.Context, userID, productID string) ([]string, error) {
	if userID == "" {
		return nil, apperr.UnauthorizedErr("Unauthorized")
	}
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&WishlistItem{})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to remove from wishlist: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFoundErr("Item not found in wishlist")
	}
	return s.List(ctx, userID)
}

// Clear empties the wishlist of userID
func (s *Service) Clear(ctx context.Context, userID string) error {
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&WishlistItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear wishlist: %w", err)
	}
	s.logger.WithField("user_id", userID).Info("Wishlist cleared")
	return nil
}
