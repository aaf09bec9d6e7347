package wishlist

import (
	"time"
)

// WishlistItem is one saved product. Product ids are storefront handles or
// catalogue ids and are not checked against a product table.
type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID string    `gorm:"size:128;not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"`
	AddedAt   time.Time `json:"added_at"`
}

// TableName overrides the table name
func (WishlistItem) TableName() string {
	return "wishlist_items"
}

// AddResult is returned after adding to the wishlist
type AddResult struct {
	Success  bool     `json:"success"`
	Wishlist []string `json:"wishlist"`
}
