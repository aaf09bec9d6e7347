// internal/domain/booking/entity.go
package booking

import (
	"time"
)

// Booking statuses
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// DefaultPrice is charged when the request names no price
const DefaultPrice = "2500"

// Booking is a session booked with a healer. Date and time are kept as the
// client sent them.
type Booking struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"size:64;not null;index" json:"user_id"`
	HealerID    string    `gorm:"size:64;not null;index" json:"healer_id"`
	ServiceType string    `gorm:"size:100;not null" json:"service_type"`
	Date        string    `gorm:"size:32;not null" json:"date"`
	Time        string    `gorm:"size:32;not null" json:"time"`
	Price       string    `gorm:"size:32;not null" json:"price"`
	Status      string    `gorm:"size:16;not null;default:pending;index" json:"status"`
	Notes       string    `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Booking) TableName() string {
	return "bookings"
}

// IsParticipant reports whether userID booked or hosts the session
func (b *Booking) IsParticipant(userID string) bool {
	return userID != "" && (b.UserID == userID || b.HealerID == userID)
}
