// internal/domain/profile/entity.go
package profile

import (
	"time"
)

// Roles
const (
	RoleUser   = "user"
	RoleHealer = "healer"
)

// Profile is the public profile of a user or healer. The id is the identity
// provider's user id.
type Profile struct {
	ID           string         `gorm:"primaryKey;size:64" json:"id"`
	Email        string         `gorm:"size:255;not null;index" json:"email"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Role         string         `gorm:"size:16;not null;default:user;index" json:"role"`
	AvatarURL    *string        `gorm:"size:500" json:"avatar_url"`
	Bio          *string        `gorm:"type:text" json:"bio"`
	Specialties  []string       `gorm:"serializer:json" json:"specialties"`
	Experience   *string        `gorm:"size:100" json:"experience"`
	Pricing      *string        `gorm:"size:100" json:"pricing"`
	Rating       float64        `gorm:"default:0" json:"rating"`
	ReviewsCount int            `gorm:"default:0" json:"reviews_count"`
	Healer       *HealerDetails `gorm:"serializer:json" json:"healer_details,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// TableName overrides the table name
func (Profile) TableName() string {
	return "profiles"
}

// IsHealer reports whether the profile belongs to a healer
func (p *Profile) IsHealer() bool {
	return p.Role == RoleHealer
}

// HealerDetails are the practice details collected by the registration wizard
type HealerDetails struct {
	Location        string   `json:"location,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Approach        string   `json:"approach,omitempty"`
	Certifications  []string `json:"certifications,omitempty"`
	SessionTypes    []string `json:"session_types,omitempty"`
	Availability    []string `json:"availability,omitempty"`
	Timezone        string   `json:"timezone,omitempty"`
	Languages       []string `json:"languages,omitempty"`
	SessionDuration string   `json:"session_duration,omitempty"`
	GroupPrice      string   `json:"group_price,omitempty"`
	ConsultPrice    string   `json:"consultation_price,omitempty"`
}
