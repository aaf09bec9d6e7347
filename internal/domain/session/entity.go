// internal/domain/session/entity.go
package session

import (
	"time"

	"github.com/ayuraa/wellness-backend/internal/domain/cart"
	"github.com/ayuraa/wellness-backend/internal/domain/navigation"
)

// Roles a signed-in user can have
const (
	RoleUser   = "user"
	RoleHealer = "healer"
)

// UI holds the overlay and focus flags of a storefront session
type UI struct {
	CartDrawerOpen   bool   `json:"cart_drawer_open"`
	AuthModalOpen    bool   `json:"auth_modal_open"`
	BookingModalOpen bool   `json:"booking_modal_open"`
	SelectedHealerID string `json:"selected_healer_id,omitempty"`
	HealerCategory   string `json:"healer_category,omitempty"`
	ScrollTarget     string `json:"scroll_target,omitempty"`
}

// User is the signed-in identity attached to a session
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

// State is everything the storefront keeps per browser session
type State struct {
	ID        string               `json:"id"`
	View      navigation.ViewState `json:"view"`
	Cart      cart.Cart            `json:"cart"`
	UI        UI                   `json:"ui"`
	User      *User                `json:"user,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// NewState returns the state of a session that has never been seen
func NewState(id string, now time.Time) *State {
	return &State{
		ID:        id,
		View:      navigation.Initial(),
		Cart:      cart.Cart{Items: []cart.LineItem{}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *State) viewer() *navigation.Viewer {
	if s.User == nil {
		return nil
	}
	return &navigation.Viewer{ID: s.User.ID, Email: s.User.Email, Name: s.User.Name, Role: s.User.Role}
}
