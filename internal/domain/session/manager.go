// internal/domain/session/manager.go
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ayuraa/wellness-backend/internal/config"
	"github.com/ayuraa/wellness-backend/internal/domain/cart"
	"github.com/ayuraa/wellness-backend/internal/domain/navigation"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Manager applies storefront transitions to sessions. Transitions on the same
// session run one at a time; results of slow lookups are applied when they
// arrive, so the last write wins.
type Manager struct {
	store     Store
	resolver  *navigation.Resolver
	listeners []Listener
	logger    *logrus.Logger
	cfg       config.StorefrontConfig
	locks     *keyedMutex
	now       func() time.Time
}

// ManagerOption customizes a Manager
type ManagerOption func(*Manager)

// WithListeners registers post-navigation listeners
func WithListeners(ls ...Listener) ManagerOption {
	return func(m *Manager) { m.listeners = append(m.listeners, ls...) }
}

// WithResolver replaces the page resolver
func WithResolver(r *navigation.Resolver) ManagerOption {
	return func(m *Manager) { m.resolver = r }
}

// WithClock replaces the time source
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a session manager
func NewManager(store Store, cfg *config.Config, logger *logrus.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:    store,
		resolver: navigation.NewResolver(),
		logger:   logger,
		cfg:      cfg.Storefront,
		locks:    newKeyedMutex(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewID returns a fresh session id
func (m *Manager) NewID() string {
	return uuid.NewString()
}

// Pricing returns the cart pricing configured for the storefront
func (m *Manager) Pricing() cart.Pricing {
	return cart.Pricing{
		SubscriptionDiscount:  m.cfg.SubscriptionDiscount,
		FreeShippingThreshold: m.cfg.FreeShippingThreshold,
		FlatShipping:          m.cfg.FlatShipping,
		TaxRate:               m.cfg.TaxRate,
	}
}

// Get returns the session, or a fresh one if it does not exist yet. Fresh
// sessions are not saved until the first transition.
func (m *Manager) Get(ctx context.Context, id string) (*State, error) {
	st, err := m.store.Load(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return NewState(id, m.now()), nil
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// apply runs fn against the session under its lock and saves the result
func (m *Manager) apply(ctx context.Context, id string, fn func(st *State)) (*State, error) {
	unlock := m.locks.Lock(id)
	defer unlock()

	st, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fn(st)
	st.UpdatedAt = m.now()

	if err := m.store.Save(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Navigate moves the session to route. A viewport narrower than the mobile
// breakpoint closes the cart drawer in the same update. A zero width means
// unknown and leaves the drawer alone.
func (m *Manager) Navigate(ctx context.Context, id, route string, params map[string]string, viewportWidth int) (*State, error) {
	return m.apply(ctx, id, func(st *State) {
		m.navigate(st, route, params, viewportWidth)
	})
}

func (m *Manager) navigate(st *State, route string, params map[string]string, viewportWidth int) {
	if viewportWidth > 0 && viewportWidth < m.cfg.MobileBreakpoint {
		st.UI.CartDrawerOpen = false
	}

	view, parsed := navigation.Navigate(route, params)
	st.View = view
	st.UI.ScrollTarget = ""
	st.UI.HealerCategory = ""

	for _, l := range m.listeners {
		m.notify(l, parsed, &st.UI)
	}
}

func (m *Manager) notify(l Listener, route navigation.Route, ui *UI) {
	defer func() {
		if rec := recover(); rec != nil {
			m.logger.WithFields(logrus.Fields{
				"route": route.String(),
				"panic": rec,
			}).Warn("Navigation listener failed")
		}
	}()
	l.OnNavigate(route, ui)
}

// Page resolves the current page of the session
func (m *Manager) Page(ctx context.Context, id string) (*State, navigation.PageDescriptor, error) {
	st, err := m.Get(ctx, id)
	if err != nil {
		return nil, navigation.PageDescriptor{}, err
	}
	page, rerr := m.resolver.SafeResolve(st.View, navigation.PageContext{
		Viewer:        st.viewer(),
		CartItemCount: st.Cart.TotalItemCount(),
	})
	if rerr != nil {
		m.logger.WithError(rerr).WithField("session_id", id).Error("Page resolution failed")
	}
	return st, page, nil
}

// AddToCart adds a product to the session cart. It reports false when the
// product was rejected for having no id; the cart is then unchanged.
func (m *Manager) AddToCart(ctx context.Context, id string, p cart.Product, opts cart.AddOptions) (*State, bool, error) {
	added := false
	st, err := m.apply(ctx, id, func(st *State) {
		st.Cart, added = st.Cart.Add(p, opts, m.now())
	})
	if err == nil && !added {
		m.logger.WithField("session_id", id).Warn("Ignoring add to cart without product id")
	}
	return st, added, err
}

// UpdateCartItem merges a partial update into one cart line
func (m *Manager) UpdateCartItem(ctx context.Context, id, cartID string, u cart.Update) (*State, error) {
	return m.apply(ctx, id, func(st *State) {
		st.Cart = st.Cart.Update(cartID, u)
	})
}

// RemoveFromCart removes one cart line
func (m *Manager) RemoveFromCart(ctx context.Context, id, cartID string) (*State, error) {
	return m.apply(ctx, id, func(st *State) {
		st.Cart = st.Cart.Remove(cartID)
	})
}

// ClearCart empties the cart
func (m *Manager) ClearCart(ctx context.Context, id string) (*State, error) {
	return m.apply(ctx, id, func(st *State) {
		st.Cart = st.Cart.Clear()
	})
}

// SetCartDrawer opens or closes the cart drawer
func (m *Manager) SetCartDrawer(ctx context.Context, id string, open bool) (*State, error) {
	return m.apply(ctx, id, func(st *State) {
		st.UI.CartDrawerOpen = open
	})
}

// SetAuthModal opens or closes the sign-in modal
func (m *Manager) SetAuthModal(ctx context.Context, id string, open bool) (*State, error) {
	return m.apply(ctx, id, func(st *State) {
		st.UI.AuthModalOpen = open
	})
}

// OpenBooking selects a healer for booking. Anonymous sessions get the
// sign-in modal instead.
func (m *Manager) OpenBooking(ctx context.Context, id, healerID string) (*State, error) {
	return m.apply(ctx, id, func(st *State) {
		if st.User == nil {
			st.UI.AuthModalOpen = true
			return
		}
		if healerID == "" {
			return
		}
		st.UI.SelectedHealerID = healerID
		st.UI.BookingModalOpen = true
	})
}

// CloseBooking closes the booking modal and forgets the selected healer
func (m *Manager) CloseBooking(ctx context.Context, id string) (*State, error) {
	return m.apply(ctx, id, func(st *State) {
		st.UI.BookingModalOpen = false
		st.UI.SelectedHealerID = ""
	})
}

// RequestHealerRegistration opens the registration wizard, or the sign-in
// modal for anonymous sessions.
func (m *Manager) RequestHealerRegistration(ctx context.Context, id string) (*State, error) {
	return m.apply(ctx, id, func(st *State) {
		if st.User == nil {
			st.UI.AuthModalOpen = true
			return
		}
		m.navigate(st, navigation.ViewHealerRegistration, nil, 0)
	})
}

// CompleteHealerRegistration marks the user as a healer and opens the
// healer dashboard.
func (m *Manager) CompleteHealerRegistration(ctx context.Context, id string) (*State, error) {
	return m.apply(ctx, id, func(st *State) {
		if st.User != nil {
			st.User.Role = RoleHealer
		}
		m.navigate(st, navigation.ViewHealerDashboard, nil, 0)
	})
}

// RoleLoader looks up the profile role of a user. An error means the
// profile could not be loaded.
type RoleLoader func(ctx context.Context, userID string) (string, error)

// SignedIn attaches u to the session and, once loadRole resolves, sends the
// user to their dashboard. The lookup runs outside the session lock and is
// not cancelled by navigations made meanwhile; its redirect is applied when
// it completes. When the profile cannot be loaded the user stays where they
// are.
func (m *Manager) SignedIn(ctx context.Context, id string, u User, loadRole RoleLoader) (*State, error) {
	if _, err := m.apply(ctx, id, func(st *State) {
		user := u
		st.User = &user
	}); err != nil {
		return nil, err
	}

	role, err := loadRole(ctx, u.ID)
	if err != nil {
		m.logger.WithError(err).WithField("user_id", u.ID).Warn("Failed to load profile after sign in")
		return m.apply(ctx, id, func(st *State) {
			st.UI.AuthModalOpen = false
		})
	}

	return m.apply(ctx, id, func(st *State) {
		if st.User == nil || st.User.ID != u.ID {
			// signed out (or switched user) while the profile was loading
			return
		}
		st.User.Role = role
		st.UI.AuthModalOpen = false
		m.navigate(st, dashboardFor(role), nil, 0)
	})
}

// SignedUp attaches a newly registered user. Healers continue to the
// registration wizard, everyone else to the user dashboard.
func (m *Manager) SignedUp(ctx context.Context, id string, u User) (*State, error) {
	return m.apply(ctx, id, func(st *State) {
		user := u
		st.User = &user
		st.UI.AuthModalOpen = false
		if u.Role == RoleHealer {
			m.navigate(st, navigation.ViewHealerRegistration, nil, 0)
			return
		}
		m.navigate(st, navigation.ViewUserDashboard, nil, 0)
	})
}

// SignedOut returns the session to home with an empty cart
func (m *Manager) SignedOut(ctx context.Context, id string) (*State, error) {
	return m.apply(ctx, id, func(st *State) {
		st.User = nil
		st.Cart = st.Cart.Clear()
		st.UI = UI{}
		m.navigate(st, navigation.ViewHome, nil, 0)
	})
}

// Delete forgets the session
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

func dashboardFor(role string) string {
	if role == RoleHealer {
		return navigation.ViewHealerDashboard
	}
	return navigation.ViewUserDashboard
}

// keyedMutex serializes work per session id within this process
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

type refLock struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refLock)}
}

func (k *keyedMutex) Lock(id string) (unlock func()) {
	k.mu.Lock()
	l, ok := k.locks[id]
	if !ok {
		l = &refLock{}
		k.locks[id] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}
