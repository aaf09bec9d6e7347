// internal/domain/healer/service.go
package healer

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ayuraa/wellness-backend/internal/domain/profile"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const cacheKey = "healers:directory"

// ProfileLister lists healer profiles
type ProfileLister interface {
	ListHealers(ctx context.Context) ([]profile.Profile, error)
}

// Cache stores JSON values with a TTL
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Service serves the healer directory. Listings are cached for ttl and
// concurrent misses share a single profile query. When profiles cannot be
// loaded the built-in directory is served instead.
type Service struct {
	profiles ProfileLister
	cache    Cache
	ttl      time.Duration
	group    singleflight.Group
	logger   *logrus.Logger
}

// NewService creates a new healer directory service. cache may be nil.
func NewService(profiles ProfileLister, cache Cache, ttl time.Duration, logger *logrus.Logger) *Service {
	return &Service{
		profiles: profiles,
		cache:    cache,
		ttl:      ttl,
		logger:   logger,
	}
}

// List returns the healers of category. An empty category or "all" lists
// everyone. Category may be a key such as "ayurveda" or its label.
func (s *Service) List(ctx context.Context, category string) (*ListResult, error) {
	category = strings.TrimSpace(category)
	label := category
	if l, ok := CategoryLabel(category); ok {
		label = l
	}

	healers, err := s.directory(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load healers, serving built-in directory")
		return &ListResult{
			Healers:  filterFallback(Fallback(), label),
			Category: categoryOrAll(category),
			Fallback: true,
		}, nil
	}

	return &ListResult{
		Healers:  filter(healers, label),
		Category: categoryOrAll(category),
	}, nil
}

// Get returns one healer of the directory
func (s *Service) Get(ctx context.Context, id string) (*Healer, bool) {
	res, err := s.List(ctx, "")
	if err != nil {
		return nil, false
	}
	for i := range res.Healers {
		if res.Healers[i].ID == id {
			return &res.Healers[i], true
		}
	}
	return nil, false
}

// Invalidate drops the cached directory
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKey); err != nil {
		s.logger.WithError(err).Warn("Failed to invalidate healer cache")
	}
}

func (s *Service) directory(ctx context.Context) ([]Healer, error) {
	if s.cache != nil {
		var cached []Healer
		found, err := s.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			s.logger.WithError(err).Warn("Failed to read healer cache")
		}
		if found {
			return cached, nil
		}
	}

	v, err, _ := s.group.Do(cacheKey, func() (any, error) {
		profiles, err := s.profiles.ListHealers(ctx)
		if err != nil {
			return nil, err
		}
		healers := make([]Healer, 0, len(profiles))
		for i := range profiles {
			healers = append(healers, fromProfile(&profiles[i]))
		}
		if s.cache != nil {
			if err := s.cache.SetJSON(ctx, cacheKey, healers, s.ttl); err != nil {
				s.logger.WithError(err).Warn("Failed to write healer cache")
			}
		}
		return healers, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list healers: %w", err)
	}
	return v.([]Healer), nil
}

var priceDigits = regexp.MustCompile(`[0-9]+(\.[0-9]+)?`)

// parsePrice reads the first number of a price label like "₹2500/session"
func parsePrice(label string) float64 {
	m := priceDigits.FindString(strings.ReplaceAll(label, ",", ""))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}

func fromProfile(p *profile.Profile) Healer {
	h := Healer{
		ID:           p.ID,
		Name:         p.Name,
		Rating:       p.Rating,
		ReviewsCount: p.ReviewsCount,
		Specialties:  append([]string{}, p.Specialties...),
		Availability: []string{},
		Category:     categoryOf(p.Specialties),
	}
	if p.Bio != nil {
		h.Bio = *p.Bio
	}
	if p.Pricing != nil {
		h.Pricing = *p.Pricing
		h.Price = parsePrice(*p.Pricing)
	}
	if p.AvatarURL != nil {
		h.AvatarURL = *p.AvatarURL
	}
	if p.Healer != nil {
		h.Location = p.Healer.Location
		h.Availability = append(h.Availability, p.Healer.Availability...)
	}
	return h
}

// categoryOf picks the first specialty that names a directory category
func categoryOf(specialties []string) string {
	for _, sp := range specialties {
		for _, c := range Categories[1:] {
			if strings.EqualFold(sp, c.Label) {
				return c.Label
			}
		}
	}
	return ""
}

func filter(healers []Healer, label string) []Healer {
	if label == "" || label == CategoryAll {
		return healers
	}
	out := make([]Healer, 0, len(healers))
	for _, h := range healers {
		if strings.EqualFold(h.Category, label) || containsFold(h.Specialties, label) {
			out = append(out, h)
		}
	}
	return out
}

// filterFallback matches on category only
func filterFallback(healers []Healer, label string) []Healer {
	if label == "" || label == CategoryAll {
		return healers
	}
	out := make([]Healer, 0, len(healers))
	for _, h := range healers {
		if h.Category == label {
			out = append(out, h)
		}
	}
	return out
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func categoryOrAll(c string) string {
	if c == "" {
		return CategoryAll
	}
	return c
}
