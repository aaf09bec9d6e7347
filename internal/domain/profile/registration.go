package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/ayuraa/wellness-backend/internal/pkg/apperr"
	"github.com/ayuraa/wellness-backend/internal/pkg/validation"
)

// Registration wizard steps
const (
	StepPersonal = iota
	StepProfessional
	StepServices
	StepAvailability
	StepReview
)

const (
	defaultExperience      = "3-5 years"
	defaultIndividualPrice = "2500"
	defaultSessionDuration = "60"
	defaultTimezone        = "EST"
)

type PersonalInfo struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Location string `json:"location" validate:"required"`
	Bio      string `json:"bio" validate:"required,max=500"`
}

type ProfessionalInfo struct {
	Categories     []string `json:"categories" validate:"min=1"`
	Specialties    []string `json:"specialties"`
	Certifications []string `json:"certifications"`
	Experience     string   `json:"experience"`
}

type PricingInfo struct {
	Individual   string `json:"individual" validate:"required"`
	Group        string `json:"group"`
	Consultation string `json:"consultation"`
}

type ServicesInfo struct {
	SessionTypes    []string    `json:"session_types" validate:"min=1"`
	Pricing         PricingInfo `json:"pricing"`
	SessionDuration string      `json:"session_duration"`
}

type AvailabilityInfo struct {
	Availability []string `json:"availability" validate:"min=1"`
	Timezone     string   `json:"timezone"`
}

// RegistrationForm is the healer registration wizard, one embedded struct
// per step.
type RegistrationForm struct {
	PersonalInfo
	ProfessionalInfo
	ServicesInfo
	AvailabilityInfo
	Languages []string `json:"languages"`
	Approach  string   `json:"approach"`
}

// ValidateStep checks whether the wizard may move past step
func (f *RegistrationForm) ValidateStep(step int) error {
	var section any
	switch step {
	case StepPersonal:
		section = &f.PersonalInfo
	case StepProfessional:
		section = &f.ProfessionalInfo
	case StepServices:
		section = &f.ServicesInfo
	case StepAvailability:
		section = &f.AvailabilityInfo
	case StepReview:
		return nil
	default:
		return apperr.InvalidErr(fmt.Sprintf("Unknown registration step %d", step), nil)
	}
	return validation.Struct(section, "Please complete this step")
}

// Validate checks every step
func (f *RegistrationForm) Validate() error {
	for step := StepPersonal; step <= StepReview; step++ {
		if err := f.ValidateStep(step); err != nil {
			return err
		}
	}
	return nil
}

// ToUpdate turns a completed form into the profile update that makes the
// user a healer.
func (f *RegistrationForm) ToUpdate() *UpdateRequest {
	role := RoleHealer
	bio := strings.TrimSpace(f.Bio)

	specialties := make([]string, 0, len(f.Categories)+len(f.Specialties))
	for _, s := range append(append([]string{}, f.Categories...), f.Specialties...) {
		if s = strings.TrimSpace(s); s != "" {
			specialties = append(specialties, s)
		}
	}

	experience := f.Experience
	if experience == "" {
		experience = defaultExperience
	}

	individual := f.Pricing.Individual
	if individual == "" {
		individual = defaultIndividualPrice
	}
	pricing := fmt.Sprintf("₹%s/session", individual)

	duration := f.SessionDuration
	if duration == "" {
		duration = defaultSessionDuration
	}
	timezone := f.Timezone
	if timezone == "" {
		timezone = defaultTimezone
	}
	languages := f.Languages
	if len(languages) == 0 {
		languages = []string{"English"}
	}

	return &UpdateRequest{
		Role:        &role,
		Bio:         &bio,
		Specialties: &specialties,
		Experience:  &experience,
		Pricing:     &pricing,
		Healer: &HealerDetails{
			Location:        f.Location,
			Phone:           f.Phone,
			Approach:        f.Approach,
			Certifications:  f.Certifications,
			SessionTypes:    f.SessionTypes,
			Availability:    f.Availability,
			Timezone:        timezone,
			Languages:       languages,
			SessionDuration: duration,
			GroupPrice:      f.Pricing.Group,
			ConsultPrice:    f.Pricing.Consultation,
		},
	}
}

// CompleteRegistration validates the form and turns the user's profile into a
// healer profile.
func (s *Service) CompleteRegistration(ctx context.Context, userID string, form *RegistrationForm) (*Profile, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	p, err := s.Update(ctx, userID, form.ToUpdate())
	if err != nil {
		return nil, err
	}

	s.logger.WithField("profile_id", userID).Info("Healer registration completed")
	return p, nil
}
