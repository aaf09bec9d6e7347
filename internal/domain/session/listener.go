package session

import (
	"github.com/ayuraa/wellness-backend/internal/domain/navigation"
)

// Listener reacts to a completed navigation. It may adjust UI focus flags
// but never sees or changes the view state. Listeners must return quickly;
// a panic is recovered and logged.
type Listener interface {
	OnNavigate(route navigation.Route, ui *UI)
}

// ListenerFunc adapts a function to Listener
type ListenerFunc func(route navigation.Route, ui *UI)

func (f ListenerFunc) OnNavigate(route navigation.Route, ui *UI) { f(route, ui) }

// Scroll targets set by CategoryFocus
const (
	ScrollSymptoms = "symptoms"
	ScrollHealers  = "healers"
)

// CategoryFocus handles services#<fragment>. "symptoms" focuses the symptom
// matcher; any other fragment focuses the healer directory and, when lookup
// knows the fragment, selects that healer category.
type CategoryFocus struct {
	lookup func(fragment string) (string, bool)
}

func NewCategoryFocus(lookup func(fragment string) (string, bool)) *CategoryFocus {
	return &CategoryFocus{lookup: lookup}
}

func (c *CategoryFocus) OnNavigate(route navigation.Route, ui *UI) {
	hv, ok := route.(navigation.HashView)
	if !ok || hv.View != navigation.ViewServices {
		return
	}
	if hv.Fragment == ScrollSymptoms {
		ui.ScrollTarget = ScrollSymptoms
		return
	}
	if c.lookup != nil {
		if label, ok := c.lookup(hv.Fragment); ok {
			ui.HealerCategory = label
		}
	}
	ui.ScrollTarget = ScrollHealers
}
