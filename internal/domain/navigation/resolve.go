package navigation

import (
	"fmt"
	"maps"
)

// Capabilities a page hands to its leaf view
const (
	ActionNavigate             = "navigate"
	ActionAddToCart            = "add_to_cart"
	ActionUpdateCart           = "update_cart"
	ActionRemoveFromCart       = "remove_from_cart"
	ActionBookHealer           = "book_healer"
	ActionSignIn               = "sign_in"
	ActionBecomeHealer         = "become_healer"
	ActionAskAI                = "ask_ai"
	ActionUpdateProfile        = "update_profile"
	ActionCompleteRegistration = "complete_registration"
	ActionPlaceOrder           = "place_order"
)

// Action is a recovery or call-to-action link on a page
type Action struct {
	Label string `json:"label"`
	Route string `json:"route"`
}

// PageDescriptor names the leaf view to render and what it receives
type PageDescriptor struct {
	Page         string         `json:"page"`
	Title        string         `json:"title,omitempty"`
	Message      string         `json:"message,omitempty"`
	Sections     []string       `json:"sections,omitempty"`
	Props        map[string]any `json:"props,omitempty"`
	Capabilities []string       `json:"capabilities,omitempty"`
	Footer       bool           `json:"footer"`
	Recovery     *Action        `json:"recovery,omitempty"`
}

// Viewer is the signed-in user as seen by page builders
type Viewer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

// PageContext carries the session data that pages pass down as props
type PageContext struct {
	Viewer        *Viewer
	CartItemCount int
}

// PageBuilder builds the descriptor of one page
type PageBuilder func(state ViewState, pc PageContext) (PageDescriptor, error)

// Resolver maps view states to page descriptors
type Resolver struct {
	pages     map[string]PageBuilder
	shopPages map[string]PageBuilder
}

// Option customizes a Resolver
type Option func(*Resolver)

// WithPage replaces the builder of a top-level view
func WithPage(view string, b PageBuilder) Option {
	return func(r *Resolver) { r.pages[view] = b }
}

// WithShopPage replaces the builder of a shop sub-route
func WithShopPage(routeType string, b PageBuilder) Option {
	return func(r *Resolver) { r.shopPages[routeType] = b }
}

// NewResolver creates a resolver with the storefront's pages
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		pages: map[string]PageBuilder{
			ViewHome:               homePage,
			ViewServices:           servicesPage,
			ViewCheckout:           checkoutPage,
			ViewShopAccount:        simplePage("shop-account", "My Account", true),
			ViewUserDashboard:      userDashboardPage,
			ViewHealerDashboard:    simplePage("healer-dashboard", "Healer Dashboard", true),
			ViewHealerRegistration: healerRegistrationPage,
			ViewResources:          simplePage("resource-library", "Resource Library", true),
			ViewCommunity:          communityPage,
			ViewContact:            contactPage,
			ViewFAQs:               faqsPage,
		},
		shopPages: map[string]PageBuilder{
			ShopLanding: shopLandingPage,
			ShopListing: shopListingPage,
			ShopProduct: shopProductPage,
			ShopCart:    shopCartPage,
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultResolver = NewResolver()

// ResolveView resolves state with the default pages and no session context
func ResolveView(state ViewState) PageDescriptor {
	page, _ := defaultResolver.SafeResolve(state, PageContext{})
	return page
}

// Resolve returns the page for state. Unknown views resolve to home, and
// unknown or empty shop sub-routes resolve to the shop landing page.
func (r *Resolver) Resolve(state ViewState, pc PageContext) (PageDescriptor, error) {
	if state.CurrentView == ViewShop {
		return r.resolveShop(state, pc)
	}
	build, ok := r.pages[state.CurrentView]
	if !ok {
		build = r.pages[ViewHome]
	}
	return build(state, pc)
}

// resolveShop falls back to the landing page when a sub-page fails
func (r *Resolver) resolveShop(state ViewState, pc PageContext) (page PageDescriptor, err error) {
	landing := r.shopPages[ShopLanding]
	build, ok := r.shopPages[state.ShopRoute.Type]
	if !ok {
		build = landing
	}

	defer func() {
		if rec := recover(); rec != nil {
			page, err = landing(state, pc)
		}
	}()

	page, err = build(state, pc)
	if err != nil {
		return landing(state, pc)
	}
	return page, nil
}

// SafeResolve resolves state and substitutes the error page if a builder
// fails or panics. The returned page is always renderable; a non-nil error
// reports why the fallback was used.
func (r *Resolver) SafeResolve(state ViewState, pc PageContext) (page PageDescriptor, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			page, err = ErrorPage(), fmt.Errorf("resolve %q: panic: %v", state.CurrentView, rec)
		}
	}()

	page, err = r.Resolve(state, pc)
	if err != nil {
		return ErrorPage(), fmt.Errorf("resolve %q: %w", state.CurrentView, err)
	}
	return page, nil
}

// ErrorPage is the fixed fallback page. Its only action goes back home.
func ErrorPage() PageDescriptor {
	return PageDescriptor{
		Page:     "error",
		Title:    "Oops! Something went wrong",
		Message:  "We're having trouble loading this page.",
		Recovery: &Action{Label: "Go Home", Route: ViewHome},
	}
}

func viewerProps(pc PageContext) map[string]any {
	props := map[string]any{"cart_item_count": pc.CartItemCount}
	if pc.Viewer != nil {
		props["user"] = pc.Viewer
	}
	return props
}

func simplePage(page, title string, footer bool) PageBuilder {
	return func(_ ViewState, pc PageContext) (PageDescriptor, error) {
		return PageDescriptor{
			Page:         page,
			Title:        title,
			Sections:     []string{page},
			Props:        viewerProps(pc),
			Capabilities: []string{ActionNavigate},
			Footer:       footer,
		}, nil
	}
}

func homePage(_ ViewState, pc PageContext) (PageDescriptor, error) {
	return PageDescriptor{
		Page:     "home",
		Title:    "Ayuraa",
		Sections: []string{"hero", "service-matching", "featured-healers", "product-store-preview", "resource-library-preview"},
		Props:    viewerProps(pc),
		Capabilities: []string{
			ActionNavigate, ActionSignIn, ActionBecomeHealer, ActionAskAI, ActionBookHealer, ActionAddToCart,
		},
		Footer: true,
	}, nil
}

func servicesPage(_ ViewState, pc PageContext) (PageDescriptor, error) {
	return PageDescriptor{
		Page:         "services",
		Title:        "Find Your Healer",
		Sections:     []string{"featured-healers", "service-matching"},
		Props:        viewerProps(pc),
		Capabilities: []string{ActionNavigate, ActionBookHealer},
		Footer:       true,
	}, nil
}

func checkoutPage(_ ViewState, pc PageContext) (PageDescriptor, error) {
	return PageDescriptor{
		Page:         "checkout",
		Title:        "Checkout",
		Sections:     []string{"checkout"},
		Props:        viewerProps(pc),
		Capabilities: []string{ActionNavigate, ActionUpdateCart, ActionRemoveFromCart, ActionPlaceOrder},
	}, nil
}

func userDashboardPage(_ ViewState, pc PageContext) (PageDescriptor, error) {
	return PageDescriptor{
		Page:         "user-dashboard",
		Title:        "My Wellness Journey",
		Sections:     []string{"user-dashboard"},
		Props:        viewerProps(pc),
		Capabilities: []string{ActionNavigate, ActionUpdateProfile},
		Footer:       true,
	}, nil
}

func healerRegistrationPage(_ ViewState, pc PageContext) (PageDescriptor, error) {
	return PageDescriptor{
		Page:         "healer-registration",
		Title:        "Become a Healer",
		Sections:     []string{"healer-registration"},
		Props:        viewerProps(pc),
		Capabilities: []string{ActionCompleteRegistration},
	}, nil
}

func communityPage(_ ViewState, pc PageContext) (PageDescriptor, error) {
	return PageDescriptor{
		Page:         "community",
		Title:        "Community",
		Sections:     []string{"community"},
		Props:        viewerProps(pc),
		Capabilities: []string{ActionNavigate, ActionSignIn},
		Footer:       true,
	}, nil
}

func contactPage(_ ViewState, pc PageContext) (PageDescriptor, error) {
	props := viewerProps(pc)
	props["contact"] = map[string]string{
		"email":   "hello@ayuraa.com",
		"phone":   "+91 98765 43210",
		"address": "Wellness Center, Mumbai, India",
	}
	props["support_hours"] = []string{
		"Monday - Friday: 9 AM - 8 PM IST",
		"Saturday: 10 AM - 6 PM IST",
		"Sunday: Closed",
	}
	return PageDescriptor{
		Page:         "contact",
		Title:        "Contact Us",
		Sections:     []string{"contact"},
		Props:        props,
		Capabilities: []string{ActionNavigate},
		Footer:       true,
	}, nil
}

// FAQ is one question on the FAQs page
type FAQ struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

var faqs = []FAQ{
	{"How do I book a session with a healer?", "Browse the verified healers, pick one and choose Book Session with your preferred date and time."},
	{"Are all healers verified?", "Yes. Every healer goes through credential checks and experience validation."},
	{"What payment methods do you accept?", "Major credit and debit cards, UPI and digital wallets."},
}

func faqsPage(_ ViewState, pc PageContext) (PageDescriptor, error) {
	props := viewerProps(pc)
	props["faqs"] = faqs
	return PageDescriptor{
		Page:         "faqs",
		Title:        "FAQs",
		Sections:     []string{"faqs"},
		Props:        props,
		Capabilities: []string{ActionNavigate},
		Footer:       true,
	}, nil
}

func shopLandingPage(_ ViewState, pc PageContext) (PageDescriptor, error) {
	return PageDescriptor{
		Page:         "shop-landing",
		Title:        "Shop",
		Sections:     []string{"shop-landing"},
		Props:        viewerProps(pc),
		Capabilities: []string{ActionNavigate},
		Footer:       true,
	}, nil
}

func shopListingPage(state ViewState, pc PageContext) (PageDescriptor, error) {
	props := viewerProps(pc)
	filters := map[string]string{}
	maps.Copy(filters, state.ShopRoute.Params)
	props["filters"] = filters
	return PageDescriptor{
		Page:         "product-listing",
		Title:        "Products",
		Sections:     []string{"product-listing"},
		Props:        props,
		Capabilities: []string{ActionNavigate, ActionAddToCart},
		Footer:       true,
	}, nil
}

func shopProductPage(state ViewState, pc PageContext) (PageDescriptor, error) {
	props := viewerProps(pc)
	props["handle"] = state.ShopRoute.Params["handle"]
	return PageDescriptor{
		Page:         "product-detail",
		Sections:     []string{"product-detail"},
		Props:        props,
		Capabilities: []string{ActionNavigate, ActionAddToCart},
		Footer:       true,
	}, nil
}

func shopCartPage(_ ViewState, pc PageContext) (PageDescriptor, error) {
	return PageDescriptor{
		Page:         "shop-cart",
		Title:        "Your Cart",
		Sections:     []string{"shop-cart"},
		Props:        viewerProps(pc),
		Capabilities: []string{ActionNavigate, ActionUpdateCart, ActionRemoveFromCart},
		Footer:       true,
	}, nil
}
