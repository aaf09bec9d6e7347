// Package navigation implements the storefront view router: the route
// grammar, the navigate transition and page resolution.
package navigation

import "strings"

// View names understood by the resolver
const (
	ViewHome               = "home"
	ViewServices           = "services"
	ViewShop               = "shop"
	ViewCheckout           = "checkout"
	ViewShopAccount        = "shop-account"
	ViewUserDashboard      = "user-dashboard"
	ViewHealerDashboard    = "healer-dashboard"
	ViewHealerRegistration = "healer-registration"
	ViewResources          = "resources"
	ViewCommunity          = "community"
	ViewContact            = "contact"
	ViewFAQs               = "faqs"
)

// Shop sub-route types
const (
	ShopLanding = "landing"
	ShopListing = "listing"
	ShopProduct = "product"
	ShopCart    = "cart"
)

// Route is a parsed route string. It is one of PlainView, HashView or
// ShopRoute.
type Route interface {
	String() string
	route()
}

// PlainView is a bare view name such as "community".
type PlainView struct {
	View string
}

// HashView is "<view>#<fragment>", e.g. "services#ayurveda".
type HashView struct {
	View     string
	Fragment string
}

// ShopRoute is "shop" or "shop/<segment>[/<arg>]".
type ShopRoute struct {
	Segment string
	Arg     string
}

func (PlainView) route() {}
func (HashView) route()  {}
func (ShopRoute) route() {}

func (r PlainView) String() string { return r.View }

func (r HashView) String() string { return r.View + "#" + r.Fragment }

func (r ShopRoute) String() string {
	switch {
	case r.Segment == "":
		return ViewShop
	case r.Arg == "":
		return ViewShop + "/" + r.Segment
	default:
		return ViewShop + "/" + r.Segment + "/" + r.Arg
	}
}

// ParseRoute parses a route string. It never fails; anything that is not a
// shop path or a hash form is a plain view.
func ParseRoute(s string) Route {
	if s == ViewShop {
		return ShopRoute{}
	}
	if rest, ok := strings.CutPrefix(s, ViewShop+"/"); ok {
		parts := strings.Split(rest, "/")
		r := ShopRoute{Segment: parts[0]}
		if len(parts) > 1 {
			r.Arg = parts[1]
		}
		return r
	}
	if view, fragment, ok := strings.Cut(s, "#"); ok {
		return HashView{View: view, Fragment: fragment}
	}
	return PlainView{View: s}
}
