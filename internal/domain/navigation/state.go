package navigation

import "maps"

// ShopState is the sub-route of the shop view. It is only meaningful while
// the current view is "shop".
type ShopState struct {
	Type   string            `json:"type"`
	Params map[string]string `json:"params"`
}

// ViewState is the router state of one storefront session
type ViewState struct {
	CurrentView string    `json:"current_view"`
	ShopRoute   ShopState `json:"shop_route"`
}

// Initial returns the state every new session starts in
func Initial() ViewState {
	return ViewState{CurrentView: ViewHome, ShopRoute: emptyShop()}
}

func emptyShop() ShopState {
	return ShopState{Type: "", Params: map[string]string{}}
}

// Navigate computes the state that follows a navigation to route. It never
// fails: unknown views are kept verbatim and left to the resolver. The parsed
// route is returned so callers can run post-navigation effects for hash
// fragments.
func Navigate(route string, params map[string]string) (ViewState, Route) {
	parsed := ParseRoute(route)

	switch r := parsed.(type) {
	case ShopRoute:
		return ViewState{CurrentView: ViewShop, ShopRoute: shopState(r, params)}, parsed
	case HashView:
		return ViewState{CurrentView: viewOrHome(r.View), ShopRoute: emptyShop()}, parsed
	case PlainView:
		return ViewState{CurrentView: viewOrHome(r.View), ShopRoute: emptyShop()}, parsed
	}
	return Initial(), parsed
}

// shopState maps a shop path to its sub-route. Segments without a defined
// transition, and need/product without an argument, land on the shop landing
// page instead of keeping the previous sub-route.
func shopState(r ShopRoute, params map[string]string) ShopState {
	switch {
	case r.Segment == "all":
		p := map[string]string{"category": "all"}
		maps.Copy(p, params)
		return ShopState{Type: ShopListing, Params: p}
	case r.Segment == "need" && r.Arg != "":
		p := map[string]string{"need": r.Arg}
		maps.Copy(p, params)
		return ShopState{Type: ShopListing, Params: p}
	case r.Segment == "product" && r.Arg != "":
		return ShopState{Type: ShopProduct, Params: map[string]string{"handle": r.Arg}}
	case r.Segment == "cart":
		return ShopState{Type: ShopCart, Params: map[string]string{}}
	default:
		return ShopState{Type: ShopLanding, Params: map[string]string{}}
	}
}

func viewOrHome(view string) string {
	if view == "" {
		return ViewHome
	}
	return view
}
