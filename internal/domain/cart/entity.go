// internal/domain/cart/entity.go
package cart

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DefaultSize is used when neither the request nor the product names a size
const DefaultSize = "standard"

// maxQuantity bounds coerced quantities so sums cannot overflow
const maxQuantity = 1 << 20

// Product is the part of a catalog product that the cart copies into a line
type Product struct {
	ID          string  `json:"id"`
	Handle      string  `json:"handle,omitempty"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	DefaultSize string  `json:"default_size,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// LineItem is one row of the cart. At most one row exists per
// (ProductID, Size, Subscription).
type LineItem struct {
	CartID       string  `json:"cart_id"`
	ProductID    string  `json:"product_id"`
	Handle       string  `json:"handle,omitempty"`
	Name         string  `json:"name"`
	Image        string  `json:"image,omitempty"`
	Price        float64 `json:"price"`
	Size         string  `json:"size"`
	Subscription bool    `json:"subscription"`
	Quantity     int     `json:"quantity"`
}

// AddOptions are the optional choices made when adding a product
type AddOptions struct {
	Size         string   `json:"size,omitempty"`
	Subscription bool     `json:"subscription,omitempty"`
	Quantity     Quantity `json:"quantity"`
}

// Update is a partial line item. Nil fields are left alone; the cart id
// cannot be changed.
type Update struct {
	Name         *string  `json:"name,omitempty"`
	Price        *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	Size         *string  `json:"size,omitempty"`
	Subscription *bool    `json:"subscription,omitempty"`
	Quantity     *int     `json:"quantity,omitempty"`
}

// Totals is the checkout summary of a cart
type Totals struct {
	ItemCount             int     `json:"item_count"`
	LineCount             int     `json:"line_count"`
	Subtotal              float64 `json:"subtotal"`
	Discount              float64 `json:"discount"`
	Shipping              float64 `json:"shipping"`
	Tax                   float64 `json:"tax"`
	Total                 float64 `json:"total"`
	FreeShippingRemaining float64 `json:"free_shipping_remaining"`
}

// Pricing holds the rates used by Summary
type Pricing struct {
	SubscriptionDiscount  float64
	FreeShippingThreshold float64
	FlatShipping          float64
	TaxRate               float64
}

// DefaultPricing matches the storefront's published rates
func DefaultPricing() Pricing {
	return Pricing{
		SubscriptionDiscount:  0.15,
		FreeShippingThreshold: 499,
		FlatShipping:          49,
		TaxRate:               0.08,
	}
}

// Quantity is a requested quantity as it arrives from a client. Decoding
// never fails: numbers are truncated, numeric strings are parsed from their
// leading digits and anything else counts as unset. Value clamps to at
// least 1.
type Quantity struct {
	n   int
	set bool
}

// QuantityOf wraps an integer quantity
func QuantityOf(n int) Quantity {
	return Quantity{n: n, set: true}
}

// Value is the coerced quantity, never below 1
func (q Quantity) Value() int {
	if !q.set || q.n < 1 {
		return 1
	}
	if q.n > maxQuantity {
		return maxQuantity
	}
	return q.n
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.Value())
}

func (q *Quantity) UnmarshalJSON(b []byte) error {
	*q = Quantity{}
	b = bytes.TrimSpace(b)

	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		q.setFloat(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if n, ok := leadingInt(s); ok {
			q.n, q.set = n, true
		}
	}
	return nil
}

func (q *Quantity) setFloat(f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return
	}
	f = math.Trunc(f)
	if f > maxQuantity {
		f = maxQuantity
	}
	if f < -maxQuantity {
		f = -maxQuantity
	}
	q.n, q.set = int(f), true
}

// leadingInt parses an optional sign and the digits that follow it, ignoring
// whatever comes after ("2.5" is 2, "3 jars" is 3).
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	if end-digits > 7 {
		if s[0] == '-' {
			return -maxQuantity, true
		}
		return maxQuantity, true
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
