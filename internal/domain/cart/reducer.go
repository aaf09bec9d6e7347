package cart

import (
	"fmt"
	"math"
	"time"
)

// Cart is an ordered, immutable list of line items. Every mutation returns a
// new Cart and leaves the receiver untouched.
type Cart struct {
	Items []LineItem `json:"items"`
	// LastStamp is the timestamp component of the newest cart id. Ids stay
	// unique for the cart's lifetime even when adds share a millisecond.
	LastStamp int64 `json:"last_stamp,omitempty"`
}

type key struct {
	productID    string
	size         string
	subscription bool
}

func (li LineItem) key() key {
	return key{li.ProductID, li.Size, li.Subscription}
}

func (c Cart) clone() Cart {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items, LastStamp: c.LastStamp}
}

func (c Cart) indexOf(cartID string) int {
	for i, li := range c.Items {
		if li.CartID == cartID {
			return i
		}
	}
	return -1
}

func (c Cart) indexOfKey(k key) int {
	for i, li := range c.Items {
		if li.key() == k {
			return i
		}
	}
	return -1
}

// Find returns the line with cartID
func (c Cart) Find(cartID string) (LineItem, bool) {
	if i := c.indexOf(cartID); i >= 0 {
		return c.Items[i], true
	}
	return LineItem{}, false
}

// Add puts quantity units of p into the cart. A line with the same product,
// size and subscription flag is incremented instead of duplicated. It
// reports false, with the cart unchanged, when p has no id.
func (c Cart) Add(p Product, opts AddOptions, at time.Time) (Cart, bool) {
	if p.ID == "" {
		return c, false
	}

	size := opts.Size
	if size == "" {
		size = p.DefaultSize
	}
	if size == "" {
		size = DefaultSize
	}
	qty := opts.Quantity.Value()
	k := key{p.ID, size, opts.Subscription}

	next := c.clone()
	if i := next.indexOfKey(k); i >= 0 {
		next.Items[i].Quantity = addQuantity(next.Items[i].Quantity, qty)
		return next, true
	}

	stamp := at.UnixMilli()
	if stamp <= next.LastStamp {
		stamp = next.LastStamp + 1
	}
	next.LastStamp = stamp

	next.Items = append(next.Items, LineItem{
		CartID:       fmt.Sprintf("%s-%s-%t-%d", p.ID, size, opts.Subscription, stamp),
		ProductID:    p.ID,
		Handle:       p.Handle,
		Name:         p.Name,
		Image:        p.Image,
		Price:        p.Price,
		Size:         size,
		Subscription: opts.Subscription,
		Quantity:     qty,
	})
	return next, true
}

// Update merges u into the line with cartID. Unknown ids leave the cart
// unchanged. A quantity below 1 removes the line. If the update gives the
// line the size and subscription of another line for the same product, the
// two are merged under cartID.
func (c Cart) Update(cartID string, u Update) Cart {
	i := c.indexOf(cartID)
	if i < 0 {
		return c
	}
	if u.Quantity != nil && *u.Quantity < 1 {
		return c.Remove(cartID)
	}

	li := c.Items[i]
	if u.Name != nil {
		li.Name = *u.Name
	}
	if u.Price != nil {
		li.Price = *u.Price
	}
	if u.Size != nil && *u.Size != "" {
		li.Size = *u.Size
	}
	if u.Subscription != nil {
		li.Subscription = *u.Subscription
	}
	if u.Quantity != nil {
		li.Quantity = min(*u.Quantity, maxQuantity)
	}

	merged := -1
	for j, other := range c.Items {
		if j != i && other.key() == li.key() {
			merged = j
			li.Quantity = addQuantity(li.Quantity, other.Quantity)
			break
		}
	}

	items := make([]LineItem, 0, len(c.Items))
	for j, other := range c.Items {
		switch j {
		case i:
			items = append(items, li)
		case merged:
		default:
			items = append(items, other)
		}
	}
	return Cart{Items: items, LastStamp: c.LastStamp}
}

// Remove drops the line with cartID, if any
func (c Cart) Remove(cartID string) Cart {
	i := c.indexOf(cartID)
	if i < 0 {
		return c
	}
	items := make([]LineItem, 0, len(c.Items)-1)
	items = append(items, c.Items[:i]...)
	items = append(items, c.Items[i+1:]...)
	return Cart{Items: items, LastStamp: c.LastStamp}
}

// Clear empties the cart but keeps the id clock
func (c Cart) Clear() Cart {
	return Cart{Items: []LineItem{}, LastStamp: c.LastStamp}
}

// TotalItemCount is the sum of quantities
func (c Cart) TotalItemCount() int {
	n := 0
	for _, li := range c.Items {
		n += li.Quantity
	}
	return n
}

// PriceOption adjusts TotalPrice
type PriceOption func(*priceOptions)

type priceOptions struct {
	subscriptionDiscount float64
}

// WithSubscriptionDiscount prices subscription lines at (1 - rate)
func WithSubscriptionDiscount(rate float64) PriceOption {
	return func(o *priceOptions) { o.subscriptionDiscount = rate }
}

// TotalPrice is the sum of price times quantity. Stored prices are never
// changed by discounts.
func (c Cart) TotalPrice(opts ...PriceOption) float64 {
	var o priceOptions
	for _, opt := range opts {
		opt(&o)
	}
	total := 0.0
	for _, li := range c.Items {
		line := li.Price * float64(li.Quantity)
		if li.Subscription && o.subscriptionDiscount > 0 {
			line *= 1 - o.subscriptionDiscount
		}
		total += line
	}
	return total
}

// Summary computes the checkout totals: shipping is free from the threshold
// up and tax applies to the discounted subtotal.
func (c Cart) Summary(p Pricing) Totals {
	subtotal := c.TotalPrice()
	discount := subtotal - c.TotalPrice(WithSubscriptionDiscount(p.SubscriptionDiscount))

	shipping := p.FlatShipping
	if subtotal >= p.FreeShippingThreshold {
		shipping = 0
	}
	tax := (subtotal - discount) * p.TaxRate

	return Totals{
		ItemCount:             c.TotalItemCount(),
		LineCount:             len(c.Items),
		Subtotal:              round2(subtotal),
		Discount:              round2(discount),
		Shipping:              round2(shipping),
		Tax:                   round2(tax),
		Total:                 round2(subtotal - discount + shipping + tax),
		FreeShippingRemaining: round2(math.Max(0, p.FreeShippingThreshold-subtotal)),
	}
}

func addQuantity(a, b int) int {
	return min(a+b, maxQuantity)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
