package cart

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func add(t *testing.T, c Cart, p Product, opts AddOptions) Cart {
	t.Helper()
	next, ok := c.Add(p, opts, t0)
	require.True(t, ok)
	return next
}

func TestAdd_MergesIdenticalCombination(t *testing.T) {
	p := Product{ID: "p1", Name: "Calm Tea", Price: 100}

	c := add(t, Cart{}, p, AddOptions{Size: "L", Quantity: QuantityOf(2)})
	c = add(t, c, p, AddOptions{Size: "L", Quantity: QuantityOf(1)})

	require.Len(t, c.Items, 1)
	assert.Equal(t, "L", c.Items[0].Size)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, 100.0, c.Items[0].Price)
	assert.Equal(t, 300.0, c.TotalPrice())
	assert.Equal(t, 3, c.TotalItemCount())
}

func TestAdd_DistinctCombinationsGetOwnLines(t *testing.T) {
	p := Product{ID: "p1", Price: 10}

	c := add(t, Cart{}, p, AddOptions{Size: "S"})
	c = add(t, c, p, AddOptions{Size: "S", Subscription: true})
	c = add(t, c, p, AddOptions{Size: "M"})

	require.Len(t, c.Items, 3)
	ids := map[string]bool{}
	for _, li := range c.Items {
		ids[li.CartID] = true
	}
	assert.Len(t, ids, 3, "cart ids must be unique even within one millisecond")
	assert.Equal(t, "p1-S-false-"+itoa(t0.UnixMilli()), c.Items[0].CartID)
	assert.Equal(t, "p1-S-true-"+itoa(t0.UnixMilli()+1), c.Items[1].CartID)
}

func TestAdd_CartIDsStayUniqueAfterRemoval(t *testing.T) {
	p := Product{ID: "p1", Price: 10}
	c := add(t, Cart{}, p, AddOptions{})
	first := c.Items[0].CartID

	c = c.Remove(first)
	c = add(t, c, p, AddOptions{})
	assert.NotEqual(t, first, c.Items[0].CartID)
}

func TestAdd_SizeDefaults(t *testing.T) {
	c := add(t, Cart{}, Product{ID: "a", DefaultSize: "250g"}, AddOptions{})
	c = add(t, c, Product{ID: "b"}, AddOptions{})

	assert.Equal(t, "250g", c.Items[0].Size)
	assert.Equal(t, DefaultSize, c.Items[1].Size)
	assert.False(t, c.Items[1].Subscription)
	assert.Equal(t, 1, c.Items[1].Quantity)
}

func TestAdd_MissingProductIDIsNoop(t *testing.T) {
	c := add(t, Cart{}, Product{ID: "a"}, AddOptions{})
	next, ok := c.Add(Product{Name: "ghost"}, AddOptions{}, t0)
	assert.False(t, ok)
	assert.Equal(t, c, next)
}

func TestAdd_IsImmutable(t *testing.T) {
	p := Product{ID: "p1", Price: 5}
	before := add(t, Cart{}, p, AddOptions{})
	after := add(t, before, p, AddOptions{Quantity: QuantityOf(4)})

	assert.Equal(t, 1, before.Items[0].Quantity)
	assert.Equal(t, 5, after.Items[0].Quantity)
}

func TestQuantity_Coercion(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{`{}`, 1},
		{`{"quantity": null}`, 1},
		{`{"quantity": 3}`, 3},
		{`{"quantity": 2.9}`, 2},
		{`{"quantity": 0}`, 1},
		{`{"quantity": -4}`, 1},
		{`{"quantity": "5"}`, 5},
		{`{"quantity": "2.5"}`, 2},
		{`{"quantity": "abc"}`, 1},
		{`{"quantity": true}`, 1},
		{`{"quantity": [1]}`, 1},
		{`{"quantity": 1e30}`, maxQuantity},
		{`{"quantity": "99999999999999"}`, maxQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var opts AddOptions
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &opts))
			assert.Equal(t, tt.want, opts.Quantity.Value())
		})
	}
}

func TestUpdate(t *testing.T) {
	p := Product{ID: "p1", Name: "Oil", Price: 20}
	c := add(t, Cart{}, p, AddOptions{Quantity: QuantityOf(2)})
	id := c.Items[0].CartID

	qty := 5
	name := "Body Oil"
	next := c.Update(id, Update{Quantity: &qty, Name: &name})

	require.Len(t, next.Items, 1)
	assert.Equal(t, id, next.Items[0].CartID)
	assert.Equal(t, 5, next.Items[0].Quantity)
	assert.Equal(t, "Body Oil", next.Items[0].Name)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestUpdate_UnknownIDIsNoop(t *testing.T) {
	c := add(t, Cart{}, Product{ID: "p1"}, AddOptions{})
	qty := 9
	assert.Equal(t, c, c.Update("nope", Update{Quantity: &qty}))
}

func TestUpdate_ZeroQuantityRemoves(t *testing.T) {
	c := add(t, Cart{}, Product{ID: "p1"}, AddOptions{})
	zero := 0
	assert.Empty(t, c.Update(c.Items[0].CartID, Update{Quantity: &zero}).Items)
}

func TestUpdate_CollisionMerges(t *testing.T) {
	p := Product{ID: "p1", Price: 10}
	c := add(t, Cart{}, p, AddOptions{Quantity: QuantityOf(2)})
	c = add(t, c, p, AddOptions{Subscription: true, Quantity: QuantityOf(3)})
	sub := c.Items[1].CartID

	off := false
	next := c.Update(sub, Update{Subscription: &off})

	require.Len(t, next.Items, 1)
	assert.Equal(t, sub, next.Items[0].CartID)
	assert.Equal(t, 5, next.Items[0].Quantity)
	assert.False(t, next.Items[0].Subscription)
}

func TestRemove_IsTotal(t *testing.T) {
	c := add(t, Cart{}, Product{ID: "a", Price: 1}, AddOptions{Quantity: QuantityOf(2)})
	c = add(t, c, Product{ID: "b", Price: 1}, AddOptions{Quantity: QuantityOf(3)})
	before := c.TotalItemCount()
	target := c.Items[1]

	next := c.Remove(target.CartID)

	_, found := next.Find(target.CartID)
	assert.False(t, found)
	assert.Equal(t, before-target.Quantity, next.TotalItemCount())
	assert.Equal(t, c, c.Remove("missing").Remove("missing"))
}

func TestTotalPrice_SubscriptionDiscount(t *testing.T) {
	c := add(t, Cart{}, Product{ID: "a", Price: 100}, AddOptions{Quantity: QuantityOf(2)})
	c = add(t, c, Product{ID: "b", Price: 200}, AddOptions{Subscription: true})

	assert.InDelta(t, 400.0, c.TotalPrice(), 1e-9)
	assert.InDelta(t, 370.0, c.TotalPrice(WithSubscriptionDiscount(0.15)), 1e-9)
	assert.Equal(t, 200.0, c.Items[1].Price)
}

func TestSummary(t *testing.T) {
	pricing := DefaultPricing()

	small := add(t, Cart{}, Product{ID: "a", Price: 100}, AddOptions{Subscription: true})
	s := small.Summary(pricing)
	assert.Equal(t, 100.0, s.Subtotal)
	assert.Equal(t, 15.0, s.Discount)
	assert.Equal(t, 49.0, s.Shipping)
	assert.Equal(t, 6.8, s.Tax)
	assert.Equal(t, 140.8, s.Total)
	assert.Equal(t, 399.0, s.FreeShippingRemaining)

	big := add(t, Cart{}, Product{ID: "a", Price: 250}, AddOptions{Quantity: QuantityOf(2)})
	s = big.Summary(pricing)
	assert.Equal(t, 0.0, s.Shipping)
	assert.Equal(t, 40.0, s.Tax)
	assert.Equal(t, 540.0, s.Total)
	assert.Equal(t, 0.0, s.FreeShippingRemaining)
	assert.Equal(t, 2, s.ItemCount)
	assert.Equal(t, 1, s.LineCount)
}

func TestCart_JSONRoundTripKeepsClock(t *testing.T) {
	c := add(t, Cart{}, Product{ID: "a"}, AddOptions{})
	raw, err := json.Marshal(c)
	require.NoError(t, err)

	var back Cart
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, c.LastStamp, back.LastStamp)

	back = add(t, back, Product{ID: "b"}, AddOptions{})
	assert.Greater(t, back.LastStamp, c.LastStamp)
}

func itoa(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
