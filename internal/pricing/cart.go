package pricing

import (
	"strings"

	"github.com/fwpboutique/crystalshop/internal/domain"
)

// AddOnUnitPrice is the price of one purification bag
const AddOnUnitPrice int64 = 200

// Cart is an ordered collection of line items. The zero value is an empty cart.
type Cart struct {
	items []domain.LineItem
}

// NewCart creates a cart seeded with items
func NewCart(items ...domain.LineItem) *Cart {
	c := &Cart{}
	for _, it := range items {
		c.Add(it)
	}
	return c
}

// Items returns a copy of the line items in insertion order
func (c *Cart) Items() []domain.LineItem {
	out := make([]domain.LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of line items
func (c *Cart) Len() int {
	return len(c.items)
}

// Add appends item, or merges its quantity into an existing line with the same product id.
// Quantity is kept within [1, MaxQuantity] and discounts never arrive without a coupon code.
func (c *Cart) Add(item domain.LineItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if item.Quantity > MaxQuantity {
		item.Quantity = MaxQuantity
	}
	if item.UnitPrice < 0 {
		item.UnitPrice = 0
	}
	if item.CouponCode == "" {
		item.DiscountPerUnit = 0
	}
	if i := c.index(item.ProductID); i >= 0 {
		c.items[i].Quantity = min(c.items[i].Quantity+item.Quantity, MaxQuantity)
		return
	}
	c.items = append(c.items, item)
}

// Step changes the quantity of a line by delta, clamping to [1, MaxQuantity].
func (c *Cart) Step(productID string, delta int) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	q := c.items[i].Quantity + delta
	if q < 1 {
		q = 1
	}
	c.items[i].Quantity = min(q, MaxQuantity)
	return true
}

// Toggle changes the quantity of a line by delta and removes it once it drops below 1.
func (c *Cart) Toggle(productID string, delta int) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	q := c.items[i].Quantity + delta
	if q < 1 {
		c.items = append(c.items[:i], c.items[i+1:]...)
		return true
	}
	c.items[i].Quantity = min(q, MaxQuantity)
	return true
}

// Remove deletes the line for productID
func (c *Cart) Remove(productID string) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.items = nil
}

// ApplyCoupon evaluates code against policy for a single line. A miss clears any
// coupon previously stored on that line. Returns the resulting per-unit discount.
func (c *Cart) ApplyCoupon(productID, code string, policy CouponPolicy) (int64, bool) {
	i := c.index(productID)
	if i < 0 {
		return 0, false
	}
	discount := policy.Apply(code)
	if discount > 0 || policy.Matches(code) {
		c.items[i].CouponCode = strings.ToUpper(strings.TrimSpace(code))
		c.items[i].DiscountPerUnit = discount
	} else {
		c.items[i].CouponCode = ""
		c.items[i].DiscountPerUnit = 0
	}
	return c.items[i].DiscountPerUnit, true
}

// Normalize enforces the line item invariants on items received from outside,
// re-evaluating every coupon against policy.
func Normalize(items []domain.LineItem, policy CouponPolicy) []domain.LineItem {
	c := &Cart{}
	for _, it := range items {
		c.Add(it)
	}
	for _, it := range c.items {
		c.ApplyCoupon(it.ProductID, it.CouponCode, policy)
	}
	return c.items
}

func (c *Cart) index(productID string) int {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
