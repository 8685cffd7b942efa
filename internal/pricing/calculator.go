package pricing

import (
	"math"
	"strconv"
	"strings"

	"github.com/fwpboutique/crystalshop/internal/domain"
)

// Per-line and per-order caps. Amounts beyond them cannot be frozen into an order.
const (
	MaxQuantity  = 99
	MaxUnitPrice = int64(1_000_000)
	MaxAddOnQty  = 99
)

// ParseWristSize parses a wrist size input in centimetres.
// ok is false for empty, malformed or non-finite input.
func ParseWristSize(input string) (float64, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// SurchargePerItem is the per-unit size surcharge for input under strategy.
// An unparsable size yields 0 since the field may be mid-edit.
func SurchargePerItem(wristSizeInput string, strategy domain.PricingStrategy) int64 {
	size, ok := ParseWristSize(wristSizeInput)
	if !ok {
		return 0
	}
	if size > strategy.SizeThreshold {
		return nonNegative(strategy.Surcharge)
	}
	return 0
}

// ComputeSummary derives the financial summary of a cart. It has no side effects and
// is meant to be re-run after every cart, size or add-on change.
func ComputeSummary(cart []domain.LineItem, addOnQty int, wristSizeInput string, strategy domain.PricingStrategy) domain.FinancialSummary {
	var sum domain.FinancialSummary

	for _, item := range cart {
		qty := clamp(int64(item.Quantity), MaxQuantity)
		sum.Subtotal += clamp(item.UnitPrice, MaxUnitPrice) * qty
		sum.TotalDiscount += clamp(item.DiscountPerUnit, MaxUnitPrice) * qty
		sum.TotalQuantity += int(qty)
	}

	sum.AddOnTotal = clamp(int64(addOnQty), MaxAddOnQty) * AddOnUnitPrice
	// every unit is individually sized, accessories included
	sum.TotalSurcharge = int64(sum.TotalQuantity) * SurchargePerItem(wristSizeInput, strategy)
	sum.ShippingCost = nonNegative(strategy.ShippingCost)

	sum.GrandTotal = nonNegative(NetTotal(sum))
	return sum
}

// NetTotal is the grand total before it is clamped at 0
func NetTotal(sum domain.FinancialSummary) int64 {
	return sum.Subtotal + sum.AddOnTotal + sum.TotalSurcharge + sum.ShippingCost - sum.TotalDiscount
}

// WithinCaps reports whether every line and the add-on count are inside the order caps
func WithinCaps(items []domain.LineItem, addOnQty int) bool {
	for _, it := range items {
		if it.Quantity > MaxQuantity || it.UnitPrice > MaxUnitPrice || it.DiscountPerUnit > MaxUnitPrice {
			return false
		}
	}
	return addOnQty <= MaxAddOnQty
}

func clamp(v, limit int64) int64 {
	if v > limit {
		return limit
	}
	return nonNegative(v)
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
