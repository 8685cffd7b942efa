package pricing

import "github.com/fwpboutique/crystalshop/internal/domain"

// Reconcile re-derives the display breakdown of a frozen order. TotalPrice is never
// recomputed; the surcharge is back-solved from it because the record does not store it.
// shippingCost is what the order's flow charged (0 for catalog purchases).
func Reconcile(details domain.ShippingDetails, shippingCost int64) domain.FinancialSummary {
	var sum domain.FinancialSummary

	for _, item := range details.Items {
		qty := int64(item.Quantity)
		sum.Subtotal += item.UnitPrice * qty
		sum.TotalDiscount += item.DiscountPerUnit * qty
		sum.TotalQuantity += item.Quantity
	}
	sum.AddOnTotal = int64(details.PurificationBagQty) * AddOnUnitPrice
	sum.ShippingCost = shippingCost
	sum.TotalSurcharge = details.TotalPrice - (sum.Subtotal + sum.AddOnTotal + sum.ShippingCost - sum.TotalDiscount)
	sum.GrandTotal = details.TotalPrice

	return sum
}

// ReceiptShipping returns the shipping charged for a record's flow
func ReceiptShipping(isStandardProduct bool, standard, custom domain.PricingStrategy) int64 {
	if isStandardProduct {
		return standard.ShippingCost
	}
	return custom.ShippingCost
}
