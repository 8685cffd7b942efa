package pricing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwpboutique/crystalshop/internal/domain"
)

func TestReconcileCustomOrder(t *testing.T) {
	details := domain.ShippingDetails{
		Items:              []domain.LineItem{{ProductID: "custom", UnitPrice: 2400, Quantity: 1}},
		PurificationBagQty: 1,
		TotalPrice:         2860,
	}

	sum := Reconcile(details, ReceiptShipping(false, standardStrategy, customStrategy))

	assert.EqualValues(t, 2400, sum.Subtotal)
	assert.EqualValues(t, 200, sum.AddOnTotal)
	assert.EqualValues(t, 60, sum.ShippingCost)
	assert.EqualValues(t, 200, sum.TotalSurcharge)
	assert.EqualValues(t, 2860, sum.GrandTotal)
}

func TestReconcileStandardOrderHasFreeShipping(t *testing.T) {
	assert.Zero(t, ReceiptShipping(true, standardStrategy, customStrategy))
	assert.EqualValues(t, 60, ReceiptShipping(false, standardStrategy, customStrategy))
}

func TestReconcileInverseOfComputeSummary(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sizes := []string{"", "10", "14", "14.5", "16", "16.01", "22"}

	for i := 0; i < 500; i++ {
		isStandard := rng.Intn(2) == 0
		strategy := customStrategy
		if isStandard {
			strategy = standardStrategy
		}
		cart := randomCart(rng)
		// a negative net total never reaches a frozen order: the checkout gate rejects it
		for j := range cart {
			if cart[j].UnitPrice < cart[j].DiscountPerUnit {
				cart[j].UnitPrice = cart[j].DiscountPerUnit
			}
		}
		addOn := rng.Intn(3)
		size := sizes[rng.Intn(len(sizes))]

		forward := ComputeSummary(cart, addOn, size, strategy)
		details := domain.ShippingDetails{
			Items:              cart,
			PurificationBagQty: addOn,
			WristSize:          size,
			TotalPrice:         forward.GrandTotal,
		}

		back := Reconcile(details, ReceiptShipping(isStandard, standardStrategy, customStrategy))

		require.Equal(t, forward, back, "iteration %d", i)
	}
}
