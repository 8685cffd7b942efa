package pricing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwpboutique/crystalshop/internal/domain"
)

var (
	customStrategy = domain.PricingStrategy{
		Type:          domain.StrategyCustom,
		BasePrice:     2400,
		ShippingCost:  60,
		SizeThreshold: 16,
		Surcharge:     200,
	}
	standardStrategy = domain.PricingStrategy{
		Type:          domain.StrategyStandard,
		ShippingCost:  0,
		SizeThreshold: 14,
		Surcharge:     200,
	}
)

func TestComputeSummaryCustomOverThreshold(t *testing.T) {
	cart := []domain.LineItem{{ProductID: "custom", UnitPrice: 2400, Quantity: 1}}

	sum := ComputeSummary(cart, 1, "17", customStrategy)

	assert.Equal(t, domain.FinancialSummary{
		Subtotal:       2400,
		TotalDiscount:  0,
		TotalQuantity:  1,
		AddOnTotal:     200,
		TotalSurcharge: 200,
		ShippingCost:   60,
		GrandTotal:     2860,
	}, sum)
}

func TestComputeSummaryAtThresholdIsNotSurcharged(t *testing.T) {
	cart := []domain.LineItem{{ProductID: "custom", UnitPrice: 2400, Quantity: 1}}

	sum := ComputeSummary(cart, 1, "16", customStrategy)

	assert.Zero(t, sum.TotalSurcharge)
	assert.EqualValues(t, 2660, sum.GrandTotal)
}

func TestComputeSummaryMultiItemStandard(t *testing.T) {
	cart := []domain.LineItem{
		{ProductID: "a", UnitPrice: 500, Quantity: 2},
		{ProductID: "b", UnitPrice: 300, Quantity: 1, CouponCode: "LUCKY", DiscountPerUnit: 50},
	}

	sum := ComputeSummary(cart, 0, "15", standardStrategy)

	assert.EqualValues(t, 1300, sum.Subtotal)
	assert.EqualValues(t, 600, sum.TotalSurcharge)
	assert.EqualValues(t, 50, sum.TotalDiscount)
	assert.Equal(t, 3, sum.TotalQuantity)
	assert.EqualValues(t, 1850, sum.GrandTotal)
}

func TestSurchargeThresholdBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"below", "13.9", 0},
		{"equal", "14", 0},
		{"equal with decimals", "14.0", 0},
		{"just above", "14.01", 200},
		{"well above", "21", 200},
		{"trailing dot", "15.", 200},
		{"empty", "", 0},
		{"mid edit dot", ".", 0},
		{"garbage", "abc", 0},
		{"not a number literal", "NaN", 0},
		{"infinity literal", "Inf", 0},
		{"padded", " 15 ", 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SurchargePerItem(tt.input, standardStrategy))
		})
	}
}

func TestComputeSummaryClampsAtZero(t *testing.T) {
	cart := []domain.LineItem{{ProductID: "a", UnitPrice: 100, Quantity: 2, CouponCode: "X", DiscountPerUnit: 500}}

	sum := ComputeSummary(cart, 0, "", standardStrategy)

	assert.Zero(t, sum.GrandTotal)
	assert.EqualValues(t, 1000, sum.TotalDiscount)
}

func TestComputeSummaryEmptyCart(t *testing.T) {
	sum := ComputeSummary(nil, 0, "20", customStrategy)

	assert.Zero(t, sum.TotalSurcharge)
	assert.EqualValues(t, 60, sum.GrandTotal)
}

func TestComputeSummaryClosedFormProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	sizes := []string{"", "12", "14", "15.5", "16", "17", "22", "x"}

	for i := 0; i < 500; i++ {
		strategy := standardStrategy
		if rng.Intn(2) == 0 {
			strategy = customStrategy
		}
		cart := randomCart(rng)
		addOn := rng.Intn(4)
		size := sizes[rng.Intn(len(sizes))]

		sum := ComputeSummary(cart, addOn, size, strategy)

		want := sum.Subtotal + sum.AddOnTotal + sum.TotalSurcharge + sum.ShippingCost - sum.TotalDiscount
		require.GreaterOrEqual(t, sum.GrandTotal, int64(0))
		if want >= 0 {
			require.Equal(t, want, sum.GrandTotal)
		} else {
			require.Zero(t, sum.GrandTotal)
		}
		require.Equal(t, int64(sum.TotalQuantity)*SurchargePerItem(size, strategy), sum.TotalSurcharge)
		require.Equal(t, int64(addOn)*AddOnUnitPrice, sum.AddOnTotal)
	}
}

func randomCart(rng *rand.Rand) []domain.LineItem {
	n := rng.Intn(4)
	cart := make([]domain.LineItem, 0, n)
	for j := 0; j < n; j++ {
		item := domain.LineItem{
			ProductID: string(rune('a' + j)),
			UnitPrice: int64(rng.Intn(30)) * 100,
			Quantity:  1 + rng.Intn(3),
		}
		if rng.Intn(3) == 0 {
			item.CouponCode = "LUCKY"
			item.DiscountPerUnit = 100
		}
		cart = append(cart, item)
	}
	return cart
}

func TestComputeSummaryCapsOversizedLines(t *testing.T) {
	cart := []domain.LineItem{{ProductID: "a", UnitPrice: 200, Quantity: math.MaxInt64/200 + 1}}

	sum := ComputeSummary(cart, math.MaxInt32, "15", standardStrategy)

	assert.EqualValues(t, 200*MaxQuantity, sum.Subtotal)
	assert.EqualValues(t, MaxQuantity, sum.TotalQuantity)
	assert.EqualValues(t, 200*MaxQuantity, sum.TotalSurcharge)
	assert.EqualValues(t, MaxAddOnQty*AddOnUnitPrice, sum.AddOnTotal)
	assert.Equal(t, NetTotal(sum), sum.GrandTotal)
	assert.False(t, WithinCaps(cart, 0))
}

func TestWithinCaps(t *testing.T) {
	ok := []domain.LineItem{{ProductID: "a", UnitPrice: MaxUnitPrice, Quantity: MaxQuantity}}
	assert.True(t, WithinCaps(ok, MaxAddOnQty))
	assert.False(t, WithinCaps(ok, MaxAddOnQty+1))
	assert.False(t, WithinCaps([]domain.LineItem{{ProductID: "a", UnitPrice: MaxUnitPrice + 1, Quantity: 1}}, 0))
}

func TestNetTotalKeepsNegativeRemainder(t *testing.T) {
	cart := []domain.LineItem{{ProductID: "a", UnitPrice: 50, Quantity: 1, CouponCode: "X", DiscountPerUnit: 100}}

	sum := ComputeSummary(cart, 0, "14", standardStrategy)

	assert.EqualValues(t, -50, NetTotal(sum))
	assert.Zero(t, sum.GrandTotal)
}
