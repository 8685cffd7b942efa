package pricing

import "strings"

// CouponPolicy is the single store-wide coupon
type CouponPolicy struct {
	Code           string
	DiscountAmount int64
	Enabled        bool
}

// Apply returns the per-unit discount granted by code, or 0 when it does not match
// the configured coupon or the coupon is disabled.
func (p CouponPolicy) Apply(code string) int64 {
	if !p.Matches(code) {
		return 0
	}
	if p.DiscountAmount < 0 {
		return 0
	}
	return p.DiscountAmount
}

// Matches reports whether code is the active coupon
func (p CouponPolicy) Matches(code string) bool {
	if !p.Enabled || p.Code == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(code), strings.TrimSpace(p.Code))
}
