package domain

// CheckoutState represents where an order session is in its lifecycle
type CheckoutState string

const (
	CheckoutStateEditing        CheckoutState = "editing"
	CheckoutStateInvalidAttempt CheckoutState = "invalid-attempt"
	CheckoutStateSubmitting     CheckoutState = "submitting"
	CheckoutStateSubmitted      CheckoutState = "submitted"
)

// IsValid checks if the checkout state is valid
func (s CheckoutState) IsValid() bool {
	switch s {
	case CheckoutStateEditing,
		CheckoutStateInvalidAttempt,
		CheckoutStateSubmitting,
		CheckoutStateSubmitted:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a state transition is valid
func (s CheckoutState) CanTransitionTo(next CheckoutState) bool {
	switch s {
	case CheckoutStateEditing:
		return next == CheckoutStateInvalidAttempt ||
			next == CheckoutStateSubmitting
	case CheckoutStateInvalidAttempt:
		// the pulse expires back to editing; a fresh submit may also arrive before it does
		return next == CheckoutStateEditing ||
			next == CheckoutStateSubmitting
	case CheckoutStateSubmitting:
		return next == CheckoutStateSubmitted ||
			next == CheckoutStateEditing
	case CheckoutStateSubmitted:
		return false // Terminal state
	default:
		return false
	}
}

// StrategyType distinguishes the catalog flow from the custom-analysis flow
type StrategyType string

const (
	StrategyStandard StrategyType = "standard"
	StrategyCustom   StrategyType = "custom"
)

// IsValid checks if the strategy type is valid
func (t StrategyType) IsValid() bool {
	return t == StrategyStandard || t == StrategyCustom
}

// PricingStrategy is the immutable pricing configuration of one checkout flow
type PricingStrategy struct {
	Type          StrategyType `json:"type"`
	BasePrice     int64        `json:"base_price"`
	ShippingCost  int64        `json:"shipping_cost"`
	SizeThreshold float64      `json:"size_threshold"`
	Surcharge     int64        `json:"surcharge"`
}
