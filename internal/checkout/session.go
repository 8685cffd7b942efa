package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fwpboutique/crystalshop/internal/domain"
	"github.com/fwpboutique/crystalshop/internal/pricing"
	apperrors "github.com/fwpboutique/crystalshop/pkg/errors"
)

var (
	// ErrSubmitInFlight is returned when Submit is called while a previous submit is running
	ErrSubmitInFlight = errors.New("checkout: submission already in progress")
	// ErrAlreadySubmitted is returned once the order has been handed off
	ErrAlreadySubmitted = errors.New("checkout: order already submitted")
	// ErrLocked is returned by mutators while the order is being or has been submitted
	ErrLocked = errors.New("checkout: order can no longer be edited")
	// ErrUnknownProduct is returned when a mutator names a product not in the cart
	ErrUnknownProduct = errors.New("checkout: product not in cart")
)

// DefaultPulse is how long the invalid-attempt state lasts before falling back to editing
const DefaultPulse = 500 * time.Millisecond

// Submitter persists a frozen order. It is called at most once per successful submit.
type Submitter interface {
	Submit(ctx context.Context, details domain.ShippingDetails) error
}

// SubmitterFunc adapts a function to Submitter
type SubmitterFunc func(ctx context.Context, details domain.ShippingDetails) error

func (f SubmitterFunc) Submit(ctx context.Context, details domain.ShippingDetails) error {
	return f(ctx, details)
}

// Option configures a Session
type Option func(*Session)

// WithPulse overrides the invalid-attempt duration
func WithPulse(d time.Duration) Option {
	return func(s *Session) { s.pulse = d }
}

// WithLogger attaches a logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// Session is a single order's checkout form. Every mutation recomputes the summary.
type Session struct {
	mu       sync.Mutex
	strategy domain.PricingStrategy
	coupon   pricing.CouponPolicy
	cart     *pricing.Cart
	addOnQty int
	form     Form
	state    domain.CheckoutState
	summary  domain.FinancialSummary
	details  *domain.ShippingDetails
	pulse    time.Duration
	timer    *time.Timer
	logger   *zap.Logger
}

// NewSession starts a session in the editing state with the given initial items
func NewSession(strategy domain.PricingStrategy, coupon pricing.CouponPolicy, items []domain.LineItem, opts ...Option) *Session {
	s := &Session{
		strategy: strategy,
		coupon:   coupon,
		state:    domain.CheckoutStateEditing,
		pulse:    DefaultPulse,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cart = pricing.NewCart(pricing.Normalize(items, coupon)...)
	s.form.WristSize = defaultWristSize(strategy)
	s.recompute()
	return s
}

func defaultWristSize(strategy domain.PricingStrategy) string {
	if strategy.Type == domain.StrategyStandard {
		return "14"
	}
	return "15"
}

// State returns the current lifecycle state
func (s *Session) State() domain.CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Summary returns the summary computed after the last mutation
func (s *Session) Summary() domain.FinancialSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// Items returns the current cart lines
func (s *Session) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

// Form returns the current form values
func (s *Session) Form() Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Details returns the frozen order once submitted
func (s *Session) Details() (domain.ShippingDetails, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.details == nil {
		return domain.ShippingDetails{}, false
	}
	return *s.details, true
}

// FieldErrors returns live per-field feedback
func (s *Session) FieldErrors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FieldErrors(s.form)
}

// Validate returns the submit-gate errors
func (s *Session) Validate() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gate()
}

// gate must be called with mu held
func (s *Session) gate() map[string]string {
	errs := Validate(s.form, s.cart.Len())
	if _, empty := errs[FieldCart]; empty {
		return errs
	}
	for field, msg := range CartErrors(s.cart.Items(), s.addOnQty, s.summary) {
		errs[field] = msg
	}
	return errs
}

// AddItem adds a product line
func (s *Session) AddItem(item domain.LineItem) error {
	return s.mutate(func() error {
		code := item.CouponCode
		item.CouponCode = ""
		s.cart.Add(item)
		if code != "" {
			s.cart.ApplyCoupon(item.ProductID, code, s.coupon)
		}
		return nil
	})
}

// StepItem changes a quantity by delta, clamping at 1
func (s *Session) StepItem(productID string, delta int) error {
	return s.mutate(func() error {
		if !s.cart.Step(productID, delta) {
			return ErrUnknownProduct
		}
		return nil
	})
}

// ToggleItem changes a quantity by delta, removing the line below 1
func (s *Session) ToggleItem(productID string, delta int) error {
	return s.mutate(func() error {
		if !s.cart.Toggle(productID, delta) {
			return ErrUnknownProduct
		}
		return nil
	})
}

// RemoveItem deletes a product line
func (s *Session) RemoveItem(productID string) error {
	return s.mutate(func() error {
		if !s.cart.Remove(productID) {
			return ErrUnknownProduct
		}
		return nil
	})
}

// ApplyCoupon evaluates code for one line; a non-matching code revokes an earlier one
func (s *Session) ApplyCoupon(productID, code string) (int64, error) {
	var discount int64
	err := s.mutate(func() error {
		d, ok := s.cart.ApplyCoupon(productID, code, s.coupon)
		if !ok {
			return ErrUnknownProduct
		}
		discount = d
		return nil
	})
	return discount, err
}

// SetAddOnQty sets the purification bag count; negative values become 0
func (s *Session) SetAddOnQty(qty int) error {
	return s.mutate(func() error {
		if qty < 0 {
			qty = 0
		}
		s.addOnQty = qty
		return nil
	})
}

// SetAgreed records the terms agreement flag
func (s *Session) SetAgreed(agreed bool) error {
	return s.mutate(func() error {
		s.form.Agreed = agreed
		return nil
	})
}

// SetField sanitises value as typed and stores it
func (s *Session) SetField(field, value string) error {
	return s.mutate(func() error {
		switch field {
		case FieldRealName:
			s.form.RealName = Sanitize(value, KindText)
		case FieldPhone:
			s.form.Phone = Sanitize(value, KindNumber)
		case FieldStoreCode:
			s.form.StoreCode = Sanitize(value, KindNumber)
		case FieldStoreName:
			s.form.StoreName = Sanitize(value, KindText)
		case FieldSocialID:
			s.form.SocialID = Sanitize(value, KindText)
		case FieldWristSize:
			s.form.WristSize = Sanitize(value, KindSize)
		default:
			return &UnknownFieldError{Field: field}
		}
		return nil
	})
}

// UnknownFieldError is returned by SetField for unsupported field names
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return "checkout: unknown field " + e.Field
}

// Submit validates the form and, if it passes, hands the frozen order to submitter.
// A failed validation moves to invalid-attempt briefly and calls nothing.
// A failed submitter call returns *errors.ErrSubmission and the session goes back to editing.
func (s *Session) Submit(ctx context.Context, submitter Submitter) (*domain.ShippingDetails, error) {
	s.mu.Lock()
	switch s.state {
	case domain.CheckoutStateSubmitting:
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	case domain.CheckoutStateSubmitted:
		s.mu.Unlock()
		return nil, ErrAlreadySubmitted
	}

	if errs := s.gate(); len(errs) > 0 {
		if s.state == domain.CheckoutStateEditing {
			_ = s.transition(domain.CheckoutStateInvalidAttempt)
		}
		s.schedulePulseEnd()
		s.mu.Unlock()
		s.logger.Debug("Checkout submit rejected", zap.Int("invalid_fields", len(errs)))
		return nil, &apperrors.ErrValidation{Fields: errs}
	}

	s.stopPulse()
	if err := s.transition(domain.CheckoutStateSubmitting); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.recompute()
	details := s.freeze()
	s.mu.Unlock()

	err := submitter.Submit(ctx, details)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		_ = s.transition(domain.CheckoutStateEditing)
		s.logger.Warn("Checkout submission failed", zap.Error(err))
		return nil, &apperrors.ErrSubmission{Cause: err}
	}
	_ = s.transition(domain.CheckoutStateSubmitted)
	s.details = &details
	s.cart.Clear()
	return &details, nil
}

func (s *Session) freeze() domain.ShippingDetails {
	return domain.ShippingDetails{
		RealName:           strings.TrimSpace(s.form.RealName),
		Phone:              strings.TrimSpace(s.form.Phone),
		StoreCode:          strings.TrimSpace(s.form.StoreCode),
		StoreName:          strings.TrimSpace(s.form.StoreName),
		SocialID:           strings.TrimSpace(s.form.SocialID),
		WristSize:          strings.TrimSpace(s.form.WristSize),
		PurificationBagQty: s.addOnQty,
		PreferredColors:    []string{},
		Items:              s.cart.Items(),
		TotalPrice:         s.summary.GrandTotal,
	}
}

func (s *Session) mutate(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.CheckoutStateSubmitting || s.state == domain.CheckoutStateSubmitted {
		return ErrLocked
	}
	if err := fn(); err != nil {
		return err
	}
	s.recompute()
	return nil
}

// recompute must be called with mu held
func (s *Session) recompute() {
	s.summary = pricing.ComputeSummary(s.cart.Items(), s.addOnQty, s.form.WristSize, s.strategy)
}

// transition must be called with mu held
func (s *Session) transition(next domain.CheckoutState) error {
	if !s.state.CanTransitionTo(next) {
		err := &apperrors.ErrInvalidStateTransition{From: s.state, To: next}
		s.logger.Error("Invalid checkout transition", zap.Error(err))
		return err
	}
	s.state = next
	return nil
}

func (s *Session) schedulePulseEnd() {
	s.stopPulse()
	s.timer = time.AfterFunc(s.pulse, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.state == domain.CheckoutStateInvalidAttempt {
			s.state = domain.CheckoutStateEditing
		}
	})
}

func (s *Session) stopPulse() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
