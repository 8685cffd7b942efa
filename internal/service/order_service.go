package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fwpboutique/crystalshop/internal/checkout"
	"github.com/fwpboutique/crystalshop/internal/domain"
	"github.com/fwpboutique/crystalshop/internal/metrics"
	"github.com/fwpboutique/crystalshop/internal/pricing"
	"github.com/fwpboutique/crystalshop/internal/repository"
	apperrors "github.com/fwpboutique/crystalshop/pkg/errors"
)

// SheetSyncer mirrors a submitted record somewhere outside the record store
type SheetSyncer interface {
	Enabled() bool
	Sync(ctx context.Context, record *domain.CustomerRecord) error
}

// Pricing bundles the configured strategies and coupon
type Pricing struct {
	Standard domain.PricingStrategy
	Custom   domain.PricingStrategy
	Coupon   pricing.CouponPolicy
}

// Strategy returns the strategy for a flow
func (p Pricing) Strategy(flow domain.StrategyType) (domain.PricingStrategy, error) {
	if !flow.IsValid() {
		return domain.PricingStrategy{}, fmt.Errorf("unknown pricing flow %q", flow)
	}
	if flow == domain.StrategyStandard {
		return p.Standard, nil
	}
	return p.Custom, nil
}

// OrderService prices, validates and submits orders
type OrderService struct {
	repos       *repository.Repositories
	sheets      SheetSyncer
	pricing     Pricing
	metrics     *metrics.Metrics
	pulse       time.Duration
	syncTimeout time.Duration
	logger      *zap.Logger
}

// OrderOption configures the order service
type OrderOption func(*OrderService)

// WithMetrics records checkout outcomes
func WithMetrics(m *metrics.Metrics) OrderOption {
	return func(s *OrderService) { s.metrics = m }
}

// WithSubmitPulse sets how long a rejected submit stays in the invalid-attempt state
func WithSubmitPulse(d time.Duration) OrderOption {
	return func(s *OrderService) { s.pulse = d }
}

// NewOrderService creates a new order service
func NewOrderService(repos *repository.Repositories, sheets SheetSyncer, p Pricing, logger *zap.Logger, opts ...OrderOption) *OrderService {
	s := &OrderService{
		repos:       repos,
		sheets:      sheets,
		pricing:     p,
		pulse:       checkout.DefaultPulse,
		syncTimeout: 15 * time.Second,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pricing exposes the configured pricing
func (s *OrderService) Pricing() Pricing {
	return s.pricing
}

// Session builds a checkout session from a stateless request, replaying every
// input through the session so sanitisation and coupon rules apply.
func (s *OrderService) Session(req CartRequest, form checkout.Form) (*checkout.Session, error) {
	strategy, err := s.pricing.Strategy(req.Flow)
	if err != nil {
		return nil, err
	}

	items := req.LineItems()
	for i := range items {
		// custom analysis bracelets are always sold at the configured base price
		if items[i].IsCustomAnalysis {
			items[i].UnitPrice = s.pricing.Custom.BasePrice
		}
	}

	session := checkout.NewSession(strategy, s.pricing.Coupon, items,
		checkout.WithPulse(s.pulse),
		checkout.WithLogger(s.logger),
	)

	wristSize := form.WristSize
	if wristSize == "" {
		wristSize = req.WristSize
	}
	fields := map[string]string{
		checkout.FieldRealName:  form.RealName,
		checkout.FieldPhone:     form.Phone,
		checkout.FieldStoreCode: form.StoreCode,
		checkout.FieldStoreName: form.StoreName,
		checkout.FieldSocialID:  form.SocialID,
	}
	// an absent size keeps the flow default
	if wristSize != "" {
		fields[checkout.FieldWristSize] = wristSize
	}
	for field, value := range fields {
		if err := session.SetField(field, value); err != nil {
			return nil, err
		}
	}
	if err := session.SetAddOnQty(req.PurificationBagQty); err != nil {
		return nil, err
	}
	if err := session.SetAgreed(form.Agreed); err != nil {
		return nil, err
	}

	return session, nil
}

// Summarize prices a cart
func (s *OrderService) Summarize(req CartRequest) (domain.FinancialSummary, []domain.LineItem, error) {
	session, err := s.Session(req, checkout.Form{WristSize: req.WristSize})
	if err != nil {
		return domain.FinancialSummary{}, nil, err
	}
	return session.Summary(), session.Items(), nil
}

// Validate returns live field feedback and the submit gate
func (s *OrderService) Validate(req ValidateRequest) (ValidateResponse, error) {
	session, err := s.Session(req.CartRequest, req.Form)
	if err != nil {
		return ValidateResponse{}, err
	}
	gate := session.Validate()
	return ValidateResponse{
		Valid:       len(gate) == 0,
		FieldErrors: session.FieldErrors(),
		Errors:      gate,
	}, nil
}

// Submit validates and persists an order. The spreadsheet mirror runs after the store
// write succeeded and its failure never fails the order.
func (s *OrderService) Submit(ctx context.Context, req CheckoutRequest) (*domain.CustomerRecord, error) {
	record, isNew, err := s.recordFor(ctx, req)
	if err != nil {
		return nil, err
	}

	session, err := s.Session(req.CartRequest, req.Form)
	if err != nil {
		return nil, err
	}

	details, err := session.Submit(ctx, checkout.SubmitterFunc(func(ctx context.Context, d domain.ShippingDetails) error {
		record.ShippingDetails = &d
		if isNew {
			record.Name = d.RealName
			return s.repos.Records.Add(ctx, record)
		}
		return s.repos.Records.Update(ctx, record)
	}))
	if err != nil {
		record.ShippingDetails = nil
		var verr *apperrors.ErrValidation
		if errors.As(err, &verr) {
			s.metrics.Submission(req.Flow, metrics.ResultInvalid)
		} else {
			s.metrics.Submission(req.Flow, metrics.ResultFailed)
			s.logger.Error("Failed to submit order", zap.String("record_id", record.ID.String()), zap.Error(err))
		}
		return nil, err
	}

	s.metrics.Submission(req.Flow, metrics.ResultOK)
	s.metrics.OrderTotal(req.Flow, details.TotalPrice)
	s.logger.Info("Order submitted",
		zap.String("record_id", record.ID.String()),
		zap.String("flow", string(req.Flow)),
		zap.Int64("total_price", details.TotalPrice),
	)

	s.syncSheet(ctx, record)
	return record, nil
}

func (s *OrderService) recordFor(ctx context.Context, req CheckoutRequest) (*domain.CustomerRecord, bool, error) {
	if req.RecordID == "" {
		return &domain.CustomerRecord{
			IsStandardProduct: req.Flow == domain.StrategyStandard,
		}, true, nil
	}

	id, err := uuid.Parse(req.RecordID)
	if err != nil {
		return nil, false, &apperrors.ErrNotFound{Resource: "record", ID: req.RecordID}
	}
	record, err := s.repos.Records.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if record.HasOrder() {
		s.metrics.Submission(req.Flow, metrics.ResultDuplicated)
		return nil, false, &apperrors.ErrOrderLocked{RecordID: record.ID.String()}
	}
	record.IsStandardProduct = req.Flow == domain.StrategyStandard
	return record, false, nil
}

func (s *OrderService) syncSheet(ctx context.Context, record *domain.CustomerRecord) {
	if s.sheets == nil || !s.sheets.Enabled() {
		s.metrics.SheetSync(metrics.ResultSkipped)
		return
	}

	// the order is already persisted; do not let a cancelled request drop the mirror
	syncCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.syncTimeout)
	defer cancel()

	if err := s.sheets.Sync(syncCtx, record); err != nil {
		s.metrics.SheetSync(metrics.ResultFailed)
		s.logger.Warn("Sheet sync failed", zap.String("record_id", record.ID.String()), zap.Error(err))
		return
	}
	s.metrics.SheetSync(metrics.ResultOK)
}

// Receipt reconciles the display breakdown of a submitted order
func (s *OrderService) Receipt(ctx context.Context, id uuid.UUID) (*domain.Receipt, error) {
	record, err := s.repos.Records.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !record.HasOrder() {
		return nil, &apperrors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	receipt := BuildReceipt(record, s.pricing)
	return &receipt, nil
}

// Lookup lists the submitted orders placed with a phone number. It exposes customer
// contact details and is only routed behind the admin secret.
func (s *OrderService) Lookup(ctx context.Context, phone string) ([]*domain.CustomerRecord, error) {
	records, err := s.repos.Records.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.CustomerRecord, 0)
	for _, r := range records {
		if r.HasOrder() && r.ShippingDetails.Phone == phone {
			out = append(out, r)
		}
	}
	return out, nil
}

// BuildReceipt derives the receipt view of a submitted record
func BuildReceipt(record *domain.CustomerRecord, p Pricing) domain.Receipt {
	details := *record.ShippingDetails
	shipping := pricing.ReceiptShipping(record.IsStandardProduct, p.Standard, p.Custom)

	return domain.Receipt{
		OrderID:   record.ShortID(),
		OrderTime: record.CreatedAt.In(domain.StoreTimeZone).Format("2006/01/02 15:04"),
		RealName:  details.RealName,
		WristSize: details.WristSize,
		StoreName: details.StoreName,
		StoreCode: details.StoreCode,
		Items:     details.Items,
		BagQty:    details.PurificationBagQty,
		Summary:   pricing.Reconcile(details, shipping),
		Total:     details.TotalPrice,
	}
}
