package service

import (
	"github.com/fwpboutique/crystalshop/internal/checkout"
	"github.com/fwpboutique/crystalshop/internal/domain"
)

// LineItemInput is a cart line as sent by the storefront
type LineItemInput struct {
	ProductID        string `json:"product_id" binding:"required"`
	ProductName      string `json:"product_name" binding:"required"`
	UnitPrice        int64  `json:"unit_price" binding:"min=0,max=1000000"`
	Quantity         int    `json:"quantity" binding:"required,min=1,max=99"`
	CouponCode       string `json:"coupon_code"`
	IsCustomAnalysis bool   `json:"is_custom_analysis"`
}

// CartRequest is the pricing input shared by summary, validate and submit
type CartRequest struct {
	Flow               domain.StrategyType `json:"flow" binding:"required,oneof=standard custom"`
	Items              []LineItemInput     `json:"items" binding:"dive"`
	PurificationBagQty int                 `json:"purification_bag_qty" binding:"min=0,max=99"`
	WristSize          string              `json:"wrist_size"`
}

// ValidateRequest carries the form as typed so far
type ValidateRequest struct {
	CartRequest
	Form checkout.Form `json:"form"`
}

// ValidateResponse holds live feedback and the submit gate result
type ValidateResponse struct {
	Valid       bool              `json:"valid"`
	FieldErrors map[string]string `json:"field_errors"`
	Errors      map[string]string `json:"errors"`
}

// CheckoutRequest submits an order. RecordID attaches the order to an analysis record.
type CheckoutRequest struct {
	CartRequest
	RecordID string        `json:"record_id" binding:"omitempty,uuid"`
	Form     checkout.Form `json:"form"`
}

// CheckoutResponse is returned after a successful submit
type CheckoutResponse struct {
	RecordID        string                 `json:"record_id"`
	OrderID         string                 `json:"order_id"`
	State           domain.CheckoutState   `json:"state"`
	ShippingDetails domain.ShippingDetails `json:"shipping_details"`
}

// CouponRequest checks a code against the active coupon
type CouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// AnalysisRequest starts a custom analysis
type AnalysisRequest struct {
	Name         string            `json:"name" binding:"required"`
	BirthDate    string            `json:"birth_date" binding:"required,datetime=2006-01-02"`
	BirthTime    string            `json:"birth_time" binding:"omitempty,datetime=15:04"`
	IsTimeUnsure bool              `json:"is_time_unsure"`
	Gender       domain.Gender     `json:"gender" binding:"required"`
	Wishes       []domain.WishItem `json:"wishes" binding:"required,min=1"`
}

// LookupRequest finds the orders placed with a mobile number (admin only)
type LookupRequest struct {
	Phone string `form:"phone" binding:"required,tw_mobile"`
}

// Profile converts the request into the analysis input
func (r AnalysisRequest) Profile() domain.CustomerProfile {
	return domain.CustomerProfile{
		Name:         r.Name,
		BirthDate:    r.BirthDate,
		BirthTime:    r.BirthTime,
		IsTimeUnsure: r.IsTimeUnsure,
		Gender:       r.Gender,
		Wishes:       r.Wishes,
	}
}

// LineItems converts the inputs to domain line items
func (r CartRequest) LineItems() []domain.LineItem {
	items := make([]domain.LineItem, 0, len(r.Items))
	for _, in := range r.Items {
		items = append(items, domain.LineItem{
			ProductID:        in.ProductID,
			ProductName:      in.ProductName,
			UnitPrice:        in.UnitPrice,
			Quantity:         in.Quantity,
			CouponCode:       in.CouponCode,
			IsCustomAnalysis: in.IsCustomAnalysis,
		})
	}
	return items
}
