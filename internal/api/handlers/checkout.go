package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fwpboutique/crystalshop/internal/domain"
	"github.com/fwpboutique/crystalshop/internal/service"
)

// SummaryResponse is the priced cart
type SummaryResponse struct {
	Items   []domain.LineItem       `json:"items"`
	Summary domain.FinancialSummary `json:"summary"`
}

// HandleSummary handles POST /v1/checkout/summary
func HandleSummary(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindingFailed(c, err)
			return
		}

		summary, items, err := orders.Summarize(req)
		if err != nil {
			respondError(c, err, logger, "Failed to price cart")
			return
		}

		c.JSON(http.StatusOK, SummaryResponse{Items: items, Summary: summary})
	}
}

// HandleValidate handles POST /v1/checkout/validate
func HandleValidate(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ValidateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindingFailed(c, err)
			return
		}

		resp, err := orders.Validate(req)
		if err != nil {
			respondError(c, err, logger, "Failed to validate checkout")
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// HandleSubmitOrder handles POST /v1/orders
func HandleSubmitOrder(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindingFailed(c, err)
			return
		}

		record, err := orders.Submit(c.Request.Context(), req)
		if err != nil {
			respondError(c, err, logger, "Failed to submit order")
			return
		}

		c.JSON(http.StatusCreated, service.CheckoutResponse{
			RecordID:        record.ID.String(),
			OrderID:         record.ShortID(),
			State:           domain.CheckoutStateSubmitted,
			ShippingDetails: *record.ShippingDetails,
		})
	}
}

// HandleApplyCoupon handles POST /v1/coupons/apply
func HandleApplyCoupon(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindingFailed(c, err)
			return
		}

		coupon := orders.Pricing().Coupon
		if !coupon.Matches(req.Code) {
			c.JSON(http.StatusOK, gin.H{"valid": false, "discount_per_unit": 0})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"valid":             true,
			"code":              coupon.Code,
			"discount_per_unit": coupon.Apply(req.Code),
		})
	}
}
