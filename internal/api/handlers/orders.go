package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fwpboutique/crystalshop/internal/checkout"
	"github.com/fwpboutique/crystalshop/internal/domain"
	"github.com/fwpboutique/crystalshop/internal/service"
)

// OrderResponse is a submitted order as shown to the customer
type OrderResponse struct {
	RecordID        string                 `json:"record_id"`
	OrderID         string                 `json:"order_id"`
	IsStandard      bool                   `json:"is_standard_product"`
	ShippingDetails domain.ShippingDetails `json:"shipping_details"`
	CreatedAt       string                 `json:"created_at"`
}

// HandleGetReceipt handles GET /v1/orders/:id/receipt
func HandleGetReceipt(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		receipt, err := orders.Receipt(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, logger, "Failed to build receipt")
			return
		}

		c.JSON(http.StatusOK, receipt)
	}
}

// HandleLookupOrders handles GET /v1/admin/orders?phone=
func HandleLookupOrders(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.LookupRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			bindingFailed(c, err)
			return
		}

		records, err := orders.Lookup(c.Request.Context(), checkout.Sanitize(req.Phone, checkout.KindNumber))
		if err != nil {
			respondError(c, err, logger, "Failed to look up orders")
			return
		}

		resp := make([]OrderResponse, len(records))
		for i, r := range records {
			resp[i] = OrderResponse{
				RecordID:        r.ID.String(),
				OrderID:         r.ShortID(),
				IsStandard:      r.IsStandardProduct,
				ShippingDetails: *r.ShippingDetails,
				CreatedAt:       r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			}
		}

		c.JSON(http.StatusOK, gin.H{"orders": resp})
	}
}
