package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fwpboutique/crystalshop/internal/repository"
)

// SheetPinger sends a test row to the spreadsheet webhook
type SheetPinger interface {
	Enabled() bool
	Ping(ctx context.Context) error
}

// HandleListRecords handles GET /v1/admin/records
func HandleListRecords(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if err != nil || limit < 1 || limit > 200 {
			limit = 50
		}
		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil || offset < 0 {
			offset = 0
		}
		ordersOnly := c.Query("orders") == "true"

		records, err := repos.Records.List(c.Request.Context())
		if err != nil {
			respondError(c, err, logger, "Failed to list records")
			return
		}

		resp := make([]gin.H, 0, limit)
		skipped := 0
		for _, r := range records {
			if ordersOnly && !r.HasOrder() {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			if len(resp) == limit {
				break
			}
			resp = append(resp, gin.H{
				"id":                  r.ID.String(),
				"order_id":            r.ShortID(),
				"name":                r.Name,
				"has_analysis":        r.Analysis != nil,
				"has_order":           r.HasOrder(),
				"is_standard_product": r.IsStandardProduct,
				"shipping_details":    r.ShippingDetails,
				"created_at":          r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
				"updated_at":          r.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"records": resp,
			"limit":   limit,
			"offset":  offset,
		})
	}
}

// HandleDeleteRecord handles DELETE /v1/admin/records/:id
func HandleDeleteRecord(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record ID"})
			return
		}

		if err := repos.Records.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err, logger, "Failed to delete record")
			return
		}

		logger.Info("Record deleted", zap.String("record_id", id.String()))
		c.Status(http.StatusNoContent)
	}
}

// HandlePingSheets handles POST /v1/admin/sheets/ping
func HandlePingSheets(sheets SheetPinger, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sheets.Enabled() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "sheets webhook is not configured"})
			return
		}

		if err := sheets.Ping(c.Request.Context()); err != nil {
			logger.Warn("Sheets ping failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "sheets webhook unreachable"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
