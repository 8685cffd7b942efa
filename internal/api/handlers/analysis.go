package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fwpboutique/crystalshop/internal/service"
)

// HandleAnalyze handles POST /v1/analysis
func HandleAnalyze(analyses *service.AnalysisService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.AnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindingFailed(c, err)
			return
		}

		record, err := analyses.Analyze(c.Request.Context(), req)
		if err != nil {
			respondError(c, err, logger, "Failed to run analysis")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"record_id": record.ID.String(),
			"analysis":  record.Analysis,
		})
	}
}
