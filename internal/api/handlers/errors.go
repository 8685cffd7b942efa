package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fwpboutique/crystalshop/internal/analysis"
	apperrors "github.com/fwpboutique/crystalshop/pkg/errors"
)

// respondError maps service errors to HTTP responses. Unknown errors are logged as msg.
func respondError(c *gin.Context, err error, logger *zap.Logger, msg string) {
	var (
		validation *apperrors.ErrValidation
		notFound   *apperrors.ErrNotFound
		locked     *apperrors.ErrOrderLocked
		transition *apperrors.ErrInvalidStateTransition
		submission *apperrors.ErrSubmission
		denied     *apperrors.ErrUnauthorized
	)

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation failed",
			"details": validation.Fields,
		})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &locked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &denied):
		c.JSON(http.StatusUnauthorized, gin.H{"error": denied.Error()})
	case errors.As(err, &submission):
		logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "order could not be submitted, please try again"})
	case errors.Is(err, analysis.ErrAnalysisFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": analysis.ErrAnalysisFailed.Error()})
	default:
		logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func bindingFailed(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "invalid request",
		"details": err.Error(),
	})
}
