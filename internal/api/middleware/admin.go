package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/fwpboutique/crystalshop/pkg/errors"
)

// AdminSecretHeader carries the shared admin secret
const AdminSecretHeader = "X-Admin-Secret"

// AdminMiddleware checks the shared secret against its bcrypt hash.
// An empty hash turns the admin routes off.
func AdminMiddleware(secretHash string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretHash == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin access is not configured"})
			c.Abort()
			return
		}

		secret := c.GetHeader(AdminSecretHeader)
		if secret == "" {
			unauthorized(c, "missing admin secret")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(secretHash), []byte(secret)); err != nil {
			logger.Warn("Rejected admin request",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			unauthorized(c, "invalid admin secret")
			return
		}

		c.Next()
	}
}

func unauthorized(c *gin.Context, msg string) {
	err := &apperrors.ErrUnauthorized{Message: msg}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
}
