package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func adminRouter(hash string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AdminMiddleware(hash, zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAdminMiddleware(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name   string
		hash   string
		secret string
		want   int
	}{
		{"correct secret", string(hash), "open-sesame", http.StatusNoContent},
		{"wrong secret", string(hash), "guess", http.StatusUnauthorized},
		{"missing secret", string(hash), "", http.StatusUnauthorized},
		{"not configured", "", "open-sesame", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.secret != "" {
				req.Header.Set(AdminSecretHeader, tt.secret)
			}
			w := httptest.NewRecorder()
			adminRouter(tt.hash).ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestTwMobileBinding(t *testing.T) {
	require.NoError(t, RegisterValidators())

	type query struct {
		Phone string `form:"phone" binding:"required,tw_mobile"`
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/lookup", func(c *gin.Context) {
		var q query
		if err := c.ShouldBindQuery(&q); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	for phone, want := range map[string]int{
		"0912345678": http.StatusOK,
		"0812345678": http.StatusBadRequest,
		"091234567":  http.StatusBadRequest,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/lookup?phone="+phone, nil))
		assert.Equal(t, want, w.Code, phone)
	}
}
