package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/office-seat-booking/internal/pkg/apperror"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/response"
)

// AuthRequired is a Gin middleware that validates JWT from Authorization: Bearer <token>
func AuthRequired(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abort(c, "missing Authorization header")
			return
		}

		scheme, tokenStr, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || tokenStr == "" {
			abort(c, "invalid Authorization header format")
			return
		}

		claims, err := jwtManager.ParseAndValidate(tokenStr)
		if err != nil {
			abort(c, "invalid or expired token")
			return
		}

		// Store user info into Gin context for later handlers.
		setClaims(c, claims)

		c.Next()
	}
}

func abort(c *gin.Context, msg string) {
	response.Error(c, apperror.New(http.StatusUnauthorized, apperror.KindUnauthorized, msg))
	c.Abort()
}
