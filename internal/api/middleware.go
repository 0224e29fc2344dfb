package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/office-seat-booking/internal/auth"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/apperror"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/response"
	"github.com/nekogravitycat/office-seat-booking/internal/user"
)

var errAdminRequired = apperror.New(http.StatusForbidden, apperror.KindForbidden, "forbidden: admin access required")

// RequireAdmin ensures the authenticated user is an admin.
// It MUST be used after auth.AuthRequired middleware.
func RequireAdmin(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			response.Error(c, errUnauthorized)
			c.Abort()
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			// A token for a deleted account is no longer a valid identity.
			response.Error(c, errUnauthorized)
			c.Abort()
			return
		}

		if !u.IsActive || !u.IsAdmin {
			response.Error(c, errAdminRequired)
			c.Abort()
			return
		}

		c.Next()
	}
}
