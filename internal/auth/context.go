package auth

import "github.com/gin-gonic/gin"

const (
	ctxUserID     = "userID"
	ctxUserEmail  = "userEmail"
	ctxEmployeeID = "employeeID"
)

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// GetUserEmail returns the authenticated user's email or empty string.
func GetUserEmail(c *gin.Context) string {
	return c.GetString(ctxUserEmail)
}

// GetEmployeeID returns the employee record bound to the authenticated user.
func GetEmployeeID(c *gin.Context) string {
	return c.GetString(ctxEmployeeID)
}

func setClaims(c *gin.Context, claims *Claims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUserEmail, claims.Email)
	c.Set(ctxEmployeeID, claims.EmployeeID)
}
