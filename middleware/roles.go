package middleware

import (
	"college-chatbot/models"
	"college-chatbot/utils"

	"github.com/gin-gonic/gin"
)

type RoleMiddleware struct{}

func NewRoleMiddleware() *RoleMiddleware {
	return &RoleMiddleware{}
}

// RequireRole must run after RequireAuth.
func (r *RoleMiddleware) RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if role == "" {
			utils.RespondWithUnauthorized(c, "User role not found")
			c.Abort()
			return
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				c.Next()
				return
			}
		}

		utils.RespondWithForbidden(c, "Insufficient permissions")
		c.Abort()
	}
}

func (r *RoleMiddleware) FacultyGuard() gin.HandlerFunc {
	return r.RequireRole(models.RoleFaculty)
}

func (r *RoleMiddleware) StudentGuard() gin.HandlerFunc {
	return r.RequireRole(models.RoleStudent)
}

func IsFaculty(c *gin.Context) bool {
	return GetRole(c) == models.RoleFaculty
}
