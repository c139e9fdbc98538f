package middleware

import (
	"net/http"

	"college-chatbot/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware
const (
	ContextUsername = "username"
	ContextRole     = "role"
	ContextDivision = "division"
	ContextClaims   = "claims"
)

type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{jwtSecret: jwtSecret}
}

// tokenFromRequest reads the bearer token, falling back to the access_token cookie.
func tokenFromRequest(c *gin.Context) string {
	if token := utils.ExtractTokenFromHeader(c.GetHeader("Authorization")); token != "" {
		return token
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

func (a *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			utils.RespondWithUnauthorized(c, "Authentication token is required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(tokenString, a.jwtSecret)
		if err != nil {
			utils.RespondWithError(c, http.StatusUnauthorized, "session_expired", "Your session has expired. Please log in again.", gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth records the caller when a valid token is present and never rejects.
func (a *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := tokenFromRequest(c); tokenString != "" {
			if claims, err := utils.ValidateJWT(tokenString, a.jwtSecret); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

func setClaims(c *gin.Context, claims *utils.Claims) {
	c.Set(ContextUsername, claims.Username)
	c.Set(ContextRole, claims.Role)
	c.Set(ContextDivision, claims.Division)
	c.Set(ContextClaims, claims)
}

func IsAuthenticated(c *gin.Context) bool {
	_, exists := c.Get(ContextClaims)
	return exists
}

func GetUsername(c *gin.Context) string {
	return c.GetString(ContextUsername)
}

func GetRole(c *gin.Context) string {
	return c.GetString(ContextRole)
}

func GetDivision(c *gin.Context) string {
	return c.GetString(ContextDivision)
}

func GetClaims(c *gin.Context) *utils.Claims {
	if v, exists := c.Get(ContextClaims); exists {
		if claims, ok := v.(*utils.Claims); ok {
			return claims
		}
	}
	return nil
}
