package middleware

import (
	"net/http"
	"strings"

	"aurum/karat_gold_loan/configs"
	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const AuthUserKey = "authUser"

// RequireAuth validates the bearer token and stashes the caller identity for
// handlers and the dashboard cache key.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be a Bearer token"})
			return
		}

		claims := &models.UserClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(configs.JWT_SECRET), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		role := claims.Role
		if role == "" {
			role = consts.RoleStaff
		}
		c.Set(AuthUserKey, models.AuthUser{UserID: claims.UserID, Name: claims.Name, Role: role})
		c.Next()
	}
}

// RequireRole guards admin-only routes. Runs after RequireAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity set by RequireAuth.
func CurrentUser(c *gin.Context) models.AuthUser {
	value, exists := c.Get(AuthUserKey)
	if !exists {
		return models.AuthUser{}
	}
	user, _ := value.(models.AuthUser)
	return user
}
