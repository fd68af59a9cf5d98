package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nikajr10/project-management/internal/model"
	"github.com/nikajr10/project-management/pkg/jwt"
)

const principalKey = "principal"

// AuthMiddleware parses the Bearer token and stores a typed Principal in the
// gin context. A missing or garbled claim aborts the request; we never fall
// back to a zero id, which could silently alias a real row.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 40101, "message": "missing token", "data": nil})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 40101, "message": "malformed Authorization header", "data": nil})
			return
		}

		claims, err := jwt.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			if strings.Contains(err.Error(), "expired") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 40102, "message": "token expired", "data": nil})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 40103, "message": "invalid token", "data": nil})
			}
			return
		}
		if claims.Role != model.RoleAdmin && claims.Role != model.RoleUser {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 40103, "message": "invalid token", "data": nil})
			return
		}

		// The user must still exist; a token can outlive its account.
		var user model.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 40103, "message": "user not found", "data": nil})
			return
		}

		c.Set(principalKey, model.Principal{ID: user.ID, Role: user.Role})
		c.Next()
	}
}

func GetPrincipal(c *gin.Context) (model.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return model.Principal{}, false
	}
	p, ok := v.(model.Principal)
	return p, ok
}
