package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/massagehub/booking-api/internal/auth"
	"github.com/massagehub/booking-api/internal/models"
)

const (
	ContextUserID      = "userID"
	ContextUserRole    = "userRole"
	ContextUser        = "user"
	ContextTokenID     = "tokenID"
	ContextTokenExpiry = "tokenExpiry"
)

// AuthMiddleware accepts the session token from the Authorization header
// or the session cookie, rejects revoked tokens and loads the user record
// so role changes take effect on the next request.
func AuthMiddleware(issuer *auth.TokenIssuer, blacklist auth.Blacklist, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing_token"})
			return
		}

		claims, err := issuer.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid_token"})
			return
		}

		if claims.TokenID != "" {
			revoked, _ := blacklist.IsRevoked(c.Request.Context(), claims.TokenID)
			if revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "token_revoked"})
				return
			}
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid_token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal_error"})
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, user.Role)
		c.Set(ContextUser, &user)
		c.Set(ContextTokenID, claims.TokenID)
		c.Set(ContextTokenExpiry, claims.Expires)

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}

	if cookie, err := c.Cookie(auth.CookieName); err == nil {
		return cookie
	}
	return ""
}
