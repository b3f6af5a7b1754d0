package middleware

import (
	"chaat-factory-backend/pkg/database"
	"chaat-factory-backend/pkg/models"
	"chaat-factory-backend/pkg/utils"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthenticateToken verifies the JWT from cookie or Authorization header and
// loads the caller's profile into the context.
func AuthenticateToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""

		// Check cookie first
		if cookieToken, err := c.Cookie("token"); err == nil && cookieToken != "" {
			token = cookieToken
		}

		// If not in cookie, check Authorization header
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && parts[0] == "Bearer" {
					token = parts[1]
				}
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(token)
		if err != nil {
			if strings.Contains(err.Error(), "expired") {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Token expired."})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token."})
			}
			c.Abort()
			return
		}

		var profile models.Profile
		if err := database.DB.First(&profile, claims.ID).Error; err != nil {
			log.Printf("Error fetching profile %d (role %s): %v", claims.ID, claims.Role, err)
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token. Profile not found."})
			c.Abort()
			return
		}

		c.Set("profile", profile)
		c.Next()
	}
}

// AuthorizeRoles checks if the authenticated profile has one of the roles
func AuthorizeRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := CurrentProfile(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
			c.Abort()
			return
		}

		for _, role := range roles {
			if profile.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. Insufficient permissions."})
		c.Abort()
	}
}

// CurrentProfile returns the authenticated profile from the context
func CurrentProfile(c *gin.Context) (models.Profile, bool) {
	profileInterface, exists := c.Get("profile")
	if !exists {
		return models.Profile{}, false
	}
	profile, ok := profileInterface.(models.Profile)
	return profile, ok
}
