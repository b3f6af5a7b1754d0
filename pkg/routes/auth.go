package routes

import (
	"chaat-factory-backend/pkg/controllers/auth"
	"chaat-factory-backend/pkg/middleware"
	"chaat-factory-backend/pkg/models"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers all authentication routes
func RegisterAuthRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", auth.Signup)
		authGroup.POST("/signin", auth.SignIn)
		authGroup.POST("/signout", auth.SignOut)

		authGroup.GET("/me", middleware.AuthenticateToken(), auth.CheckAuth)
		authGroup.POST("/change-password", middleware.AuthenticateToken(), auth.ChangePassword)

		// Manager 2FA
		security := authGroup.Group("/security")
		security.Use(middleware.AuthenticateToken(), middleware.AuthorizeRoles(models.RoleManager))
		{
			security.GET("/2fa-status", auth.Get2FAStatus)
			security.POST("/generate-2fa", auth.Generate2FASetup)
			security.POST("/enable-2fa", auth.Enable2FA)
			security.POST("/disable-2fa", auth.Disable2FA)
		}
	}
}
