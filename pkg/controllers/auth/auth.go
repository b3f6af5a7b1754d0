package auth

import (
	"chaat-factory-backend/pkg/config"
	"chaat-factory-backend/pkg/database"
	"chaat-factory-backend/pkg/middleware"
	"chaat-factory-backend/pkg/models"
	"chaat-factory-backend/pkg/utils"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
)

const tokenMaxAge = 7 * 24 * 60 * 60 // 7 days, matches JWT default expiry

// isUniqueViolation detects a unique index violation from the database.
// Postgres reports "duplicate key", sqlite "UNIQUE constraint failed".
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// Signup registers a manager or kiosk account. The single-manager rule is
// enforced by a partial unique index on profiles(role), so two concurrent
// manager signups cannot both succeed.
func Signup(c *gin.Context) {
	var req struct {
		Name      string      `json:"name" binding:"required"`
		Email     string      `json:"email" binding:"required,email"`
		Password  string      `json:"password" binding:"required"`
		Role      models.Role `json:"role" binding:"required"`
		KioskName string      `json:"kioskName"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email, password, and role are required"})
		return
	}

	if req.Role != models.RoleManager && req.Role != models.RoleKiosk {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Role must be MANAGER or KIOSK"})
		return
	}

	if req.Role == models.RoleKiosk && strings.TrimSpace(req.KioskName) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Kiosk name is required for kiosk accounts"})
		return
	}

	if err := utils.CheckPasswordStrength(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	// Friendly pre-check; the unique index still backs this up
	var existing models.Profile
	if err := database.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "An account with this email already exists"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	profile := models.Profile{
		Name:     req.Name,
		Email:    req.Email,
		Password: &hashedPassword,
		Role:     req.Role,
	}
	if req.Role == models.RoleKiosk {
		kioskName := strings.TrimSpace(req.KioskName)
		profile.KioskName = &kioskName
	}

	if err := database.DB.Create(&profile).Error; err != nil {
		if isUniqueViolation(err) {
			if req.Role == models.RoleManager {
				c.JSON(http.StatusConflict, gin.H{"message": "A manager account already exists"})
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"message": "An account with this email already exists"})
			}
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	token, err := utils.GenerateToken(profile.ID, profile.Email, profile.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	setTokenCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"user":    profileResponse(profile),
		"token":   token,
	})
}

// SignIn authenticates an account and routes it to the right dashboard by
// returning its role. Managers with 2FA enabled must also pass a TOTP code.
func SignIn(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		TOTPCode string `json:"totpCode"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	var profile models.Profile
	if err := database.DB.Where("email = ?", req.Email).First(&profile).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	if profile.Password == nil || utils.ComparePassword(*profile.Password, req.Password) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	if profile.TwoFactorEnabled {
		if req.TOTPCode == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message":     "Two-factor code required",
				"totpRequired": true,
			})
			return
		}
		if profile.TwoFactorSecret == nil || !totp.Validate(req.TOTPCode, *profile.TwoFactorSecret) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid two-factor code"})
			return
		}
	}

	token, err := utils.GenerateToken(profile.ID, profile.Email, profile.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	setTokenCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed in successfully",
		"user":    profileResponse(profile),
		"token":   token,
	})
}

// SignOut clears the auth cookie
func SignOut(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", config.AppConfig.CookieSecure == "true", true)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out successfully"})
}

// CheckAuth returns the authenticated profile
func CheckAuth(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profileResponse(profile)})
}

func setTokenCookie(c *gin.Context, token string) {
	c.SetCookie(
		"token",
		token,
		tokenMaxAge,
		"/",
		"",
		config.AppConfig.CookieSecure == "true",
		true, // httpOnly
	)
}

func profileResponse(profile models.Profile) gin.H {
	return gin.H{
		"id":               profile.ID,
		"name":             profile.Name,
		"email":            profile.Email,
		"role":             profile.Role,
		"kioskName":        profile.KioskName,
		"imageUrl":         profile.ImageURL,
		"twoFactorEnabled": profile.TwoFactorEnabled,
	}
}
