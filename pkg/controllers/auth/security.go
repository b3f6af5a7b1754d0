package auth

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"net/http"
	"time"

	"chaat-factory-backend/pkg/database"
	"chaat-factory-backend/pkg/middleware"
	"chaat-factory-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
)

// ChangePassword updates the caller's password
func ChangePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
		ConfirmPassword string `json:"confirmPassword" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Current password, new password, and confirm password are required",
		})
		return
	}

	if req.NewPassword != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"message": "New passwords do not match"})
		return
	}

	if err := utils.CheckPasswordStrength(req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
		return
	}

	if profile.Password == nil || utils.ComparePassword(*profile.Password, req.CurrentPassword) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Current password is incorrect"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
		return
	}

	database.DB.Model(&profile).Update("password", hashedPassword)

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// Get2FAStatus returns 2FA status for the manager account
func Get2FAStatus(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"twoFactorEnabled":   profile.TwoFactorEnabled,
		"twoFactorEnabledAt": profile.TwoFactorEnabledAt,
	})
}

// Generate2FASetup generates a new TOTP secret and QR code for setup.
// The secret stays pending until Enable2FA verifies a code against it.
func Generate2FASetup(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "Chaat Factory",
		AccountName: profile.Email,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate 2FA secret"})
		return
	}

	secret := key.Secret()
	if err := database.DB.Model(&profile).Update("two_factor_secret", secret).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to store 2FA secret"})
		return
	}

	img, err := key.Image(200, 200)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to render QR code"})
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to render QR code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"secret": secret,
		"url":    key.URL(),
		"qrCode": "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
}

// Enable2FA verifies a TOTP code against the pending secret and turns 2FA on
func Enable2FA(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Verification token is required"})
		return
	}

	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
		return
	}

	if profile.TwoFactorSecret == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Generate a 2FA secret first"})
		return
	}

	if !totp.Validate(req.Token, *profile.TwoFactorSecret) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid verification token"})
		return
	}

	now := time.Now()
	database.DB.Model(&profile).Updates(map[string]interface{}{
		"two_factor_enabled":    true,
		"two_factor_enabled_at": now,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Two-factor authentication enabled"})
}

// Disable2FA turns 2FA off after verifying password and current code
func Disable2FA(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
		Token    string `json:"token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password and token are required"})
		return
	}

	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
		return
	}

	if !profile.TwoFactorEnabled || profile.TwoFactorSecret == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Two-factor authentication is not enabled"})
		return
	}

	if profile.Password == nil || utils.ComparePassword(*profile.Password, req.Password) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Incorrect password"})
		return
	}

	if !totp.Validate(req.Token, *profile.TwoFactorSecret) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid verification token"})
		return
	}

	database.DB.Model(&profile).Updates(map[string]interface{}{
		"two_factor_enabled":    false,
		"two_factor_enabled_at": nil,
		"two_factor_secret":     nil,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Two-factor authentication disabled"})
}
