package kiosk

import (
	"net/http"
	"time"

	"chaat-factory-backend/pkg/database"
	"chaat-factory-backend/pkg/middleware"
	"chaat-factory-backend/pkg/models"
	"chaat-factory-backend/pkg/services"

	"github.com/gin-gonic/gin"
)

// ClockEvent records a timestamped in/out event, optionally with a photo.
// Multiple events per day are permitted; they stay append-only.
func ClockEvent(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
		return
	}

	clockType := models.ClockType(c.PostForm("type"))
	if clockType != models.ClockTypeIn && clockType != models.ClockTypeOut {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Type must be 'in' or 'out'"})
		return
	}

	now := time.Now()
	logEntry := models.ClockLog{
		KioskID: profile.ID,
		Type:    clockType,
		LogDate: now.Format("2006-01-02"),
	}

	// Photo is optional; a clock event without one is still valid
	if file, _, err := c.Request.FormFile("photo"); err == nil {
		defer file.Close()
		photoURL, err := services.UploadClockPhoto(file, profile.ID, string(clockType), now.Unix())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload photo"})
			return
		}
		logEntry.PhotoURL = &photoURL
	}

	if err := database.DB.Create(&logEntry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to record clock event"})
		return
	}

	services.PublishChange(services.ChangeEvent{Table: "clock_logs", Action: services.ActionInsert, KioskID: profile.ID})

	c.JSON(http.StatusCreated, gin.H{"message": "Clock event recorded", "clockLog": logEntry})
}

// GetTodayAttendance returns today's events plus the derived clock-in/out:
// earliest in, latest out - the one rule applied everywhere.
func GetTodayAttendance(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
		return
	}

	today := time.Now().Format("2006-01-02")

	var logs []models.ClockLog
	if err := database.DB.
		Where("kiosk_id = ? AND log_date = ?", profile.ID, today).
		Order("created_at ASC").
		Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	var clockIn, clockOut *models.ClockLog
	for i := range logs {
		switch logs[i].Type {
		case models.ClockTypeIn:
			if clockIn == nil {
				clockIn = &logs[i]
			}
		case models.ClockTypeOut:
			clockOut = &logs[i]
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":     today,
		"clockIn":  clockIn,
		"clockOut": clockOut,
		"events":   logs,
	})
}
