package kiosk

import (
	"errors"
	"net/http"
	"time"

	"chaat-factory-backend/pkg/database"
	"chaat-factory-backend/pkg/middleware"
	"chaat-factory-backend/pkg/models"
	"chaat-factory-backend/pkg/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateWastage records spoilage/breakage and decrements the kiosk catalog
// stock for that item, floored at zero. Two entry points share this handler:
// order-linked wastage (orderRef set, informational link only) and direct
// wastage against current inventory (sentinel reference). Only the direct
// path re-checks quantity against current stock; the order-linked path
// relies on the clamp.
func CreateWastage(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
		return
	}

	var req struct {
		ItemName string               `json:"itemName" binding:"required"`
		Quantity int                  `json:"quantity" binding:"required"`
		Reason   models.WastageReason `json:"reason" binding:"required"`
		OrderRef string               `json:"orderRef"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Item name, quantity, and reason are required"})
		return
	}

	if req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Quantity must be a positive integer"})
		return
	}

	if !models.ValidWastageReason(req.Reason) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Reason must be Broken, Bad Quality, or Something Else"})
		return
	}

	orderRef := models.DirectWastageRef
	orderLinked := req.OrderRef != "" && req.OrderRef != models.DirectWastageRef
	if orderLinked {
		var order models.Order
		if err := database.DB.Where("order_ref = ? AND kiosk_id = ?", req.OrderRef, profile.ID).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		orderRef = req.OrderRef
	}

	record := models.WastageRecord{
		KioskID:  profile.ID,
		OrderRef: orderRef,
		ItemName: req.ItemName,
		Quantity: req.Quantity,
		Reason:   req.Reason,
		LogDate:  time.Now().Format("2006-01-02"),
	}

	var updatedItem models.KioskItem
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var item models.KioskItem
		if err := tx.Where("kiosk_id = ? AND LOWER(item_name) = LOWER(?)", profile.ID, req.ItemName).
			First(&item).Error; err != nil {
			return err
		}

		if !orderLinked && req.Quantity > item.Stock {
			return cartValidationError{"Quantity exceeds current stock"}
		}

		newStock := item.Stock - req.Quantity
		if newStock < 0 {
			newStock = 0
		}
		item.Stock = newStock
		item.Status = models.DeriveStockStatus(newStock)
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		updatedItem = item

		return tx.Create(&record).Error
	})

	var validationErr cartValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.message})
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found in your catalog"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to record wastage"})
		return
	}

	services.PublishChange(services.ChangeEvent{Table: "wastage_records", Action: services.ActionInsert, KioskID: profile.ID})
	services.PublishChange(services.ChangeEvent{Table: "kiosk_items", Action: services.ActionUpdate, KioskID: profile.ID})

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Wastage recorded",
		"wastage":     record,
		"updatedItem": updatedItem,
	})
}

// ListWastage returns the kiosk's own wastage records, newest first
func ListWastage(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
		return
	}

	var records []models.WastageRecord
	if err := database.DB.
		Where("kiosk_id = ?", profile.ID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}
