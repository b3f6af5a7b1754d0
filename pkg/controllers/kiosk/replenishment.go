package kiosk

import (
	"net/http"

	"chaat-factory-backend/pkg/database"
	"chaat-factory-backend/pkg/middleware"
	"chaat-factory-backend/pkg/models"
	"chaat-factory-backend/pkg/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreatePurchaseOrder raises a replenishment request by hand, ahead of the
// automatic low-stock trigger. Requests merge into the kiosk's open
// Preparing order the same way automatic ones do.
func CreatePurchaseOrder(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
		return
	}

	var req struct {
		Items models.PurchaseItems `json:"items" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Items are required"})
		return
	}

	for _, item := range req.Items {
		if item.ItemName == "" || item.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Each item needs a name and a positive quantity"})
			return
		}
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		return raiseReplenishment(tx, profile.ID, req.Items)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create purchase order"})
		return
	}

	var order models.PurchaseOrder
	if err := database.DB.
		Where("kiosk_id = ? AND status = ?", profile.ID, models.PurchaseOrderPreparing).
		First(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create purchase order"})
		return
	}

	services.PublishChange(services.ChangeEvent{Table: "purchase_orders", Action: services.ActionInsert, KioskID: profile.ID})

	c.JSON(http.StatusCreated, gin.H{"message": "Purchase order raised", "purchaseOrder": order})
}

// ListPurchaseOrders returns the kiosk's own replenishment orders,
// optionally filtered by status
func ListPurchaseOrders(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
		return
	}

	query := database.DB.Where("kiosk_id = ?", profile.ID).Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.PurchaseOrder
	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"purchaseOrders": orders})
}
