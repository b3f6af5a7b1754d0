package manager

import (
	"net/http"
	"strconv"
	"strings"

	"chaat-factory-backend/pkg/database"
	"chaat-factory-backend/pkg/models"
	"chaat-factory-backend/pkg/services"

	"github.com/gin-gonic/gin"
)

// ListKioskItems returns one kiosk's catalog rows, for direct editing
func ListKioskItems(c *gin.Context) {
	kioskID, err := strconv.Atoi(c.Param("kioskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid kiosk ID"})
		return
	}

	var items []models.KioskItem
	if err := database.DB.Where("kiosk_id = ?", kioskID).Order("item_name ASC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// UpdateKioskItem edits a kiosk catalog row directly: stock, price or name.
// A stock change recomputes the status label.
func UpdateKioskItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid item ID"})
		return
	}

	var req struct {
		ItemName *string  `json:"itemName"`
		Price    *float64 `json:"price"`
		Stock    *int     `json:"stock"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	var item models.KioskItem
	if err := database.DB.First(&item, itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Kiosk item not found"})
		return
	}

	if req.ItemName != nil && strings.TrimSpace(*req.ItemName) != "" {
		item.ItemName = strings.TrimSpace(*req.ItemName)
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Price must be greater than 0"})
			return
		}
		item.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Stock cannot be negative"})
			return
		}
		item.Stock = *req.Stock
		item.Status = models.DeriveStockStatus(*req.Stock)
	}

	if err := database.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update item"})
		return
	}

	services.PublishChange(services.ChangeEvent{Table: "kiosk_items", Action: services.ActionUpdate, KioskID: item.KioskID})

	c.JSON(http.StatusOK, gin.H{"message": "Item updated successfully", "item": item})
}

// DeleteKioskItem removes a row from a kiosk's catalog
func DeleteKioskItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid item ID"})
		return
	}

	var item models.KioskItem
	if err := database.DB.First(&item, itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Kiosk item not found"})
		return
	}

	if err := database.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete item"})
		return
	}

	services.PublishChange(services.ChangeEvent{Table: "kiosk_items", Action: services.ActionDelete, KioskID: item.KioskID})

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
