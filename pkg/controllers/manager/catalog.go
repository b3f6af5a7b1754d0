package manager

import (
	"net/http"
	"strconv"
	"strings"

	"chaat-factory-backend/pkg/config"
	"chaat-factory-backend/pkg/database"
	"chaat-factory-backend/pkg/models"
	"chaat-factory-backend/pkg/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListFactoryItems returns the full factory catalog
func ListFactoryItems(c *gin.Context) {
	var items []models.FactoryItem
	if err := database.DB.Order("name ASC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateFactoryItem adds an item to the factory catalog
func CreateFactoryItem(c *gin.Context) {
	var req struct {
		Name  string  `json:"name" binding:"required"`
		Price float64 `json:"price" binding:"required"`
		Stock int     `json:"stock"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name and price are required"})
		return
	}

	if req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Price must be greater than 0"})
		return
	}
	if req.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Stock cannot be negative"})
		return
	}

	item := models.FactoryItem{
		Name:   strings.TrimSpace(req.Name),
		Price:  req.Price,
		Stock:  req.Stock,
		Status: factoryStatus(req.Stock),
	}

	if err := database.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "An item with this name already exists"})
		return
	}

	services.PublishChange(services.ChangeEvent{Table: "factory_items", Action: services.ActionInsert})

	c.JSON(http.StatusCreated, gin.H{"message": "Item created successfully", "item": item})
}

// UpdateFactoryItem edits name, price or stock of a factory item. A rename
// fans the item's image reference out to matching kiosk rows, best effort.
func UpdateFactoryItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid item ID"})
		return
	}

	var req struct {
		Name  *string  `json:"name"`
		Price *float64 `json:"price"`
		Stock *int     `json:"stock"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	var item models.FactoryItem
	if err := database.DB.First(&item, itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Factory item not found"})
		return
	}

	renamed := false
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" && *req.Name != item.Name {
		item.Name = strings.TrimSpace(*req.Name)
		renamed = true
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
		item.Status = factoryStatus(*req.Stock)
	}

	if err := database.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update item"})
		return
	}

	if renamed && item.ImageURL != nil {
		fanOutImage(item.Name, *item.ImageURL)
	}

	services.PublishChange(services.ChangeEvent{Table: "factory_items", Action: services.ActionUpdate})

	c.JSON(http.StatusOK, gin.H{"message": "Item updated successfully", "item": item})
}

// DeleteFactoryItem removes an item from the factory catalog
func DeleteFactoryItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid item ID"})
		return
	}

	var item models.FactoryItem
	if err := database.DB.First(&item, itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Factory item not found"})
		return
	}

	if err := database.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete item"})
		return
	}

	if item.ImageURL != nil {
		services.DeleteItemImage(*item.ImageURL)
	}

	services.PublishChange(services.ChangeEvent{Table: "factory_items", Action: services.ActionDelete})

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

// UploadFactoryItemImage stores a new item image and fans the URL out to
// every kiosk catalog row with the same item name.
func UploadFactoryItemImage(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid item ID"})
		return
	}

	var item models.FactoryItem
	if err := database.DB.First(&item, itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Factory item not found"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image file is required"})
		return
	}
	defer file.Close()

	imageURL, err := services.UploadItemImage(file, header.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload image"})
		return
	}

	oldImage := item.ImageURL
	if err := database.DB.Model(&item).Update("image_url", imageURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update item"})
		return
	}

	fanOutImage(item.Name, imageURL)

	if oldImage != nil {
		services.DeleteItemImage(*oldImage)
	}

	services.PublishChange(services.ChangeEvent{Table: "factory_items", Action: services.ActionUpdate})

	c.JSON(http.StatusOK, gin.H{"message": "Image uploaded successfully", "imageUrl": imageURL})
}

// SendToKiosk pushes quantity from a factory item into a kiosk's catalog,
// creating or incrementing the kiosk row in one transaction.
func SendToKiosk(c *gin.Context) {
	var req struct {
		KioskID  int `json:"kioskId" binding:"required"`
		ItemID   int `json:"itemId" binding:"required"`
		Quantity int `json:"quantity" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "kioskId, itemId, and quantity are required"})
		return
	}

	if req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Quantity must be greater than 0"})
		return
	}

	var kiosk models.Profile
	if err := database.DB.Where("id = ? AND role = ?", req.KioskID, models.RoleKiosk).First(&kiosk).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Kiosk not found"})
		return
	}

	var kioskItem models.KioskItem
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var item models.FactoryItem
		if err := tx.First(&item, req.ItemID).Error; err != nil {
			return errFactoryItemNotFound
		}

		if config.FiniteFactoryStock() {
			if item.Stock < req.Quantity {
				return errInsufficientFactoryStock
			}
			item.Stock -= req.Quantity
			item.Status = factoryStatus(item.Stock)
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
		}

		updated, err := allocateToKiosk(tx, req.KioskID, item.Name, req.Quantity, item.Price, item.ImageURL)
		if err != nil {
			return err
		}
		kioskItem = updated
		return nil
	})

	switch err {
	case nil:
	case errFactoryItemNotFound:
		c.JSON(http.StatusNotFound, gin.H{"message": "Factory item not found"})
		return
	case errInsufficientFactoryStock:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Insufficient factory stock"})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send stock"})
		return
	}

	services.PublishChange(services.ChangeEvent{Table: "factory_items", Action: services.ActionUpdate})
	services.PublishChange(services.ChangeEvent{Table: "kiosk_items", Action: services.ActionUpdate, KioskID: req.KioskID})

	c.JSON(http.StatusOK, gin.H{"message": "Stock sent successfully", "kioskItem": kioskItem})
}

// ListKiosks returns all kiosk accounts, for allocation targeting
func ListKiosks(c *gin.Context) {
	var kiosks []models.Profile
	if err := database.DB.Where("role = ?", models.RoleKiosk).Order("id ASC").Find(&kiosks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"kiosks": kiosks})
}

// factoryStatus derives the factory status label. Under the unlimited
// policy the counter is nominal and the catalog always reads In Stock.
func factoryStatus(stock int) models.StockStatus {
	if !config.FiniteFactoryStock() {
		return models.StockStatusIn
	}
	return models.DeriveStockStatus(stock)
}

// fanOutImage propagates an image URL to every kiosk row with a matching
// item name. Best effort: a partial failure leaves some rows stale.
func fanOutImage(itemName, imageURL string) {
	database.DB.Model(&models.KioskItem{}).
		Where("LOWER(item_name) = LOWER(?)", itemName).
		Update("image_url", imageURL)
}
