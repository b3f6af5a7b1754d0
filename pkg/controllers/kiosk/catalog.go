package kiosk

import (
	"net/http"
	"strings"

	"chaat-factory-backend/pkg/database"
	"chaat-factory-backend/pkg/middleware"
	"chaat-factory-backend/pkg/models"

	"github.com/gin-gonic/gin"
)

// GetCatalog returns the kiosk's own stock ledger with the predefined menu
// overlaid: menu items without a real inventory row appear as stock-0,
// Out of Stock placeholders.
func GetCatalog(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
		return
	}

	var items []models.KioskItem
	if err := database.DB.Where("kiosk_id = ?", profile.ID).Order("item_name ASC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	present := make(map[string]bool, len(items))
	catalog := make([]gin.H, 0, len(items)+len(models.PredefinedMenu))
	for _, item := range items {
		present[strings.ToLower(item.ItemName)] = true
		catalog = append(catalog, gin.H{
			"id":       item.ID,
			"itemName": item.ItemName,
			"stock":    item.Stock,
			"price":    item.Price,
			"status":   item.Status,
			"imageUrl": item.ImageURL,
		})
	}

	for _, menuItem := range models.PredefinedMenu {
		if present[strings.ToLower(menuItem.Name)] {
			continue
		}
		catalog = append(catalog, gin.H{
			"id":       nil,
			"itemName": menuItem.Name,
			"stock":    0,
			"price":    menuItem.Price,
			"status":   models.StockStatusOut,
			"imageUrl": nil,
		})
	}

	c.JSON(http.StatusOK, gin.H{"catalog": catalog})
}
