package manager

import (
	"errors"
	"strings"

	"chaat-factory-backend/pkg/models"

	"gorm.io/gorm"
)

var (
	errFactoryItemNotFound      = errors.New("factory item not found")
	errInsufficientFactoryStock = errors.New("insufficient factory stock")
)

// allocateToKiosk creates or increments a kiosk catalog row inside the
// caller's transaction. Item names match case-insensitively; a new row
// copies the given price and image.
func allocateToKiosk(tx *gorm.DB, kioskID int, itemName string, quantity int, price float64, imageURL *string) (models.KioskItem, error) {
	var kioskItem models.KioskItem
	err := tx.Where("kiosk_id = ? AND LOWER(item_name) = LOWER(?)", kioskID, itemName).
		First(&kioskItem).Error

	if err == nil {
		kioskItem.Stock += quantity
		kioskItem.Status = models.DeriveStockStatus(kioskItem.Stock)
		if imageURL != nil {
			kioskItem.ImageURL = imageURL
		}
		if err := tx.Save(&kioskItem).Error; err != nil {
			return models.KioskItem{}, err
		}
		return kioskItem, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.KioskItem{}, err
	}

	kioskItem = models.KioskItem{
		KioskID:  kioskID,
		ItemName: strings.TrimSpace(itemName),
		Stock:    quantity,
		Price:    price,
		Status:   models.DeriveStockStatus(quantity),
		ImageURL: imageURL,
	}
	if err := tx.Create(&kioskItem).Error; err != nil {
		return models.KioskItem{}, err
	}
	return kioskItem, nil
}

// allocationPrice resolves the price a fresh kiosk row should carry when the
// allocation is not driven by a factory item directly: factory catalog
// first, then the predefined menu, then zero.
func allocationPrice(tx *gorm.DB, itemName string) (float64, *string) {
	var factoryItem models.FactoryItem
	if err := tx.Where("LOWER(name) = LOWER(?)", itemName).First(&factoryItem).Error; err == nil {
		return factoryItem.Price, factoryItem.ImageURL
	}

	for _, menuItem := range models.PredefinedMenu {
		if strings.EqualFold(menuItem.Name, itemName) {
			return menuItem.Price, nil
		}
	}

	return 0, nil
}
