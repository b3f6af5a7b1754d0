package kiosk

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"chaat-factory-backend/pkg/database"
	"chaat-factory-backend/pkg/middleware"
	"chaat-factory-backend/pkg/models"
	"chaat-factory-backend/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type cartValidationError struct {
	message string
}

func (e cartValidationError) Error() string {
	return e.message
}

// CreateOrder submits a sale: freezes the cart into an order row, decrements
// stock per line, and raises replenishment requests for rows that land below
// the low-stock threshold. The whole workflow is one transaction - stock is
// re-checked against the row inside it, not against the client's snapshot.
func CreateOrder(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
		return
	}

	var req struct {
		Items []struct {
			ItemID   int `json:"itemId" binding:"required"`
			Quantity int `json:"quantity" binding:"required"`
		} `json:"items" binding:"required"`
		PaymentMethod models.PaymentMethod `json:"paymentMethod" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cart items and payment method are required"})
		return
	}

	if req.PaymentMethod != models.PaymentMethodCash && req.PaymentMethod != models.PaymentMethodUPI {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payment method must be Cash or UPI"})
		return
	}

	for _, line := range req.Items {
		if line.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Quantity must be at least 1"})
			return
		}
	}

	now := time.Now()
	order := models.Order{
		OrderRef:      uuid.NewString(),
		KioskID:       profile.ID,
		PaymentMethod: req.PaymentMethod,
		OrderDate:     now.Format("2006-01-02"),
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		lineItems := make(models.OrderLineItems, 0, len(req.Items))
		lowItems := models.PurchaseItems{}

		for _, line := range req.Items {
			var item models.KioskItem
			if err := tx.Where("id = ? AND kiosk_id = ?", line.ItemID, profile.ID).First(&item).Error; err != nil {
				return cartValidationError{fmt.Sprintf("Item %d not found in your catalog", line.ItemID)}
			}

			if line.Quantity > item.Stock {
				return cartValidationError{fmt.Sprintf("Insufficient stock for %s", item.ItemName)}
			}

			// Freeze the line by value so later catalog edits never
			// rewrite order history
			lineItems = append(lineItems, models.OrderLineItem{
				ItemID:    item.ID,
				ItemName:  item.ItemName,
				Quantity:  line.Quantity,
				UnitPrice: item.Price,
			})

			newStock := item.Stock - line.Quantity
			item.Stock = newStock
			item.Status = models.DeriveStockStatus(newStock)
			if err := tx.Save(&item).Error; err != nil {
				return err
			}

			if newStock < models.LowStockThreshold {
				lowItems = append(lowItems, models.PurchaseItem{
					ItemName: item.ItemName,
					Quantity: models.RestockCeiling - newStock,
				})
			}
		}

		order.Items = lineItems
		order.Total = lineItems.Total()
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if len(lowItems) > 0 {
			if err := raiseReplenishment(tx, profile.ID, lowItems); err != nil {
				return err
			}
		}

		return nil
	})

	var validationErr cartValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.message})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to submit order"})
		return
	}

	services.PublishChange(services.ChangeEvent{Table: "orders", Action: services.ActionInsert, KioskID: profile.ID})
	services.PublishChange(services.ChangeEvent{Table: "kiosk_items", Action: services.ActionUpdate, KioskID: profile.ID})

	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// raiseReplenishment merges low-stock requests into the kiosk's open
// Preparing purchase order, or creates a new one. The requested quantity
// always tops the item back up to the restock ceiling.
func raiseReplenishment(tx *gorm.DB, kioskID int, lowItems models.PurchaseItems) error {
	var existing models.PurchaseOrder
	err := tx.Where("kiosk_id = ? AND status = ?", kioskID, models.PurchaseOrderPreparing).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&models.PurchaseOrder{
			KioskID: kioskID,
			Items:   lowItems,
			Status:  models.PurchaseOrderPreparing,
		}).Error
	}
	if err != nil {
		return err
	}

	for _, lowItem := range lowItems {
		merged := false
		for i, item := range existing.Items {
			if item.ItemName == lowItem.ItemName {
				// Latest shortfall wins; it reflects the current stock level
				existing.Items[i].Quantity = lowItem.Quantity
				merged = true
				break
			}
		}
		if !merged {
			existing.Items = append(existing.Items, lowItem)
		}
	}

	return tx.Save(&existing).Error
}

// GetOrders returns the kiosk's own orders for a date (default today)
func GetOrders(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		dateStr = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Date must be YYYY-MM-DD"})
		return
	}

	var orders []models.Order
	if err := database.DB.
		Where("kiosk_id = ? AND order_date = ?", profile.ID, dateStr).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	var revenue float64
	for _, order := range orders {
		revenue += order.Total
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    dateStr,
		"orders":  orders,
		"revenue": revenue,
	})
}
