package manager

import (
	"net/http"
	"strconv"

	"chaat-factory-backend/pkg/config"
	"chaat-factory-backend/pkg/database"
	"chaat-factory-backend/pkg/models"
	"chaat-factory-backend/pkg/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListPurchaseOrders returns replenishment orders, optionally filtered by
// kiosk and status
func ListPurchaseOrders(c *gin.Context) {
	query := database.DB.Preload("Kiosk").Order("created_at DESC")

	if kioskIDStr := c.Query("kioskId"); kioskIDStr != "" {
		kioskID, err := strconv.Atoi(kioskIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid kiosk ID"})
			return
		}
		query = query.Where("kiosk_id = ?", kioskID)
	}

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

// UpdatePurchaseOrderStatus moves an order along the replenishment state
// graph. Transitions outside the graph are rejected.
func UpdatePurchaseOrderStatus(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
		return
	}

	var req struct {
		Status models.PurchaseOrderStatus `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status is required"})
		return
	}

	var order models.PurchaseOrder
	if err := database.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Purchase order not found"})
		return
	}

	if !models.ValidPurchaseOrderTransition(order.Status, req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid status transition from " + string(order.Status) + " to " + string(req.Status),
		})
		return
	}

	if err := database.DB.Model(&order).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update status"})
		return
	}

	services.PublishChange(services.ChangeEvent{Table: "purchase_orders", Action: services.ActionUpdate, KioskID: order.KioskID})

	order.Status = req.Status
	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully", "purchaseOrder": order})
}

// UpdatePurchaseOrderItems edits the item list of a pending order and pushes
// the allocation into the kiosk catalog. Only the delta against what was
// already applied is allocated, so saving the same order twice does not
// double-allocate.
func UpdatePurchaseOrderItems(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
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

	var order models.PurchaseOrder
	if err := database.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Purchase order not found"})
		return
	}

	if order.Status != models.PurchaseOrderPreparing {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Only orders in Preparing can be edited"})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		applied := order.AppliedItems
		for _, item := range req.Items {
			delta := item.Quantity - applied.QuantityFor(item.ItemName)
			if delta <= 0 {
				// Already-allocated stock stays at the kiosk, so a
				// reduction must not lower the applied record either;
				// otherwise raising the quantity back re-allocates it.
				continue
			}

			price, imageURL := allocationPrice(tx, item.ItemName)

			if config.FiniteFactoryStock() {
				var factoryItem models.FactoryItem
				if err := tx.Where("LOWER(name) = LOWER(?)", item.ItemName).First(&factoryItem).Error; err == nil {
					if factoryItem.Stock < delta {
						return errInsufficientFactoryStock
					}
					factoryItem.Stock -= delta
					factoryItem.Status = factoryStatus(factoryItem.Stock)
					if err := tx.Save(&factoryItem).Error; err != nil {
						return err
					}
				}
			}

			if _, err := allocateToKiosk(tx, order.KioskID, item.ItemName, delta, price, imageURL); err != nil {
				return err
			}
			applied = setAppliedQuantity(applied, item.ItemName, item.Quantity)
		}

		order.Items = req.Items
		order.AppliedItems = applied
		return tx.Save(&order).Error
	})

	if err == errInsufficientFactoryStock {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Insufficient factory stock"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update purchase order"})
		return
	}

	services.PublishChange(services.ChangeEvent{Table: "purchase_orders", Action: services.ActionUpdate, KioskID: order.KioskID})
	services.PublishChange(services.ChangeEvent{Table: "kiosk_items", Action: services.ActionUpdate, KioskID: order.KioskID})

	c.JSON(http.StatusOK, gin.H{"message": "Purchase order updated successfully", "purchaseOrder": order})
}

// setAppliedQuantity records the quantity pushed to the kiosk for one item,
// replacing an existing entry or appending a new one.
func setAppliedQuantity(items models.PurchaseItems, name string, quantity int) models.PurchaseItems {
	for i, item := range items {
		if item.ItemName == name {
			items[i].Quantity = quantity
			return items
		}
	}
	return append(items, models.PurchaseItem{ItemName: name, Quantity: quantity})
}
