package routes

import (
	"chaat-factory-backend/pkg/controllers/manager"
	"chaat-factory-backend/pkg/middleware"
	"chaat-factory-backend/pkg/models"

	"github.com/gin-gonic/gin"
)

// RegisterManagerRoutes registers all manager-facing API routes
func RegisterManagerRoutes(router *gin.RouterGroup) {
	managerGroup := router.Group("/manager")
	managerGroup.Use(middleware.AuthenticateToken(), middleware.AuthorizeRoles(models.RoleManager))
	{
		// Factory catalog
		managerGroup.GET("/catalog", manager.ListFactoryItems)
		managerGroup.POST("/catalog", manager.CreateFactoryItem)
		managerGroup.PUT("/catalog/:itemId", manager.UpdateFactoryItem)
		managerGroup.DELETE("/catalog/:itemId", manager.DeleteFactoryItem)
		managerGroup.POST("/catalog/:itemId/image", manager.UploadFactoryItemImage)

		// Allocation
		managerGroup.GET("/kiosks", manager.ListKiosks)
		managerGroup.POST("/send-to-kiosk", manager.SendToKiosk)

		// Direct kiosk catalog edits
		managerGroup.GET("/kiosks/:kioskId/items", manager.ListKioskItems)
		managerGroup.PUT("/kiosk-items/:itemId", manager.UpdateKioskItem)
		managerGroup.DELETE("/kiosk-items/:itemId", manager.DeleteKioskItem)

		// Replenishment review
		managerGroup.GET("/purchase-orders", manager.ListPurchaseOrders)
		managerGroup.PATCH("/purchase-orders/:orderId/status", manager.UpdatePurchaseOrderStatus)
		managerGroup.PUT("/purchase-orders/:orderId/items", manager.UpdatePurchaseOrderItems)

		// Reports
		managerGroup.GET("/reports/revenue", manager.GetRevenueReport)
		managerGroup.GET("/reports/item-breakdown", manager.GetItemBreakdown)
		managerGroup.GET("/reports/attendance", manager.GetAttendanceReport)
		managerGroup.GET("/reports/stock-totals", manager.GetStockTotals)
		managerGroup.GET("/reports/wastage", manager.GetWastageReport)
	}
}
