package routes

import (
	"chaat-factory-backend/pkg/controllers/kiosk"
	"chaat-factory-backend/pkg/middleware"
	"chaat-factory-backend/pkg/models"

	"github.com/gin-gonic/gin"
)

// RegisterKioskRoutes registers all kiosk-facing API routes
func RegisterKioskRoutes(router *gin.RouterGroup) {
	kioskGroup := router.Group("/kiosk")
	kioskGroup.Use(middleware.AuthenticateToken(), middleware.AuthorizeRoles(models.RoleKiosk))
	{
		// Catalog
		kioskGroup.GET("/catalog", kiosk.GetCatalog)

		// Sales
		kioskGroup.POST("/orders", kiosk.CreateOrder)
		kioskGroup.GET("/orders", kiosk.GetOrders)

		// Replenishment
		kioskGroup.GET("/purchase-orders", kiosk.ListPurchaseOrders)
		kioskGroup.POST("/purchase-orders", kiosk.CreatePurchaseOrder)

		// Attendance
		kioskGroup.POST("/attendance/clock", kiosk.ClockEvent)
		kioskGroup.GET("/attendance/today", kiosk.GetTodayAttendance)

		// Wastage
		kioskGroup.POST("/wastage", kiosk.CreateWastage)
		kioskGroup.GET("/wastage", kiosk.ListWastage)
	}
}
