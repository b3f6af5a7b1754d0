package manager

import (
	"net/http"
	"strings"
	"time"

	"chaat-factory-backend/pkg/database"
	"chaat-factory-backend/pkg/models"

	"github.com/gin-gonic/gin"
)

// reportDate resolves the requested calendar date, defaulting to today.
func reportDate(c *gin.Context) (string, bool) {
	dateStr := c.Query("date")
	if dateStr == "" {
		return time.Now().Format("2006-01-02"), true
	}
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return "", false
	}
	return dateStr, true
}

// GetRevenueReport returns per-kiosk revenue for a date
func GetRevenueReport(c *gin.Context) {
	date, ok := reportDate(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Date must be YYYY-MM-DD"})
		return
	}

	type kioskRevenue struct {
		KioskID    int     `json:"kioskId"`
		Revenue    float64 `json:"revenue"`
		OrderCount int     `json:"orderCount"`
	}

	var rows []kioskRevenue
	if err := database.DB.Model(&models.Order{}).
		Select("kiosk_id, SUM(total) AS revenue, COUNT(*) AS order_count").
		Where("order_date = ?", date).
		Group("kiosk_id").
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	kioskNames := kioskNameMap()

	result := make([]gin.H, 0, len(rows))
	var total float64
	for _, row := range rows {
		total += row.Revenue
		result = append(result, gin.H{
			"kioskId":    row.KioskID,
			"kioskName":  kioskNames[row.KioskID],
			"revenue":    row.Revenue,
			"orderCount": row.OrderCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         date,
		"totalRevenue": total,
		"kiosks":       result,
	})
}

// GetItemBreakdown flattens every order's line items for a date, paired
// with payment method and time
func GetItemBreakdown(c *gin.Context) {
	date, ok := reportDate(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Date must be YYYY-MM-DD"})
		return
	}

	var orders []models.Order
	if err := database.DB.Where("order_date = ?", date).Order("created_at ASC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	kioskNames := kioskNameMap()

	type itemTotal struct {
		Quantity int     `json:"quantity"`
		Revenue  float64 `json:"revenue"`
	}

	lines := make([]gin.H, 0)
	totals := make(map[string]*itemTotal)
	for _, order := range orders {
		for _, line := range order.Items {
			lines = append(lines, gin.H{
				"kioskId":       order.KioskID,
				"kioskName":     kioskNames[order.KioskID],
				"itemName":      line.ItemName,
				"quantity":      line.Quantity,
				"unitPrice":     line.UnitPrice,
				"subtotal":      float64(line.Quantity) * line.UnitPrice,
				"paymentMethod": order.PaymentMethod,
				"time":          order.CreatedAt,
			})

			key := strings.ToLower(line.ItemName)
			if totals[key] == nil {
				totals[key] = &itemTotal{}
			}
			totals[key].Quantity += line.Quantity
			totals[key].Revenue += float64(line.Quantity) * line.UnitPrice
		}
	}

	itemTotals := make(map[string]itemTotal, len(totals))
	for name, t := range totals {
		itemTotals[name] = *t
	}

	c.JSON(http.StatusOK, gin.H{
		"date":       date,
		"lines":      lines,
		"itemTotals": itemTotals,
	})
}

// GetAttendanceReport returns each kiosk's clock-in/out for a date:
// earliest in, latest out
func GetAttendanceReport(c *gin.Context) {
	date, ok := reportDate(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Date must be YYYY-MM-DD"})
		return
	}

	var logs []models.ClockLog
	if err := database.DB.Where("log_date = ?", date).Order("created_at ASC").Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	type attendance struct {
		ClockIn  *models.ClockLog
		ClockOut *models.ClockLog
	}

	perKiosk := make(map[int]*attendance)
	for i := range logs {
		logEntry := &logs[i]
		entry := perKiosk[logEntry.KioskID]
		if entry == nil {
			entry = &attendance{}
			perKiosk[logEntry.KioskID] = entry
		}
		switch logEntry.Type {
		case models.ClockTypeIn:
			// Earliest in wins; logs are ordered ascending
			if entry.ClockIn == nil {
				entry.ClockIn = logEntry
			}
		case models.ClockTypeOut:
			// Latest out wins
			entry.ClockOut = logEntry
		}
	}

	kioskNames := kioskNameMap()

	result := make([]gin.H, 0, len(perKiosk))
	for kioskID, entry := range perKiosk {
		row := gin.H{
			"kioskId":   kioskID,
			"kioskName": kioskNames[kioskID],
		}
		if entry.ClockIn != nil {
			row["clockIn"] = entry.ClockIn.CreatedAt
			row["clockInPhoto"] = entry.ClockIn.PhotoURL
		}
		if entry.ClockOut != nil {
			row["clockOut"] = entry.ClockOut.CreatedAt
			row["clockOutPhoto"] = entry.ClockOut.PhotoURL
		}
		result = append(result, row)
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "attendance": result})
}

// GetStockTotals returns per-item stock summed across all kiosks, with a
// per-kiosk breakdown
func GetStockTotals(c *gin.Context) {
	var items []models.KioskItem
	if err := database.DB.Order("item_name ASC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	kioskNames := kioskNameMap()

	type stockEntry struct {
		Name       string
		TotalStock int
		Breakdown  []gin.H
	}

	order := []string{}
	perItem := make(map[string]*stockEntry)
	for _, item := range items {
		key := strings.ToLower(item.ItemName)
		entry := perItem[key]
		if entry == nil {
			entry = &stockEntry{Name: item.ItemName}
			perItem[key] = entry
			order = append(order, key)
		}
		entry.TotalStock += item.Stock
		entry.Breakdown = append(entry.Breakdown, gin.H{
			"kioskId":   item.KioskID,
			"kioskName": kioskNames[item.KioskID],
			"stock":     item.Stock,
			"status":    item.Status,
		})
	}

	result := make([]gin.H, 0, len(order))
	for _, key := range order {
		entry := perItem[key]
		result = append(result, gin.H{
			"itemName":   entry.Name,
			"totalStock": entry.TotalStock,
			"kiosks":     entry.Breakdown,
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": result})
}

// GetWastageReport returns wastage records and per-item totals for a date
func GetWastageReport(c *gin.Context) {
	date, ok := reportDate(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Date must be YYYY-MM-DD"})
		return
	}

	var records []models.WastageRecord
	if err := database.DB.
		Where("log_date = ?", date).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	totals := make(map[string]int)
	for _, record := range records {
		totals[strings.ToLower(record.ItemName)] += record.Quantity
	}

	c.JSON(http.StatusOK, gin.H{
		"date":       date,
		"records":    records,
		"itemTotals": totals,
	})
}

// kioskNameMap returns kiosk display names keyed by profile ID
func kioskNameMap() map[int]string {
	var kiosks []models.Profile
	database.DB.Where("role = ?", models.RoleKiosk).Find(&kiosks)

	names := make(map[int]string, len(kiosks))
	for _, kiosk := range kiosks {
		if kiosk.KioskName != nil {
			names[kiosk.ID] = *kiosk.KioskName
		} else {
			names[kiosk.ID] = kiosk.Name
		}
	}
	return names
}
