package manager

import (
	"net/http"
	"strconv"
	"testing"

	"chaat-factory-backend/pkg/database"
	"chaat-factory-backend/pkg/models"

	"github.com/gin-gonic/gin"
)

func itemIDParam(id int) gin.Param {
	return gin.Param{Key: "itemId", Value: strconv.Itoa(id)}
}

func TestUpdateKioskItemRecomputesStatus(t *testing.T) {
	setupTestDB(t)
	manager := createManager(t)
	kiosk := createKiosk(t, "Harbor Kiosk")

	item := models.KioskItem{
		KioskID: kiosk.ID, ItemName: "Vada Pav", Stock: 25, Price: 35, Status: models.StockStatusIn,
	}
	database.DB.Create(&item)

	w := performJSON(t, UpdateKioskItem, manager,
		`{"stock":3,"price":38}`, itemIDParam(item.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("UpdateKioskItem status = %d, body %s", w.Code, w.Body.String())
	}

	var updated models.KioskItem
	database.DB.First(&updated, item.ID)
	if updated.Stock != 3 {
		t.Errorf("stock = %d, want 3", updated.Stock)
	}
	if updated.Status != models.StockStatusLow {
		t.Errorf("status = %q, want Low Stock (recomputed)", updated.Status)
	}
	if updated.Price != 38 {
		t.Errorf("price = %v, want 38", updated.Price)
	}

	w = performJSON(t, UpdateKioskItem, manager, `{"stock":0}`, itemIDParam(item.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("second update status = %d, body %s", w.Code, w.Body.String())
	}
	database.DB.First(&updated, item.ID)
	if updated.Status != models.StockStatusOut {
		t.Errorf("status = %q, want Out of Stock", updated.Status)
	}
}

func TestUpdateKioskItemRejectsInvalidValues(t *testing.T) {
	setupTestDB(t)
	manager := createManager(t)
	kiosk := createKiosk(t, "Fort Kiosk")

	item := models.KioskItem{
		KioskID: kiosk.ID, ItemName: "Samosa", Stock: 10, Price: 25, Status: models.StockStatusIn,
	}
	database.DB.Create(&item)

	w := performJSON(t, UpdateKioskItem, manager, `{"stock":-1}`, itemIDParam(item.ID))
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative stock status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	w = performJSON(t, UpdateKioskItem, manager, `{"price":0}`, itemIDParam(item.ID))
	if w.Code != http.StatusBadRequest {
		t.Errorf("zero price status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var unchanged models.KioskItem
	database.DB.First(&unchanged, item.ID)
	if unchanged.Stock != 10 || unchanged.Price != 25 {
		t.Errorf("item = %+v, want untouched", unchanged)
	}
}

func TestDeleteKioskItemRemovesRow(t *testing.T) {
	setupTestDB(t)
	manager := createManager(t)
	kiosk := createKiosk(t, "Plaza Kiosk")

	item := models.KioskItem{
		KioskID: kiosk.ID, ItemName: "Jalebi", Stock: 12, Price: 70, Status: models.StockStatusIn,
	}
	database.DB.Create(&item)

	w := performJSON(t, DeleteKioskItem, manager, ``, itemIDParam(item.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("DeleteKioskItem status = %d, body %s", w.Code, w.Body.String())
	}

	var rowCount int64
	database.DB.Model(&models.KioskItem{}).Count(&rowCount)
	if rowCount != 0 {
		t.Errorf("row count = %d, want 0", rowCount)
	}

	w = performJSON(t, DeleteKioskItem, manager, ``, itemIDParam(item.ID))
	if w.Code != http.StatusNotFound {
		t.Errorf("repeat delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
