package kiosk

import (
	"net/http"
	"testing"

	"chaat-factory-backend/pkg/database"
	"chaat-factory-backend/pkg/models"

	"github.com/google/uuid"
)

func TestDirectWastageDecrementsStock(t *testing.T) {
	setupTestDB(t)
	kiosk := createKiosk(t, "Beach Kiosk")

	item := models.KioskItem{KioskID: kiosk.ID, ItemName: "Pav Bhaji", Stock: 20, Price: 90, Status: models.StockStatusIn}
	database.DB.Create(&item)

	w := performJSON(t, CreateWastage, kiosk,
		`{"itemName":"Pav Bhaji","quantity":4,"reason":"Bad Quality"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("CreateWastage status = %d, body %s", w.Code, w.Body.String())
	}

	var updated models.KioskItem
	database.DB.First(&updated, item.ID)
	if updated.Stock != 16 {
		t.Errorf("post-wastage stock = %d, want 16", updated.Stock)
	}

	var record models.WastageRecord
	if err := database.DB.Where("kiosk_id = ?", kiosk.ID).First(&record).Error; err != nil {
		t.Fatalf("wastage record not found: %v", err)
	}
	if record.OrderRef != models.DirectWastageRef {
		t.Errorf("order ref = %q, want sentinel %q", record.OrderRef, models.DirectWastageRef)
	}
}

func TestDirectWastageRejectsQuantityOverStock(t *testing.T) {
	setupTestDB(t)
	kiosk := createKiosk(t, "Bridge Kiosk")

	item := models.KioskItem{KioskID: kiosk.ID, ItemName: "Sev Puri", Stock: 5, Price: 55, Status: models.StockStatusLow}
	database.DB.Create(&item)

	w := performJSON(t, CreateWastage, kiosk,
		`{"itemName":"Sev Puri","quantity":8,"reason":"Broken"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("CreateWastage status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var unchanged models.KioskItem
	database.DB.First(&unchanged, item.ID)
	if unchanged.Stock != 5 {
		t.Errorf("stock after rejected wastage = %d, want 5", unchanged.Stock)
	}
}

func TestOrderLinkedWastageClampsStockAtZero(t *testing.T) {
	setupTestDB(t)
	kiosk := createKiosk(t, "Park Kiosk")

	item := models.KioskItem{KioskID: kiosk.ID, ItemName: "Gulab Jamun", Stock: 10, Price: 120, Status: models.StockStatusIn}
	database.DB.Create(&item)

	orderRef := uuid.NewString()
	order := models.Order{
		OrderRef:      orderRef,
		KioskID:       kiosk.ID,
		Items:         models.OrderLineItems{{ItemID: item.ID, ItemName: "Gulab Jamun", Quantity: 15, UnitPrice: 120}},
		Total:         1800,
		PaymentMethod: models.PaymentMethodUPI,
		OrderDate:     "2026-08-25",
	}
	database.DB.Create(&order)

	// Order-linked wastage skips the stock precheck and relies on the clamp
	w := performJSON(t, CreateWastage, kiosk,
		`{"itemName":"Gulab Jamun","quantity":15,"reason":"Something Else","orderRef":"`+orderRef+`"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("CreateWastage status = %d, body %s", w.Code, w.Body.String())
	}

	var updated models.KioskItem
	database.DB.First(&updated, item.ID)
	if updated.Stock != 0 {
		t.Errorf("clamped stock = %d, want 0", updated.Stock)
	}
	if updated.Status != models.StockStatusOut {
		t.Errorf("clamped status = %q, want %q", updated.Status, models.StockStatusOut)
	}

	// The linked order's recorded lines and total are untouched
	var after models.Order
	database.DB.Where("order_ref = ?", orderRef).First(&after)
	if after.Total != 1800 {
		t.Errorf("order total after wastage = %v, want 1800", after.Total)
	}
}

func TestWastageRejectsUnknownReasonAndForeignOrder(t *testing.T) {
	setupTestDB(t)
	kiosk := createKiosk(t, "Mall Kiosk")
	other := createKiosk(t, "Other Kiosk")

	item := models.KioskItem{KioskID: kiosk.ID, ItemName: "Masala Chaas", Stock: 12, Price: 30, Status: models.StockStatusIn}
	database.DB.Create(&item)

	w := performJSON(t, CreateWastage, kiosk,
		`{"itemName":"Masala Chaas","quantity":2,"reason":"Expired"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown reason status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	// An order belonging to another kiosk is invisible to this one
	foreignRef := uuid.NewString()
	database.DB.Create(&models.Order{
		OrderRef:      foreignRef,
		KioskID:       other.ID,
		Items:         models.OrderLineItems{{ItemName: "Masala Chaas", Quantity: 1, UnitPrice: 30}},
		Total:         30,
		PaymentMethod: models.PaymentMethodCash,
		OrderDate:     "2026-08-25",
	})

	w = performJSON(t, CreateWastage, kiosk,
		`{"itemName":"Masala Chaas","quantity":2,"reason":"Broken","orderRef":"`+foreignRef+`"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign order status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
