package models

import "testing"

func TestDeriveStockStatus(t *testing.T) {
	tests := []struct {
		name  string
		stock int
		want  StockStatus
	}{
		{name: "zeroIsOutOfStock", stock: 0, want: StockStatusOut},
		{name: "oneIsLowStock", stock: 1, want: StockStatusLow},
		{name: "nineIsLowStock", stock: 9, want: StockStatusLow},
		{name: "tenIsInStock", stock: 10, want: StockStatusIn},
		{name: "largeIsInStock", stock: 500, want: StockStatusIn},
		{name: "negativeIsOutOfStock", stock: -3, want: StockStatusOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStockStatus(tt.stock); got != tt.want {
				t.Errorf("DeriveStockStatus(%d) = %q, want %q", tt.stock, got, tt.want)
			}
		})
	}
}

func TestValidPurchaseOrderTransition(t *testing.T) {
	tests := []struct {
		name string
		from PurchaseOrderStatus
		to   PurchaseOrderStatus
		want bool
	}{
		{name: "preparingToOutForDelivery", from: PurchaseOrderPreparing, to: PurchaseOrderOutForDelivery, want: true},
		{name: "preparingToRejected", from: PurchaseOrderPreparing, to: PurchaseOrderRejected, want: true},
		{name: "outForDeliveryToDelivered", from: PurchaseOrderOutForDelivery, to: PurchaseOrderDelivered, want: true},
		{name: "preparingToDelivered", from: PurchaseOrderPreparing, to: PurchaseOrderDelivered, want: false},
		{name: "outForDeliveryToRejected", from: PurchaseOrderOutForDelivery, to: PurchaseOrderRejected, want: false},
		{name: "deliveredIsTerminal", from: PurchaseOrderDelivered, to: PurchaseOrderPreparing, want: false},
		{name: "rejectedIsTerminal", from: PurchaseOrderRejected, to: PurchaseOrderOutForDelivery, want: false},
		{name: "noSelfTransition", from: PurchaseOrderPreparing, to: PurchaseOrderPreparing, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidPurchaseOrderTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("ValidPurchaseOrderTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestOrderLineItemsTotal(t *testing.T) {
	items := OrderLineItems{
		{ItemID: 1, ItemName: "Pani Puri", Quantity: 5, UnitPrice: 40},
		{ItemID: 2, ItemName: "Samosa", Quantity: 2, UnitPrice: 25},
	}

	if got, want := items.Total(), 250.0; got != want {
		t.Errorf("Total() = %v, want %v", got, want)
	}

	if got := (OrderLineItems{}).Total(); got != 0 {
		t.Errorf("empty Total() = %v, want 0", got)
	}
}

func TestPurchaseItemsQuantityFor(t *testing.T) {
	items := PurchaseItems{
		{ItemName: "Pani Puri", Quantity: 43},
		{ItemName: "Jalebi", Quantity: 20},
	}

	if got := items.QuantityFor("Pani Puri"); got != 43 {
		t.Errorf("QuantityFor(Pani Puri) = %d, want 43", got)
	}
	if got := items.QuantityFor("Vada Pav"); got != 0 {
		t.Errorf("QuantityFor(Vada Pav) = %d, want 0", got)
	}
}

func TestValidWastageReason(t *testing.T) {
	for _, reason := range []WastageReason{WastageReasonBroken, WastageReasonBadQuality, WastageReasonSomethingElse} {
		if !ValidWastageReason(reason) {
			t.Errorf("ValidWastageReason(%q) = false, want true", reason)
		}
	}
	if ValidWastageReason("Expired") {
		t.Error(`ValidWastageReason("Expired") = true, want false`)
	}
}
