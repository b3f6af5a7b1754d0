package models

// Role enum
type Role string

const (
	RoleManager Role = "MANAGER"
	RoleKiosk   Role = "KIOSK"
)

// StockStatus enum - labels are part of the API surface, kept verbatim
type StockStatus string

const (
	StockStatusIn  StockStatus = "In Stock"
	StockStatusLow StockStatus = "Low Stock"
	StockStatusOut StockStatus = "Out of Stock"
)

// PaymentMethod enum
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "Cash"
	PaymentMethodUPI  PaymentMethod = "UPI"
)

// PurchaseOrderStatus enum
type PurchaseOrderStatus string

const (
	PurchaseOrderPreparing      PurchaseOrderStatus = "Preparing"
	PurchaseOrderOutForDelivery PurchaseOrderStatus = "Out for Delivery"
	PurchaseOrderDelivered      PurchaseOrderStatus = "Delivered"
	PurchaseOrderRejected       PurchaseOrderStatus = "Rejected"
)

// ClockType enum
type ClockType string

const (
	ClockTypeIn  ClockType = "in"
	ClockTypeOut ClockType = "out"
)

// WastageReason enum
type WastageReason string

const (
	WastageReasonBroken        WastageReason = "Broken"
	WastageReasonBadQuality    WastageReason = "Bad Quality"
	WastageReasonSomethingElse WastageReason = "Something Else"
)

const (
	// LowStockThreshold is the stock level below which a kiosk item is
	// flagged Low Stock and a replenishment request is raised.
	LowStockThreshold = 10

	// RestockCeiling is the target stock level a replenishment request
	// tops an item back up to.
	RestockCeiling = 50
)

// DeriveStockStatus maps a stock count to its status label. Status is never
// stored independently of stock; every stock write recomputes it here.
func DeriveStockStatus(stock int) StockStatus {
	switch {
	case stock <= 0:
		return StockStatusOut
	case stock < LowStockThreshold:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}

// ValidPurchaseOrderTransition reports whether a status change follows the
// replenishment state graph: Preparing -> Out for Delivery -> Delivered,
// with Rejected reachable only from Preparing.
func ValidPurchaseOrderTransition(from, to PurchaseOrderStatus) bool {
	switch from {
	case PurchaseOrderPreparing:
		return to == PurchaseOrderOutForDelivery || to == PurchaseOrderRejected
	case PurchaseOrderOutForDelivery:
		return to == PurchaseOrderDelivered
	}
	return false
}

// ValidWastageReason reports whether the reason is one of the enumerated set.
func ValidWastageReason(r WastageReason) bool {
	switch r {
	case WastageReasonBroken, WastageReasonBadQuality, WastageReasonSomethingElse:
		return true
	}
	return false
}
