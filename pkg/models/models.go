package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Profile model - one row per account (single manager, many kiosks)
type Profile struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Name      string    `gorm:"not null" json:"name"`
	Password  *string   `json:"-"` // Don't expose password in JSON
	Role      Role      `gorm:"type:text;not null" json:"role"`
	KioskName *string   `json:"kioskName"` // Display name, kiosk role only
	ImageURL  *string   `json:"imageUrl"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	// Manager 2FA
	TwoFactorSecret    *string    `json:"-"`
	TwoFactorEnabled   bool       `gorm:"default:false" json:"twoFactorEnabled"`
	TwoFactorEnabledAt *time.Time `json:"twoFactorEnabledAt"`

	// Relationships
	KioskItems     []KioskItem     `gorm:"foreignKey:KioskID" json:"kioskItems,omitempty"`
	Orders         []Order         `gorm:"foreignKey:KioskID" json:"orders,omitempty"`
	PurchaseOrders []PurchaseOrder `gorm:"foreignKey:KioskID" json:"purchaseOrders,omitempty"`
	ClockLogs      []ClockLog      `gorm:"foreignKey:KioskID" json:"clockLogs,omitempty"`
	WastageRecords []WastageRecord `gorm:"foreignKey:KioskID" json:"wastageRecords,omitempty"`
}

func (Profile) TableName() string {
	return "profiles"
}

// FactoryItem model - the manager-owned master catalog
type FactoryItem struct {
	ID        int         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string      `gorm:"unique;not null" json:"name"`
	Price     float64     `gorm:"not null" json:"price"`
	Stock     int         `gorm:"not null;default:0" json:"stock"` // Ignored under the unlimited policy
	Status    StockStatus `gorm:"type:text;not null" json:"status"`
	ImageURL  *string     `json:"imageUrl"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (FactoryItem) TableName() string {
	return "factory_items"
}

// KioskItem model - a kiosk's own stock ledger per item
type KioskItem struct {
	ID        int         `gorm:"primaryKey;autoIncrement" json:"id"`
	KioskID   int         `gorm:"not null;index" json:"kioskId"`
	ItemName  string      `gorm:"not null" json:"itemName"`
	Stock     int         `gorm:"not null;default:0" json:"stock"`
	Price     float64     `gorm:"not null" json:"price"`
	Status    StockStatus `gorm:"type:text;not null" json:"status"`
	ImageURL  *string     `json:"imageUrl"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`

	Kiosk Profile `gorm:"foreignKey:KioskID;references:ID" json:"kiosk,omitempty"`
}

func (KioskItem) TableName() string {
	return "kiosk_items"
}

// OrderLineItem is a cart line frozen into an order by value, so later
// catalog edits never rewrite order history.
type OrderLineItem struct {
	ItemID    int     `json:"itemId"`
	ItemName  string  `json:"itemName"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// OrderLineItems is stored as a single jsonb column.
type OrderLineItems []OrderLineItem

func (l OrderLineItems) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *OrderLineItems) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	}
	return fmt.Errorf("unsupported type %T for OrderLineItems", value)
}

// Total sums quantity x unit price over the line items.
func (l OrderLineItems) Total() float64 {
	var total float64
	for _, item := range l {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}

// Order model - a completed sale, immutable after insert
type Order struct {
	ID            int            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderRef      string         `gorm:"type:uuid;unique;not null" json:"orderRef"`
	KioskID       int            `gorm:"not null;index" json:"kioskId"`
	Items         OrderLineItems `gorm:"type:jsonb;not null" json:"items"`
	Total         float64        `gorm:"not null" json:"total"`
	PaymentMethod PaymentMethod  `gorm:"type:text;not null" json:"paymentMethod"`
	OrderDate     string         `gorm:"not null;index" json:"orderDate"` // YYYY-MM-DD, for "today" filtering
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"createdAt"`

	Kiosk Profile `gorm:"foreignKey:KioskID;references:ID" json:"kiosk,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// PurchaseItem is one requested line of a replenishment order.
type PurchaseItem struct {
	ItemName string `json:"itemName"`
	Quantity int    `json:"quantity"`
}

// PurchaseItems is stored as a single jsonb column.
type PurchaseItems []PurchaseItem

func (p PurchaseItems) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *PurchaseItems) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = nil
		return nil
	}
	return fmt.Errorf("unsupported type %T for PurchaseItems", value)
}

// QuantityFor returns the requested quantity for an item name, 0 if absent.
func (p PurchaseItems) QuantityFor(name string) int {
	for _, item := range p {
		if item.ItemName == name {
			return item.Quantity
		}
	}
	return 0
}

// PurchaseOrder model - a replenishment request against the factory.
// AppliedItems records the quantities already pushed into the kiosk catalog
// so that re-saving an edited order allocates only the delta.
type PurchaseOrder struct {
	ID           int                 `gorm:"primaryKey;autoIncrement" json:"id"`
	KioskID      int                 `gorm:"not null;index" json:"kioskId"`
	Items        PurchaseItems       `gorm:"type:jsonb;not null" json:"items"`
	AppliedItems PurchaseItems       `gorm:"type:jsonb" json:"appliedItems"`
	Status       PurchaseOrderStatus `gorm:"type:text;not null;default:'Preparing'" json:"status"`
	CreatedAt    time.Time           `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time           `gorm:"autoUpdateTime" json:"updatedAt"`

	Kiosk Profile `gorm:"foreignKey:KioskID;references:ID" json:"kiosk,omitempty"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// ClockLog model - a single attendance event, append-only
type ClockLog struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	KioskID   int       `gorm:"not null;index" json:"kioskId"`
	Type      ClockType `gorm:"type:text;not null" json:"type"`
	PhotoURL  *string   `json:"photoUrl"`
	LogDate   string    `gorm:"not null;index" json:"logDate"` // YYYY-MM-DD
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	Kiosk Profile `gorm:"foreignKey:KioskID;references:ID" json:"kiosk,omitempty"`
}

func (ClockLog) TableName() string {
	return "clock_logs"
}

// DirectWastageRef is the sentinel order reference for wastage entered
// directly against inventory rather than against a past order.
const DirectWastageRef = "00000000-0000-0000-0000-000000000000"

// WastageRecord model - recorded stock loss, append-only
type WastageRecord struct {
	ID        int           `gorm:"primaryKey;autoIncrement" json:"id"`
	KioskID   int           `gorm:"not null;index" json:"kioskId"`
	OrderRef  string        `gorm:"type:uuid;not null" json:"orderRef"`
	ItemName  string        `gorm:"not null" json:"itemName"`
	Quantity  int           `gorm:"not null" json:"quantity"`
	Reason    WastageReason `gorm:"type:text;not null" json:"reason"`
	LogDate   string        `gorm:"not null;index" json:"logDate"` // YYYY-MM-DD
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"createdAt"`

	Kiosk Profile `gorm:"foreignKey:KioskID;references:ID" json:"kiosk,omitempty"`
}

func (WastageRecord) TableName() string {
	return "wastage_records"
}
