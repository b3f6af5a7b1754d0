package models

// MenuItem is one entry of the predefined menu.
type MenuItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// PredefinedMenu is the fixed item list every kiosk displays. Items without
// a real kiosk_items row are overlaid as stock-0 / Out of Stock placeholders
// until inventory is allocated under that name.
var PredefinedMenu = []MenuItem{
	{Name: "Pani Puri", Price: 40},
	{Name: "Bhel Puri", Price: 50},
	{Name: "Sev Puri", Price: 55},
	{Name: "Dahi Puri", Price: 60},
	{Name: "Pav Bhaji", Price: 90},
	{Name: "Vada Pav", Price: 35},
	{Name: "Samosa", Price: 25},
	{Name: "Jalebi", Price: 70},
	{Name: "Gulab Jamun", Price: 120},
	{Name: "Masala Chaas", Price: 30},
}
