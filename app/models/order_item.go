package models

// OrderItem is a price-snapshot line belonging to exactly one order.
// UnitPrice is written once at order time and never updated, so historical
// totals survive later catalog price changes.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index;not null" json:"order_id"`
	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Quantity  int     `gorm:"default:1" json:"quantity" validate:"gt=0"`
	UnitPrice float64 `json:"unit_price"`
}

func (i *OrderItem) LineTotal() float64 {
	return Round2(i.UnitPrice * float64(i.Quantity))
}
