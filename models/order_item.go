package models

import "time"

// OrderItem is a denormalized line snapshot captured from the cart at
// submit time. It carries no menu foreign key on purpose: later catalog
// edits must not change what a past order says it sold.
type OrderItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	Order       Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Code        string    `gorm:"type:varchar(10)" json:"code"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	OptionLabel string    `gorm:"type:varchar(100)" json:"option_label,omitempty"`
	UnitPrice   float64   `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

// LineTotal is the snapshot price times quantity.
func (i *OrderItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
