package models

import (
	"fmt"
	"time"
)

// Order is the durable unit of work created at checkout. The item snapshot
// and pricing fields are written once at creation; only Status, PaymentStatus
// and UpdatedAt change afterwards.
type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Code          string        `gorm:"type:varchar(36);not null;uniqueIndex" json:"code"`
	CustomerName  string        `gorm:"type:varchar(100)" json:"customer_name"`
	OrderType     OrderType     `gorm:"type:varchar(20);not null" json:"order_type"`
	TableNumber   string        `gorm:"type:varchar(20)" json:"table_number,omitempty"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID" json:"items"`
	Subtotal      float64       `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Tax           float64       `gorm:"type:decimal(10,2);not null;default:0.00" json:"tax"`
	Total         float64       `gorm:"type:decimal(10,2);not null" json:"total"`
	PaymentMethod string        `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	Status        OrderStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt     time.Time     `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null" json:"updated_at"`
}

// Age renders how long ago the order was created, dashboard style.
func (o *Order) Age(now time.Time) string {
	minutes := int(now.Sub(o.CreatedAt).Minutes())
	switch {
	case minutes < 1:
		return "Just now"
	case minutes == 1:
		return "1 min ago"
	case minutes < 60:
		return fmt.Sprintf("%d mins ago", minutes)
	}
	hours := minutes / 60
	if hours == 1 {
		return "1 hour ago"
	}
	return fmt.Sprintf("%d hours ago", hours)
}

// CreatedToday reports whether the order was created on the same calendar
// day as now, in now's location.
func (o *Order) CreatedToday(now time.Time) bool {
	y1, m1, d1 := o.CreatedAt.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
