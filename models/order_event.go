package models

import "time"

// Order event actions.
const (
	EventActionInsert = "INSERT"
	EventActionUpdate = "UPDATE"
	EventActionDelete = "DELETE"
)

// OrderEvent is the feed outbox. A row is written in the same transaction as
// the order mutation it describes, then relayed to websocket clients and
// marked processed by the order monitor.
type OrderEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	Action    string    `gorm:"type:varchar(10);not null;index" json:"action"`
	ChangedAt time.Time `gorm:"not null" json:"changed_at"`
	Processed bool      `gorm:"not null;default:false;index" json:"processed"`
}
