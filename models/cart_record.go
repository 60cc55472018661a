package models

import "time"

// CartRecord persists a device's in-progress cart as a JSON blob keyed by an
// opaque session id, so a reload does not lose selections. Losing a record is
// a cache miss, not an error: the client simply starts with an empty cart.
type CartRecord struct {
	SessionID string    `gorm:"type:varchar(36);primaryKey" json:"session_id"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
