package models

import (
	"fmt"
	"strings"
	"time"
)

// Menu is one sellable catalog item. Pricing is exactly one of two modes:
// a single BasePrice, or a non-empty Options list. Never both, never neither.
type Menu struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	CategoryID  uint         `gorm:"not null;index" json:"category_id"`
	Category    MenuCategory `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Code        string       `gorm:"type:varchar(10);index" json:"code"`
	Name        string       `gorm:"type:varchar(255);not null" json:"name"`
	Description string       `gorm:"type:text" json:"description,omitempty"`
	Badges      string       `gorm:"type:varchar(255)" json:"badges,omitempty"`
	BasePrice   *float64     `gorm:"type:decimal(10,2)" json:"base_price,omitempty"`
	Available   bool         `gorm:"not null;default:true" json:"available"`
	Options     []MenuOption `gorm:"foreignKey:MenuID" json:"options,omitempty"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updated_at"`
}

// Validate enforces the pricing-mode invariant at the ingestion boundary.
func (m *Menu) Validate() error {
	hasBase := m.BasePrice != nil
	hasOptions := len(m.Options) > 0

	if hasBase && hasOptions {
		return fmt.Errorf("menu %q has both a base price and options", m.Name)
	}
	if !hasBase && !hasOptions {
		return fmt.Errorf("menu %q has neither a base price nor options", m.Name)
	}
	return nil
}

// BadgeList splits the stored badge string into display tags.
func (m *Menu) BadgeList() []string {
	if m.Badges == "" {
		return nil
	}
	parts := strings.Split(m.Badges, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// OptionByID returns the option with the given id, or nil.
func (m *Menu) OptionByID(id uint) *MenuOption {
	for i := range m.Options {
		if m.Options[i].ID == id {
			return &m.Options[i]
		}
	}
	return nil
}
