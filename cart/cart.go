package cart

import (
	"encoding/json"

	"github.com/papagsgrill/pos-app/models"
)

// Line is one priced, quantified entry in an in-progress cart. Name, unit
// price and option label are captured at add time and never re-read from the
// catalog afterwards.
type Line struct {
	Key         string  `json:"key"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	OptionLabel string  `json:"option_label,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

// Cart accumulates a customer's selections before checkout. It is a plain
// value type; persistence happens around it (models.CartRecord).
type Cart struct {
	Lines []Line `json:"lines"`
}

// LineKey derives the merge key for an item/option pair. Items with no
// catalog code fall back to their name so they still merge correctly.
func LineKey(item *models.Menu, opt *models.MenuOption) string {
	id := item.Code
	if id == "" {
		id = item.Name
	}
	if opt != nil {
		return id + "|" + opt.Label
	}
	return id + "|base"
}

// AddLine records one more of the given item. Repeated adds of the same
// item/option pair increment quantity instead of duplicating the line.
// It never fails: an item with neither base price nor options prices at 0,
// which is a catalog data-quality problem, not a cart error.
func (c *Cart) AddLine(item *models.Menu, opt *models.MenuOption) {
	var price float64
	var label string
	if opt != nil {
		price = opt.Price
		label = opt.Label
	} else if item.BasePrice != nil {
		price = *item.BasePrice
	}

	key := LineKey(item, opt)
	for i := range c.Lines {
		if c.Lines[i].Key == key {
			c.Lines[i].Quantity++
			return
		}
	}

	c.Lines = append(c.Lines, Line{
		Key:         key,
		Code:        item.Code,
		Name:        item.Name,
		OptionLabel: label,
		UnitPrice:   price,
		Quantity:    1,
	})
}

// ChangeQuantity adjusts a line's quantity by delta, clamping at zero.
// A line that reaches zero is removed, never kept as a zero-quantity row.
// Returns false when no line with the key exists.
func (c *Cart) ChangeQuantity(key string, delta int) bool {
	for i := range c.Lines {
		if c.Lines[i].Key != key {
			continue
		}
		qty := c.Lines[i].Quantity + delta
		if qty <= 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		} else {
			c.Lines[i].Quantity = qty
		}
		return true
	}
	return false
}

// RemoveLine drops a line unconditionally.
func (c *Cart) RemoveLine(key string) {
	for i := range c.Lines {
		if c.Lines[i].Key == key {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Subtotal sums unit price times quantity over all lines. Values stay exact;
// two-decimal formatting is a render-time concern.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}

// ItemCount is the total quantity across all lines.
func (c *Cart) ItemCount() int {
	var n int
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Clear drops every line.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Encode serializes the cart for persistence.
func (c *Cart) Encode() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode rebuilds a cart from a persisted payload. A malformed payload
// hydrates an empty cart: a lost cached cart is an acceptable degradation,
// not a failure.
func Decode(payload string) Cart {
	var c Cart
	if payload == "" {
		return c
	}
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return Cart{}
	}
	// Drop rows a buggy client may have persisted with qty <= 0.
	valid := c.Lines[:0]
	for _, l := range c.Lines {
		if l.Quantity > 0 {
			valid = append(valid, l)
		}
	}
	c.Lines = valid
	return c
}
