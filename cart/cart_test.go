package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/papagsgrill/pos-app/models"
)

func floatPtr(v float64) *float64 { return &v }

func testMenu() *models.Menu {
	return &models.Menu{
		ID:        1,
		Code:      "G1",
		Name:      "Hungarian",
		BasePrice: floatPtr(95),
	}
}

func testMenuWithOptions() *models.Menu {
	return &models.Menu{
		ID:   2,
		Code: "F1",
		Name: "Garlic Butter Shrimp",
		Options: []models.MenuOption{
			{ID: 10, MenuID: 2, Label: "S", Price: 260},
			{ID: 11, MenuID: 2, Label: "M", Price: 510},
		},
	}
}

func TestAddLineAccumulates(t *testing.T) {
	var c Cart
	item := testMenu()

	for i := 0; i < 5; i++ {
		c.AddLine(item, nil)
	}

	assert.Len(t, c.Lines, 1)
	assert.Equal(t, 5, c.Lines[0].Quantity)
	assert.Equal(t, 95.0, c.Lines[0].UnitPrice)
}

func TestAddLineSeparatesOptions(t *testing.T) {
	var c Cart
	item := testMenuWithOptions()

	c.AddLine(item, &item.Options[0])
	c.AddLine(item, &item.Options[1])
	c.AddLine(item, &item.Options[0])

	assert.Len(t, c.Lines, 2)
	assert.Equal(t, 2, c.Lines[0].Quantity)
	assert.Equal(t, "S", c.Lines[0].OptionLabel)
	assert.Equal(t, 1, c.Lines[1].Quantity)
	assert.Equal(t, "M", c.Lines[1].OptionLabel)
}

func TestAddLineWithoutPricing(t *testing.T) {
	var c Cart
	// Neither base price nor options: prices at 0, never errors.
	c.AddLine(&models.Menu{Name: "Mystery Dish"}, nil)

	assert.Len(t, c.Lines, 1)
	assert.Equal(t, 0.0, c.Lines[0].UnitPrice)
	assert.Equal(t, 0.0, c.Subtotal())
}

func TestSubtotal(t *testing.T) {
	var c Cart
	base := testMenu()
	opts := testMenuWithOptions()

	c.AddLine(base, nil)
	c.AddLine(base, nil)
	c.AddLine(opts, &opts.Options[1])

	// 2x95 + 1x510
	assert.Equal(t, 700.0, c.Subtotal())
	assert.Equal(t, 3, c.ItemCount())
}

func TestChangeQuantityClampsAndPrunes(t *testing.T) {
	var c Cart
	item := testMenu()
	c.AddLine(item, nil)
	c.AddLine(item, nil)
	key := c.Lines[0].Key

	ok := c.ChangeQuantity(key, -1)
	assert.True(t, ok)
	assert.Equal(t, 1, c.Lines[0].Quantity)

	// Dropping past zero removes the line entirely.
	ok = c.ChangeQuantity(key, -5)
	assert.True(t, ok)
	assert.True(t, c.Empty())

	// No zero-quantity rows ever survive.
	for _, l := range c.Lines {
		assert.Greater(t, l.Quantity, 0)
	}

	assert.False(t, c.ChangeQuantity("nope|base", 1))
}

func TestRemoveLine(t *testing.T) {
	var c Cart
	base := testMenu()
	opts := testMenuWithOptions()
	c.AddLine(base, nil)
	c.AddLine(opts, &opts.Options[0])

	c.RemoveLine(LineKey(base, nil))
	assert.Len(t, c.Lines, 1)
	assert.Equal(t, "F1", c.Lines[0].Code)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var c Cart
	item := testMenu()
	c.AddLine(item, nil)
	c.AddLine(item, nil)

	payload, err := c.Encode()
	assert.NoError(t, err)

	restored := Decode(payload)
	assert.Equal(t, c.Lines, restored.Lines)
	assert.Equal(t, 190.0, restored.Subtotal())
}

func TestDecodeMalformedPayload(t *testing.T) {
	c := Decode("{not json")
	assert.True(t, c.Empty())

	c = Decode("")
	assert.True(t, c.Empty())

	// Persisted zero-quantity rows are pruned on hydrate.
	c = Decode(`{"lines":[{"key":"G1|base","code":"G1","name":"Hungarian","unit_price":95,"quantity":0}]}`)
	assert.True(t, c.Empty())
}

// Scenario: add G1 (base 95) twice, check the submitted shape.
func TestTakeoutScenario(t *testing.T) {
	var c Cart
	item := testMenu()
	c.AddLine(item, nil)
	c.AddLine(item, nil)

	assert.Len(t, c.Lines, 1)
	assert.Equal(t, "G1", c.Lines[0].Code)
	assert.Equal(t, 2, c.Lines[0].Quantity)
	assert.Equal(t, 95.0, c.Lines[0].UnitPrice)
	assert.Equal(t, 190.0, c.Subtotal())
}
