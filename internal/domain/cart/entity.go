package cart

import (
	"time"

	"github.com/google/uuid"
)

type Line struct {
	productID      uuid.UUID
	variantID      *string
	name           string
	unitPriceCents int64
	quantity       int
}

func NewLine(productID uuid.UUID, variantID *string, name string, unitPriceCents int64, quantity int) (Line, error) {
	if quantity <= 0 {
		return Line{}, ErrInvalidQuantity
	}
	if unitPriceCents < 0 {
		return Line{}, ErrInvalidUnitPrice
	}
	return Line{
		productID:      productID,
		variantID:      variantID,
		name:           name,
		unitPriceCents: unitPriceCents,
		quantity:       quantity,
	}, nil
}

func (l Line) Key() LineKey {
	return LineKey{ProductID: l.productID, VariantID: l.variantID}
}

func (l Line) ProductID() uuid.UUID  { return l.productID }
func (l Line) VariantID() *string    { return l.variantID }
func (l Line) Name() string          { return l.name }
func (l Line) UnitPriceCents() int64 { return l.unitPriceCents }
func (l Line) Quantity() int         { return l.quantity }

func (l Line) TotalCents() int64 {
	return l.unitPriceCents * int64(l.quantity)
}

type Cart struct {
	identity  Identity
	lines     []Line
	updatedAt time.Time
}

func NewCart(identity Identity) *Cart {
	return &Cart{identity: identity}
}

// RestoreCart rebuilds a cart from its stored representation.
func RestoreCart(identity Identity, lines []Line, updatedAt time.Time) *Cart {
	return &Cart{identity: identity, lines: lines, updatedAt: updatedAt}
}

func (c *Cart) Identity() Identity   { return c.identity }
func (c *Cart) Lines() []Line        { return c.lines }
func (c *Cart) UpdatedAt() time.Time { return c.updatedAt }

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) SubtotalCents() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.TotalCents()
	}
	return total
}

// AddLine merges quantity into an existing line for the same product and
// variant, keeping the price captured when the line was first added.
func (c *Cart) AddLine(line Line, now time.Time) {
	for i, existing := range c.lines {
		if existing.Key().Equal(line.Key()) {
			c.lines[i].quantity += line.quantity
			c.updatedAt = now
			return
		}
	}
	c.lines = append(c.lines, line)
	c.updatedAt = now
}

// UpdateQuantity sets the quantity of a line. Zero removes the line.
func (c *Cart) UpdateQuantity(key LineKey, quantity int, now time.Time) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	for i, existing := range c.lines {
		if existing.Key().Equal(key) {
			if quantity == 0 {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
			} else {
				c.lines[i].quantity = quantity
			}
			c.updatedAt = now
			return nil
		}
	}
	return ErrLineNotFound
}

// RemoveLine is idempotent: removing an absent line is not an error.
func (c *Cart) RemoveLine(key LineKey, now time.Time) {
	for i, existing := range c.lines {
		if existing.Key().Equal(key) {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.updatedAt = now
			return
		}
	}
}

func (c *Cart) Clear(now time.Time) {
	c.lines = nil
	c.updatedAt = now
}

// MergeFrom folds a guest cart into this one. When both carts hold the
// same line, quantities add up and this cart's captured price wins.
func (c *Cart) MergeFrom(other *Cart, now time.Time) {
	if other == nil {
		return
	}
	for _, line := range other.lines {
		c.AddLine(line, now)
	}
}
