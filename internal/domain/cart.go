package domain

import (
	"time"
)

// CartLine is a product snapshot plus the selection it was added with. The
// snapshot is a denormalized copy: later product edits do not reach existing
// lines, and Product.Price holds the line's own unit price (a variation price
// when one applied at add time).
type CartLine struct {
	Product       `bson:",inline"`
	Quantity      int    `json:"quantity" bson:"quantity"`
	SelectedColor string `json:"selectedColor,omitempty" bson:"selected_color,omitempty"`
	SelectedSize  string `json:"selectedSize,omitempty" bson:"selected_size,omitempty"`
	AddedAt       time.Time `json:"addedAt" bson:"added_at"`
}

// LineID is the cart-line identity key: productID|color|size, empty string
// for absent selections. Two lines are the same line iff keys match exactly.
func (l *CartLine) LineID() string {
	return LineID(l.Product.ID, l.SelectedColor, l.SelectedSize)
}

func LineID(productID, color, size string) string {
	return productID + "|" + color + "|" + size
}

type Cart struct {
	ID        string     `json:"-" bson:"_id,omitempty"`
	SessionID string     `json:"sessionId" bson:"session_id"`
	Lines     []CartLine `json:"lines" bson:"lines"`
	CreatedAt time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updated_at"`
}

// FindLine returns the index of the line with the given id, or -1.
func (c *Cart) FindLine(lineID string) int {
	for i := range c.Lines {
		if c.Lines[i].LineID() == lineID {
			return i
		}
	}
	return -1
}

// TotalItems is the sum of quantities across lines.
func (c *Cart) TotalItems() int {
	total := 0
	for i := range c.Lines {
		total += c.Lines[i].Quantity
	}
	return total
}

// TotalPrice sums price x quantity over each line's snapshotted price. It is
// a client-side figure; the checkout validate call is authoritative.
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for i := range c.Lines {
		total += c.Lines[i].Product.Price * float64(c.Lines[i].Quantity)
	}
	return total
}
