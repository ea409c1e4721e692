package models

import "time"

// CartLine is one (item, quantity, captured price) entry in a user's cart.
// Price is the catalog price at the time the item was added and is never
// re-fetched on later reads.
type CartLine struct {
	ItemID   string    `json:"itemId" bson:"itemid"`
	Quantity int       `json:"quantity" bson:"quantity"`
	Price    float64   `json:"price" bson:"price"`
	AddedAt  time.Time `json:"addedAt" bson:"addedAt"`
}

// Cart is the single mutable basket a user owns. TotalAmount and TotalItems
// are derived from Items and recomputed on every mutation; they are persisted
// together with the lines so no reader observes totals that disagree with
// the lines that produced them.
type Cart struct {
	UserID      string     `json:"userId" bson:"userid"`
	Items       []CartLine `json:"items" bson:"items"`
	TotalAmount float64    `json:"totalAmount" bson:"totalAmount"`
	TotalItems  int        `json:"totalItems" bson:"totalItems"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// NewCart returns an empty cart for the user.
func NewCart(userID string) *Cart {
	now := time.Now()
	return &Cart{
		UserID:    userID,
		Items:     []CartLine{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Recompute refreshes the derived totals from the current lines.
func (c *Cart) Recompute() {
	total := 0.0
	count := 0
	for _, line := range c.Items {
		total += line.Price * float64(line.Quantity)
		count += line.Quantity
	}
	c.TotalAmount = total
	c.TotalItems = count
	c.UpdatedAt = time.Now()
}

// AddLine merges quantity into an existing line for the item, or appends a
// new line capturing the given unit price. A cart never holds two lines for
// the same item.
func (c *Cart) AddLine(itemID string, quantity int, price float64) {
	for i := range c.Items {
		if c.Items[i].ItemID == itemID {
			c.Items[i].Quantity += quantity
			c.Recompute()
			return
		}
	}
	c.Items = append(c.Items, CartLine{
		ItemID:   itemID,
		Quantity: quantity,
		Price:    price,
		AddedAt:  time.Now(),
	})
	c.Recompute()
}

// SetLineQuantity sets the quantity of an existing line. A quantity of zero
// or less removes the line. Returns false if the cart has no line for the
// item.
func (c *Cart) SetLineQuantity(itemID string, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ItemID == itemID {
			if quantity <= 0 {
				c.RemoveLine(itemID)
				return true
			}
			c.Items[i].Quantity = quantity
			c.Recompute()
			return true
		}
	}
	return false
}

// RemoveLine drops the line for the item if present. Removing an absent item
// is a no-op.
func (c *Cart) RemoveLine(itemID string) {
	kept := c.Items[:0]
	for _, line := range c.Items {
		if line.ItemID != itemID {
			kept = append(kept, line)
		}
	}
	c.Items = kept
	c.Recompute()
}

// ClearLines empties the cart and zeroes the totals. The cart document
// itself survives.
func (c *Cart) ClearLines() {
	c.Items = []CartLine{}
	c.Recompute()
}
