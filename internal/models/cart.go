package models

import "errors"

// ErrInvalidQuantity is returned when a cart line would hold a non-positive quantity.
var ErrInvalidQuantity = errors.New("quantity must be greater than zero")

// CartItem is a material staged for checkout together with the requested quantity.
type CartItem struct {
	Material
	CartQuantity int `json:"cartQuantity"`
}

// LineTotal is the price of the line at the material's current unit price.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.CartQuantity)
}

// VendorGroup is the slice of a cart that will be submitted to one vendor.
type VendorGroup struct {
	VendorID   string     `json:"vendorId"`
	VendorName string     `json:"vendorName"`
	Items      []CartItem `json:"items"`
	Subtotal   float64    `json:"subtotal"`
}

// Cart accumulates materials before checkout. It holds at most one entry per
// material and never an entry with a non-positive quantity. Bounding
// quantities by stock is the caller's job.
type Cart struct {
	items []CartItem
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add puts qty units of the material in the cart, merging with an existing entry.
func (c *Cart) Add(material Material, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if i := c.index(material.ID); i >= 0 {
		c.items[i].CartQuantity += qty
		return nil
	}
	c.items = append(c.items, CartItem{Material: material, CartQuantity: qty})
	return nil
}

// UpdateQuantity sets the quantity of an entry; qty <= 0 removes it.
// It reports whether the material was in the cart.
func (c *Cart) UpdateQuantity(materialID string, qty int) bool {
	i := c.index(materialID)
	if i < 0 {
		return false
	}
	if qty <= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
		return true
	}
	c.items[i].CartQuantity = qty
	return true
}

// Remove drops the entry for the material, if any.
func (c *Cart) Remove(materialID string) bool {
	return c.UpdateQuantity(materialID, 0)
}

// Get returns the entry for the material.
func (c *Cart) Get(materialID string) (CartItem, bool) {
	if i := c.index(materialID); i >= 0 {
		return c.items[i], true
	}
	return CartItem{}, false
}

// Items returns a copy of the entries in insertion order.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len is the number of distinct materials in the cart.
func (c *Cart) Len() int { return len(c.items) }

// TotalPrice sums price x quantity over all entries.
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.items {
		total += item.LineTotal()
	}
	return total
}

// TotalItems sums the quantities of all entries.
func (c *Cart) TotalItems() int {
	var total int
	for _, item := range c.items {
		total += item.CartQuantity
	}
	return total
}

// GroupByVendor partitions the entries by vendor, in first-seen order.
func (c *Cart) GroupByVendor() []VendorGroup {
	var groups []VendorGroup
	pos := make(map[string]int)
	for _, item := range c.items {
		i, ok := pos[item.VendorID]
		if !ok {
			i = len(groups)
			pos[item.VendorID] = i
			groups = append(groups, VendorGroup{VendorID: item.VendorID, VendorName: item.VendorName})
		}
		groups[i].Items = append(groups[i].Items, item)
		groups[i].Subtotal += item.LineTotal()
	}
	return groups
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) index(materialID string) int {
	for i := range c.items {
		if c.items[i].ID == materialID {
			return i
		}
	}
	return -1
}
