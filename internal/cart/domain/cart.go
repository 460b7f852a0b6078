package domain

import (
	"fmt"
	"math"
	"strings"
)

// Cart is the in-memory register cart. Items keep insertion order; a merge
// keeps the position of the first instance. The zero value is an empty cart.
type Cart struct {
	items []LineItem
	total int64
}

func NewCart() *Cart {
	return &Cart{}
}

// Items returns a copy of the lines in display order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) TotalAmount() int64 {
	return c.total
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) Find(id Identity) (LineItem, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return LineItem{}, false
	}
	return c.items[i], true
}

func (c *Cart) AddAdHoc(unitPrice int64) error {
	if unitPrice <= 0 {
		return fmt.Errorf("%w: unit price must be positive, got %d", ErrInvalidAmount, unitPrice)
	}
	if i := c.indexOf(adHocIdentity(unitPrice)); i >= 0 {
		return c.bump(i)
	}

	item, err := NewAdHocItem(unitPrice, 1)
	if err != nil {
		return err
	}
	return c.commit(append(c.Items(), item))
}

func (c *Cart) AddCatalogItem(catalogID, displayName string, unitPrice int64) error {
	if unitPrice <= 0 {
		return fmt.Errorf("%w: unit price must be positive, got %d", ErrInvalidAmount, unitPrice)
	}
	if strings.TrimSpace(catalogID) == "" {
		return fmt.Errorf("%w: catalog id is required", ErrInvalidLineItem)
	}
	if i := c.indexOf(catalogIdentity(catalogID)); i >= 0 {
		return c.bump(i)
	}

	item, err := NewCatalogItem(catalogID, displayName, unitPrice, 1)
	if err != nil {
		return err
	}
	return c.commit(append(c.Items(), item))
}

// Increment goes through the same add path as a fresh addition, using the
// stored price and name of the existing line. Absent identities are ignored.
func (c *Cart) Increment(id Identity) error {
	item, ok := c.Find(id)
	if !ok {
		return nil
	}
	switch item.Kind {
	case KindAdHoc:
		return c.AddAdHoc(item.UnitPrice)
	case KindCatalog:
		return c.AddCatalogItem(item.CatalogID, item.DisplayName, item.UnitPrice)
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidLineItem, item.Kind)
	}
}

// Decrement lowers the quantity by one and drops the line when it reaches
// zero. Absent identities are ignored.
func (c *Cart) Decrement(id Identity) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	if c.items[i].Quantity <= 1 {
		c.removeAt(i)
	} else {
		c.items[i].Quantity--
	}
	c.recompute()
}

// SetQuantity overwrites the quantity of a line; anything below 1 removes it.
// A quantity that would overflow the total leaves the cart unchanged.
func (c *Cart) SetQuantity(id Identity, quantity int64) error {
	if quantity < 1 {
		c.Remove(id)
		return nil
	}
	i := c.indexOf(id)
	if i < 0 {
		return nil
	}
	next := c.Items()
	next[i].Quantity = quantity
	return c.commit(next)
}

func (c *Cart) Remove(id Identity) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	c.removeAt(i)
	c.recompute()
}

func (c *Cart) Clear() {
	c.items = nil
	c.total = 0
}

func (c *Cart) indexOf(id Identity) int {
	for i, it := range c.items {
		if it.Identity() == id {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.items = append(c.items[:i], c.items[i+1:]...)
}

func (c *Cart) bump(i int) error {
	if c.items[i].Quantity == math.MaxInt64 {
		return fmt.Errorf("%w: quantity limit reached", ErrInvalidQuantity)
	}
	next := c.Items()
	next[i].Quantity++
	return c.commit(next)
}

// commit swaps in next only when its total is representable.
func (c *Cart) commit(next []LineItem) error {
	total, err := Total(next)
	if err != nil {
		return err
	}
	c.items = next
	c.total = total
	return nil
}

// recompute is used after shrinking mutations, which cannot overflow.
func (c *Cart) recompute() {
	total, err := Total(c.items)
	if err != nil {
		panic(fmt.Sprintf("domain: cart total invalid after shrink: %v", err))
	}
	c.total = total
}
