package domain

import (
	"fmt"
	"math"
)

// Amounts are whole currency units (rupiah); there is no fractional part.

// Subtotal returns unitPrice × quantity. It fails instead of wrapping when the
// product does not fit in an int64.
func Subtotal(unitPrice, quantity int64) (int64, error) {
	if unitPrice <= 0 {
		return 0, fmt.Errorf("%w: unit price must be positive, got %d", ErrInvalidAmount, unitPrice)
	}
	if quantity < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	if unitPrice > math.MaxInt64/quantity {
		return 0, fmt.Errorf("%w: %d × %d overflows", ErrInvalidAmount, unitPrice, quantity)
	}
	return unitPrice * quantity, nil
}

// Total sums the subtotals of items. An empty slice totals 0.
func Total(items []LineItem) (int64, error) {
	var total int64
	for _, it := range items {
		sub, err := Subtotal(it.UnitPrice, it.Quantity)
		if err != nil {
			return 0, err
		}
		if total > math.MaxInt64-sub {
			return 0, fmt.Errorf("%w: cart total overflows", ErrInvalidAmount)
		}
		total += sub
	}
	return total, nil
}
