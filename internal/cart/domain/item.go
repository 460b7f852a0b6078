package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type Kind string

const (
	KindAdHoc   Kind = "adhoc"
	KindCatalog Kind = "catalog"
)

// Identity is the merge key of a line item. Two additions with the same
// identity end up in the same line.
type Identity string

// LineItem is one line of the cart. CatalogID and DisplayName are only set
// for KindCatalog.
type LineItem struct {
	Kind        Kind
	CatalogID   string
	DisplayName string
	UnitPrice   int64
	Quantity    int64
}

func NewAdHocItem(unitPrice, quantity int64) (LineItem, error) {
	if unitPrice <= 0 {
		return LineItem{}, fmt.Errorf("%w: unit price must be positive, got %d", ErrInvalidLineItem, unitPrice)
	}
	if quantity < 1 {
		return LineItem{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	return LineItem{Kind: KindAdHoc, UnitPrice: unitPrice, Quantity: quantity}, nil
}

func NewCatalogItem(catalogID, displayName string, unitPrice, quantity int64) (LineItem, error) {
	if strings.TrimSpace(catalogID) == "" {
		return LineItem{}, fmt.Errorf("%w: catalog id is required", ErrInvalidLineItem)
	}
	if unitPrice <= 0 {
		return LineItem{}, fmt.Errorf("%w: unit price must be positive, got %d", ErrInvalidLineItem, unitPrice)
	}
	if quantity < 1 {
		return LineItem{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	return LineItem{
		Kind:        KindCatalog,
		CatalogID:   catalogID,
		DisplayName: displayName,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
	}, nil
}

func (it LineItem) Identity() Identity {
	return IdentityOf(it)
}

// Subtotal is unitPrice × quantity. Items held by a Cart never overflow; for
// anything else use the package-level Subtotal.
func (it LineItem) Subtotal() int64 {
	return it.UnitPrice * it.Quantity
}

// IdentityOf derives the key from kind+price for ad-hoc items and from
// kind+catalog id for catalog items.
func IdentityOf(it LineItem) Identity {
	switch it.Kind {
	case KindAdHoc:
		return adHocIdentity(it.UnitPrice)
	case KindCatalog:
		return catalogIdentity(it.CatalogID)
	default:
		panic(fmt.Sprintf("domain: unknown line item kind %q", it.Kind))
	}
}

func adHocIdentity(unitPrice int64) Identity {
	return Identity(string(KindAdHoc) + ":" + strconv.FormatInt(unitPrice, 10))
}

func catalogIdentity(catalogID string) Identity {
	return Identity(string(KindCatalog) + ":" + catalogID)
}
