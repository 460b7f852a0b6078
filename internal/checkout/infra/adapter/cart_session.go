package adapter

import (
	"fmt"

	cartapp "github.com/dwikikusuma/warung-pos/internal/cart/app"
	cartdomain "github.com/dwikikusuma/warung-pos/internal/cart/domain"
	checkoutapp "github.com/dwikikusuma/warung-pos/internal/checkout/app"
	txdomain "github.com/dwikikusuma/warung-pos/internal/transaction/domain"
)

type CartServiceSession struct {
	svc *cartapp.Service
}

func NewCartServiceSession(svc *cartapp.Service) *CartServiceSession {
	return &CartServiceSession{svc: svc}
}

func (s *CartServiceSession) Freeze() ([]checkoutapp.CartItem, int64, error) {
	snap, err := s.svc.Freeze()
	if err != nil {
		return nil, 0, err
	}

	items := make([]checkoutapp.CartItem, 0, len(snap.Items))
	for _, it := range snap.Items {
		items = append(items, checkoutapp.CartItem{
			Kind:        toTxKind(it.Kind),
			CatalogID:   it.CatalogID,
			DisplayName: it.DisplayName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		})
	}
	return items, snap.TotalAmount, nil
}

func (s *CartServiceSession) Release(committed bool) {
	s.svc.Release(committed)
}

func toTxKind(k cartdomain.Kind) txdomain.Kind {
	switch k {
	case cartdomain.KindAdHoc:
		return txdomain.KindAdHoc
	case cartdomain.KindCatalog:
		return txdomain.KindCatalog
	default:
		panic(fmt.Sprintf("adapter: unknown cart item kind %q", k))
	}
}
