package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dwikikusuma/warung-pos/internal/cart/domain"
)

// Snapshot is a read-only copy of the cart taken under the session lock.
type Snapshot struct {
	Items       []domain.LineItem
	TotalAmount int64
}

// Service owns one register cart. While a checkout is committing every
// mutation fails with domain.ErrCheckoutInProgress so nothing can land
// between the checkout snapshot and the clear that follows it.
type Service struct {
	mu         sync.Mutex
	cart       *domain.Cart
	catalog    CatalogReader
	log        *slog.Logger
	committing bool
}

func NewService(cart *domain.Cart, catalog CatalogReader, log *slog.Logger) *Service {
	if cart == nil {
		cart = domain.NewCart()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		cart:    cart,
		catalog: catalog,
		log:     log,
	}
}

func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Service) AddAdHoc(unitPrice int64) (Snapshot, error) {
	return s.mutate("add_adhoc", func(c *domain.Cart) error {
		return c.AddAdHoc(unitPrice)
	})
}

func (s *Service) AddCatalogItem(catalogID, displayName string, unitPrice int64) (Snapshot, error) {
	return s.mutate("add_catalog_item", func(c *domain.Cart) error {
		return c.AddCatalogItem(catalogID, displayName, unitPrice)
	})
}

// AddProduct looks the product up in the catalog and adds it with the
// catalog's current name and price.
func (s *Service) AddProduct(ctx context.Context, productID string) (Snapshot, error) {
	if s.catalog == nil {
		return Snapshot{}, fmt.Errorf("catalog reader not configured")
	}
	p, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to get product %s: %w", productID, err)
	}
	return s.AddCatalogItem(p.ID, p.Name, p.Price)
}

func (s *Service) Increment(id domain.Identity) (Snapshot, error) {
	return s.mutate("increment", func(c *domain.Cart) error {
		return c.Increment(id)
	})
}

func (s *Service) Decrement(id domain.Identity) (Snapshot, error) {
	return s.mutate("decrement", func(c *domain.Cart) error {
		c.Decrement(id)
		return nil
	})
}

func (s *Service) SetQuantity(id domain.Identity, quantity int64) (Snapshot, error) {
	return s.mutate("set_quantity", func(c *domain.Cart) error {
		return c.SetQuantity(id, quantity)
	})
}

func (s *Service) Remove(id domain.Identity) (Snapshot, error) {
	return s.mutate("remove", func(c *domain.Cart) error {
		c.Remove(id)
		return nil
	})
}

// Freeze marks the cart as committing and returns what is to be committed.
// The caller must call Release exactly once afterwards.
func (s *Service) Freeze() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.committing {
		return Snapshot{}, domain.ErrCheckoutInProgress
	}
	s.committing = true
	return s.snapshotLocked(), nil
}

// Release ends a checkout. The cart is emptied only when the commit was
// confirmed.
func (s *Service) Release(committed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if committed {
		s.cart.Clear()
	}
	s.committing = false
}

func (s *Service) Committing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committing
}

func (s *Service) mutate(op string, fn func(c *domain.Cart) error) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.committing {
		return Snapshot{}, domain.ErrCheckoutInProgress
	}
	if err := fn(s.cart); err != nil {
		return Snapshot{}, err
	}

	s.log.Debug("cart updated",
		slog.String("op", op),
		slog.Int("lines", s.cart.Len()),
		slog.Int64("total", s.cart.TotalAmount()),
	)
	return s.snapshotLocked(), nil
}

func (s *Service) snapshotLocked() Snapshot {
	return Snapshot{
		Items:       s.cart.Items(),
		TotalAmount: s.cart.TotalAmount(),
	}
}
