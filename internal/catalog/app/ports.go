package app

import (
	"context"

	"github.com/dwikikusuma/warung-pos/internal/catalog/domain"
)

type ProductRepo interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	// Update overwrites name, price, category and stock.
	Update(ctx context.Context, p domain.Product) (domain.Product, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type ListFilter struct {
	Category string
	Search   string
}

// ProductPatch carries a partial update; nil fields are left as they are.
type ProductPatch struct {
	Name     *string
	Price    *int64
	Category *string
	Stock    *int64
}
