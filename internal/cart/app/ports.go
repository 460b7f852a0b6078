package app

import "context"

// CatalogReader resolves a product the cashier picked from the catalog.
type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type Product struct {
	ID    string
	Name  string
	Price int64
}
