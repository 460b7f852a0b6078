package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dwikikusuma/warung-pos/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) CreateProduct(ctx context.Context, name, category string, price, stock int64) (domain.Product, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)

	if name == "" || price <= 0 || stock < 0 {
		return domain.Product{}, ErrInvalidInput
	}

	p := domain.Product{
		Name:     name,
		Price:    price,
		Category: category,
		Stock:    stock,
		Active:   true,
	}

	product, err := s.repo.Create(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}

	return product, nil
}

// GetProduct returns an active product. Inactive products are reported as
// not found.
func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	p, err := s.repo.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		return domain.Product{}, err
	}
	if !p.Active {
		return domain.Product{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) ListProducts(ctx context.Context, category, search string) ([]domain.Product, error) {
	return s.repo.List(ctx, ListFilter{
		Category: strings.TrimSpace(category),
		Search:   strings.TrimSpace(search),
	})
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

// UpdateProduct applies a partial update. Inactive products can be updated
// too; they stay hidden from the register until reactivated.
func (s *Service) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Product{}, ErrInvalidInput
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if p.Name == "" || p.Price <= 0 || p.Stock < 0 {
		return domain.Product{}, ErrInvalidInput
	}

	return s.repo.Update(ctx, p)
}

// DeactivateProduct hides a product from lists and from the register. The
// row is kept so past receipts still make sense.
func (s *Service) DeactivateProduct(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.SetActive(ctx, id, false)
}

func (s *Service) ReactivateProduct(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.SetActive(ctx, id, true)
}

// DeleteProduct removes the row permanently.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// SeedDefaults inserts products only when the catalog is empty and reports
// how many were added.
func (s *Service) SeedDefaults(ctx context.Context, products []domain.Product) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	for i, p := range products {
		if _, err := s.CreateProduct(ctx, p.Name, p.Category, p.Price, p.Stock); err != nil {
			return i, fmt.Errorf("failed to seed product %q: %w", p.Name, err)
		}
	}
	return len(products), nil
}
