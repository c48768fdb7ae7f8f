package service

import (
	"context"
	"fmt"
	"strings"

	"go-gin-mongo-shop/internal/domain"
	"go-gin-mongo-shop/pkg/utils"
)

// ProductService has no ownership checks: any identified caller may create,
// edit or delete any product. The creator id is kept for attribution.
type ProductService struct {
	products domain.ProductRepository
}

func NewProductService(products domain.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	ps, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if ps == nil {
		ps = []domain.Product{}
	}
	return ps, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// Create requires name, price and stock.
func (s *ProductService) Create(ctx context.Context, ownerID string, f domain.ProductFields) (*domain.Product, error) {
	if f.Name == nil || strings.TrimSpace(*f.Name) == "" || f.Price == nil || f.Stock == nil {
		return nil, ErrInvalidProduct
	}
	if err := validate(f); err != nil {
		return nil, err
	}
	p := &domain.Product{ID: utils.NewID(), User: ownerID}
	f.Apply(p)
	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// Replace overwrites the fields present in f.
func (s *ProductService) Replace(ctx context.Context, id string, f domain.ProductFields) (*domain.Product, error) {
	if f.Empty() {
		return nil, ErrInvalidProduct
	}
	if err := validate(f); err != nil {
		return nil, err
	}
	p, err := s.products.Update(ctx, id, f)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.products.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete product: %w", err)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func validate(f domain.ProductFields) error {
	switch {
	case f.Name != nil && strings.TrimSpace(*f.Name) == "":
		return fmt.Errorf("%w: empty name", ErrInvalidProduct)
	case f.Price != nil && *f.Price < 0:
		return fmt.Errorf("%w: negative price", ErrInvalidProduct)
	case f.Stock != nil && *f.Stock < 0:
		return fmt.Errorf("%w: negative stock", ErrInvalidProduct)
	}
	return nil
}
