package service

import (
	"context"
	"fmt"

	"go-gin-mongo-shop/internal/domain"
	"go-gin-mongo-shop/pkg/utils"
)

type CartService struct {
	users    domain.UserRepository
	carts    domain.CartRepository
	products domain.ProductRepository
}

func NewCartService(users domain.UserRepository, carts domain.CartRepository, products domain.ProductRepository) *CartService {
	return &CartService{users: users, carts: carts, products: products}
}

// GetForUser returns the user's cart with each reference resolved against
// the current catalog, in reference order. References to deleted products
// are skipped. A user without a cart gets a nil cart.
func (s *CartService) GetForUser(ctx context.Context, email string) (*domain.Cart, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if u.CartID == "" {
		return nil, nil
	}

	ref, err := s.carts.FindByID(ctx, u.CartID)
	if err != nil {
		return nil, fmt.Errorf("find cart: %w", err)
	}
	if ref == nil {
		return nil, nil
	}

	found, err := s.products.FindByIDs(ctx, ref.ProductIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve cart products: %w", err)
	}
	byID := make(map[string]domain.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	cart := &domain.Cart{ID: ref.ID, User: ref.User, Products: make([]domain.Product, 0, len(ref.ProductIDs))}
	for _, id := range ref.ProductIDs {
		if p, ok := byID[id]; ok {
			cart.Products = append(cart.Products, p)
		}
	}
	return cart, nil
}

// SetProducts replaces the product references of a user's cart, creating
// the cart on first use. Every id must name an existing product.
func (s *CartService) SetProducts(ctx context.Context, email string, productIDs []string) (*domain.Cart, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	found, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}
	known := make(map[string]bool, len(found))
	for _, p := range found {
		known[p.ID] = true
	}
	for _, id := range productIDs {
		if !known[id] {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
	}

	ref := &domain.CartRef{ID: u.CartID, User: u.ID, ProductIDs: productIDs}
	if ref.ID == "" {
		ref.ID = utils.NewID()
	}
	if err := s.carts.Save(ctx, ref); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	if u.CartID == "" {
		if err := s.users.SetCart(ctx, u.ID, ref.ID); err != nil {
			return nil, fmt.Errorf("link cart: %w", err)
		}
	}
	return s.GetForUser(ctx, email)
}
