package domain

import "context"

// CartRef is the stored cart: an ordered list of product ids.
type CartRef struct {
	ID         string
	User       string
	ProductIDs []string
}

// Cart is the read model with every reference resolved.
type Cart struct {
	ID       string    `json:"_id"`
	User     string    `json:"user"`
	Products []Product `json:"products"`
}

type CartRepository interface {
	FindByID(ctx context.Context, id string) (*CartRef, error)
	// Save inserts or fully replaces the cart.
	Save(ctx context.Context, c *CartRef) error
}
