package domain

import (
	"context"
	"time"
)

type Product struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Brand       string    `json:"brand"`
	User        string    `json:"user"` // creator, attribution only
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductFields carries a product payload where nil means "not sent".
type ProductFields struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Brand       *string  `json:"brand"`
}

// Empty reports whether no field is present.
func (f ProductFields) Empty() bool {
	return f.Name == nil && f.Description == nil && f.Image == nil &&
		f.Price == nil && f.Stock == nil && f.Brand == nil
}

// Apply copies every present field onto p.
func (f ProductFields) Apply(p *Product) {
	if f.Name != nil {
		p.Name = *f.Name
	}
	if f.Description != nil {
		p.Description = *f.Description
	}
	if f.Image != nil {
		p.Image = *f.Image
	}
	if f.Price != nil {
		p.Price = *f.Price
	}
	if f.Stock != nil {
		p.Stock = *f.Stock
	}
	if f.Brand != nil {
		p.Brand = *f.Brand
	}
}

// ProductRepository reports a missing product as (nil, nil). Update and
// Delete return the record after the change (resp. the removed record).
type ProductRepository interface {
	List(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, id string, f ProductFields) (*Product, error)
	Delete(ctx context.Context, id string) (*Product, error)
}
