package handler

import (
	"context"

	"go-gin-mongo-shop/internal/domain"
	"go-gin-mongo-shop/internal/service"
)

type AuthService interface {
	Register(ctx context.Context, in service.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
}

type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, ownerID string, f domain.ProductFields) (*domain.Product, error)
	Replace(ctx context.Context, id string, f domain.ProductFields) (*domain.Product, error)
	Delete(ctx context.Context, id string) (*domain.Product, error)
}

type CartService interface {
	GetForUser(ctx context.Context, email string) (*domain.Cart, error)
}
