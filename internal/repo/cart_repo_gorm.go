package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-gin-mongo-shop/internal/domain"
	"go-gin-mongo-shop/internal/feature/cart"
	"go-gin-mongo-shop/internal/feature/product"
	"go-gin-mongo-shop/internal/feature/user"
)

type CartRepo struct{ db *gorm.DB }

func NewCartRepo(db *gorm.DB) *CartRepo { return &CartRepo{db: db} }

func (r *CartRepo) FindByID(ctx context.Context, id string) (*domain.CartRef, error) {
	var m cart.CartModel
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(m.Items))
	for _, it := range m.Items {
		ids = append(ids, it.ProductID)
	}
	return &domain.CartRef{ID: m.ID, User: m.UserID, ProductIDs: ids}, nil
}

func (r *CartRepo) Save(ctx context.Context, c *domain.CartRef) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := cart.CartModel{ID: c.ID, UserID: c.User}
		if err := tx.Omit(clause.Associations).Save(&m).Error; err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", c.ID).Delete(&cart.CartItemModel{}).Error; err != nil {
			return err
		}
		if len(c.ProductIDs) == 0 {
			return nil
		}
		items := make([]cart.CartItemModel, 0, len(c.ProductIDs))
		for i, pid := range c.ProductIDs {
			items = append(items, cart.CartItemModel{CartID: c.ID, Position: i, ProductID: pid})
		}
		return tx.Create(&items).Error
	})
}

// AutoMigrate creates or updates every table the SQL backends use.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.UserModel{},
		&product.ProductModel{},
		&cart.CartModel{},
		&cart.CartItemModel{},
	)
}
