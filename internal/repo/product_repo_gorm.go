package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-gin-mongo-shop/internal/domain"
	"go-gin-mongo-shop/internal/feature/product"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	var ms []product.ProductModel
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return productsFromModels(ms), nil
}

func (r *ProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.find(r.db.WithContext(ctx), id)
}

func (r *ProductRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	var ms []product.ProductModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ms).Error; err != nil {
		return nil, err
	}
	return productsFromModels(ms), nil
}

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	m := productToModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	p.CreatedAt, p.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *ProductRepo) Update(ctx context.Context, id string, f domain.ProductFields) (*domain.Product, error) {
	db := r.db.WithContext(ctx)
	if cols := productColumns(f); len(cols) > 0 {
		if err := db.Model(&product.ProductModel{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			return nil, err
		}
	}
	return r.find(db, id)
}

func (r *ProductRepo) Delete(ctx context.Context, id string) (*domain.Product, error) {
	db := r.db.WithContext(ctx)
	p, err := r.find(db, id)
	if err != nil || p == nil {
		return nil, err
	}
	res := db.Where("id = ?", id).Delete(&product.ProductModel{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return p, nil
}

func (r *ProductRepo) find(db *gorm.DB, id string) (*domain.Product, error) {
	var m product.ProductModel
	err := db.First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p := productFromModel(m)
	return &p, nil
}

func productColumns(f domain.ProductFields) map[string]any {
	cols := map[string]any{}
	if f.Name != nil {
		cols["name"] = *f.Name
	}
	if f.Description != nil {
		cols["description"] = *f.Description
	}
	if f.Image != nil {
		cols["image"] = *f.Image
	}
	if f.Price != nil {
		cols["price"] = *f.Price
	}
	if f.Stock != nil {
		cols["stock"] = *f.Stock
	}
	if f.Brand != nil {
		cols["brand"] = *f.Brand
	}
	return cols
}

func productToModel(p *domain.Product) product.ProductModel {
	return product.ProductModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
		Stock:       p.Stock,
		Brand:       p.Brand,
		UserID:      p.User,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func productFromModel(m product.ProductModel) domain.Product {
	return domain.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Image:       m.Image,
		Price:       m.Price,
		Stock:       m.Stock,
		Brand:       m.Brand,
		User:        m.UserID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func productsFromModels(ms []product.ProductModel) []domain.Product {
	out := make([]domain.Product, 0, len(ms))
	for _, m := range ms {
		out = append(out, productFromModel(m))
	}
	return out
}
