package product

import "time"

type ProductModel struct {
	ID          string  `gorm:"primaryKey;type:varchar(32)"`
	Name        string  `gorm:"size:255;not null"`
	Description string  `gorm:"type:text"`
	Image       string  `gorm:"type:text"`
	Price       float64 `gorm:"not null;default:0"`
	Stock       int     `gorm:"not null;default:0"`
	Brand       string  `gorm:"size:128"`
	UserID      string  `gorm:"type:varchar(32);index"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ProductModel) TableName() string { return "products" }
