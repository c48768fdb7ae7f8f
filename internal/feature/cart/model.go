package cart

type CartModel struct {
	ID     string          `gorm:"primaryKey;type:varchar(32)"`
	UserID string          `gorm:"type:varchar(32);uniqueIndex;not null"`
	Items  []CartItemModel `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

func (CartModel) TableName() string { return "carts" }

// CartItemModel keeps the position so reads come back in insertion order.
type CartItemModel struct {
	CartID    string `gorm:"primaryKey;type:varchar(32)"`
	Position  int    `gorm:"primaryKey"`
	ProductID string `gorm:"type:varchar(32);not null"`
}

func (CartItemModel) TableName() string { return "cart_items" }
