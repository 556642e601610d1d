package cart

import (
	"context"
	"time"
)

// Cart 购物车，与用户一对一，首次加购时惰性创建
// user_id 上的唯一索引保证并发首次访问不会产生重复购物车。
type Cart struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartItem 购物车行，同一购物车内一个商品最多一行
type CartItem struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	CartID    int64     `gorm:"uniqueIndex:idx_cart_product;not null" json:"cart_id"`
	ProductID int64     `gorm:"uniqueIndex:idx_cart_product;not null" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository 购物车仓储接口
type Repository interface {
	// GetOrCreateByUser 幂等获取用户购物车，不存在则创建
	GetOrCreateByUser(ctx context.Context, userID int64) (*Cart, error)
	GetByID(ctx context.Context, id int64) (*Cart, error)
	GetByUser(ctx context.Context, userID int64) (*Cart, error)
	ListItems(ctx context.Context, cartID int64) ([]*CartItem, error)
	GetItem(ctx context.Context, itemID int64) (*CartItem, error)
	GetItemByProduct(ctx context.Context, cartID, productID int64) (*CartItem, error)
	CreateItem(ctx context.Context, item *CartItem) error
	UpdateItem(ctx context.Context, item *CartItem) error
	DeleteItem(ctx context.Context, itemID int64) error
}
