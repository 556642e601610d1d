package product

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Product 商品模型
// Price 为下单时刻的权威价格，结算时快照进订单行，之后改价不影响已下单数据。
type Product struct {
	ID            int64           `gorm:"primaryKey" json:"id"`
	StoreID       int64           `gorm:"index;not null" json:"store_id"`
	CategoryID    int64           `gorm:"index" json:"category_id"`
	SubcategoryID *int64          `gorm:"index" json:"subcategory_id,omitempty"`
	ProductName   string          `gorm:"size:128;not null" json:"product_name"`
	Description   string          `gorm:"size:1024" json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock         int64           `gorm:"not null" json:"stock"`
	Images        []Image         `gorm:"foreignKey:ProductID" json:"images"`
	Active        bool            `gorm:"index;default:true" json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Image 商品图片，Sort 小的在前，第一张作为列表主图
type Image struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	ProductID int64  `gorm:"index;not null" json:"product_id"`
	URL       string `gorm:"size:255;not null" json:"url"`
	Sort      int    `gorm:"default:0" json:"sort"`
}

// MainImage 返回主图地址，没有图片时为空串
func (p *Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// Repository 商品仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*Product, error)
	ListByStore(ctx context.Context, storeID int64) ([]*Product, error)
	ListActive(ctx context.Context) ([]*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
}
