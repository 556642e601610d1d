package category

import "context"

// Category 店铺内商品分类
type Category struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	StoreID      int64  `gorm:"index;not null" json:"store_id"`
	CategoryName string `gorm:"size:128;not null" json:"category_name"`
	// Section 前台大类标签，如 Electronics / Groceries，可为空
	Section string `gorm:"size:64" json:"section"`
}

// Subcategory 二级分类
type Subcategory struct {
	ID              int64  `gorm:"primaryKey" json:"id"`
	CategoryID      int64  `gorm:"index;not null" json:"category_id"`
	SubcategoryName string `gorm:"size:128;not null" json:"subcategory_name"`
}

// Repository 分类仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Category, error)
	ListByStore(ctx context.Context, storeID int64) ([]*Category, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id int64) error

	GetSubcategory(ctx context.Context, id int64) (*Subcategory, error)
	ListSubcategories(ctx context.Context, categoryID int64) ([]*Subcategory, error)
	CreateSubcategory(ctx context.Context, sc *Subcategory) error
	DeleteSubcategory(ctx context.Context, id int64) error
}
