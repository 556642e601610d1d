package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/cart"
)

type cartRepo struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepo{db: db}
}

// GetOrCreateByUser 幂等获取购物车：user_id 唯一索引 + OnConflict DoNothing，
// 并发首次加购也只会留下一行。
func (r *cartRepo) GetOrCreateByUser(ctx context.Context, userID int64) (*cart.Cart, error) {
	c := cart.Cart{UserID: userID}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&c).Error; err != nil {
		return nil, err
	}
	// 冲突时 Create 不回填主键，重新查一次
	return r.GetByUser(ctx, userID)
}

func (r *cartRepo) GetByID(ctx context.Context, id int64) (*cart.Cart, error) {
	var c cart.Cart
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cartRepo) GetByUser(ctx context.Context, userID int64) (*cart.Cart, error) {
	var c cart.Cart
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cartRepo) ListItems(ctx context.Context, cartID int64) ([]*cart.CartItem, error) {
	var list []*cart.CartItem
	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("id").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *cartRepo) GetItem(ctx context.Context, itemID int64) (*cart.CartItem, error) {
	var item cart.CartItem
	if err := r.db.WithContext(ctx).First(&item, itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) GetItemByProduct(ctx context.Context, cartID, productID int64) (*cart.CartItem, error) {
	var item cart.CartItem
	if err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) CreateItem(ctx context.Context, item *cart.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartRepo) UpdateItem(ctx context.Context, item *cart.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *cartRepo) DeleteItem(ctx context.Context, itemID int64) error {
	return r.db.WithContext(ctx).Delete(&cart.CartItem{}, itemID).Error
}
