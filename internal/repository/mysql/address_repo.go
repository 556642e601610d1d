package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/address"
)

type addressRepo struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓储
func NewAddressRepository(db *gorm.DB) address.Repository {
	return &addressRepo{db: db}
}

func (r *addressRepo) GetByID(ctx context.Context, id int64) (*address.Address, error) {
	var a address.Address
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *addressRepo) ListByUser(ctx context.Context, userID int64) ([]*address.Address, error) {
	var list []*address.Address
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *addressRepo) GetDefault(ctx context.Context, userID int64) (*address.Address, error) {
	var a address.Address
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_default = ?", userID, true).
		First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *addressRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&address.Address{}, id).Error
}
