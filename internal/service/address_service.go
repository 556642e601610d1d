package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/address"
)

// AddressService 收货地址管理。
// 默认地址切换必须在一个事务内完成：设新默认的同时清掉该用户其余默认标记。
type AddressService struct {
	db   *gorm.DB
	repo address.Repository
}

// NewAddressService 创建地址服务
func NewAddressService(db *gorm.DB, repo address.Repository) *AddressService {
	return &AddressService{db: db, repo: repo}
}

// List 用户地址列表
func (s *AddressService) List(ctx context.Context, userID int64) ([]*address.Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

// GetDefault 用户默认地址
func (s *AddressService) GetDefault(ctx context.Context, userID int64) (*address.Address, error) {
	a, err := s.repo.GetDefault(ctx, userID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, wrapf(ErrNotFound, "default address for user %d", userID)
		}
		return nil, err
	}
	return a, nil
}

// Create 新增地址；标记默认时同事务清掉旧默认
func (s *AddressService) Create(ctx context.Context, a *address.Address) error {
	if a.Label == "" || a.FullAddress == "" {
		return wrapf(ErrInvalidInput, "label and full address are required")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if a.IsDefault {
			if err := tx.Model(&address.Address{}).
				Where("user_id = ?", a.UserID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(a).Error
	})
}

// Update 更新地址；切换默认时同事务清掉其它默认标记
func (s *AddressService) Update(ctx context.Context, userID, addressID int64, upd *address.Address) (*address.Address, error) {
	a, err := s.owned(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	if upd.Label != "" {
		a.Label = upd.Label
	}
	if upd.FullAddress != "" {
		a.FullAddress = upd.FullAddress
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if upd.IsDefault && !a.IsDefault {
			if err := tx.Model(&address.Address{}).
				Where("user_id = ? AND id <> ?", userID, addressID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		a.IsDefault = upd.IsDefault
		return tx.Save(a).Error
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Delete 删除地址
func (s *AddressService) Delete(ctx context.Context, userID, addressID int64) error {
	if _, err := s.owned(ctx, userID, addressID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, addressID)
}

// owned 取出地址并校验归属
func (s *AddressService) owned(ctx context.Context, userID, addressID int64) (*address.Address, error) {
	a, err := s.repo.GetByID(ctx, addressID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, wrapf(ErrNotFound, "address %d", addressID)
		}
		return nil, err
	}
	if a.UserID != userID {
		return nil, wrapf(ErrUnauthorized, "address %d does not belong to user %d", addressID, userID)
	}
	return a, nil
}
