package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/category"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/product"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/store"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/user"
)

// StoreService 店铺与分类管理
type StoreService struct {
	db           *gorm.DB
	storeRepo    store.Repository
	categoryRepo category.Repository
	userRepo     user.Repository
}

// NewStoreService 创建店铺服务
func NewStoreService(db *gorm.DB, storeRepo store.Repository, categoryRepo category.Repository, userRepo user.Repository) *StoreService {
	return &StoreService{
		db:           db,
		storeRepo:    storeRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

// CreateStore 开店，一个店主最多一家店
func (s *StoreService) CreateStore(ctx context.Context, ownerID int64, st *store.Store) (*store.Store, error) {
	if st.StoreName == "" {
		return nil, wrapf(ErrInvalidInput, "store name is required")
	}
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		if isRecordNotFound(err) {
			return nil, wrapf(ErrNotFound, "owner %d", ownerID)
		}
		return nil, err
	}
	if _, err := s.storeRepo.GetByOwner(ctx, ownerID); err == nil {
		return nil, wrapf(ErrInvalidState, "owner %d already has a store", ownerID)
	} else if !isRecordNotFound(err) {
		return nil, err
	}

	st.OwnerID = ownerID
	if err := s.storeRepo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// GetByID 店铺详情
func (s *StoreService) GetByID(ctx context.Context, id int64) (*store.Store, error) {
	st, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, wrapf(ErrNotFound, "store %d", id)
		}
		return nil, err
	}
	return st, nil
}

// GetByOwner 店主的店铺
func (s *StoreService) GetByOwner(ctx context.Context, ownerID int64) (*store.Store, error) {
	st, err := s.storeRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, wrapf(ErrNotFound, "store for owner %d", ownerID)
		}
		return nil, err
	}
	return st, nil
}

// ListAll 所有店铺
func (s *StoreService) ListAll(ctx context.Context) ([]*store.Store, error) {
	return s.storeRepo.ListAll(ctx)
}

// CreateCategory 新建分类
func (s *StoreService) CreateCategory(ctx context.Context, storeID int64, name, section string) (*category.Category, error) {
	if name == "" {
		return nil, wrapf(ErrInvalidInput, "category name is required")
	}
	if _, err := s.storeRepo.GetByID(ctx, storeID); err != nil {
		if isRecordNotFound(err) {
			return nil, wrapf(ErrNotFound, "store %d", storeID)
		}
		return nil, err
	}

	c := &category.Category{
		StoreID:      storeID,
		CategoryName: name,
		Section:      section,
	}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCategory 重命名分类或调整大类标签
func (s *StoreService) UpdateCategory(ctx context.Context, categoryID int64, name, section string) (*category.Category, error) {
	c, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, wrapf(ErrNotFound, "category %d", categoryID)
		}
		return nil, err
	}
	if name != "" {
		c.CategoryName = name
	}
	c.Section = section
	if err := s.categoryRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory 删除分类：先把引用它的商品断开引用、清掉子分类，再删分类本身。
// 全程一个事务，不会留下悬挂引用。
func (s *StoreService) DeleteCategory(ctx context.Context, categoryID int64) error {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if isRecordNotFound(err) {
			return wrapf(ErrNotFound, "category %d", categoryID)
		}
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subIDs []int64
		if err := tx.Model(&category.Subcategory{}).
			Where("category_id = ?", categoryID).
			Pluck("id", &subIDs).Error; err != nil {
			return err
		}
		if len(subIDs) > 0 {
			if err := tx.Model(&product.Product{}).
				Where("subcategory_id IN ?", subIDs).
				Update("subcategory_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Delete(&category.Subcategory{}, subIDs).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&product.Product{}).
			Where("category_id = ?", categoryID).
			Update("category_id", 0).Error; err != nil {
			return err
		}

		return tx.Delete(&category.Category{}, categoryID).Error
	})
}

// ListCategories 店铺的分类列表
func (s *StoreService) ListCategories(ctx context.Context, storeID int64) ([]*category.Category, error) {
	if _, err := s.storeRepo.GetByID(ctx, storeID); err != nil {
		if isRecordNotFound(err) {
			return nil, wrapf(ErrNotFound, "store %d", storeID)
		}
		return nil, err
	}
	return s.categoryRepo.ListByStore(ctx, storeID)
}

// CreateSubcategory 新建二级分类
func (s *StoreService) CreateSubcategory(ctx context.Context, categoryID int64, name string) (*category.Subcategory, error) {
	if name == "" {
		return nil, wrapf(ErrInvalidInput, "subcategory name is required")
	}
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if isRecordNotFound(err) {
			return nil, wrapf(ErrNotFound, "category %d", categoryID)
		}
		return nil, err
	}

	sc := &category.Subcategory{
		CategoryID:      categoryID,
		SubcategoryName: name,
	}
	if err := s.categoryRepo.CreateSubcategory(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// ListSubcategories 分类下的二级分类
func (s *StoreService) ListSubcategories(ctx context.Context, categoryID int64) ([]*category.Subcategory, error) {
	return s.categoryRepo.ListSubcategories(ctx, categoryID)
}

// DeleteSubcategory 删除二级分类并断开商品引用
func (s *StoreService) DeleteSubcategory(ctx context.Context, id int64) error {
	if _, err := s.categoryRepo.GetSubcategory(ctx, id); err != nil {
		if isRecordNotFound(err) {
			return wrapf(ErrNotFound, "subcategory %d", id)
		}
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&product.Product{}).
			Where("subcategory_id = ?", id).
			Update("subcategory_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category.Subcategory{}, id).Error
	})
}
