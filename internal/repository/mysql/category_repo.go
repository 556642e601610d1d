package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/category"
)

type categoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	var c category.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) ListByStore(ctx context.Context, storeID int64) ([]*category.Category, error) {
	var list []*category.Category
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("id").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *categoryRepo) Create(ctx context.Context, c *category.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepo) Update(ctx context.Context, c *category.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&category.Category{}, id).Error
}

func (r *categoryRepo) GetSubcategory(ctx context.Context, id int64) (*category.Subcategory, error) {
	var sc category.Subcategory
	if err := r.db.WithContext(ctx).First(&sc, id).Error; err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *categoryRepo) ListSubcategories(ctx context.Context, categoryID int64) ([]*category.Subcategory, error) {
	var list []*category.Subcategory
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("id").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *categoryRepo) CreateSubcategory(ctx context.Context, sc *category.Subcategory) error {
	return r.db.WithContext(ctx).Create(sc).Error
}

func (r *categoryRepo) DeleteSubcategory(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&category.Subcategory{}, id).Error
}
