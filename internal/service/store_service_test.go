package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/product"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/store"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/user"
	"github.com/DineshVarikuppala/Dukanam/internal/repository/mysql"
)

func newStoreService(db *gorm.DB) *StoreService {
	return NewStoreService(
		db,
		mysql.NewStoreRepository(db),
		mysql.NewCategoryRepository(db),
		mysql.NewUserRepository(db),
	)
}

func TestCreateStore_OnePerOwner(t *testing.T) {
	db := newTestDB(t)
	svc := newStoreService(db)

	owner := seedUser(t, db, user.RoleStoreOwner)

	st, err := svc.CreateStore(ctxb(), owner.ID, &store.Store{StoreName: "First Shop"})
	require.NoError(t, err)
	require.NotZero(t, st.ID)

	_, err = svc.CreateStore(ctxb(), owner.ID, &store.Store{StoreName: "Second Shop"})
	require.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.CreateStore(ctxb(), 99999, &store.Store{StoreName: "Ghost Shop"})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CreateStore(ctxb(), owner.ID, &store.Store{})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteCategory_DetachesProducts(t *testing.T) {
	db := newTestDB(t)
	svc := newStoreService(db)

	owner := seedUser(t, db, user.RoleStoreOwner)
	st := seedStore(t, db, owner.ID)

	c, err := svc.CreateCategory(ctxb(), st.ID, "Groceries", "Food")
	require.NoError(t, err)
	sc, err := svc.CreateSubcategory(ctxb(), c.ID, "Rice & Grains")
	require.NoError(t, err)

	p := seedProduct(t, db, st.ID, "Rice", "10.00")
	require.NoError(t, db.Model(p).Updates(map[string]interface{}{
		"category_id":    c.ID,
		"subcategory_id": sc.ID,
	}).Error)

	require.NoError(t, svc.DeleteCategory(ctxb(), c.ID))

	// 商品留下，引用被断开
	var reloaded product.Product
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	require.Zero(t, reloaded.CategoryID)
	require.Nil(t, reloaded.SubcategoryID)

	// 子分类一并删除
	subs, err := svc.ListSubcategories(ctxb(), c.ID)
	require.NoError(t, err)
	require.Empty(t, subs)

	require.ErrorIs(t, svc.DeleteCategory(ctxb(), c.ID), ErrNotFound)
}

func TestSubcategoryLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := newStoreService(db)

	owner := seedUser(t, db, user.RoleStoreOwner)
	st := seedStore(t, db, owner.ID)

	c, err := svc.CreateCategory(ctxb(), st.ID, "Snacks", "Food")
	require.NoError(t, err)

	_, err = svc.CreateSubcategory(ctxb(), c.ID, "")
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.CreateSubcategory(ctxb(), 99999, "Chips")
	require.ErrorIs(t, err, ErrNotFound)

	sc, err := svc.CreateSubcategory(ctxb(), c.ID, "Chips")
	require.NoError(t, err)

	p := seedProduct(t, db, st.ID, "Masala Chips", "2.00")
	require.NoError(t, db.Model(p).Update("subcategory_id", sc.ID).Error)

	require.NoError(t, svc.DeleteSubcategory(ctxb(), sc.ID))

	var reloaded product.Product
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	require.Nil(t, reloaded.SubcategoryID)
}
