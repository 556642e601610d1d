package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/user"
)

func TestCartAddItem_MergesSameProduct(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)

	customer := seedUser(t, db, user.RoleCustomer)
	owner := seedUser(t, db, user.RoleStoreOwner)
	st := seedStore(t, db, owner.ID)
	p := seedProduct(t, db, st.ID, "Rice", "12.50")

	require.NoError(t, svc.AddItem(ctxb(), customer.ID, p.ID, 2))
	require.NoError(t, svc.AddItem(ctxb(), customer.ID, p.ID, 3))

	view, err := svc.View(ctxb(), customer.ID)
	require.NoError(t, err)
	// 同一商品只占一行，数量累加
	require.Len(t, view.Items, 1)
	require.Equal(t, int64(5), view.Items[0].Quantity)
	require.True(t, view.Total.Equal(view.Items[0].Price.Mul(decimal.NewFromInt(5))),
		"total %s should be price x 5", view.Total)
}

func TestCartAddItem_RejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)

	customer := seedUser(t, db, user.RoleCustomer)
	owner := seedUser(t, db, user.RoleStoreOwner)
	st := seedStore(t, db, owner.ID)
	p := seedProduct(t, db, st.ID, "Oil", "4.75")

	err := svc.AddItem(ctxb(), customer.ID, p.ID, 0)
	require.ErrorIs(t, err, ErrInvalidInput)

	err = svc.AddItem(ctxb(), customer.ID, 99999, 1)
	require.ErrorIs(t, err, ErrNotFound)

	err = svc.AddItem(ctxb(), 99999, p.ID, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCartSetQuantity_ZeroRemovesLine(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)

	customer := seedUser(t, db, user.RoleCustomer)
	owner := seedUser(t, db, user.RoleStoreOwner)
	st := seedStore(t, db, owner.ID)
	p := seedProduct(t, db, st.ID, "Chips", "2.00")

	require.NoError(t, svc.AddItem(ctxb(), customer.ID, p.ID, 2))
	view, err := svc.View(ctxb(), customer.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)

	require.NoError(t, svc.SetQuantity(ctxb(), customer.ID, view.Items[0].ItemID, 0))

	view, err = svc.View(ctxb(), customer.ID)
	require.NoError(t, err)
	require.Empty(t, view.Items)
	require.True(t, view.Total.IsZero())
}

func TestCartOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)

	alice := seedUser(t, db, user.RoleCustomer)
	bob := seedUser(t, db, user.RoleCustomer)
	owner := seedUser(t, db, user.RoleStoreOwner)
	st := seedStore(t, db, owner.ID)
	p := seedProduct(t, db, st.ID, "Rice", "12.50")

	require.NoError(t, svc.AddItem(ctxb(), alice.ID, p.ID, 1))
	view, err := svc.View(ctxb(), alice.ID)
	require.NoError(t, err)
	itemID := view.Items[0].ItemID

	// 别人的购物车行不能删、不能改
	require.ErrorIs(t, svc.RemoveItem(ctxb(), bob.ID, itemID), ErrUnauthorized)
	require.ErrorIs(t, svc.SetQuantity(ctxb(), bob.ID, itemID, 5), ErrUnauthorized)

	// 本人正常删除
	require.NoError(t, svc.RemoveItem(ctxb(), alice.ID, itemID))
	require.ErrorIs(t, svc.RemoveItem(ctxb(), alice.ID, itemID), ErrNotFound)
}

func TestCartView_EmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)

	customer := seedUser(t, db, user.RoleCustomer)

	// 首次查看时隐式建车，返回空视图
	view, err := svc.View(ctxb(), customer.ID)
	require.NoError(t, err)
	require.NotZero(t, view.CartID)
	require.Empty(t, view.Items)
	require.True(t, view.Total.IsZero())

	// 再次查看拿到同一辆车
	again, err := svc.View(ctxb(), customer.ID)
	require.NoError(t, err)
	require.Equal(t, view.CartID, again.CartID)
}
