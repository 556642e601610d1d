package service

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/cart"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/notification"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/order"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/user"
)

func TestPlaceOrder_SingleStore(t *testing.T) {
	db := newTestDB(t)
	cartSvc := newCartService(db)
	checkoutSvc := newCheckoutService(db)

	customer := seedUser(t, db, user.RoleCustomer)
	owner := seedUser(t, db, user.RoleStoreOwner)
	st := seedStore(t, db, owner.ID)
	rice := seedProduct(t, db, st.ID, "Basmati Rice", "12.50")
	oil := seedProduct(t, db, st.ID, "Sunflower Oil", "4.75")

	require.NoError(t, cartSvc.AddItem(ctxb(), customer.ID, rice.ID, 1))
	require.NoError(t, cartSvc.AddItem(ctxb(), customer.ID, oil.ID, 2))

	orderID, err := checkoutSvc.PlaceOrder(ctxb(), customer.ID, st.ID, "12 MG Road", "COD")
	require.NoError(t, err)
	require.NotZero(t, orderID)

	var o order.Order
	require.NoError(t, db.First(&o, orderID).Error)
	require.Equal(t, order.StatusPending, o.Status)
	require.Equal(t, customer.ID, o.CustomerID)
	require.Equal(t, st.ID, o.StoreID)
	require.Equal(t, "COD", o.PaymentMethod)
	// 12.50 + 2 x 4.75 = 22.00
	require.True(t, o.TotalAmount.Equal(decimal.RequireFromString("22.00")),
		"total %s", o.TotalAmount)

	var items []order.OrderItem
	require.NoError(t, db.Where("order_id = ?", orderID).Find(&items).Error)
	require.Len(t, items, 2)

	// 购物车整单清空
	view, err := cartSvc.View(ctxb(), customer.ID)
	require.NoError(t, err)
	require.Empty(t, view.Items)
}

func TestPlaceOrder_DrainsOnlyTargetStore(t *testing.T) {
	db := newTestDB(t)
	cartSvc := newCartService(db)
	checkoutSvc := newCheckoutService(db)

	customer := seedUser(t, db, user.RoleCustomer)
	owner1 := seedUser(t, db, user.RoleStoreOwner)
	owner2 := seedUser(t, db, user.RoleStoreOwner)
	st1 := seedStore(t, db, owner1.ID)
	st2 := seedStore(t, db, owner2.ID)
	p1 := seedProduct(t, db, st1.ID, "Rice", "10.00")
	p2 := seedProduct(t, db, st2.ID, "Chips", "2.00")

	require.NoError(t, cartSvc.AddItem(ctxb(), customer.ID, p1.ID, 1))
	require.NoError(t, cartSvc.AddItem(ctxb(), customer.ID, p2.ID, 3))

	_, err := checkoutSvc.PlaceOrder(ctxb(), customer.ID, st1.ID, "addr", "UPI")
	require.NoError(t, err)

	// 另一家店的行原样留在购物车里
	view, err := cartSvc.View(ctxb(), customer.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, p2.ID, view.Items[0].ProductID)
	require.True(t, view.Total.Equal(decimal.RequireFromString("6.00")),
		"remaining total %s", view.Total)
}

func TestPlaceOrder_SnapshotsPrice(t *testing.T) {
	db := newTestDB(t)
	cartSvc := newCartService(db)
	checkoutSvc := newCheckoutService(db)

	customer := seedUser(t, db, user.RoleCustomer)
	owner := seedUser(t, db, user.RoleStoreOwner)
	st := seedStore(t, db, owner.ID)
	p := seedProduct(t, db, st.ID, "Rice", "12.50")

	require.NoError(t, cartSvc.AddItem(ctxb(), customer.ID, p.ID, 1))
	orderID, err := checkoutSvc.PlaceOrder(ctxb(), customer.ID, st.ID, "addr", "COD")
	require.NoError(t, err)

	// 下单后改价，订单行的快照不受影响
	require.NoError(t, db.Model(p).Update("price", decimal.RequireFromString("99.99")).Error)

	var items []order.OrderItem
	require.NoError(t, db.Where("order_id = ?", orderID).Find(&items).Error)
	require.Len(t, items, 1)
	require.True(t, items[0].PriceAtOrder.Equal(decimal.RequireFromString("12.50")),
		"snapshot price %s", items[0].PriceAtOrder)
}

func TestPlaceOrder_NoItemsForStore(t *testing.T) {
	db := newTestDB(t)
	cartSvc := newCartService(db)
	checkoutSvc := newCheckoutService(db)

	customer := seedUser(t, db, user.RoleCustomer)
	owner1 := seedUser(t, db, user.RoleStoreOwner)
	owner2 := seedUser(t, db, user.RoleStoreOwner)
	st1 := seedStore(t, db, owner1.ID)
	st2 := seedStore(t, db, owner2.ID)
	p := seedProduct(t, db, st1.ID, "Rice", "10.00")

	require.NoError(t, cartSvc.AddItem(ctxb(), customer.ID, p.ID, 1))

	// 购物车里没有 st2 的商品
	_, err := checkoutSvc.PlaceOrder(ctxb(), customer.ID, st2.ID, "addr", "COD")
	require.ErrorIs(t, err, ErrInvalidState)

	// 原有行不受影响
	view, err := cartSvc.View(ctxb(), customer.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
}

func TestPlaceOrder_ValidatesInput(t *testing.T) {
	db := newTestDB(t)
	checkoutSvc := newCheckoutService(db)

	customer := seedUser(t, db, user.RoleCustomer)
	owner := seedUser(t, db, user.RoleStoreOwner)
	st := seedStore(t, db, owner.ID)

	_, err := checkoutSvc.PlaceOrder(ctxb(), customer.ID, st.ID, "", "COD")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = checkoutSvc.PlaceOrder(ctxb(), customer.ID, st.ID, "addr", "")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = checkoutSvc.PlaceOrder(ctxb(), customer.ID, 99999, "addr", "COD")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = checkoutSvc.PlaceOrder(ctxb(), 99999, st.ID, "addr", "COD")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPlaceOrder_RollsBackOnItemInsertFailure(t *testing.T) {
	db := newTestDB(t)
	cartSvc := newCartService(db)
	checkoutSvc := newCheckoutService(db)

	customer := seedUser(t, db, user.RoleCustomer)
	owner := seedUser(t, db, user.RoleStoreOwner)
	st := seedStore(t, db, owner.ID)
	p := seedProduct(t, db, st.ID, "Rice", "10.00")

	require.NoError(t, cartSvc.AddItem(ctxb(), customer.ID, p.ID, 2))

	// 注入故障：订单行插入必定失败，整个事务应当回滚
	boom := errors.New("injected order item failure")
	err := db.Callback().Create().Before("gorm:create").Register("fail_order_items", func(tx *gorm.DB) {
		if tx.Statement.Table == "order_items" {
			_ = tx.AddError(boom)
		}
	})
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Callback().Create().Remove("fail_order_items"))
	}()

	_, err = checkoutSvc.PlaceOrder(ctxb(), customer.ID, st.ID, "addr", "COD")
	require.Error(t, err)

	// 订单没有落库
	var count int64
	require.NoError(t, db.Model(&order.Order{}).Count(&count).Error)
	require.Zero(t, count)

	// 购物车行原封不动
	var items []cart.CartItem
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1)
	require.Equal(t, int64(2), items[0].Quantity)
}

func TestPlaceOrder_WritesNotifications(t *testing.T) {
	db := newTestDB(t)
	cartSvc := newCartService(db)
	checkoutSvc := newCheckoutService(db)

	customer := seedUser(t, db, user.RoleCustomer)
	owner := seedUser(t, db, user.RoleStoreOwner)
	st := seedStore(t, db, owner.ID)
	p := seedProduct(t, db, st.ID, "Rice", "25.00")

	require.NoError(t, cartSvc.AddItem(ctxb(), customer.ID, p.ID, 1))
	orderID, err := checkoutSvc.PlaceOrder(ctxb(), customer.ID, st.ID, "addr", "COD")
	require.NoError(t, err)

	// 买家一条、店主一条，都挂上订单号
	var rows []notification.Notification
	require.NoError(t, db.Order("id").Find(&rows).Error)
	require.Len(t, rows, 2)
	require.Equal(t, customer.ID, rows[0].RecipientID)
	require.Contains(t, rows[0].Message, "25.00")
	require.Equal(t, owner.ID, rows[1].RecipientID)
	require.Contains(t, rows[1].Message, "Rice")
	for _, n := range rows {
		require.NotNil(t, n.RelatedOrderID)
		require.Equal(t, orderID, *n.RelatedOrderID)
		require.False(t, n.Read)
	}
}
