package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/cart"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/order"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/product"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/store"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/user"
)

// CheckoutService 结算协调器：把某家店铺在购物车中的行转成一张订单。
//
// 订单创建、订单行快照、购物车行删除在同一个数据库事务内完成，任一步失败
// 整体回滚；通知分发在事务提交之后进行，失败只打日志，绝不影响已落库的订单。
type CheckoutService struct {
	db        *gorm.DB
	userRepo  user.Repository
	storeRepo store.Repository
	notifySvc *NotificationService
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(
	db *gorm.DB,
	userRepo user.Repository,
	storeRepo store.Repository,
	notifySvc *NotificationService,
) *CheckoutService {
	return &CheckoutService{
		db:        db,
		userRepo:  userRepo,
		storeRepo: storeRepo,
		notifySvc: notifySvc,
	}
}

// lockForUpdate 追加行级锁；SQLite 不支持 FOR UPDATE 语法，仅在 mysql 上生效
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// PlaceOrder 对指定店铺执行结算，返回新订单 ID。
//
// 同一购物车的并发结算靠购物车行上的 FOR UPDATE 串行化；不同店铺的两次结算
// 各自只删除自己分区内的行，互不影响。库存在当前设计中不扣减。
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID, storeID int64, deliveryAddress, paymentMethod string) (int64, error) {
	GetMonitor().RecordCheckoutRequest()

	if deliveryAddress == "" {
		GetMonitor().RecordCheckoutFailed()
		return 0, wrapf(ErrInvalidInput, "delivery address is required")
	}
	if paymentMethod == "" {
		GetMonitor().RecordCheckoutFailed()
		return 0, wrapf(ErrInvalidInput, "payment method is required")
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		GetMonitor().RecordCheckoutFailed()
		if isRecordNotFound(err) {
			return 0, wrapf(ErrNotFound, "user %d", userID)
		}
		return 0, err
	}
	st, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		GetMonitor().RecordCheckoutFailed()
		if isRecordNotFound(err) {
			return 0, wrapf(ErrNotFound, "store %d", storeID)
		}
		return 0, err
	}

	var (
		placed       order.Order
		productNames []string
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1) 锁定购物车行，串行化同一购物车上的并发结算
		var c cart.Cart
		if err := lockForUpdate(tx).
			Where("user_id = ?", userID).
			First(&c).Error; err != nil {
			if isRecordNotFound(err) {
				return wrapf(ErrNotFound, "cart for user %d", userID)
			}
			return err
		}

		// 2) 读出全部行并按店铺分区
		var items []*cart.CartItem
		if err := tx.Where("cart_id = ?", c.ID).Order("id").Find(&items).Error; err != nil {
			return err
		}

		ids := make([]int64, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ProductID)
		}
		productByID := make(map[int64]*product.Product, len(ids))
		if len(ids) > 0 {
			var products []*product.Product
			if err := tx.Where("id IN ?", ids).Find(&products).Error; err != nil {
				return err
			}
			for _, p := range products {
				productByID[p.ID] = p
			}
		}

		var selected []*cart.CartItem
		for _, it := range items {
			p, ok := productByID[it.ProductID]
			if !ok {
				// 商品已不存在的行无法归属任何店铺，留在购物车外面处理
				continue
			}
			if p.StoreID == storeID {
				selected = append(selected, it)
			}
		}
		if len(selected) == 0 {
			return wrapf(ErrInvalidState, "no items in cart for store %d", storeID)
		}

		// 3) 按当前价计算订单总额
		total := decimal.Zero
		for _, it := range selected {
			p := productByID[it.ProductID]
			total = total.Add(p.Price.Mul(decimal.NewFromInt(it.Quantity)))
		}

		// 4) 创建订单
		placed = order.Order{
			CustomerID:      userID,
			StoreID:         storeID,
			DeliveryAddress: deliveryAddress,
			PaymentMethod:   paymentMethod,
			TotalAmount:     total,
			Status:          order.StatusPending,
		}
		if err := tx.Create(&placed).Error; err != nil {
			return err
		}

		// 5) 逐行生成订单行（价格快照）并删除对应购物车行
		deleteIDs := make([]int64, 0, len(selected))
		for _, it := range selected {
			p := productByID[it.ProductID]
			oi := order.OrderItem{
				OrderID:      placed.ID,
				ProductID:    it.ProductID,
				Quantity:     it.Quantity,
				PriceAtOrder: p.Price,
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
			placed.Items = append(placed.Items, oi)
			productNames = append(productNames, p.ProductName)
			deleteIDs = append(deleteIDs, it.ID)
		}
		if err := tx.Delete(&cart.CartItem{}, deleteIDs).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		GetMonitor().RecordCheckoutFailed()
		return 0, err
	}

	GetMonitor().RecordCheckoutSuccess()
	zap.L().Info("order placed",
		zap.Int64("order_id", placed.ID),
		zap.Int64("user_id", userID),
		zap.Int64("store_id", storeID),
		zap.String("total", placed.TotalAmount.String()))

	// 事务之外的尽力而为通知，失败不回滚订单
	if s.notifySvc != nil {
		s.notifySvc.OrderPlaced(ctx, u, st, &placed, productNames)
	}

	return placed.ID, nil
}
