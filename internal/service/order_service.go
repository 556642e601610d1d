package service

import (
	"context"

	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/order"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/store"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/user"
)

// OrderService 订单查询与状态流转
type OrderService struct {
	repo      order.Repository
	userRepo  user.Repository
	storeRepo store.Repository
	notifySvc *NotificationService
}

// NewOrderService 创建订单服务
func NewOrderService(repo order.Repository, userRepo user.Repository, storeRepo store.Repository, notifySvc *NotificationService) *OrderService {
	return &OrderService{
		repo:      repo,
		userRepo:  userRepo,
		storeRepo: storeRepo,
		notifySvc: notifySvc,
	}
}

// GetByID 查询订单详情
func (s *OrderService) GetByID(ctx context.Context, orderID int64) (*order.Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, wrapf(ErrNotFound, "order %d", orderID)
		}
		return nil, err
	}
	return o, nil
}

// UpdateStatus 订单状态流转。
// 只校验状态名合法性，不限制跳转方向（允许任意已知状态间切换）。
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	if !order.ValidStatus(status) {
		return wrapf(ErrInvalidInput, "unknown order status %q", status)
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if isRecordNotFound(err) {
			return wrapf(ErrNotFound, "order %d", orderID)
		}
		return err
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}
	o.Status = status

	// 买家状态变更通知，失败不影响状态流转结果
	if s.notifySvc != nil {
		if customer, err := s.userRepo.GetByID(ctx, o.CustomerID); err == nil {
			s.notifySvc.OrderStatusChanged(ctx, customer, o)
		}
	}
	return nil
}

// ListByCustomer 买家订单列表
func (s *OrderService) ListByCustomer(ctx context.Context, customerID int64) ([]*order.Order, error) {
	if _, err := s.userRepo.GetByID(ctx, customerID); err != nil {
		if isRecordNotFound(err) {
			return nil, wrapf(ErrNotFound, "user %d", customerID)
		}
		return nil, err
	}
	return s.repo.ListByCustomer(ctx, customerID)
}

// ListByStore 店铺订单列表
func (s *OrderService) ListByStore(ctx context.Context, storeID int64) ([]*order.Order, error) {
	if _, err := s.storeRepo.GetByID(ctx, storeID); err != nil {
		if isRecordNotFound(err) {
			return nil, wrapf(ErrNotFound, "store %d", storeID)
		}
		return nil, err
	}
	return s.repo.ListByStore(ctx, storeID)
}

// ListByOwner 店主订单列表（经由店铺归属关联）
func (s *OrderService) ListByOwner(ctx context.Context, ownerID int64) ([]*order.Order, error) {
	st, err := s.storeRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, wrapf(ErrNotFound, "store for owner %d", ownerID)
		}
		return nil, err
	}
	return s.repo.ListByStore(ctx, st.ID)
}
