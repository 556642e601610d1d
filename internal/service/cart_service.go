package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/cart"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/product"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/store"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/user"
)

// CartService 购物车领域服务
// 不变式：同一购物车内一个商品最多一行，重复加购只累加数量。
type CartService struct {
	cartRepo    cart.Repository
	productRepo product.Repository
	userRepo    user.Repository
	storeRepo   store.Repository
}

// NewCartService 创建购物车服务
func NewCartService(
	cartRepo cart.Repository,
	productRepo product.Repository,
	userRepo user.Repository,
	storeRepo store.Repository,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		storeRepo:   storeRepo,
	}
}

// CartLine 购物车行视图，价格为当前商品价，仅供展示
type CartLine struct {
	ItemID      int64           `json:"item_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	ImageURL    string          `json:"image_url"`
	StoreID     int64           `json:"store_id"`
	StoreName   string          `json:"store_name"`
}

// CartView 购物车视图
// Total 按当前价计算，只做展示；下单金额以结算时刻的快照为准。
type CartView struct {
	CartID int64           `json:"cart_id"`
	Items  []CartLine      `json:"items"`
	Total  decimal.Decimal `json:"total"`
}

// AddItem 加购：已有同商品的行则累加数量，否则新增一行
func (s *CartService) AddItem(ctx context.Context, userID, productID, quantity int64) error {
	if quantity < 1 {
		return wrapf(ErrInvalidInput, "quantity must be at least 1, got %d", quantity)
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if isRecordNotFound(err) {
			return wrapf(ErrNotFound, "user %d", userID)
		}
		return err
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if isRecordNotFound(err) {
			return wrapf(ErrNotFound, "product %d", productID)
		}
		return err
	}

	c, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return err
	}

	item, err := s.cartRepo.GetItemByProduct(ctx, c.ID, productID)
	if err != nil {
		if !isRecordNotFound(err) {
			return err
		}
		return s.cartRepo.CreateItem(ctx, &cart.CartItem{
			CartID:    c.ID,
			ProductID: productID,
			Quantity:  quantity,
		})
	}

	item.Quantity += quantity
	return s.cartRepo.UpdateItem(ctx, item)
}

// RemoveItem 删除购物车行，行不属于该用户时拒绝
func (s *CartService) RemoveItem(ctx context.Context, userID, cartItemID int64) error {
	item, err := s.ownedItem(ctx, userID, cartItemID)
	if err != nil {
		return err
	}
	return s.cartRepo.DeleteItem(ctx, item.ID)
}

// SetQuantity 覆盖数量；数量 <= 0 等价于删除该行
func (s *CartService) SetQuantity(ctx context.Context, userID, cartItemID, quantity int64) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, cartItemID)
	}

	item, err := s.ownedItem(ctx, userID, cartItemID)
	if err != nil {
		return err
	}
	item.Quantity = quantity
	return s.cartRepo.UpdateItem(ctx, item)
}

// View 返回购物车视图，行内带当前商品快照（名称/价格/主图/店铺）
func (s *CartService) View(ctx context.Context, userID int64) (*CartView, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if isRecordNotFound(err) {
			return nil, wrapf(ErrNotFound, "user %d", userID)
		}
		return nil, err
	}

	c, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.cartRepo.ListItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	view := &CartView{
		CartID: c.ID,
		Items:  make([]CartLine, 0, len(items)),
		Total:  decimal.Zero,
	}
	if len(items) == 0 {
		return view, nil
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	productByID := make(map[int64]*product.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	storeNames := make(map[int64]string)
	for _, it := range items {
		p, ok := productByID[it.ProductID]
		if !ok {
			// 商品已被下架删除，行跳过展示，等结算或手动删除时清理
			zap.L().Warn("cart line references missing product",
				zap.Int64("cart_id", c.ID),
				zap.Int64("product_id", it.ProductID))
			continue
		}

		name, ok := storeNames[p.StoreID]
		if !ok {
			st, err := s.storeRepo.GetByID(ctx, p.StoreID)
			if err != nil {
				if !isRecordNotFound(err) {
					return nil, err
				}
			} else {
				name = st.StoreName
			}
			storeNames[p.StoreID] = name
		}

		view.Items = append(view.Items, CartLine{
			ItemID:      it.ID,
			ProductID:   p.ID,
			ProductName: p.ProductName,
			Price:       p.Price,
			Quantity:    it.Quantity,
			ImageURL:    p.MainImage(),
			StoreID:     p.StoreID,
			StoreName:   name,
		})
		view.Total = view.Total.Add(p.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}

	return view, nil
}

// ownedItem 取出购物车行并校验归属
func (s *CartService) ownedItem(ctx context.Context, userID, cartItemID int64) (*cart.CartItem, error) {
	item, err := s.cartRepo.GetItem(ctx, cartItemID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, wrapf(ErrNotFound, "cart item %d", cartItemID)
		}
		return nil, err
	}

	c, err := s.cartRepo.GetByID(ctx, item.CartID)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, wrapf(ErrUnauthorized, "cart item %d does not belong to user %d", cartItemID, userID)
	}
	return item, nil
}
