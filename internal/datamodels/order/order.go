package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// 订单状态，除 CANCELLED 外按履约顺序排列。
// 状态机只校验名字合法性，不限制跳转方向。
const (
	StatusPending        = "PENDING"
	StatusAccepted       = "ACCEPTED"
	StatusPreparing      = "PREPARING"
	StatusOutForDelivery = "OUT_FOR_DELIVERY"
	StatusDelivered      = "DELIVERED"
	StatusCancelled      = "CANCELLED"
)

var validStatuses = map[string]struct{}{
	StatusPending:        {},
	StatusAccepted:       {},
	StatusPreparing:      {},
	StatusOutForDelivery: {},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// ValidStatus 判断状态名是否合法
func ValidStatus(s string) bool {
	_, ok := validStatuses[s]
	return ok
}

// Order 订单模型，创建后除 Status / UpdatedAt 外不再变更
type Order struct {
	ID              int64           `gorm:"primaryKey" json:"id"`
	CustomerID      int64           `gorm:"index;not null" json:"customer_id"`
	StoreID         int64           `gorm:"index;not null" json:"store_id"`
	DeliveryAddress string          `gorm:"size:512;not null" json:"delivery_address"`
	PaymentMethod   string          `gorm:"size:64;not null" json:"payment_method"` // 只记录，不做支付处理
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status          string          `gorm:"size:20;index;not null" json:"status"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem 订单行，PriceAtOrder 为下单时刻的价格快照，永不回填
type OrderItem struct {
	ID           int64           `gorm:"primaryKey" json:"id"`
	OrderID      int64           `gorm:"index;not null" json:"order_id"`
	ProductID    int64           `gorm:"index;not null" json:"product_id"`
	Quantity     int64           `gorm:"not null" json:"quantity"`
	PriceAtOrder decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_at_order"`
}

// Repository 订单仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*Order, error)
	ListByStore(ctx context.Context, storeID int64) ([]*Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}
