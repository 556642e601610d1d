package notification

import (
	"context"
	"time"
)

// Notification 站内通知，客户端轮询拉取，不做实时推送
type Notification struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	RecipientID    int64     `gorm:"index;not null" json:"recipient_id"`
	Message        string    `gorm:"size:512;not null" json:"message"`
	Read           bool      `gorm:"index;default:false" json:"read"`
	RelatedOrderID *int64    `json:"related_order_id,omitempty"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

// Repository 通知仓储接口
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id int64) (*Notification, error)
	ListUnread(ctx context.Context, recipientID int64) ([]*Notification, error)
	MarkRead(ctx context.Context, id int64) error
}
