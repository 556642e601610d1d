package address

import "context"

// Address 收货地址
// 同一用户最多一条 is_default=true，切换默认时在事务内先清掉旧默认。
type Address struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	UserID      int64  `gorm:"index;not null" json:"user_id"`
	Label       string `gorm:"size:32;not null" json:"label"` // Home / Office / Other
	FullAddress string `gorm:"size:512;not null" json:"full_address"`
	IsDefault   bool   `gorm:"default:false" json:"is_default"`
}

// Repository 地址仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Address, error)
	ListByUser(ctx context.Context, userID int64) ([]*Address, error)
	GetDefault(ctx context.Context, userID int64) (*Address, error)
	Delete(ctx context.Context, id int64) error
}
