package store

import (
	"context"
	"time"
)

// Store 店铺模型，每个店主最多一家店
type Store struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	OwnerID       int64     `gorm:"uniqueIndex;not null" json:"owner_id"`
	StoreName     string    `gorm:"size:128;not null" json:"store_name"`
	StoreAddress  string    `gorm:"size:512" json:"store_address"`
	ContactNumber string    `gorm:"size:20" json:"contact_number"`
	StoreLogoURL  string    `gorm:"size:255" json:"store_logo_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Repository 店铺仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Store, error)
	GetByOwner(ctx context.Context, ownerID int64) (*Store, error)
	Create(ctx context.Context, s *Store) error
	Update(ctx context.Context, s *Store) error
	ListAll(ctx context.Context) ([]*Store, error)
}
