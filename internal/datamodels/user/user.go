package user

import (
	"context"
	"time"
)

// 用户角色
const (
	RoleCustomer   = "CUSTOMER"
	RoleStoreOwner = "STORE_OWNER"
	RoleAdmin      = "ADMIN"
)

// User 用户模型
type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	MobileNumber string    `gorm:"uniqueIndex;size:20;not null" json:"mobile_number"`
	FirstName    string    `gorm:"size:64" json:"first_name"`
	LastName     string    `gorm:"size:64" json:"last_name"`
	Password     string    `gorm:"size:255;not null" json:"-"` // 已加密密码
	Salt         string    `gorm:"size:64" json:"-"`
	Role         string    `gorm:"size:20;index;not null" json:"role"`
	// EmailNotificationsEnabled 为 false 时通知只落库，不再发邮件
	EmailNotificationsEnabled bool      `gorm:"default:true" json:"email_notifications_enabled"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

// FullName 展示用姓名
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Repository 用户仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	ListAll(ctx context.Context) ([]*User, error)
}
