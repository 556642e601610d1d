package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/notification"
)

type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓储
func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) GetByID(ctx context.Context, id int64) (*notification.Notification, error) {
	var n notification.Notification
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepo) ListUnread(ctx context.Context, recipientID int64) ([]*notification.Notification, error) {
	var list []*notification.Notification
	if err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND `read` = ?", recipientID, false).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("id = ?", id).
		Update("read", true).Error
}
