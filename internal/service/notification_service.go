package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/notification"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/order"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/store"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/user"
)

// EmailQueue 邮件投递队列名，notify-worker 消费
const EmailQueue = "notify_email_queue"

// EmailMessage 投递到 MQ 的邮件任务
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NotificationService 通知分发器。
//
// 通知行为尽力而为：落库、邮件入队的任何失败都只打日志并计数，
// 永远不向调用方（结算、订单状态流转）返回错误。
type NotificationService struct {
	repo     notification.Repository
	userRepo user.Repository
	mqConn   *amqp.Connection
}

// NewNotificationService 创建通知服务，mqConn 可为 nil（不发邮件，仅落库）
func NewNotificationService(repo notification.Repository, userRepo user.Repository, mqConn *amqp.Connection) *NotificationService {
	return &NotificationService{
		repo:     repo,
		userRepo: userRepo,
		mqConn:   mqConn,
	}
}

// OrderPlaced 下单成功后的通知：买家一条、店主一条，按开关补发邮件
func (s *NotificationService) OrderPlaced(ctx context.Context, customer *user.User, st *store.Store, o *order.Order, productNames []string) {
	orderID := o.ID
	s.save(ctx, &notification.Notification{
		RecipientID:    customer.ID,
		Message:        fmt.Sprintf("Order #%d placed successfully! Total: %s", o.ID, o.TotalAmount.StringFixed(2)),
		RelatedOrderID: &orderID,
	})

	names := strings.Join(productNames, ", ")
	if names == "" {
		names = "Items"
	}
	s.save(ctx, &notification.Notification{
		RecipientID:    st.OwnerID,
		Message:        fmt.Sprintf("New Order Alert! %s, please accept", names),
		RelatedOrderID: &orderID,
	})

	if customer.EmailNotificationsEnabled {
		s.publishEmail(ctx, EmailMessage{
			To:      customer.Email,
			Subject: "Order Confirmation - DUKANAM",
			Body: fmt.Sprintf("Your order #%d has been placed successfully!\n\nTotal Amount: %s\n\nThank you for shopping with DUKANAM!",
				o.ID, o.TotalAmount.StringFixed(2)),
		})
	}
	if owner, err := s.userRepo.GetByID(ctx, st.OwnerID); err == nil && owner.EmailNotificationsEnabled {
		s.publishEmail(ctx, EmailMessage{
			To:      owner.Email,
			Subject: "New Order Alert - DUKANAM",
			Body: fmt.Sprintf("You have received a new order!\n\nOrder ID: #%d\nProducts: %s\n\nPlease review and accept the order.",
				o.ID, names),
		})
	}
}

// OrderStatusChanged 订单状态流转后的买家通知
func (s *NotificationService) OrderStatusChanged(ctx context.Context, customer *user.User, o *order.Order) {
	orderID := o.ID
	s.save(ctx, &notification.Notification{
		RecipientID:    customer.ID,
		Message:        fmt.Sprintf("Update on Order #%d: %s", o.ID, o.Status),
		RelatedOrderID: &orderID,
	})

	if customer.EmailNotificationsEnabled {
		s.publishEmail(ctx, EmailMessage{
			To:      customer.Email,
			Subject: "Order Status Update - DUKANAM",
			Body: fmt.Sprintf("Your order #%d status has been updated to: %s\n\nThank you for shopping with DUKANAM!",
				o.ID, o.Status),
		})
	}
}

// ListUnread 未读通知列表，客户端轮询
func (s *NotificationService) ListUnread(ctx context.Context, userID int64) ([]*notification.Notification, error) {
	return s.repo.ListUnread(ctx, userID)
}

// MarkRead 标记已读
func (s *NotificationService) MarkRead(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if isRecordNotFound(err) {
			return wrapf(ErrNotFound, "notification %d", id)
		}
		return err
	}
	return s.repo.MarkRead(ctx, id)
}

// save 通知落库，失败只记日志
func (s *NotificationService) save(ctx context.Context, n *notification.Notification) {
	if err := s.repo.Create(ctx, n); err != nil {
		GetMonitor().RecordNotifyError()
		zap.L().Warn("failed to save notification",
			zap.Int64("recipient_id", n.RecipientID),
			zap.Error(err))
		return
	}
	GetMonitor().RecordNotifySaved()
}

// publishEmail 邮件任务写入 MQ，失败只记日志；未配置 MQ 时静默跳过
func (s *NotificationService) publishEmail(ctx context.Context, msg EmailMessage) {
	if s.mqConn == nil {
		return
	}

	ch, err := s.mqConn.Channel()
	if err != nil {
		GetMonitor().RecordMQError()
		zap.L().Warn("failed to open mq channel", zap.Error(err))
		return
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(EmailQueue, true, false, false, false, nil); err != nil {
		GetMonitor().RecordMQError()
		zap.L().Warn("failed to declare email queue", zap.Error(err))
		return
	}

	body, err := json.Marshal(&msg)
	if err != nil {
		GetMonitor().RecordNotifyError()
		zap.L().Warn("failed to marshal email message", zap.Error(err))
		return
	}

	if err = ch.PublishWithContext(
		ctx,
		"",
		EmailQueue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		GetMonitor().RecordMQError()
		zap.L().Warn("failed to publish email message", zap.String("to", msg.To), zap.Error(err))
		return
	}
	GetMonitor().RecordEmailQueued()
}
