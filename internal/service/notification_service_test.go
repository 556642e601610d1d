package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/notification"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/user"
	"github.com/DineshVarikuppala/Dukanam/internal/repository/mysql"
)

func TestNotificationUnreadAndMarkRead(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(
		mysql.NewNotificationRepository(db),
		mysql.NewUserRepository(db),
		nil,
	)

	u := seedUser(t, db, user.RoleCustomer)
	other := seedUser(t, db, user.RoleCustomer)

	n1 := &notification.Notification{RecipientID: u.ID, Message: "first"}
	n2 := &notification.Notification{RecipientID: u.ID, Message: "second"}
	n3 := &notification.Notification{RecipientID: other.ID, Message: "not yours"}
	for _, n := range []*notification.Notification{n1, n2, n3} {
		require.NoError(t, db.Create(n).Error)
	}

	list, err := svc.ListUnread(ctxb(), u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, svc.MarkRead(ctxb(), n1.ID))

	list, err = svc.ListUnread(ctxb(), u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "second", list[0].Message)

	require.ErrorIs(t, svc.MarkRead(ctxb(), 99999), ErrNotFound)
}

func TestOrderStatusChanged_BestEffort(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	customerID, _, orderID := placeTestOrder(t, db)

	// MQ 未配置也不影响流转，只是没有邮件入队
	before := GetMonitor().EmailQueued
	require.NoError(t, svc.UpdateStatus(ctxb(), orderID, "ACCEPTED"))
	require.Equal(t, before, GetMonitor().EmailQueued)

	var rows []notification.Notification
	require.NoError(t, db.Where("recipient_id = ?", customerID).Order("id").Find(&rows).Error)
	require.Len(t, rows, 2)
	require.Contains(t, rows[1].Message, "ACCEPTED")
}
