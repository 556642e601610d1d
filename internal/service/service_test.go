package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/product"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/store"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/user"
	"github.com/DineshVarikuppala/Dukanam/internal/repository/mysql"
)

// newTestDB 每个测试一份独立的内存 sqlite，表结构与生产一致
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(mysql.Models()...))
	return db
}

var seedSeq int

// seedUser 造一个用户，邮箱和手机号自动去重
func seedUser(t *testing.T, db *gorm.DB, role string) *user.User {
	t.Helper()

	seedSeq++
	u := &user.User{
		Email:                     fmt.Sprintf("u%d@test.local", seedSeq),
		MobileNumber:              fmt.Sprintf("90000%05d", seedSeq),
		FirstName:                 "Test",
		LastName:                  fmt.Sprintf("User%d", seedSeq),
		Password:                  "x",
		Salt:                      "s",
		Role:                      role,
		EmailNotificationsEnabled: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// seedStore 给店主造一家店
func seedStore(t *testing.T, db *gorm.DB, ownerID int64) *store.Store {
	t.Helper()

	seedSeq++
	st := &store.Store{
		OwnerID:   ownerID,
		StoreName: fmt.Sprintf("Store %d", seedSeq),
	}
	require.NoError(t, db.Create(st).Error)
	return st
}

// seedProduct 在店铺下造一件商品，价格用字符串写明
func seedProduct(t *testing.T, db *gorm.DB, storeID int64, name, price string) *product.Product {
	t.Helper()

	d, err := decimal.NewFromString(price)
	require.NoError(t, err)
	p := &product.Product{
		StoreID:     storeID,
		ProductName: name,
		Price:       d,
		Stock:       100,
		Active:      true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func newCartService(db *gorm.DB) *CartService {
	return NewCartService(
		mysql.NewCartRepository(db),
		mysql.NewProductRepository(db),
		mysql.NewUserRepository(db),
		mysql.NewStoreRepository(db),
	)
}

func newCheckoutService(db *gorm.DB) *CheckoutService {
	notifySvc := NewNotificationService(
		mysql.NewNotificationRepository(db),
		mysql.NewUserRepository(db),
		nil,
	)
	return NewCheckoutService(
		db,
		mysql.NewUserRepository(db),
		mysql.NewStoreRepository(db),
		notifySvc,
	)
}

func ctxb() context.Context {
	return context.Background()
}
