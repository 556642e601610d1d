package mysql

import (
	"log"
	"sync"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/DineshVarikuppala/Dukanam/internal/config"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/address"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/cart"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/category"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/notification"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/order"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/product"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/store"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/user"
)

var (
	db   *gorm.DB
	once sync.Once
)

// Models 所有需要迁移的表，测试里用 sqlite 复用同一份
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&store.Store{},
		&category.Category{},
		&category.Subcategory{},
		&product.Product{},
		&product.Image{},
		&cart.Cart{},
		&cart.CartItem{},
		&order.Order{},
		&order.OrderItem{},
		&notification.Notification{},
		&address.Address{},
	}
}

// Init 初始化全局 GORM 实例并自动迁移表结构
func Init(cfg *config.MySQLConfig) *gorm.DB {
	once.Do(func() {
		var err error
		db, err = gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to connect mysql: %v", err)
		}

		if err = db.AutoMigrate(Models()...); err != nil {
			log.Fatalf("auto migrate failed: %v", err)
		}
	})
	return db
}

// DB 获取全局 DB
func DB() *gorm.DB {
	return db
}
