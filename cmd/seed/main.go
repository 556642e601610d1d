package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"log"

	"github.com/shopspring/decimal"

	"github.com/DineshVarikuppala/Dukanam/internal/config"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/category"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/product"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/store"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/user"
	"github.com/DineshVarikuppala/Dukanam/internal/repository/mysql"
)

// 初始化演示数据：管理员、一个店主和他的店、分类和几件商品。
// 重复执行不会重复插入（按邮箱判断）。
func main() {
	configPath := flag.String("config", "./config/config.yaml", "配置文件路径")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := mysql.Init(&cfg.MySQL)
	ctx := context.Background()

	userRepo := mysql.NewUserRepository(db)
	storeRepo := mysql.NewStoreRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	productRepo := mysql.NewProductRepository(db)

	admin := ensureUser(ctx, userRepo, &user.User{
		Email:        "admin@dukanam.local",
		MobileNumber: "9000000000",
		FirstName:    "Site",
		LastName:     "Admin",
		Role:         user.RoleAdmin,
	}, "admin123")
	log.Printf("admin user id=%d", admin.ID)

	owner := ensureUser(ctx, userRepo, &user.User{
		Email:        "owner@dukanam.local",
		MobileNumber: "9000000001",
		FirstName:    "Ravi",
		LastName:     "Kumar",
		Role:         user.RoleStoreOwner,
	}, "owner123")

	customer := ensureUser(ctx, userRepo, &user.User{
		Email:        "customer@dukanam.local",
		MobileNumber: "9000000002",
		FirstName:    "Asha",
		LastName:     "Reddy",
		Role:         user.RoleCustomer,
	}, "customer123")
	log.Printf("demo customer id=%d", customer.ID)

	st, err := storeRepo.GetByOwner(ctx, owner.ID)
	if err != nil {
		st = &store.Store{
			OwnerID:       owner.ID,
			StoreName:     "Ravi General Store",
			StoreAddress:  "12 MG Road, Hyderabad",
			ContactNumber: "9000000001",
		}
		if err := storeRepo.Create(ctx, st); err != nil {
			log.Fatalf("failed to create store: %v", err)
		}
	}
	log.Printf("store id=%d", st.ID)

	cats, err := categoryRepo.ListByStore(ctx, st.ID)
	if err != nil {
		log.Fatalf("failed to list categories: %v", err)
	}
	if len(cats) == 0 {
		grocery := &category.Category{StoreID: st.ID, CategoryName: "Groceries", Section: "Food"}
		snacks := &category.Category{StoreID: st.ID, CategoryName: "Snacks", Section: "Food"}
		for _, c := range []*category.Category{grocery, snacks} {
			if err := categoryRepo.Create(ctx, c); err != nil {
				log.Fatalf("failed to create category: %v", err)
			}
		}
		cats = []*category.Category{grocery, snacks}
	}

	existing, err := productRepo.ListByStore(ctx, st.ID)
	if err != nil {
		log.Fatalf("failed to list products: %v", err)
	}
	if len(existing) == 0 {
		seedProducts := []*product.Product{
			{
				StoreID:     st.ID,
				CategoryID:  cats[0].ID,
				ProductName: "Basmati Rice 5kg",
				Description: "Premium long grain basmati rice",
				Price:       decimal.NewFromFloat(12.50),
				Stock:       100,
				Active:      true,
				Images:      []product.Image{{URL: "/assets/img/products/rice.jpg"}},
			},
			{
				StoreID:     st.ID,
				CategoryID:  cats[0].ID,
				ProductName: "Sunflower Oil 1L",
				Description: "Cold pressed sunflower oil",
				Price:       decimal.NewFromFloat(4.75),
				Stock:       200,
				Active:      true,
				Images:      []product.Image{{URL: "/assets/img/products/oil.jpg"}},
			},
			{
				StoreID:     st.ID,
				CategoryID:  cats[1].ID,
				ProductName: "Masala Chips",
				Description: "Spicy potato chips, 200g pack",
				Price:       decimal.NewFromFloat(2.00),
				Stock:       500,
				Active:      true,
				Images:      []product.Image{{URL: "/assets/img/products/chips.jpg"}},
			},
		}
		for _, p := range seedProducts {
			if err := productRepo.Create(ctx, p); err != nil {
				log.Fatalf("failed to create product %q: %v", p.ProductName, err)
			}
			log.Printf("product %q id=%d price=%s", p.ProductName, p.ID, p.Price.StringFixed(2))
		}
	}

	log.Println("seed done")
}

func ensureUser(ctx context.Context, repo user.Repository, u *user.User, password string) *user.User {
	if existing, err := repo.GetByEmail(ctx, u.Email); err == nil {
		return existing
	}
	u.Salt = "dukanam"
	sum := sha256.Sum256([]byte(password + u.Salt))
	u.Password = hex.EncodeToString(sum[:])
	u.EmailNotificationsEnabled = true
	if err := repo.Create(ctx, u); err != nil {
		log.Fatalf("failed to create user %s: %v", u.Email, err)
	}
	return u
}
