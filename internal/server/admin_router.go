package server

import (
	"fmt"

	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"

	"github.com/DineshVarikuppala/Dukanam/internal/config"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/product"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/store"
	"github.com/DineshVarikuppala/Dukanam/internal/infra/mq"
	"github.com/DineshVarikuppala/Dukanam/internal/infra/redis"
	"github.com/DineshVarikuppala/Dukanam/internal/repository/mysql"
	"github.com/DineshVarikuppala/Dukanam/internal/service"
)

// RegisterAdminRoutes 注册商家/运营端的 HTTP 路由
// 端口通常是 8081，与买家端服务分离。
func RegisterAdminRoutes(app *iris.Application, cfg *config.Config) {
	// 初始化基础设施
	db := mysql.Init(&cfg.MySQL)
	redisClient := redis.Init(&cfg.Redis)
	mqConn := mq.Init(&cfg.RabbitMQ)

	// 仓储与服务
	userRepo := mysql.NewUserRepository(db)
	storeRepo := mysql.NewStoreRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	productRepo := mysql.NewProductRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	notifyRepo := mysql.NewNotificationRepository(db)

	productSvc := service.NewProductService(productRepo, redisClient)
	storeSvc := service.NewStoreService(db, storeRepo, categoryRepo, userRepo)
	notifySvc := service.NewNotificationService(notifyRepo, userRepo, mqConn)
	orderSvc := service.NewOrderService(orderRepo, userRepo, storeRepo, notifySvc)

	api := app.Party("/api")

	// ---------- 店铺管理 ----------

	api.Get("/stores", func(ctx iris.Context) {
		list, err := storeSvc.ListAll(ctx.Request().Context())
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	api.Post("/stores", func(ctx iris.Context) {
		var req struct {
			OwnerID       int64  `json:"owner_id"`
			StoreName     string `json:"store_name"`
			StoreAddress  string `json:"store_address"`
			ContactNumber string `json:"contact_number"`
			StoreLogoURL  string `json:"store_logo_url"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		st, err := storeSvc.CreateStore(ctx.Request().Context(), req.OwnerID, &store.Store{
			StoreName:     req.StoreName,
			StoreAddress:  req.StoreAddress,
			ContactNumber: req.ContactNumber,
			StoreLogoURL:  req.StoreLogoURL,
		})
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": st})
	})

	api.Get("/stores/{id:uint64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		st, err := storeSvc.GetByID(ctx.Request().Context(), int64(id))
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": st})
	})

	api.Get("/owners/{id:uint64}/store", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		st, err := storeSvc.GetByOwner(ctx.Request().Context(), int64(id))
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": st})
	})

	// ---------- 分类管理 ----------

	api.Get("/stores/{id:uint64}/categories", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		list, err := storeSvc.ListCategories(ctx.Request().Context(), int64(id))
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	api.Post("/stores/{id:uint64}/categories", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		var req struct {
			CategoryName string `json:"category_name"`
			Section      string `json:"section"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		c, err := storeSvc.CreateCategory(ctx.Request().Context(), int64(id), req.CategoryName, req.Section)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": c})
	})

	api.Put("/categories/{id:uint64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		var req struct {
			CategoryName string `json:"category_name"`
			Section      string `json:"section"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		c, err := storeSvc.UpdateCategory(ctx.Request().Context(), int64(id), req.CategoryName, req.Section)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": c})
	})

	api.Delete("/categories/{id:uint64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		if err := storeSvc.DeleteCategory(ctx.Request().Context(), int64(id)); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "deleted"})
	})

	api.Get("/categories/{id:uint64}/subcategories", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		list, err := storeSvc.ListSubcategories(ctx.Request().Context(), int64(id))
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	api.Post("/categories/{id:uint64}/subcategories", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		var req struct {
			SubcategoryName string `json:"subcategory_name"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		sc, err := storeSvc.CreateSubcategory(ctx.Request().Context(), int64(id), req.SubcategoryName)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": sc})
	})

	api.Delete("/subcategories/{id:uint64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		if err := storeSvc.DeleteSubcategory(ctx.Request().Context(), int64(id)); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "deleted"})
	})

	// ---------- 商品管理 ----------

	// 店铺商品列表（后台用：包含已下架商品）
	api.Get("/stores/{id:uint64}/products", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		list, err := productSvc.ListByStore(ctx.Request().Context(), int64(id))
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	// 创建商品
	api.Post("/products", func(ctx iris.Context) {
		var req productRequest
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		p := &product.Product{}
		if err := req.applyTo(p, false); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := productSvc.Create(ctx.Request().Context(), p); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	// 更新商品
	api.Put("/products/{id:uint64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		p, err := productSvc.GetByID(ctx.Request().Context(), int64(id))
		if err != nil {
			fail(ctx, err)
			return
		}
		var req productRequest
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := req.applyTo(p, true); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := productSvc.Update(ctx.Request().Context(), p); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	// 删除商品
	api.Delete("/products/{id:uint64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		if err := productSvc.Delete(ctx.Request().Context(), int64(id)); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "deleted"})
	})

	// ---------- 订单管理 ----------

	// 店铺订单列表
	api.Get("/orders/store", func(ctx iris.Context) {
		storeID := ctx.URLParamInt64Default("storeId", 0)
		list, err := orderSvc.ListByStore(ctx.Request().Context(), storeID)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	// 店主订单列表（经由店铺归属关联）
	api.Get("/orders/owner", func(ctx iris.Context) {
		ownerID := ctx.URLParamInt64Default("ownerId", 0)
		list, err := orderSvc.ListByOwner(ctx.Request().Context(), ownerID)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	// 订单状态流转
	api.Put("/orders/{id:uint64}/status", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		status := ctx.URLParam("status")
		if status == "" {
			var req struct {
				Status string `json:"status"`
			}
			if err := ctx.ReadJSON(&req); err == nil {
				status = req.Status
			}
		}
		if err := orderSvc.UpdateStatus(ctx.Request().Context(), int64(id), status); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "updated"})
	})

	// ---------- 监控 ----------

	api.Get("/monitor", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"code": 0, "data": service.GetMonitor().GetStats()})
	})
}

// ---- 辅助结构与函数 ----

type productRequest struct {
	StoreID       int64    `json:"store_id"`
	CategoryID    int64    `json:"category_id"`
	SubcategoryID *int64   `json:"subcategory_id"`
	ProductName   string   `json:"product_name"`
	Description   string   `json:"description"`
	Price         string   `json:"price"`
	Stock         int64    `json:"stock"`
	Active        *bool    `json:"active"`
	Images        []string `json:"images"`
}

func (r *productRequest) applyTo(p *product.Product, partial bool) error {
	if r.ProductName == "" && !partial {
		return fmt.Errorf("product_name is required")
	}
	if r.ProductName != "" {
		p.ProductName = r.ProductName
	}
	if r.StoreID != 0 {
		p.StoreID = r.StoreID
	}
	if p.StoreID == 0 && !partial {
		return fmt.Errorf("store_id is required")
	}
	if r.CategoryID != 0 {
		p.CategoryID = r.CategoryID
	}
	if r.SubcategoryID != nil {
		p.SubcategoryID = r.SubcategoryID
	}
	if r.Description != "" {
		p.Description = r.Description
	}

	if r.Price != "" {
		price, err := decimal.NewFromString(r.Price)
		if err != nil {
			return fmt.Errorf("invalid price: %s", r.Price)
		}
		p.Price = price
	} else if !partial {
		return fmt.Errorf("price is required")
	}

	if r.Stock != 0 {
		p.Stock = r.Stock
	}
	if r.Active != nil {
		p.Active = *r.Active
	} else if !partial {
		p.Active = true
	}

	if r.Images != nil {
		images := make([]product.Image, 0, len(r.Images))
		for i, url := range r.Images {
			images = append(images, product.Image{URL: url, Sort: i})
		}
		p.Images = images
	}
	return nil
}
