package server

import (
	"errors"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/DineshVarikuppala/Dukanam/internal/auth"
	"github.com/DineshVarikuppala/Dukanam/internal/config"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/address"
	"github.com/DineshVarikuppala/Dukanam/internal/infra/mq"
	"github.com/DineshVarikuppala/Dukanam/internal/infra/redis"
	"github.com/DineshVarikuppala/Dukanam/internal/middleware"
	"github.com/DineshVarikuppala/Dukanam/internal/repository/mysql"
	"github.com/DineshVarikuppala/Dukanam/internal/service"
)

// fail 把服务层错误翻译成 HTTP 状态码并输出统一的 JSON 信封
func fail(ctx iris.Context, err error) {
	status := 500
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = 404
	case errors.Is(err, service.ErrUnauthorized):
		status = 403
	case errors.Is(err, service.ErrInvalidInput):
		status = 400
	case errors.Is(err, service.ErrInvalidState):
		status = 409
	}
	ctx.StopWithJSON(status, iris.Map{"code": status, "msg": err.Error()})
}

// RegisterRoutes 注册买家端的 HTTP 路由
func RegisterRoutes(app *iris.Application, cfg *config.Config) {
	// 初始化基础设施
	db := mysql.Init(&cfg.MySQL)
	redisClient := redis.Init(&cfg.Redis)
	mqConn := mq.Init(&cfg.RabbitMQ)

	// 仓储与服务
	userRepo := mysql.NewUserRepository(db)
	storeRepo := mysql.NewStoreRepository(db)
	productRepo := mysql.NewProductRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	notifyRepo := mysql.NewNotificationRepository(db)
	addressRepo := mysql.NewAddressRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)

	userSvc := service.NewUserService(userRepo, &cfg.JWT)
	productSvc := service.NewProductService(productRepo, redisClient)
	cartSvc := service.NewCartService(cartRepo, productRepo, userRepo, storeRepo)
	notifySvc := service.NewNotificationService(notifyRepo, userRepo, mqConn)
	checkoutSvc := service.NewCheckoutService(db, userRepo, storeRepo, notifySvc)
	orderSvc := service.NewOrderService(orderRepo, userRepo, storeRepo, notifySvc)
	addressSvc := service.NewAddressService(db, addressRepo)
	storeSvc := service.NewStoreService(db, storeRepo, categoryRepo, userRepo)

	tokenCache := auth.NewTokenCache(redisClient, time.Duration(cfg.Auth.TokenCacheTTLSeconds)*time.Second)

	api := app.Party("/api")

	// 健康检查
	api.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{
			"code": 0,
			"msg":  "ok",
		})
	})

	// 用户注册/登录
	api.Post("/register", func(ctx iris.Context) {
		var req service.RegisterRequest
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		u, err := userSvc.Register(ctx.Request().Context(), &req)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": u})
	})

	api.Post("/login", middleware.LoginRateLimit(), func(ctx iris.Context) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		token, err := userSvc.Login(ctx.Request().Context(), req.Email, req.Password)
		if err != nil {
			ctx.StopWithJSON(401, iris.Map{"code": 401, "msg": "invalid email or password"})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": iris.Map{"token": token}})
	})

	// 需要登录的接口；先查 Redis 缓存的解析结果，未命中再校验签名
	authAPI := api.Party("/", func(ctx iris.Context) {
		token := ctx.GetHeader("Authorization")
		if token == "" {
			ctx.StopWithJSON(401, iris.Map{"code": 401, "msg": "missing token"})
			return
		}

		claims, hit, err := tokenCache.Get(ctx.Request().Context(), token)
		if err != nil || !hit {
			claims, err = auth.ParseToken(&cfg.JWT, token)
			if err != nil {
				ctx.StopWithJSON(401, iris.Map{"code": 401, "msg": "invalid token"})
				return
			}
			_ = tokenCache.Set(ctx.Request().Context(), token, claims)
		}

		ctx.Values().Set("user_id", claims.UserID)
		ctx.Values().Set("email", claims.Email)
		ctx.Values().Set("role", claims.Role)
		ctx.Next()
	})

	// ---------- 商品浏览 ----------

	// 商品列表（支持名称搜索）
	authAPI.Get("/products", func(ctx iris.Context) {
		keyword := ctx.URLParam("q")
		list, err := productSvc.Search(ctx.Request().Context(), keyword)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	// 商品详情
	authAPI.Get("/products/{id:uint64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		p, err := productSvc.GetByID(ctx.Request().Context(), int64(id))
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	// 店铺列表与店铺商品
	authAPI.Get("/stores", func(ctx iris.Context) {
		list, err := storeSvc.ListAll(ctx.Request().Context())
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	authAPI.Get("/stores/{id:uint64}/products", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		list, err := productSvc.ListByStore(ctx.Request().Context(), int64(id))
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	authAPI.Get("/stores/{id:uint64}/categories", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		list, err := storeSvc.ListCategories(ctx.Request().Context(), int64(id))
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	// ---------- 购物车 ----------

	authAPI.Post("/cart/add", func(ctx iris.Context) {
		var req struct {
			ProductID int64 `json:"product_id"`
			Quantity  int64 `json:"quantity"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		userID := ctx.Values().GetInt64Default("user_id", 0)
		if err := cartSvc.AddItem(ctx.Request().Context(), userID, req.ProductID, req.Quantity); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "added"})
	})

	authAPI.Get("/cart", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		view, err := cartSvc.View(ctx.Request().Context(), userID)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": view})
	})

	// 覆盖数量；quantity <= 0 时等价于删除
	authAPI.Put("/cart/items/{id:uint64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		quantity := ctx.URLParamInt64Default("quantity", 1)
		userID := ctx.Values().GetInt64Default("user_id", 0)
		if err := cartSvc.SetQuantity(ctx.Request().Context(), userID, int64(id), quantity); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "updated"})
	})

	authAPI.Delete("/cart/items/{id:uint64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		userID := ctx.Values().GetInt64Default("user_id", 0)
		if err := cartSvc.RemoveItem(ctx.Request().Context(), userID, int64(id)); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "removed"})
	})

	// ---------- 结算与订单 ----------

	// 对购物车中某一家店铺的行结算成一张订单
	authAPI.Post("/orders/place", middleware.CheckoutRateLimit(), func(ctx iris.Context) {
		storeID := ctx.URLParamInt64Default("storeId", 0)
		deliveryAddress := ctx.URLParam("address")
		paymentMethod := ctx.URLParam("paymentMethod")
		userID := ctx.Values().GetInt64Default("user_id", 0)

		orderID, err := checkoutSvc.PlaceOrder(ctx.Request().Context(), userID, storeID, deliveryAddress, paymentMethod)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": iris.Map{"order_id": orderID}})
	})

	authAPI.Get("/orders/customer", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		list, err := orderSvc.ListByCustomer(ctx.Request().Context(), userID)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	authAPI.Get("/orders/{id:uint64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		o, err := orderSvc.GetByID(ctx.Request().Context(), int64(id))
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": o})
	})

	// ---------- 通知 ----------

	authAPI.Get("/notifications/unread", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		list, err := notifySvc.ListUnread(ctx.Request().Context(), userID)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	authAPI.Put("/notifications/{id:uint64}/read", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		if err := notifySvc.MarkRead(ctx.Request().Context(), int64(id)); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "read"})
	})

	// ---------- 收货地址 ----------

	authAPI.Get("/addresses", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		list, err := addressSvc.List(ctx.Request().Context(), userID)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	authAPI.Get("/addresses/default", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		a, err := addressSvc.GetDefault(ctx.Request().Context(), userID)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": a})
	})

	authAPI.Post("/addresses", func(ctx iris.Context) {
		var req struct {
			Label       string `json:"label"`
			FullAddress string `json:"full_address"`
			IsDefault   bool   `json:"is_default"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		a := &address.Address{
			UserID:      ctx.Values().GetInt64Default("user_id", 0),
			Label:       req.Label,
			FullAddress: req.FullAddress,
			IsDefault:   req.IsDefault,
		}
		if err := addressSvc.Create(ctx.Request().Context(), a); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": a})
	})

	authAPI.Put("/addresses/{id:uint64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		var req struct {
			Label       string `json:"label"`
			FullAddress string `json:"full_address"`
			IsDefault   bool   `json:"is_default"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		userID := ctx.Values().GetInt64Default("user_id", 0)
		a, err := addressSvc.Update(ctx.Request().Context(), userID, int64(id), &address.Address{
			Label:       req.Label,
			FullAddress: req.FullAddress,
			IsDefault:   req.IsDefault,
		})
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": a})
	})

	authAPI.Delete("/addresses/{id:uint64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		userID := ctx.Values().GetInt64Default("user_id", 0)
		if err := addressSvc.Delete(ctx.Request().Context(), userID, int64(id)); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "deleted"})
	})

	// ---------- 用户偏好 ----------

	authAPI.Put("/profile/email-notifications", func(ctx iris.Context) {
		var req struct {
			Enabled bool `json:"enabled"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		userID := ctx.Values().GetInt64Default("user_id", 0)
		if err := userSvc.SetEmailNotifications(ctx.Request().Context(), userID, req.Enabled); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "updated"})
	})
}
