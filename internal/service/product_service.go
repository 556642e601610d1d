package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	radix "github.com/mediocregopher/radix/v3"
	"go.uber.org/zap"

	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/product"
)

const (
	productCacheKey        = "catalog:product:%d" // productID
	productCacheTTLSeconds = 300
)

// ProductService 商品目录服务，详情读路径带 Redis 缓存
type ProductService struct {
	repo  product.Repository
	redis radix.Client
}

// NewProductService 创建商品服务，redis 可为 nil（直接读库）
func NewProductService(repo product.Repository, redis radix.Client) *ProductService {
	return &ProductService{repo: repo, redis: redis}
}

// GetByID 查询商品详情，优先命中缓存
func (s *ProductService) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	if p, ok := s.cacheGet(id); ok {
		return p, nil
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, wrapf(ErrNotFound, "product %d", id)
		}
		return nil, err
	}

	s.cacheSet(p)
	return p, nil
}

// ListActive 前台商品列表（仅上架商品）
func (s *ProductService) ListActive(ctx context.Context) ([]*product.Product, error) {
	return s.repo.ListActive(ctx)
}

// ListByStore 店铺商品列表
func (s *ProductService) ListByStore(ctx context.Context, storeID int64) ([]*product.Product, error) {
	return s.repo.ListByStore(ctx, storeID)
}

// Search 按名称子串过滤上架商品，keyword 为空时返回全部
func (s *ProductService) Search(ctx context.Context, keyword string) ([]*product.Product, error) {
	list, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if keyword == "" {
		return list, nil
	}

	// 内存中做简单子串匹配，不做任何排序加权
	kw := strings.ToLower(keyword)
	filtered := make([]*product.Product, 0, len(list))
	for _, p := range list {
		if strings.Contains(strings.ToLower(p.ProductName), kw) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Create 新增商品
func (s *ProductService) Create(ctx context.Context, p *product.Product) error {
	if p.ProductName == "" {
		return wrapf(ErrInvalidInput, "product name is required")
	}
	if p.Price.IsNegative() {
		return wrapf(ErrInvalidInput, "price must not be negative")
	}
	return s.repo.Create(ctx, p)
}

// Update 更新商品并失效缓存
func (s *ProductService) Update(ctx context.Context, p *product.Product) error {
	if p.Price.IsNegative() {
		return wrapf(ErrInvalidInput, "price must not be negative")
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	s.cacheDel(p.ID)
	return nil
}

// Delete 删除商品并失效缓存
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cacheDel(id)
	return nil
}

func (s *ProductService) cacheGet(id int64) (*product.Product, bool) {
	if s.redis == nil {
		return nil, false
	}
	var raw string
	if err := s.redis.Do(radix.Cmd(&raw, "GET", fmt.Sprintf(productCacheKey, id))); err != nil {
		GetMonitor().RecordRedisError()
		zap.L().Warn("product cache get failed", zap.Int64("product_id", id), zap.Error(err))
		return nil, false
	}
	if raw == "" {
		return nil, false
	}
	var p product.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		// 缓存损坏，清掉走回源
		s.cacheDel(id)
		return nil, false
	}
	return &p, true
}

func (s *ProductService) cacheSet(p *product.Product) {
	if s.redis == nil {
		return
	}
	body, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.redis.Do(radix.FlatCmd(nil, "SETEX", fmt.Sprintf(productCacheKey, p.ID), productCacheTTLSeconds, body)); err != nil {
		GetMonitor().RecordRedisError()
		zap.L().Warn("product cache set failed", zap.Int64("product_id", p.ID), zap.Error(err))
	}
}

func (s *ProductService) cacheDel(id int64) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Do(radix.Cmd(nil, "DEL", fmt.Sprintf(productCacheKey, id))); err != nil {
		GetMonitor().RecordRedisError()
		zap.L().Warn("product cache del failed", zap.Int64("product_id", id), zap.Error(err))
	}
}
