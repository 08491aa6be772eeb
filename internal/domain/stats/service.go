// internal/domain/stats/service.go
package stats

import (
	"context"
	"fmt"

	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/domain/payment"
	"github.com/boffobaby/inventory-backend/internal/pkg/apperrors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Service computes the aggregate bundles behind the page-data endpoints.
// Every bundle is derived from the base tables on demand; Redis only
// short-circuits repeated reads within the cache TTL.
type Service struct {
	db       *gorm.DB
	config   *config.Config
	cache    *cache
	payments *payment.Service
}

// NewService creates a new stats service
func NewService(db *gorm.DB, cfg *config.Config, redisClient *redis.Client, payments *payment.Service) *Service {
	return &Service{
		db:       db,
		config:   cfg,
		cache:    newCache(redisClient, cfg.Stats.CacheTTL),
		payments: payments,
	}
}

// AdminPage returns the stats bundle for one admin page. The page name maps
// to the dashboard route it serves.
func (s *Service) AdminPage(ctx context.Context, page string) (interface{}, error) {
	key := adminKey(page)

	switch page {
	case "dashboard":
		return fetch(ctx, s.cache, key, s.adminDashboard)
	case "products":
		return fetch(ctx, s.cache, key, s.productsStats)
	case "batches":
		return fetch(ctx, s.cache, key, s.batchesStats)
	case "distributions":
		return fetch(ctx, s.cache, key, s.distributionsStats)
	case "goods_requests":
		return fetch(ctx, s.cache, key, s.goodsRequestsStats)
	case "payments":
		return fetch(ctx, s.cache, key, func() (*PaymentsStats, error) {
			return s.paymentsStats(0)
		})
	case "resellers":
		return fetch(ctx, s.cache, key, s.resellersStats)
	case "stock_movements":
		return fetch(ctx, s.cache, key, s.stockMovementsStats)
	default:
		return nil, fmt.Errorf("unknown admin page %q: %w", page, apperrors.ErrNotFound)
	}
}

// ResellerPage returns the stats bundle for one reseller page, scoped to the
// calling reseller.
func (s *Service) ResellerPage(ctx context.Context, resellerID uint, page string) (interface{}, error) {
	key := resellerKey(resellerID, page)

	switch page {
	case "dashboard":
		return fetch(ctx, s.cache, key, func() (*DashboardStats, error) {
			return s.resellerDashboard(resellerID)
		})
	case "sales":
		return fetch(ctx, s.cache, key, func() (*SalesStats, error) {
			return s.salesStats(resellerID)
		})
	case "stock":
		return fetch(ctx, s.cache, key, func() (*StockStats, error) {
			return s.stockStats(resellerID)
		})
	case "goods_requests":
		return fetch(ctx, s.cache, key, func() (*GoodsRequestStats, error) {
			return s.resellerGoodsRequestsStats(resellerID)
		})
	case "payments":
		return fetch(ctx, s.cache, key, func() (*PaymentsStats, error) {
			return s.paymentsStats(resellerID)
		})
	case "account_summary":
		return fetch(ctx, s.cache, key, func() (*payment.Account, error) {
			return s.payments.AccountFor(resellerID)
		})
	default:
		return nil, fmt.Errorf("unknown reseller page %q: %w", page, apperrors.ErrNotFound)
	}
}

// fetch serves from cache when possible, otherwise computes and caches.
func fetch[T any](ctx context.Context, c *cache, key string, compute func() (*T, error)) (*T, error) {
	var cached T
	if c.get(ctx, key, &cached) {
		return &cached, nil
	}

	value, err := compute()
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, value)
	return value, nil
}
