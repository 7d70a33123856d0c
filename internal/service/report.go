package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopkit/storefront-api/internal/dto"
	"github.com/shopkit/storefront-api/internal/repository"
)

const (
	dashboardCacheKey = "report:dashboard"
	reportWindow      = 30 * 24 * time.Hour
	topProductCount   = 5
	latestOrderCount  = 5
)

// invalidateDashboard drops the cached dashboard report. Called by whichever
// service writes orders or products.
func invalidateDashboard(ctx context.Context, rdb *redis.Client) {
	if rdb != nil {
		rdb.Del(ctx, dashboardCacheKey)
	}
}

type ReportService struct {
	reportRepo  repository.ReportRepository
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewReportService(reportRepo repository.ReportRepository, redisClient *redis.Client, cacheTTL time.Duration) *ReportService {
	return &ReportService{reportRepo: reportRepo, redisClient: redisClient, cacheTTL: cacheTTL}
}

// Dashboard aggregates order and catalog counts over a trailing 30-day
// window. The result is cached under a fixed report key; staleness is
// bounded by the TTL and by invalidation on writes.
func (s *ReportService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var resp dto.DashboardResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	since := time.Now().Add(-reportWindow)
	snap, err := s.reportRepo.Snapshot(ctx, since, topProductCount, latestOrderCount)
	if err != nil {
		return nil, fmt.Errorf("report snapshot: %w", err)
	}

	resp := &dto.DashboardResponse{
		TotalOrders:   snap.TotalOrders,
		RecentOrders:  snap.RecentOrders,
		TotalProducts: snap.TotalProducts,
		OutOfStock:    snap.OutOfStock,
		TotalRevenue:  snap.TotalRevenue,
		RecentRevenue: snap.RecentRevenue,
		TopProducts:   make([]dto.TopProduct, 0, len(snap.TopProducts)),
		LatestOrders:  make([]dto.RecentOrder, 0, len(snap.LatestOrders)),
	}
	for _, row := range snap.TopProducts {
		resp.TopProducts = append(resp.TopProducts, dto.TopProduct{
			ID: row.Product.ID, Name: row.Product.Name, OrderCount: row.OrderCount,
		})
	}
	for _, o := range snap.LatestOrders {
		resp.LatestOrders = append(resp.LatestOrders, dto.RecentOrder{
			ID: o.ID, Status: string(o.Status), TotalAmount: o.TotalAmount, CreatedAt: o.CreatedAt,
		})
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(resp); err == nil {
			s.redisClient.Set(ctx, dashboardCacheKey, data, s.cacheTTL)
		}
	}
	return resp, nil
}
