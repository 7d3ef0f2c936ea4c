package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"meal-planner/internal/core/plan"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// remoteKeyPrefix 每個使用者一筆 JSON 紀錄，固定鍵
const remoteKeyPrefix = "mealplan:user:"

// Service 遠端計畫存儲
// 讀取路徑第二層：本地快取不在／過期時才查，查到就採納並
// 回寫本地。寫入路徑 write-through：每次成功生成／換餐都同步寫
type Service struct {
	client *redis.Client
	config *config.Config
}

// NewService 創建遠端存儲服務
func NewService(cfg *config.Config) (*Service, error) {
	if !cfg.Redis.Enabled {
		return &Service{config: cfg}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Service{
		client: client,
		config: cfg,
	}, nil
}

// Get 讀取使用者的遠端紀錄
func (s *Service) Get(ctx context.Context, userID string) (*plan.CacheRecord, error) {
	if s == nil || s.client == nil {
		return nil, common.ErrCacheDisabled
	}

	data, err := s.client.Get(ctx, remoteKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			common.LogCacheMiss("remote", userID)
			return nil, common.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get remote record: %w", err)
	}

	var record plan.CacheRecord
	if err := json.Unmarshal(data, &record); err != nil {
		// 遠端內容損毀也當 cache miss，不往使用者冒
		common.LogWarn("遠端紀錄無法解析，視為未命中")
		return nil, common.ErrMalformedCache
	}

	common.LogCacheHit("remote", userID)
	return &record, nil
}

// Set 寫入使用者的遠端紀錄，TTL 與新鮮窗口一致
func (s *Service) Set(ctx context.Context, userID string, record plan.CacheRecord) error {
	if s == nil || s.client == nil {
		return nil
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if err := s.client.Set(ctx, remoteKey(userID), data, s.config.Cache.Freshness).Err(); err != nil {
		return fmt.Errorf("failed to set remote record: %w", err)
	}

	return nil
}

// Close 關閉連線
func (s *Service) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func remoteKey(userID string) string {
	return remoteKeyPrefix + userID
}
