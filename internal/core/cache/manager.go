package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"meal-planner/internal/core/plan"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// Manager 本地計畫快取
// 讀取路徑第一層：記憶體 map + JSON 快照檔，key 是 user ID。
// 紀錄的有效性看 LastGeneratedAt 是否在 7 天新鮮窗口內，
// 過期的紀錄在讀取時直接刪除
type Manager struct {
	config *config.Config
	mu     sync.RWMutex
	store  map[string]plan.CacheRecord
	stats  cacheStats
	now    func() time.Time // 可注入，測試過期行為用
}

// cacheStats 緩存統計
type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
}

// NewManager 創建本地快取，啟動時載入快照檔並開清理協程
func NewManager(cfg *config.Config) *Manager {
	if !cfg.Cache.Enabled {
		common.LogInfo("Local plan cache disabled")
		return nil
	}

	m := &Manager{
		config: cfg,
		store:  make(map[string]plan.CacheRecord),
		now:    time.Now,
	}
	m.loadSnapshot()

	// 啟動清理過期紀錄的協程
	go m.startCleanup()

	common.LogInfo("本地計畫快取已初始化",
		zap.Int("最大容量", cfg.Cache.MaxSize),
		zap.Duration("新鮮窗口", cfg.Cache.Freshness),
		zap.Duration("清理間隔", cfg.Cache.CleanupInterval),
	)

	return m
}

// Get 讀取使用者的快取紀錄
// 存在但過期 → 刪除並回傳 ErrCacheExpired，呼叫端落到下一層
func (m *Manager) Get(ctx context.Context, userID string) (*plan.CacheRecord, error) {
	if m == nil {
		return nil, common.ErrCacheDisabled
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	record, exists := m.store[userID]
	if !exists {
		m.stats.misses++
		common.LogCacheMiss("local", userID)
		return nil, common.ErrCacheMiss
	}

	if m.expired(record) {
		delete(m.store, userID)
		m.stats.evictions++
		m.persistSnapshotLocked()
		common.LogInfo("快取已過期",
			zap.String("user_id", userID),
			zap.Time("last_generated_at", record.LastGeneratedAt),
		)
		return nil, common.ErrCacheExpired
	}

	m.stats.hits++
	common.LogCacheHit("local", userID)
	copied := record
	return &copied, nil
}

// Set 寫入使用者的快取紀錄並更新快照檔
func (m *Manager) Set(ctx context.Context, userID string, record plan.CacheRecord) error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// 容量滿時先清過期的
	if len(m.store) >= m.config.Cache.MaxSize {
		if evicted := m.cleanupLocked(); evicted == 0 {
			// 還是滿：丟掉最舊的一筆
			m.evictOldestLocked()
		}
	}

	m.store[userID] = record
	m.persistSnapshotLocked()

	common.LogInfo("快取已儲存",
		zap.String("user_id", userID),
		zap.Time("last_generated_at", record.LastGeneratedAt),
	)
	return nil
}

// Delete 移除使用者的快取紀錄
func (m *Manager) Delete(ctx context.Context, userID string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, userID)
	m.persistSnapshotLocked()
}

// expired 新鮮窗口判定：now - LastGeneratedAt >= 7 天即過期
func (m *Manager) expired(record plan.CacheRecord) bool {
	return m.now().Sub(record.LastGeneratedAt) >= m.config.Cache.Freshness
}

// startCleanup 週期清理過期紀錄
func (m *Manager) startCleanup() {
	ticker := time.NewTicker(m.config.Cache.CleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		count := m.cleanupLocked()
		if count > 0 {
			m.persistSnapshotLocked()
		}
		m.mu.Unlock()
		if count > 0 {
			common.LogInfo("Cleaned up expired plan records",
				zap.Int("count", count),
			)
		}
	}
}

func (m *Manager) cleanupLocked() int {
	count := 0
	for userID, record := range m.store {
		if m.expired(record) {
			delete(m.store, userID)
			m.stats.evictions++
			count++
		}
	}
	return count
}

func (m *Manager) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	for userID, record := range m.store {
		if oldestKey == "" || record.LastGeneratedAt.Before(oldestAt) {
			oldestKey = userID
			oldestAt = record.LastGeneratedAt
		}
	}
	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
	}
}

// loadSnapshot 從快照檔還原本地層；解析失敗靜默當作空快取
func (m *Manager) loadSnapshot() {
	path := m.config.Cache.SnapshotPath
	if path == "" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return // 檔案不存在是正常情況
	}
	var snapshot map[string]plan.CacheRecord
	if err := json.Unmarshal(data, &snapshot); err != nil {
		// 快取損毀不往上拋，直接丟棄
		common.LogWarn("快取快照無法解析，重新開始",
			zap.String("path", path),
			zap.Error(err),
		)
		return
	}
	m.store = snapshot
}

// persistSnapshotLocked 把整個本地層寫回快照檔，呼叫端需持鎖
func (m *Manager) persistSnapshotLocked() {
	path := m.config.Cache.SnapshotPath
	if path == "" {
		return
	}
	data, err := json.Marshal(m.store)
	if err != nil {
		common.LogError("快取快照序列化失敗", zap.Error(err))
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		common.LogError("快取目錄建立失敗", zap.Error(err))
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		common.LogError("快取快照寫入失敗", zap.Error(err))
	}
}

// GetStats 獲取緩存統計信息
func (m *Manager) GetStats() map[string]interface{} {
	if m == nil {
		return map[string]interface{}{"enabled": false}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"size":      len(m.store),
		"max_size":  m.config.Cache.MaxSize,
		"hits":      m.stats.hits,
		"misses":    m.stats.misses,
		"evictions": m.stats.evictions,
	}
}

// Close 關閉快取管理器
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persistSnapshotLocked()
	common.LogInfo("本地快取已關閉",
		zap.Int64("命中次數", m.stats.hits),
		zap.Int64("未命中次數", m.stats.misses),
	)
	return nil
}
