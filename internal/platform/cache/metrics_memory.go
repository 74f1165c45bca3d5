package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"stockmanager/internal/feature/metrics/domain/entity"
	"stockmanager/internal/feature/metrics/usecase"
)

// MetricsMemory はプロセス内のMetricsCache実装です。
// Redisが利用できない環境向けのフォールバックで、失効は読み取り時の遅延チェックのみです
//（バックグラウンドの掃除は行いません）。
type MetricsMemory struct {
	mu        sync.Mutex
	items     map[string]memoryEntry
	namespace string
	now       func() time.Time
}

type memoryEntry struct {
	rec       entity.MetricsRecord
	expiresAt time.Time
}

// MetricsMemoryがMetricsCacheを実装していることをコンパイル時に検証します。
var _ usecase.MetricsCache = (*MetricsMemory)(nil)

// NewMetricsMemory はMetricsMemoryの新しいインスタンスを生成します。
func NewMetricsMemory() *MetricsMemory {
	return &MetricsMemory{
		items:     map[string]memoryEntry{},
		namespace: "metrics",
		now:       time.Now,
	}
}

// Get はキャッシュ済みの指標レコードを返します。期限切れエントリはここで削除します。
func (c *MetricsMemory) Get(_ context.Context, userID uint, symbol string, view entity.ViewMode) (entity.MetricsRecord, bool) {
	key := metricsKey(c.namespace, userID, symbol, view)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.items, key)
		return nil, false
	}
	return e.rec, true
}

// Set は指標レコードを挿入時点からの絶対TTL付きで保存します。
func (c *MetricsMemory) Set(_ context.Context, userID uint, symbol string, view entity.ViewMode, rec entity.MetricsRecord, ttl time.Duration) {
	key := metricsKey(c.namespace, userID, symbol, view)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = memoryEntry{rec: rec, expiresAt: c.now().Add(ttl)}
}

// Invalidate は(ユーザー, シンボル)のすべての表示モードのエントリを削除します。
func (c *MetricsMemory) Invalidate(_ context.Context, userID uint, symbol string) {
	prefix := metricsKeyPrefix(c.namespace, userID, symbol)

	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
}
