package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"stockmanager/internal/feature/metrics/domain/entity"
	"stockmanager/internal/feature/metrics/usecase"
)

// MetricsRedis はRedisを使ったMetricsCache実装です。
// ストア障害はミス扱い・書き込み失敗は無視のベストエフォートで動作し、
// エントリはRedisのキーTTLにより挿入時点から絶対時間で失効します。
type MetricsRedis struct {
	rdb       *redis.Client
	namespace string
}

// MetricsRedisがMetricsCacheを実装していることをコンパイル時に検証します。
var _ usecase.MetricsCache = (*MetricsRedis)(nil)

// NewMetricsRedis は指定されたRedisクライアントでMetricsRedisの新しいインスタンスを生成します。
// namespace が空なら "metrics" を使います。
func NewMetricsRedis(rdb *redis.Client, namespace string) *MetricsRedis {
	if namespace == "" {
		namespace = "metrics"
	}
	return &MetricsRedis{rdb: rdb, namespace: namespace}
}

// Get はキャッシュ済みの指標レコードを返します。
// 壊れたエントリは削除したうえでミスとして扱います。
func (c *MetricsRedis) Get(ctx context.Context, userID uint, symbol string, view entity.ViewMode) (entity.MetricsRecord, bool) {
	key := metricsKey(c.namespace, userID, symbol, view)
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return nil, false
	}
	var rec entity.MetricsRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return nil, false
	}
	return rec, true
}

// Set は指標レコードをTTL付きで保存します（ベストエフォート）。
func (c *MetricsRedis) Set(ctx context.Context, userID uint, symbol string, view entity.ViewMode, rec entity.MetricsRecord, ttl time.Duration) {
	b, err := json.Marshal(rec)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, metricsKey(c.namespace, userID, symbol, view), b, ttl).Err()
}

// Invalidate は(ユーザー, シンボル)のすべての表示モードのエントリをSCANで列挙して削除します。
func (c *MetricsRedis) Invalidate(ctx context.Context, userID uint, symbol string) {
	pattern := metricsKeyPrefix(c.namespace, userID, symbol) + "*"
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
}
