package di

import (
	"github.com/redis/go-redis/v9"

	"stockmanager/internal/feature/metrics/usecase"
	"stockmanager/internal/platform/cache"
)

// NewMetricsCache はMetricsCacheの実装を生成します。
// Redisが利用可能な場合はRedisベースの実装を返し、
// それ以外はプロセス内メモリキャッシュにフォールバックします。
func NewMetricsCache(rdb *redis.Client) usecase.MetricsCache {
	if rdb != nil {
		return cache.NewMetricsRedis(rdb, "metrics")
	}
	return cache.NewMetricsMemory()
}
