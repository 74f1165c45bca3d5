// Package di はアプリケーションコンポーネント生成用の依存性注入ファクトリを提供します。
package di

import (
	"stockmanager/internal/feature/metrics/adapters/yahoo"
	infrahttp "stockmanager/internal/platform/http"
)

// NewMarket はHTTPクライアント設定済みのYahooMarketを生成します。
func NewMarket() *yahoo.YahooMarket {
	cfg := yahoo.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return yahoo.NewYahooMarket(cfg, httpClient)
}
