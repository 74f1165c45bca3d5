// Package dto はwatchlistフィーチャーのHTTPトランスポート層のDTOを定義します。
package dto

import "stockmanager/internal/feature/metrics/domain/entity"

// SaveRequest は POST /watchlist のリクエストボディです。
type SaveRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

// Row は一覧レスポンスの1銘柄分です。
// 指標の取得に失敗した銘柄はMetricsの代わりにErrorを持ち、一覧全体は失敗させません。
type Row struct {
	Symbol  string               `json:"symbol"`
	Metrics entity.MetricsRecord `json:"metrics,omitempty"`
	Error   string               `json:"error,omitempty"`
	IsSaved bool                 `json:"is_saved"`
}

// OverviewResponse は GET /watchlist のレスポンスです。
type OverviewResponse struct {
	Results []Row `json:"results"`
}
