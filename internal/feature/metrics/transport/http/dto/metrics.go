// Package dto はmetricsフィーチャーのHTTPトランスポート層のDTOを定義します。
package dto

import "stockmanager/internal/feature/metrics/domain/entity"

// SearchRequest は POST /search のリクエストボディです。
type SearchRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
}

// SearchResponse は POST /search のレスポンスです。
type SearchResponse struct {
	Symbol string `json:"symbol"`
}

// StockResponse は GET /stocks/:symbol のレスポンスです。
type StockResponse struct {
	Symbol  string               `json:"symbol"`
	IsSaved bool                 `json:"is_saved"`
	Metrics entity.MetricsRecord `json:"metrics"`
}
