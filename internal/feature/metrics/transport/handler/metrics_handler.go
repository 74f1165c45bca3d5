// Package handler はmetricsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockmanager/internal/feature/metrics/domain/entity"
	"stockmanager/internal/feature/metrics/transport/http/dto"
	"stockmanager/internal/feature/metrics/usecase"
	jwtmw "stockmanager/internal/platform/jwt"
)

// MetricsUsecase は指標取得と銘柄解決のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type MetricsUsecase interface {
	FetchCompanyData(ctx context.Context, userID uint, symbol string, includeOverview bool) (entity.MetricsRecord, error)
	SearchSymbol(ctx context.Context, companyName string) (string, error)
}

// WatchlistChecker は銘柄の保存状態の参照を抽象化します。
type WatchlistChecker interface {
	IsSaved(ctx context.Context, userID uint, symbol string) (bool, error)
}

// MetricsHandler は指標関連のHTTPリクエストを処理します。
type MetricsHandler struct {
	uc        MetricsUsecase
	watchlist WatchlistChecker
}

// NewMetricsHandler はMetricsHandlerの新しいインスタンスを生成します。
func NewMetricsHandler(uc MetricsUsecase, watchlist WatchlistChecker) *MetricsHandler {
	return &MetricsHandler{uc: uc, watchlist: watchlist}
}

// Search は企業名からティッカーシンボルを解決します。
// 企業名として解決できない入力には400を返します。
//
// エンドポイント例: POST /search
func (h *MetricsHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company_nameが必要です"})
		return
	}

	symbol, err := h.uc.SearchSymbol(c.Request.Context(), req.CompanyName)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCompanyName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "企業名を解決できませんでした"})
			return
		}
		slog.Error("failed to resolve symbol", "error", err, "company_name", req.CompanyName)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to resolve symbol"})
		return
	}

	c.JSON(http.StatusOK, dto.SearchResponse{Symbol: symbol})
}

// GetStock は1銘柄の詳細画面向け指標を返します。
// ウォッチリストの保存状態はベストエフォートで付与し、参照失敗ではレスポンスを失敗させません。
//
// エンドポイント例: GET /stocks/:symbol
func (h *MetricsHandler) GetStock(c *gin.Context) {
	symbol := c.Param("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbolが必要です"})
		return
	}
	userID := c.GetUint(jwtmw.ContextUserID)

	rec, err := h.uc.FetchCompanyData(c.Request.Context(), userID, symbol, true)
	if err != nil {
		slog.Error("failed to fetch company data", "error", err, "user_id", userID, "symbol", symbol)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch company data"})
		return
	}

	saved, err := h.watchlist.IsSaved(c.Request.Context(), userID, symbol)
	if err != nil {
		slog.Warn("failed to check watchlist state", "error", err, "user_id", userID, "symbol", symbol)
		saved = false
	}

	c.JSON(http.StatusOK, dto.StockResponse{Symbol: symbol, IsSaved: saved, Metrics: rec})
}
