// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	metricsentity "stockmanager/internal/feature/metrics/domain/entity"
	"stockmanager/internal/feature/watchlist/domain"
	"stockmanager/internal/feature/watchlist/transport/http/dto"
	jwtmw "stockmanager/internal/platform/jwt"
)

// WatchlistUsecase はウォッチリスト操作のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type WatchlistUsecase interface {
	Save(ctx context.Context, userID uint, symbol string) error
	Remove(ctx context.Context, userID uint, symbol string) error
	List(ctx context.Context, userID uint) ([]string, error)
}

// MetricsFetcher は一覧画面向けの指標取得を抽象化します。
type MetricsFetcher interface {
	FetchCompanyData(ctx context.Context, userID uint, symbol string, includeOverview bool) (metricsentity.MetricsRecord, error)
}

// WatchlistHandler はウォッチリストのHTTPリクエストを処理します。
type WatchlistHandler struct {
	uc      WatchlistUsecase
	metrics MetricsFetcher
}

// NewWatchlistHandler はWatchlistHandlerの新しいインスタンスを生成します。
func NewWatchlistHandler(uc WatchlistUsecase, metrics MetricsFetcher) *WatchlistHandler {
	return &WatchlistHandler{uc: uc, metrics: metrics}
}

// Overview はログインユーザーの登録銘柄一覧を一覧画面向けの指標付きで返します。
// 個別銘柄の取得失敗は行単位のエラーとして埋め込み、一覧全体は成功させます。
//
// エンドポイント例: GET /watchlist
func (h *WatchlistHandler) Overview(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	symbols, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to list watchlist", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load watchlist"})
		return
	}

	rows := make([]dto.Row, 0, len(symbols))
	for _, symbol := range symbols {
		rec, err := h.metrics.FetchCompanyData(c.Request.Context(), userID, symbol, false)
		if err != nil {
			slog.Warn("failed to fetch metrics for watchlist row", "error", err, "user_id", userID, "symbol", symbol)
			rows = append(rows, dto.Row{
				Symbol:  symbol,
				Error:   fmt.Sprintf("%s のデータ取得に失敗しました", symbol),
				IsSaved: true,
			})
			continue
		}
		rows = append(rows, dto.Row{Symbol: symbol, Metrics: rec, IsSaved: true})
	}

	c.JSON(http.StatusOK, dto.OverviewResponse{Results: rows})
}

// Save は銘柄をウォッチリストに登録します。登録済みの場合は200でメッセージのみ返します。
//
// エンドポイント例: POST /watchlist
func (h *WatchlistHandler) Save(c *gin.Context) {
	var req dto.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbolが必要です"})
		return
	}
	userID := c.GetUint(jwtmw.ContextUserID)

	if err := h.uc.Save(c.Request.Context(), userID, req.Symbol); err != nil {
		if errors.Is(err, domain.ErrAlreadySaved) {
			c.JSON(http.StatusOK, gin.H{"message": "すでに登録されています"})
			return
		}
		slog.Error("failed to save watchlist entry", "error", err, "user_id", userID, "symbol", req.Symbol)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save symbol"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "保存しました"})
}

// Remove は銘柄をウォッチリストから削除します。未登録の場合は404を返します。
//
// エンドポイント例: DELETE /watchlist/:symbol
func (h *WatchlistHandler) Remove(c *gin.Context) {
	symbol := c.Param("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbolが必要です"})
		return
	}
	userID := c.GetUint(jwtmw.ContextUserID)

	if err := h.uc.Remove(c.Request.Context(), userID, symbol); err != nil {
		if errors.Is(err, domain.ErrNotSaved) {
			c.JSON(http.StatusNotFound, gin.H{"message": "登録されていません"})
			return
		}
		slog.Error("failed to remove watchlist entry", "error", err, "user_id", userID, "symbol", symbol)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove symbol"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "削除しました"})
}
