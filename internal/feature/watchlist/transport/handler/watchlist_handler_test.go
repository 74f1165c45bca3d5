package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	metricsentity "stockmanager/internal/feature/metrics/domain/entity"
	"stockmanager/internal/feature/watchlist/domain"
	"stockmanager/internal/feature/watchlist/transport/handler"
	jwtmw "stockmanager/internal/platform/jwt"
)

// mockWatchlistUsecase はWatchlistUsecaseインターフェースのモック実装です。
type mockWatchlistUsecase struct {
	SaveFunc   func(ctx context.Context, userID uint, symbol string) error
	RemoveFunc func(ctx context.Context, userID uint, symbol string) error
	ListFunc   func(ctx context.Context, userID uint) ([]string, error)
}

func (m *mockWatchlistUsecase) Save(ctx context.Context, userID uint, symbol string) error {
	return m.SaveFunc(ctx, userID, symbol)
}

func (m *mockWatchlistUsecase) Remove(ctx context.Context, userID uint, symbol string) error {
	return m.RemoveFunc(ctx, userID, symbol)
}

func (m *mockWatchlistUsecase) List(ctx context.Context, userID uint) ([]string, error) {
	return m.ListFunc(ctx, userID)
}

// mockMetricsFetcher はMetricsFetcherインターフェースのモック実装です。
type mockMetricsFetcher struct {
	FetchFunc func(ctx context.Context, userID uint, symbol string, includeOverview bool) (metricsentity.MetricsRecord, error)
}

func (m *mockMetricsFetcher) FetchCompanyData(ctx context.Context, userID uint, symbol string, includeOverview bool) (metricsentity.MetricsRecord, error) {
	return m.FetchFunc(ctx, userID, symbol, includeOverview)
}

// setUserID は認証ミドルウェアの代わりにユーザーIDをコンテキストへ注入します。
func setUserID(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, userID)
		c.Next()
	}
}

func TestWatchlistHandler_Overview(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success: metrics per saved symbol in list mode", func(t *testing.T) {
		uc := &mockWatchlistUsecase{
			ListFunc: func(ctx context.Context, userID uint) ([]string, error) {
				assert.Equal(t, uint(42), userID)
				return []string{"7203", "AAPL"}, nil
			},
		}
		fetcher := &mockMetricsFetcher{
			FetchFunc: func(ctx context.Context, userID uint, symbol string, includeOverview bool) (metricsentity.MetricsRecord, error) {
				assert.False(t, includeOverview, "overview rows should use the list view")
				return metricsentity.MetricsRecord{metricsentity.MetricCompanyName: "company " + symbol}, nil
			},
		}
		h := handler.NewWatchlistHandler(uc, fetcher)

		r := gin.New()
		r.GET("/watchlist", setUserID(42), h.Overview)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/watchlist", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "company 7203")
		assert.Contains(t, w.Body.String(), "company AAPL")
		assert.Contains(t, w.Body.String(), `"is_saved":true`)
	})

	t.Run("partial failure: failed rows carry an error and the list succeeds", func(t *testing.T) {
		uc := &mockWatchlistUsecase{
			ListFunc: func(ctx context.Context, userID uint) ([]string, error) {
				return []string{"7203", "DEAD"}, nil
			},
		}
		fetcher := &mockMetricsFetcher{
			FetchFunc: func(ctx context.Context, userID uint, symbol string, includeOverview bool) (metricsentity.MetricsRecord, error) {
				if symbol == "DEAD" {
					return nil, errors.New("yahoo finance: no data for symbol DEAD")
				}
				return metricsentity.MetricsRecord{}, nil
			},
		}
		h := handler.NewWatchlistHandler(uc, fetcher)

		r := gin.New()
		r.GET("/watchlist", setUserID(1), h.Overview)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/watchlist", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "DEAD のデータ取得に失敗しました")
	})

	t.Run("error: listing failure", func(t *testing.T) {
		uc := &mockWatchlistUsecase{
			ListFunc: func(ctx context.Context, userID uint) ([]string, error) {
				return nil, errors.New("database error")
			},
		}
		h := handler.NewWatchlistHandler(uc, &mockMetricsFetcher{})

		r := gin.New()
		r.GET("/watchlist", setUserID(1), h.Overview)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/watchlist", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestWatchlistHandler_Save(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           string
		saveFunc       func(ctx context.Context, userID uint, symbol string) error
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: symbol saved",
			body: `{"symbol":"7203"}`,
			saveFunc: func(ctx context.Context, userID uint, symbol string) error {
				return nil
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"message":"保存しました"}`,
		},
		{
			name: "already saved: idempotent response",
			body: `{"symbol":"7203"}`,
			saveFunc: func(ctx context.Context, userID uint, symbol string) error {
				return domain.ErrAlreadySaved
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"すでに登録されています"}`,
		},
		{
			name:           "error: missing symbol",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"symbolが必要です"}`,
		},
		{
			name: "error: repository failure",
			body: `{"symbol":"7203"}`,
			saveFunc: func(ctx context.Context, userID uint, symbol string) error {
				return errors.New("database error")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to save symbol"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockWatchlistUsecase{SaveFunc: tt.saveFunc}
			h := handler.NewWatchlistHandler(uc, &mockMetricsFetcher{})

			r := gin.New()
			r.POST("/watchlist", setUserID(1), h.Save)

			req := httptest.NewRequest(http.MethodPost, "/watchlist", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestWatchlistHandler_Remove(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		symbol         string
		removeFunc     func(ctx context.Context, userID uint, symbol string) error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "success: symbol removed",
			symbol: "7203",
			removeFunc: func(ctx context.Context, userID uint, symbol string) error {
				return nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"削除しました"}`,
		},
		{
			name:   "not saved: 404",
			symbol: "9984",
			removeFunc: func(ctx context.Context, userID uint, symbol string) error {
				return domain.ErrNotSaved
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"message":"登録されていません"}`,
		},
		{
			name:   "error: repository failure",
			symbol: "7203",
			removeFunc: func(ctx context.Context, userID uint, symbol string) error {
				return errors.New("database error")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to remove symbol"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockWatchlistUsecase{RemoveFunc: tt.removeFunc}
			h := handler.NewWatchlistHandler(uc, &mockMetricsFetcher{})

			r := gin.New()
			r.DELETE("/watchlist/:symbol", setUserID(1), h.Remove)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/watchlist/"+tt.symbol, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
