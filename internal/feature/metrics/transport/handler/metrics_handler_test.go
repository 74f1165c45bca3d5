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

	"stockmanager/internal/feature/metrics/domain/entity"
	"stockmanager/internal/feature/metrics/transport/handler"
	"stockmanager/internal/feature/metrics/usecase"
	jwtmw "stockmanager/internal/platform/jwt"
)

// mockMetricsUsecase はMetricsUsecaseインターフェースのモック実装です。
type mockMetricsUsecase struct {
	FetchFunc  func(ctx context.Context, userID uint, symbol string, includeOverview bool) (entity.MetricsRecord, error)
	SearchFunc func(ctx context.Context, companyName string) (string, error)
}

func (m *mockMetricsUsecase) FetchCompanyData(ctx context.Context, userID uint, symbol string, includeOverview bool) (entity.MetricsRecord, error) {
	return m.FetchFunc(ctx, userID, symbol, includeOverview)
}

func (m *mockMetricsUsecase) SearchSymbol(ctx context.Context, companyName string) (string, error) {
	return m.SearchFunc(ctx, companyName)
}

// mockWatchlistChecker はWatchlistCheckerインターフェースのモック実装です。
type mockWatchlistChecker struct {
	IsSavedFunc func(ctx context.Context, userID uint, symbol string) (bool, error)
}

func (m *mockWatchlistChecker) IsSaved(ctx context.Context, userID uint, symbol string) (bool, error) {
	if m.IsSavedFunc != nil {
		return m.IsSavedFunc(ctx, userID, symbol)
	}
	return false, nil
}

// setUserID は認証ミドルウェアの代わりにユーザーIDをコンテキストへ注入します。
func setUserID(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, userID)
		c.Next()
	}
}

func TestMetricsHandler_Search(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           string
		searchFunc     func(ctx context.Context, companyName string) (string, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: symbol resolved",
			body: `{"company_name":"トヨタ自動車"}`,
			searchFunc: func(ctx context.Context, companyName string) (string, error) {
				return "7203", nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"symbol":"7203"}`,
		},
		{
			name:           "error: missing company name",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"company_nameが必要です"}`,
		},
		{
			name: "error: unresolvable name",
			body: `{"company_name":"not a company"}`,
			searchFunc: func(ctx context.Context, companyName string) (string, error) {
				return "", usecase.ErrInvalidCompanyName
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"企業名を解決できませんでした"}`,
		},
		{
			name: "error: resolver upstream failure",
			body: `{"company_name":"Apple"}`,
			searchFunc: func(ctx context.Context, companyName string) (string, error) {
				return "", errors.New("resolver down")
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"failed to resolve symbol"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockMetricsUsecase{SearchFunc: tt.searchFunc}
			h := handler.NewMetricsHandler(uc, &mockWatchlistChecker{})

			r := gin.New()
			r.POST("/search", h.Search)

			req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestMetricsHandler_GetStock(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := entity.MetricsRecord{
		entity.MetricCompanyName: "Toyota Motor",
		entity.MetricPER:         10.5,
	}

	t.Run("success: detail metrics with saved state", func(t *testing.T) {
		uc := &mockMetricsUsecase{
			FetchFunc: func(ctx context.Context, userID uint, symbol string, includeOverview bool) (entity.MetricsRecord, error) {
				assert.Equal(t, uint(42), userID)
				assert.Equal(t, "7203", symbol)
				assert.True(t, includeOverview, "detail view should request the overview")
				return rec, nil
			},
		}
		checker := &mockWatchlistChecker{
			IsSavedFunc: func(ctx context.Context, userID uint, symbol string) (bool, error) {
				return true, nil
			},
		}
		h := handler.NewMetricsHandler(uc, checker)

		r := gin.New()
		r.GET("/stocks/:symbol", setUserID(42), h.GetStock)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stocks/7203", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"symbol":"7203"`)
		assert.Contains(t, w.Body.String(), `"is_saved":true`)
		assert.Contains(t, w.Body.String(), "Toyota Motor")
	})

	t.Run("error: upstream fetch failure", func(t *testing.T) {
		uc := &mockMetricsUsecase{
			FetchFunc: func(ctx context.Context, userID uint, symbol string, includeOverview bool) (entity.MetricsRecord, error) {
				return nil, errors.New("yahoo finance http 502")
			},
		}
		h := handler.NewMetricsHandler(uc, &mockWatchlistChecker{})

		r := gin.New()
		r.GET("/stocks/:symbol", setUserID(42), h.GetStock)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stocks/AAPL", nil))

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("saved state check failure is best effort", func(t *testing.T) {
		uc := &mockMetricsUsecase{
			FetchFunc: func(ctx context.Context, userID uint, symbol string, includeOverview bool) (entity.MetricsRecord, error) {
				return rec, nil
			},
		}
		checker := &mockWatchlistChecker{
			IsSavedFunc: func(ctx context.Context, userID uint, symbol string) (bool, error) {
				return false, errors.New("database error")
			},
		}
		h := handler.NewMetricsHandler(uc, checker)

		r := gin.New()
		r.GET("/stocks/:symbol", setUserID(42), h.GetStock)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stocks/7203", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"is_saved":false`)
	})
}
