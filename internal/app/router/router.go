// Package router はHTTPルーティングを定義します。
package router

import (
	"github.com/gin-gonic/gin"

	authhandler "stockmanager/internal/feature/auth/transport/handler"
	metricshandler "stockmanager/internal/feature/metrics/transport/handler"
	watchlisthandler "stockmanager/internal/feature/watchlist/transport/handler"
	"stockmanager/internal/platform/http/handler"
	jwtmw "stockmanager/internal/platform/jwt"
)

// NewRouter は全エンドポイントを登録したGinエンジンを生成します。
func NewRouter(authHandler *authhandler.AuthHandler, metrics *metricshandler.MetricsHandler,
	watchlist *watchlisthandler.WatchlistHandler) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", authHandler.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)
	// 企業名からティッカーシンボルを解決
	r.POST("/search", metrics.Search)

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/stocks/:symbol", metrics.GetStock)
		auth.GET("/watchlist", watchlist.Overview)
		auth.POST("/watchlist", watchlist.Save)
		auth.DELETE("/watchlist/:symbol", watchlist.Remove)
	}

	return r
}
