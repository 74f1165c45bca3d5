package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"stockmanager/internal/app/di"
	"stockmanager/internal/app/router"
	authadapters "stockmanager/internal/feature/auth/adapters"
	authhandler "stockmanager/internal/feature/auth/transport/handler"
	authusecase "stockmanager/internal/feature/auth/usecase"
	"stockmanager/internal/feature/metrics/adapters/gemini"
	metricshandler "stockmanager/internal/feature/metrics/transport/handler"
	metricsusecase "stockmanager/internal/feature/metrics/usecase"
	watchlistadapters "stockmanager/internal/feature/watchlist/adapters"
	watchlisthandler "stockmanager/internal/feature/watchlist/transport/handler"
	watchlistusecase "stockmanager/internal/feature/watchlist/usecase"
	infradb "stockmanager/internal/platform/db"
	jwtmw "stockmanager/internal/platform/jwt"
	infraredis "stockmanager/internal/platform/redis"
)

func main() {
	// .envがあれば読み込む（本番では環境変数を直接設定）
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found. Using environment variables.")
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Falling back to in-memory cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Gemini（シンボル解決・概要翻訳）
	gem, err := gemini.NewClient(context.Background())
	if err != nil {
		log.Fatalf("failed to create gemini client: %v", err)
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	watchRepo := watchlistadapters.NewWatchlistRepository(db)
	market := di.NewMarket()
	metricsCache := di.NewMetricsCache(rdb)

	// Usecase
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), jwtmw.DefaultExpiration)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)
	metricsUC := metricsusecase.NewMetricsUsecase(
		market, metricsCache, gem, gem,
		metricsusecase.DefaultCacheTTL, metricsusecase.DefaultMissDelay,
	)
	watchUC := watchlistusecase.NewWatchlistUsecase(watchRepo, metricsUC)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	metricsH := metricshandler.NewMetricsHandler(metricsUC, watchUC)
	watchH := watchlisthandler.NewWatchlistHandler(watchUC, metricsUC)

	// ルータ生成
	router := router.NewRouter(authH, metricsH, watchH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
