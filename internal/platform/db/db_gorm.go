// Package db はGORMによるデータベース接続の初期化を提供します。
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "stockmanager/internal/feature/auth/domain/entity"
	watchentity "stockmanager/internal/feature/watchlist/domain/entity"
)

// connectTimeout は起動時の接続リトライの上限です。
const connectTimeout = 60 * time.Second

// Config はデータベース接続設定です。
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	// InstanceName はCloud SQLのUnixソケット接続名です。設定時はHost/Portより優先されます。
	InstanceName string
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	return Config{
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
	}
}

// BuildDSN は設定からPostgreSQLのDSN文字列を組み立てます。
func BuildDSN(cfg Config) string {
	host := cfg.Host
	port := cfg.Port
	if cfg.InstanceName != "" {
		// Cloud SQLはUnixソケットのディレクトリをhostとして渡す
		host = "/cloudsql/" + cfg.InstanceName
		port = ""
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=Asia/Tokyo",
		host, cfg.User, cfg.Password, cfg.Name)
	if port != "" {
		dsn += " port=" + port
	}
	return dsn
}

// openFunc はDSNからgorm.DBを開く関数です。テストで差し替えます。
type openFunc func(dsn string) (*gorm.DB, error)

// ConnectWithRetry は接続に成功するまで3秒間隔でリトライし、timeout超過でエラーを返します。
func ConnectWithRetry(dsn string, timeout time.Duration, open openFunc) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		gdb, err := open(dsn)
		if err == nil {
			return gdb, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %v: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB は環境変数からPostgreSQLに接続し、*gorm.DBを返します。
// RUN_MIGRATIONS=true のときのみAutoMigrateを実行します。接続失敗はプロセスを停止します。
func OpenDB() *gorm.DB {
	dsn := BuildDSN(LoadConfigFromEnv())

	gdb, err := ConnectWithRetry(dsn, connectTimeout, func(dsn string) (*gorm.DB, error) {
		// TranslateErrorでユニーク制約違反をgorm.ErrDuplicatedKeyに変換する
		return gorm.Open(gpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	})
	if err != nil {
		log.Fatalf("%v", err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, WatchItem）
		if err := gdb.AutoMigrate(
			&authentity.User{},
			&watchentity.WatchItem{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return gdb
}
