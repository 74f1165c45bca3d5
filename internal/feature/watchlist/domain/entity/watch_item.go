// Package entity はwatchlistフィーチャーのドメインモデルを定義します。
package entity

import "time"

// WatchItem はユーザーがお気に入り登録した銘柄です。
// (user_id, symbol) の組は一意で、同一ユーザーが同じ銘柄を重複登録することはできません。
type WatchItem struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_watch_user_symbol"`
	Symbol    string `gorm:"size:20;not null;uniqueIndex:idx_watch_user_symbol"`
	CreatedAt time.Time
}
