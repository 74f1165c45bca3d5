// Package cache は指標レコードのキャッシュ実装を提供します。
package cache

import (
	"fmt"
	"strings"

	"stockmanager/internal/feature/metrics/domain/entity"
)

// metricsKey は(ユーザー, シンボル, 表示モード)のキャッシュキーを生成します。
func metricsKey(namespace string, userID uint, symbol string, view entity.ViewMode) string {
	return fmt.Sprintf("%s:%d:%s:%s", namespace, userID, safe(symbol), view)
}

// metricsKeyPrefix は(ユーザー, シンボル)の全表示モードを無効化するためのプレフィックスを生成します。
func metricsKeyPrefix(namespace string, userID uint, symbol string) string {
	return fmt.Sprintf("%s:%d:%s:", namespace, userID, safe(symbol))
}

// keyEscaper はキー区切りの記号と、SCANのMATCHパターンで特別な意味を持つ
// グロブ記号（* ? [ ]）を置き換えます。シンボル由来の文字列がパターンとして
// 解釈されると、同一ユーザーの別シンボルのエントリまで無効化されてしまいます。
var keyEscaper = strings.NewReplacer(
	" ", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"[", "_",
	"]", "_",
)

// safe はキーに使いづらい記号を簡易エスケープします。
func safe(s string) string {
	return keyEscaper.Replace(s)
}
