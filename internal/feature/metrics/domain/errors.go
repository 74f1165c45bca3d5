// Package domain はmetricsフィーチャーのドメインレベルのエラーを定義します。
package domain

import "errors"

var (
	// ErrIncompleteSnapshot は財務スナップショットの構成要素が揃う前に
	// 集計が要求されたことを示します。データ品質の問題ではなく事前条件違反であり、
	// 部分的なレコードを返すことなく呼び出し全体を失敗させます。
	ErrIncompleteSnapshot = errors.New("financial snapshot is incomplete: info, balance sheet and income statement are all required")
)
