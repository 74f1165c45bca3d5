// Package domain はwatchlistフィーチャーのドメインレベルのエラーを定義します。
package domain

import "errors"

var (
	// ErrAlreadySaved は同じ銘柄がすでにウォッチリストに登録されていることを示します。
	ErrAlreadySaved = errors.New("symbol is already in the watchlist")

	// ErrNotSaved は指定された銘柄がウォッチリストに存在しないことを示します。
	ErrNotSaved = errors.New("symbol is not in the watchlist")
)
