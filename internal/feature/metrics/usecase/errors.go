// Package usecase はmetricsフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrInvalidCompanyName はシンボル解決サービスが入力を企業・ティッカーとして
	// 認識できなかったことを示します。上流障害とは区別され、利用者の入力エラーとして扱います。
	ErrInvalidCompanyName = errors.New("input is not a recognizable company name or ticker")
)
