// Package yahoo はYahoo FinanceのquoteSummary APIから財務諸表を取得するクライアントを提供します。
package yahoo

import (
	"os"
	"time"
)

const (
	defaultBaseURL   = "https://query1.finance.yahoo.com"
	defaultUserAgent = "Mozilla/5.0 (compatible; stockmanager/1.0)"
)

// Config はYahoo Financeクライアントの設定です。
type Config struct {
	BaseURL   string        // APIのベースURL
	UserAgent string        // リクエストに付与するUser-Agent（未設定だと429が返りやすい）
	Timeout   time.Duration // HTTPリクエスト全体のタイムアウト
}

// LoadConfig は環境変数からYahoo Financeの設定を読み込みます。
func LoadConfig() Config {
	base := os.Getenv("YAHOO_FINANCE_BASE_URL")
	if base == "" {
		base = defaultBaseURL
	}
	return Config{
		BaseURL:   base,
		UserAgent: defaultUserAgent,
		Timeout:   15 * time.Second,
	}
}
