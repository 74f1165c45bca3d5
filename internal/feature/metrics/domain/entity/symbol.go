package entity

import (
	"strconv"
	"strings"
)

// 日本株の証券コードに付与する市場サフィックスです（東証）。
const marketSuffixTokyo = ".T"

// Symbol は正規化済みの銘柄識別子です。
// 全体が整数として解釈できるトークンは日本株の証券コード、
// それ以外は米国株等のティッカーとして扱います。
type Symbol struct {
	code    string
	numeric bool
}

// NormalizeSymbol は生のシンボルトークンを正規化します。
// 整数として解釈できない入力はそのまま通すため、エラーは発生しません。
func NormalizeSymbol(raw string) Symbol {
	trimmed := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(trimmed); err == nil {
		return Symbol{code: strconv.Itoa(n), numeric: true}
	}
	return Symbol{code: trimmed}
}

// String はキャッシュキー等に使う正規化済みトークンを返します。
func (s Symbol) String() string { return s.code }

// Numeric は日本株の証券コードかどうかを報告します。
func (s Symbol) Numeric() bool { return s.numeric }

// MarketCode は外部データソースへの問い合わせに使う形式を返します。
// 証券コードには市場サフィックスを付与し、ティッカーはそのまま返します。
func (s Symbol) MarketCode() string {
	if s.numeric {
		return s.code + marketSuffixTokyo
	}
	return s.code
}

// CurrencyPrefix は株価表示に使う通貨記号を返します。
func (s Symbol) CurrencyPrefix() string {
	if s.numeric {
		return "¥"
	}
	return "$"
}
