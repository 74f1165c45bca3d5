// Package entity はmetricsフィーチャーのドメインモデルを定義します。
package entity

import (
	"encoding/json"
	"math"
	"strconv"
)

// LookupStatus は財務諸表テーブルからの項目取得結果を表します。
type LookupStatus int

const (
	// LookupFound は項目が存在し、有限の数値として取得できたことを示します。
	LookupFound LookupStatus = iota
	// LookupNotFound は項目がテーブルに存在しないことを示します。
	LookupNotFound
	// LookupInvalid は項目は存在するが数値として解釈できない（NaN・無限大を含む）ことを示します。
	LookupInvalid
)

// StatementTable は財務諸表の科目名から期ごとの値への対応です。
// 値は直近の期が先頭になるよう並びます。外部データソース由来のため
// 型は緩く、欠損期はNaNで埋められることがあります。
type StatementTable map[string][]any

// Latest は指定された科目の直近期の値を返します。
// 科目が存在しない、または期の値が1つもない場合はLookupNotFound、
// 値が数値に変換できない・非有限の場合はLookupInvalidを返します。
func (t StatementTable) Latest(name string) (float64, LookupStatus) {
	series, ok := t[name]
	if !ok || len(series) == 0 {
		return 0, LookupNotFound
	}
	v, ok := toFloat(series[0])
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, LookupInvalid
	}
	return v, LookupFound
}

// toFloat は外部データソースが返し得る値型をfloat64に変換します。
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// FinancialSnapshot は1回のフェッチで取得した企業の財務データ一式です。
// 取得後は変更されず、1回のフェッチ操作にのみ属します。
type FinancialSnapshot struct {
	// Info は企業基本情報（株価・マージン・PER等）のフィールド名から値への対応です。
	Info map[string]any
	// BalanceSheet はバランスシートの科目テーブルです。
	BalanceSheet StatementTable
	// IncomeStatement は損益計算書の科目テーブルです。
	IncomeStatement StatementTable
}

// Complete は3つの構成要素がすべて取得済みであることを報告します。
func (s *FinancialSnapshot) Complete() bool {
	return s != nil && s.Info != nil && s.BalanceSheet != nil && s.IncomeStatement != nil
}
