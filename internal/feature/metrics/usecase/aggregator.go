package usecase

import (
	"context"
	"fmt"
	"strconv"

	"stockmanager/internal/feature/metrics/domain"
	"stockmanager/internal/feature/metrics/domain/entity"
)

// buildMetrics は1つのスナップショットから指標レコード全体を組み立てます。
// スナップショットの構成要素が欠けている場合は事前条件違反として
// 指標を1つも計算せずに失敗します。
func (u *MetricsUsecase) buildMetrics(ctx context.Context, snap *entity.FinancialSnapshot, sym entity.Symbol, includeOverview bool) (entity.MetricsRecord, error) {
	if !snap.Complete() {
		return nil, domain.ErrIncompleteSnapshot
	}

	rec := entity.MetricsRecord{}

	rec[entity.MetricCompanyName] = infoString(snap.Info, "shortName", entity.NotApplicable)
	rec[entity.MetricPrice] = formatPrice(snap.Info, sym)

	// 直接転記フィールド（欠損時は0、％系は×100）
	rec[entity.MetricGrossMargin] = safeRound(infoFloat(snap.Info, "grossMargins") * 100)
	rec[entity.MetricOperatingMargin] = safeRound(infoFloat(snap.Info, "operatingMargins") * 100)
	rec[entity.MetricEBITDAMargin] = safeRound(infoFloat(snap.Info, "ebitdaMargins") * 100)
	rec[entity.MetricPER] = safeRound(infoFloat(snap.Info, "trailingPE"))
	rec[entity.MetricPBR] = safeRound(infoFloat(snap.Info, "priceToBook"))
	rec[entity.MetricROE] = safeRound(infoFloat(snap.Info, "returnOnEquity") * 100)
	rec[entity.MetricROA] = safeRound(infoFloat(snap.Info, "returnOnAssets") * 100)

	// 導出指標カタログ
	for _, d := range ratioCatalog {
		rec[d.label] = d.value(snap)
	}

	if includeOverview {
		rec[entity.MetricWebsite] = infoString(snap.Info, "website", entity.NotApplicable)
		overview, err := u.overview(ctx, infoString(snap.Info, "longBusinessSummary", ""))
		if err != nil {
			return nil, err
		}
		rec[entity.MetricOverview] = overview
	}

	return rec, nil
}

// overview は企業概要テキストを翻訳します。
// 入力が空または"N/A"の場合は翻訳サービスを呼ばずにNotApplicableを返します。
func (u *MetricsUsecase) overview(ctx context.Context, description string) (string, error) {
	if description == "" || description == entity.NotApplicable {
		return entity.NotApplicable, nil
	}
	translated, err := u.translator.Translate(ctx, description)
	if err != nil {
		return "", fmt.Errorf("translate company overview: %w", err)
	}
	return translated, nil
}

// formatPrice は現在株価を通貨プレフィックス付きで整形します。
// 日本株は"¥"、それ以外は"$"を付け、株価が取得できない場合はNotApplicableを返します。
func formatPrice(info map[string]any, sym entity.Symbol) string {
	v, ok := info["regularMarketPrice"]
	if !ok {
		return entity.NotApplicable
	}
	p, ok := asFloat(v)
	if !ok {
		return entity.NotApplicable
	}
	return sym.CurrencyPrefix() + strconv.FormatFloat(p, 'f', -1, 64)
}

// infoFloat は企業情報マップから数値を取り出します。欠損・非数値は0として扱います。
func infoFloat(info map[string]any, key string) float64 {
	v, ok := info[key]
	if !ok {
		return 0
	}
	f, ok := asFloat(v)
	if !ok {
		return 0
	}
	return f
}

// infoString は企業情報マップから文字列を取り出します。欠損・空文字はフォールバック値になります。
func infoString(info map[string]any, key, fallback string) string {
	v, ok := info[key]
	if !ok {
		return fallback
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return fallback
	}
	return s
}

// asFloat はinfoマップの値をfloat64に変換します。
func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}
