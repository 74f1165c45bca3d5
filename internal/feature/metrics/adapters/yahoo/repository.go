package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"

	"stockmanager/internal/feature/metrics/adapters/yahoo/dto"
	"stockmanager/internal/feature/metrics/domain/entity"
	"stockmanager/internal/feature/metrics/usecase"
)

// quoteSummaryに要求するモジュール群です。
const quoteSummaryModules = "price,summaryDetail,financialData,defaultKeyStatistics,assetProfile,balanceSheetHistory,incomeStatementHistory"

// YahooMarket はYahoo Financeから財務スナップショットを取得するMarketDataRepository実装です。
type YahooMarket struct {
	cfg    Config
	client *http.Client
}

// YahooMarketがMarketDataRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketDataRepository = (*YahooMarket)(nil)

// NewYahooMarket は指定された設定とHTTPクライアントでYahooMarketの新しいインスタンスを生成します。
func NewYahooMarket(cfg Config, client *http.Client) *YahooMarket {
	return &YahooMarket{cfg: cfg, client: client}
}

// FetchStatements はquoteSummary APIを呼び出し、企業情報・バランスシート・損益計算書を
// 1つの不変なスナップショットとして返します。
// 個別の科目の欠損はここでは扱わず、テーブルから単に欠落させます（検証は呼び出し側）。
func (y *YahooMarket) FetchStatements(ctx context.Context, symbol string) (*entity.FinancialSnapshot, error) {
	q := url.Values{}
	q.Set("modules", quoteSummaryModules)
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", y.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", y.cfg.UserAgent)

	res, err := y.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("yahoo finance http %d", res.StatusCode)
	}

	var body dto.QuoteSummaryResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo finance: %s", body.QuoteSummary.Error.Description)
	}
	if len(body.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo finance: no data for symbol %s", symbol)
	}

	r := body.QuoteSummary.Result[0]
	return &entity.FinancialSnapshot{
		Info:            buildInfo(r),
		BalanceSheet:    buildBalanceSheet(r),
		IncomeStatement: buildIncomeStatement(r),
	}, nil
}

// buildInfo は企業基本情報マップを組み立てます。取得できたフィールドのみ格納します。
func buildInfo(r dto.QuoteSummaryResult) map[string]any {
	info := map[string]any{}
	if r.Price != nil {
		setString(info, "shortName", r.Price.ShortName)
		setRaw(info, "regularMarketPrice", r.Price.RegularMarketPrice)
	}
	if r.SummaryDetail != nil {
		setRaw(info, "trailingPE", r.SummaryDetail.TrailingPE)
	}
	if r.FinancialData != nil {
		setRaw(info, "grossMargins", r.FinancialData.GrossMargins)
		setRaw(info, "operatingMargins", r.FinancialData.OperatingMargins)
		setRaw(info, "ebitdaMargins", r.FinancialData.EbitdaMargins)
		setRaw(info, "returnOnEquity", r.FinancialData.ReturnOnEquity)
		setRaw(info, "returnOnAssets", r.FinancialData.ReturnOnAssets)
	}
	if r.DefaultKeyStatistics != nil {
		setRaw(info, "priceToBook", r.DefaultKeyStatistics.PriceToBook)
	}
	if r.AssetProfile != nil {
		setString(info, "website", r.AssetProfile.Website)
		setString(info, "longBusinessSummary", r.AssetProfile.LongBusinessSummary)
	}
	return info
}

// buildBalanceSheet はバランスシートの科目テーブルを組み立てます。
// 科目名は導出カタログが期待する正準ラベルに写します。
func buildBalanceSheet(r dto.QuoteSummaryResult) entity.StatementTable {
	table := entity.StatementTable{}
	var stmts []dto.BalanceSheetStatement
	if r.BalanceSheetHistory != nil {
		stmts = r.BalanceSheetHistory.Statements
	}

	put := func(name string, pick func(dto.BalanceSheetStatement) *dto.RawValue) {
		if vals := series(len(stmts), func(i int) *dto.RawValue { return pick(stmts[i]) }); vals != nil {
			table[name] = vals
		}
	}
	put("Total Assets", func(s dto.BalanceSheetStatement) *dto.RawValue { return s.TotalAssets })
	put("Total Liabilities Net Minority Interest", func(s dto.BalanceSheetStatement) *dto.RawValue { return s.TotalLiab })
	put("Stockholders Equity", func(s dto.BalanceSheetStatement) *dto.RawValue { return s.TotalStockholderEquity })
	put("Current Assets", func(s dto.BalanceSheetStatement) *dto.RawValue { return s.TotalCurrentAssets })
	put("Current Liabilities", func(s dto.BalanceSheetStatement) *dto.RawValue { return s.TotalCurrentLiabilities })
	put("Inventory", func(s dto.BalanceSheetStatement) *dto.RawValue { return s.Inventory })
	put("Net Tangible Assets", func(s dto.BalanceSheetStatement) *dto.RawValue { return s.NetTangibleAssets })
	put("Long Term Debt", func(s dto.BalanceSheetStatement) *dto.RawValue { return s.LongTermDebt })
	put("Cash And Cash Equivalents", func(s dto.BalanceSheetStatement) *dto.RawValue { return s.Cash })
	put("Invested Capital", func(s dto.BalanceSheetStatement) *dto.RawValue { return s.InvestedCapital })

	// 総負債はバランスシートの期別statementsに載らないため、financialDataの現在値を単期の系列として写す
	if r.FinancialData != nil && r.FinancialData.TotalDebt != nil && r.FinancialData.TotalDebt.Raw != nil {
		table["Total Debt"] = []any{*r.FinancialData.TotalDebt.Raw}
	}
	return table
}

// buildIncomeStatement は損益計算書の科目テーブルを組み立てます。
// 実効税率はYahooが直接返さないため、期ごとに税金費用/税引前利益から導出します。
func buildIncomeStatement(r dto.QuoteSummaryResult) entity.StatementTable {
	table := entity.StatementTable{}
	var stmts []dto.IncomeStatement
	if r.IncomeStatementHistory != nil {
		stmts = r.IncomeStatementHistory.Statements
	}

	put := func(name string, pick func(dto.IncomeStatement) *dto.RawValue) {
		if vals := series(len(stmts), func(i int) *dto.RawValue { return pick(stmts[i]) }); vals != nil {
			table[name] = vals
		}
	}
	put("EBIT", func(s dto.IncomeStatement) *dto.RawValue { return s.Ebit })
	put("Net Income", func(s dto.IncomeStatement) *dto.RawValue { return s.NetIncome })
	put("Total Revenue", func(s dto.IncomeStatement) *dto.RawValue { return s.TotalRevenue })

	if vals := taxRateSeries(stmts); vals != nil {
		table["Tax Rate For Calcs"] = vals
	}
	return table
}

// series はn期分の値の系列を組み立てます。欠損した期はNaNで埋めて期の位置を揃え、
// 全期で欠損している科目はnil（＝テーブルに載せない）を返します。
func series(n int, pick func(i int) *dto.RawValue) []any {
	if n == 0 {
		return nil
	}
	vals := make([]any, 0, n)
	seen := false
	for i := 0; i < n; i++ {
		if v := pick(i); v != nil && v.Raw != nil {
			vals = append(vals, *v.Raw)
			seen = true
		} else {
			vals = append(vals, math.NaN())
		}
	}
	if !seen {
		return nil
	}
	return vals
}

// taxRateSeries は期ごとの実効税率（税金費用/税引前利益）を導出します。
func taxRateSeries(stmts []dto.IncomeStatement) []any {
	if len(stmts) == 0 {
		return nil
	}
	vals := make([]any, 0, len(stmts))
	seen := false
	for _, s := range stmts {
		if s.IncomeTaxExpense != nil && s.IncomeTaxExpense.Raw != nil &&
			s.IncomeBeforeTax != nil && s.IncomeBeforeTax.Raw != nil && *s.IncomeBeforeTax.Raw != 0 {
			vals = append(vals, (*s.IncomeTaxExpense.Raw)/(*s.IncomeBeforeTax.Raw))
			seen = true
		} else {
			vals = append(vals, math.NaN())
		}
	}
	if !seen {
		return nil
	}
	return vals
}

func setRaw(info map[string]any, key string, v *dto.RawValue) {
	if v != nil && v.Raw != nil {
		info[key] = *v.Raw
	}
}

func setString(info map[string]any, key, v string) {
	if v != "" {
		info[key] = v
	}
}
