// Package dto はYahoo Finance quoteSummary APIのレスポンス型を定義します。
package dto

// QuoteSummaryResponse はquoteSummaryエンドポイントのトップレベルレスポンスです。
type QuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []QuoteSummaryResult `json:"result"`
		Error  *APIError            `json:"error"`
	} `json:"quoteSummary"`
}

// APIError はYahoo Financeが返すエラーペイロードです。
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// QuoteSummaryResult は要求した各モジュールのデータです。存在しないモジュールはnilになります。
type QuoteSummaryResult struct {
	Price                  *Price                  `json:"price"`
	SummaryDetail          *SummaryDetail          `json:"summaryDetail"`
	FinancialData          *FinancialData          `json:"financialData"`
	DefaultKeyStatistics   *DefaultKeyStatistics   `json:"defaultKeyStatistics"`
	AssetProfile           *AssetProfile           `json:"assetProfile"`
	BalanceSheetHistory    *BalanceSheetHistory    `json:"balanceSheetHistory"`
	IncomeStatementHistory *IncomeStatementHistory `json:"incomeStatementHistory"`
}

// RawValue はYahooの数値フィールドの共通形 {"raw": 123.4, "fmt": "123.4"} です。
// 欠損フィールドはRawがnilになります。
type RawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

// Price はpriceモジュールです。
type Price struct {
	ShortName          string    `json:"shortName"`
	RegularMarketPrice *RawValue `json:"regularMarketPrice"`
}

// SummaryDetail はsummaryDetailモジュールです。
type SummaryDetail struct {
	TrailingPE *RawValue `json:"trailingPE"`
}

// FinancialData はfinancialDataモジュールです。
type FinancialData struct {
	GrossMargins     *RawValue `json:"grossMargins"`
	OperatingMargins *RawValue `json:"operatingMargins"`
	EbitdaMargins    *RawValue `json:"ebitdaMargins"`
	ReturnOnEquity   *RawValue `json:"returnOnEquity"`
	ReturnOnAssets   *RawValue `json:"returnOnAssets"`
	TotalDebt        *RawValue `json:"totalDebt"`
}

// DefaultKeyStatistics はdefaultKeyStatisticsモジュールです。
type DefaultKeyStatistics struct {
	PriceToBook *RawValue `json:"priceToBook"`
}

// AssetProfile はassetProfileモジュールです。
type AssetProfile struct {
	Website             string `json:"website"`
	LongBusinessSummary string `json:"longBusinessSummary"`
}

// BalanceSheetHistory はbalanceSheetHistoryモジュールです。statementsは直近の期が先頭です。
type BalanceSheetHistory struct {
	Statements []BalanceSheetStatement `json:"balanceSheetStatements"`
}

// BalanceSheetStatement は1期分のバランスシートです。
type BalanceSheetStatement struct {
	EndDate                 *RawValue `json:"endDate"`
	TotalAssets             *RawValue `json:"totalAssets"`
	TotalLiab               *RawValue `json:"totalLiab"`
	TotalStockholderEquity  *RawValue `json:"totalStockholderEquity"`
	TotalCurrentAssets      *RawValue `json:"totalCurrentAssets"`
	TotalCurrentLiabilities *RawValue `json:"totalCurrentLiabilities"`
	Inventory               *RawValue `json:"inventory"`
	NetTangibleAssets       *RawValue `json:"netTangibleAssets"`
	LongTermDebt            *RawValue `json:"longTermDebt"`
	Cash                    *RawValue `json:"cash"`
	InvestedCapital         *RawValue `json:"investedCapital"`
}

// IncomeStatementHistory はincomeStatementHistoryモジュールです。statementsは直近の期が先頭です。
type IncomeStatementHistory struct {
	Statements []IncomeStatement `json:"incomeStatementHistory"`
}

// IncomeStatement は1期分の損益計算書です。
type IncomeStatement struct {
	EndDate          *RawValue `json:"endDate"`
	Ebit             *RawValue `json:"ebit"`
	NetIncome        *RawValue `json:"netIncome"`
	TotalRevenue     *RawValue `json:"totalRevenue"`
	IncomeTaxExpense *RawValue `json:"incomeTaxExpense"`
	IncomeBeforeTax  *RawValue `json:"incomeBeforeTax"`
}
