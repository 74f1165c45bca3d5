package entity

const (
	// NoData は必須科目の欠損・無効値により指標を導出できなかったことを示すセンチネル値です。
	// エラーではなく、正常なレコードの値としてそのまま流れます。
	NoData = "データなし"

	// NotApplicable は取得できなかった値、および演算結果が有限数にならなかった値の表示です。
	NotApplicable = "N/A"
)

// ViewMode は指標レコードの要求形を表します。
type ViewMode string

const (
	// ViewList は一覧画面向けの要約レコードです。
	ViewList ViewMode = "list"
	// ViewDetail は詳細画面向けのレコードで、WEBサイトと企業概要を追加で持ちます。
	ViewDetail ViewMode = "detail"
)

// 指標レコードの表示名です。
const (
	MetricCompanyName        = "企業名"
	MetricPrice              = "株価"
	MetricGrossMargin        = "粗利率"
	MetricOperatingMargin    = "営業利益率"
	MetricEBITDAMargin       = "EBITDAマージン"
	MetricProfitMargin       = "純利益率"
	MetricPER                = "PER"
	MetricPBR                = "PBR"
	MetricROE                = "ROE"
	MetricROA                = "ROA"
	MetricROIC               = "ROIC"
	MetricEquityRatio        = "自己資本比率"
	MetricCurrentRatio       = "流動比率"
	MetricQuickRatio         = "当座比率"
	MetricFixedRatio         = "固定比率"
	MetricFixedLongTermRatio = "固定長期適合率"
	MetricDebtRatio          = "負債比率"
	MetricNetDERatio         = "ネットD/Eレシオ"
	MetricWebsite            = "WEBサイト"
	MetricOverview           = "企業概要"
)

// MetricsRecord は指標の表示名から値への対応です。
// 値は丸め済みの数値、通貨プレフィックス付きの株価文字列、またはNoDataセンチネルのいずれかで、
// 生成後は変更されません。
type MetricsRecord map[string]any
