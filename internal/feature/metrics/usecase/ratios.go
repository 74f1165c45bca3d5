package usecase

import (
	"math"

	"stockmanager/internal/feature/metrics/domain/entity"
)

// requireLatest は財務諸表テーブルから必須科目の直近期の値を順序を保って取り出します。
// 1つでも欠損・無効な科目があれば全体を失敗として扱い、部分的な結果は返しません。
// zeroDivisorOK がfalseの場合、末尾の科目（慣例で除数）がちょうど0なら検証失敗とします。
func requireLatest(table entity.StatementTable, names []string, zeroDivisorOK bool) ([]float64, bool) {
	vals := make([]float64, 0, len(names))
	for _, name := range names {
		v, status := table.Latest(name)
		if status != entity.LookupFound {
			return nil, false
		}
		vals = append(vals, v)
	}
	if !zeroDivisorOK && len(vals) > 0 && vals[len(vals)-1] == 0 {
		return nil, false
	}
	return vals, true
}

// safeRound は値を小数点以下2桁に丸めます。
// NaN・無限大は丸めようがないためNotApplicableを返します。
func safeRound(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return entity.NotApplicable
	}
	return math.Round(v*100) / 100
}

// derivation は導出指標1つの定義です。income・balance の科目を検証のうえ
// 取り出し、computeに順序どおり渡します。除数は最後に列挙された科目
//（balanceがあればbalanceの末尾、なければincomeの末尾）です。
type derivation struct {
	label   string
	income  []string
	balance []string
	// zeroDivisorOK は除数位置の0を許容するかどうかです。許容した場合の
	// 非有限な演算結果はsafeRoundがNotApplicableに落とします。
	zeroDivisorOK bool
	compute       func(pl, bs []float64) float64
}

// ratioCatalog は導出指標の固定カタログです。値はすべて％換算（×100）で小数点以下2桁に丸めます。
// 必須科目の検証に失敗した指標はNoDataセンチネルになります。
var ratioCatalog = []derivation{
	{
		label:   entity.MetricROIC,
		income:  []string{"EBIT", "Tax Rate For Calcs"},
		balance: []string{"Invested Capital"},
		compute: func(pl, bs []float64) float64 {
			nopat := pl[0] * (1 - pl[1])
			return nopat / bs[0] * 100
		},
	},
	{
		label:  entity.MetricProfitMargin,
		income: []string{"Net Income", "Total Revenue"},
		compute: func(pl, _ []float64) float64 {
			return pl[0] / pl[1] * 100
		},
	},
	{
		label:         entity.MetricEquityRatio,
		balance:       []string{"Stockholders Equity", "Total Assets"},
		zeroDivisorOK: true,
		compute: func(_, bs []float64) float64 {
			return bs[0] / bs[1] * 100
		},
	},
	{
		label:   entity.MetricCurrentRatio,
		balance: []string{"Current Assets", "Current Liabilities"},
		compute: func(_, bs []float64) float64 {
			return bs[0] / bs[1] * 100
		},
	},
	{
		label:   entity.MetricQuickRatio,
		balance: []string{"Current Assets", "Inventory", "Current Liabilities"},
		compute: func(_, bs []float64) float64 {
			return (bs[0] - bs[1]) / bs[2] * 100
		},
	},
	{
		label:   entity.MetricFixedRatio,
		balance: []string{"Net Tangible Assets", "Stockholders Equity"},
		compute: func(_, bs []float64) float64 {
			return bs[0] / bs[1] * 100
		},
	},
	{
		label:   entity.MetricFixedLongTermRatio,
		balance: []string{"Net Tangible Assets", "Stockholders Equity", "Long Term Debt"},
		compute: func(_, bs []float64) float64 {
			return bs[0] / (bs[1] + bs[2]) * 100
		},
	},
	{
		label:   entity.MetricDebtRatio,
		balance: []string{"Total Liabilities Net Minority Interest", "Total Assets"},
		compute: func(_, bs []float64) float64 {
			return bs[0] / bs[1] * 100
		},
	},
	{
		label:   entity.MetricNetDERatio,
		balance: []string{"Total Debt", "Cash And Cash Equivalents", "Stockholders Equity"},
		compute: func(_, bs []float64) float64 {
			return bs[0] / (bs[1] + bs[2]) * 100
		},
	},
}

// value は導出指標1つを計算します。検証に失敗した場合はNoDataセンチネルを返し、
// 例外的なエラーは発生しません。
func (d derivation) value(snap *entity.FinancialSnapshot) any {
	// 除数位置の0チェックは除数を含む側のテーブルにのみ適用する
	plZeroOK, bsZeroOK := true, d.zeroDivisorOK
	if len(d.balance) == 0 {
		plZeroOK = d.zeroDivisorOK
	}

	var pl, bs []float64
	if len(d.income) > 0 {
		vals, ok := requireLatest(snap.IncomeStatement, d.income, plZeroOK)
		if !ok {
			return entity.NoData
		}
		pl = vals
	}
	if len(d.balance) > 0 {
		vals, ok := requireLatest(snap.BalanceSheet, d.balance, bsZeroOK)
		if !ok {
			return entity.NoData
		}
		bs = vals
	}
	return safeRound(d.compute(pl, bs))
}
