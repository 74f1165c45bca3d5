package yahoo

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stockmanager/internal/feature/metrics/domain/entity"
)

// quoteSummaryBody は1社分のquoteSummaryレスポンスのテストフィクスチャです。
const quoteSummaryBody = `{
  "quoteSummary": {
    "result": [
      {
        "price": {
          "shortName": "Toyota Motor",
          "regularMarketPrice": {"raw": 2500.0, "fmt": "2,500.00"}
        },
        "summaryDetail": {
          "trailingPE": {"raw": 10.5, "fmt": "10.50"}
        },
        "financialData": {
          "grossMargins": {"raw": 0.35},
          "operatingMargins": {"raw": 0.12},
          "returnOnEquity": {"raw": 0.09},
          "totalDebt": {"raw": 30000.0}
        },
        "defaultKeyStatistics": {
          "priceToBook": {"raw": 1.2}
        },
        "assetProfile": {
          "website": "https://global.toyota",
          "longBusinessSummary": "A car maker."
        },
        "balanceSheetHistory": {
          "balanceSheetStatements": [
            {
              "endDate": {"raw": 1711843200, "fmt": "2024-03-31"},
              "totalAssets": {"raw": 90000.0},
              "totalStockholderEquity": {"raw": 40000.0},
              "cash": {"raw": 15000.0}
            },
            {
              "endDate": {"raw": 1680220800, "fmt": "2023-03-31"},
              "totalAssets": {"raw": 80000.0},
              "totalStockholderEquity": {"raw": 35000.0}
            }
          ]
        },
        "incomeStatementHistory": {
          "incomeStatementHistory": [
            {
              "endDate": {"raw": 1711843200, "fmt": "2024-03-31"},
              "ebit": {"raw": 5000.0},
              "netIncome": {"raw": 3000.0},
              "totalRevenue": {"raw": 45000.0},
              "incomeTaxExpense": {"raw": 300.0},
              "incomeBeforeTax": {"raw": 1000.0}
            }
          ]
        }
      }
    ],
    "error": null
  }
}`

// newTestMarket はテストサーバーに向けたYahooMarketを組み立てます。
func newTestMarket(t *testing.T, handler http.HandlerFunc) (*YahooMarket, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := Config{BaseURL: server.URL, UserAgent: "test-agent", Timeout: 5 * time.Second}
	return NewYahooMarket(cfg, server.Client()), server
}

// TestYahooMarket_FetchStatements_Success は正常レスポンスのスナップショットへの写像を検証します。
func TestYahooMarket_FetchStatements_Success(t *testing.T) {
	t.Parallel()

	var gotPath, gotModules, gotUA string
	market, _ := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotModules = r.URL.Query().Get("modules")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, quoteSummaryBody)
	})

	snap, err := market.FetchStatements(context.Background(), "7203.T")
	if err != nil {
		t.Fatalf("FetchStatements() error = %v", err)
	}

	if gotPath != "/v10/finance/quoteSummary/7203.T" {
		t.Errorf("request path = %q, want %q", gotPath, "/v10/finance/quoteSummary/7203.T")
	}
	if gotModules != quoteSummaryModules {
		t.Errorf("modules param = %q, want %q", gotModules, quoteSummaryModules)
	}
	if gotUA != "test-agent" {
		t.Errorf("user agent = %q, want %q", gotUA, "test-agent")
	}

	if !snap.Complete() {
		t.Fatal("snapshot should be complete")
	}
	if got := snap.Info["shortName"]; got != "Toyota Motor" {
		t.Errorf("shortName = %v, want %q", got, "Toyota Motor")
	}
	if got := snap.Info["regularMarketPrice"]; got != 2500.0 {
		t.Errorf("regularMarketPrice = %v, want 2500", got)
	}
	if got := snap.Info["trailingPE"]; got != 10.5 {
		t.Errorf("trailingPE = %v, want 10.5", got)
	}
	if _, ok := snap.Info["ebitdaMargins"]; ok {
		t.Error("absent upstream fields should be omitted from info")
	}

	// バランスシート: 直近期が先頭
	if v, status := snap.BalanceSheet.Latest("Total Assets"); status != entity.LookupFound || v != 90000.0 {
		t.Errorf("Total Assets latest = %v (%v), want 90000", v, status)
	}
	if v, status := snap.BalanceSheet.Latest("Total Debt"); status != entity.LookupFound || v != 30000.0 {
		t.Errorf("Total Debt latest = %v (%v), want 30000 from financialData", v, status)
	}
	// 直近期のみ存在する科目は過去期がNaNで埋まる
	cash := snap.BalanceSheet["Cash And Cash Equivalents"]
	if len(cash) != 2 {
		t.Fatalf("cash series has %d periods, want 2", len(cash))
	}
	if old, ok := cash[1].(float64); !ok || !math.IsNaN(old) {
		t.Errorf("missing older period = %v, want NaN padding", cash[1])
	}
	// 全期で欠損している科目はテーブルに載らない
	if _, ok := snap.BalanceSheet["Inventory"]; ok {
		t.Error("line items missing in every period should be omitted")
	}

	// 損益計算書: 実効税率は税金費用/税引前利益から導出される
	if v, status := snap.IncomeStatement.Latest("Tax Rate For Calcs"); status != entity.LookupFound || v != 0.3 {
		t.Errorf("Tax Rate For Calcs latest = %v (%v), want 0.3", v, status)
	}
	if v, status := snap.IncomeStatement.Latest("EBIT"); status != entity.LookupFound || v != 5000.0 {
		t.Errorf("EBIT latest = %v (%v), want 5000", v, status)
	}
}

// TestYahooMarket_FetchStatements_HTTPError はHTTPエラーステータスの扱いを検証します。
func TestYahooMarket_FetchStatements_HTTPError(t *testing.T) {
	t.Parallel()

	market, _ := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := market.FetchStatements(context.Background(), "NOPE")
	if err == nil {
		t.Fatal("FetchStatements() should fail on http 404")
	}
}

// TestYahooMarket_FetchStatements_APIError はAPIレベルのエラーオブジェクトの扱いを検証します。
func TestYahooMarket_FetchStatements_APIError(t *testing.T) {
	t.Parallel()

	market, _ := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"quoteSummary":{"result":null,"error":{"code":"Not Found","description":"Quote not found"}}}`)
	})

	_, err := market.FetchStatements(context.Background(), "NOPE")
	if err == nil {
		t.Fatal("FetchStatements() should fail on an API error")
	}
}

// TestYahooMarket_FetchStatements_EmptyResult は結果が空配列の場合の扱いを検証します。
func TestYahooMarket_FetchStatements_EmptyResult(t *testing.T) {
	t.Parallel()

	market, _ := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"quoteSummary":{"result":[],"error":null}}`)
	})

	_, err := market.FetchStatements(context.Background(), "NOPE")
	if err == nil {
		t.Fatal("FetchStatements() should fail when the result is empty")
	}
}

// TestYahooMarket_FetchStatements_SparseModules はモジュール欠落時も空テーブルで完全なスナップショットになることを検証します。
func TestYahooMarket_FetchStatements_SparseModules(t *testing.T) {
	t.Parallel()

	market, _ := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"quoteSummary":{"result":[{"price":{"shortName":"Bare Co"}}],"error":null}}`)
	})

	snap, err := market.FetchStatements(context.Background(), "BARE")
	if err != nil {
		t.Fatalf("FetchStatements() error = %v", err)
	}
	if !snap.Complete() {
		t.Fatal("snapshot should be complete even with sparse modules")
	}
	if len(snap.BalanceSheet) != 0 {
		t.Errorf("balance sheet has %d items, want 0", len(snap.BalanceSheet))
	}
	if len(snap.IncomeStatement) != 0 {
		t.Errorf("income statement has %d items, want 0", len(snap.IncomeStatement))
	}
}
