package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"stockmanager/internal/feature/metrics/domain/entity"
)

const (
	// DefaultCacheTTL は指標レコードをキャッシュする既定の期間です。挿入時点からの絶対TTLです。
	DefaultCacheTTL = time.Hour
	// DefaultMissDelay はキャッシュミス時に上流へ問い合わせる前に置く固定の待機時間です。
	// 上流のレート制限への配慮で、ミスのたびに発生します。
	DefaultMissDelay = 3 * time.Second

	// resolverInvalid はシンボル解決サービスが入力を企業と認識できなかったときに返すトークンです。
	resolverInvalid = "Invalid"
)

// MarketDataRepository は外部データソースからの財務諸表取得を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketDataRepository interface {
	// FetchStatements は市場サフィックス適用済みのシンボルで財務スナップショットを取得します。
	FetchStatements(ctx context.Context, symbol string) (*entity.FinancialSnapshot, error)
}

// SymbolResolver は企業名からシンボルへの解決を抽象化します。
type SymbolResolver interface {
	// Resolve は企業名またはシンボルを正規のシンボルトークンに解決します。
	// 企業と認識できない入力にはセンチネル"Invalid"を返します。
	Resolve(ctx context.Context, companyName string) (string, error)
}

// Translator は企業概要テキストの翻訳を抽象化します。
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// MetricsCache は(ユーザー, シンボル, 表示モード)単位の指標レコードキャッシュです。
// ヒット・ミスの判定とTTL・無効化の唯一の権限を持ちます。
// 実装はベストエフォートで、ストア障害はミスとして扱われます。
type MetricsCache interface {
	Get(ctx context.Context, userID uint, symbol string, view entity.ViewMode) (entity.MetricsRecord, bool)
	Set(ctx context.Context, userID uint, symbol string, view entity.ViewMode, rec entity.MetricsRecord, ttl time.Duration)
	// Invalidate は(ユーザー, シンボル)のすべての表示モードのエントリを削除します。
	Invalidate(ctx context.Context, userID uint, symbol string)
}

// MetricsUsecase は銘柄指標の取得・検索のユースケースを実装します。
type MetricsUsecase struct {
	market     MarketDataRepository
	cache      MetricsCache
	resolver   SymbolResolver
	translator Translator
	cacheTTL   time.Duration
	missDelay  time.Duration
}

// NewMetricsUsecase はMetricsUsecaseの新しいインスタンスを生成します。
// cacheTTLが0以下の場合はDefaultCacheTTL、missDelayが負の場合はDefaultMissDelayに
// フォールバックします（missDelay=0はテスト用に待機なしを意味します）。
func NewMetricsUsecase(market MarketDataRepository, cache MetricsCache, resolver SymbolResolver, translator Translator, cacheTTL, missDelay time.Duration) *MetricsUsecase {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	if missDelay < 0 {
		missDelay = DefaultMissDelay
	}
	return &MetricsUsecase{
		market:     market,
		cache:      cache,
		resolver:   resolver,
		translator: translator,
		cacheTTL:   cacheTTL,
		missDelay:  missDelay,
	}
}

// FetchCompanyData は指定シンボルの指標レコードを返します。
//
// シンボルを正規化し、(ユーザー, シンボル, 表示モード)のキャッシュを確認します。
// ヒット時は上流を呼ばず即座に返します。ミス時は固定の待機の後に外部データソースから
// スナップショットを取得・集計し、成功した場合のみキャッシュへ保存します。
// 取得・集計の失敗はキャッシュされず、そのまま呼び出し元へ伝播します。
func (u *MetricsUsecase) FetchCompanyData(ctx context.Context, userID uint, rawSymbol string, includeOverview bool) (entity.MetricsRecord, error) {
	sym := entity.NormalizeSymbol(rawSymbol)
	view := entity.ViewList
	if includeOverview {
		view = entity.ViewDetail
	}

	if rec, ok := u.cache.Get(ctx, userID, sym.String(), view); ok {
		slog.Debug("metrics cache hit", "user_id", userID, "symbol", sym.String(), "view", view)
		return rec, nil
	}
	slog.Debug("metrics cache miss", "user_id", userID, "symbol", sym.String(), "view", view)

	// 上流への配慮として、ミス時のみ固定の待機を置く
	if u.missDelay > 0 {
		time.Sleep(u.missDelay)
	}

	snap, err := u.market.FetchStatements(ctx, sym.MarketCode())
	if err != nil {
		return nil, fmt.Errorf("fetch statements for %s: %w", sym.MarketCode(), err)
	}

	rec, err := u.buildMetrics(ctx, snap, sym, includeOverview)
	if err != nil {
		return nil, err
	}

	u.cache.Set(ctx, userID, sym.String(), view, rec, u.cacheTTL)
	return rec, nil
}

// SearchSymbol は企業名をシンボル解決サービスでシンボルに解決します。
// サービスが入力を企業と認識できなかった場合は、上流障害と区別される
// ErrInvalidCompanyNameを返します。
func (u *MetricsUsecase) SearchSymbol(ctx context.Context, companyName string) (string, error) {
	if strings.TrimSpace(companyName) == "" {
		return "", ErrInvalidCompanyName
	}
	symbol, err := u.resolver.Resolve(ctx, companyName)
	if err != nil {
		return "", fmt.Errorf("resolve symbol for %q: %w", companyName, err)
	}
	symbol = strings.TrimSpace(symbol)
	if strings.EqualFold(symbol, resolverInvalid) {
		return "", ErrInvalidCompanyName
	}
	return symbol, nil
}

// InvalidateMetrics は(ユーザー, シンボル)のキャッシュ済み指標をすべての表示モードについて削除します。
// ウォッチリストからの銘柄削除時に呼び出されます。
func (u *MetricsUsecase) InvalidateMetrics(ctx context.Context, userID uint, rawSymbol string) {
	sym := entity.NormalizeSymbol(rawSymbol)
	u.cache.Invalidate(ctx, userID, sym.String())
}
