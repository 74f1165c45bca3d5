// Package usecase はwatchlistフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"

	"stockmanager/internal/feature/watchlist/domain"
	"stockmanager/internal/feature/watchlist/domain/entity"
)

// WatchlistRepository はウォッチリストの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type WatchlistRepository interface {
	// Create は新しいWatchItemを永続化します。
	Create(ctx context.Context, item *entity.WatchItem) error
	// Delete は(userID, symbol)のエントリを削除します。
	// エントリが存在しない場合はdomain.ErrNotSavedを返します。
	Delete(ctx context.Context, userID uint, symbol string) error
	// ListSymbols はユーザーの登録銘柄を登録順に返します。
	ListSymbols(ctx context.Context, userID uint) ([]string, error)
	// Exists は(userID, symbol)のエントリの有無を報告します。
	Exists(ctx context.Context, userID uint, symbol string) (bool, error)
}

// MetricsInvalidator は銘柄削除時のキャッシュ無効化を抽象化します。
type MetricsInvalidator interface {
	// InvalidateMetrics は(ユーザー, シンボル)のキャッシュ済み指標を全表示モードについて削除します。
	InvalidateMetrics(ctx context.Context, userID uint, symbol string)
}

// WatchlistUsecase はウォッチリスト操作のビジネスロジックを提供します。
type WatchlistUsecase struct {
	repo        WatchlistRepository
	invalidator MetricsInvalidator
}

// NewWatchlistUsecase はWatchlistUsecaseの新しいインスタンスを生成します。
func NewWatchlistUsecase(repo WatchlistRepository, invalidator MetricsInvalidator) *WatchlistUsecase {
	return &WatchlistUsecase{repo: repo, invalidator: invalidator}
}

// Save は銘柄をユーザーのウォッチリストに登録します。
// すでに登録済みの場合はdomain.ErrAlreadySavedを返します。
func (u *WatchlistUsecase) Save(ctx context.Context, userID uint, symbol string) error {
	exists, err := u.repo.Exists(ctx, userID, symbol)
	if err != nil {
		return fmt.Errorf("check watchlist entry: %w", err)
	}
	if exists {
		return domain.ErrAlreadySaved
	}
	return u.repo.Create(ctx, &entity.WatchItem{UserID: userID, Symbol: symbol})
}

// Remove は銘柄をウォッチリストから削除し、その銘柄のキャッシュ済み指標を無効化します。
func (u *WatchlistUsecase) Remove(ctx context.Context, userID uint, symbol string) error {
	if err := u.repo.Delete(ctx, userID, symbol); err != nil {
		return err
	}
	// 削除済み銘柄の指標が次回フェッチで必ずミスになるようにする
	u.invalidator.InvalidateMetrics(ctx, userID, symbol)
	return nil
}

// List はユーザーの登録銘柄を返します。
func (u *WatchlistUsecase) List(ctx context.Context, userID uint) ([]string, error) {
	return u.repo.ListSymbols(ctx, userID)
}

// IsSaved は銘柄がユーザーのウォッチリストに登録されているかを報告します。
func (u *WatchlistUsecase) IsSaved(ctx context.Context, userID uint, symbol string) (bool, error) {
	return u.repo.Exists(ctx, userID, symbol)
}
