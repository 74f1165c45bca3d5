// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"stockmanager/internal/feature/watchlist/domain"
	"stockmanager/internal/feature/watchlist/domain/entity"
	"stockmanager/internal/feature/watchlist/usecase"
)

// watchlistGorm はWatchlistRepositoryインターフェースのGORM実装です。
type watchlistGorm struct {
	db *gorm.DB
}

var _ usecase.WatchlistRepository = (*watchlistGorm)(nil)

// NewWatchlistRepository は指定されたDB接続でwatchlistGormリポジトリの新しいインスタンスを生成します。
func NewWatchlistRepository(db *gorm.DB) *watchlistGorm {
	return &watchlistGorm{db: db}
}

// Create は新しいWatchItemを保存します。
func (r *watchlistGorm) Create(ctx context.Context, item *entity.WatchItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Delete は(userID, symbol)のエントリを削除します。該当なしはdomain.ErrNotSavedです。
func (r *watchlistGorm) Delete(ctx context.Context, userID uint, symbol string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Delete(&entity.WatchItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotSaved
	}
	return nil
}

// ListSymbols はユーザーの登録銘柄を登録順に返します。
func (r *watchlistGorm) ListSymbols(ctx context.Context, userID uint) ([]string, error) {
	var symbols []string
	if err := r.db.WithContext(ctx).
		Model(&entity.WatchItem{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// Exists は(userID, symbol)のエントリの有無を報告します。
func (r *watchlistGorm) Exists(ctx context.Context, userID uint, symbol string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.WatchItem{}).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
