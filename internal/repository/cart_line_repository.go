package repository

import (
	"context"

	"canteen/internal/domain/model"
)

type CartLineRepository interface {
	// MenuItem付きで id 昇順
	ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error)
	// チェックアウト用。行ロックを取る（Tx内で使う）
	ListByUserIDForUpdate(ctx context.Context, userID int64) ([]model.CartLine, error)

	// 同一メニューは数量加算（原子的なupsert）
	AddQuantity(ctx context.Context, userID int64, menuItemID int64, qty int64) error
	UpdateQuantity(ctx context.Context, cartLineID int64, qty int64) error
	FindByID(ctx context.Context, cartLineID int64) (model.CartLine, error)

	DeleteByID(ctx context.Context, cartLineID int64) error
	// チェックアウトでロックした明細だけを消す
	DeleteByIDs(ctx context.Context, cartLineIDs []int64) error
	DeleteByUserID(ctx context.Context, userID int64) (int64, error)
	DeleteByMenuItemID(ctx context.Context, menuItemID int64) error

	// 削除済みメニューの明細は数えない（スナップショットと揃える）
	CountByUserID(ctx context.Context, userID int64) (int64, error)
}
