package repository

import (
	"context"

	"canteen/internal/domain/model"
)

// メニュー一覧の絞り込み
type MenuListQuery struct {
	Shift         *model.Shift
	AvailableOnly bool
}

// メニューの永続化（保存・取得）だけを約束。
type MenuItemRepository interface {
	List(ctx context.Context, q MenuListQuery) ([]model.MenuItem, error)
	FindByID(ctx context.Context, id int64) (model.MenuItem, error)

	Create(ctx context.Context, item model.MenuItem) (model.MenuItem, error)
	Update(ctx context.Context, item model.MenuItem) error
	//提供可否を反転し、反転後の値を返す
	ToggleAvailable(ctx context.Context, id int64) (bool, error)
	SoftDelete(ctx context.Context, id int64) error

	Count(ctx context.Context) (int64, error)
}
