package repository

import (
	"context"

	"canteen/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 売上集計の条件。nilは絞り込まない
type RevenueFilter struct {
	Status *model.OrderStatus
	UserID *int64
}

// 販売数量の集計行
type ItemSales struct {
	MenuItemID   int64
	Name         string
	Shift        model.Shift
	QuantitySold int64
}

// 注文履歴の読み取り専用の集計。ロックは取らない。
type SalesRepository interface {
	Revenue(ctx context.Context, f RevenueFilter) (decimal.Decimal, error)
	// 数量の多い順、同数は menu_item_id 昇順
	PopularItems(ctx context.Context, limit int) ([]ItemSales, error)
	// created_at 降順、User と Lines 付き
	RecentOrders(ctx context.Context, userID *int64, limit int) ([]model.Order, error)
	CountOrdersByStatus(ctx context.Context, userID *int64) (map[model.OrderStatus]int64, error)
}
