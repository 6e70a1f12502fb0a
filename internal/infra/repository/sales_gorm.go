package repository

import (
	"context"

	"canteen/internal/domain/model"
	repo "canteen/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 注文・明細の読み取り集計。ロックは取らない
type SalesGormRepository struct {
	db *gorm.DB
}

func NewSalesGormRepository(db *gorm.DB) *SalesGormRepository {
	return &SalesGormRepository{db: db}
}

// Σ quantity*unit_price。該当なしは0
func (r *SalesGormRepository) Revenue(ctx context.Context, f repo.RevenueFilter) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).
		Table("order_lines").
		Joins("JOIN orders ON orders.id = order_lines.order_id")

	if f.Status != nil {
		q = q.Where("orders.status = ?", *f.Status)
	}
	if f.UserID != nil {
		q = q.Where("orders.user_id = ?", *f.UserID)
	}

	var total decimal.NullDecimal
	if err := q.Select("SUM(order_lines.quantity * order_lines.unit_price)").Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal.Round(model.PriceScale), nil
}

func (r *SalesGormRepository) PopularItems(ctx context.Context, limit int) ([]repo.ItemSales, error) {
	q := r.db.WithContext(ctx).
		Table("order_lines").
		Select("order_lines.menu_item_id AS menu_item_id, menu_items.name AS name, menu_items.shift AS shift, SUM(order_lines.quantity) AS quantity_sold").
		Joins("JOIN menu_items ON menu_items.id = order_lines.menu_item_id").
		Group("order_lines.menu_item_id, menu_items.name, menu_items.shift").
		Order("quantity_sold DESC").
		Order("order_lines.menu_item_id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []repo.ItemSales
	if err := q.Scan(&rows).Error; err != nil {
		return []repo.ItemSales{}, err
	}
	return rows, nil
}

func (r *SalesGormRepository) RecentOrders(ctx context.Context, userID *int64, limit int) ([]model.Order, error) {
	q := preloadLines(r.db.WithContext(ctx).Preload("User"))
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var items []model.Order
	if err := q.Order("created_at desc").Order("id desc").Find(&items).Error; err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *SalesGormRepository) CountOrdersByStatus(ctx context.Context, userID *int64) (map[model.OrderStatus]int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("status, COUNT(*) AS total").
		Group("status")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	var rows []struct {
		Status model.OrderStatus
		Total  int64
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[model.OrderStatus]int64, len(model.OrderStatuses))
	for _, st := range model.OrderStatuses {
		out[st] = 0
	}
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}
