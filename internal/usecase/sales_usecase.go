package usecase

import (
	"context"

	"canteen/internal/domain/model"
	repo "canteen/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	dashboardRecentOrders   = 10
	dashboardPopularItems   = 5
	dashboardRecentFeedback = 5
)

type PopularItem struct {
	MenuItemID   int64       `json:"menu_item_id"`
	Name         string      `json:"name"`
	Shift        model.Shift `json:"shift"`
	QuantitySold int64       `json:"quantity_sold"`
}

// 管理画面のトップ
type Dashboard struct {
	TotalOrders      int64            `json:"total_orders"`
	CompletedRevenue decimal.Decimal  `json:"completed_revenue"`
	TotalRevenue     decimal.Decimal  `json:"total_revenue"`
	MenuItemCount    int64            `json:"menu_item_count"`
	UserCount        int64            `json:"user_count"`
	FeedbackCount    int64            `json:"feedback_count"`
	RecentOrders     []OrderOutput    `json:"recent_orders"`
	PopularItems     []PopularItem    `json:"popular_items"`
	RecentFeedback   []FeedbackOutput `json:"recent_feedback"`
}

// マイページの集計
type ProfileStats struct {
	TotalOrders     int64            `json:"total_orders"`
	CompletedOrders int64            `json:"completed_orders"`
	PendingOrders   int64            `json:"pending_orders"`
	CompletedSpend  decimal.Decimal  `json:"completed_spend"`
	RecentOrders    []OrderOutput    `json:"recent_orders"`
	RecentFeedback  []FeedbackOutput `json:"recent_feedback"`
}

// 注文履歴の集計（読み取りのみ、ロック無し）
type SalesUsecase struct {
	sales     repo.SalesRepository
	menuItems repo.MenuItemRepository
	users     repo.UserRepository
	feedbacks repo.FeedbackRepository
}

func NewSalesUsecase(
	sales repo.SalesRepository,
	menuItems repo.MenuItemRepository,
	users repo.UserRepository,
	feedbacks repo.FeedbackRepository,
) *SalesUsecase {
	return &SalesUsecase{
		sales:     sales,
		menuItems: menuItems,
		users:     users,
		feedbacks: feedbacks,
	}
}

// statusがnilなら全ステータス
func (u *SalesUsecase) TotalRevenue(ctx context.Context, status *model.OrderStatus) (decimal.Decimal, error) {
	return u.sales.Revenue(ctx, repo.RevenueFilter{Status: status})
}

func (u *SalesUsecase) UserSpend(ctx context.Context, userID int64, status *model.OrderStatus) (decimal.Decimal, error) {
	if userID <= 0 {
		return decimal.Zero, ErrUnauthorized
	}
	return u.sales.Revenue(ctx, repo.RevenueFilter{Status: status, UserID: &userID})
}

// 数量の多い順、同数はメニューID順
func (u *SalesUsecase) PopularItems(ctx context.Context, limit int) ([]PopularItem, error) {
	if limit < 1 || limit > 100 {
		return []PopularItem{}, validationError("invalid limit")
	}

	rows, err := u.sales.PopularItems(ctx, limit)
	if err != nil {
		return []PopularItem{}, err
	}

	outs := make([]PopularItem, 0, len(rows))
	for _, row := range rows {
		outs = append(outs, PopularItem{
			MenuItemID:   row.MenuItemID,
			Name:         row.Name,
			Shift:        row.Shift,
			QuantitySold: row.QuantitySold,
		})
	}
	return outs, nil
}

func (u *SalesUsecase) RecentOrders(ctx context.Context, limit int) ([]OrderOutput, error) {
	if limit < 1 || limit > 100 {
		return []OrderOutput{}, validationError("invalid limit")
	}

	orders, err := u.sales.RecentOrders(ctx, nil, limit)
	if err != nil {
		return []OrderOutput{}, err
	}
	return toOrderOutputs(orders), nil
}

func (u *SalesUsecase) Dashboard(ctx context.Context) (Dashboard, error) {
	var d Dashboard

	counts, err := u.sales.CountOrdersByStatus(ctx, nil)
	if err != nil {
		return Dashboard{}, err
	}
	for _, n := range counts {
		d.TotalOrders += n
	}

	completed := model.OrderStatusCompleted
	if d.CompletedRevenue, err = u.TotalRevenue(ctx, &completed); err != nil {
		return Dashboard{}, err
	}
	if d.TotalRevenue, err = u.TotalRevenue(ctx, nil); err != nil {
		return Dashboard{}, err
	}

	if d.MenuItemCount, err = u.menuItems.Count(ctx); err != nil {
		return Dashboard{}, err
	}
	if d.UserCount, err = u.users.Count(ctx); err != nil {
		return Dashboard{}, err
	}
	if d.FeedbackCount, err = u.feedbacks.Count(ctx); err != nil {
		return Dashboard{}, err
	}

	if d.RecentOrders, err = u.RecentOrders(ctx, dashboardRecentOrders); err != nil {
		return Dashboard{}, err
	}
	if d.PopularItems, err = u.PopularItems(ctx, dashboardPopularItems); err != nil {
		return Dashboard{}, err
	}
	if d.RecentFeedback, err = recentFeedback(ctx, u.feedbacks, nil, dashboardRecentFeedback); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

func (u *SalesUsecase) Profile(ctx context.Context, userID int64) (ProfileStats, error) {
	if userID <= 0 {
		return ProfileStats{}, ErrUnauthorized
	}

	var p ProfileStats

	counts, err := u.sales.CountOrdersByStatus(ctx, &userID)
	if err != nil {
		return ProfileStats{}, err
	}
	for _, n := range counts {
		p.TotalOrders += n
	}
	p.CompletedOrders = counts[model.OrderStatusCompleted]
	p.PendingOrders = counts[model.OrderStatusPending]

	completed := model.OrderStatusCompleted
	if p.CompletedSpend, err = u.UserSpend(ctx, userID, &completed); err != nil {
		return ProfileStats{}, err
	}

	orders, err := u.sales.RecentOrders(ctx, &userID, dashboardRecentOrders)
	if err != nil {
		return ProfileStats{}, err
	}
	p.RecentOrders = toOrderOutputs(orders)

	if p.RecentFeedback, err = recentFeedback(ctx, u.feedbacks, &userID, dashboardRecentFeedback); err != nil {
		return ProfileStats{}, err
	}
	return p, nil
}
