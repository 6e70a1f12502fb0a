package repository

import (
	"context"
	"time"

	"canteen/internal/domain/model"
)

// 管理者用の注文一覧
type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	// Lines付き
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// 状態遷移用に行ロックを取る（Lines無し）
	FindByIDForUpdate(ctx context.Context, orderID int64) (model.Order, error)
	// 新しい順、Lines付き
	ListByUserID(ctx context.Context, userID int64, limit int) ([]model.Order, error)
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)

	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	// 明細は先に OrderLineRepository.DeleteByOrderID で消すこと
	Delete(ctx context.Context, orderID int64) error
}
