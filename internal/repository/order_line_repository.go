package repository

import (
	"context"

	"canteen/internal/domain/model"
)

type OrderLineRepository interface {
	CreateBulk(ctx context.Context, orderID int64, lines []model.OrderLine) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error)
	DeleteByOrderID(ctx context.Context, orderID int64) (int64, error)
}
