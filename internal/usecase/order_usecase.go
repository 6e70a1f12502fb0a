package usecase

import (
	"context"
	"errors"
	"time"

	"canteen/internal/domain/model"
	repo "canteen/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
}

func NewOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository) *OrderUsecase {
	return &OrderUsecase{tx: tx, orders: orders}
}

type OrderLineOutput struct {
	MenuItemID int64           `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type OrderOutput struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"user_id"`
	Username    string            `json:"username,omitempty"`
	MealShift   model.Shift       `json:"meal_shift"`
	Status      model.OrderStatus `json:"status"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	CreatedAt   time.Time         `json:"created_at"`
	Lines       []OrderLineOutput `json:"lines"`
}

// 自分の注文をキャンセル。pendingのときだけ
func (u *OrderUsecase) Cancel(ctx context.Context, userID int64, orderID int64) error {
	if userID <= 0 {
		return ErrUnauthorized
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		//所有チェック
		if o.UserID != userID {
			return ErrNotOwner
		}
		if o.Status != model.OrderStatusPending {
			return ErrInvalidTransition
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		return nil
	})
}

// 新しい順
func (u *OrderUsecase) ListMine(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, ErrUnauthorized
	}

	orders, err := u.orders.ListByUserID(ctx, userID, 0)
	if err != nil {
		return []OrderOutput{}, err
	}
	return toOrderOutputs(orders), nil
}

// 他人の注文は存在しない扱い
func (u *OrderUsecase) Detail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, ErrUnauthorized
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, ErrNotFound
	}
	if err != nil {
		return OrderOutput{}, err
	}
	if o.UserID != userID {
		return OrderOutput{}, ErrNotFound
	}
	return toOrderOutput(o, o.Lines), nil
}

func toOrderOutput(o model.Order, lines []model.OrderLine) OrderOutput {
	out := OrderOutput{
		ID:          o.ID,
		UserID:      o.UserID,
		MealShift:   o.MealShift,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
		Lines:       make([]OrderLineOutput, 0, len(lines)),
	}
	if o.User != nil {
		out.Username = o.User.Username
	}
	for _, l := range lines {
		lo := OrderLineOutput{
			MenuItemID: l.MenuItemID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			Subtotal:   l.Subtotal(),
		}
		if l.MenuItem != nil {
			lo.Name = l.MenuItem.Name
		}
		out.Lines = append(out.Lines, lo)
	}
	return out
}

func toOrderOutputs(orders []model.Order) []OrderOutput {
	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		outs = append(outs, toOrderOutput(o, o.Lines))
	}
	return outs
}
