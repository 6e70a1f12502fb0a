package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"canteen/internal/domain/model"
	repo "canteen/internal/repository"

	"github.com/shopspring/decimal"
)

// カート → 時間帯ごとの注文
type CheckoutUsecase struct {
	tx repo.TransactionManager
}

func NewCheckoutUsecase(tx repo.TransactionManager) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx}
}

type CheckoutOutput struct {
	OrderIDs []int64         `json:"order_ids"`
	Orders   []OrderOutput   `json:"orders"`
	Total    decimal.Decimal `json:"total"`

	// メニューが削除済みで注文できず、カートから外した明細
	DroppedLineIDs []int64 `json:"dropped_line_ids"`
}

// 1つのTxで、時間帯ごとにpendingの注文を作りカートを空にする。
// 提供可否はここでは見ない（カートに入れた時点で確認済み）。
// メニューが削除済みの明細はスナップショットと同じく無視し、注文せずに消す。
func (u *CheckoutUsecase) Checkout(ctx context.Context, userID int64) (CheckoutOutput, error) {
	if userID <= 0 {
		return CheckoutOutput{}, ErrUnauthorized
	}

	var out CheckoutOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 同じユーザーの同時チェックアウトはここで待たされ、後続は空カートになる
		lines, err := r.CartLines().ListByUserIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		// 消すのはロックした明細だけ。ロック後に追加された明細は次回へ残す
		lockedIDs := make([]int64, 0, len(lines))
		dropped := []int64{}
		byShift := make(map[model.Shift][]model.CartLine)
		for _, cl := range lines {
			lockedIDs = append(lockedIDs, cl.ID)
			if cl.MenuItem == nil {
				dropped = append(dropped, cl.ID)
				continue
			}
			byShift[cl.MenuItem.Shift] = append(byShift[cl.MenuItem.Shift], cl)
		}

		now := time.Now()
		out = CheckoutOutput{
			OrderIDs: make([]int64, 0, len(byShift)),
			Orders:   make([]OrderOutput, 0, len(byShift)),
			Total:    decimal.Zero,

			DroppedLineIDs: dropped,
		}

		for _, sh := range sortedShifts(byShift) {
			//価格はこの時点のメニュー価格をコピー
			orderLines := make([]model.OrderLine, 0, len(byShift[sh]))
			total := decimal.Zero
			for _, cl := range byShift[sh] {
				ol := model.OrderLine{
					MenuItemID: cl.MenuItemID,
					MenuItem:   cl.MenuItem,
					Quantity:   cl.Quantity,
					UnitPrice:  cl.MenuItem.Price,
					CreatedAt:  now,
				}
				total = total.Add(ol.Subtotal())
				orderLines = append(orderLines, ol)
			}

			order := model.Order{
				UserID:      userID,
				MealShift:   sh,
				Status:      model.OrderStatusPending,
				TotalAmount: total,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			orderID, err := r.Orders().Create(ctx, order)
			if err != nil {
				return err
			}
			if err := r.OrderLines().CreateBulk(ctx, orderID, orderLines); err != nil {
				return err
			}

			order.ID = orderID
			out.OrderIDs = append(out.OrderIDs, orderID)
			out.Orders = append(out.Orders, toOrderOutput(order, orderLines))
			out.Total = out.Total.Add(total)
		}

		if err := r.CartLines().DeleteByIDs(ctx, lockedIDs); err != nil {
			return err
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			return CheckoutOutput{}, err
		}
		return CheckoutOutput{}, fmt.Errorf("%w: %w", ErrCheckoutFailed, err)
	}
	// 削除済みメニューの明細しかなかった（それらは消えている）
	if len(out.OrderIDs) == 0 {
		return CheckoutOutput{}, ErrEmptyCart
	}
	return out, nil
}
