package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"canteen/internal/domain/model"
	repo "canteen/internal/repository"
)

type AdminOrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
}

func NewAdminOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, orders: orders}
}

type AdminOrderList struct {
	Items []OrderOutput `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// 注文一覧（User・明細付き、新しい順）
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (AdminOrderList, error) {
	// page/limitの最低限チェック
	if f.Page < 1 {
		return AdminOrderList{}, validationError("invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return AdminOrderList{}, validationError("invalid limit")
	}
	if s := strings.TrimSpace(f.Status); s != "" {
		st, ok := model.ParseOrderStatus(s)
		if !ok {
			return AdminOrderList{}, ErrInvalidStatus
		}
		f.Status = string(st)
	}

	orders, total, err := u.orders.ListAdmin(ctx, f)
	if err != nil {
		return AdminOrderList{}, err
	}
	return AdminOrderList{
		Items: toOrderOutputs(orders),
		Total: total,
		Page:  f.Page,
		Limit: f.Limit,
	}, nil
}

// 管理者は遷移ガード無しで任意のステータスにできる。同じステータスなら何もしない
func (u *AdminOrderUsecase) SetStatus(ctx context.Context, actorID int64, orderID int64, status string) error {
	if actorID <= 0 {
		return ErrUnauthorized
	}
	newStatus, ok := model.ParseOrderStatus(status)
	if !ok {
		return ErrInvalidStatus
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if o.Status == newStatus {
			return nil
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}

		//監査ログ（UPDATE_ORDER_STATUS）
		return writeAudit(ctx, r.AuditLogs(), actorID, model.AuditActionUpdateOrderStatus, orderID,
			map[string]model.OrderStatus{"status": o.Status},
			map[string]model.OrderStatus{"status": newStatus})
	})
}

// 明細→注文の順に同じTxで削除
func (u *AdminOrderUsecase) Delete(ctx context.Context, actorID int64, orderID int64) error {
	if actorID <= 0 {
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

		deletedLines, err := r.OrderLines().DeleteByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}

		before := map[string]interface{}{
			"user_id":      o.UserID,
			"meal_shift":   o.MealShift,
			"status":       o.Status,
			"total_amount": o.TotalAmount,
			"lines":        deletedLines,
		}
		return writeAudit(ctx, r.AuditLogs(), actorID, model.AuditActionDeleteOrder, orderID, before, nil)
	})
}

// 期間パラメータはhandlerでここを通してからfilterに入れる
func ParseDateTimeRFC3339(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, validationError("invalid datetime")
	}
	return &t, nil
}
