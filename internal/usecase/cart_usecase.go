package usecase

import (
	"context"
	"errors"
	"sort"

	"canteen/internal/domain/model"
	repo "canteen/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
type CartUsecase struct {
	cartLines repo.CartLineRepository
	menuItems repo.MenuItemRepository
}

func NewCartUsecase(cartLines repo.CartLineRepository, menuItems repo.MenuItemRepository) *CartUsecase {
	return &CartUsecase{
		cartLines: cartLines,
		menuItems: menuItems,
	}
}

// price は現在のメニュー価格
type CartLineOutput struct {
	ID         int64           `json:"id"`
	MenuItemID int64           `json:"menu_item_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Shift      model.Shift     `json:"shift"`
	Available  bool            `json:"available"`
	Quantity   int64           `json:"quantity"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type CartShiftGroup struct {
	Shift    model.Shift      `json:"shift"`
	Lines    []CartLineOutput `json:"lines"`
	Subtotal decimal.Decimal  `json:"subtotal"`
}

// カートの読み取り結果。時間帯順にまとめる
type CartSnapshot struct {
	Groups []CartShiftGroup `json:"groups"`
	Total  decimal.Decimal  `json:"total"`
	Count  int64            `json:"count"`
}

type AddToCartInput struct {
	MenuItemID int64
	Quantity   int64
}

// カートに追加（同一メニューは数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddToCartInput) (CartSnapshot, error) {
	if userID <= 0 {
		return CartSnapshot{}, ErrUnauthorized
	}
	if in.Quantity < 1 {
		return CartSnapshot{}, ErrInvalidQuantity
	}

	// メニューチェック（提供中のみ）
	item, err := u.menuItems.FindByID(ctx, in.MenuItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartSnapshot{}, ErrNotFound
	}
	if err != nil {
		return CartSnapshot{}, err
	}
	if !item.Available {
		return CartSnapshot{}, ErrItemUnavailable
	}

	if err := u.cartLines.AddQuantity(ctx, userID, item.ID, in.Quantity); err != nil {
		return CartSnapshot{}, err
	}

	return u.Snapshot(ctx, userID)
}

// 数量を上書き。0以下なら明細を消す
func (u *CartUsecase) UpdateQuantity(ctx context.Context, userID int64, cartLineID int64, qty int64) (CartSnapshot, error) {
	if userID <= 0 {
		return CartSnapshot{}, ErrUnauthorized
	}

	if err := u.checkOwner(ctx, userID, cartLineID); err != nil {
		return CartSnapshot{}, err
	}

	if qty <= 0 {
		err := u.cartLines.DeleteByID(ctx, cartLineID)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return CartSnapshot{}, err
		}
		return u.Snapshot(ctx, userID)
	}

	if err := u.cartLines.UpdateQuantity(ctx, cartLineID, qty); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartSnapshot{}, ErrNotFound
		}
		return CartSnapshot{}, err
	}
	return u.Snapshot(ctx, userID)
}

// 明細削除
func (u *CartUsecase) Remove(ctx context.Context, userID int64, cartLineID int64) (CartSnapshot, error) {
	if userID <= 0 {
		return CartSnapshot{}, ErrUnauthorized
	}

	if err := u.checkOwner(ctx, userID, cartLineID); err != nil {
		return CartSnapshot{}, err
	}

	if err := u.cartLines.DeleteByID(ctx, cartLineID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartSnapshot{}, ErrNotFound
		}
		return CartSnapshot{}, err
	}
	return u.Snapshot(ctx, userID)
}

// 空のカートでも成功
func (u *CartUsecase) Clear(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return ErrUnauthorized
	}
	_, err := u.cartLines.DeleteByUserID(ctx, userID)
	return err
}

// 明細数（ヘッダーのバッジ用）
func (u *CartUsecase) Count(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, ErrUnauthorized
	}
	return u.cartLines.CountByUserID(ctx, userID)
}

// 現在のメニュー価格でカートを組み立てる（読み取りのみ）
func (u *CartUsecase) Snapshot(ctx context.Context, userID int64) (CartSnapshot, error) {
	if userID <= 0 {
		return CartSnapshot{}, ErrUnauthorized
	}

	lines, err := u.cartLines.ListByUserID(ctx, userID)
	if err != nil {
		return CartSnapshot{}, err
	}
	return buildCartSnapshot(lines), nil
}

// NotFound → NotOwner の順に判定する
func (u *CartUsecase) checkOwner(ctx context.Context, userID int64, cartLineID int64) error {
	line, err := u.cartLines.FindByID(ctx, cartLineID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if line.UserID != userID {
		return ErrNotOwner
	}
	return nil
}

func buildCartSnapshot(lines []model.CartLine) CartSnapshot {
	byShift := make(map[model.Shift][]CartLineOutput)
	snap := CartSnapshot{Groups: []CartShiftGroup{}, Total: decimal.Zero}

	for _, l := range lines {
		// 削除済みメニューはpreloadされない
		if l.MenuItem == nil {
			continue
		}
		sub := l.MenuItem.Price.Mul(decimal.NewFromInt(l.Quantity))
		byShift[l.MenuItem.Shift] = append(byShift[l.MenuItem.Shift], CartLineOutput{
			ID:         l.ID,
			MenuItemID: l.MenuItemID,
			Name:       l.MenuItem.Name,
			Price:      l.MenuItem.Price,
			Shift:      l.MenuItem.Shift,
			Available:  l.MenuItem.Available,
			Quantity:   l.Quantity,
			Subtotal:   sub,
		})
		snap.Count++
	}

	for _, sh := range sortedShifts(byShift) {
		g := CartShiftGroup{Shift: sh, Lines: byShift[sh], Subtotal: decimal.Zero}
		for _, l := range g.Lines {
			g.Subtotal = g.Subtotal.Add(l.Subtotal)
		}
		snap.Total = snap.Total.Add(g.Subtotal)
		snap.Groups = append(snap.Groups, g)
	}
	return snap
}

// 朝→昼→夜→夜食。未知の時間帯は名前順で最後
func sortedShifts[T any](m map[model.Shift]T) []model.Shift {
	shifts := make([]model.Shift, 0, len(m))
	for sh := range m {
		shifts = append(shifts, sh)
	}
	sort.Slice(shifts, func(i, j int) bool {
		ri, rj := shifts[i].Rank(), shifts[j].Rank()
		if ri != rj {
			return ri < rj
		}
		return shifts[i] < shifts[j]
	})
	return shifts
}
