package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"canteen/internal/domain/model"
	"canteen/internal/infra/db/dbtest"
	infra "canteen/internal/infra/repository"
	"canteen/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// sqliteで cart → checkout → order を通しで確認する
type canteenFixture struct {
	db       *gorm.DB
	cart     *usecase.CartUsecase
	checkout *usecase.CheckoutUsecase
	orders   *usecase.OrderUsecase
	sales    *usecase.SalesUsecase
	userID   int64
}

func newCanteenFixture(t *testing.T) *canteenFixture {
	t.Helper()
	db := dbtest.OpenSQLite(t)

	u := model.User{Username: "john_doe", PasswordHash: "x", Role: model.RoleUser, IsActive: true}
	require.NoError(t, db.Create(&u).Error)

	tx := infra.NewTxManagerGorm(db)
	menuItems := infra.NewMenuItemGormRepository(db)
	cartLines := infra.NewCartLineGormRepository(db)
	orders := infra.NewOrderGormRepository(db)
	feedbacks := infra.NewFeedbackGormRepository(db)

	return &canteenFixture{
		db:       db,
		cart:     usecase.NewCartUsecase(cartLines, menuItems),
		checkout: usecase.NewCheckoutUsecase(tx),
		orders:   usecase.NewOrderUsecase(tx, orders),
		sales:    usecase.NewSalesUsecase(infra.NewSalesGormRepository(db), menuItems, infra.NewUserGormRepository(db), feedbacks),
		userID:   u.ID,
	}
}

func (f *canteenFixture) menu(t *testing.T, name, price string, shift model.Shift) model.MenuItem {
	t.Helper()
	m := model.MenuItem{Name: name, Price: dec(price), Shift: shift, Available: true}
	require.NoError(t, f.db.Create(&m).Error)
	return m
}

func TestCheckoutFlow_SplitsByShiftAndEmptiesCart(t *testing.T) {
	ctx := context.Background()
	f := newCanteenFixture(t)
	pancakes := f.menu(t, "Pancakes", "5.99", model.ShiftBreakfast)
	curry := f.menu(t, "Chicken Curry", "12.99", model.ShiftLunch)

	_, err := f.cart.AddToCart(ctx, f.userID, usecase.AddToCartInput{MenuItemID: curry.ID, Quantity: 1})
	require.NoError(t, err)
	snap, err := f.cart.AddToCart(ctx, f.userID, usecase.AddToCartInput{MenuItemID: pancakes.ID, Quantity: 2})
	require.NoError(t, err)
	assert.True(t, dec("24.97").Equal(snap.Total))

	out, err := f.checkout.Checkout(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, out.OrderIDs, 2)
	assert.True(t, dec("24.97").Equal(out.Total))

	n, err := f.cart.Count(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	mine, err := f.orders.ListMine(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	shifts := map[model.Shift]bool{}
	sum := dec("0")
	for _, o := range mine {
		shifts[o.MealShift] = true
		assert.Equal(t, model.OrderStatusPending, o.Status)

		// 合計は明細の小計の和
		lineSum := dec("0")
		for _, l := range o.Lines {
			lineSum = lineSum.Add(l.Subtotal)
		}
		assert.True(t, lineSum.Equal(o.TotalAmount), "order %d", o.ID)
		sum = sum.Add(o.TotalAmount)
	}
	assert.True(t, shifts[model.ShiftBreakfast])
	assert.True(t, shifts[model.ShiftLunch])
	assert.True(t, dec("24.97").Equal(sum))

	revenue, err := f.sales.UserSpend(ctx, f.userID, nil)
	require.NoError(t, err)
	assert.True(t, dec("24.97").Equal(revenue))

	// 2回目は空カート
	_, err = f.checkout.Checkout(ctx, f.userID)
	assert.ErrorIs(t, err, usecase.ErrEmptyCart)
}

// 価格を後から変えても注文済みの明細は変わらない
func TestCheckoutFlow_PriceSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newCanteenFixture(t)
	curry := f.menu(t, "Chicken Curry", "12.99", model.ShiftLunch)

	_, err := f.cart.AddToCart(ctx, f.userID, usecase.AddToCartInput{MenuItemID: curry.ID, Quantity: 1})
	require.NoError(t, err)
	out, err := f.checkout.Checkout(ctx, f.userID)
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&model.MenuItem{}).Where("id = ?", curry.ID).Update("price", dec("20.00")).Error)

	o, err := f.orders.Detail(ctx, f.userID, out.OrderIDs[0])
	require.NoError(t, err)
	assert.True(t, dec("12.99").Equal(o.Lines[0].UnitPrice))
	assert.True(t, dec("12.99").Equal(o.TotalAmount))
}

// 明細のINSERTが失敗したら注文もカートも元のまま
func TestCheckoutFlow_RollbackOnLineFailure(t *testing.T) {
	ctx := context.Background()
	f := newCanteenFixture(t)
	pancakes := f.menu(t, "Pancakes", "5.99", model.ShiftBreakfast)

	_, err := f.cart.AddToCart(ctx, f.userID, usecase.AddToCartInput{MenuItemID: pancakes.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register("test:fail_order_lines", func(tx *gorm.DB) {
		if tx.Statement.Table == "order_lines" {
			_ = tx.AddError(errors.New("order_lines insert failed"))
		}
	}))

	_, err = f.checkout.Checkout(ctx, f.userID)
	assert.ErrorIs(t, err, usecase.ErrCheckoutFailed)

	var orders int64
	require.NoError(t, f.db.Model(&model.Order{}).Count(&orders).Error)
	assert.Equal(t, int64(0), orders)

	n, err := f.cart.Count(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

// 接続1本のインメモリDBなので追加は順番に流れる（upsertの加算を確認）
func TestCheckoutFlow_ConcurrentAddsMergeIntoOneLine(t *testing.T) {
	ctx := context.Background()
	f := newCanteenFixture(t)
	pancakes := f.menu(t, "Pancakes", "5.99", model.ShiftBreakfast)

	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.cart.AddToCart(ctx, f.userID, usecase.AddToCartInput{MenuItemID: pancakes.ID, Quantity: 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	snap, err := f.cart.Snapshot(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, snap.Groups, 1)
	require.Len(t, snap.Groups[0].Lines, 1)
	assert.Equal(t, int64(n), snap.Groups[0].Lines[0].Quantity)
}

func TestCheckoutFlow_CancelTwice(t *testing.T) {
	ctx := context.Background()
	f := newCanteenFixture(t)
	pancakes := f.menu(t, "Pancakes", "5.99", model.ShiftBreakfast)

	_, err := f.cart.AddToCart(ctx, f.userID, usecase.AddToCartInput{MenuItemID: pancakes.ID, Quantity: 1})
	require.NoError(t, err)
	out, err := f.checkout.Checkout(ctx, f.userID)
	require.NoError(t, err)

	require.NoError(t, f.orders.Cancel(ctx, f.userID, out.OrderIDs[0]))
	assert.ErrorIs(t, f.orders.Cancel(ctx, f.userID, out.OrderIDs[0]), usecase.ErrInvalidTransition)

	o, err := f.orders.Detail(ctx, f.userID, out.OrderIDs[0])
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, o.Status)
}

func TestCheckoutFlow_UpdateQuantityZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	f := newCanteenFixture(t)
	pancakes := f.menu(t, "Pancakes", "5.99", model.ShiftBreakfast)

	snap, err := f.cart.AddToCart(ctx, f.userID, usecase.AddToCartInput{MenuItemID: pancakes.ID, Quantity: 3})
	require.NoError(t, err)
	lineID := snap.Groups[0].Lines[0].ID

	snap, err = f.cart.UpdateQuantity(ctx, f.userID, lineID, 0)
	require.NoError(t, err)
	assert.Empty(t, snap.Groups)
	assert.Equal(t, int64(0), snap.Count)
}

// ロックして読んだ後に入った明細は注文されず、カートに残る
func TestCheckoutFlow_LineAddedAfterLockSurvives(t *testing.T) {
	ctx := context.Background()
	f := newCanteenFixture(t)
	pancakes := f.menu(t, "Pancakes", "5.99", model.ShiftBreakfast)
	curry := f.menu(t, "Chicken Curry", "12.99", model.ShiftLunch)

	_, err := f.cart.AddToCart(ctx, f.userID, usecase.AddToCartInput{MenuItemID: pancakes.ID, Quantity: 1})
	require.NoError(t, err)

	// チェックアウトの cart_lines 読み取り直後に、同じTxで別の明細を差し込む
	armed := true
	require.NoError(t, f.db.Callback().Query().After("gorm:query").Register("test:add_after_lock", func(tx *gorm.DB) {
		if !armed || tx.Statement.Table != "cart_lines" {
			return
		}
		armed = false
		late := model.CartLine{UserID: f.userID, MenuItemID: curry.ID, Quantity: 3}
		require.NoError(t, tx.Session(&gorm.Session{NewDB: true}).Omit("MenuItem").Create(&late).Error)
	}))

	out, err := f.checkout.Checkout(ctx, f.userID)
	require.NoError(t, err)
	assert.False(t, armed)
	require.Len(t, out.OrderIDs, 1)
	assert.True(t, dec("5.99").Equal(out.Total))

	snap, err := f.cart.Snapshot(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, snap.Groups, 1)
	require.Len(t, snap.Groups[0].Lines, 1)
	assert.Equal(t, curry.ID, snap.Groups[0].Lines[0].MenuItemID)
	assert.Equal(t, int64(3), snap.Groups[0].Lines[0].Quantity)
}

// メニューが削除された明細はスナップショット・件数・チェックアウトで同じ扱い
func TestCheckoutFlow_DeletedMenuItemDoesNotBlockCheckout(t *testing.T) {
	ctx := context.Background()
	f := newCanteenFixture(t)
	pancakes := f.menu(t, "Pancakes", "5.99", model.ShiftBreakfast)
	curry := f.menu(t, "Chicken Curry", "12.99", model.ShiftLunch)

	_, err := f.cart.AddToCart(ctx, f.userID, usecase.AddToCartInput{MenuItemID: pancakes.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = f.cart.AddToCart(ctx, f.userID, usecase.AddToCartInput{MenuItemID: curry.ID, Quantity: 1})
	require.NoError(t, err)

	// カート明細を残したままメニューだけ論理削除
	require.NoError(t, f.db.Delete(&pancakes).Error)

	snap, err := f.cart.Snapshot(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.Count)
	assert.True(t, dec("12.99").Equal(snap.Total))

	n, err := f.cart.Count(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, snap.Count, n)

	out, err := f.checkout.Checkout(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, out.OrderIDs, 1)
	assert.True(t, dec("12.99").Equal(out.Total))
	assert.Len(t, out.DroppedLineIDs, 1)

	var left int64
	require.NoError(t, f.db.Model(&model.CartLine{}).Where("user_id = ?", f.userID).Count(&left).Error)
	assert.Equal(t, int64(0), left)

	_, err = f.checkout.Checkout(ctx, f.userID)
	assert.ErrorIs(t, err, usecase.ErrEmptyCart)
}

// 削除済みメニューの明細だけなら EmptyCart、明細は片付く
func TestCheckoutFlow_OnlyDeletedMenuItems(t *testing.T) {
	ctx := context.Background()
	f := newCanteenFixture(t)
	pancakes := f.menu(t, "Pancakes", "5.99", model.ShiftBreakfast)

	_, err := f.cart.AddToCart(ctx, f.userID, usecase.AddToCartInput{MenuItemID: pancakes.ID, Quantity: 2})
	require.NoError(t, err)
	require.NoError(t, f.db.Delete(&pancakes).Error)

	_, err = f.checkout.Checkout(ctx, f.userID)
	assert.ErrorIs(t, err, usecase.ErrEmptyCart)

	var left, orders int64
	require.NoError(t, f.db.Model(&model.CartLine{}).Count(&left).Error)
	require.NoError(t, f.db.Model(&model.Order{}).Count(&orders).Error)
	assert.Equal(t, int64(0), left)
	assert.Equal(t, int64(0), orders)
}
