package repository_test

import (
	"testing"
	"time"

	"canteen/internal/domain/model"
	"canteen/internal/infra/db/dbtest"
	infra "canteen/internal/infra/repository"
	repo "canteen/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesGorm_Revenue(t *testing.T) {
	db := dbtest.OpenSQLite(t)
	john := seedUser(t, db, "john_doe")
	jane := seedUser(t, db, "jane_smith")
	pancakes := seedMenuItem(t, db, "Pancakes", "5.99", model.ShiftBreakfast)
	curry := seedMenuItem(t, db, "Chicken Curry", "12.99", model.ShiftLunch)

	now := time.Now()
	seedOrder(t, db, john.ID, model.ShiftBreakfast, model.OrderStatusCompleted, now, line(pancakes, 2))
	seedOrder(t, db, john.ID, model.ShiftLunch, model.OrderStatusPending, now, line(curry, 1))
	seedOrder(t, db, jane.ID, model.ShiftLunch, model.OrderStatusCancelled, now, line(curry, 3))

	r := infra.NewSalesGormRepository(db)

	all, err := r.Revenue(bg, repo.RevenueFilter{})
	require.NoError(t, err)
	requireDecimal(t, "63.94", all)

	completed := model.OrderStatusCompleted
	got, err := r.Revenue(bg, repo.RevenueFilter{Status: &completed})
	require.NoError(t, err)
	requireDecimal(t, "11.98", got)

	got, err = r.Revenue(bg, repo.RevenueFilter{UserID: &john.ID})
	require.NoError(t, err)
	requireDecimal(t, "24.97", got)

	got, err = r.Revenue(bg, repo.RevenueFilter{Status: &completed, UserID: &jane.ID})
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestSalesGorm_Revenue_Empty(t *testing.T) {
	db := dbtest.OpenSQLite(t)

	got, err := infra.NewSalesGormRepository(db).Revenue(bg, repo.RevenueFilter{})
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

// {A:3, B:7} → limit 1 は B だけ
func TestSalesGorm_PopularItems(t *testing.T) {
	db := dbtest.OpenSQLite(t)
	u := seedUser(t, db, "john_doe")
	a := seedMenuItem(t, db, "A", "1.00", model.ShiftLunch)
	b := seedMenuItem(t, db, "B", "2.00", model.ShiftDinner)

	now := time.Now()
	seedOrder(t, db, u.ID, model.ShiftLunch, model.OrderStatusCompleted, now, line(a, 3))
	seedOrder(t, db, u.ID, model.ShiftDinner, model.OrderStatusPending, now, line(b, 4))
	seedOrder(t, db, u.ID, model.ShiftDinner, model.OrderStatusCompleted, now, line(b, 3))

	r := infra.NewSalesGormRepository(db)

	top, err := r.PopularItems(bg, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, b.ID, top[0].MenuItemID)
	assert.Equal(t, "B", top[0].Name)
	assert.Equal(t, model.ShiftDinner, top[0].Shift)
	assert.Equal(t, int64(7), top[0].QuantitySold)

	all, err := r.PopularItems(bg, 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(3), all[1].QuantitySold)
}

// 同数はメニューID順
func TestSalesGorm_PopularItems_TieBreakByID(t *testing.T) {
	db := dbtest.OpenSQLite(t)
	u := seedUser(t, db, "john_doe")
	a := seedMenuItem(t, db, "A", "1.00", model.ShiftLunch)
	b := seedMenuItem(t, db, "B", "2.00", model.ShiftLunch)

	seedOrder(t, db, u.ID, model.ShiftLunch, model.OrderStatusPending, time.Now(), line(b, 2), line(a, 2))

	top, err := infra.NewSalesGormRepository(db).PopularItems(bg, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, a.ID, top[0].MenuItemID)
	assert.Equal(t, b.ID, top[1].MenuItemID)
}

func TestSalesGorm_CountOrdersByStatus_ZeroFilled(t *testing.T) {
	db := dbtest.OpenSQLite(t)
	u := seedUser(t, db, "john_doe")
	m := seedMenuItem(t, db, "Pancakes", "5.99", model.ShiftBreakfast)

	seedOrder(t, db, u.ID, model.ShiftBreakfast, model.OrderStatusPending, time.Now(), line(m, 1))
	seedOrder(t, db, u.ID, model.ShiftBreakfast, model.OrderStatusPending, time.Now(), line(m, 1))

	counts, err := infra.NewSalesGormRepository(db).CountOrdersByStatus(bg, &u.ID)
	require.NoError(t, err)
	assert.Equal(t, map[model.OrderStatus]int64{
		model.OrderStatusPending:   2,
		model.OrderStatusCompleted: 0,
		model.OrderStatusCancelled: 0,
	}, counts)
}

func TestSalesGorm_RecentOrders(t *testing.T) {
	db := dbtest.OpenSQLite(t)
	u := seedUser(t, db, "john_doe")
	m := seedMenuItem(t, db, "Pancakes", "5.99", model.ShiftBreakfast)

	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	seedOrder(t, db, u.ID, model.ShiftBreakfast, model.OrderStatusPending, base, line(m, 1))
	newest := seedOrder(t, db, u.ID, model.ShiftBreakfast, model.OrderStatusPending, base.Add(time.Hour), line(m, 1))

	orders, err := infra.NewSalesGormRepository(db).RecentOrders(bg, nil, 1)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, newest.ID, orders[0].ID)
	require.NotNil(t, orders[0].User)
	assert.Equal(t, "john_doe", orders[0].User.Username)
}
