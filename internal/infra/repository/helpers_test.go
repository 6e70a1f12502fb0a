package repository_test

import (
	"context"
	"testing"
	"time"

	"canteen/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, username string) model.User {
	t.Helper()
	u := model.User{Username: username, PasswordHash: "x", Role: model.RoleUser, IsActive: true}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedMenuItem(t *testing.T, db *gorm.DB, name, price string, shift model.Shift) model.MenuItem {
	t.Helper()
	m := model.MenuItem{Name: name, Price: decimal.RequireFromString(price), Shift: shift, Available: true}
	require.NoError(t, db.Create(&m).Error)
	return m
}

// 明細付きの注文を直接作る
func seedOrder(t *testing.T, db *gorm.DB, userID int64, shift model.Shift, status model.OrderStatus, at time.Time, lines ...model.OrderLine) model.Order {
	t.Helper()
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	o := model.Order{UserID: userID, MealShift: shift, Status: status, TotalAmount: total, CreatedAt: at, UpdatedAt: at}
	require.NoError(t, db.Omit("Lines", "User").Create(&o).Error)
	for i := range lines {
		lines[i].OrderID = o.ID
		require.NoError(t, db.Omit("MenuItem").Create(&lines[i]).Error)
	}
	return o
}

func line(m model.MenuItem, qty int64) model.OrderLine {
	return model.OrderLine{MenuItemID: m.ID, Quantity: qty, UnitPrice: m.Price}
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

var bg = context.Background()
