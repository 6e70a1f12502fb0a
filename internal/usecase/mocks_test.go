package usecase_test

import (
	"context"

	"canteen/internal/domain/model"
	repo "canteen/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	menuItems  repo.MenuItemRepository
	cartLines  repo.CartLineRepository
	orders     repo.OrderRepository
	orderLines repo.OrderLineRepository
	auditLogs  repo.AuditLogRepository
}

func (r *TxReposMock) MenuItems() repo.MenuItemRepository   { return r.menuItems }
func (r *TxReposMock) CartLines() repo.CartLineRepository   { return r.cartLines }
func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderLines() repo.OrderLineRepository { return r.orderLines }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository   { return r.auditLogs }

// =====================
// Repository mocks
// =====================

type MenuItemRepoMock struct{ mock.Mock }

func (m *MenuItemRepoMock) List(ctx context.Context, q repo.MenuListQuery) ([]model.MenuItem, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.MenuItem)
	return items, args.Error(1)
}

func (m *MenuItemRepoMock) FindByID(ctx context.Context, id int64) (model.MenuItem, error) {
	args := m.Called(ctx, id)
	it, _ := args.Get(0).(model.MenuItem)
	return it, args.Error(1)
}

func (m *MenuItemRepoMock) Create(ctx context.Context, item model.MenuItem) (model.MenuItem, error) {
	args := m.Called(ctx, item)
	it, _ := args.Get(0).(model.MenuItem)
	return it, args.Error(1)
}

func (m *MenuItemRepoMock) Update(ctx context.Context, item model.MenuItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MenuItemRepoMock) ToggleAvailable(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MenuItemRepoMock) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MenuItemRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type CartLineRepoMock struct{ mock.Mock }

func (m *CartLineRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error) {
	args := m.Called(ctx, userID)
	lines, _ := args.Get(0).([]model.CartLine)
	return lines, args.Error(1)
}

func (m *CartLineRepoMock) ListByUserIDForUpdate(ctx context.Context, userID int64) ([]model.CartLine, error) {
	args := m.Called(ctx, userID)
	lines, _ := args.Get(0).([]model.CartLine)
	return lines, args.Error(1)
}

func (m *CartLineRepoMock) AddQuantity(ctx context.Context, userID int64, menuItemID int64, qty int64) error {
	return m.Called(ctx, userID, menuItemID, qty).Error(0)
}

func (m *CartLineRepoMock) UpdateQuantity(ctx context.Context, cartLineID int64, qty int64) error {
	return m.Called(ctx, cartLineID, qty).Error(0)
}

func (m *CartLineRepoMock) FindByID(ctx context.Context, cartLineID int64) (model.CartLine, error) {
	args := m.Called(ctx, cartLineID)
	l, _ := args.Get(0).(model.CartLine)
	return l, args.Error(1)
}

func (m *CartLineRepoMock) DeleteByID(ctx context.Context, cartLineID int64) error {
	return m.Called(ctx, cartLineID).Error(0)
}

func (m *CartLineRepoMock) DeleteByIDs(ctx context.Context, cartLineIDs []int64) error {
	return m.Called(ctx, cartLineIDs).Error(0)
}

func (m *CartLineRepoMock) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CartLineRepoMock) DeleteByMenuItemID(ctx context.Context, menuItemID int64) error {
	return m.Called(ctx, menuItemID).Error(0)
}

func (m *CartLineRepoMock) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByIDForUpdate(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, limit int) ([]model.Order, error) {
	args := m.Called(ctx, userID, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return m.Called(ctx, orderID, status).Error(0)
}

func (m *OrderRepoMock) Delete(ctx context.Context, orderID int64) error {
	return m.Called(ctx, orderID).Error(0)
}

type OrderLineRepoMock struct{ mock.Mock }

func (m *OrderLineRepoMock) CreateBulk(ctx context.Context, orderID int64, lines []model.OrderLine) error {
	return m.Called(ctx, orderID, lines).Error(0)
}

func (m *OrderLineRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	args := m.Called(ctx, orderID)
	lines, _ := args.Get(0).([]model.OrderLine)
	return lines, args.Error(1)
}

func (m *OrderLineRepoMock) DeleteByOrderID(ctx context.Context, orderID int64) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}

type FeedbackRepoMock struct{ mock.Mock }

func (m *FeedbackRepoMock) Create(ctx context.Context, fb model.Feedback) (model.Feedback, error) {
	args := m.Called(ctx, fb)
	out, _ := args.Get(0).(model.Feedback)
	return out, args.Error(1)
}

func (m *FeedbackRepoMock) AggregateByMenuItemIDs(ctx context.Context, ids []int64) ([]repo.RatingAggregate, error) {
	args := m.Called(ctx, ids)
	aggs, _ := args.Get(0).([]repo.RatingAggregate)
	return aggs, args.Error(1)
}

func (m *FeedbackRepoMock) ListRecent(ctx context.Context, userID *int64, limit int) ([]model.Feedback, error) {
	args := m.Called(ctx, userID, limit)
	items, _ := args.Get(0).([]model.Feedback)
	return items, args.Error(1)
}

func (m *FeedbackRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type SalesRepoMock struct{ mock.Mock }

func (m *SalesRepoMock) Revenue(ctx context.Context, f repo.RevenueFilter) (decimal.Decimal, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *SalesRepoMock) PopularItems(ctx context.Context, limit int) ([]repo.ItemSales, error) {
	args := m.Called(ctx, limit)
	rows, _ := args.Get(0).([]repo.ItemSales)
	return rows, args.Error(1)
}

func (m *SalesRepoMock) RecentOrders(ctx context.Context, userID *int64, limit int) ([]model.Order, error) {
	args := m.Called(ctx, userID, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *SalesRepoMock) CountOrdersByStatus(ctx context.Context, userID *int64) (map[model.OrderStatus]int64, error) {
	args := m.Called(ctx, userID)
	counts, _ := args.Get(0).(map[model.OrderStatus]int64)
	return counts, args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type NoticeRepoMock struct{ mock.Mock }

func (m *NoticeRepoMock) Create(ctx context.Context, n model.Notice) (model.Notice, error) {
	args := m.Called(ctx, n)
	out, _ := args.Get(0).(model.Notice)
	return out, args.Error(1)
}

func (m *NoticeRepoMock) ListLatest(ctx context.Context, limit int) ([]model.Notice, error) {
	args := m.Called(ctx, limit)
	items, _ := args.Get(0).([]model.Notice)
	return items, args.Error(1)
}

func (m *NoticeRepoMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

// =====================
// helpers
// =====================

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func menuItem(id int64, name, price string, shift model.Shift) *model.MenuItem {
	return &model.MenuItem{ID: id, Name: name, Price: dec(price), Shift: shift, Available: true}
}
