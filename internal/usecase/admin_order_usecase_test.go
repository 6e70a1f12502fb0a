package usecase_test

import (
	"context"
	"testing"

	"canteen/internal/domain/model"
	repo "canteen/internal/repository"
	"canteen/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAdminOrderMocks() (*TxManagerMock, *OrderRepoMock, *OrderLineRepoMock, *AuditRepoMock) {
	tx := new(TxManagerMock)
	orders := new(OrderRepoMock)
	lines := new(OrderLineRepoMock)
	audit := new(AuditRepoMock)
	tx.Repos = &TxReposMock{orders: orders, orderLines: lines, auditLogs: audit}
	tx.On("WithinTx", mock.Anything).Return(nil)
	return tx, orders, lines, audit
}

// =====================
// List
// =====================

func TestAdminOrderUsecase_List_InvalidPage(t *testing.T) {
	uc := usecase.NewAdminOrderUsecase(new(TxManagerMock), new(OrderRepoMock))

	_, err := uc.List(context.Background(), repo.AdminOrderListFilter{Page: 0, Limit: 20})
	assert.ErrorIs(t, err, usecase.ErrValidation)
	assert.Contains(t, err.Error(), "invalid page")
}

func TestAdminOrderUsecase_List_InvalidLimit(t *testing.T) {
	uc := usecase.NewAdminOrderUsecase(new(TxManagerMock), new(OrderRepoMock))

	for _, l := range []int{0, 101} {
		_, err := uc.List(context.Background(), repo.AdminOrderListFilter{Page: 1, Limit: l})
		assert.ErrorIs(t, err, usecase.ErrValidation)
	}
}

func TestAdminOrderUsecase_List_InvalidStatus(t *testing.T) {
	uc := usecase.NewAdminOrderUsecase(new(TxManagerMock), new(OrderRepoMock))

	_, err := uc.List(context.Background(), repo.AdminOrderListFilter{Page: 1, Limit: 20, Status: "shipped"})
	assert.ErrorIs(t, err, usecase.ErrInvalidStatus)
}

func TestAdminOrderUsecase_List_NormalizesStatus(t *testing.T) {
	orders := new(OrderRepoMock)
	want := repo.AdminOrderListFilter{Page: 2, Limit: 10, Status: "pending"}
	orders.On("ListAdmin", mock.Anything, want).Return([]model.Order{
		{ID: 11, UserID: 1, Status: model.OrderStatusPending, User: &model.User{ID: 1, Username: "john_doe"}},
	}, int64(11), nil)

	uc := usecase.NewAdminOrderUsecase(new(TxManagerMock), orders)

	out, err := uc.List(context.Background(), repo.AdminOrderListFilter{Page: 2, Limit: 10, Status: " PENDING "})
	require.NoError(t, err)
	assert.Equal(t, int64(11), out.Total)
	assert.Equal(t, 2, out.Page)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "john_doe", out.Items[0].Username)
	orders.AssertExpectations(t)
}

// =====================
// SetStatus
// =====================

func TestAdminOrderUsecase_SetStatus_InvalidStatus(t *testing.T) {
	tx := new(TxManagerMock)
	uc := usecase.NewAdminOrderUsecase(tx, new(OrderRepoMock))

	assert.ErrorIs(t, uc.SetStatus(context.Background(), 1, 1, "XXX"), usecase.ErrInvalidStatus)
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestAdminOrderUsecase_SetStatus_NotFound(t *testing.T) {
	tx, orders, _, _ := newAdminOrderMocks()
	orders.On("FindByIDForUpdate", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	uc := usecase.NewAdminOrderUsecase(tx, orders)

	assert.ErrorIs(t, uc.SetStatus(context.Background(), 1, 99, "completed"), usecase.ErrNotFound)
}

func TestAdminOrderUsecase_SetStatus_SameStatus_NoOp(t *testing.T) {
	tx, orders, _, audit := newAdminOrderMocks()
	orders.On("FindByIDForUpdate", mock.Anything, int64(1)).
		Return(model.Order{ID: 1, Status: model.OrderStatusCompleted}, nil)

	uc := usecase.NewAdminOrderUsecase(tx, orders)

	assert.NoError(t, uc.SetStatus(context.Background(), 1, 1, "completed"))
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 管理者はキャンセル済みも戻せる
func TestAdminOrderUsecase_SetStatus_AnyTransition_Audits(t *testing.T) {
	tx, orders, _, audit := newAdminOrderMocks()
	orders.On("FindByIDForUpdate", mock.Anything, int64(1)).
		Return(model.Order{ID: 1, Status: model.OrderStatusCancelled}, nil)
	orders.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatusPending).Return(nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.ActorUserID == 9 &&
			l.Action == model.AuditActionUpdateOrderStatus &&
			l.ResourceType == model.AuditResourceOrder &&
			l.ResourceID == 1 &&
			l.BeforeJSON == `{"status":"cancelled"}` &&
			l.AfterJSON == `{"status":"pending"}`
	})).Return(nil)

	uc := usecase.NewAdminOrderUsecase(tx, orders)

	assert.NoError(t, uc.SetStatus(context.Background(), 9, 1, "Pending"))
	orders.AssertExpectations(t)
	audit.AssertExpectations(t)
}

// =====================
// Delete
// =====================

func TestAdminOrderUsecase_Delete_LinesThenOrder(t *testing.T) {
	tx, orders, lines, audit := newAdminOrderMocks()

	var calls []string
	orders.On("FindByIDForUpdate", mock.Anything, int64(3)).
		Return(model.Order{ID: 3, UserID: 1, Status: model.OrderStatusPending, TotalAmount: dec("5.99")}, nil)
	lines.On("DeleteByOrderID", mock.Anything, int64(3)).
		Run(func(mock.Arguments) { calls = append(calls, "lines") }).Return(int64(2), nil)
	orders.On("Delete", mock.Anything, int64(3)).
		Run(func(mock.Arguments) { calls = append(calls, "order") }).Return(nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionDeleteOrder && l.ResourceID == 3 && l.AfterJSON == ""
	})).Return(nil)

	uc := usecase.NewAdminOrderUsecase(tx, orders)

	require.NoError(t, uc.Delete(context.Background(), 1, 3))
	assert.Equal(t, []string{"lines", "order"}, calls)
	audit.AssertExpectations(t)
}

func TestAdminOrderUsecase_Delete_NotFound(t *testing.T) {
	tx, orders, lines, _ := newAdminOrderMocks()
	orders.On("FindByIDForUpdate", mock.Anything, int64(3)).Return(model.Order{}, repo.ErrNotFound)

	uc := usecase.NewAdminOrderUsecase(tx, orders)

	assert.ErrorIs(t, uc.Delete(context.Background(), 1, 3), usecase.ErrNotFound)
	lines.AssertNotCalled(t, "DeleteByOrderID", mock.Anything, mock.Anything)
}

func TestParseDateTimeRFC3339(t *testing.T) {
	got, err := usecase.ParseDateTimeRFC3339("")
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = usecase.ParseDateTimeRFC3339("2026-01-02T03:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, 2026, got.Year())

	_, err = usecase.ParseDateTimeRFC3339("yesterday")
	assert.ErrorIs(t, err, usecase.ErrValidation)
}
