package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grmlab/services-exchange/internal/domain"
	"github.com/grmlab/services-exchange/internal/repository"
	"github.com/grmlab/services-exchange/internal/service"
)

var orderNow = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func newOrderService(orders *mockOrderRepo, users *mockUserRepo) *service.OrderService {
	return service.NewOrderService(service.OrderDependencies{
		OrderRepo:  orders,
		UserRepo:   users,
		CountCache: noCache(),
		Now:        func() time.Time { return orderNow },
	})
}

func orderParticipants() *mockUserRepo {
	return newMockUserRepo(
		domain.User{ID: 1, FirstName: "Mary", LastName: "Smith", Role: domain.RoleCustomer},
		domain.User{ID: 2, FirstName: "Ivan", LastName: "Petrov", Role: domain.RoleExecutor},
		domain.User{ID: 3, FirstName: "Olga", LastName: "Orlova", Role: domain.RoleExecutor},
	)
}

func validOrderInput() service.OrderCreateInput {
	end := orderNow.AddDate(0, 1, 0)
	return service.OrderCreateInput{
		Description: strPtr("Paint the garden fence white before winter comes"),
		EndDate:     &end,
		Address:     strPtr("123456 Main St Apt 4"),
		Price:       intPtr(500),
		CustomerID:  pkPtr(1),
		ExecutorID:  pkPtr(2),
	}
}

func TestOrderCreateDerivesNameAndStartDate(t *testing.T) {
	orders := newMockOrderRepo()
	svc := newOrderService(orders, orderParticipants())

	require.NoError(t, svc.Create(context.Background(), validOrderInput()))
	require.Len(t, orders.created, 1)
	assert.Equal(t, "Paint the garden fence", orders.created[0].Name)
	assert.Equal(t, orderNow, orders.created[0].StartDate)
	assert.Equal(t, int64(1), orders.created[0].CustomerID)
	assert.Equal(t, int64(2), orders.created[0].ExecutorID)
}

func TestOrderCreateAggregatesReasons(t *testing.T) {
	orders := newMockOrderRepo()
	svc := newOrderService(orders, orderParticipants())

	past := orderNow.AddDate(0, 0, -1)
	in := validOrderInput()
	in.EndDate = &past
	in.Price = intPtr(50)

	err := svc.Create(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, "You cannot create an order in the past\nDo it yourself for that kind of money", err.Error())
	assert.Empty(t, orders.created)
}

func TestOrderCreateRoleInvariants(t *testing.T) {
	orders := newMockOrderRepo()
	svc := newOrderService(orders, orderParticipants())

	in := validOrderInput()
	in.CustomerID = pkPtr(2) // executor in the customer seat
	err := svc.Create(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, "You have chosen not the customer", err.Error())

	in = validOrderInput()
	in.ExecutorID = pkPtr(1) // customer in the executor seat
	err = svc.Create(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, "You have chosen not the executor", err.Error())
}

func TestOrderCreateUnknownParticipants(t *testing.T) {
	svc := newOrderService(newMockOrderRepo(), orderParticipants())

	in := validOrderInput()
	in.CustomerID = pkPtr(77)
	err := svc.Create(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, "Customer not found", err.Error())

	in = validOrderInput()
	in.ExecutorID = pkPtr(77)
	err = svc.Create(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, "Executor not found", err.Error())
}

func existingOrder() domain.Order {
	return domain.Order{
		ID:          10,
		Name:        "Paint the garden fence",
		Description: "Paint the garden fence white before winter comes",
		StartDate:   orderNow,
		EndDate:     orderNow.AddDate(0, 1, 0),
		Address:     "123456 Main St Apt 4",
		Price:       500,
		CustomerID:  1,
		ExecutorID:  2,
	}
}

func TestOrderUpdateMissingData(t *testing.T) {
	orders := newMockOrderRepo(existingOrder())
	svc := newOrderService(orders, orderParticipants())

	err := svc.Update(context.Background(), 10, service.OrderUpdateInput{})
	require.Error(t, err)
	assert.Equal(t, "Missing data", err.Error())
	assert.Empty(t, orders.updated)
}

func TestOrderUpdateNotFound(t *testing.T) {
	svc := newOrderService(newMockOrderRepo(), orderParticipants())

	err := svc.Update(context.Background(), 99, service.OrderUpdateInput{Price: intPtr(300)})
	require.Error(t, err)
	assert.Equal(t, "Order not found", err.Error())
}

func TestOrderUpdateEndDateAgainstOwnStartDate(t *testing.T) {
	orders := newMockOrderRepo(existingOrder())
	svc := newOrderService(orders, orderParticipants())

	// Before the order's start date: rejected.
	tooEarly := orderNow.AddDate(0, 0, -10)
	err := svc.Update(context.Background(), 10, service.OrderUpdateInput{EndDate: &tooEarly})
	require.Error(t, err)
	assert.Equal(t, "You cannot create an order in the past", err.Error())

	// Equal to or after the start date: accepted.
	onStart := orderNow
	require.NoError(t, svc.Update(context.Background(), 10, service.OrderUpdateInput{EndDate: &onStart}))
}

func TestOrderUpdateRederivesName(t *testing.T) {
	orders := newMockOrderRepo(existingOrder())
	svc := newOrderService(orders, orderParticipants())

	err := svc.Update(context.Background(), 10, service.OrderUpdateInput{
		Description: strPtr("Build a small wooden shed near the lake"),
	})
	require.NoError(t, err)
	require.Len(t, orders.updated, 1)
	assert.Equal(t, "Build a small wooden", orders.updated[0].Name)
}

func TestOrderUpdateEffectiveParticipants(t *testing.T) {
	orders := newMockOrderRepo(existingOrder())
	svc := newOrderService(orders, orderParticipants())

	// Changing only the executor keeps the stored customer in the check.
	err := svc.Update(context.Background(), 10, service.OrderUpdateInput{ExecutorID: pkPtr(3)})
	require.NoError(t, err)
	require.Len(t, orders.updated, 1)
	assert.Equal(t, int64(1), orders.updated[0].CustomerID)
	assert.Equal(t, int64(3), orders.updated[0].ExecutorID)
}

func TestOrderUpdateSameUserBothSeats(t *testing.T) {
	orders := newMockOrderRepo(existingOrder())
	svc := newOrderService(orders, orderParticipants())

	err := svc.Update(context.Background(), 10, service.OrderUpdateInput{
		CustomerID: pkPtr(2),
		ExecutorID: pkPtr(2),
	})
	require.Error(t, err)
	// The role check fires before the identity check: user 2 is an executor.
	assert.Equal(t, "You have chosen not the customer", err.Error())
	assert.Empty(t, orders.updated)
}

func TestOrderDelete(t *testing.T) {
	orders := newMockOrderRepo(existingOrder())
	svc := newOrderService(orders, orderParticipants())

	require.NoError(t, svc.Delete(context.Background(), 10))
	assert.Equal(t, []int64{10}, orders.deleted)

	err := svc.Delete(context.Background(), 10)
	require.Error(t, err)
	assert.Equal(t, "Order not found", err.Error())
}

func TestOrderListEnrichesNames(t *testing.T) {
	orders := newMockOrderRepo()
	orders.listRows = []repository.OrderRow{
		{Order: existingOrder(), CustomerName: "Mary Smith", ExecutorName: "Ivan Petrov"},
	}
	svc := newOrderService(orders, orderParticipants())

	items, err := svc.List(context.Background(), 0, 0, "default", "default", nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Mary Smith", items[0]["customer"])
	assert.Equal(t, "Ivan Petrov", items[0]["executor"])
	assert.Equal(t, "01.03.2026", items[0]["start_date"])
}

func TestOrderCountEchoesPK(t *testing.T) {
	orders := newMockOrderRepo()
	orders.countVal = 4
	svc := newOrderService(orders, orderParticipants())

	result, err := svc.Count(context.Background(), "customer", pkPtr(1))
	require.NoError(t, err)
	assert.Equal(t, int64(4), result["count"])
	assert.Equal(t, int64(1), result["pk"])

	result, err = svc.Count(context.Background(), "default", nil)
	require.NoError(t, err)
	assert.Nil(t, result["pk"])
}
