package services

import (
	"testing"

	"urbanserv/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderFixture(t *testing.T) (*fixture, *OrderService) {
	t.Helper()
	f := newFixture(t)
	return f, NewOrderService(f.db, f.orders, f.payments)
}

func placeCODOrder(t *testing.T, f *fixture) uint {
	t.Helper()
	f.addToCart(t, entity.ItemTypeMenu, f.menuDosa.ID, 1)
	out, err := f.checkout().InitiateCheckout(f.user.ID, entity.PaymentModeCOD, "Koramangala")
	require.NoError(t, err)
	return out.OrderID
}

func TestCancelPendingOrder(t *testing.T) {
	f, svc := newOrderFixture(t)
	orderID := placeCODOrder(t, f)

	require.NoError(t, svc.Cancel(f.user.ID, orderID))

	order, err := f.orders.Get(orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, order.Status)

	payment, err := f.payments.GetByOrderID(orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentRefunded, payment.PaymentStatus)
}

func TestCancelIsRejectedAfterConfirmation(t *testing.T) {
	f, svc := newOrderFixture(t)
	orderID := placeCODOrder(t, f)

	_, err := f.orders.UpdateStatusGuard(f.db, orderID, entity.OrderPending, entity.OrderConfirmed)
	require.NoError(t, err)

	err = svc.Cancel(f.user.ID, orderID)
	var stErr *StateTransitionError
	require.ErrorAs(t, err, &stErr)
	assert.Equal(t, entity.OrderConfirmed, stErr.Current)
	assert.EqualError(t, err, "illegal transition: order is confirmed")

	order, err := f.orders.Get(orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderConfirmed, order.Status)
	payment, err := f.payments.GetByOrderID(orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPending, payment.PaymentStatus)
}

func TestCancelIsRejectedWhileAwaitingPayment(t *testing.T) {
	f, svc := newOrderFixture(t)
	f.addToCart(t, entity.ItemTypeService, f.svcClean.ID, 1)
	out, err := f.checkout().InitiateCheckout(f.user.ID, entity.PaymentModeOnline, "HSR Layout")
	require.NoError(t, err)

	err = svc.Cancel(f.user.ID, out.OrderID)
	var stErr *StateTransitionError
	require.ErrorAs(t, err, &stErr)
	assert.Equal(t, entity.OrderPendingPayment, stErr.Current)
}

func TestCancelIsIdempotentlyRejected(t *testing.T) {
	f, svc := newOrderFixture(t)
	orderID := placeCODOrder(t, f)

	require.NoError(t, svc.Cancel(f.user.ID, orderID))

	err := svc.Cancel(f.user.ID, orderID)
	var stErr *StateTransitionError
	require.ErrorAs(t, err, &stErr)
	assert.Equal(t, entity.OrderCancelled, stErr.Current)
}

func TestCancelUnknownOrder(t *testing.T) {
	f, svc := newOrderFixture(t)
	assert.ErrorIs(t, svc.Cancel(f.user.ID, 9001), ErrNotFound)
}

func TestCancelSomeoneElsesOrder(t *testing.T) {
	f, svc := newOrderFixture(t)
	orderID := placeCODOrder(t, f)

	other := entity.User{Email: "ravi@example.com", Password: "x", FullName: "Ravi", Role: "customer"}
	require.NoError(t, f.db.Create(&other).Error)

	assert.ErrorIs(t, svc.Cancel(other.ID, orderID), ErrNotFound)

	order, err := f.orders.Get(orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPending, order.Status)
}

func TestHistoryNewestFirstWithSequence(t *testing.T) {
	f, svc := newOrderFixture(t)
	first := placeCODOrder(t, f)
	second := placeCODOrder(t, f)
	third := placeCODOrder(t, f)

	views, err := svc.History(f.user.ID)
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, third, views[0].OrderID)
	assert.Equal(t, second, views[1].OrderID)
	assert.Equal(t, first, views[2].OrderID)

	// per-user sequence numbers: newest carries the highest
	assert.Equal(t, 3, views[0].OrderNo)
	assert.Equal(t, 2, views[1].OrderNo)
	assert.Equal(t, 1, views[2].OrderNo)
}

func TestDetailSurvivesMissingPaymentRecord(t *testing.T) {
	f, svc := newOrderFixture(t)
	orderID := placeCODOrder(t, f)

	require.NoError(t, f.db.Unscoped().
		Where("order_id = ?", orderID).Delete(&entity.Payment{}).Error)

	view, err := svc.Detail(f.user.ID, orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPending, view.PaymentStatus)
}

func TestDetailJoinsSnapshotAndPayment(t *testing.T) {
	f, svc := newOrderFixture(t)
	f.addToCart(t, entity.ItemTypeMenu, f.menuDosa.ID, 2)
	f.addToCart(t, entity.ItemTypeService, f.svcClean.ID, 1)
	out, err := f.checkout().InitiateCheckout(f.user.ID, entity.PaymentModeCOD, "Jayanagar")
	require.NoError(t, err)

	view, err := svc.Detail(f.user.ID, out.OrderID)
	require.NoError(t, err)

	assert.Equal(t, "Asha Rao", view.UserName)
	assert.Equal(t, "Jayanagar", view.DeliveryLocation)
	assert.Equal(t, entity.OrderPending, view.Status)
	assert.Equal(t, entity.PaymentPending, view.PaymentStatus)
	assert.InDelta(t, 666.00, view.TotalAmount, 1e-9)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "Masala Dosa", view.Items[0].ItemName)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.InDelta(t, 216.00, view.Items[0].LineTotal, 1e-9)
}
