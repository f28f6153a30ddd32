package payment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/FelixBraun92/PawPantry/app/models"
)

type fakeRepo struct {
	orders map[uint]*models.Order
}

func (r *fakeRepo) GetOrderForUser(orderID, userID uint) (*models.Order, error) {
	if o, ok := r.orders[orderID]; ok && o.UserID == userID {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetOrder(orderID uint) (*models.Order, error) {
	if o, ok := r.orders[orderID]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) SaveOrder(order *models.Order) error {
	r.orders[order.ID] = order
	return nil
}

func newTestService(orders map[uint]*models.Order) (*Service, *fakeRepo) {
	repo := &fakeRepo{orders: orders}
	return NewService(repo, "https://pay.example.com", "hook-secret"), repo
}

func TestCreateCheckout(t *testing.T) {
	svc, _ := newTestService(map[uint]*models.Order{
		1: {ID: 1, UserID: 7, TotalAmount: 44.95},
	})

	co, err := svc.CreateCheckout(7, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), co.OrderID)
	assert.Equal(t, 44.95, co.Amount)
	assert.NotEmpty(t, co.Reference)
	assert.True(t, strings.HasPrefix(co.CheckoutURL, "https://pay.example.com/pay/"))

	// Foreign orders read as not found.
	_, err = svc.CreateCheckout(9, 1)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestVerifyWebhook(t *testing.T) {
	svc, _ := newTestService(nil)
	payload := []byte(`{"order_id":1,"status":"paid"}`)

	sig := SignWebhookPayload(payload, "hook-secret")
	assert.NoError(t, svc.VerifyWebhook(payload, sig))

	assert.ErrorIs(t, svc.VerifyWebhook(payload, "deadbeef"), ErrInvalidSignature)
	assert.ErrorIs(t, svc.VerifyWebhook(payload, ""), ErrInvalidSignature)

	wrong := SignWebhookPayload(payload, "other-secret")
	assert.ErrorIs(t, svc.VerifyWebhook(payload, wrong), ErrInvalidSignature)
}

func TestApplyWebhook_PaidForcesOrderStatus(t *testing.T) {
	svc, repo := newTestService(map[uint]*models.Order{
		1: {ID: 1, UserID: 7, Status: models.OrderShipped, PaymentStatus: models.PaymentUnpaid},
	})

	require.NoError(t, svc.ApplyWebhook(WebhookPayload{OrderID: 1, Status: "paid"}))

	// Even a shipped order snaps back to paid.
	assert.Equal(t, models.OrderPaid, repo.orders[1].Status)
	assert.Equal(t, models.PaymentPaid, repo.orders[1].PaymentStatus)
}

func TestApplyWebhook_UnknownStatusFallsBackToPaid(t *testing.T) {
	svc, repo := newTestService(map[uint]*models.Order{
		1: {ID: 1, UserID: 7, Status: models.OrderPending, PaymentStatus: models.PaymentUnpaid},
	})

	require.NoError(t, svc.ApplyWebhook(WebhookPayload{OrderID: 1, Status: "settled??"}))
	assert.Equal(t, models.PaymentPaid, repo.orders[1].PaymentStatus)
	assert.Equal(t, models.OrderPaid, repo.orders[1].Status)
}

func TestApplyWebhook_FailedDoesNotTouchOrderStatus(t *testing.T) {
	svc, repo := newTestService(map[uint]*models.Order{
		1: {ID: 1, UserID: 7, Status: models.OrderPending, PaymentStatus: models.PaymentUnpaid},
	})

	require.NoError(t, svc.ApplyWebhook(WebhookPayload{OrderID: 1, Status: "failed"}))
	assert.Equal(t, models.PaymentFailed, repo.orders[1].PaymentStatus)
	assert.Equal(t, models.OrderPending, repo.orders[1].Status)
}

func TestApplyWebhook_UnknownOrderIgnored(t *testing.T) {
	svc, repo := newTestService(map[uint]*models.Order{})

	assert.NoError(t, svc.ApplyWebhook(WebhookPayload{OrderID: 42, Status: "paid"}))
	assert.Empty(t, repo.orders)
}
