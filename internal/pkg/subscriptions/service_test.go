package subscriptions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/FelixBraun92/PawPantry/app/models"
)

type fakeRepo struct {
	pets     map[uint]*models.Pet
	products map[uint]*models.Product
	subs     map[uint]*models.Subscription
	orders   []*models.Order
	nextID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		pets:     make(map[uint]*models.Pet),
		products: make(map[uint]*models.Product),
		subs:     make(map[uint]*models.Subscription),
		nextID:   1,
	}
}

func (r *fakeRepo) GetPetOwnedBy(petID, userID uint) (*models.Pet, error) {
	if p, ok := r.pets[petID]; ok && p.UserID == userID {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetProduct(id uint) (*models.Product, error) {
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetForUser(id, userID uint) (*models.Subscription, error) {
	if s, ok := r.subs[id]; ok && s.UserID == userID {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) Create(sub *models.Subscription) error {
	sub.ID = r.nextID
	r.nextID++
	r.subs[sub.ID] = sub
	return nil
}

func (r *fakeRepo) Save(sub *models.Subscription) error {
	r.subs[sub.ID] = sub
	return nil
}

func (r *fakeRepo) Delete(sub *models.Subscription) error {
	delete(r.subs, sub.ID)
	return nil
}

func (r *fakeRepo) CommitRenewal(order *models.Order, sub *models.Subscription) error {
	order.ID = r.nextID
	r.nextID++
	r.orders = append(r.orders, order)
	r.subs[sub.ID] = sub
	return nil
}

type recordingNotifier struct {
	subIDs []uint
}

func (n *recordingNotifier) SubscriptionReminder(email string, subscriptionID uint, nextDelivery time.Time) {
	n.subIDs = append(n.subIDs, subscriptionID)
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
}

func newTestService(repo *fakeRepo, notifier Notifier) *Service {
	svc := NewService(repo, notifier)
	svc.now = fixedNow
	return svc
}

func TestCreate_SchedulesFirstDelivery(t *testing.T) {
	repo := newFakeRepo()
	repo.pets[1] = &models.Pet{ID: 1, UserID: 7, Name: "Rex", Species: "dog"}
	repo.products[2] = &models.Product{ID: 2, Price: 19.90, SubscriptionAvailable: true}
	notifier := &recordingNotifier{}
	svc := newTestService(repo, notifier)

	sub, err := svc.Create(&models.User{ID: 7, Email: "jana@example.com"}, CreateInput{
		PetID: 1, ProductID: 2, Quantity: 2, Cadence: models.CadenceWeekly,
	})
	require.NoError(t, err)

	assert.Equal(t, models.SubscriptionActive, sub.Status)
	require.NotNil(t, sub.NextDeliveryDate)
	want := fixedNow().Truncate(24 * time.Hour).AddDate(0, 0, 7)
	assert.Equal(t, want, *sub.NextDeliveryDate)
	assert.Equal(t, []uint{sub.ID}, notifier.subIDs)
}

func TestCreate_RejectsForeignPetAndMissingProduct(t *testing.T) {
	repo := newFakeRepo()
	repo.pets[1] = &models.Pet{ID: 1, UserID: 99, Name: "Rex", Species: "dog"}
	repo.products[2] = &models.Product{ID: 2, Price: 19.90}
	svc := newTestService(repo, nil)
	user := &models.User{ID: 7}

	_, err := svc.Create(user, CreateInput{PetID: 1, ProductID: 2, Quantity: 1, Cadence: models.CadenceMonthly})
	assert.ErrorIs(t, err, ErrInvalidPetOrProduct)

	_, err = svc.Create(user, CreateInput{PetID: 1, ProductID: 404, Quantity: 1, Cadence: models.CadenceMonthly})
	assert.ErrorIs(t, err, ErrInvalidPetOrProduct)
}

func TestRenew_SpawnsOrderAtCurrentPrice(t *testing.T) {
	repo := newFakeRepo()
	repo.products[2] = &models.Product{ID: 2, Price: 24.90, Stock: 3}
	overdue := fixedNow().AddDate(0, 0, -45)
	repo.subs[5] = &models.Subscription{
		ID: 5, UserID: 7, PetID: 1, ProductID: 2, Quantity: 2,
		Cadence: models.CadenceMonthly, Status: models.SubscriptionActive,
		NextDeliveryDate: &overdue,
	}
	svc := newTestService(repo, nil)

	result, err := svc.Renew(7, 5)
	require.NoError(t, err)

	require.Len(t, repo.orders, 1)
	order := repo.orders[0]
	assert.Equal(t, 49.80, order.TotalAmount)
	assert.Equal(t, 0.0, order.Discount)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, models.PaymentUnpaid, order.PaymentStatus)
	assert.Nil(t, order.ShippingAddress)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 24.90, order.Items[0].UnitPrice)

	// Renewal orders never touch stock.
	assert.Equal(t, 3, repo.products[2].Stock)

	// An overdue renewal schedules from today, not from the missed date.
	want := fixedNow().Truncate(24 * time.Hour).AddDate(0, 0, 30)
	assert.Equal(t, want, result.NextDeliveryDate)
	assert.Equal(t, want, *repo.subs[5].NextDeliveryDate)
}

func TestRenew_RequiresActive(t *testing.T) {
	repo := newFakeRepo()
	repo.products[2] = &models.Product{ID: 2, Price: 24.90}
	repo.subs[5] = &models.Subscription{
		ID: 5, UserID: 7, ProductID: 2, Quantity: 1,
		Cadence: models.CadenceWeekly, Status: models.SubscriptionPaused,
	}
	svc := newTestService(repo, nil)

	_, err := svc.Renew(7, 5)
	assert.ErrorIs(t, err, ErrNotActive)
	assert.Empty(t, repo.orders)
}

func TestRenew_ForeignSubscriptionNotFound(t *testing.T) {
	repo := newFakeRepo()
	repo.subs[5] = &models.Subscription{ID: 5, UserID: 99, Status: models.SubscriptionActive}
	svc := newTestService(repo, nil)

	_, err := svc.Renew(7, 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_PatchesFields(t *testing.T) {
	repo := newFakeRepo()
	repo.subs[5] = &models.Subscription{
		ID: 5, UserID: 7, Quantity: 1,
		Cadence: models.CadenceWeekly, Status: models.SubscriptionActive,
	}
	svc := newTestService(repo, nil)

	qty := 3
	paused := models.SubscriptionPaused
	sub, err := svc.Update(7, 5, UpdateInput{Quantity: &qty, Status: &paused})
	require.NoError(t, err)
	assert.Equal(t, 3, sub.Quantity)
	assert.Equal(t, models.SubscriptionPaused, sub.Status)
	assert.Equal(t, models.CadenceWeekly, sub.Cadence)
}

func TestCancel_RemovesSubscription(t *testing.T) {
	repo := newFakeRepo()
	repo.subs[5] = &models.Subscription{ID: 5, UserID: 7, Status: models.SubscriptionActive}
	svc := newTestService(repo, nil)

	require.NoError(t, svc.Cancel(7, 5))
	assert.Empty(t, repo.subs)

	assert.ErrorIs(t, svc.Cancel(7, 5), ErrNotFound)
}
