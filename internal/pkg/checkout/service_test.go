package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/FelixBraun92/PawPantry/app/models"
)

// fakeRepo is an in-memory checkout repository with the same guard
// semantics as the transactional GORM implementation.
type fakeRepo struct {
	products map[uint]*models.Product
	coupons  map[string]*models.Coupon
	orders   map[uint]*models.Order
	nextID   uint

	couponIncrements map[uint]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products:         make(map[uint]*models.Product),
		coupons:          make(map[string]*models.Coupon),
		orders:           make(map[uint]*models.Order),
		couponIncrements: make(map[uint]int),
		nextID:           1,
	}
}

func (r *fakeRepo) addProduct(id uint, name string, price float64, stock int) {
	r.products[id] = &models.Product{ID: id, Name: name, Slug: name, Price: price, Stock: stock}
}

func (r *fakeRepo) GetProductsByIDs(ids []uint) ([]models.Product, error) {
	var out []models.Product
	seen := make(map[uint]bool)
	for _, id := range ids {
		if p, ok := r.products[id]; ok && !seen[id] {
			out = append(out, *p)
			seen[id] = true
		}
	}
	return out, nil
}

func (r *fakeRepo) GetCouponByCode(code string) (*models.Coupon, error) {
	if c, ok := r.coupons[code]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) IncrementCouponUse(couponID uint) error {
	r.couponIncrements[couponID]++
	for _, c := range r.coupons {
		if c.ID == couponID {
			c.UsedCount++
		}
	}
	return nil
}

func (r *fakeRepo) CommitOrder(order *models.Order, decrements map[uint]int, couponID uint) error {
	// Guard check first so a failed commit leaves no partial state.
	for productID, qty := range decrements {
		p, ok := r.products[productID]
		if !ok || p.Stock < qty {
			return ErrOutOfStock
		}
	}
	for productID, qty := range decrements {
		r.products[productID].Stock -= qty
	}
	if couponID != 0 {
		_ = r.IncrementCouponUse(couponID)
	}
	order.ID = r.nextID
	r.nextID++
	r.orders[order.ID] = order
	return nil
}

func (r *fakeRepo) GetOrderByID(id uint) (*models.Order, error) {
	if o, ok := r.orders[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) SaveOrder(order *models.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeRepo) CancelStaleUnpaid(cutoff time.Time) (int64, error) {
	var n int64
	for _, o := range r.orders {
		if o.Status == models.OrderPending && o.PaymentStatus == models.PaymentUnpaid && o.CreatedAt.Before(cutoff) {
			o.Status = models.OrderCancelled
			n++
		}
	}
	return n, nil
}

type recordingNotifier struct {
	orderIDs []uint
}

func (n *recordingNotifier) OrderConfirmation(email string, orderID uint) {
	n.orderIDs = append(n.orderIDs, orderID)
}

func testUser() *models.User {
	return &models.User{ID: 7, Email: "jana@example.com", Role: models.ROLE_CUSTOMER}
}

func TestCreateOrder_TotalsAndRounding(t *testing.T) {
	repo := newFakeRepo()
	repo.addProduct(1, "salmon-bites", 9.99, 10)
	repo.coupons["TREAT10"] = &models.Coupon{
		ID: 1, Code: "TREAT10",
		DiscountType: models.DiscountPercent, DiscountValue: 10,
	}
	notifier := &recordingNotifier{}
	svc := NewService(repo, notifier)

	order, err := svc.CreateOrder(testUser(), CreateOrderInput{
		Items:      []LineInput{{ProductID: 1, Quantity: 5}},
		CouponCode: "TREAT10",
	})
	require.NoError(t, err)

	// 5 x 9.99 = 49.95; 10% = 4.995, rounded to 5.00 before subtraction.
	assert.Equal(t, 5.0, order.Discount)
	assert.Equal(t, 44.95, order.TotalAmount)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, models.PaymentUnpaid, order.PaymentStatus)
	assert.Equal(t, []uint{order.ID}, notifier.orderIDs)
}

func TestCreateOrder_UnitPriceSnapshot(t *testing.T) {
	repo := newFakeRepo()
	repo.addProduct(1, "kibble", 12.50, 10)
	svc := NewService(repo, nil)

	order, err := svc.CreateOrder(testUser(), CreateOrderInput{
		Items: []LineInput{{ProductID: 1, Quantity: 2}},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 12.50, order.Items[0].UnitPrice)

	// A later price change must not affect the committed order.
	repo.products[1].Price = 99.0
	assert.Equal(t, 25.0, order.TotalAmount)
}

func TestCreateOrder_InvalidProduct(t *testing.T) {
	repo := newFakeRepo()
	repo.addProduct(1, "kibble", 5, 10)
	svc := NewService(repo, nil)

	_, err := svc.CreateOrder(testUser(), CreateOrderInput{
		Items: []LineInput{{ProductID: 1, Quantity: 1}, {ProductID: 99, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestCreateOrder_DuplicateProductRejected(t *testing.T) {
	repo := newFakeRepo()
	repo.addProduct(1, "kibble", 5, 10)
	svc := NewService(repo, nil)

	_, err := svc.CreateOrder(testUser(), CreateOrderInput{
		Items: []LineInput{{ProductID: 1, Quantity: 1}, {ProductID: 1, Quantity: 2}},
	})
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestCreateOrder_OutOfStockConservesStock(t *testing.T) {
	repo := newFakeRepo()
	repo.addProduct(1, "kibble", 5, 10)
	repo.addProduct(2, "treats", 3, 1)
	svc := NewService(repo, nil)

	_, err := svc.CreateOrder(testUser(), CreateOrderInput{
		Items: []LineInput{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 5}},
	})
	assert.ErrorIs(t, err, ErrOutOfStock)

	// A failed order leaves every stock level untouched.
	assert.Equal(t, 10, repo.products[1].Stock)
	assert.Equal(t, 1, repo.products[2].Stock)
	assert.Empty(t, repo.orders)
}

func TestCreateOrder_StockDecremented(t *testing.T) {
	repo := newFakeRepo()
	repo.addProduct(1, "kibble", 5, 10)
	svc := NewService(repo, nil)

	_, err := svc.CreateOrder(testUser(), CreateOrderInput{
		Items: []LineInput{{ProductID: 1, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, 7, repo.products[1].Stock)
}

func TestCreateOrder_LastUnit(t *testing.T) {
	repo := newFakeRepo()
	repo.addProduct(1, "kibble", 5, 1)
	svc := NewService(repo, nil)

	_, err := svc.CreateOrder(testUser(), CreateOrderInput{
		Items: []LineInput{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, repo.products[1].Stock)

	_, err = svc.CreateOrder(testUser(), CreateOrderInput{
		Items: []LineInput{{ProductID: 1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrOutOfStock)
}

func TestCreateOrder_LenientCouponFailureMeansZeroDiscount(t *testing.T) {
	repo := newFakeRepo()
	repo.addProduct(1, "kibble", 10, 10)
	expired := time.Now().AddDate(0, 0, -10)
	repo.coupons["OLD"] = &models.Coupon{
		ID: 3, Code: "OLD",
		DiscountType: models.DiscountPercent, DiscountValue: 50,
		ValidTo: &expired,
	}
	svc := NewService(repo, nil)

	order, err := svc.CreateOrder(testUser(), CreateOrderInput{
		Items:      []LineInput{{ProductID: 1, Quantity: 1}},
		CouponCode: "OLD",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, order.Discount)
	assert.Equal(t, 10.0, order.TotalAmount)
	assert.Zero(t, repo.couponIncrements[3])
}

func TestCreateOrder_UnknownCouponIsIgnored(t *testing.T) {
	repo := newFakeRepo()
	repo.addProduct(1, "kibble", 10, 10)
	svc := NewService(repo, nil)

	order, err := svc.CreateOrder(testUser(), CreateOrderInput{
		Items:      []LineInput{{ProductID: 1, Quantity: 1}},
		CouponCode: "NOPE",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, order.Discount)
}

func TestCreateOrder_CouponConsumedExactlyOnce(t *testing.T) {
	repo := newFakeRepo()
	repo.addProduct(1, "kibble", 10, 10)
	repo.coupons["SAVE"] = &models.Coupon{
		ID: 5, Code: "SAVE",
		DiscountType: models.DiscountFixed, DiscountValue: 2,
	}
	svc := NewService(repo, nil)

	_, err := svc.CreateOrder(testUser(), CreateOrderInput{
		Items:      []LineInput{{ProductID: 1, Quantity: 2}},
		CouponCode: "SAVE",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.couponIncrements[5])
}

func TestApplyCoupon_Strict(t *testing.T) {
	repo := newFakeRepo()
	max := 1
	repo.coupons["CAP"] = &models.Coupon{
		ID: 8, Code: "CAP",
		DiscountType: models.DiscountFixed, DiscountValue: 5,
		MaxUses: &max,
	}
	svc := NewService(repo, nil)

	_, err := svc.ApplyCoupon("missing", 100, nil)
	assert.ErrorIs(t, err, ErrCouponNotFound)

	discount, err := svc.ApplyCoupon("CAP", 100, nil)
	require.NoError(t, err)
	assert.Equal(t, 5.0, discount)
	assert.Equal(t, 1, repo.couponIncrements[8])

	// The cap is now reached; further applications fail without consuming.
	_, err = svc.ApplyCoupon("CAP", 100, nil)
	assert.ErrorIs(t, err, ErrCouponExhausted)
	assert.Equal(t, 1, repo.couponIncrements[8])
}

func TestApplyCoupon_RestrictedWithoutProductIDs(t *testing.T) {
	repo := newFakeRepo()
	repo.coupons["DOGS"] = &models.Coupon{
		ID: 9, Code: "DOGS",
		DiscountType: models.DiscountFixed, DiscountValue: 5,
		ApplicableProducts: []uint{42},
	}
	svc := NewService(repo, nil)

	// Without product ids the restriction can't be checked, so the coupon
	// applies and a use is consumed.
	discount, err := svc.ApplyCoupon("DOGS", 100, nil)
	require.NoError(t, err)
	assert.Equal(t, 5.0, discount)
	assert.Equal(t, 1, repo.couponIncrements[9])

	// Naming uncovered products still rejects it.
	_, err = svc.ApplyCoupon("DOGS", 100, []uint{7})
	assert.ErrorIs(t, err, ErrCouponNotApplicable)
	assert.Equal(t, 1, repo.couponIncrements[9])
}

func TestCancel_StateMachine(t *testing.T) {
	repo := newFakeRepo()
	repo.orders[1] = &models.Order{ID: 1, UserID: 7, Status: models.OrderPending}
	repo.orders[2] = &models.Order{ID: 2, UserID: 7, Status: models.OrderDelivered}
	repo.orders[3] = &models.Order{ID: 3, UserID: 7, Status: models.OrderCancelled}
	repo.orders[4] = &models.Order{ID: 4, UserID: 9, Status: models.OrderPending}
	svc := NewService(repo, nil)

	order, err := svc.Cancel(1, 7, false)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, order.Status)

	_, err = svc.Cancel(2, 7, false)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Cancel(3, 7, false)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Foreign orders read as not found for non-admins.
	_, err = svc.Cancel(4, 7, false)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	// Admins may cancel anyone's order.
	order, err = svc.Cancel(4, 1, true)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, order.Status)
}

func TestSetStatus_AdminOverride(t *testing.T) {
	repo := newFakeRepo()
	repo.orders[1] = &models.Order{ID: 1, UserID: 7, Status: models.OrderShipped}
	svc := NewService(repo, nil)

	_, err := svc.SetStatus(1, models.OrderStatus("bogus"))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// No transition validation: shipped back to pending is accepted.
	order, err := svc.SetStatus(1, models.OrderPending)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
}

func TestAutoCancelUnpaid_Idempotent(t *testing.T) {
	repo := newFakeRepo()
	old := time.Now().Add(-2 * time.Hour)
	repo.orders[1] = &models.Order{ID: 1, Status: models.OrderPending, PaymentStatus: models.PaymentUnpaid, CreatedAt: old}
	repo.orders[2] = &models.Order{ID: 2, Status: models.OrderPending, PaymentStatus: models.PaymentUnpaid, CreatedAt: old}
	repo.orders[3] = &models.Order{ID: 3, Status: models.OrderPending, PaymentStatus: models.PaymentPaid, CreatedAt: old}
	repo.orders[4] = &models.Order{ID: 4, Status: models.OrderPending, PaymentStatus: models.PaymentUnpaid, CreatedAt: time.Now()}
	svc := NewService(repo, nil)

	count, err := svc.AutoCancelUnpaid(60)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = svc.AutoCancelUnpaid(60)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	assert.Equal(t, models.OrderPending, repo.orders[3].Status)
	assert.Equal(t, models.OrderPending, repo.orders[4].Status)
}

func TestInvoice(t *testing.T) {
	repo := newFakeRepo()
	repo.orders[12] = &models.Order{
		ID: 12, UserID: 7,
		Status: models.OrderPaid, PaymentStatus: models.PaymentPaid,
		Discount: 5.0,
		Items: []models.OrderItem{
			{ProductID: 1, Quantity: 5, UnitPrice: 9.99},
		},
	}
	svc := NewService(repo, nil)

	inv, err := svc.Invoice(12, 7, false)
	require.NoError(t, err)
	assert.Equal(t, "INV-12", inv.InvoiceNumber)
	assert.Equal(t, 49.95, inv.Subtotal)
	assert.Equal(t, 5.0, inv.Discount)
	assert.Equal(t, 44.95, inv.Total)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, 49.95, inv.Items[0].LineTotal)

	_, err = svc.Invoice(12, 99, false)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
