package checkout

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/FelixBraun92/PawPantry/app/models"
)

// Notifier submits fire-and-forget customer notifications. Implementations
// must not block; failures are swallowed by the notification layer.
type Notifier interface {
	OrderConfirmation(email string, orderID uint)
}

// Service orchestrates the order pipeline: cart validation, inventory
// guarding, coupon application and the atomic commit.
type Service struct {
	repo     Repository
	notifier Notifier
	validate *validator.Validate
}

// NewService creates an order pipeline service from an injected repository.
func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		validate: validator.New(),
	}
}

// NewServiceFromDB creates an order pipeline service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, notifier Notifier) *Service {
	return NewService(NewRepository(db), notifier)
}

// CreateOrder runs the full checkout pipeline for the given user. An
// invalid or inapplicable coupon does not block checkout; it simply yields
// a zero discount. Stock decrements happen only inside the commit
// transaction, never speculatively.
func (s *Service) CreateOrder(user *models.User, in CreateOrderInput) (*models.Order, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}

	productIDs := make([]uint, 0, len(in.Items))
	for _, it := range in.Items {
		productIDs = append(productIDs, it.ProductID)
	}

	found, err := s.repo.GetProductsByIDs(productIDs)
	if err != nil {
		return nil, err
	}
	products := make(map[uint]models.Product, len(found))
	for _, p := range found {
		products[p.ID] = p
	}
	// A duplicated product id in the cart also fails here, matching the
	// resolved-count check against the requested list.
	if len(products) != len(productIDs) {
		return nil, ErrInvalidProduct
	}

	subtotal := 0.0
	items := make([]models.OrderItem, 0, len(in.Items))
	decrements := make(map[uint]int, len(in.Items))
	for _, it := range in.Items {
		prod := products[it.ProductID]
		if prod.Stock < it.Quantity {
			return nil, fmt.Errorf("%w for product %s", ErrOutOfStock, prod.Name)
		}
		subtotal += prod.Price * float64(it.Quantity)
		items = append(items, models.OrderItem{
			ProductID: prod.ID,
			Quantity:  it.Quantity,
			UnitPrice: prod.Price,
		})
		decrements[prod.ID] = it.Quantity
	}

	discount := 0.0
	couponID := uint(0)
	if in.CouponCode != "" {
		discount, couponID = s.lenientDiscount(subtotal, in.CouponCode, productIDs)
	}
	discount = models.Round2(discount)

	order := &models.Order{
		UserID:          user.ID,
		TotalAmount:     models.Round2(subtotal - discount),
		Discount:        discount,
		Status:          models.OrderPending,
		PaymentStatus:   models.PaymentUnpaid,
		ShippingAddress: in.ShippingAddress,
		Items:           items,
	}

	if err := s.repo.CommitOrder(order, decrements, couponID); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.OrderConfirmation(user.Email, order.ID)
	}

	return order, nil
}

// lenientDiscount resolves a coupon for the in-order path. Any validation
// failure means "no discount", never a checkout failure.
func (s *Service) lenientDiscount(amount float64, code string, productIDs []uint) (float64, uint) {
	coupon, err := s.repo.GetCouponByCode(code)
	if err != nil {
		return 0, 0
	}
	discount, err := ComputeDiscount(coupon, amount, productIDs, time.Now())
	if err != nil {
		return 0, 0
	}
	return discount, coupon.ID
}

// ApplyCoupon is the strict standalone path: every validation failure
// surfaces as a typed error. A successful application consumes one use
// immediately.
func (s *Service) ApplyCoupon(code string, amount float64, productIDs []uint) (float64, error) {
	coupon, err := s.repo.GetCouponByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCouponNotFound
		}
		return 0, err
	}
	discount, err := ComputeDiscount(coupon, amount, productIDs, time.Now())
	if err != nil {
		return 0, err
	}
	if err := s.repo.IncrementCouponUse(coupon.ID); err != nil {
		return 0, err
	}
	return discount, nil
}

// Cancel transitions an order to cancelled on behalf of its owner or an
// admin. Terminal orders (cancelled, delivered) reject the transition.
func (s *Service) Cancel(orderID, actorID uint, actorIsAdmin bool) (*models.Order, error) {
	order, err := s.loadOrderFor(orderID, actorID, actorIsAdmin)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, ErrInvalidTransition
	}
	order.Status = models.OrderCancelled
	if err := s.repo.SaveOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// SetStatus is the admin override: any valid status value is accepted
// without transition validation. Known anomaly, kept as an admin-trusted
// escape hatch.
func (s *Service) SetStatus(orderID uint, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidTransition
	}
	order, err := s.repo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	order.Status = status
	if err := s.repo.SaveOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// AutoCancelUnpaid sweeps pending unpaid orders older than the given age
// and cancels them. Safe to run repeatedly.
func (s *Service) AutoCancelUnpaid(olderThanMinutes int) (int64, error) {
	cutoff := time.Now().Add(-time.Duration(olderThanMinutes) * time.Minute)
	return s.repo.CancelStaleUnpaid(cutoff)
}

// Invoice derives the invoice representation from a persisted order.
func (s *Service) Invoice(orderID, actorID uint, actorIsAdmin bool) (*Invoice, error) {
	order, err := s.loadOrderFor(orderID, actorID, actorIsAdmin)
	if err != nil {
		return nil, err
	}

	lines := make([]InvoiceLine, 0, len(order.Items))
	subtotal := 0.0
	for _, it := range order.Items {
		lineTotal := it.LineTotal()
		subtotal += lineTotal
		lines = append(lines, InvoiceLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: lineTotal,
		})
	}
	subtotal = models.Round2(subtotal)
	discount := models.Round2(order.Discount)

	return &Invoice{
		InvoiceNumber: fmt.Sprintf("INV-%d", order.ID),
		OrderID:       order.ID,
		UserID:        order.UserID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		CreatedAt:     order.CreatedAt,
		Items:         lines,
		Subtotal:      subtotal,
		Discount:      discount,
		Total:         models.Round2(subtotal - discount),
	}, nil
}

// loadOrderFor loads an order and hides it behind not-found for anyone who
// is neither the owner nor an admin.
func (s *Service) loadOrderFor(orderID, actorID uint, actorIsAdmin bool) (*models.Order, error) {
	order, err := s.repo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != actorID && !actorIsAdmin {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
