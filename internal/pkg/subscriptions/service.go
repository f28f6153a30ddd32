package subscriptions

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/FelixBraun92/PawPantry/app/models"
)

var (
	ErrInvalidPetOrProduct = errors.New("invalid product or pet")
	ErrNotFound            = errors.New("subscription not found")
	ErrNotActive           = errors.New("subscription is not active")
	ErrProductGone         = errors.New("product not found")
)

// Notifier submits fire-and-forget subscription notifications.
type Notifier interface {
	SubscriptionReminder(email string, subscriptionID uint, nextDelivery time.Time)
}

// CreateInput describes a new subscription request.
type CreateInput struct {
	PetID     uint           `json:"pet_id" validate:"required"`
	ProductID uint           `json:"product_id" validate:"required"`
	Quantity  int            `json:"quantity" validate:"required,gt=0"`
	Cadence   models.Cadence `json:"cadence" validate:"required,oneof=weekly monthly"`
}

// UpdateInput patches an existing subscription. Nil fields stay untouched.
type UpdateInput struct {
	Quantity *int                       `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Cadence  *models.Cadence            `json:"cadence,omitempty" validate:"omitempty,oneof=weekly monthly"`
	Status   *models.SubscriptionStatus `json:"status,omitempty" validate:"omitempty,oneof=active paused cancelled"`
}

// RenewalResult reports the spawned order and the advanced delivery date.
type RenewalResult struct {
	OrderID          uint      `json:"order_id"`
	NextDeliveryDate time.Time `json:"next_delivery_date"`
}

// Service schedules subscriptions and spawns renewal orders from them.
type Service struct {
	repo     Repository
	notifier Notifier
	validate *validator.Validate
	now      func() time.Time
}

// NewService creates a subscription scheduler from an injected repository.
func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		validate: validator.New(),
		now:      time.Now,
	}
}

// NewServiceFromDB creates a subscription scheduler from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, notifier Notifier) *Service {
	return NewService(NewRepository(db), notifier)
}

// Create registers an active subscription for a pet the user owns. The
// first delivery is scheduled one cadence interval from today.
func (s *Service) Create(user *models.User, in CreateInput) (*models.Subscription, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, ErrInvalidPetOrProduct
	}
	if _, err := s.repo.GetProduct(in.ProductID); err != nil {
		return nil, ErrInvalidPetOrProduct
	}
	pet, err := s.repo.GetPetOwnedBy(in.PetID, user.ID)
	if err != nil {
		return nil, ErrInvalidPetOrProduct
	}

	next := in.Cadence.NextDeliveryFrom(s.today())
	sub := &models.Subscription{
		UserID:           user.ID,
		PetID:            pet.ID,
		ProductID:        in.ProductID,
		Quantity:         in.Quantity,
		Cadence:          in.Cadence,
		NextDeliveryDate: &next,
		Status:           models.SubscriptionActive,
	}
	if err := s.repo.Create(sub); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.SubscriptionReminder(user.Email, sub.ID, next)
	}

	return sub, nil
}

// Renew spawns a pending order for the subscription's product at the
// current catalog price and advances the next delivery date one cadence
// interval from today. An overdue renewal therefore does not catch up to
// its original schedule; that is a policy choice carried over as is.
// Renewal orders never decrement stock.
func (s *Service) Renew(userID, subID uint) (*RenewalResult, error) {
	sub, err := s.repo.GetForUser(subID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sub.Status != models.SubscriptionActive {
		return nil, ErrNotActive
	}
	product, err := s.repo.GetProduct(sub.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductGone
		}
		return nil, err
	}

	order := &models.Order{
		UserID:        userID,
		TotalAmount:   models.Round2(product.Price * float64(sub.Quantity)),
		Discount:      0,
		Status:        models.OrderPending,
		PaymentStatus: models.PaymentUnpaid,
		Items: []models.OrderItem{{
			ProductID: product.ID,
			Quantity:  sub.Quantity,
			UnitPrice: product.Price,
		}},
	}

	next := sub.Cadence.NextDeliveryFrom(s.today())
	sub.NextDeliveryDate = &next

	if err := s.repo.CommitRenewal(order, sub); err != nil {
		return nil, err
	}

	return &RenewalResult{OrderID: order.ID, NextDeliveryDate: next}, nil
}

// Update patches quantity, cadence or status of an owned subscription.
func (s *Service) Update(userID, subID uint, in UpdateInput) (*models.Subscription, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, ErrInvalidPetOrProduct
	}
	sub, err := s.repo.GetForUser(subID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if in.Quantity != nil {
		sub.Quantity = *in.Quantity
	}
	if in.Cadence != nil {
		sub.Cadence = *in.Cadence
	}
	if in.Status != nil {
		sub.Status = *in.Status
	}
	if err := s.repo.Save(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Cancel removes an owned subscription.
func (s *Service) Cancel(userID, subID uint) error {
	sub, err := s.repo.GetForUser(subID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(sub)
}

func (s *Service) today() time.Time {
	return s.now().Truncate(24 * time.Hour)
}
