package payment

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/FelixBraun92/PawPantry/app/models"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// Repository provides DB operations used by the payment reconciler.
type Repository interface {
	GetOrderForUser(orderID, userID uint) (*models.Order, error)
	GetOrder(orderID uint) (*models.Order, error)
	SaveOrder(order *models.Order) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a payment repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetOrderForUser(orderID, userID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormRepository) GetOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.First(&order, orderID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormRepository) SaveOrder(order *models.Order) error {
	return r.db.Save(order).Error
}

// Checkout is the redirect handed back to the storefront.
type Checkout struct {
	OrderID     uint    `json:"order_id"`
	Amount      float64 `json:"amount"`
	CheckoutURL string  `json:"checkout_url"`
	Reference   string  `json:"reference"`
}

// WebhookPayload is the gateway callback body.
type WebhookPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// Service reconciles gateway payment state with local orders.
type Service struct {
	repo          Repository
	gatewayURL    string
	webhookSecret string
}

// NewService creates a payment reconciler from an injected repository.
func NewService(repo Repository, gatewayURL, webhookSecret string) *Service {
	return &Service{repo: repo, gatewayURL: gatewayURL, webhookSecret: webhookSecret}
}

// NewServiceFromDB creates a payment reconciler from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, gatewayURL, webhookSecret string) *Service {
	return NewService(NewRepository(db), gatewayURL, webhookSecret)
}

// CreateCheckout builds an opaque gateway redirect for an order the user
// owns. Nothing is mutated; payment state only changes via the webhook.
func (s *Service) CreateCheckout(userID, orderID uint) (*Checkout, error) {
	order, err := s.repo.GetOrderForUser(orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	ref := uuid.New().String()
	return &Checkout{
		OrderID:     order.ID,
		Amount:      order.TotalAmount,
		CheckoutURL: fmt.Sprintf("%s/pay/%s?order=%d", s.gatewayURL, ref, order.ID),
		Reference:   ref,
	}, nil
}

// VerifyWebhook validates the gateway signature over the raw body.
func (s *Service) VerifyWebhook(payload []byte, signatureHeader string) error {
	if !VerifyWebhookSignature(payload, signatureHeader, s.webhookSecret) {
		return ErrInvalidSignature
	}
	return nil
}

// ApplyWebhook updates the order's payment state from a gateway callback.
// A status outside the known payment set falls back to paid, and a paid
// payment forces the order status to paid no matter what it was before,
// shipped and delivered included. Callbacks for unknown orders are
// acknowledged and dropped. All of this mirrors upstream gateway contracts.
func (s *Service) ApplyWebhook(p WebhookPayload) error {
	order, err := s.repo.GetOrder(p.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	order.PaymentStatus = models.NormalizePaymentStatus(p.Status)
	if order.PaymentStatus == models.PaymentPaid {
		order.Status = models.OrderPaid
	}
	return s.repo.SaveOrder(order)
}

// Status reports the payment state of an order the user owns.
func (s *Service) Status(userID, orderID uint) (*models.Order, error) {
	order, err := s.repo.GetOrderForUser(orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}
