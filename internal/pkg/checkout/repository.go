package checkout

import (
	"fmt"
	"time"

	"github.com/FelixBraun92/PawPantry/app/models"
	"gorm.io/gorm"
)

// Repository provides DB operations used by the order pipeline.
type Repository interface {
	GetProductsByIDs(ids []uint) ([]models.Product, error)
	GetCouponByCode(code string) (*models.Coupon, error)
	IncrementCouponUse(couponID uint) error
	CommitOrder(order *models.Order, decrements map[uint]int, couponID uint) error
	GetOrderByID(id uint) (*models.Order, error)
	SaveOrder(order *models.Order) error
	CancelStaleUnpaid(cutoff time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a checkout repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetProductsByIDs(ids []uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *gormRepository) GetCouponByCode(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.Where("code = ?", code).First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *gormRepository) IncrementCouponUse(couponID uint) error {
	return r.db.Model(&models.Coupon{}).
		Where("id = ?", couponID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error
}

// CommitOrder persists the order with its items, applies all stock
// decrements and consumes the coupon inside one transaction. The decrement
// is guarded by a stock check in the UPDATE itself, so a concurrent
// checkout that drained the shelf in the meantime rolls the whole order
// back instead of driving stock negative.
func (r *gormRepository) CommitOrder(order *models.Order, decrements map[uint]int, couponID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for productID, qty := range decrements {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", productID, qty).
				UpdateColumn("stock", gorm.Expr("stock - ?", qty))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w for product %d", ErrOutOfStock, productID)
			}
		}
		if couponID != 0 {
			if err := tx.Model(&models.Coupon{}).
				Where("id = ?", couponID).
				UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *gormRepository) GetOrderByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormRepository) SaveOrder(order *models.Order) error {
	return r.db.Save(order).Error
}

// CancelStaleUnpaid force-cancels pending unpaid orders created before the
// cutoff. The filter excludes already-cancelled orders, which makes repeated
// sweeps idempotent.
func (r *gormRepository) CancelStaleUnpaid(cutoff time.Time) (int64, error) {
	res := r.db.Model(&models.Order{}).
		Where("status = ? AND payment_status = ? AND created_at < ?",
			models.OrderPending, models.PaymentUnpaid, cutoff).
		Update("status", models.OrderCancelled)
	return res.RowsAffected, res.Error
}
