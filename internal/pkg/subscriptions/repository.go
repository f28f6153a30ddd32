package subscriptions

import (
	"github.com/FelixBraun92/PawPantry/app/models"
	"gorm.io/gorm"
)

// Repository provides DB operations used by the subscription scheduler.
type Repository interface {
	GetPetOwnedBy(petID, userID uint) (*models.Pet, error)
	GetProduct(id uint) (*models.Product, error)
	GetForUser(id, userID uint) (*models.Subscription, error)
	Create(sub *models.Subscription) error
	Save(sub *models.Subscription) error
	Delete(sub *models.Subscription) error
	CommitRenewal(order *models.Order, sub *models.Subscription) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a subscriptions repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetPetOwnedBy(petID, userID uint) (*models.Pet, error) {
	var pet models.Pet
	err := r.db.Where("id = ? AND user_id = ?", petID, userID).First(&pet).Error
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *gormRepository) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *gormRepository) GetForUser(id, userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) Create(sub *models.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *gormRepository) Save(sub *models.Subscription) error {
	return r.db.Save(sub).Error
}

func (r *gormRepository) Delete(sub *models.Subscription) error {
	return r.db.Delete(sub).Error
}

// CommitRenewal persists the spawned order with its line item and the
// advanced next-delivery date in one transaction. Renewal orders do not
// touch product stock; that asymmetry with manual checkout is deliberate.
func (r *gormRepository) CommitRenewal(order *models.Order, sub *models.Subscription) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Save(sub).Error
	})
}
