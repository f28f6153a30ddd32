package repository

import (
	"github.com/FelixBraun92/PawPantry/app/models"
	"gorm.io/gorm"
)

// petRepository implements the PetRepository interface
type petRepository struct {
	db *gorm.DB
}

// NewPetRepository creates a new pet repository instance
func NewPetRepository(db *gorm.DB) PetRepository {
	return &petRepository{db: db}
}

func (r *petRepository) Create(pet *models.Pet) error {
	return r.db.Create(pet).Error
}

func (r *petRepository) GetByID(id uint) (*models.Pet, error) {
	var pet models.Pet
	err := r.db.First(&pet, id).Error
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *petRepository) GetByUserID(userID uint) ([]models.Pet, error) {
	var pets []models.Pet
	err := r.db.Where("user_id = ?", userID).Find(&pets).Error
	return pets, err
}

func (r *petRepository) Update(pet *models.Pet) error {
	return r.db.Save(pet).Error
}

func (r *petRepository) Delete(id uint) error {
	return r.db.Delete(&models.Pet{}, id).Error
}
