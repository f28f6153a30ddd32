package repository

import (
	"github.com/FelixBraun92/PawPantry/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List() ([]models.User, error)
	Count() (int64, error)
}

// PetRepository defines the interface for pet-related database operations
type PetRepository interface {
	Create(pet *models.Pet) error
	GetByID(id uint) (*models.Pet, error)
	GetByUserID(userID uint) ([]models.Pet, error)
	Update(pet *models.Pet) error
	Delete(id uint) error
}

// ProductFilter narrows and orders a product listing.
type ProductFilter struct {
	Species               string
	MinPrice              *float64
	MaxPrice              *float64
	SubscriptionAvailable *bool
	SortBy                string
	Order                 string
	Page                  int
	PageSize              int
}

// ProductRepository defines the interface for catalog operations
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id uint) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	List(filter ProductFilter) ([]models.Product, error)
	ListAll() ([]models.Product, error)
	Update(product *models.Product) error
	Delete(id uint) error
	LowStock(threshold int) ([]models.Product, error)
	Count() (int64, error)
}

// CouponRepository defines the interface for coupon records
type CouponRepository interface {
	Create(coupon *models.Coupon) error
	GetByCode(code string) (*models.Coupon, error)
}

// OrderRepository defines read access to orders outside the checkout pipeline
type OrderRepository interface {
	GetByID(id uint) (*models.Order, error)
	GetByUserID(userID uint) ([]models.Order, error)
	List() ([]models.Order, error)
	Count() (int64, error)
}

// SubscriptionRepository defines the interface for subscription records
type SubscriptionRepository interface {
	GetByUserID(userID uint) ([]models.Subscription, error)
	Count() (int64, error)
	CountByStatus(status models.SubscriptionStatus) (int64, error)
}

// ReviewRepository defines the interface for product reviews
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(id uint) (*models.Review, error)
	GetApprovedByProduct(productID uint) ([]models.Review, error)
	Update(review *models.Review) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Pet          PetRepository
	Product      ProductRepository
	Coupon       CouponRepository
	Order        OrderRepository
	Subscription SubscriptionRepository
	Review       ReviewRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Pet:          NewPetRepository(db),
		Product:      NewProductRepository(db),
		Coupon:       NewCouponRepository(db),
		Order:        NewOrderRepository(db),
		Subscription: NewSubscriptionRepository(db),
		Review:       NewReviewRepository(db),
	}
}
