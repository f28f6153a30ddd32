package repository

import (
	"github.com/FelixBraun92/PawPantry/app/models"
	"gorm.io/gorm"
)

// productRepository implements the ProductRepository interface
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository instance
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("slug = ?", slug).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

var sortableColumns = map[string]bool{
	"price":      true,
	"created_at": true,
	"updated_at": true,
	"stock":      true,
}

// List applies price/subscription filters and sorting in SQL. The species
// tag filter and pagination happen in Go because species_tags is a JSON
// column and the original behavior keeps it dialect-independent.
func (r *productRepository) List(filter ProductFilter) ([]models.Product, error) {
	q := r.db.Model(&models.Product{})
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.SubscriptionAvailable != nil {
		q = q.Where("subscription_available = ?", *filter.SubscriptionAvailable)
	}

	sortBy := filter.SortBy
	if !sortableColumns[sortBy] {
		sortBy = "created_at"
	}
	direction := "DESC"
	if filter.Order == "asc" {
		direction = "ASC"
	}
	q = q.Order(sortBy + " " + direction)

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}

	if filter.Species != "" {
		filtered := products[:0]
		for _, p := range products {
			if p.HasSpeciesTag(filter.Species) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > 100 {
		pageSize = 100
	}
	start := (page - 1) * pageSize
	if start >= len(products) {
		return []models.Product{}, nil
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	return products[start:end], nil
}

func (r *productRepository) ListAll() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// LowStock lists products at or under the given stock threshold.
func (r *productRepository) LowStock(threshold int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("stock <= ?", threshold).Order("stock ASC").Find(&products).Error
	return products, err
}

func (r *productRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Count(&count).Error
	return count, err
}
