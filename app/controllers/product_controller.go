package controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/FelixBraun92/PawPantry/app/models"
	"github.com/FelixBraun92/PawPantry/app/repository"
)

// HandleListProducts returns the filtered, sorted catalog page.
func HandleListProducts(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		Species:  c.Query("species"),
		SortBy:   c.Query("sort_by"),
		Order:    c.Query("order"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}
	if raw := c.Query("min_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &v
		}
	}
	if raw := c.Query("subscription_available"); raw != "" {
		v := raw == "true" || raw == "1"
		filter.SubscriptionAvailable = &v
	}

	products, err := repository.GetGlobalFactory().GetProductRepository().List(filter)
	if err != nil {
		log.Printf("product list failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(products)
}

// HandleGetProduct resolves a product by numeric id or slug.
func HandleGetProduct(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetProductRepository()
	key := c.Params("id")

	var product *models.Product
	var err error
	if id, perr := strconv.ParseUint(key, 10, 32); perr == nil {
		product, err = repo.GetByID(uint(id))
	} else {
		product, err = repo.GetBySlug(key)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonDetail(c, fiber.StatusNotFound, "Product not found")
		}
		log.Printf("product lookup failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(product)
}

// HandleAdminCreateProduct adds a catalog entry.
func HandleAdminCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	product.ID = 0
	if err := product.Validate(); err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid product data")
	}
	if err := repository.GetGlobalFactory().GetProductRepository().Create(&product); err != nil {
		log.Printf("product create failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleAdminUpdateProduct replaces a catalog entry.
func HandleAdminUpdateProduct(c *fiber.Ctx) error {
	productID, err := parseUintParam(c, "id")
	if err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid product id")
	}

	repo := repository.GetGlobalFactory().GetProductRepository()
	if _, err := repo.GetByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonDetail(c, fiber.StatusNotFound, "Product not found")
		}
		log.Printf("product lookup failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	product.ID = productID
	if err := product.Validate(); err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid product data")
	}
	if err := repo.Update(&product); err != nil {
		log.Printf("product update failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(product)
}

// HandleAdminDeleteProduct removes a catalog entry.
func HandleAdminDeleteProduct(c *fiber.Ctx) error {
	productID, err := parseUintParam(c, "id")
	if err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid product id")
	}
	if err := repository.GetGlobalFactory().GetProductRepository().Delete(productID); err != nil {
		log.Printf("product delete failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// HandleCreateReview attaches a review to a product. Reviews start
// unapproved and only show up in listings once moderated.
func HandleCreateReview(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return jsonDetail(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	productID, err := parseUintParam(c, "id")
	if err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid product id")
	}
	if _, err := repository.GetGlobalFactory().GetProductRepository().GetByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonDetail(c, fiber.StatusNotFound, "Product not found")
		}
		log.Printf("product lookup failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	var review models.Review
	if err := c.BodyParser(&review); err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	review.ID = 0
	review.ProductID = productID
	review.UserID = user.ID
	review.IsApproved = false
	if err := review.Validate(); err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid review data")
	}

	if err := repository.GetGlobalFactory().GetReviewRepository().Create(&review); err != nil {
		log.Printf("review create failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleListReviews lists approved reviews of a product.
func HandleListReviews(c *fiber.Ctx) error {
	productID, err := parseUintParam(c, "id")
	if err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid product id")
	}
	reviews, err := repository.GetGlobalFactory().GetReviewRepository().GetApprovedByProduct(productID)
	if err != nil {
		log.Printf("review list failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(reviews)
}

// HandleAdminApproveReview flips a review to approved.
func HandleAdminApproveReview(c *fiber.Ctx) error {
	reviewID, err := parseUintParam(c, "id")
	if err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid review id")
	}
	repo := repository.GetGlobalFactory().GetReviewRepository()
	review, err := repo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonDetail(c, fiber.StatusNotFound, "Review not found")
		}
		log.Printf("review lookup failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	review.IsApproved = true
	if err := repo.Update(review); err != nil {
		log.Printf("review approve failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(review)
}
