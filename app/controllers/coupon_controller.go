package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/FelixBraun92/PawPantry/app/models"
	"github.com/FelixBraun92/PawPantry/app/repository"
	"github.com/FelixBraun92/PawPantry/internal/pkg/checkout"
)

type applyCouponRequest struct {
	Code       string  `json:"code"`
	Amount     float64 `json:"amount"`
	ProductIDs []uint  `json:"product_ids"`
}

// HandleAdminCreateCoupon registers a coupon.
func HandleAdminCreateCoupon(c *fiber.Ctx) error {
	var coupon models.Coupon
	if err := c.BodyParser(&coupon); err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	coupon.ID = 0
	coupon.UsedCount = 0
	if err := coupon.Validate(); err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid coupon data")
	}

	repo := repository.GetGlobalFactory().GetCouponRepository()
	if _, err := repo.GetByCode(coupon.Code); err == nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Coupon code already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("coupon lookup failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if err := repo.Create(&coupon); err != nil {
		log.Printf("coupon create failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.Status(fiber.StatusCreated).JSON(coupon)
}

// HandleValidateCoupon is the public existence check. Unknown codes are not
// an error; they read back as invalid with no discount details.
func HandleValidateCoupon(c *fiber.Ctx) error {
	code := c.Params("code")
	coupon, err := repository.GetGlobalFactory().GetCouponRepository().GetByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(couponValidation(code, nil))
		}
		log.Printf("coupon validate failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(couponValidation(code, coupon))
}

func couponValidation(code string, coupon *models.Coupon) fiber.Map {
	if coupon == nil {
		return fiber.Map{
			"code":           code,
			"valid":          false,
			"discount_value": nil,
			"discount_type":  nil,
		}
	}
	return fiber.Map{
		"code":           code,
		"valid":          true,
		"discount_value": coupon.DiscountValue,
		"discount_type":  coupon.DiscountType,
	}
}

// HandleApplyCoupon is the strict standalone coupon check. Unlike the
// checkout path, every validation failure comes back as an explicit error,
// and a successful application consumes one use.
func HandleApplyCoupon(c *fiber.Ctx) error {
	var req applyCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	discount, err := checkoutService.ApplyCoupon(req.Code, req.Amount, req.ProductIDs)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrCouponNotFound):
			return jsonDetail(c, fiber.StatusNotFound, "Coupon not found")
		case errors.Is(err, checkout.ErrCouponNotYetValid),
			errors.Is(err, checkout.ErrCouponExpired),
			errors.Is(err, checkout.ErrCouponExhausted),
			errors.Is(err, checkout.ErrCouponNotApplicable):
			return jsonDetail(c, fiber.StatusBadRequest, err.Error())
		default:
			log.Printf("coupon apply failed: %v", err)
			return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
		}
	}

	return c.JSON(fiber.Map{
		"discount":    discount,
		"final_total": models.Round2(req.Amount - discount),
	})
}
