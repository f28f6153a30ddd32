package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/FelixBraun92/PawPantry/app/repository"
	"github.com/FelixBraun92/PawPantry/internal/pkg/subscriptions"
)

// HandleCreateSubscription sets up a recurring delivery for an owned pet.
func HandleCreateSubscription(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return jsonDetail(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	var in subscriptions.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	sub, err := subscriptionService.Create(user, in)
	if err != nil {
		if errors.Is(err, subscriptions.ErrInvalidPetOrProduct) {
			return jsonDetail(c, fiber.StatusBadRequest, "Invalid product or pet")
		}
		log.Printf("subscription create failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.Status(fiber.StatusCreated).JSON(sub)
}

// HandleListMySubscriptions lists the caller's subscriptions.
func HandleListMySubscriptions(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return jsonDetail(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	subs, err := repository.GetGlobalFactory().GetSubscriptionRepository().GetByUserID(user.ID)
	if err != nil {
		log.Printf("subscription list failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(subs)
}

// HandleUpdateSubscription patches quantity, cadence or status.
func HandleUpdateSubscription(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return jsonDetail(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	subID, err := parseUintParam(c, "id")
	if err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid subscription id")
	}

	var in subscriptions.UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	sub, err := subscriptionService.Update(user.ID, subID, in)
	if err != nil {
		switch {
		case errors.Is(err, subscriptions.ErrNotFound):
			return jsonDetail(c, fiber.StatusNotFound, "Subscription not found")
		case errors.Is(err, subscriptions.ErrInvalidPetOrProduct):
			return jsonDetail(c, fiber.StatusBadRequest, "Invalid subscription data")
		default:
			log.Printf("subscription update failed: %v", err)
			return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
		}
	}
	return c.JSON(sub)
}

// HandleDeleteSubscription removes a subscription.
func HandleDeleteSubscription(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return jsonDetail(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	subID, err := parseUintParam(c, "id")
	if err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid subscription id")
	}

	if err := subscriptionService.Cancel(user.ID, subID); err != nil {
		if errors.Is(err, subscriptions.ErrNotFound) {
			return jsonDetail(c, fiber.StatusNotFound, "Subscription not found")
		}
		log.Printf("subscription delete failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// HandleRenewSubscription spawns the next delivery order right away.
func HandleRenewSubscription(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return jsonDetail(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	subID, err := parseUintParam(c, "id")
	if err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid subscription id")
	}

	result, err := subscriptionService.Renew(user.ID, subID)
	if err != nil {
		switch {
		case errors.Is(err, subscriptions.ErrNotFound):
			return jsonDetail(c, fiber.StatusNotFound, "Subscription not found")
		case errors.Is(err, subscriptions.ErrNotActive):
			return jsonDetail(c, fiber.StatusBadRequest, "Subscription is not active")
		case errors.Is(err, subscriptions.ErrProductGone):
			return jsonDetail(c, fiber.StatusBadRequest, "Product no longer available")
		default:
			log.Printf("subscription renew failed: %v", err)
			return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
		}
	}
	return c.JSON(result)
}
